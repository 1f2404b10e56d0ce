package hook

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/glasspen/internal/keys"
)

// fakeSource records install/uninstall calls and lets tests inject events.
type fakeSource struct {
	mu         sync.Mutex
	cb         func(Event)
	installs   int
	uninstalls int
	installErr error
}

func (f *fakeSource) Install(cb func(Event)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installs++
	if f.installErr != nil {
		return f.installErr
	}
	f.cb = cb
	return nil
}

func (f *fakeSource) Uninstall() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uninstalls++
	f.cb = nil
	return nil
}

func (f *fakeSource) emit(ev Event) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStartDeliversEventsInOrder(t *testing.T) {
	src := &fakeSource{}
	var mu sync.Mutex
	var got []Event
	h := New(src, func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	})
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer h.Dispose()

	want := []Event{
		{Code: keys.CodeLeftCtrl, Down: true},
		{Code: keys.CodeD, Down: true},
		{Code: keys.CodeD, Down: false},
		{Code: keys.CodeLeftCtrl, Down: false},
	}
	for _, ev := range want {
		src.emit(ev)
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == len(want)
	})
	mu.Lock()
	defer mu.Unlock()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStartIdempotent(t *testing.T) {
	src := &fakeSource{}
	h := New(src, nil)
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer h.Dispose()
	if err := h.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if src.installs != 1 {
		t.Errorf("installs = %d, want 1", src.installs)
	}
}

func TestStartAfterDisposeIsNoOp(t *testing.T) {
	src := &fakeSource{}
	h := New(src, nil)
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.Dispose()
	if err := h.Start(); err != nil {
		t.Fatalf("Start after Dispose returned error: %v", err)
	}
	if src.installs != 1 {
		t.Errorf("installs = %d, want 1 after dispose", src.installs)
	}
}

func TestInstallFailureReturned(t *testing.T) {
	src := &fakeSource{installErr: errors.New("permission denied")}
	h := New(src, nil)
	if err := h.Start(); err == nil {
		t.Fatal("Start should surface install error")
	}
	// A failed start leaves the hook stopped, not half-installed.
	if err := h.Stop(); err != nil {
		t.Fatalf("Stop after failed start: %v", err)
	}
}

func TestStopAndDisposeReentrant(t *testing.T) {
	src := &fakeSource{}
	h := New(src, nil)
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Stop()
			h.Dispose()
		}()
	}
	wg.Wait()
	if src.uninstalls != 1 {
		t.Errorf("uninstalls = %d, want 1", src.uninstalls)
	}
}

func TestHandlerPanicContained(t *testing.T) {
	src := &fakeSource{}
	var mu sync.Mutex
	calls := 0
	h := New(src, func(ev Event) {
		mu.Lock()
		calls++
		mu.Unlock()
		if ev.Code == keys.CodeA {
			panic("boom")
		}
	})
	if err := h.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer h.Dispose()

	src.emit(Event{Code: keys.CodeA, Down: true})
	src.emit(Event{Code: keys.CodeB, Down: true})
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 2
	})
}

func TestSuppressedFlag(t *testing.T) {
	h := New(&fakeSource{}, nil)
	if h.Suppressed() {
		t.Error("suppressed should default to false")
	}
	h.SetSuppressed(true)
	if !h.Suppressed() {
		t.Error("SetSuppressed(true) not observed")
	}
	h.SetSuppressed(false)
	if h.Suppressed() {
		t.Error("SetSuppressed(false) not observed")
	}
}
