//go:build linux

package hook

import (
	"io"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/example/glasspen/internal/keys"
)

type scriptedReader struct {
	events []*evdev.InputEvent
}

func (r *scriptedReader) ReadOne() (*evdev.InputEvent, error) {
	if len(r.events) == 0 {
		return nil, io.EOF
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev, nil
}

func keyEvent(code keys.Code, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.EvCode(code), Value: value}
}

func TestReadDeliversKeyTransitions(t *testing.T) {
	s := &evdevSource{}
	reader := &scriptedReader{events: []*evdev.InputEvent{
		keyEvent(keys.CodeA, 1),
		{Type: evdev.EV_SYN},
		keyEvent(keys.CodeA, 2), // autorepeat arrives as key-down
		keyEvent(keys.CodeA, 0),
	}}

	var got []Event
	stop := make(chan struct{})
	s.wg.Add(1)
	s.read(reader, stop, func(ev Event) { got = append(got, ev) })

	want := []Event{
		{Code: keys.CodeA, Down: true},
		{Code: keys.CodeA, Down: true},
		{Code: keys.CodeA, Down: false},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// Readers receive the stop channel as an argument, so Uninstall can wait
// them out before it resets the source for the next Install.
func TestReadStopsIndependentlyOfSourceState(t *testing.T) {
	s := &evdevSource{}
	stop := make(chan struct{})
	close(stop)

	done := make(chan struct{})
	s.wg.Add(1)
	go func() {
		s.read(&scriptedReader{}, stop, func(Event) {})
		close(done)
	}()
	s.stop = nil // Uninstall clears the field; the reader must not care.

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader did not return")
	}
	s.wg.Wait()
}

func TestUninstallWithoutInstall(t *testing.T) {
	s := &evdevSource{}
	if err := s.Uninstall(); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if err := s.Uninstall(); err != nil {
		t.Fatalf("second Uninstall: %v", err)
	}
}
