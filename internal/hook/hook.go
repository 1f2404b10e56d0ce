// Package hook installs a system-wide keyboard interception point and
// delivers every key transition to a handler.
//
// The OS invokes the capture callback on its own dispatch context, so the
// callback must never block, never panic outward, and always let the event
// continue down the system chain. The Hook wrapper enforces that contract:
// the callback only enqueues into a buffered channel and returns, and a
// dispatch goroutine drives the handler.
package hook

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/example/glasspen/internal/keys"
)

// Event is one raw key transition.
type Event struct {
	Code keys.Code
	Down bool
}

// Source is the platform-specific interception point. Install begins
// delivery of events to the callback; Uninstall stops it. The callback
// passed to Install honors the same no-block contract as the OS callback.
type Source interface {
	Install(cb func(Event)) error
	Uninstall() error
}

// ErrUnsupported is returned by Start on platforms without a capture
// backend.
var ErrUnsupported = errors.New("keyboard capture not supported on this platform")

const eventBuffer = 256

// Hook owns the lifecycle of a Source. Start is idempotent while not
// disposed; Stop and Dispose are safe to call repeatedly and concurrently.
type Hook struct {
	mu       sync.Mutex
	src      Source
	handler  func(Event)
	started  bool
	disposed bool

	quit chan struct{}

	suppressed atomic.Bool
}

// New creates a Hook around the platform source. The handler runs on the
// hook's dispatch goroutine, in the order events were captured.
func New(src Source, handler func(Event)) *Hook {
	return &Hook{src: src, handler: handler}
}

// Start installs the interception point. Install failure is returned as an
// error; the caller decides whether it is fatal. Calling Start on an
// already started hook is a no-op, and calling it after Dispose logs a
// warning and does nothing.
func (h *Hook) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.disposed {
		log.Printf("hook: Start called after Dispose; ignored")
		return nil
	}
	if h.started {
		return nil
	}

	events := make(chan Event, eventBuffer)
	quit := make(chan struct{})
	if err := h.src.Install(func(ev Event) { capture(events, ev) }); err != nil {
		return err
	}
	h.quit = quit
	go h.dispatch(events, quit)
	h.started = true
	return nil
}

// capture is the callback handed to the source. It must complete in
// constant time: a panic is swallowed and logged, and when the queue is
// full the event is dropped rather than blocking the system input path.
func capture(events chan<- Event, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("hook: capture callback panic: %v", r)
		}
	}()
	select {
	case events <- ev:
	default:
		log.Printf("hook: event queue full, dropping %s", ev.Code.Name())
	}
}

func (h *Hook) dispatch(events <-chan Event, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case ev := <-events:
			h.deliver(ev)
		}
	}
}

func (h *Hook) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("hook: handler panic: %v", r)
		}
	}()
	if h.handler != nil {
		h.handler(ev)
	}
}

// Stop uninstalls the interception point. Safe to call when not started.
func (h *Hook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopLocked()
}

func (h *Hook) stopLocked() error {
	if !h.started {
		return nil
	}
	h.started = false
	err := h.src.Uninstall()
	close(h.quit)
	h.quit = nil
	return err
}

// Dispose stops the hook and permanently retires it. Subsequent Start
// calls are ignored.
func (h *Hook) Dispose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.disposed {
		return
	}
	if err := h.stopLocked(); err != nil {
		log.Printf("hook: uninstall during dispose: %v", err)
	}
	h.disposed = true
}

// SetSuppressed marks whether drawing mode is active. Sources that can
// swallow events (the Windows low-level hook) consult this to keep hotkey
// keystrokes from reaching the application underneath the overlay.
func (h *Hook) SetSuppressed(on bool) { h.suppressed.Store(on) }

// Suppressed reports the current suppression flag.
func (h *Hook) Suppressed() bool { return h.suppressed.Load() }
