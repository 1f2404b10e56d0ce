//go:build linux

package hook

import (
	"fmt"
	"log"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/example/glasspen/internal/keys"
)

// evdevSource reads key transitions from every keyboard-capable evdev
// device. Reading /dev/input requires membership in the input group on
// most distributions; the permission error surfaces from Install.
type evdevSource struct {
	mu      sync.Mutex
	devices []*evdev.InputDevice
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewSource returns the Linux capture backend. The swallow callback is
// ignored: evdev is read-only and cannot drop events from the device
// stream without grabbing the whole keyboard.
func NewSource(swallow func(keys.Code) bool) Source {
	return &evdevSource{}
}

func (s *evdevSource) Install(cb func(Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}

	var opened []*evdev.InputDevice
	var lastErr error
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			lastErr = err
			continue
		}
		if !capableOfKeys(dev) {
			dev.Close()
			continue
		}
		opened = append(opened, dev)
	}
	if len(opened) == 0 {
		if lastErr != nil {
			return fmt.Errorf("no readable keyboard devices: %w", lastErr)
		}
		return fmt.Errorf("no keyboard devices found")
	}

	s.devices = opened
	s.stop = make(chan struct{})
	for _, dev := range opened {
		s.wg.Add(1)
		go s.read(dev, s.stop, cb)
	}
	return nil
}

// keyEventReader is the slice of *evdev.InputDevice the reader goroutine
// needs.
type keyEventReader interface {
	ReadOne() (*evdev.InputEvent, error)
}

func capableOfKeys(dev *evdev.InputDevice) bool {
	for _, t := range dev.CapableTypes() {
		if t == evdev.EV_KEY {
			return true
		}
	}
	return false
}

func (s *evdevSource) read(dev keyEventReader, stop <-chan struct{}, cb func(Event)) {
	defer s.wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			select {
			case <-stop:
			default:
				log.Printf("hook: evdev read: %v", err)
			}
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		// Value 2 is autorepeat; the state machine is edge triggered so
		// repeats are delivered as ordinary key-down.
		cb(Event{Code: keys.Code(ev.Code), Down: ev.Value != 0})
	}
}

func (s *evdevSource) Uninstall() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return nil
	}
	close(s.stop)
	var firstErr error
	for _, dev := range s.devices {
		if err := dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Readers hold the stop channel by value; wait for them before the
	// fields are cleared for the next Install.
	s.wg.Wait()
	s.devices = nil
	s.stop = nil
	return firstErr
}
