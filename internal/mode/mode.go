// Package mode owns the enable/disable life cycle of the annotation
// surface, driven by the hotkey detector and the escape key.
package mode

import (
	"fmt"
	"log"
	"sync"
)

// State is the drawing-mode state.
type State int

const (
	// Inactive means the surface is hidden and input flows to the host
	// system untouched.
	Inactive State = iota
	// ActiveHeld means the surface is shown while the hotkey combination
	// is physically held.
	ActiveHeld
	// ActiveLocked means the surface was toggled on by a full hotkey
	// press-release cycle and stays shown until toggled off or escaped.
	ActiveLocked
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case ActiveHeld:
		return "active-held"
	case ActiveLocked:
		return "active-locked"
	default:
		return "unknown"
	}
}

// Surface is the drawing surface as the controller sees it. Show makes
// the overlay visible and ready for pointer input; Hide returns the
// screen to the host system.
type Surface interface {
	Show() error
	Hide() error
	Focus()
	HelpVisible() bool
	HideHelp()
}

// Controller transitions between Inactive, ActiveHeld, and ActiveLocked.
// The lock-vs-hold flag is read through lockMode at the moment of each
// transition, not cached, so a settings change applies to the next
// activation without a restart.
type Controller struct {
	mu       sync.Mutex
	surface  Surface
	lockMode func() bool
	state    State

	listeners []func(State)
}

// NewController builds a controller around the surface. lockMode reports
// whether the hotkey toggles (lock) rather than holds.
func NewController(surface Surface, lockMode func() bool) *Controller {
	return &Controller{surface: surface, lockMode: lockMode}
}

// OnStateChanged registers a listener for mode transitions. Listeners run
// on the goroutine that triggered the transition.
func (c *Controller) OnStateChanged(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// State reports the current mode.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enable reacts to a hotkey activation. In lock mode it toggles: a press
// while ActiveLocked deactivates, otherwise it locks the surface on. In
// hold mode it enters ActiveHeld. If showing the surface fails the
// controller forces itself back to Inactive and returns the error so the
// caller can run an emergency reset.
func (c *Controller) Enable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lockMode() {
		if c.state == ActiveLocked {
			c.deactivateLocked()
			return nil
		}
		return c.activateLocked(ActiveLocked)
	}
	if c.state == ActiveHeld {
		return nil
	}
	return c.activateLocked(ActiveHeld)
}

// Disable reacts to a hotkey deactivation. In lock mode this is a no-op:
// a locked surface is only dismissed by a second Enable toggle or by
// escape, never by the combination being released. In hold mode it ends
// the ActiveHeld session.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lockMode() {
		return
	}
	if c.state == ActiveHeld {
		c.deactivateLocked()
	}
}

// ForceDisable reacts to the escape key. When the help overlay is open
// it closes only the overlay and the surface stays active; otherwise it
// forces Inactive from any state. Cleanup is best effort and never
// panics past this method: escape is the last line of defense against
// leaving input capture active.
func (c *Controller) ForceDisable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Inactive {
		return
	}
	if helpVisible(c.surface) {
		hideHelp(c.surface)
		return
	}
	c.state = Inactive
	step("hide surface", func() {
		if err := c.surface.Hide(); err != nil {
			log.Printf("mode: hide surface: %v", err)
		}
	})
	c.notifyLocked(Inactive)
}

// EmergencyReset forces Inactive from any state, for use by a top-level
// fault handler. It is idempotent and every cleanup step is independently
// guarded so one failure cannot skip the rest.
func (c *Controller) EmergencyReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	c.state = Inactive
	step("hide help", func() {
		if c.surface.HelpVisible() {
			c.surface.HideHelp()
		}
	})
	step("hide surface", func() {
		if err := c.surface.Hide(); err != nil {
			log.Printf("mode: emergency hide: %v", err)
		}
	})
	if prev != Inactive {
		c.notifyLocked(Inactive)
	}
}

// activateLocked moves into next, showing and focusing the surface. On
// failure it rolls back to Inactive before returning the error.
func (c *Controller) activateLocked(next State) error {
	if err := c.surface.Show(); err != nil {
		c.state = Inactive
		if herr := c.surface.Hide(); herr != nil {
			log.Printf("mode: rollback hide: %v", herr)
		}
		return fmt.Errorf("show drawing surface: %w", err)
	}
	c.surface.Focus()
	c.state = next
	c.notifyLocked(next)
	return nil
}

func (c *Controller) deactivateLocked() {
	c.state = Inactive
	if err := c.surface.Hide(); err != nil {
		log.Printf("mode: hide surface: %v", err)
	}
	c.notifyLocked(Inactive)
}

// notifyLocked fires the state listeners; each is individually recovered
// so one failing listener cannot stop delivery to the others.
func (c *Controller) notifyLocked(s State) {
	for _, fn := range c.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("mode: listener panic: %v", r)
				}
			}()
			fn(s)
		}()
	}
}

func helpVisible(s Surface) (visible bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("mode: help query panic: %v", r)
			visible = false
		}
	}()
	return s.HelpVisible()
}

func hideHelp(s Surface) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("mode: hide help panic: %v", r)
		}
	}()
	s.HideHelp()
}

func step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("mode: emergency reset %s: %v", name, r)
		}
	}()
	fn()
}
