// Package hotkey edge-detects a configurable multi-key combination from the
// raw key stream delivered by the capture hook.
package hotkey

import (
	"sync"

	"github.com/example/glasspen/internal/keys"
)

// Detector tracks the pressed state of every key in the configured
// combination and fires Activated exactly once when the last key of the set
// goes down, and Deactivated exactly once when the first key of the set is
// released again.
//
// A single hardcoded escape key is tracked independently of the
// combination: it is a pure key-down edge trigger with no state machine.
type Detector struct {
	mu sync.Mutex

	combo           keys.Combination
	pressed         map[keys.Code]bool
	wasFullyPressed bool

	onActivated   func()
	onDeactivated func()
	onEscape      func()
}

// New creates a Detector with no combination configured. Callbacks may be
// nil; they are invoked on the goroutine that calls HandleKey.
func New(onActivated, onDeactivated, onEscape func()) *Detector {
	return &Detector{
		pressed:       make(map[keys.Code]bool),
		onActivated:   onActivated,
		onDeactivated: onDeactivated,
		onEscape:      onEscape,
	}
}

// Configure replaces the tracked combination. The per-key pressed state is
// replaced wholesale with a zeroed map and the edge flag is cleared, so a
// reconfiguration mid-press can never produce a spurious transition from
// stale state.
func (d *Detector) Configure(combo keys.Combination) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.combo = append(keys.Combination(nil), combo...)
	d.pressed = make(map[keys.Code]bool, len(combo))
	for _, code := range combo {
		d.pressed[code] = false
	}
	d.wasFullyPressed = false
}

// Combination returns a copy of the currently configured combination.
func (d *Detector) Combination() keys.Combination {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append(keys.Combination(nil), d.combo...)
}

// HandleKey consumes one raw key transition. Events for keys outside the
// configured combination are ignored, except the escape key which always
// fires the escape callback on key-down.
func (d *Detector) HandleKey(code keys.Code, down bool) {
	if code == keys.CodeEscape {
		if down && d.onEscape != nil {
			d.onEscape()
		}
		return
	}

	d.mu.Lock()
	if _, tracked := d.pressed[code]; !tracked {
		d.mu.Unlock()
		return
	}
	d.pressed[code] = down

	fully := len(d.pressed) > 0
	for _, p := range d.pressed {
		if !p {
			fully = false
			break
		}
	}

	var fire func()
	if fully && !d.wasFullyPressed {
		fire = d.onActivated
	} else if !fully && d.wasFullyPressed {
		fire = d.onDeactivated
	}
	d.wasFullyPressed = fully
	d.mu.Unlock()

	if fire != nil {
		fire()
	}
}
