// Package history keeps the undo stack for the drawing surface.
//
// Entries removed by the eraser become inert tombstones: they remain on
// the stack so ordering is preserved, but undo skips them and they can
// never be restored.
package history

import (
	"sync"

	"github.com/example/glasspen/internal/element"
)

type entry struct {
	id      uint64
	el      *element.Element
	removed bool
}

// History is an undo stack keyed by stable per-element identifiers.
type History struct {
	mu     sync.Mutex
	stack  []*entry
	byID   map[uint64]*entry
	nextID uint64
}

// New creates an empty History.
func New() *History {
	return &History{byID: make(map[uint64]*entry)}
}

// Record mints an identifier for a freshly completed element, attaches it
// to the element, and pushes it onto the undo stack.
func (h *History) Record(el *element.Element) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	el.ID = h.nextID
	e := &entry{id: el.ID, el: el}
	h.stack = append(h.stack, e)
	h.byID[e.id] = e
	return e.id
}

// UndoLast pops the most recent non-removed element from the stack. Entries
// tombstoned by Remove are discarded while popping, so one call may shrink
// the stack by more than one entry. The returned element is detached from
// the history; the caller removes it from the surface. ok is false when the
// stack is exhausted.
func (h *History) UndoLast() (el *element.Element, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for len(h.stack) > 0 {
		top := h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		if top.removed {
			continue
		}
		delete(h.byID, top.id)
		return top.el, true
	}
	return nil, false
}

// Remove tombstones the entry for an element erased from the surface. The
// entry is evicted from the lookup map immediately; its stack slot stays
// behind as a tombstone that UndoLast skips. This is what makes eraser
// deletions permanent.
func (h *History) Remove(el *element.Element) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.byID[el.ID]
	if !ok {
		return
	}
	e.removed = true
	delete(h.byID, e.id)
}

// Clear empties the stack and the lookup map.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = nil
	h.byID = make(map[uint64]*entry)
}

// Len reports the number of undoable (non-tombstoned) entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.byID)
}
