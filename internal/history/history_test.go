package history

import (
	"image"
	"testing"

	"github.com/example/glasspen/internal/element"
)

func rect(x0, y0, x1, y1 int) *element.Element {
	return &element.Element{Kind: element.KindRect, Rect: image.Rect(x0, y0, x1, y1)}
}

func TestRecordAssignsStableIDs(t *testing.T) {
	h := New()
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)
	idA := h.Record(a)
	idB := h.Record(b)
	if idA == idB {
		t.Fatal("identifiers must be unique")
	}
	if a.ID != idA || b.ID != idB {
		t.Error("identifier not attached to element")
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
}

func TestUndoReturnsMostRecent(t *testing.T) {
	h := New()
	a := rect(0, 0, 10, 10)
	b := rect(5, 5, 15, 15)
	h.Record(a)
	h.Record(b)

	el, ok := h.UndoLast()
	if !ok || el != b {
		t.Fatalf("UndoLast = %v, %v; want b", el, ok)
	}
	el, ok = h.UndoLast()
	if !ok || el != a {
		t.Fatalf("UndoLast = %v, %v; want a", el, ok)
	}
	if _, ok := h.UndoLast(); ok {
		t.Error("UndoLast on empty history should report exhaustion")
	}
}

func TestRemoveMakesErasurePermanent(t *testing.T) {
	h := New()
	first := rect(0, 0, 10, 10)
	second := rect(20, 20, 30, 30)
	h.Record(first)
	h.Record(second)

	h.Remove(first)

	// First undo skips nothing (second is on top) and returns the second
	// rectangle, not the erased first one.
	el, ok := h.UndoLast()
	if !ok || el != second {
		t.Fatalf("first undo = %v, %v; want second rect", el, ok)
	}
	// Second undo finds only the tombstone and reports exhaustion.
	if el, ok := h.UndoLast(); ok {
		t.Fatalf("second undo returned %v; want nothing", el)
	}
}

func TestUndoSkipsTombstonesOnTop(t *testing.T) {
	h := New()
	bottom := rect(0, 0, 5, 5)
	mid := rect(1, 1, 6, 6)
	top := rect(2, 2, 7, 7)
	h.Record(bottom)
	h.Record(mid)
	h.Record(top)

	h.Remove(top)
	h.Remove(mid)

	// A single undo call pops both tombstones before finding bottom.
	el, ok := h.UndoLast()
	if !ok || el != bottom {
		t.Fatalf("UndoLast = %v, %v; want bottom", el, ok)
	}
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestRemoveUnknownElementIgnored(t *testing.T) {
	h := New()
	h.Record(rect(0, 0, 1, 1))
	stray := rect(9, 9, 10, 10) // never recorded
	h.Remove(stray)
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestRemoveAfterUndoIgnored(t *testing.T) {
	h := New()
	a := rect(0, 0, 1, 1)
	h.Record(a)
	if _, ok := h.UndoLast(); !ok {
		t.Fatal("undo failed")
	}
	// Element already detached; a late Remove must not corrupt anything.
	h.Remove(a)
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestClear(t *testing.T) {
	h := New()
	h.Record(rect(0, 0, 1, 1))
	h.Record(rect(1, 1, 2, 2))
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len = %d after Clear", h.Len())
	}
	if _, ok := h.UndoLast(); ok {
		t.Error("UndoLast after Clear should report exhaustion")
	}
}

func TestInterleavedRecordEraseUndo(t *testing.T) {
	h := New()
	var erased []*element.Element
	els := make([]*element.Element, 6)
	for i := range els {
		els[i] = rect(i, i, i+10, i+10)
		h.Record(els[i])
	}
	for _, i := range []int{1, 3, 5} {
		h.Remove(els[i])
		erased = append(erased, els[i])
	}
	for {
		el, ok := h.UndoLast()
		if !ok {
			break
		}
		for _, bad := range erased {
			if el == bad {
				t.Fatalf("undo returned erased element %v", el.ID)
			}
		}
	}
}
