package tools

import (
	"image"
	"image/color"

	"github.com/example/glasspen/internal/element"
)

// eraserTool removes whole elements whose geometry intersects a square
// region around the cursor. Each drag gesture reports an element at most
// once, even when the cursor sweeps over it repeatedly.
type eraserTool struct {
	canvas Canvas
	emit   func(*element.Element)
	size   int

	dragging bool
	visited  map[*element.Element]struct{}
}

func (t *eraserTool) Kind() Kind { return Eraser }

func (t *eraserTool) Activated() {}

func (t *eraserTool) Deactivated() { t.Cancel() }

func (t *eraserTool) PointerDown(p Pointer) {
	t.dragging = true
	t.visited = make(map[*element.Element]struct{})
	t.pass(p.Pos)
}

func (t *eraserTool) PointerMove(p Pointer) {
	if !t.dragging || !p.PrimaryDown {
		return
	}
	t.pass(p.Pos)
}

func (t *eraserTool) PointerUp(p Pointer) {
	t.dragging = false
	t.visited = nil
}

func (t *eraserTool) ColorChanged(c color.RGBA) {}

func (t *eraserTool) ThicknessChanged(v int) {}

func (t *eraserTool) Cancel() {
	t.dragging = false
	t.visited = nil
}

// pass tests every element against the eraser region at pos and removes
// the hits. The scan is linear over the element list; annotation counts
// stay small enough that an index would not pay for itself.
func (t *eraserTool) pass(pos image.Point) {
	region := eraserRegion(pos, t.size)
	for _, el := range t.canvas.Elements() {
		if _, seen := t.visited[el]; seen {
			continue
		}
		if !hitElement(el, region) {
			continue
		}
		t.visited[el] = struct{}{}
		if t.canvas.Remove(el) {
			t.emit(el)
		}
	}
}

func eraserRegion(pos image.Point, size int) image.Rectangle {
	if size < 1 {
		size = 1
	}
	half := size / 2
	return image.Rect(pos.X-half, pos.Y-half, pos.X-half+size, pos.Y-half+size)
}
