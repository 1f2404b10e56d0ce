package tools

import (
	"image"
	"image/color"

	"github.com/example/glasspen/internal/element"
)

// twoPointTool implements the two-click shape model shared by the line,
// rectangle, circle, and arrow variants. The first pointer-down anchors the
// shape and installs a zero-size live preview; pointer-move drags the free
// end; the second pointer-down finalizes.
type twoPointTool struct {
	kind   Kind
	canvas Canvas
	emit   func(*element.Element)
	style  element.Style

	pending bool
	anchor  image.Point
	cur     *element.Element
}

func (t *twoPointTool) Kind() Kind { return t.kind }

func (t *twoPointTool) Activated() {}

func (t *twoPointTool) Deactivated() { t.Cancel() }

func (t *twoPointTool) PointerDown(p Pointer) {
	if !t.pending {
		t.pending = true
		t.anchor = p.Pos
		t.cur = &element.Element{Kind: t.elementKind(), Style: t.style}
		t.shape(t.cur, p.Pos, p.Constrain)
		t.canvas.SetPreview(t.cur)
		return
	}

	done := t.cur
	t.shape(done, p.Pos, p.Constrain)
	t.pending = false
	t.cur = nil
	t.canvas.ClearPreview()
	t.canvas.Add(done)
	t.emit(done)
}

func (t *twoPointTool) PointerMove(p Pointer) {
	if !t.pending || t.cur == nil {
		return
	}
	t.shape(t.cur, p.Pos, p.Constrain)
}

func (t *twoPointTool) PointerUp(p Pointer) {}

func (t *twoPointTool) ColorChanged(c color.RGBA) {
	t.style.Color = c
	if t.cur != nil {
		t.cur.Style.Color = c
	}
}

func (t *twoPointTool) ThicknessChanged(v int) {
	t.style.Thickness = v
	if t.cur != nil {
		t.cur.Style.Thickness = v
	}
}

func (t *twoPointTool) Cancel() {
	if t.pending {
		t.pending = false
		t.cur = nil
		t.canvas.ClearPreview()
	}
}

func (t *twoPointTool) elementKind() element.Kind {
	switch t.kind {
	case Line:
		return element.KindLine
	case Rect:
		return element.KindRect
	case Circle:
		return element.KindEllipse
	case Arrow:
		return element.KindArrow
	default:
		return element.KindLine
	}
}

// shape recomputes the element geometry from the anchor and the current
// cursor position. The constrain modifier is honored here, at update time,
// so the preview snaps while the modifier is held and releases when it is
// let go mid-drag.
func (t *twoPointTool) shape(el *element.Element, pos image.Point, constrain bool) {
	switch t.kind {
	case Line, Arrow:
		el.Start = t.anchor
		el.End = pos
	case Rect:
		el.Rect = dragRect(t.anchor, pos, constrain, false)
	case Circle:
		el.Rect = dragRect(t.anchor, pos, constrain, true)
	}
}

// dragRect computes the axis-aligned box dragged from anchor to pos. With
// the constrain modifier, the rectangle takes the minimum of the dragged
// dimensions so the square always fits inside the dragged bounds; the
// circle takes the maximum so its box always covers them. The asymmetry is
// intentional.
func dragRect(anchor, pos image.Point, constrain, covering bool) image.Rectangle {
	dx := pos.X - anchor.X
	dy := pos.Y - anchor.Y
	if constrain {
		w, h := abs(dx), abs(dy)
		side := w
		if covering {
			if h > side {
				side = h
			}
		} else {
			if h < side {
				side = h
			}
		}
		dx = side * sign(dx)
		dy = side * sign(dy)
	}
	return image.Rect(anchor.X, anchor.Y, anchor.X+dx, anchor.Y+dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sign treats zero as positive so a degenerate drag still produces a
// well-formed rectangle.
func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
