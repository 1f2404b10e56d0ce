package tools

import (
	"image"
	"image/color"

	"github.com/example/glasspen/internal/element"
)

// penTool accumulates a freehand point sequence between pointer-down and
// pointer-up.
type penTool struct {
	canvas Canvas
	emit   func(*element.Element)
	style  element.Style
	cur    *element.Element
}

func (t *penTool) Kind() Kind { return Pen }

func (t *penTool) Activated() {}

func (t *penTool) Deactivated() { t.Cancel() }

func (t *penTool) PointerDown(p Pointer) {
	t.cur = &element.Element{
		Kind:   element.KindStroke,
		Style:  t.style,
		Points: []image.Point{p.Pos},
	}
	t.canvas.SetPreview(t.cur)
}

func (t *penTool) PointerMove(p Pointer) {
	if t.cur == nil || !p.PrimaryDown {
		return
	}
	t.cur.Points = append(t.cur.Points, p.Pos)
}

func (t *penTool) PointerUp(p Pointer) {
	if t.cur == nil {
		return
	}
	done := t.cur
	t.cur = nil
	t.canvas.ClearPreview()
	t.canvas.Add(done)
	t.emit(done)
}

func (t *penTool) ColorChanged(c color.RGBA) {
	t.style.Color = c
	if t.cur != nil {
		t.cur.Style.Color = c
	}
}

func (t *penTool) ThicknessChanged(v int) {
	t.style.Thickness = v
	if t.cur != nil {
		t.cur.Style.Thickness = v
	}
}

func (t *penTool) Cancel() {
	if t.cur != nil {
		t.cur = nil
		t.canvas.ClearPreview()
	}
}
