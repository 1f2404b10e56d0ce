package tools

import (
	"image"
	"image/color"

	"github.com/example/glasspen/internal/element"
)

// textTool places editable text. A click opens an edit region at the click
// point; while editing, typed runes are inserted at the caret and clicks
// inside the region move the caret. A click outside the region commits the
// text as an element when it is non-empty and discards it otherwise.
type textTool struct {
	canvas Canvas
	emit   func(*element.Element)
	style  element.Style

	editing bool
	origin  image.Point
	buf     []rune
	caret   int
	cur     *element.Element
}

func (t *textTool) Kind() Kind { return Text }

func (t *textTool) Activated() {}

func (t *textTool) Deactivated() { t.Cancel() }

func (t *textTool) PointerDown(p Pointer) {
	if !t.editing {
		t.begin(p.Pos)
		return
	}
	if p.Pos.In(t.cur.TextBounds) {
		t.caret = t.caretAt(p.Pos)
		return
	}
	t.commit()
	t.begin(p.Pos)
}

func (t *textTool) PointerMove(p Pointer) {}

func (t *textTool) PointerUp(p Pointer) {}

func (t *textTool) ColorChanged(c color.RGBA) {
	t.style.Color = c
	if t.cur != nil {
		t.cur.Style.Color = c
	}
}

func (t *textTool) ThicknessChanged(v int) {
	t.style.Thickness = v
	if t.cur != nil {
		t.cur.Style.Thickness = v
		t.refresh()
	}
}

// Cancel discards any in-progress edit without committing.
func (t *textTool) Cancel() {
	if t.editing {
		t.editing = false
		t.buf = nil
		t.cur = nil
		t.canvas.ClearPreview()
	}
}

// Input inserts a rune at the caret.
func (t *textTool) Input(r rune) {
	if !t.editing {
		return
	}
	t.buf = append(t.buf[:t.caret], append([]rune{r}, t.buf[t.caret:]...)...)
	t.caret++
	t.refresh()
}

// Backspace removes the rune before the caret.
func (t *textTool) Backspace() {
	if !t.editing || t.caret == 0 {
		return
	}
	t.buf = append(t.buf[:t.caret-1], t.buf[t.caret:]...)
	t.caret--
	t.refresh()
}

// Commit finishes the current edit, emitting the element when non-empty.
// The overlay calls this on Enter and before the surface is torn down.
func (t *textTool) Commit() {
	if t.editing {
		t.commit()
	}
}

func (t *textTool) begin(pos image.Point) {
	t.editing = true
	t.origin = pos
	t.buf = nil
	t.caret = 0
	t.cur = &element.Element{Kind: element.KindText, Style: t.style, Origin: pos}
	t.refresh()
}

func (t *textTool) commit() {
	done := t.cur
	t.editing = false
	t.buf = nil
	t.cur = nil
	t.canvas.ClearPreview()
	if done.Text == "" {
		return
	}
	t.canvas.Add(done)
	t.emit(done)
}

// refresh re-measures the text and pushes the preview to the surface. An
// empty buffer still gets a minimal region so the caret has somewhere to
// blink.
func (t *textTool) refresh() {
	t.cur.Text = string(t.buf)
	w, h := t.canvas.MeasureText(t.cur.Text)
	if w < 4 {
		w = 4
	}
	t.cur.TextBounds = image.Rect(t.origin.X, t.origin.Y, t.origin.X+w, t.origin.Y+h)
	t.canvas.SetPreview(t.cur)
}

// caretAt maps a click inside the edit region to the nearest rune boundary.
func (t *textTool) caretAt(pos image.Point) int {
	for i := range t.buf {
		w, _ := t.canvas.MeasureText(string(t.buf[:i+1]))
		if t.origin.X+w > pos.X {
			return i
		}
	}
	return len(t.buf)
}
