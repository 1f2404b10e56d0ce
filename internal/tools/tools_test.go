package tools

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/glasspen/internal/element"
)

// fakeCanvas records surface calls for inspection.
type fakeCanvas struct {
	elements []*element.Element
	preview  *element.Element
}

func (c *fakeCanvas) Add(el *element.Element) {
	c.elements = append(c.elements, el)
}

func (c *fakeCanvas) Remove(el *element.Element) bool {
	for i, have := range c.elements {
		if have == el {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			return true
		}
	}
	return false
}

func (c *fakeCanvas) SetPreview(el *element.Element) { c.preview = el }

func (c *fakeCanvas) ClearPreview() { c.preview = nil }

func (c *fakeCanvas) Elements() []*element.Element {
	out := make([]*element.Element, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *fakeCanvas) MeasureText(text string) (int, int) {
	return 8 * len([]rune(text)), 16
}

func newTestEngine(t *testing.T) (*Engine, *fakeCanvas, *[]*element.Element, *[]*element.Element) {
	t.Helper()
	canvas := &fakeCanvas{}
	e := NewEngine(canvas, element.Style{Color: color.RGBA{R: 255, A: 255}, Thickness: 3}, 10)
	var completed, erased []*element.Element
	e.OnCompleted(func(el *element.Element) { completed = append(completed, el) })
	e.OnErased(func(el *element.Element) { erased = append(erased, el) })
	return e, canvas, &completed, &erased
}

func down(x, y int) Pointer { return Pointer{Pos: image.Pt(x, y), PrimaryDown: true} }

func move(x, y int) Pointer { return Pointer{Pos: image.Pt(x, y), PrimaryDown: true} }

func TestPenStroke(t *testing.T) {
	e, canvas, completed, _ := newTestEngine(t)

	e.PointerDown(down(10, 10))
	if canvas.preview == nil {
		t.Fatal("expected live preview during stroke")
	}
	for _, p := range []image.Point{{12, 11}, {14, 13}, {17, 15}, {20, 18}} {
		e.PointerMove(Pointer{Pos: p, PrimaryDown: true})
	}
	e.PointerUp(Pointer{Pos: image.Pt(20, 18)})

	if canvas.preview != nil {
		t.Error("preview not cleared after release")
	}
	if len(*completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(*completed))
	}
	el := (*completed)[0]
	if el.Kind != element.KindStroke {
		t.Errorf("kind = %v, want stroke", el.Kind)
	}
	if len(el.Points) != 5 {
		t.Errorf("points = %d, want 5", len(el.Points))
	}
	if len(canvas.elements) != 1 {
		t.Errorf("surface elements = %d, want 1", len(canvas.elements))
	}
}

func TestTwoPointLine(t *testing.T) {
	e, canvas, completed, _ := newTestEngine(t)
	e.Select(Line)

	e.PointerDown(down(5, 5))
	if canvas.preview == nil {
		t.Fatal("expected preview after first click")
	}
	e.PointerMove(move(40, 20))
	if got := canvas.preview.End; got != image.Pt(40, 20) {
		t.Errorf("preview end = %v, want (40,20)", got)
	}
	e.PointerDown(down(40, 20))

	if len(*completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(*completed))
	}
	el := (*completed)[0]
	if el.Start != image.Pt(5, 5) || el.End != image.Pt(40, 20) {
		t.Errorf("line = %v-%v", el.Start, el.End)
	}
	if canvas.preview != nil {
		t.Error("preview not cleared after second click")
	}
}

func TestConstrainedRectTakesMinDimension(t *testing.T) {
	e, _, completed, _ := newTestEngine(t)
	e.Select(Rect)

	e.PointerDown(down(0, 0))
	e.PointerMove(Pointer{Pos: image.Pt(30, 10), PrimaryDown: true, Constrain: true})
	e.PointerDown(Pointer{Pos: image.Pt(30, 10), PrimaryDown: true, Constrain: true})

	r := (*completed)[0].Rect.Canon()
	if r.Dx() != 10 || r.Dy() != 10 {
		t.Errorf("constrained rect = %dx%d, want 10x10", r.Dx(), r.Dy())
	}
}

func TestConstrainedCircleTakesMaxDimension(t *testing.T) {
	e, _, completed, _ := newTestEngine(t)
	e.Select(Circle)

	e.PointerDown(down(0, 0))
	e.PointerDown(Pointer{Pos: image.Pt(30, 10), PrimaryDown: true, Constrain: true})

	r := (*completed)[0].Rect.Canon()
	if r.Dx() != 30 || r.Dy() != 30 {
		t.Errorf("constrained circle box = %dx%d, want 30x30", r.Dx(), r.Dy())
	}
}

func TestConstrainReleasedMidDrag(t *testing.T) {
	e, canvas, _, _ := newTestEngine(t)
	e.Select(Rect)

	e.PointerDown(down(0, 0))
	e.PointerMove(Pointer{Pos: image.Pt(30, 10), PrimaryDown: true, Constrain: true})
	if r := canvas.preview.Rect.Canon(); r.Dx() != 10 || r.Dy() != 10 {
		t.Fatalf("constrained preview = %dx%d, want 10x10", r.Dx(), r.Dy())
	}
	e.PointerMove(Pointer{Pos: image.Pt(30, 10), PrimaryDown: true})
	if r := canvas.preview.Rect.Canon(); r.Dx() != 30 || r.Dy() != 10 {
		t.Errorf("unconstrained preview = %dx%d, want 30x10", r.Dx(), r.Dy())
	}
}

func TestToolSwitchDiscardsPendingShape(t *testing.T) {
	e, canvas, completed, _ := newTestEngine(t)
	e.Select(Rect)

	e.PointerDown(down(0, 0))
	e.PointerMove(move(20, 20))
	e.Select(Pen)

	if canvas.preview != nil {
		t.Error("preview survived tool switch")
	}
	if len(*completed) != 0 {
		t.Errorf("completed = %d, want 0", len(*completed))
	}
	if len(canvas.elements) != 0 {
		t.Errorf("surface elements = %d, want 0", len(canvas.elements))
	}
}

func TestStyleChangeRestylesPreview(t *testing.T) {
	e, canvas, _, _ := newTestEngine(t)
	e.Select(Line)

	e.PointerDown(down(0, 0))
	blue := color.RGBA{B: 255, A: 255}
	e.SetColor(blue)
	e.SetThickness(7)

	if canvas.preview.Style.Color != blue {
		t.Errorf("preview color = %v, want %v", canvas.preview.Style.Color, blue)
	}
	if canvas.preview.Style.Thickness != 7 {
		t.Errorf("preview thickness = %d, want 7", canvas.preview.Style.Thickness)
	}

	e.PointerDown(down(10, 10))
	e.PointerDown(down(20, 20))
	if canvas.preview.Style.Color != blue {
		t.Error("new shape did not inherit updated style")
	}
}

func TestEraserReportsEachElementOncePerGesture(t *testing.T) {
	e, canvas, _, erased := newTestEngine(t)

	el := &element.Element{
		Kind:   element.KindStroke,
		Points: []image.Point{{50, 50}, {51, 50}},
		Style:  element.Style{Thickness: 1},
	}
	canvas.Add(el)

	e.Select(Eraser)
	e.PointerDown(down(50, 50))
	e.PointerMove(move(51, 50))
	e.PointerMove(move(50, 51))
	e.PointerUp(Pointer{Pos: image.Pt(50, 51)})

	if len(*erased) != 1 {
		t.Fatalf("erased = %d, want 1", len(*erased))
	}
	if (*erased)[0] != el {
		t.Error("wrong element reported")
	}
	if len(canvas.elements) != 0 {
		t.Error("element still on surface")
	}
}

func TestEraserIgnoresMissedElements(t *testing.T) {
	e, canvas, _, erased := newTestEngine(t)

	canvas.Add(&element.Element{
		Kind:   element.KindStroke,
		Points: []image.Point{{200, 200}},
		Style:  element.Style{Thickness: 1},
	})

	e.Select(Eraser)
	e.PointerDown(down(10, 10))
	e.PointerUp(Pointer{Pos: image.Pt(10, 10)})

	if len(*erased) != 0 {
		t.Errorf("erased = %d, want 0", len(*erased))
	}
	if len(canvas.elements) != 1 {
		t.Error("element removed without a hit")
	}
}

func TestTextCommitOnOutsideClick(t *testing.T) {
	e, canvas, completed, _ := newTestEngine(t)
	e.Select(Text)

	e.PointerDown(down(100, 100))
	for _, r := range "hi" {
		e.TextInput(r)
	}
	if canvas.preview == nil || canvas.preview.Text != "hi" {
		t.Fatal("expected live text preview")
	}
	// Click well outside the edit region: commits and starts a new edit.
	e.PointerDown(down(400, 400))

	if len(*completed) != 1 {
		t.Fatalf("completed = %d, want 1", len(*completed))
	}
	el := (*completed)[0]
	if el.Kind != element.KindText || el.Text != "hi" {
		t.Errorf("committed %v %q", el.Kind, el.Text)
	}
	if el.Origin != image.Pt(100, 100) {
		t.Errorf("origin = %v, want (100,100)", el.Origin)
	}
}

func TestEmptyTextDiscarded(t *testing.T) {
	e, canvas, completed, _ := newTestEngine(t)
	e.Select(Text)

	e.PointerDown(down(100, 100))
	e.PointerDown(down(400, 400))
	e.TextCommit()

	if len(*completed) != 0 {
		t.Errorf("completed = %d, want 0", len(*completed))
	}
	if len(canvas.elements) != 0 {
		t.Error("empty text reached the surface")
	}
}

func TestTextBackspace(t *testing.T) {
	e, canvas, _, _ := newTestEngine(t)
	e.Select(Text)

	e.PointerDown(down(0, 0))
	for _, r := range "abc" {
		e.TextInput(r)
	}
	e.TextBackspace()

	if canvas.preview.Text != "ab" {
		t.Errorf("text = %q, want %q", canvas.preview.Text, "ab")
	}
}

func TestSelectSameKindKeepsGesture(t *testing.T) {
	e, canvas, _, _ := newTestEngine(t)
	e.Select(Line)
	e.PointerDown(down(0, 0))
	e.Select(Line)
	if canvas.preview == nil {
		t.Error("re-selecting the active tool discarded the gesture")
	}
}

func TestSubscriberPanicContained(t *testing.T) {
	e, _, completed, _ := newTestEngine(t)
	e.OnCompleted(func(el *element.Element) { panic("boom") })

	e.PointerDown(down(0, 0))
	e.PointerUp(Pointer{Pos: image.Pt(0, 0)})

	if len(*completed) != 1 {
		t.Errorf("completed = %d, want 1", len(*completed))
	}
}
