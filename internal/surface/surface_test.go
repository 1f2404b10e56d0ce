package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/glasspen/internal/element"
)

var red = color.RGBA{R: 255, A: 255}

func TestRenderLine(t *testing.T) {
	s := New()
	s.Add(&element.Element{
		Kind:  element.KindLine,
		Start: image.Pt(0, 5),
		End:   image.Pt(9, 5),
		Style: element.Style{Color: red, Thickness: 1},
	})

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Render(dst)

	if got := dst.RGBAAt(5, 5); got != red {
		t.Errorf("pixel (5,5) = %+v, want %+v", got, red)
	}
	if got := dst.RGBAAt(5, 0); got.A != 0 {
		t.Errorf("pixel off the line painted: %+v", got)
	}
}

func TestPreviewRendersAboveElements(t *testing.T) {
	s := New()
	blue := color.RGBA{B: 255, A: 255}
	s.Add(&element.Element{
		Kind:  element.KindLine,
		Start: image.Pt(0, 5),
		End:   image.Pt(9, 5),
		Style: element.Style{Color: red, Thickness: 1},
	})
	s.SetPreview(&element.Element{
		Kind:  element.KindLine,
		Start: image.Pt(0, 5),
		End:   image.Pt(9, 5),
		Style: element.Style{Color: blue, Thickness: 1},
	})

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Render(dst)
	if got := dst.RGBAAt(5, 5); got != blue {
		t.Errorf("pixel (5,5) = %+v, want preview color %+v", got, blue)
	}

	s.ClearPreview()
	dst = image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Render(dst)
	if got := dst.RGBAAt(5, 5); got != red {
		t.Errorf("pixel (5,5) after clear = %+v, want %+v", got, red)
	}
}

func TestRemove(t *testing.T) {
	s := New()
	el := &element.Element{Kind: element.KindRect, Rect: image.Rect(0, 0, 5, 5)}
	s.Add(el)

	if !s.Remove(el) {
		t.Fatal("Remove reported absent element")
	}
	if s.Remove(el) {
		t.Error("second Remove reported success")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestRemoveByID(t *testing.T) {
	s := New()
	el := &element.Element{ID: 7, Kind: element.KindRect, Rect: image.Rect(0, 0, 5, 5)}
	s.Add(el)

	if !s.RemoveByID(7) {
		t.Fatal("RemoveByID missed the element")
	}
	if s.RemoveByID(7) {
		t.Error("second RemoveByID reported success")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(&element.Element{Kind: element.KindRect})
	s.SetPreview(&element.Element{Kind: element.KindLine})
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.Render(dst)
	for i := range dst.Pix {
		if dst.Pix[i] != 0 {
			t.Fatal("cleared surface still painted pixels")
		}
	}
}

func TestMeasureText(t *testing.T) {
	s := New()
	w1, h := s.MeasureText("a")
	w2, _ := s.MeasureText("aaaa")
	if w1 <= 0 || h <= 0 {
		t.Fatalf("measure = %dx%d", w1, h)
	}
	if w2 <= w1 {
		t.Errorf("longer run not wider: %d vs %d", w2, w1)
	}
}

func TestHelpOverlay(t *testing.T) {
	s := New()
	if s.HelpVisible() {
		t.Fatal("help visible on a fresh surface")
	}
	s.ToggleHelp()
	if !s.HelpVisible() {
		t.Fatal("help not visible after toggle")
	}

	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	s.Render(dst)
	painted := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Error("help overlay rendered nothing")
	}

	s.HideHelp()
	if s.HelpVisible() {
		t.Error("help still visible after hide")
	}
}

func TestPaletteLookup(t *testing.T) {
	c, ok := ColorByName("Red")
	if !ok || c != red {
		t.Errorf("ColorByName(Red) = %+v, %v", c, ok)
	}
	if _, ok := ColorByName("NoSuchColor"); ok {
		t.Error("unknown name resolved")
	}
	if got := ColorAt(-1); got != red {
		t.Errorf("ColorAt(-1) = %+v, want first entry", got)
	}
	if got, last := ColorAt(999), palette[len(palette)-1]; got != last {
		t.Errorf("ColorAt(999) = %+v, want last entry", got)
	}
}
