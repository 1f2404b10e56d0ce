// Package surface owns the annotation canvas: the finished elements, the
// live preview, and rasterization into a window buffer.
package surface

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/glasspen/internal/element"
	"github.com/example/glasspen/internal/theme"
)

var textFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	textFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// Surface holds the drawable state. All methods run on the overlay
// event-loop goroutine; the surface keeps no locks of its own.
type Surface struct {
	elements []*element.Element
	preview  *element.Element

	helpVisible bool
	th          *theme.Theme

	// eraserAt is the cursor position to outline the eraser region at, or
	// nil when the eraser is not the active tool.
	eraserAt   *image.Point
	eraserSize int
}

// New returns an empty surface with the default theme.
func New() *Surface {
	return &Surface{th: theme.Default()}
}

// SetTheme switches the overlay chrome colors. A nil theme restores the
// default.
func (s *Surface) SetTheme(th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	s.th = th
}

// Add appends a finished element. The surface owns it from here on.
func (s *Surface) Add(el *element.Element) {
	s.elements = append(s.elements, el)
}

// Remove deletes el from the surface, reporting whether it was present.
func (s *Surface) Remove(el *element.Element) bool {
	for i, have := range s.elements {
		if have == el {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByID deletes the element carrying id, for the undo path where the
// caller only has the history identifier.
func (s *Surface) RemoveByID(id uint64) bool {
	for i, have := range s.elements {
		if have.ID == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return true
		}
	}
	return false
}

// SetPreview installs the live in-progress element.
func (s *Surface) SetPreview(el *element.Element) { s.preview = el }

// ClearPreview removes the live preview.
func (s *Surface) ClearPreview() { s.preview = nil }

// Elements returns the finished elements in paint order. The slice is a
// copy; the elements are not.
func (s *Surface) Elements() []*element.Element {
	out := make([]*element.Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Clear removes every finished element and the preview.
func (s *Surface) Clear() {
	s.elements = nil
	s.preview = nil
}

// Len reports the number of finished elements.
func (s *Surface) Len() int { return len(s.elements) }

// MeasureText reports the rendered size of a text run in the annotation
// face.
func (s *Surface) MeasureText(text string) (int, int) {
	d := &font.Drawer{Face: textFace}
	w := d.MeasureString(text).Ceil()
	m := textFace.Metrics()
	return w, m.Ascent.Ceil() + m.Descent.Ceil()
}

// ShowHelp makes the shortcut overlay visible.
func (s *Surface) ShowHelp() { s.helpVisible = true }

// HideHelp dismisses the shortcut overlay.
func (s *Surface) HideHelp() { s.helpVisible = false }

// ToggleHelp flips the shortcut overlay.
func (s *Surface) ToggleHelp() { s.helpVisible = !s.helpVisible }

// HelpVisible reports whether the shortcut overlay is shown.
func (s *Surface) HelpVisible() bool { return s.helpVisible }

// SetEraserCursor positions the eraser region outline, or hides it when
// at is nil.
func (s *Surface) SetEraserCursor(at *image.Point, size int) {
	s.eraserAt = at
	s.eraserSize = size
}

// Render paints the finished elements, the live preview, the eraser
// outline, and the help overlay into dst, in that order.
func (s *Surface) Render(dst *image.RGBA) {
	for _, el := range s.elements {
		renderElement(dst, el)
	}
	if s.preview != nil {
		renderElement(dst, s.preview)
		if s.preview.Kind == element.KindText {
			renderCaret(dst, s.preview)
		}
	}
	if s.eraserAt != nil {
		size := s.eraserSize
		if size < 1 {
			size = 1
		}
		half := size / 2
		r := image.Rect(s.eraserAt.X-half, s.eraserAt.Y-half, s.eraserAt.X-half+size, s.eraserAt.Y-half+size)
		drawRectOutline(dst, r, s.th.EraserOutlineLight, 1)
		drawRectOutline(dst, r.Inset(-1), s.th.EraserOutlineDark, 1)
	}
	if s.helpVisible {
		renderHelp(dst, s.th)
	}
}

// RenderAnnotations paints only the finished elements and the preview,
// without the eraser cursor or the help overlay. Used when compositing a
// screenshot.
func (s *Surface) RenderAnnotations(dst *image.RGBA) {
	for _, el := range s.elements {
		renderElement(dst, el)
	}
	if s.preview != nil {
		renderElement(dst, s.preview)
	}
}

func renderElement(dst *image.RGBA, el *element.Element) {
	col := el.Style.Color
	thick := el.Style.Thickness
	switch el.Kind {
	case element.KindStroke:
		drawStroke(dst, el.Points, col, thick)
	case element.KindLine:
		drawLine(dst, el.Start.X, el.Start.Y, el.End.X, el.End.Y, col, thick)
	case element.KindRect:
		drawRectOutline(dst, el.Rect, col, thick)
	case element.KindEllipse:
		drawEllipseInRect(dst, el.Rect, col, thick)
	case element.KindArrow:
		drawArrow(dst, el.Start.X, el.Start.Y, el.End.X, el.End.Y, col, thick)
	case element.KindText:
		renderText(dst, el)
	}
}

func renderText(dst *image.RGBA, el *element.Element) {
	if el.Text == "" {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(el.Style.Color), Face: textFace}
	baseline := el.Origin.Y + textFace.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(el.Origin.X, baseline)
	d.DrawString(el.Text)
}

func renderCaret(dst *image.RGBA, el *element.Element) {
	d := &font.Drawer{Face: textFace}
	w := d.MeasureString(el.Text).Ceil()
	m := textFace.Metrics()
	x := el.Origin.X + w + 1
	drawLine(dst, x, el.Origin.Y, x, el.Origin.Y+m.Ascent.Ceil()+m.Descent.Ceil(), el.Style.Color, 1)
}
