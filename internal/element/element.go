// Package element defines the visual primitives placed on the drawing
// surface by the annotation tools.
package element

import (
	"image"
	"image/color"
)

// Kind discriminates the element variants.
type Kind int

const (
	KindStroke Kind = iota
	KindLine
	KindRect
	KindEllipse
	KindArrow
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Style carries the stroke color and thickness an element was drawn with.
type Style struct {
	Color     color.RGBA
	Thickness int
}

// Element is one finished visual primitive. Which fields are meaningful
// depends on Kind: strokes use Points, lines and arrows use Start/End,
// rectangles and ellipses use Rect, text uses Origin and Text.
//
// ID is zero until the element is recorded in the drawing history; it is
// immutable afterwards.
type Element struct {
	ID    uint64
	Kind  Kind
	Style Style

	Points     []image.Point
	Start, End image.Point
	Rect       image.Rectangle
	Origin     image.Point
	Text       string

	// TextBounds is the rendered bounding box of a text element, measured
	// by the surface when the text was committed.
	TextBounds image.Rectangle
}

// ArrowHeadLength returns the arrowhead length for a stroke thickness,
// scaled so the head stays proportionate at any brush size.
func ArrowHeadLength(thickness int) int {
	if l := thickness * 4; l > 12 {
		return l
	}
	return 12
}

// ArrowHeadWidth returns the arrowhead width for a stroke thickness.
func ArrowHeadWidth(thickness int) int {
	if w := thickness * 3; w > 8 {
		return w
	}
	return 8
}

// Bounds returns the axis-aligned bounding rectangle of the element,
// inflated by the stroke thickness so hit tests against the rendered pixels
// behave sensibly.
func (e *Element) Bounds() image.Rectangle {
	var r image.Rectangle
	switch e.Kind {
	case KindStroke:
		for i, p := range e.Points {
			pr := image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}
			if i == 0 {
				r = pr
			} else {
				r = r.Union(pr)
			}
		}
	case KindLine:
		r = orderedRect(e.Start, e.End)
	case KindArrow:
		r = orderedRect(e.Start, e.End)
		// The head fans out beyond the shaft endpoints.
		r = r.Inset(-ArrowHeadWidth(e.Style.Thickness))
	case KindRect, KindEllipse:
		r = e.Rect.Canon()
	case KindText:
		return e.TextBounds
	}
	if e.Style.Thickness > 1 {
		r = r.Inset(-e.Style.Thickness / 2)
	}
	return r
}

func orderedRect(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: a.Add(image.Pt(1, 1))}.
		Union(image.Rectangle{Min: b, Max: b.Add(image.Pt(1, 1))})
}
