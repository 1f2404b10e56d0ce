// Package tools routes pointer input to the active drawing tool and turns
// gestures into finished elements.
//
// Everything here runs on the overlay event-loop goroutine; tools keep no
// locks of their own.
package tools

import (
	"image"
	"image/color"

	"github.com/example/glasspen/internal/element"
)

// Kind names the selectable tool variants. Exactly one is active at a
// time.
type Kind int

const (
	Pen Kind = iota
	Line
	Eraser
	Rect
	Circle
	Arrow
	Text
)

func (k Kind) String() string {
	switch k {
	case Pen:
		return "pen"
	case Line:
		return "line"
	case Eraser:
		return "eraser"
	case Rect:
		return "rect"
	case Circle:
		return "circle"
	case Arrow:
		return "arrow"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Pointer is one pointer event in surface coordinates. PrimaryDown reports
// whether the primary button is held during a move; Constrain reports the
// square/circle constrain modifier, sampled at event time.
type Pointer struct {
	Pos         image.Point
	PrimaryDown bool
	Constrain   bool
}

// Tool is the capability set every variant implements. Deactivated and
// Cancel must discard any half-finished shape.
type Tool interface {
	Kind() Kind
	Activated()
	Deactivated()
	PointerDown(p Pointer)
	PointerMove(p Pointer)
	PointerUp(p Pointer)
	ColorChanged(c color.RGBA)
	ThicknessChanged(v int)
	Cancel()
}

// Canvas is the drawing surface as seen by the tools. Add transfers
// ownership of a finished element to the surface; SetPreview installs a
// live in-progress element that the surface renders above the finished
// ones until cleared.
type Canvas interface {
	Add(el *element.Element)
	Remove(el *element.Element) bool
	SetPreview(el *element.Element)
	ClearPreview()
	Elements() []*element.Element
	// MeasureText reports the rendered size of a text run, used by the
	// text tool for its editable region and caret placement.
	MeasureText(text string) (w, h int)
}
