package tools

import (
	"image/color"
	"log"

	"github.com/example/glasspen/internal/element"
)

// Engine holds exactly one active tool and fans gesture results out to
// subscribers. Switching tools deactivates the old tool (discarding any
// half-finished shape) before activating the new one.
type Engine struct {
	canvas Canvas
	tools  map[Kind]Tool
	active Tool

	style      element.Style
	eraserSize int

	completed   []func(*element.Element)
	erased      []func(*element.Element)
	toolChanged []func(Kind)
}

// NewEngine builds an engine with all seven tool variants attached to the
// canvas, starting with the pen active.
func NewEngine(canvas Canvas, style element.Style, eraserSize int) *Engine {
	e := &Engine{
		canvas:     canvas,
		tools:      make(map[Kind]Tool),
		style:      style,
		eraserSize: eraserSize,
	}
	e.tools[Pen] = &penTool{canvas: canvas, emit: e.emitCompleted}
	for _, k := range []Kind{Line, Rect, Circle, Arrow} {
		e.tools[k] = &twoPointTool{kind: k, canvas: canvas, emit: e.emitCompleted}
	}
	e.tools[Text] = &textTool{canvas: canvas, emit: e.emitCompleted}
	e.tools[Eraser] = &eraserTool{canvas: canvas, size: eraserSize, emit: e.emitErased}

	e.active = e.tools[Pen]
	e.active.Activated()
	e.syncActiveStyle()
	return e
}

// OnCompleted registers a subscriber for finished elements.
func (e *Engine) OnCompleted(fn func(*element.Element)) {
	e.completed = append(e.completed, fn)
}

// OnErased registers a subscriber for elements removed by the eraser.
func (e *Engine) OnErased(fn func(*element.Element)) {
	e.erased = append(e.erased, fn)
}

// OnToolChanged registers a subscriber for tool selection changes.
func (e *Engine) OnToolChanged(fn func(Kind)) {
	e.toolChanged = append(e.toolChanged, fn)
}

// A subscriber failing must not stop delivery to the others or corrupt the
// engine, so each call is individually recovered.
func (e *Engine) emitCompleted(el *element.Element) {
	for _, fn := range e.completed {
		safeCallElement(fn, el)
	}
}

func (e *Engine) emitErased(el *element.Element) {
	for _, fn := range e.erased {
		safeCallElement(fn, el)
	}
}

func safeCallElement(fn func(*element.Element), el *element.Element) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tools: subscriber panic: %v", r)
		}
	}()
	fn(el)
}

// Select switches the active tool. Selecting the already active kind is a
// no-op.
func (e *Engine) Select(kind Kind) {
	next, ok := e.tools[kind]
	if !ok || next == e.active {
		return
	}
	e.active.Deactivated()
	e.active = next
	e.active.Activated()
	e.syncActiveStyle()
	for _, fn := range e.toolChanged {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("tools: tool-changed subscriber panic: %v", r)
				}
			}()
			fn(kind)
		}()
	}
}

// ActiveKind reports the currently selected tool.
func (e *Engine) ActiveKind() Kind { return e.active.Kind() }

// PointerDown forwards a press to the active tool.
func (e *Engine) PointerDown(p Pointer) { e.active.PointerDown(p) }

// PointerMove forwards a move to the active tool.
func (e *Engine) PointerMove(p Pointer) { e.active.PointerMove(p) }

// PointerUp forwards a release to the active tool.
func (e *Engine) PointerUp(p Pointer) { e.active.PointerUp(p) }

// SetColor updates the drawing color. The active tool applies it to any
// in-progress shape so the live preview restyles immediately.
func (e *Engine) SetColor(c color.RGBA) {
	e.style.Color = c
	e.active.ColorChanged(c)
}

// SetThickness updates the stroke thickness, propagated like SetColor.
func (e *Engine) SetThickness(v int) {
	if v < 1 {
		v = 1
	}
	e.style.Thickness = v
	e.active.ThicknessChanged(v)
}

// SetEraserSize updates the side of the eraser's square test region.
func (e *Engine) SetEraserSize(v int) {
	if v < 1 {
		v = 1
	}
	e.eraserSize = v
	if er, ok := e.tools[Eraser].(*eraserTool); ok {
		er.size = v
	}
}

// Style returns the current drawing style.
func (e *Engine) Style() element.Style { return e.style }

// CancelActive discards any in-progress gesture on the active tool.
func (e *Engine) CancelActive() { e.active.Cancel() }

// TextInput forwards typed runes to the text tool while it is editing.
func (e *Engine) TextInput(r rune) {
	if tt, ok := e.active.(*textTool); ok {
		tt.Input(r)
	}
}

// TextBackspace deletes the rune before the caret while editing.
func (e *Engine) TextBackspace() {
	if tt, ok := e.active.(*textTool); ok {
		tt.Backspace()
	}
}

// TextCommit finishes the text tool's current edit, if any.
func (e *Engine) TextCommit() {
	if tt, ok := e.active.(*textTool); ok {
		tt.Commit()
	}
}

// TextEditing reports whether the text tool is active with an open edit, in
// which case keystrokes belong to the text and not to shortcuts.
func (e *Engine) TextEditing() bool {
	tt, ok := e.active.(*textTool)
	return ok && tt.editing
}

func (e *Engine) syncActiveStyle() {
	e.active.ColorChanged(e.style.Color)
	e.active.ThicknessChanged(e.style.Thickness)
	if er, ok := e.active.(*eraserTool); ok {
		er.size = e.eraserSize
	}
}
