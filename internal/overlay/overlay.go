// Package overlay drives the transparent full-screen drawing window. It
// owns the shiny event loop, routes pointer and keyboard input to the tool
// engine, and implements the surface the mode controller shows and hides.
//
// The mode controller and the hotkey dispatcher call in from their own
// goroutines; everything they ask for is marshaled onto the window queue
// with Send and handled on the loop goroutine, so the surface, engine, and
// history are only ever touched from one place.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/glasspen/internal/capture"
	"github.com/example/glasspen/internal/clipboard"
	"github.com/example/glasspen/internal/config"
	"github.com/example/glasspen/internal/element"
	"github.com/example/glasspen/internal/history"
	"github.com/example/glasspen/internal/notify"
	"github.com/example/glasspen/internal/surface"
	"github.com/example/glasspen/internal/theme"
	"github.com/example/glasspen/internal/tools"
)

// Events delivered through the window queue by other goroutines.
type (
	hideEvent     struct{}
	hideHelpEvent struct{}
	focusEvent    struct{}

	settingsEvent struct{ cfg config.Config }
)

// Overlay is the drawing window. Hiding it ends the annotation session:
// the canvas and its undo history are discarded along with the window.
type Overlay struct {
	store    *config.Store
	history  *history.History
	notifier *notify.Notifier

	surf   *surface.Surface
	engine *tools.Engine

	mu  sync.Mutex
	win screen.Window

	helpShown atomic.Bool

	showCh    chan struct{}
	quit      chan struct{}
	closeOnce sync.Once
}

// New builds the overlay and wires the tool engine to the undo history.
// Run must be called afterwards, from the main goroutine.
func New(store *config.Store, hist *history.History, notifier *notify.Notifier) *Overlay {
	o := &Overlay{
		store:    store,
		history:  hist,
		notifier: notifier,
		surf:     surface.New(),
		showCh:   make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}

	cfg := store.Current()
	style := element.Style{
		Color:     resolveColor(cfg.Drawing.Color),
		Thickness: cfg.ClampThickness(cfg.Drawing.Thickness),
	}
	o.engine = tools.NewEngine(o.surf, style, cfg.Drawing.EraserSize)
	o.engine.OnCompleted(func(el *element.Element) { hist.Record(el) })
	o.engine.OnErased(func(el *element.Element) { hist.Remove(el) })
	o.engine.OnToolChanged(func(k tools.Kind) { notifier.Tool(k.String()) })

	store.OnChanged(func(cfg config.Config) {
		o.mu.Lock()
		w := o.win
		o.mu.Unlock()
		if w != nil {
			w.Send(settingsEvent{cfg: cfg})
		}
	})
	return o
}

// Run enters the windowing driver and blocks until Close. It must run on
// the main goroutine; the driver owns it from here.
func (o *Overlay) Run() {
	driver.Main(o.main)
}

// Close ends Run once the current session finishes. Safe to call from any
// goroutine, repeatedly.
func (o *Overlay) Close() {
	o.closeOnce.Do(func() {
		close(o.quit)
		o.Hide()
	})
}

// Show requests the drawing window. The window appears asynchronously;
// repeated requests while one is pending coalesce.
func (o *Overlay) Show() error {
	select {
	case <-o.quit:
		return fmt.Errorf("overlay closed")
	default:
	}
	select {
	case o.showCh <- struct{}{}:
	default:
	}
	return nil
}

// Hide dismisses the drawing window, discarding any in-progress gesture.
// No-op when the window is not up.
func (o *Overlay) Hide() error {
	o.mu.Lock()
	w := o.win
	o.mu.Unlock()
	if w != nil {
		w.Send(hideEvent{})
	}
	return nil
}

// Focus nudges the window with a repaint. The window system owns stacking;
// a fresh frame is the closest available request for attention.
func (o *Overlay) Focus() {
	o.mu.Lock()
	w := o.win
	o.mu.Unlock()
	if w != nil {
		w.Send(focusEvent{})
	}
}

// HelpVisible reports whether the shortcut overlay is up. Readable from any
// goroutine; the loop keeps this mirror current.
func (o *Overlay) HelpVisible() bool { return o.helpShown.Load() }

// HideHelp dismisses the shortcut overlay without hiding the window.
func (o *Overlay) HideHelp() {
	o.helpShown.Store(false)
	o.mu.Lock()
	w := o.win
	o.mu.Unlock()
	if w != nil {
		w.Send(hideHelpEvent{})
	}
}

func (o *Overlay) main(s screen.Screen) {
	for {
		select {
		case <-o.quit:
			return
		case <-o.showCh:
		}
		o.session(s)
	}
}

// session runs one visible stretch of the overlay: window up, events
// routed, window released on hide.
func (o *Overlay) session(s screen.Screen) {
	width, height := screenSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Glasspen"})
	if err != nil {
		log.Printf("overlay: new window: %v", err)
		return
	}
	defer w.Release()

	o.mu.Lock()
	o.win = w
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.win = nil
		o.mu.Unlock()
	}()

	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()

	cfg := o.store.Current()
	th := activeTheme(cfg)
	o.surf.SetTheme(th)
	primaryDown := false

	for {
		switch e := w.NextEvent().(type) {
		case hideEvent:
			o.dismiss()
			return
		case hideHelpEvent:
			o.surf.HideHelp()
			w.Send(paint.Event{})
		case focusEvent:
			w.Send(paint.Event{})
		case settingsEvent:
			cfg = e.cfg
			th = activeTheme(cfg)
			o.surf.SetTheme(th)
			o.engine.SetColor(resolveColor(cfg.Drawing.Color))
			o.engine.SetThickness(cfg.ClampThickness(cfg.Drawing.Thickness))
			o.engine.SetEraserSize(cfg.Drawing.EraserSize)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				o.dismiss()
				return
			}
		case size.Event:
			if buf != nil {
				buf.Release()
				buf = nil
			}
			if e.WidthPx > 0 && e.HeightPx > 0 {
				b, err := s.NewBuffer(image.Point{X: e.WidthPx, Y: e.HeightPx})
				if err != nil {
					log.Printf("overlay: new buffer: %v", err)
					continue
				}
				buf = b
			}
			w.Send(paint.Event{})
		case paint.Event:
			if buf == nil {
				continue
			}
			rgba := buf.RGBA()
			draw.Draw(rgba, rgba.Bounds(), image.NewUniform(th.Dimming), image.Point{}, draw.Src)
			o.surf.Render(rgba)
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case mouse.Event:
			pos := image.Pt(int(e.X), int(e.Y))
			constrain := e.Modifiers&key.ModShift != 0
			if o.engine.ActiveKind() == tools.Eraser {
				at := pos
				o.surf.SetEraserCursor(&at, cfg.Drawing.EraserSize)
			} else {
				o.surf.SetEraserCursor(nil, 0)
			}
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				primaryDown = true
				o.engine.PointerDown(tools.Pointer{Pos: pos, PrimaryDown: true, Constrain: constrain})
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				primaryDown = false
				o.engine.PointerUp(tools.Pointer{Pos: pos, Constrain: constrain})
			case e.Direction == mouse.DirNone:
				o.engine.PointerMove(tools.Pointer{Pos: pos, PrimaryDown: primaryDown, Constrain: constrain})
			}
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			o.handleKey(w, e, &cfg)
		}
	}
}

// dismiss ends the annotation session: the in-progress gesture is
// cancelled and the canvas, its history, and the help overlay are reset so
// the next activation starts clean.
func (o *Overlay) dismiss() {
	o.engine.CancelActive()
	o.surf.HideHelp()
	o.helpShown.Store(false)
	o.surf.SetEraserCursor(nil, 0)
	o.surf.Clear()
	o.history.Clear()
}

func (o *Overlay) handleKey(w screen.Window, e key.Event, cfg *config.Config) {
	if o.engine.TextEditing() {
		switch e.Code {
		case key.CodeReturnEnter:
			o.engine.TextCommit()
		case key.CodeDeleteBackspace:
			o.engine.TextBackspace()
		case key.CodeEscape:
			o.engine.CancelActive()
		default:
			if e.Rune > 0 {
				o.engine.TextInput(e.Rune)
			}
		}
		w.Send(paint.Event{})
		return
	}

	if e.Modifiers&key.ModControl != 0 {
		if e.Code == key.CodeDeleteForward {
			o.surf.Clear()
			o.history.Clear()
			o.notifier.Clear()
			w.Send(paint.Event{})
			return
		}
		switch e.Rune {
		case 'z', 'Z':
			if el, ok := o.history.UndoLast(); ok {
				o.surf.RemoveByID(el.ID)
			}
		case 'd', 'D':
			o.surf.Clear()
			o.history.Clear()
			o.notifier.Clear()
		case 's', 'S':
			o.screenshot(cfg)
		}
		w.Send(paint.Event{})
		return
	}

	switch e.Rune {
	case 'p', 'P':
		o.engine.Select(tools.Pen)
	case 'l', 'L':
		o.engine.Select(tools.Line)
	case 'e', 'E':
		o.engine.Select(tools.Eraser)
	case 'r', 'R':
		o.engine.Select(tools.Rect)
	case 'c', 'C':
		o.engine.Select(tools.Circle)
	case 'a', 'A':
		o.engine.Select(tools.Arrow)
	case 't', 'T':
		o.engine.Select(tools.Text)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		o.engine.SetColor(surface.ColorAt(int(e.Rune - '1')))
	case '+', '=':
		o.engine.SetThickness(cfg.ClampThickness(o.engine.Style().Thickness + 1))
	case '-':
		o.engine.SetThickness(cfg.ClampThickness(o.engine.Style().Thickness - 1))
	case -1:
		switch e.Code {
		case key.CodeF1:
			o.surf.ToggleHelp()
			o.helpShown.Store(o.surf.HelpVisible())
		case key.CodeEscape:
			o.engine.CancelActive()
		}
	}
	w.Send(paint.Event{})
}

// screenshot composites the annotations over a fresh capture of the
// desktop, saves it, and copies it to the clipboard. Failures are logged,
// never fatal.
func (o *Overlay) screenshot(cfg *config.Config) {
	shot, err := capture.CaptureScreen("")
	if err != nil {
		log.Printf("overlay: capture screen: %v", err)
		return
	}
	o.surf.RenderAnnotations(shot)

	dir := cfg.SaveDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, time.Now().Format("glasspen-20060102-150405.png"))
	if err := savePNG(path, shot); err != nil {
		log.Printf("overlay: save screenshot: %v", err)
		return
	}
	if err := clipboard.WriteImage(shot); err != nil {
		log.Printf("overlay: copy screenshot: %v", err)
	}
	o.notifier.Screenshot(path)
	log.Printf("overlay: saved %s", path)
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("overlay: closing %s: %v", path, cerr)
		}
		return err
	}
	return out.Close()
}

// resolveColor maps a configured color name to a palette color, falling
// back to the first palette entry when the name is unknown so a bad config
// never blocks drawing.
func resolveColor(name string) color.RGBA {
	if c, ok := surface.ColorByName(name); ok {
		return c
	}
	log.Printf("overlay: unknown color %q, using default", name)
	return surface.ColorAt(0)
}

func activeTheme(cfg config.Config) *theme.Theme {
	if t, ok := cfg.Themes[cfg.Theme]; ok && t != nil {
		return t
	}
	return theme.Default()
}

// screenSize reports the bounding box of the monitor layout, with a sane
// fallback when enumeration fails (the window manager will typically
// resize a full-screen window anyway).
func screenSize() (int, int) {
	monitors, err := capture.ListMonitors()
	if err != nil || len(monitors) == 0 {
		return 1280, 800
	}
	r := monitors[0].Rect
	for _, m := range monitors[1:] {
		r = r.Union(m.Rect)
	}
	return r.Dx(), r.Dy()
}
