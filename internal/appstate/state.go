package appstate

import (
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/zpen/internal/canvas"
)

// AppState hosts an editor in a shiny window showing the canvas.
type AppState struct {
	Canvas *canvas.Canvas
	Editor *EditorState
	Title  string

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState for the given canvas and editor.
func New(c *canvas.Canvas, ed *EditorState, opts ...Option) *AppState {
	a := &AppState{Canvas: c, Editor: ed, Title: "zpen"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver. The returned error is set
// when the window could not be created.
func (a *AppState) Run() error {
	driver.Main(a.Main)
	return a.err
}

// Err reports the error that ended Main, if any.
func (a *AppState) Err() error { return a.err }

func (a *AppState) Main(s screen.Screen) {
	bounds := a.Canvas.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		a.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	zoom := 1.0
	dst := imageRect(bounds, zoom)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			zoom = fitZoom(bounds, width, height)
			dst = imageRect(bounds, zoom)
			w.Send(paint.Event{})
		case paint.Event:
			a.paint(s, w, width, height, dst)
		case mouse.Event:
			ev, ok := pointerEvent(e, dst, zoom)
			if !ok {
				continue
			}
			a.Editor.Handle(ev)
			w.Send(paint.Event{})
		case key.Event:
			ev, ok := keyEvent(e)
			if !ok {
				continue
			}
			a.Editor.Handle(ev)
			w.Send(paint.Event{})
		case error:
			log.Printf("window: %v", e)
		}
		if a.Editor.Done() {
			return
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window, width, height int, dst image.Rectangle) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	compose(b.RGBA(), dst, a.Canvas.Image())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// pointerEvent translates left button presses, releases and motion.
func pointerEvent(e mouse.Event, dst image.Rectangle, zoom float64) (Event, bool) {
	pos := toCanvas(e.X, e.Y, dst, zoom)
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return Event{}, false
		}
		return Event{Kind: PointerDown, Pos: pos, Modifiers: e.Modifiers}, true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return Event{}, false
		}
		return Event{Kind: PointerUp, Pos: pos, Modifiers: e.Modifiers}, true
	case mouse.DirNone:
		return Event{Kind: PointerMove, Pos: pos, Modifiers: e.Modifiers}, true
	}
	return Event{}, false
}

// keyEvent translates key presses. Auto-repeat arrives as DirNone and is
// treated as a press.
func keyEvent(e key.Event) (Event, bool) {
	ev := Event{Code: e.Code, Rune: e.Rune, Modifiers: e.Modifiers}
	switch e.Direction {
	case key.DirPress, key.DirNone:
		ev.Kind = KeyDown
	case key.DirRelease:
		ev.Kind = KeyUp
	default:
		return Event{}, false
	}
	return ev, true
}
