package appstate

import (
	"fmt"
	"image"
	"log"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/zpen/internal/canvas"
	"github.com/example/zpen/internal/capture"
	"github.com/example/zpen/internal/freehand"
	"github.com/example/zpen/internal/history"
	"github.com/example/zpen/internal/shapes"
)

// MaxStamp is the largest step number before the stamp counter wraps to 1.
const MaxStamp = 9

// Capturer saves a region of the canvas.
type Capturer interface {
	Capture(a, b image.Point, dest capture.Destination) (string, error)
}

type captureRequest struct {
	dest capture.Destination
	prev Tool
}

// EditorState is the annotation state machine. Every input event is handled
// completely by Handle before the next one is read.
type EditorState struct {
	surface   canvas.Surface
	history   *history.History
	capturer  Capturer
	keys      Keymap
	smoothing int
	verbose   bool

	style Style
	tool  Tool
	mode  Mode

	start   image.Point
	current image.Point
	pointer image.Point

	preview      shapes.Func
	previewPen   canvas.Pen
	previewShown bool

	path    freehand.Path
	pending *image.RGBA

	capture *captureRequest

	text     []rune
	textAt   image.Point
	textBase *image.RGBA

	nextStamp   int
	lastCapture string
	done        bool
}

// EditorOption modifies an EditorState during creation.
type EditorOption func(*EditorState)

// WithHistory replaces the default undo history.
func WithHistory(h *history.History) EditorOption {
	return func(e *EditorState) { e.history = h }
}

// WithSmoothing sets the freehand smoothing window.
func WithSmoothing(window int) EditorOption {
	return func(e *EditorState) { e.smoothing = window }
}

// WithCapturer sets the target of the capture commands.
func WithCapturer(c Capturer) EditorOption {
	return func(e *EditorState) { e.capturer = c }
}

// WithStyle sets the initial pen style.
func WithStyle(s Style) EditorOption {
	return func(e *EditorState) { e.style = s }
}

// WithKeymap replaces the default key bindings.
func WithKeymap(k Keymap) EditorOption {
	return func(e *EditorState) { e.keys = k }
}

// WithTool sets the initial tool.
func WithTool(t Tool) EditorOption {
	return func(e *EditorState) { e.tool = t }
}

// WithVerbose logs every event and command.
func WithVerbose(v bool) EditorOption {
	return func(e *EditorState) { e.verbose = v }
}

// NewEditor returns an idle editor drawing on surface with the pen tool.
func NewEditor(surface canvas.Surface, opts ...EditorOption) *EditorState {
	e := &EditorState{
		surface:   surface,
		smoothing: freehand.DefaultWindow,
		style:     NewStyle(nil),
		tool:      ToolPen,
		nextStamp: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = history.New(history.DefaultCapacity)
	}
	if e.keys == nil {
		e.keys = DefaultKeymap()
	}
	return e
}

func (e *EditorState) Tool() Tool                { return e.tool }
func (e *EditorState) Mode() Mode                { return e.mode }
func (e *EditorState) Style() Style              { return e.style }
func (e *EditorState) History() *history.History { return e.history }

// Done reports whether the editor asked to exit.
func (e *EditorState) Done() bool { return e.done }

// Capturing reports whether the next rectangle selects a capture region.
func (e *EditorState) Capturing() bool { return e.capture != nil }

// LastCapture is the path of the most recent successful capture.
func (e *EditorState) LastCapture() string { return e.lastCapture }

// Text returns the text being entered.
func (e *EditorState) Text() string { return string(e.text) }

// Handle feeds one input event through the state machine.
func (e *EditorState) Handle(ev Event) {
	if e.verbose {
		log.Printf("%s: %v (tool %s)", e.mode, ev, e.tool)
	}
	switch ev.Kind {
	case PointerDown, PointerMove, PointerUp:
		e.pointer = ev.Pos
	}
	switch e.mode {
	case ModeIdle:
		e.onIdle(ev)
	case ModeDrawing:
		e.onDrawing(ev)
	case ModePreviewing:
		e.onPreviewing(ev)
	case ModeTextEntry:
		e.onTextEntry(ev)
	}
}

func (e *EditorState) onIdle(ev Event) {
	switch ev.Kind {
	case PointerDown:
		switch e.tool {
		case ToolPen:
			e.beginStroke(ev.Pos)
		case ToolText:
			e.beginText(ev.Pos)
		default:
			e.start = ev.Pos
			e.current = ev.Pos
			e.previewShown = false
			e.mode = ModePreviewing
		}
	case KeyDown:
		e.command(ev)
	}
}

func (e *EditorState) onDrawing(ev Event) {
	switch ev.Kind {
	case PointerMove:
		last, _ := e.path.Last()
		e.path.Add(ev.Pos)
		e.surface.DrawLine(e.style.Pen(), last, ev.Pos)
	case PointerUp:
		e.finishStroke(ev.Pos)
	case KeyDown:
		e.command(ev)
	}
}

func (e *EditorState) onPreviewing(ev Event) {
	switch ev.Kind {
	case PointerMove:
		e.erasePreview()
		e.current = ev.Pos
		e.drawPreview()
	case PointerUp:
		e.erasePreview()
		e.current = ev.Pos
		e.mode = ModeIdle
		if e.capture != nil {
			e.runCapture()
			return
		}
		e.commitShape()
	case KeyDown:
		e.command(ev)
	}
}

func (e *EditorState) onTextEntry(ev Event) {
	switch ev.Kind {
	case PointerDown:
		e.commitText()
		e.onIdle(ev)
	case KeyDown:
		switch ev.Code {
		case key.CodeReturnEnter, key.CodeKeypadEnter:
			e.commitText()
			return
		case key.CodeEscape:
			e.cancelText()
			return
		case key.CodeDeleteBackspace:
			if len(e.text) > 0 {
				e.text = e.text[:len(e.text)-1]
				e.renderText(true)
			}
			return
		}
		if ev.Rune > 0 && unicode.IsPrint(ev.Rune) && ev.Modifiers&(key.ModControl|key.ModMeta) == 0 {
			e.text = append(e.text, ev.Rune)
			e.renderText(true)
		}
	}
}

func (e *EditorState) beginStroke(p image.Point) {
	snap, err := e.surface.Snapshot()
	if err != nil {
		log.Printf("pen: snapshot: %v", err)
		return
	}
	e.pending = snap
	e.path.Reset()
	e.path.Add(p)
	e.mode = ModeDrawing
}

// finishStroke replaces the live feedback with the smoothed path.
func (e *EditorState) finishStroke(p image.Point) {
	e.path.Add(p)
	e.mode = ModeIdle
	if err := e.surface.Restore(e.pending); err != nil {
		log.Printf("pen: restore: %v", err)
	}
	smoothed := e.path.Smooth(e.smoothing)
	e.history.Commit(e.pending)
	e.pending = nil
	shapes.Polyline(e.surface, e.style.Pen(), smoothed.Points)
	if e.verbose {
		log.Printf("pen: %d points", smoothed.Len())
	}
}

func (e *EditorState) shapeFunc() shapes.Func {
	switch e.tool {
	case ToolLine:
		return shapes.Line
	case ToolArrow:
		return shapes.Arrow
	case ToolRect:
		if e.style.Rounded && e.capture == nil {
			return shapes.RoundedRect
		}
		return shapes.Rect
	case ToolCircle:
		return shapes.Circle
	case ToolBracket:
		return shapes.Bracket
	case ToolBrace:
		return shapes.Brace
	}
	return nil
}

func (e *EditorState) drawPreview() {
	fn := e.shapeFunc()
	if fn == nil {
		return
	}
	e.preview = fn
	e.previewPen = e.style.PreviewPen()
	if e.capture != nil {
		e.previewPen = canvas.Pen{Color: white, Width: 1, Op: canvas.OpXor}
	}
	fn(e.surface, e.previewPen, e.start, e.current)
	e.previewShown = true
}

// erasePreview repeats the last XOR draw exactly, restoring the pixels below.
func (e *EditorState) erasePreview() {
	if !e.previewShown {
		return
	}
	e.preview(e.surface, e.previewPen, e.start, e.current)
	e.previewShown = false
}

func (e *EditorState) commitShape() {
	fn := e.shapeFunc()
	if fn == nil {
		return
	}
	if !e.snapshotForUndo() {
		return
	}
	fn(e.surface, e.style.Pen(), e.start, e.current)
}

// snapshotForUndo records the canvas before a drawing action.
func (e *EditorState) snapshotForUndo() bool {
	before, err := e.surface.Snapshot()
	if err != nil {
		log.Printf("snapshot: %v", err)
		return false
	}
	e.history.Commit(before)
	return true
}

func (e *EditorState) runCapture() {
	req := e.capture
	e.capture = nil
	e.tool = req.prev
	if e.capturer == nil {
		log.Printf("capture: no capture target configured")
		return
	}
	path, err := e.capturer.Capture(e.start, e.current, req.dest)
	if err != nil {
		log.Printf("capture: %v", err)
		return
	}
	e.lastCapture = path
	log.Printf("saved %s", path)
	if req.dest == capture.ToFileAndClipboard {
		e.done = true
	}
}

// cancelInteraction abandons any gesture in progress and leaves the canvas as
// it was before the gesture started.
func (e *EditorState) cancelInteraction() {
	switch e.mode {
	case ModePreviewing:
		e.erasePreview()
	case ModeDrawing:
		if err := e.surface.Restore(e.pending); err != nil {
			log.Printf("pen: restore: %v", err)
		}
		e.pending = nil
		e.path.Reset()
	case ModeTextEntry:
		e.cancelText()
	}
	e.mode = ModeIdle
}

func (e *EditorState) command(ev Event) {
	act, ok := e.keys.Lookup(ev.Rune, ev.Code, ev.Modifiers)
	if !ok {
		return
	}
	if e.verbose {
		log.Printf("command %v", act)
	}
	switch act.Command {
	case CmdTool:
		e.cancelInteraction()
		e.capture = nil
		e.tool = Tool(act.Arg)
	case CmdText:
		e.cancelInteraction()
		e.capture = nil
		e.tool = ToolText
		e.beginText(e.pointer)
	case CmdToggleRounded:
		e.style.ToggleRounded()
	case CmdStamp:
		e.cancelInteraction()
		e.stamp(e.pointer)
	case CmdNextColor:
		e.style.NextColor()
	case CmdPrevColor:
		e.style.PrevColor()
	case CmdSelectColor:
		e.style.SelectColor(act.Arg)
	case CmdThicker:
		e.style.Thicker()
	case CmdThinner:
		e.style.Thinner()
	case CmdResetThickness:
		e.style.ResetThickness()
	case CmdUndo:
		e.cancelInteraction()
		e.Undo()
	case CmdRedo:
		e.cancelInteraction()
		e.Redo()
	case CmdCaptureFile:
		e.beginCapture(capture.ToFile)
	case CmdCaptureClipboard:
		e.beginCapture(capture.ToFileAndClipboard)
	case CmdClear:
		e.cancelInteraction()
		if e.snapshotForUndo() {
			e.surface.Clear()
		}
	case CmdQuit:
		e.cancelInteraction()
		e.done = true
	}
}

func (e *EditorState) beginCapture(dest capture.Destination) {
	e.cancelInteraction()
	if e.capture != nil {
		e.capture.dest = dest
		return
	}
	e.capture = &captureRequest{dest: dest, prev: e.tool}
	e.tool = ToolRect
}

// Undo restores the previous canvas. It does nothing when the undo ring is
// empty.
func (e *EditorState) Undo() {
	e.applyHistory(e.history.Undo)
}

// Redo reapplies the last undone action.
func (e *EditorState) Redo() {
	e.applyHistory(e.history.Redo)
}

func (e *EditorState) applyHistory(fn func(*image.RGBA) (*image.RGBA, bool)) {
	current, err := e.surface.Snapshot()
	if err != nil {
		log.Printf("history: snapshot: %v", err)
		return
	}
	snap, ok := fn(current)
	if !ok {
		return
	}
	if err := e.surface.Restore(snap); err != nil {
		log.Printf("history: restore: %v", err)
	}
}

func (e *EditorState) stamp(p image.Point) {
	if !e.snapshotForUndo() {
		return
	}
	e.surface.DrawString(e.style.Pen(), p, fmt.Sprintf("(%d)", e.nextStamp))
	e.nextStamp = e.nextStamp%MaxStamp + 1
}

func (e *EditorState) beginText(p image.Point) {
	base, err := e.surface.Snapshot()
	if err != nil {
		log.Printf("text: snapshot: %v", err)
		return
	}
	e.textBase = base
	e.textAt = p
	e.text = e.text[:0]
	e.mode = ModeTextEntry
	e.renderText(true)
}

// renderText redraws the text over the snapshot taken when entry began.
func (e *EditorState) renderText(caret bool) {
	if err := e.surface.Restore(e.textBase); err != nil {
		log.Printf("text: restore: %v", err)
		return
	}
	pen := e.style.Pen()
	s := string(e.text)
	e.surface.DrawString(pen, e.textAt, s)
	if !caret {
		return
	}
	size := int(canvas.TextSize(pen.Width))
	x := e.textAt.X + canvas.MeasureString(pen.Width, s) + 1
	e.surface.Fill(pen, image.Rect(x, e.textAt.Y-size+size/4, x+2, e.textAt.Y+size/4))
}

func (e *EditorState) commitText() {
	e.mode = ModeIdle
	if len(e.text) == 0 {
		e.cancelText()
		return
	}
	e.renderText(false)
	e.history.Commit(e.textBase)
	e.textBase = nil
	e.text = e.text[:0]
}

func (e *EditorState) cancelText() {
	e.mode = ModeIdle
	if e.textBase != nil {
		if err := e.surface.Restore(e.textBase); err != nil {
			log.Printf("text: restore: %v", err)
		}
	}
	e.textBase = nil
	e.text = e.text[:0]
}
