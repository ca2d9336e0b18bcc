package main

import (
	"flag"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/example/zpen/internal/appstate"
	"github.com/example/zpen/internal/canvas"
	"github.com/example/zpen/internal/capture"
	"github.com/example/zpen/internal/config"
	"github.com/example/zpen/internal/history"
)

var (
	captureScreenshotFn = capture.Screenshot
	runWindowFn         = (*appstate.AppState).Run
	sleepFn             = time.Sleep
)

// drawCmd freezes the screen in a window and runs the annotation editor.
type drawCmd struct {
	colorSpec string
	thickness int
	toolName  string
	smoothing int
	undo      int
	rounded   bool
	delay     time.Duration
	output    outputOptions
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	cfg := r.settings()
	fs.StringVar(&d.colorSpec, "color", "", "initial pen color as a palette name, color name or #RRGGBB")
	fs.IntVar(&d.thickness, "thickness", cfg.Thickness, "initial pen thickness in pixels (1-20)")
	fs.StringVar(&d.toolName, "tool", appstate.ToolPen.String(), "initial tool: pen, circle, rect, arrow, line, bracket, brace or text")
	fs.IntVar(&d.smoothing, "smoothing", cfg.Smoothing, "freehand smoothing window in points")
	fs.IntVar(&d.undo, "undo", cfg.UndoLevels, "number of undo levels")
	fs.BoolVar(&d.rounded, "rounded", cfg.Rounded, "draw rectangles with rounded corners")
	fs.DurationVar(&d.delay, "delay", cfg.StartupDelay, "wait before freezing the screen")
	d.output.register(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.thickness < appstate.MinThickness || d.thickness > appstate.MaxThickness {
		return nil, fmt.Errorf("thickness %d out of range %d-%d", d.thickness, appstate.MinThickness, appstate.MaxThickness)
	}
	if d.smoothing < 0 {
		return nil, fmt.Errorf("smoothing must not be negative")
	}
	if d.undo < 1 {
		return nil, fmt.Errorf("undo levels must be at least 1")
	}
	if _, ok := appstate.ParseTool(strings.ToLower(d.toolName)); !ok {
		return nil, fmt.Errorf("unknown tool %q", d.toolName)
	}
	return d, nil
}

func (d *drawCmd) Program() string {
	return d.root.commandName("draw")
}

func (d *drawCmd) Run() error {
	tool, ok := appstate.ParseTool(strings.ToLower(d.toolName))
	if !ok {
		return fmt.Errorf("unknown tool %q", d.toolName)
	}
	style, err := d.style()
	if err != nil {
		return err
	}
	if d.delay > 0 {
		sleepFn(d.delay)
	}
	img, err := captureScreenshotFn(d.root.monitorSelector())
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	c := canvas.New(img)
	pipeline, sink, err := d.output.pipeline(c, d.root)
	if err != nil {
		return err
	}
	ed := appstate.NewEditor(c,
		appstate.WithHistory(history.New(d.undo)),
		appstate.WithSmoothing(d.smoothing),
		appstate.WithCapturer(pipeline),
		appstate.WithStyle(style),
		appstate.WithTool(tool),
		appstate.WithVerbose(d.root.verboseLogging()),
	)
	state := appstate.New(c, ed, appstate.WithTitle("zpen"))
	if err := runWindowFn(state); err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	sink.hold(d.output.hold)
	return nil
}

// style builds the initial pen style from the configured palette and the
// -color, -thickness and -rounded flags.
func (d *drawCmd) style() (appstate.Style, error) {
	style := appstate.NewStyle(paletteFromConfig(d.root.settings().Palette))
	style.SetThickness(d.thickness)
	style.Rounded = d.rounded
	spec := strings.TrimSpace(d.colorSpec)
	if spec == "" {
		return style, nil
	}
	for i, entry := range style.Palette {
		if strings.EqualFold(entry.Name, spec) {
			style.SelectColor(i)
			return style, nil
		}
	}
	col, err := config.ParseColor(spec)
	if err != nil {
		return style, err
	}
	if i := paletteIndex(style.Palette, col); i >= 0 {
		style.SelectColor(i)
		return style, nil
	}
	style.Palette = append(style.Palette, appstate.PaletteColor{Name: spec, Color: col})
	style.ColorIdx = len(style.Palette) - 1
	return style, nil
}

func paletteFromConfig(entries []config.PaletteEntry) []appstate.PaletteColor {
	if len(entries) == 0 {
		return nil
	}
	out := make([]appstate.PaletteColor, 0, len(entries))
	for _, e := range entries {
		out = append(out, appstate.PaletteColor{Name: e.Name, Color: e.Color})
	}
	return out
}

func paletteIndex(palette []appstate.PaletteColor, c color.RGBA) int {
	for i, entry := range palette {
		if entry.Color == c {
			return i
		}
	}
	return -1
}
