package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Defaults applied by New.
const (
	DefaultSaveDir      = "~/.zpen"
	DefaultFormat       = "png"
	DefaultJPEGQuality  = 90
	DefaultSmoothing    = 7
	DefaultUndoLevels   = 20
	DefaultThickness    = 3
	DefaultStartupDelay = 200 * time.Millisecond
	DefaultClipboard    = "library"
	DefaultHold         = 30 * time.Second
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Copy    bool
}

// PaletteEntry is one named color of the drawing palette.
type PaletteEntry struct {
	Name  string
	Color color.RGBA
}

// Config holds the application configuration.
type Config struct {
	SaveDir          string
	Format           string
	JPEGQuality      int
	Smoothing        int
	UndoLevels       int
	Thickness        int
	Rounded          bool
	StartupDelay     time.Duration
	Clipboard        string
	ClipboardCommand string
	ClipboardHold    time.Duration
	Monitor          string
	Notify           Notify
	// Palette replaces the built-in colors when non-empty.
	Palette []PaletteEntry
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		SaveDir:       DefaultSaveDir,
		Format:        DefaultFormat,
		JPEGQuality:   DefaultJPEGQuality,
		Smoothing:     DefaultSmoothing,
		UndoLevels:    DefaultUndoLevels,
		Thickness:     DefaultThickness,
		Rounded:       true,
		StartupDelay:  DefaultStartupDelay,
		Clipboard:     DefaultClipboard,
		ClipboardHold: DefaultHold,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.JPEGQuality)
	fmt.Fprintf(&sb, "smoothing = %d\n", c.Smoothing)
	fmt.Fprintf(&sb, "undo_levels = %d\n", c.UndoLevels)
	fmt.Fprintf(&sb, "thickness = %d\n", c.Thickness)
	fmt.Fprintf(&sb, "rounded = %v\n", c.Rounded)
	fmt.Fprintf(&sb, "startup_delay = %s\n", c.StartupDelay)
	fmt.Fprintf(&sb, "clipboard = %s\n", c.Clipboard)
	if c.ClipboardCommand != "" {
		fmt.Fprintf(&sb, "clipboard_command = %q\n", c.ClipboardCommand)
	}
	fmt.Fprintf(&sb, "clipboard_hold = %s\n", c.ClipboardHold)
	if c.Monitor != "" {
		fmt.Fprintf(&sb, "monitor = %s\n", c.Monitor)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	if len(c.Palette) > 0 {
		sb.WriteString("\n[palette]\n")
		for _, p := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", p.Name, toHex(p.Color))
		}
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
