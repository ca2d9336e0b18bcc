package appstate

import (
	"image/color"

	"github.com/example/zpen/internal/canvas"
)

// Thickness bounds in pixels.
const (
	MinThickness     = 1
	MaxThickness     = 20
	DefaultThickness = 3
)

// PaletteColor is a named palette entry.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// DefaultPalette is used when no palette is configured.
var DefaultPalette = []PaletteColor{
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Green", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Orange", color.RGBA{255, 165, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
}

var white = color.RGBA{255, 255, 255, 255}

// Style is the pen configuration shared by all tools.
type Style struct {
	Palette   []PaletteColor
	ColorIdx  int
	Thickness int
	Rounded   bool
}

// NewStyle returns a style over palette, or DefaultPalette when empty.
func NewStyle(palette []PaletteColor) Style {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return Style{
		Palette:   append([]PaletteColor(nil), palette...),
		Thickness: DefaultThickness,
		Rounded:   true,
	}
}

// Color returns the selected palette color.
func (s Style) Color() color.RGBA {
	if len(s.Palette) == 0 {
		return white
	}
	return s.Palette[clampIndex(s.ColorIdx, len(s.Palette))].Color
}

// ColorName returns the name of the selected palette color.
func (s Style) ColorName() string {
	if len(s.Palette) == 0 {
		return ""
	}
	return s.Palette[clampIndex(s.ColorIdx, len(s.Palette))].Name
}

func (s *Style) NextColor() {
	if n := len(s.Palette); n > 0 {
		s.ColorIdx = (s.ColorIdx + 1) % n
	}
}

func (s *Style) PrevColor() {
	if n := len(s.Palette); n > 0 {
		s.ColorIdx = (s.ColorIdx - 1 + n) % n
	}
}

// SelectColor picks palette entry i. Out of range indexes are ignored.
func (s *Style) SelectColor(i int) bool {
	if i < 0 || i >= len(s.Palette) {
		return false
	}
	s.ColorIdx = i
	return true
}

func (s *Style) SetThickness(n int) {
	switch {
	case n < MinThickness:
		n = MinThickness
	case n > MaxThickness:
		n = MaxThickness
	}
	s.Thickness = n
}

func (s *Style) Thicker()        { s.SetThickness(s.Thickness + 1) }
func (s *Style) Thinner()        { s.SetThickness(s.Thickness - 1) }
func (s *Style) ResetThickness() { s.Thickness = DefaultThickness }
func (s *Style) ToggleRounded()  { s.Rounded = !s.Rounded }

// Pen is used for committed drawing.
func (s Style) Pen() canvas.Pen {
	return canvas.Pen{Color: s.Color(), Width: s.Thickness, Op: canvas.OpCopy}
}

// PreviewPen is the XOR pen used for rubber-band feedback. It is two pixels
// thinner than the real pen. Black would XOR to nothing so it previews white.
func (s Style) PreviewPen() canvas.Pen {
	c := s.Color()
	if c.R|c.G|c.B == 0 {
		c = white
	}
	w := s.Thickness - 2
	if w < 1 {
		w = 1
	}
	return canvas.Pen{Color: c, Width: w, Op: canvas.OpXor}
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
