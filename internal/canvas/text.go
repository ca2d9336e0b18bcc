package canvas

import (
	"image"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	regular    *opentype.Font
	regularErr error
	parseOnce  sync.Once
	faces      sync.Map // map[float64]font.Face
)

// TextSize maps a pen width to a point size.
func TextSize(width int) float64 {
	if width < 1 {
		width = 1
	}
	return float64(14 + 2*width)
}

func faceForSize(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, regularErr
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces.Store(size, face)
	return face, nil
}

// MeasureString returns the advance width of s for a pen of the given width.
func MeasureString(width int, s string) int {
	face, err := faceForSize(TextSize(width))
	if err != nil {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

// DrawString implements Surface. The text sits on baseline.
func (c *Canvas) DrawString(p Pen, baseline image.Point, s string) {
	if s == "" {
		return
	}
	face, err := faceForSize(TextSize(p.Width))
	if err != nil {
		log.Printf("text face: %v", err)
		return
	}
	if p.Op == OpCopy {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(p.Color),
			Face: face,
			Dot:  fixed.P(baseline.X, baseline.Y),
		}
		d.DrawString(s)
		return
	}
	bounds, _ := font.BoundString(face, s)
	r := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()).Add(baseline)
	if r.Empty() {
		return
	}
	mask := image.NewAlpha(r)
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(baseline.X, baseline.Y)}
	d.DrawString(s)
	pl := c.begin(Pen{Color: p.Color, Width: 1, Op: p.Op})
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				pl.set(x, y)
			}
		}
	}
}

// Fill paints r with the pen color, ignoring the pen width.
func (c *Canvas) Fill(p Pen, r image.Rectangle) {
	if p.Op == OpCopy {
		draw.Draw(c.img, r, image.NewUniform(p.Color), image.Point{}, draw.Src)
		return
	}
	pl := c.begin(p)
	r = r.Intersect(c.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pl.set(x, y)
		}
	}
}
