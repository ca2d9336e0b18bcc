package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
)

// ErrEmpty is returned when a pixel operation has nothing to work on.
var ErrEmpty = errors.New("canvas: empty area")

// Canvas is an in-memory Surface over an RGBA image. The background image is
// what Clear paints back.
type Canvas struct {
	img        *image.RGBA
	background *image.RGBA
}

var _ Surface = (*Canvas)(nil)

// New creates a canvas showing a copy of background.
func New(background *image.RGBA) *Canvas {
	bg := clone(background)
	return &Canvas{img: clone(bg), background: bg}
}

// NewBlank creates an opaque black canvas of the given size.
func NewBlank(width, height int) *Canvas {
	bg := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(bg, bg.Bounds(), image.Black, image.Point{}, draw.Src)
	return &Canvas{img: clone(bg), background: bg}
}

// Image exposes the live pixels for presentation.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds implements Surface.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear implements Surface by repainting the background.
func (c *Canvas) Clear() {
	copy(c.img.Pix, c.background.Pix)
}

// Snapshot implements Surface.
func (c *Canvas) Snapshot() (*image.RGBA, error) {
	if c.img.Bounds().Empty() {
		return nil, ErrEmpty
	}
	return clone(c.img), nil
}

// Restore implements Surface.
func (c *Canvas) Restore(s *image.RGBA) error {
	if s == nil {
		return fmt.Errorf("restore: %w", ErrEmpty)
	}
	if s.Bounds() != c.img.Bounds() {
		return fmt.Errorf("restore: snapshot bounds %v do not match canvas %v", s.Bounds(), c.img.Bounds())
	}
	copy(c.img.Pix, s.Pix)
	return nil
}

// ReadRegion implements Surface. The result starts at the origin.
func (c *Canvas) ReadRegion(r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("read %v: %w", r, ErrEmpty)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), c.img, r.Min, draw.Src)
	return dst, nil
}

// DrawLine implements Surface.
func (c *Canvas) DrawLine(p Pen, a, b image.Point) {
	pl := c.begin(p)
	pl.line(a.X, a.Y, b.X, b.Y)
}

// DrawRect implements Surface. The outline passes through r.Min and r.Max.
func (c *Canvas) DrawRect(p Pen, r image.Rectangle) {
	pl := c.begin(p)
	pl.line(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y)
	pl.line(r.Max.X, r.Min.Y, r.Max.X, r.Max.Y)
	pl.line(r.Max.X, r.Max.Y, r.Min.X, r.Max.Y)
	pl.line(r.Min.X, r.Max.Y, r.Min.X, r.Min.Y)
}

// DrawArc implements Surface.
func (c *Canvas) DrawArc(p Pen, box image.Rectangle, start, sweep float64) {
	pl := c.begin(p)
	cx, cy, rx, ry := ellipse(box)
	steps := int(math.Ceil(math.Abs(sweep) * math.Sqrt(rx*rx+ry*ry)))
	if steps < 8 {
		steps = 8
	}
	var prevX, prevY int
	for i := 0; i <= steps; i++ {
		angle := start + sweep*float64(i)/float64(steps)
		x := int(math.Round(cx + math.Cos(angle)*rx))
		y := int(math.Round(cy - math.Sin(angle)*ry))
		if i > 0 {
			if x != prevX || y != prevY {
				pl.line(prevX, prevY, x, y)
			}
		} else {
			pl.dot(x, y)
		}
		prevX, prevY = x, y
	}
}

// FillArc implements Surface by filling the pie slice.
func (c *Canvas) FillArc(p Pen, box image.Rectangle, start, sweep float64) {
	pl := c.begin(p)
	cx, cy, rx, ry := ellipse(box)
	if rx == 0 || ry == 0 {
		return
	}
	full := math.Abs(sweep) >= 2*math.Pi
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		for x := box.Min.X; x <= box.Max.X; x++ {
			dx := (float64(x) - cx) / rx
			dy := (cy - float64(y)) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			if !full && !inSweep(math.Atan2(dy, dx), start, sweep) {
				continue
			}
			pl.set(x, y)
		}
	}
}

func ellipse(box image.Rectangle) (cx, cy, rx, ry float64) {
	box = box.Canon()
	rx = float64(box.Dx()) / 2
	ry = float64(box.Dy()) / 2
	return float64(box.Min.X) + rx, float64(box.Min.Y) + ry, rx, ry
}

func inSweep(angle, start, sweep float64) bool {
	if sweep < 0 {
		start += sweep
		sweep = -sweep
	}
	d := math.Mod(angle-start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d <= sweep
}

// plotter applies one primitive. XOR primitives touch each pixel once so
// overlapping brush stamps do not cancel out.
type plotter struct {
	img  *image.RGBA
	pen  Pen
	seen map[image.Point]struct{}
}

func (c *Canvas) begin(p Pen) *plotter {
	if p.Width < 1 {
		p.Width = 1
	}
	pl := &plotter{img: c.img, pen: p}
	if p.Op == OpXor {
		pl.seen = make(map[image.Point]struct{})
	}
	return pl
}

func (pl *plotter) set(x, y int) {
	if !image.Pt(x, y).In(pl.img.Bounds()) {
		return
	}
	i := pl.img.PixOffset(x, y)
	col := pl.pen.Color
	if pl.seen == nil {
		pl.img.Pix[i+0] = col.R
		pl.img.Pix[i+1] = col.G
		pl.img.Pix[i+2] = col.B
		pl.img.Pix[i+3] = 0xFF
		return
	}
	pt := image.Pt(x, y)
	if _, ok := pl.seen[pt]; ok {
		return
	}
	pl.seen[pt] = struct{}{}
	pl.img.Pix[i+0] ^= col.R
	pl.img.Pix[i+1] ^= col.G
	pl.img.Pix[i+2] ^= col.B
}

func (pl *plotter) dot(x, y int) {
	r := pl.pen.Width / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			pl.set(x+dx, y+dy)
		}
	}
}

func (pl *plotter) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		pl.dot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clone(src *image.RGBA) *image.RGBA {
	if src == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
