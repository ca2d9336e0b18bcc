package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

var red = color.RGBA{0xFF, 0x33, 0x33, 0xFF}

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 5), uint8(x ^ y), 0xFF})
		}
	}
	return img
}

func TestXorTwiceRestores(t *testing.T) {
	c := New(checker(64, 64))
	before := append([]byte(nil), c.Image().Pix...)
	pen := Pen{Color: red, Width: 5, Op: OpXor}
	draw := func() {
		c.DrawLine(pen, image.Pt(3, 4), image.Pt(60, 50))
		c.DrawRect(pen, image.Rect(10, 10, 40, 30))
		c.DrawArc(pen, image.Rect(5, 5, 55, 55), 0, 2*math.Pi)
		c.FillArc(pen, image.Rect(20, 20, 40, 40), 0, math.Pi/2)
		c.DrawString(pen, image.Pt(4, 40), "(1)")
		c.Fill(pen, image.Rect(0, 0, 3, 3))
	}
	draw()
	if bytes.Equal(before, c.Image().Pix) {
		t.Fatalf("expected xor drawing to change pixels")
	}
	draw()
	if !bytes.Equal(before, c.Image().Pix) {
		t.Fatalf("expected second xor draw to restore pixels")
	}
}

func TestXorThickLineIsSolid(t *testing.T) {
	c := NewBlank(40, 40)
	c.DrawLine(Pen{Color: red, Width: 7, Op: OpXor}, image.Pt(5, 20), image.Pt(35, 20))
	for x := 5; x <= 35; x++ {
		for y := 17; y <= 23; y++ {
			if got := c.Image().RGBAAt(x, y); got.R != red.R {
				t.Fatalf("pixel (%d,%d) = %v, expected xor color", x, y, got)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewBlank(20, 20)
	c.DrawLine(Pen{Color: red, Width: 1}, image.Pt(2, 3), image.Pt(15, 11))
	for _, pt := range []image.Point{{2, 3}, {15, 11}} {
		if got := c.Image().RGBAAt(pt.X, pt.Y); got != red {
			t.Fatalf("expected endpoint %v to be drawn, got %v", pt, got)
		}
	}
	if got := c.Image().RGBAAt(15, 3); got == red {
		t.Fatalf("did not expect pixel off the line to be drawn")
	}
}

func TestDrawRectCorners(t *testing.T) {
	c := NewBlank(60, 60)
	c.DrawRect(Pen{Color: red, Width: 1}, image.Rect(10, 10, 50, 50))
	for _, pt := range []image.Point{{10, 10}, {50, 10}, {50, 50}, {10, 50}, {30, 10}, {10, 30}} {
		if c.Image().RGBAAt(pt.X, pt.Y) != red {
			t.Fatalf("expected outline pixel at %v", pt)
		}
	}
	if c.Image().RGBAAt(30, 30) == red {
		t.Fatalf("expected rectangle interior to stay untouched")
	}
}

func TestDrawArcFullCircle(t *testing.T) {
	c := NewBlank(80, 80)
	c.DrawArc(Pen{Color: red, Width: 1}, image.Rect(10, 10, 70, 70), 0, 2*math.Pi)
	for _, pt := range []image.Point{{70, 40}, {40, 10}, {10, 40}, {40, 70}} {
		if c.Image().RGBAAt(pt.X, pt.Y) != red {
			t.Fatalf("expected circle to pass through %v", pt)
		}
	}
	if c.Image().RGBAAt(40, 40) == red {
		t.Fatalf("center should not be drawn")
	}
}

func TestFillArcQuadrant(t *testing.T) {
	c := NewBlank(40, 40)
	c.FillArc(Pen{Color: red, Width: 1}, image.Rect(0, 0, 40, 40), 0, math.Pi/2)
	if c.Image().RGBAAt(30, 10) != red {
		t.Fatalf("expected upper right quadrant to be filled")
	}
	if c.Image().RGBAAt(10, 30) == red {
		t.Fatalf("expected lower left quadrant to stay empty")
	}
}

func TestSnapshotRestore(t *testing.T) {
	c := New(checker(16, 16))
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	c.DrawLine(Pen{Color: red, Width: 3}, image.Pt(0, 0), image.Pt(15, 15))
	if bytes.Equal(snap.Pix, c.Image().Pix) {
		t.Fatalf("snapshot must not alias the canvas")
	}
	if err := c.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !bytes.Equal(snap.Pix, c.Image().Pix) {
		t.Fatalf("expected restored pixels to match snapshot")
	}
	if err := c.Restore(image.NewRGBA(image.Rect(0, 0, 2, 2))); err == nil {
		t.Fatalf("expected size mismatch error")
	}
	if err := c.Restore(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestClearRepaintsBackground(t *testing.T) {
	bg := checker(16, 16)
	c := New(bg)
	c.Fill(Pen{Color: red}, c.Bounds())
	c.Clear()
	if !bytes.Equal(bg.Pix, c.Image().Pix) {
		t.Fatalf("expected clear to restore the background")
	}
}

func TestReadRegion(t *testing.T) {
	c := New(checker(32, 32))
	got, err := c.ReadRegion(image.Rect(4, 5, 14, 9))
	if err != nil {
		t.Fatalf("read region: %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, 10, 4) {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}
	if got.RGBAAt(0, 0) != c.Image().RGBAAt(4, 5) {
		t.Fatalf("expected region origin to map to (4,5)")
	}
	if _, err := c.ReadRegion(image.Rect(100, 100, 120, 120)); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty outside canvas, got %v", err)
	}
}

func TestDrawStringCopy(t *testing.T) {
	c := NewBlank(120, 40)
	c.DrawString(Pen{Color: red, Width: 3}, image.Pt(5, 30), "Hello")
	found := false
	pix := c.Image().Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i] > 0x80 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected text pixels to be drawn")
	}
	if MeasureString(3, "Hello") <= MeasureString(3, "Hi") {
		t.Fatalf("expected longer text to measure wider")
	}
}
