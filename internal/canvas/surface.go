package canvas

import (
	"image"
	"image/color"
)

// Op selects how a pen combines with the pixels underneath.
type Op int

const (
	// OpCopy replaces destination pixels with the pen color.
	OpCopy Op = iota
	// OpXor inverts destination pixels by the pen color. Drawing the same
	// primitive twice restores the original pixels.
	OpXor
)

// Pen describes the color, width and compositing mode of a draw call.
type Pen struct {
	Color color.RGBA
	Width int
	Op    Op
}

// Surface is the set of drawing primitives the editor renders through.
// Arc angles are in radians, counter-clockwise from three o'clock, and the
// arc is inscribed in box.
type Surface interface {
	Bounds() image.Rectangle
	DrawLine(p Pen, a, b image.Point)
	DrawRect(p Pen, r image.Rectangle)
	DrawArc(p Pen, box image.Rectangle, start, sweep float64)
	FillArc(p Pen, box image.Rectangle, start, sweep float64)
	DrawString(p Pen, baseline image.Point, s string)
	Fill(p Pen, r image.Rectangle)
	Snapshot() (*image.RGBA, error)
	Restore(s *image.RGBA) error
	ReadRegion(r image.Rectangle) (*image.RGBA, error)
	Clear()
}
