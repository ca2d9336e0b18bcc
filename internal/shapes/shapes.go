package shapes

import (
	"image"
	"math"

	"github.com/example/zpen/internal/canvas"
)

// ArrowSize is the length of each arrow head arm in pixels.
const ArrowSize = 20

const arrowAngle = math.Pi / 4

// Func renders a two-anchor shape.
type Func func(s canvas.Surface, p canvas.Pen, start, end image.Point)

// Line draws a single segment.
func Line(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	s.DrawLine(p, start, end)
}

// ArrowHead returns the outer points of the two head arms at end.
func ArrowHead(start, end image.Point) (image.Point, image.Point) {
	angle := math.Atan2(float64(start.Y-end.Y), float64(start.X-end.X)) + math.Pi
	arm := func(a float64) image.Point {
		return image.Pt(
			int(float64(end.X)-ArrowSize*math.Cos(a)),
			int(float64(end.Y)-ArrowSize*math.Sin(a)),
		)
	}
	return arm(angle + arrowAngle), arm(angle - arrowAngle)
}

// Arrow draws a segment with a V shaped head at end.
func Arrow(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	s.DrawLine(p, start, end)
	a, b := ArrowHead(start, end)
	s.DrawLine(p, end, a)
	s.DrawLine(p, end, b)
}

// Normalize returns the box spanned by two corners in any order.
func Normalize(start, end image.Point) image.Rectangle {
	return image.Rect(start.X, start.Y, end.X, end.Y)
}

// Rect draws the axis aligned box spanned by start and end.
func Rect(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	s.DrawRect(p, Normalize(start, end))
}

// CornerRadius is the rounding used for a box of the given size.
func CornerRadius(r image.Rectangle) int {
	short := min(r.Dx(), r.Dy())
	radius := max(3, min(short/10, 15))
	return min(radius, short/2)
}

// RoundedRect draws the box with four quarter arcs joined by straight edges.
func RoundedRect(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	r := Normalize(start, end)
	rad := CornerRadius(r)
	if rad <= 0 {
		s.DrawRect(p, r)
		return
	}
	d := 2 * rad
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	s.DrawLine(p, image.Pt(x0+rad, y0), image.Pt(x1-rad, y0))
	s.DrawLine(p, image.Pt(x1, y0+rad), image.Pt(x1, y1-rad))
	s.DrawLine(p, image.Pt(x1-rad, y1), image.Pt(x0+rad, y1))
	s.DrawLine(p, image.Pt(x0, y1-rad), image.Pt(x0, y0+rad))

	quarter := math.Pi / 2
	s.DrawArc(p, image.Rect(x1-d, y0, x1, y0+d), 0, quarter)
	s.DrawArc(p, image.Rect(x0, y0, x0+d, y0+d), quarter, quarter)
	s.DrawArc(p, image.Rect(x0, y1-d, x0+d, y1), 2*quarter, quarter)
	s.DrawArc(p, image.Rect(x1-d, y1-d, x1, y1), 3*quarter, quarter)
}

// CircleRadius uses the horizontal drag distance only.
func CircleRadius(start, end image.Point) int {
	dx := end.X - start.X
	if dx < 0 {
		dx = -dx
	}
	return dx
}

// Circle draws a circle centered on start.
func Circle(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	r := CircleRadius(start, end)
	box := image.Rect(start.X-r, start.Y-r, start.X+r, start.Y+r)
	s.DrawArc(p, box, 0, 2*math.Pi)
}

// Polyline draws connected segments through pts.
func Polyline(s canvas.Surface, p canvas.Pen, pts []image.Point) {
	if len(pts) == 1 {
		s.DrawLine(p, pts[0], pts[0])
		return
	}
	for i := 1; i < len(pts); i++ {
		s.DrawLine(p, pts[i-1], pts[i])
	}
}
