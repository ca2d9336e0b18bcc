package shapes

import (
	"image"
	"math"

	"github.com/example/zpen/internal/canvas"
)

// Variant selects which side of a paired glyph is drawn.
type Variant int

const (
	// Opening is drawn for left to right drags.
	Opening Variant = iota
	// Closing is drawn for right to left drags.
	Closing
)

func (v Variant) String() string {
	if v == Closing {
		return "closing"
	}
	return "opening"
}

// Direction picks the glyph variant from the drag direction.
func Direction(start, end image.Point) Variant {
	if end.X < start.X {
		return Closing
	}
	return Opening
}

type unitPoint struct{ x, y float64 }

// Glyph outlines for the opening variant in a unit box.
var (
	bracketOutline = []unitPoint{{1, 0}, {0.15, 0}, {0, 0.03}, {0, 0.97}, {0.15, 1}, {1, 1}}
	braceOutline   = []unitPoint{
		{1, 0}, {0.75, 0.02}, {0.58, 0.07}, {0.5, 0.15},
		{0.5, 0.38}, {0.42, 0.45}, {0.22, 0.49}, {0, 0.5},
		{0.22, 0.51}, {0.42, 0.55}, {0.5, 0.62},
		{0.5, 0.85}, {0.58, 0.93}, {0.75, 0.98}, {1, 1},
	}
)

// glyphBox is the box a glyph is scaled into. Drags flatter than half their
// width get a box twice as tall as it is wide, centered on the drag.
func glyphBox(start, end image.Point) image.Rectangle {
	box := Normalize(start, end)
	w, h := box.Dx(), box.Dy()
	if 2*h >= w {
		return box
	}
	mid := (box.Min.Y + box.Max.Y) / 2
	box.Min.Y = mid - w
	box.Max.Y = mid + w
	return box
}

func glyphPoints(outline []unitPoint, start, end image.Point) []image.Point {
	box := glyphBox(start, end)
	closing := Direction(start, end) == Closing
	w, h := float64(box.Dx()), float64(box.Dy())
	pts := make([]image.Point, 0, len(outline))
	for _, u := range outline {
		fx := u.x
		if closing {
			fx = 1 - fx
		}
		pts = append(pts, image.Pt(
			box.Min.X+int(math.Round(fx*w)),
			box.Min.Y+int(math.Round(u.y*h)),
		))
	}
	return pts
}

// BracketPoints returns the polyline of a square bracket filling the drag box.
func BracketPoints(start, end image.Point) []image.Point {
	return glyphPoints(bracketOutline, start, end)
}

// BracePoints returns the polyline of a curly brace filling the drag box.
func BracePoints(start, end image.Point) []image.Point {
	return glyphPoints(braceOutline, start, end)
}

// Bracket draws "[" or "]" depending on drag direction.
func Bracket(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	Polyline(s, p, BracketPoints(start, end))
}

// Brace draws "{" or "}" depending on drag direction.
func Brace(s canvas.Surface, p canvas.Pen, start, end image.Point) {
	Polyline(s, p, BracePoints(start, end))
}
