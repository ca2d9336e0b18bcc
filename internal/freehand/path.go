package freehand

import "image"

// DefaultWindow is the smoothing window applied to committed pen strokes.
const DefaultWindow = 7

// Path is one freehand stroke in screen coordinates.
type Path struct {
	Points []image.Point
}

// Add appends a point to the stroke.
func (p *Path) Add(pt image.Point) {
	p.Points = append(p.Points, pt)
}

// Reset empties the stroke while keeping its backing storage.
func (p *Path) Reset() {
	p.Points = p.Points[:0]
}

// Len reports the number of points in the stroke.
func (p *Path) Len() int { return len(p.Points) }

// Last returns the most recently added point.
func (p *Path) Last() (image.Point, bool) {
	if len(p.Points) == 0 {
		return image.Point{}, false
	}
	return p.Points[len(p.Points)-1], true
}

// Smooth returns a moving-average copy of the stroke. Interior points are
// averaged over [i-window, i+window] clipped to the stroke, using the
// unsmoothed coordinates and truncating division. The first and last points
// are kept as is.
func (p Path) Smooth(window int) Path {
	out := Path{Points: make([]image.Point, len(p.Points))}
	copy(out.Points, p.Points)
	n := len(p.Points)
	if window <= 1 || n < 3 {
		return out
	}
	for i := 1; i < n-1; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi > n-1 {
			hi = n - 1
		}
		var sx, sy int
		for j := lo; j <= hi; j++ {
			sx += p.Points[j].X
			sy += p.Points[j].Y
		}
		count := hi - lo + 1
		out.Points[i] = image.Pt(sx/count, sy/count)
	}
	return out
}
