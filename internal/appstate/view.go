package appstate

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// fitZoom returns the scale at which img fits a winW x winH window.
func fitZoom(img image.Rectangle, winW, winH int) float64 {
	if img.Dx() == 0 || img.Dy() == 0 || winW <= 0 || winH <= 0 {
		return 1
	}
	zx := float64(winW) / float64(img.Dx())
	zy := float64(winH) / float64(img.Dy())
	if zx < zy {
		return zx
	}
	return zy
}

// imageRect returns the destination rectangle for drawing the canvas. The
// canvas origin stays at the window origin so window and canvas coordinates
// agree whenever the zoom is 1.
func imageRect(img image.Rectangle, zoom float64) image.Rectangle {
	w := int(float64(img.Dx()) * zoom)
	h := int(float64(img.Dy()) * zoom)
	return image.Rect(0, 0, w, h)
}

// toCanvas maps a window position to canvas coordinates.
func toCanvas(x, y float32, dst image.Rectangle, zoom float64) image.Point {
	if zoom <= 0 {
		zoom = 1
	}
	return image.Pt(
		int((float64(x)-float64(dst.Min.X))/zoom),
		int((float64(y)-float64(dst.Min.Y))/zoom),
	)
}

// compose draws img into dst scaled into r.
func compose(dst *image.RGBA, r image.Rectangle, img *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	if r.Size() == img.Bounds().Size() {
		draw.Draw(dst, r, img, img.Bounds().Min, draw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, r, img, img.Bounds(), draw.Src, nil)
}
