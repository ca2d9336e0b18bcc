package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrNoDisplay is returned when no display server can be reached.
var ErrNoDisplay = errors.New("no display available")

var (
	screenReadFn       = func(r image.Rectangle) (*image.RGBA, error) { return backend.ReadScreen(r) }
	portalScreenshotFn = portalScreenshot
	waylandSessionFn   = runningOnWayland
)

// Screenshot grabs the desktop. When a monitor selector is provided only that
// output is returned. X11 is tried first; Wayland sessions fall back to the
// desktop portal.
func Screenshot(monitor string) (*image.RGBA, error) {
	var rect image.Rectangle
	if monitor != "" {
		monitors, err := ListMonitors()
		if err != nil {
			return nil, fmt.Errorf("list monitors: %w", err)
		}
		mon, err := FindMonitor(monitors, monitor)
		if err != nil {
			return nil, err
		}
		rect = mon.Rect
	}
	img, err := screenReadFn(rect)
	if err == nil {
		return img, nil
	}
	if !waylandSessionFn() {
		return nil, err
	}
	shot, perr := portalScreenshotFn(false)
	if perr != nil {
		return nil, fmt.Errorf("screen capture: %v; portal fallback: %w", err, perr)
	}
	if rect.Empty() {
		return shot, nil
	}
	return cropToRect(shot, rect)
}

// ScreenSource reads regions of the live desktop.
type ScreenSource struct{}

// ReadRegion implements Source.
func (ScreenSource) ReadRegion(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, ErrEmptyRegion
	}
	return screenReadFn(r)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
