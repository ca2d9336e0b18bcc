//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func runningOnWayland() bool { return false }

func (unsupportedBackend) ListMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor enumeration is not supported on this platform")
}

func (unsupportedBackend) ReadScreen(image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("screen capture: %w", ErrNoDisplay)
}
