package capture

import (
	"fmt"
	"image"
	"log"
)

// Destination selects where a capture is delivered.
type Destination int

const (
	// ToFile writes the image into the store only.
	ToFile Destination = iota
	// ToFileAndClipboard also hands the saved file to the clipboard sink.
	ToFileAndClipboard
)

func (d Destination) String() string {
	if d == ToFileAndClipboard {
		return "file+clipboard"
	}
	return "file"
}

// Source provides pixels for a region.
type Source interface {
	ReadRegion(r image.Rectangle) (*image.RGBA, error)
}

// ClipboardSink receives the path of a saved capture.
type ClipboardSink interface {
	SetImage(path string) error
}

// Notifier is told about finished captures.
type Notifier interface {
	Capture(detail string, img image.Image)
	Copy(detail string)
}

// Pipeline reads a region, stores it and optionally places it on the
// clipboard.
type Pipeline struct {
	Source    Source
	Store     *Store
	Clipboard ClipboardSink
	Notifier  Notifier
}

// Capture normalizes the anchors, reads the region and saves it. The saved
// path is returned. Clipboard failures are logged and do not fail the capture.
func (p *Pipeline) Capture(a, b image.Point, dest Destination) (string, error) {
	if p.Source == nil || p.Store == nil {
		return "", fmt.Errorf("capture pipeline not configured")
	}
	r := Region(a, b)
	img, err := p.Source.ReadRegion(r)
	if err != nil {
		return "", fmt.Errorf("read region %v: %w", r, err)
	}
	if img.Bounds().Empty() {
		return "", ErrEmptyRegion
	}
	rgb := ToRGB(img)
	path, err := p.Store.Write(rgb)
	if err != nil {
		return "", err
	}
	if p.Notifier != nil {
		p.Notifier.Capture(path, rgb)
	}
	if dest != ToFileAndClipboard {
		return path, nil
	}
	if p.Clipboard == nil {
		log.Printf("capture %s: no clipboard configured", path)
		return path, nil
	}
	if err := p.Clipboard.SetImage(path); err != nil {
		log.Printf("copy %s to clipboard: %v", path, err)
		return path, nil
	}
	if p.Notifier != nil {
		p.Notifier.Copy(path)
	}
	return path, nil
}
