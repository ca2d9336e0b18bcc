// Package notify announces zpen captures through desktop notifications.
package notify

import (
	"errors"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/zpen/internal/platform"
)

// Kind names a notification that can be switched on or off.
type Kind string

const (
	KindCapture Kind = "capture"
	KindCopy    Kind = "copy"
)

// Messages holds the notification title and body formats. A "%s" in a body
// is replaced by the saved path for captures and by the file name for
// copies.
type Messages struct {
	Title   string
	Capture string
	Copy    string
}

var sendFn = platform.Notify

func DefaultMessages() Messages {
	return Messages{
		Title:   "zpen",
		Capture: "Saved %s",
		Copy:    "Copied %s to clipboard",
	}
}

// MessagesFromEnv returns the default messages with ZPEN_NOTIFY_TITLE,
// ZPEN_NOTIFY_CAPTURE_TEXT and ZPEN_NOTIFY_COPY_TEXT applied.
func MessagesFromEnv() Messages {
	m := DefaultMessages()
	for env, dst := range map[string]*string{
		"ZPEN_NOTIFY_TITLE":        &m.Title,
		"ZPEN_NOTIFY_CAPTURE_TEXT": &m.Capture,
		"ZPEN_NOTIFY_COPY_TEXT":    &m.Copy,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	return m
}

// Notifier reports pipeline events. Every kind starts disabled and a nil
// Notifier stays silent.
type Notifier struct {
	msgs Messages
	on   map[Kind]bool
}

func New(msgs Messages) *Notifier {
	return &Notifier{msgs: msgs, on: make(map[Kind]bool)}
}

// Enable switches notifications of kind k.
func (n *Notifier) Enable(k Kind, on bool) {
	if n == nil {
		return
	}
	if n.on == nil {
		n.on = make(map[Kind]bool)
	}
	n.on[k] = on
}

// Capture announces a saved file. The file itself is the notification icon;
// when it cannot be found img is shown through a temporary PNG instead.
func (n *Notifier) Capture(path string, img image.Image) {
	if !n.enabled(KindCapture) {
		return
	}
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil && path != "" {
		path = abs
	}
	icon, cleanup := captureIcon(path, img)
	defer cleanup()
	n.send(KindCapture, n.msgs.Capture, path, platform.Options{IconPath: icon})
}

// Copy announces that the file at path was put on the clipboard.
func (n *Notifier) Copy(path string) {
	if !n.enabled(KindCopy) {
		return
	}
	name := "image"
	if p := strings.TrimSpace(path); p != "" {
		name = filepath.Base(p)
	}
	n.send(KindCopy, n.msgs.Copy, name, platform.Options{})
}

func (n *Notifier) enabled(k Kind) bool {
	return n != nil && n.on[k]
}

func (n *Notifier) send(k Kind, format, detail string, opts platform.Options) {
	format = strings.TrimSpace(format)
	if format == "" {
		return
	}
	body := strings.TrimSpace(strings.ReplaceAll(format, "%s", detail))
	if err := sendFn(n.msgs.Title, body, opts); err != nil {
		log.Printf("notify %s: %v", k, err)
	}
}

func captureIcon(path string, img image.Image) (string, func()) {
	noop := func() {}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, noop
		}
	}
	if img == nil {
		return "", noop
	}
	f, err := os.CreateTemp("", "zpen-preview-*.png")
	if err != nil {
		log.Printf("notify preview: %v", err)
		return "", noop
	}
	preview := f.Name()
	if err := errors.Join(png.Encode(f, img), f.Close()); err != nil {
		log.Printf("notify preview: %v", err)
		os.Remove(preview)
		return "", noop
	}
	return preview, func() {
		if err := os.Remove(preview); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
}
