package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/zpen/internal/capture"
	"github.com/example/zpen/internal/clipboard"
	"github.com/example/zpen/internal/config"
)

// outputOptions are the storage and clipboard flags shared by draw and
// capture.
type outputOptions struct {
	dir              string
	format           string
	quality          int
	clipboard        string
	clipboardCommand string
	hold             time.Duration
}

func (o *outputOptions) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&o.dir, "dir", cfg.SaveDir, "directory captures are saved to")
	fs.StringVar(&o.format, "format", cfg.Format, "capture file format: png or jpg")
	fs.IntVar(&o.quality, "quality", cfg.JPEGQuality, "JPEG quality between 1 and 100")
	fs.StringVar(&o.clipboard, "clipboard", cfg.Clipboard, "clipboard backend: library, command or none")
	fs.StringVar(&o.clipboardCommand, "clipboard-command", cfg.ClipboardCommand, "command receiving the saved file when -clipboard=command")
	fs.DurationVar(&o.hold, "clipboard-hold", cfg.ClipboardHold, "how long to keep serving the clipboard before exiting")
}

// pipeline assembles a capture pipeline reading from src.
func (o *outputOptions) pipeline(src capture.Source, r *root) (*capture.Pipeline, *trackedSink, error) {
	format, err := capture.ParseFormat(o.format)
	if err != nil {
		return nil, nil, err
	}
	if o.quality < 1 || o.quality > 100 {
		return nil, nil, fmt.Errorf("quality %d out of range 1-100", o.quality)
	}
	store, err := capture.NewStore(o.dir, format, o.quality)
	if err != nil {
		return nil, nil, err
	}
	p := &capture.Pipeline{Source: src, Store: store}
	sink, err := newClipboardFn(o.clipboard, o.clipboardCommand)
	if err != nil {
		return nil, nil, err
	}
	var tracked *trackedSink
	if sink != nil {
		tracked = &trackedSink{Sink: sink}
		p.Clipboard = tracked
	}
	if r != nil && r.notifier != nil {
		p.Notifier = r.notifier
	}
	return p, tracked, nil
}

var newClipboardFn = clipboard.New

// trackedSink records whether an image reached the clipboard.
type trackedSink struct {
	clipboard.Sink
	used bool
}

func (t *trackedSink) SetImage(path string) error {
	if err := t.Sink.SetImage(path); err != nil {
		return err
	}
	t.used = true
	return nil
}

// hold keeps serving the clipboard for at most d when this process owns it.
func (t *trackedSink) hold(d time.Duration) {
	if t == nil || !t.used || d <= 0 {
		return
	}
	h, ok := t.Sink.(clipboard.Holder)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	fmt.Fprintf(os.Stderr, "serving clipboard for up to %s\n", d)
	h.Hold(ctx)
}

// settings returns the loaded configuration or the defaults.
func (r *root) settings() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) verboseLogging() bool {
	return r != nil && r.verbose
}

func (r *root) monitorSelector() string {
	if r == nil {
		return ""
	}
	return r.monitor
}

// commandName is the program name shown in the help of a subcommand.
func (r *root) commandName(name string) string {
	program := "zpen"
	if r != nil && r.program != "" {
		program = r.program
	}
	return program + " " + name
}
