// Package clipboard hands saved captures to the desktop clipboard.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Kinds accepted by New.
const (
	KindLibrary = "library"
	KindCommand = "command"
	KindNone    = "none"
)

// DefaultCommand is run by CommandSink when no command is configured. The
// file path is appended as the last argument.
const DefaultCommand = "xclip -selection clipboard -t image/png -i"

// DefaultHold bounds how long a process keeps serving clipboard data before
// exiting.
const DefaultHold = 30 * time.Second

var errNoCommand = errors.New("clipboard command is empty")

// Sink receives the path of a saved image.
type Sink interface {
	SetImage(path string) error
}

// Holder is implemented by sinks that serve the clipboard from this process.
// Hold blocks until another client takes ownership or ctx ends.
type Holder interface {
	Hold(ctx context.Context)
}

// New returns the sink selected by kind. A nil sink is returned for "none".
func New(kind, command string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindLibrary:
		return &LibrarySink{}, nil
	case KindCommand:
		if strings.TrimSpace(command) == "" {
			command = DefaultCommand
		}
		return &CommandSink{Command: command}, nil
	case KindNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown clipboard kind %q", kind)
}

// LibrarySink publishes the image as PNG data owned by this process.
type LibrarySink struct {
	changed <-chan struct{}
}

// SetImage loads path and places it on the clipboard.
func (s *LibrarySink) SetImage(path string) error {
	data, err := pngData(path)
	if err != nil {
		return err
	}
	changed, err := writePNG(data)
	if err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	s.changed = changed
	return nil
}

// Hold waits until the clipboard contents are replaced or ctx ends.
func (s *LibrarySink) Hold(ctx context.Context) {
	if s.changed == nil {
		return
	}
	select {
	case <-s.changed:
	case <-ctx.Done():
	}
}

// CommandSink runs an external program with the file path as its final
// argument. A "%s" in the command is replaced by the path instead.
type CommandSink struct {
	Command string
	Timeout time.Duration
}

var execCommand = exec.CommandContext

// commandWaitDelay bounds the wait for stderr to close once the command has
// exited. xclip forks a server that keeps the inherited pipe open.
var commandWaitDelay = time.Second

// SetImage runs the configured command.
func (s *CommandSink) SetImage(path string) error {
	fields := strings.Fields(s.Command)
	if len(fields) == 0 {
		return errNoCommand
	}
	args := make([]string, 0, len(fields))
	substituted := false
	for _, f := range fields[1:] {
		if strings.Contains(f, "%s") {
			f = strings.ReplaceAll(f, "%s", path)
			substituted = true
		}
		args = append(args, f)
	}
	if !substituted {
		args = append(args, path)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := execCommand(ctx, fields[0], args...)
	cmd.Stderr = &stderr
	cmd.WaitDelay = commandWaitDelay
	if err := cmd.Run(); err != nil && !errors.Is(err, exec.ErrWaitDelay) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", fields[0], err, msg)
		}
		return fmt.Errorf("%s: %w", fields[0], err)
	}
	return nil
}

// pngData returns PNG bytes for the file at path, re-encoding other formats.
func pngData(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
