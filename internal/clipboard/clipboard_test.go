package clipboard

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	path := filepath.Join(t.TempDir(), "img.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		want    interface{}
		wantErr bool
	}{
		{kind: "", want: &LibrarySink{}},
		{kind: "library", want: &LibrarySink{}},
		{kind: "Command", want: &CommandSink{Command: DefaultCommand}},
		{kind: "none", want: nil},
		{kind: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := New(tt.kind, "")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil sink, got %#v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPNGDataPassesThroughPNG(t *testing.T) {
	path := writeTestPNG(t)
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got, err := pngData(path)
	if err != nil {
		t.Fatalf("pngData: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("png data was re-encoded")
	}
}

func TestPNGDataConvertsJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	data, err := pngData(path)
	if err != nil {
		t.Fatalf("pngData: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not png: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestCommandSinkArguments(t *testing.T) {
	var gotName string
	var gotArgs []string
	prev := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { execCommand = prev })

	sink := &CommandSink{Command: "xclip -selection clipboard -t image/png -i"}
	if err := sink.SetImage("/tmp/a.png"); err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	if gotName != "xclip" {
		t.Fatalf("unexpected command %q", gotName)
	}
	want := []string{"-selection", "clipboard", "-t", "image/png", "-i", "/tmp/a.png"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("args %v, want %v", gotArgs, want)
	}

	sink = &CommandSink{Command: "copyq write image/png file://%s"}
	if err := sink.SetImage("/tmp/b.png"); err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	want = []string{"write", "image/png", "file:///tmp/b.png"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("args %v, want %v", gotArgs, want)
	}
}

func TestCommandSinkFailure(t *testing.T) {
	prev := execCommand
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { execCommand = prev })

	sink := &CommandSink{Command: "xclip"}
	if err := sink.SetImage("/tmp/a.png"); err == nil {
		t.Fatalf("expected error from failing command")
	}
	if err := (&CommandSink{}).SetImage("/tmp/a.png"); !errors.Is(err, errNoCommand) {
		t.Fatalf("expected errNoCommand, got %v", err)
	}
}

func TestCommandSinkDoesNotWaitForForkedServer(t *testing.T) {
	prevCmd, prevDelay := execCommand, commandWaitDelay
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", "sleep 5 >&2 & exit 0")
	}
	commandWaitDelay = 100 * time.Millisecond
	t.Cleanup(func() {
		execCommand = prevCmd
		commandWaitDelay = prevDelay
	})

	start := time.Now()
	sink := &CommandSink{Command: "xclip", Timeout: 10 * time.Second}
	if err := sink.SetImage("/tmp/a.png"); err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("SetImage waited %v for the background process", elapsed)
	}
}

func TestLibrarySinkHoldReturns(t *testing.T) {
	(&LibrarySink{}).Hold(context.Background())

	changed := make(chan struct{})
	close(changed)
	(&LibrarySink{changed: changed}).Hold(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	(&LibrarySink{changed: make(chan struct{})}).Hold(ctx)
}
