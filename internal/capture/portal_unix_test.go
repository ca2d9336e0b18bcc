//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	for _, interactive := range []bool{false, true} {
		values := portalScreenshotOptions(interactive)
		if got := boolVariant(t, values, "interactive"); got != interactive {
			t.Fatalf("interactive = %v, want %v", got, interactive)
		}
		if got := boolVariant(t, values, "modal"); got != interactive {
			t.Fatalf("modal = %v, want %v", got, interactive)
		}
		if got := stringVariant(t, values, "handle_token"); got != "test-token" {
			t.Fatalf("handle_token = %q, want %q", got, "test-token")
		}
		if len(values) != 3 {
			t.Fatalf("expected 3 options, got %d", len(values))
		}
	}
}

func TestPortalResultPath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}}
	path, err := portalResultPath(ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/tmp/Screenshot one.png" {
		t.Fatalf("unexpected path %q", path)
	}

	denied := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := portalResultPath(denied); err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected denied error, got %v", err)
	}

	missing := []interface{}{uint32(0), map[string]dbus.Variant{}}
	if _, err := portalResultPath(missing); err == nil {
		t.Fatalf("expected error for missing uri")
	}
}

func TestLoadPNGRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{1, 2, 3, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := loadPNG(path)
	if err != nil {
		t.Fatalf("loadPNG: %v", err)
	}
	if img.RGBAAt(1, 1) != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("unexpected pixel %v", img.RGBAAt(1, 1))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected portal file to be removed, stat err %v", err)
	}
}

func boolVariant(t *testing.T, values map[string]dbus.Variant, key string) bool {
	t.Helper()
	variant, ok := values[key]
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	v, ok := variant.Value().(bool)
	if !ok {
		t.Fatalf("key %q value is %T, want bool", key, variant.Value())
	}
	return v
}

func stringVariant(t *testing.T, values map[string]dbus.Variant, key string) string {
	t.Helper()
	variant, ok := values[key]
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	v, ok := variant.Value().(string)
	if !ok {
		t.Fatalf("key %q value is %T, want string", key, variant.Value())
	}
	return v
}
