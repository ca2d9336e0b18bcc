package capture

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Format selects the encoder used for saved captures.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
)

// DefaultDir is where captures are written unless configured otherwise.
const DefaultDir = "~/.zpen"

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

const filenameLayout = "20060102150405"

// ParseFormat accepts png, jpg and jpeg in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// Store writes encoded captures into a private directory.
type Store struct {
	Dir     string
	Format  Format
	Quality int

	now func() time.Time
}

// NewStore expands dir and returns a store writing in format. The directory
// is created with mode 0700 by the first Write.
func NewStore(dir string, format Format, quality int) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", dir, err)
	}
	if format == "" {
		format = FormatPNG
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Store{Dir: expanded, Format: format, Quality: quality, now: time.Now}, nil
}

// Write encodes img into a new file named after the current time and returns
// its path. Existing files are never replaced.
func (s *Store) Write(img image.Image) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create %s: %w", s.Dir, err)
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	base := "img" + now().Format(filenameLayout)
	ext := s.Format.Ext()

	var (
		f    *os.File
		path string
		err  error
	)
	for i := 0; i < 100; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path = filepath.Join(s.Dir, name)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, img, s.Format, s.Quality); err != nil {
		f.Close()
		if rerr := os.Remove(path); rerr != nil {
			log.Printf("remove partial capture %s: %v", path, rerr)
		}
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(path); rerr != nil {
			log.Printf("remove partial capture %s: %v", path, rerr)
		}
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatPNG, "":
		return png.Encode(w, img)
	}
	return fmt.Errorf("unknown image format %q", format)
}
