package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var palette []PaletteEntry

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			if unq, err := strconv.Unquote(value); err == nil {
				value = unq
			} else {
				value = value[1 : len(value)-1]
			}
		}

		switch currentSection {
		case "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		case "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("error in section [notify]: %w", err)
			}
		case "palette":
			col, err := ParseColor(value)
			if err != nil {
				return nil, fmt.Errorf("error in section [palette]: invalid color for key %s: %w", key, err)
			}
			palette = append(palette, PaletteEntry{Name: key, Color: col})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	cfg.Palette = palette
	return cfg, nil
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "format":
		switch strings.ToLower(value) {
		case "png":
			cfg.Format = "png"
		case "jpg", "jpeg":
			cfg.Format = "jpg"
		default:
			return fmt.Errorf("invalid format %q: want png or jpg", value)
		}
	case "jpeg_quality":
		cfg.JPEGQuality, err = parseInt(key, value, 1, 100)
	case "smoothing":
		cfg.Smoothing, err = parseInt(key, value, 0, 100)
	case "undo_levels":
		cfg.UndoLevels, err = parseInt(key, value, 1, 1000)
	case "thickness":
		cfg.Thickness, err = parseInt(key, value, 1, 20)
	case "rounded":
		cfg.Rounded, err = parseBool(key, value)
	case "startup_delay":
		cfg.StartupDelay, err = parseDuration(key, value)
	case "clipboard":
		switch strings.ToLower(value) {
		case "library", "command", "none":
			cfg.Clipboard = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid clipboard %q: want library, command or none", value)
		}
	case "clipboard_command":
		cfg.ClipboardCommand = value
	case "clipboard_hold":
		cfg.ClipboardHold, err = parseDuration(key, value)
	case "monitor":
		cfg.Monitor = value
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseInt(key, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("value for key %s out of range [%d, %d]: %d", key, lo, hi, n)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for key %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration for key %s", key)
	}
	return d, nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG color name such as
// "tomato".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
