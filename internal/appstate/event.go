package appstate

import (
	"fmt"
	"image"

	"golang.org/x/mobile/event/key"
)

// EventKind classifies editor input.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	KeyDown
	KeyUp
)

// Event is a window-system independent input event in canvas coordinates.
type Event struct {
	Kind      EventKind
	Pos       image.Point
	Code      key.Code
	Rune      rune
	Modifiers key.Modifiers
}

func (e Event) String() string {
	switch e.Kind {
	case PointerDown:
		return fmt.Sprintf("down %v", e.Pos)
	case PointerMove:
		return fmt.Sprintf("move %v", e.Pos)
	case PointerUp:
		return fmt.Sprintf("up %v", e.Pos)
	case KeyDown:
		return fmt.Sprintf("key %q %v %v", e.Rune, e.Code, e.Modifiers)
	case KeyUp:
		return fmt.Sprintf("keyup %q %v", e.Rune, e.Code)
	}
	return "unknown"
}
