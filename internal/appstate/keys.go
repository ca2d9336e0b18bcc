package appstate

import (
	"fmt"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Command is an editor action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdTool
	CmdText
	CmdToggleRounded
	CmdStamp
	CmdNextColor
	CmdPrevColor
	CmdSelectColor
	CmdThicker
	CmdThinner
	CmdResetThickness
	CmdUndo
	CmdRedo
	CmdCaptureFile
	CmdCaptureClipboard
	CmdClear
	CmdQuit
)

var commandNames = map[Command]string{
	CmdTool:             "tool",
	CmdText:             "text",
	CmdToggleRounded:    "rounded",
	CmdStamp:            "stamp",
	CmdNextColor:        "next-color",
	CmdPrevColor:        "prev-color",
	CmdSelectColor:      "color",
	CmdThicker:          "thicker",
	CmdThinner:          "thinner",
	CmdResetThickness:   "reset-thickness",
	CmdUndo:             "undo",
	CmdRedo:             "redo",
	CmdCaptureFile:      "capture",
	CmdCaptureClipboard: "capture-clipboard",
	CmdClear:            "clear",
	CmdQuit:             "quit",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "none"
}

// Action is a command with its argument: the tool for CmdTool and the
// palette index for CmdSelectColor.
type Action struct {
	Command Command
	Arg     int
}

func (a Action) String() string {
	switch a.Command {
	case CmdTool:
		return fmt.Sprintf("tool %s", Tool(a.Arg))
	case CmdSelectColor:
		return fmt.Sprintf("color %d", a.Arg+1)
	}
	return a.Command.String()
}

// Keymap binds shortcuts to actions.
type Keymap map[KeyShortcut]Action

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	k := Keymap{
		{Rune: 'p'}: {Command: CmdTool, Arg: int(ToolPen)},
		{Rune: 'l'}: {Command: CmdTool, Arg: int(ToolLine)},
		{Rune: 'a'}: {Command: CmdTool, Arg: int(ToolArrow)},
		{Rune: 'r'}: {Command: CmdTool, Arg: int(ToolRect)},
		{Rune: 'c'}: {Command: CmdTool, Arg: int(ToolCircle)},
		{Rune: 'b'}: {Command: CmdTool, Arg: int(ToolBracket)},
		{Rune: 'e'}: {Command: CmdTool, Arg: int(ToolBrace)},
		{Rune: 't'}: {Command: CmdText},
		{Rune: 'o'}: {Command: CmdToggleRounded},
		{Rune: 'n'}: {Command: CmdStamp},

		{Rune: ' '}:                          {Command: CmdNextColor},
		{Rune: ' ', Modifiers: key.ModShift}: {Command: CmdPrevColor},
		{Rune: '+'}:                          {Command: CmdThicker},
		{Rune: '='}:                          {Command: CmdThicker},
		{Rune: '-'}:                          {Command: CmdThinner},
		{Rune: '0'}:                          {Command: CmdResetThickness},

		{Rune: 'u'}: {Command: CmdUndo},
		{Rune: 'y'}: {Command: CmdRedo},

		{Rune: 'z', Modifiers: key.ModControl}:                      {Command: CmdUndo},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift}:       {Command: CmdRedo},
		{Code: key.CodeZ, Modifiers: key.ModControl}:                {Command: CmdUndo},
		{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}: {Command: CmdRedo},

		{Rune: 'f'}: {Command: CmdCaptureFile},
		{Rune: 's'}: {Command: CmdCaptureClipboard},

		{Code: key.CodeDeleteForward}: {Command: CmdClear},
		{Code: key.CodeEscape}:        {Command: CmdQuit},
	}
	for i := 0; i < 9; i++ {
		k[KeyShortcut{Rune: rune('1' + i)}] = Action{Command: CmdSelectColor, Arg: i}
	}
	return k
}

// Lookup resolves a key press. The lowercased rune is tried with the full
// modifier set, then without shift so that shifted symbols such as '+' match,
// and finally the key code.
func (k Keymap) Lookup(r rune, code key.Code, mods key.Modifiers) (Action, bool) {
	if r > 0 {
		r = unicode.ToLower(r)
		if a, ok := k[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return a, true
		}
		if mods&key.ModShift != 0 {
			if a, ok := k[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
				return a, true
			}
		}
	}
	if code != key.CodeUnknown {
		if a, ok := k[KeyShortcut{Code: code, Modifiers: mods}]; ok {
			return a, true
		}
	}
	return Action{}, false
}
