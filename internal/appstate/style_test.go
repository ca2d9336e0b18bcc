package appstate

import (
	"image/color"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/zpen/internal/canvas"
)

func TestStyleThicknessBounds(t *testing.T) {
	s := NewStyle(nil)
	for i := 0; i < 50; i++ {
		s.Thicker()
	}
	if s.Thickness != MaxThickness {
		t.Fatalf("thickness = %d, want %d", s.Thickness, MaxThickness)
	}
	for i := 0; i < 50; i++ {
		s.Thinner()
	}
	if s.Thickness != MinThickness {
		t.Fatalf("thickness = %d, want %d", s.Thickness, MinThickness)
	}
}

func TestStyleSelectColor(t *testing.T) {
	s := NewStyle([]PaletteColor{{"a", color.RGBA{1, 2, 3, 255}}, {"b", color.RGBA{4, 5, 6, 255}}})
	if s.SelectColor(5) {
		t.Fatalf("out of range selection should be ignored")
	}
	if !s.SelectColor(1) || s.Color() != (color.RGBA{4, 5, 6, 255}) {
		t.Fatalf("unexpected color %v", s.Color())
	}
	s.NextColor()
	if s.ColorIdx != 0 {
		t.Fatalf("next color should wrap, got %d", s.ColorIdx)
	}
}

func TestPreviewPen(t *testing.T) {
	s := NewStyle(nil)
	s.SetThickness(1)
	if p := s.PreviewPen(); p.Width != 1 || p.Op != canvas.OpXor {
		t.Fatalf("unexpected preview pen %+v", p)
	}
	s.SetThickness(8)
	if p := s.PreviewPen(); p.Width != 6 {
		t.Fatalf("preview width = %d, want 6", p.Width)
	}
	s.SelectColor(6)
	if p := s.PreviewPen(); p.Color != white {
		t.Fatalf("black should preview as white, got %v", p.Color)
	}
	if p := s.Pen(); p.Op != canvas.OpCopy || p.Width != 8 {
		t.Fatalf("unexpected pen %+v", p)
	}
}

func TestKeymapLookup(t *testing.T) {
	k := DefaultKeymap()
	tests := []struct {
		name string
		r    rune
		code key.Code
		mods key.Modifiers
		want Action
	}{
		{"pen", 'p', key.CodeP, 0, Action{Command: CmdTool, Arg: int(ToolPen)}},
		{"uppercase", 'B', key.CodeB, key.ModShift, Action{Command: CmdTool, Arg: int(ToolBracket)}},
		{"shift space", ' ', key.CodeSpacebar, key.ModShift, Action{Command: CmdPrevColor}},
		{"plus", '+', key.CodeEqualSign, key.ModShift, Action{Command: CmdThicker}},
		{"ctrl z rune", 'z', key.CodeZ, key.ModControl, Action{Command: CmdUndo}},
		{"ctrl shift z", 'Z', key.CodeZ, key.ModControl | key.ModShift, Action{Command: CmdRedo}},
		{"ctrl z code", -1, key.CodeZ, key.ModControl, Action{Command: CmdUndo}},
		{"digit", '3', key.Code3, 0, Action{Command: CmdSelectColor, Arg: 2}},
		{"escape", -1, key.CodeEscape, 0, Action{Command: CmdQuit}},
		{"delete", -1, key.CodeDeleteForward, 0, Action{Command: CmdClear}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := k.Lookup(tt.r, tt.code, tt.mods)
			if !ok {
				t.Fatalf("no binding")
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
	if _, ok := k.Lookup('q', key.CodeQ, 0); ok {
		t.Fatalf("q should be unbound")
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolPen, ToolCircle, ToolRect, ToolArrow, ToolLine, ToolBracket, ToolBrace, ToolText} {
		got, ok := ParseTool(tool.String())
		if !ok || got != tool {
			t.Fatalf("ParseTool(%q) = %v, %v", tool.String(), got, ok)
		}
	}
	if _, ok := ParseTool("eraser"); ok {
		t.Fatalf("unexpected tool")
	}
}
