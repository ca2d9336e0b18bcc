package appstate

// Tool is the active drawing tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolCircle
	ToolRect
	ToolArrow
	ToolLine
	ToolBracket
	ToolBrace
	ToolText
)

var toolNames = [...]string{
	ToolPen:     "pen",
	ToolCircle:  "circle",
	ToolRect:    "rect",
	ToolArrow:   "arrow",
	ToolLine:    "line",
	ToolBracket: "bracket",
	ToolBrace:   "brace",
	ToolText:    "text",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool resolves a tool by name.
func ParseTool(name string) (Tool, bool) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), true
		}
	}
	return 0, false
}

// Mode is the state of the interaction machine.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModePreviewing
	ModeTextEntry
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModePreviewing:
		return "previewing"
	case ModeTextEntry:
		return "text"
	}
	return "unknown"
}
