package history

import "image"

// History is a linear undo/redo log of full canvas snapshots.
type History struct {
	undo *Ring[*image.RGBA]
	redo *Ring[*image.RGBA]
}

// New creates a history whose rings each hold capacity snapshots.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		undo: NewRing[*image.RGBA](capacity),
		redo: NewRing[*image.RGBA](capacity),
	}
}

// Commit records the canvas as it was before a new drawing action. Any redo
// state is dropped.
func (h *History) Commit(before *image.RGBA) {
	h.undo.Push(before)
	h.redo.Reset()
}

// Undo stores current on the redo ring and returns the previous snapshot.
// It reports false, leaving both rings untouched, when nothing can be undone.
func (h *History) Undo(current *image.RGBA) (*image.RGBA, bool) {
	return step(h.undo, h.redo, current)
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *image.RGBA) (*image.RGBA, bool) {
	return step(h.redo, h.undo, current)
}

func step(from, to *Ring[*image.RGBA], current *image.RGBA) (*image.RGBA, bool) {
	if from.Depth() == 0 {
		return nil, false
	}
	to.Push(current)
	return from.Pop()
}

// UndoDepth reports how many undo steps are available.
func (h *History) UndoDepth() int { return h.undo.Depth() }

// RedoDepth reports how many redo steps are available.
func (h *History) RedoDepth() int { return h.redo.Depth() }
