package history

import (
	"image"
	"testing"
)

func TestRingBounds(t *testing.T) {
	r := NewRing[int](DefaultCapacity)
	for i := 1; i <= DefaultCapacity+1; i++ {
		r.Push(i)
	}
	if r.Depth() != DefaultCapacity {
		t.Fatalf("expected depth %d, got %d", DefaultCapacity, r.Depth())
	}
	var last int
	for {
		v, ok := r.Pop()
		if !ok {
			break
		}
		last = v
	}
	if last != 2 {
		t.Fatalf("expected oldest retrievable value 2, got %d", last)
	}
	if r.Depth() != 0 {
		t.Fatalf("expected empty ring, got depth %d", r.Depth())
	}
}

func TestRingPopEmpty(t *testing.T) {
	r := NewRing[string](3)
	if _, ok := r.Pop(); ok {
		t.Fatalf("expected pop on empty ring to fail")
	}
	r.Push("a")
	r.Push("b")
	if v, ok := r.Pop(); !ok || v != "b" {
		t.Fatalf("expected b, got %q %v", v, ok)
	}
	r.Push("c")
	if v, _ := r.Pop(); v != "c" {
		t.Fatalf("expected c, got %q", v)
	}
	if v, _ := r.Pop(); v != "a" {
		t.Fatalf("expected a, got %q", v)
	}
}

func TestRingWrapsMany(t *testing.T) {
	r := NewRing[int](4)
	for i := 0; i < 103; i++ {
		r.Push(i)
	}
	for want := 102; want >= 99; want-- {
		v, ok := r.Pop()
		if !ok || v != want {
			t.Fatalf("expected %d, got %d (%v)", want, v, ok)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatalf("expected ring to be exhausted")
	}
}

func TestRingReset(t *testing.T) {
	r := NewRing[int](2)
	r.Push(1)
	r.Reset()
	if r.Depth() != 0 {
		t.Fatalf("expected depth 0 after reset")
	}
	if r.Cap() != 2 {
		t.Fatalf("expected capacity 2, got %d", r.Cap())
	}
	if NewRing[int](0).Cap() != 1 {
		t.Fatalf("expected capacity to be clamped to 1")
	}
}

func snapshot(v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0] = v
	return img
}

func TestUndoRedoSymmetry(t *testing.T) {
	h := New(DefaultCapacity)
	a, b := snapshot(1), snapshot(2)

	h.Commit(a)
	got, ok := h.Undo(b)
	if !ok || got != a {
		t.Fatalf("undo should restore A")
	}
	if h.RedoDepth() != 1 {
		t.Fatalf("expected B on redo ring, depth %d", h.RedoDepth())
	}
	got, ok = h.Redo(a)
	if !ok || got != b {
		t.Fatalf("redo should restore B")
	}
	if h.RedoDepth() != 0 {
		t.Fatalf("expected redo ring to be empty, got %d", h.RedoDepth())
	}
	if h.UndoDepth() != 1 {
		t.Fatalf("expected A back on the undo ring, got %d", h.UndoDepth())
	}
}

func TestCommitInvalidatesRedo(t *testing.T) {
	h := New(DefaultCapacity)
	a, b, c := snapshot(1), snapshot(2), snapshot(3)
	h.Commit(a)
	if _, ok := h.Undo(b); !ok {
		t.Fatalf("expected undo to succeed")
	}
	h.Commit(c)
	if h.RedoDepth() != 0 {
		t.Fatalf("expected redo ring to be cleared by commit")
	}
	if _, ok := h.Redo(c); ok {
		t.Fatalf("expected redo to be a no-op")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	h := New(0)
	if _, ok := h.Undo(snapshot(1)); ok {
		t.Fatalf("expected undo on empty history to fail")
	}
	if h.RedoDepth() != 0 {
		t.Fatalf("failed undo must not touch the redo ring")
	}
}
