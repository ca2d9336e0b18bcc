package history

// DefaultCapacity is the number of snapshots each history ring keeps.
const DefaultCapacity = 20

// Ring is a fixed-capacity circular stack. Pushing onto a full ring
// overwrites the oldest entry.
type Ring[T any] struct {
	slots []T
	level int
	depth int
}

// NewRing creates a ring holding at most capacity entries.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{slots: make([]T, capacity)}
}

// Push stores v as the newest entry.
func (r *Ring[T]) Push(v T) {
	r.slots[r.level] = v
	r.level = (r.level + 1) % len(r.slots)
	if r.depth < len(r.slots) {
		r.depth++
	}
}

// Pop removes and returns the newest entry. It reports false when the ring is
// empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.depth == 0 {
		return zero, false
	}
	r.level = (r.level - 1 + len(r.slots)) % len(r.slots)
	r.depth--
	v := r.slots[r.level]
	r.slots[r.level] = zero
	return v, true
}

// Reset discards every entry.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.slots {
		r.slots[i] = zero
	}
	r.depth = 0
}

// Depth is the number of entries available to Pop.
func (r *Ring[T]) Depth() int { return r.depth }

// Cap is the ring capacity.
func (r *Ring[T]) Cap() int { return len(r.slots) }
