package arena

// Ref represents a safe reference to an arena slot.
// It includes the generation to detect stale references.
// The zero Ref never resolves.
type Ref struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool { return r.Gen == 0 }

type entry[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Stats tracks arena slot usage.
type Stats struct {
	Slots       int    // Current: slots ever appended
	Live        int    // Current: occupied slots
	Free        int    // Current: slots on the free stack
	TotalAllocs uint64 // Historical: total allocations
}

// Arena is a slot arena for values of type T.
type Arena[T any] struct {
	entries     []entry[T]
	free        []uint32
	live        int
	totalAllocs uint64
}

// New creates an arena with room for capacity slots before reallocating.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{
		entries: make([]entry[T], 0, capacity),
	}
}

// Alloc stores v in a free slot (or a new one) and returns its Ref.
func (a *Arena[T]) Alloc(v T) Ref {
	a.totalAllocs++
	a.live++

	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		e := &a.entries[idx]
		e.value = v
		e.live = true
		return Ref{Index: idx, Gen: e.gen}
	}

	idx := uint32(len(a.entries))
	a.entries = append(a.entries, entry[T]{value: v, gen: 1, live: true})
	return Ref{Index: idx, Gen: 1}
}

// Get returns a pointer to the value referenced by r.
// The pointer is valid until the next Alloc or Free.
func (a *Arena[T]) Get(r Ref) (*T, bool) {
	if r.Gen == 0 || int(r.Index) >= len(a.entries) {
		return nil, false
	}
	e := &a.entries[r.Index]
	if !e.live || e.gen != r.Gen {
		return nil, false
	}
	return &e.value, true
}

// Valid reports whether r resolves to a live slot.
func (a *Arena[T]) Valid(r Ref) bool {
	_, ok := a.Get(r)
	return ok
}

// Free releases the slot referenced by r. It returns false for stale refs.
func (a *Arena[T]) Free(r Ref) bool {
	if _, ok := a.Get(r); !ok {
		return false
	}
	e := &a.entries[r.Index]
	var zero T
	e.value = zero
	e.live = false
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	a.free = append(a.free, r.Index)
	a.live--
	return true
}

// Range calls fn for every live slot in index order until fn returns false.
func (a *Arena[T]) Range(fn func(Ref, *T) bool) {
	for i := range a.entries {
		e := &a.entries[i]
		if !e.live {
			continue
		}
		if !fn(Ref{Index: uint32(i), Gen: e.gen}, &e.value) {
			return
		}
	}
}

// Live returns the number of occupied slots.
func (a *Arena[T]) Live() int { return a.live }

// Len returns the number of slots, occupied or free.
func (a *Arena[T]) Len() int { return len(a.entries) }

// Stats returns current usage.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Slots:       len(a.entries),
		Live:        a.live,
		Free:        len(a.free),
		TotalAllocs: a.totalAllocs,
	}
}
