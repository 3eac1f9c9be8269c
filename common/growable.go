package common

// DefaultInitialCapacity is the starting capacity used for geometry sequences when no
// explicit capacity is configured.
const DefaultInitialCapacity = 1000

// Growable is an append-only sequence with an explicit capacity that doubles only when
// the sequence is full. Each growth reallocates and copies every existing element, so
// after N appends starting at capacity C the capacity is the smallest C*2^k >= N.
//
// Growable is not safe for concurrent use.
type Growable[T any] struct {
	items  []T
	onGrow func(oldCapacity, newCapacity int)
}

// NewGrowable creates an empty sequence with the given initial capacity.
// Capacities below 1 are raised to 1.
//
// Parameters:
//   - initialCapacity: the number of elements the first allocation can hold
//
// Returns:
//   - *Growable[T]: the empty sequence
func NewGrowable[T any](initialCapacity int) *Growable[T] {
	return &Growable[T]{
		items: make([]T, 0, max(initialCapacity, 1)),
	}
}

// SetGrowCallback registers a function that is called after every reallocation.
//
// Parameters:
//   - callback: function receiving the previous and the new capacity (or nil to disable)
func (g *Growable[T]) SetGrowCallback(callback func(oldCapacity, newCapacity int)) {
	g.onGrow = callback
}

// Append adds v to the end of the sequence, doubling the capacity first if it is full.
//
// Parameters:
//   - v: the element to append
func (g *Growable[T]) Append(v T) {
	if len(g.items) == cap(g.items) {
		oldCap := cap(g.items)
		newCap := max(oldCap*2, 1)
		grown := make([]T, len(g.items), newCap)
		copy(grown, g.items)
		g.items = grown
		if g.onGrow != nil {
			g.onGrow(oldCap, newCap)
		}
	}
	g.items = append(g.items, v)
}

// Reserve makes room for n more elements with at most one reallocation. The resulting capacity
// is the one n single Appends would have reached.
//
// Parameters:
//   - n: the number of elements about to be appended
func (g *Growable[T]) Reserve(n int) {
	need := len(g.items) + n
	if need <= cap(g.items) {
		return
	}
	oldCap := cap(g.items)
	newCap := NextCapacity(oldCap, need)
	grown := make([]T, len(g.items), newCap)
	copy(grown, g.items)
	g.items = grown
	if g.onGrow != nil {
		g.onGrow(oldCap, newCap)
	}
}

// Len returns the number of stored elements.
func (g *Growable[T]) Len() int {
	return len(g.items)
}

// Cap returns the current capacity.
func (g *Growable[T]) Cap() int {
	return cap(g.items)
}

// At returns the element at the 0-based index i. It panics when i is out of range.
func (g *Growable[T]) At(i int) T {
	return g.items[i]
}

// Items returns the stored elements. The slice aliases the sequence's storage and is
// invalidated by the next growth.
func (g *Growable[T]) Items() []T {
	return g.items
}

// Release drops the backing storage. The sequence is empty with capacity 0 afterwards;
// a later Append allocates again starting from capacity 1.
func (g *Growable[T]) Release() {
	g.items = nil
}
