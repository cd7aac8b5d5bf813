package pace

import "sync"

// Cell is an observable value. Reading it from an effect or a computed
// subscribes that reaction; writing a different value re-runs the subscribers.
//
// A Cell is safe for concurrent use. Subscribers run on the goroutine that wrote.
type Cell[T comparable] struct {
	*reactionTracker

	mu    sync.RWMutex
	value T
}

// NewCell creates a cell holding initial.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{
		reactionTracker: &reactionTracker{},
		value:           initial,
	}
}

func (c *Cell[T]) track(r Reaction) {
	c.reactionTracker.track(c, r)
}

func (c *Cell[T]) untrack(r Reaction) {
	c.reactionTracker.untrack(c, r)
}

// Read the current value of the cell, tracking the dependency if within a reactive context.
func (c *Cell[T]) Read() T {
	if r := activeReaction(); r != nil {
		c.track(r)
	}

	return c.Peek()
}

// Peek reads the current value without tracking it.
func (c *Cell[T]) Peek() T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.value
}

// Write a new value to the cell. Writing the value it already holds is a no-op.
func (c *Cell[T]) Write(v T) {
	c.mu.Lock()
	if c.value == v {
		c.mu.Unlock()
		return
	}
	c.value = v
	c.mu.Unlock()

	Batch(c.reactionTracker.react)
}

// Update replaces the value with fn applied to it, atomically with respect to
// other writers.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	v := fn(c.value)
	if c.value == v {
		c.mu.Unlock()
		return
	}
	c.value = v
	c.mu.Unlock()

	Batch(c.reactionTracker.react)
}
