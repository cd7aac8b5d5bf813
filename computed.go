package pace

import "sync"

// Computed is a memoized value derived from other observables. It is computed
// lazily on read and recomputed only after one of its dependencies changed.
type Computed[T comparable] struct {
	*reactionTracker
	*dependencyTracker

	mu          sync.Mutex
	stale       bool
	computation func() T
	value       T
}

// NewComputed creates a computed value from the given computation.
func NewComputed[T comparable](computation func() T) *Computed[T] {
	c := &Computed[T]{
		reactionTracker:   &reactionTracker{},
		dependencyTracker: &dependencyTracker{},

		stale:       true,
		computation: computation,
	}
	adopt(c)

	return c
}

func (c *Computed[T]) addDependency(o Observable) {
	c.dependencyTracker.add(o)
}

func (c *Computed[T]) removeDependency(o Observable) {
	c.dependencyTracker.remove(o)
}

func (c *Computed[T]) track(r Reaction) {
	c.reactionTracker.track(c, r)
}

func (c *Computed[T]) untrack(r Reaction) {
	c.reactionTracker.untrack(c, r)
}

func (c *Computed[T]) markStale() {
	c.mu.Lock()
	if c.stale {
		c.mu.Unlock()
		return
	}
	c.stale = true
	c.mu.Unlock()

	c.reactionTracker.react()
}

// Execute marks the value stale and notifies the dependents.
func (c *Computed[T]) Execute() {
	c.markStale()
}

// Dispose detaches the computed from its dependencies and dependents.
func (c *Computed[T]) Dispose() {
	c.dependencyTracker.clear(c)
	c.reactionTracker.clear(c)
}

// Read the current value, recomputing it if stale, and tracking the dependency
// if within a reactive context.
func (c *Computed[T]) Read() T {
	if r := activeReaction(); r != nil {
		c.track(r)
	}

	c.mu.Lock()
	if !c.stale {
		v := c.value
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	// clear previous dependencies
	c.dependencyTracker.clear(c)

	var v T
	withReaction(c, func() { v = c.computation() })

	c.mu.Lock()
	c.value = v
	c.stale = false
	c.mu.Unlock()

	return v
}
