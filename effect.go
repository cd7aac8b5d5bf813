package pace

import (
	"sync"
	"sync/atomic"
)

// EffectComputation is the shape of an effect body: a plain function, or one
// returning a cleanup to run before the next run and on disposal.
type EffectComputation interface {
	func() | func() func()
}

// Effect is a reaction re-run whenever one of the cells or computeds it read
// during its last run changes. It is the explicit subscription handle: Dispose
// stops it.
type Effect struct {
	*dependencyTracker

	scope       *scope
	computation func() func()

	mu       sync.Mutex
	cleanup  func()
	disposed atomic.Bool
}

// NewEffect creates a reactive effect and runs it once right away.
// When the computation returns a function, it is called before the next run
// and on disposal.
func NewEffect[T EffectComputation](computation T) *Effect {
	e := &Effect{
		dependencyTracker: &dependencyTracker{},
		scope:             &scope{},
	}

	switch fn := any(computation).(type) {
	case func():
		e.computation = func() func() {
			fn()
			return nil
		}
	case func() func():
		e.computation = fn
	}

	e.scope.parent = adopt(e)
	e.Execute()

	return e
}

func (e *Effect) addDependency(o Observable) {
	e.dependencyTracker.add(o)
}

func (e *Effect) removeDependency(o Observable) {
	e.dependencyTracker.remove(o)
}

func (e *Effect) clean() {
	e.mu.Lock()
	cleanup := e.cleanup
	e.cleanup = nil
	e.mu.Unlock()

	if cleanup != nil {
		cleanup()
	}

	e.dependencyTracker.clear(e)
	e.scope.clean()
}

// Execute re-runs the effect. It does nothing once the effect is disposed.
func (e *Effect) Execute() {
	if e.disposed.Load() {
		return
	}
	e.clean()

	e.scope.run(func() {
		withReaction(e, func() {
			cleanup := e.computation()

			e.mu.Lock()
			e.cleanup = cleanup
			e.mu.Unlock()
		})
	})
}

// Dispose stops the effect, running its pending cleanups.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.clean()

	if e.scope.parent != nil {
		e.scope.parent.removeChild(e)
	}
}

// Watch calls fn with every new value of source, starting with the first
// change after the call (the current value is not delivered). A notification
// that leaves the value equal to the last one seen is skipped. Reads made
// inside fn are not tracked.
func Watch[T comparable](source Source[T], fn func(T)) *Effect {
	var (
		mu          sync.Mutex
		last        T
		initialized bool
	)

	return NewEffect(func() {
		v := source.Read()

		mu.Lock()
		changed := initialized && v != last
		initialized = true
		last = v
		mu.Unlock()

		if !changed {
			return
		}
		withReaction(nil, func() { fn(v) })
	})
}
