// Package pace controls how often functions run and values propagate.
//
// [Debouncer] collapses a burst of calls into one trailing call, [Throttler]
// runs the first call of each interval and drops the rest, and
// [ThrottledValue] / [DebouncedValue] republish an observable [Source] through
// them. The observables themselves ([Cell], [Computed]) and their observers
// ([Effect], [Watch], [Owner]) form a small reactive runtime.
package pace

import (
	"sync"

	"github.com/AnatoleLucet/pace/internal"
)

// Reaction represents a computation that depends on observables.
// Think of it as an effect or a computed value that needs to be re-evaluated when its dependencies change.
type Reaction interface {
	// Execute runs the reaction's logic.
	Execute()

	// Dispose cleans up the reaction, removing all dependencies and stopping further executions.
	Dispose()

	addDependency(o Observable)
	removeDependency(o Observable)
}

// Observable represents a data source that can be observed by reactions.
type Observable interface {
	track(r Reaction)
	untrack(r Reaction)
}

// Source is a readable value. Reads made from inside an effect or a computed
// are tracked when the source is reactive.
type Source[T any] interface {
	Read() T
}

// Disposable is anything an owner can tear down.
type Disposable interface {
	Dispose()
}

// routine holds the reactive state of one goroutine.
type routine struct {
	owner    *scope
	reaction Reaction

	// batchDepth > 0 means effects are queued in pending until the outermost batch ends.
	batchDepth int
	pending    []Reaction
}

var routines sync.Map

func currentRoutine() *routine {
	id := internal.RoutineID()
	if rt, ok := routines.Load(id); ok {
		return rt.(*routine)
	}

	rt := &routine{}
	routines.Store(id, rt)
	return rt
}

func lookupRoutine() *routine {
	if rt, ok := routines.Load(internal.RoutineID()); ok {
		return rt.(*routine)
	}
	return nil
}

// release forgets the routine once it carries no state, so timer goroutines
// don't pile up entries.
func (rt *routine) release() {
	if rt.owner == nil && rt.reaction == nil && rt.batchDepth == 0 && len(rt.pending) == 0 {
		routines.Delete(internal.RoutineID())
	}
}

func activeReaction() Reaction {
	if rt := lookupRoutine(); rt != nil {
		return rt.reaction
	}
	return nil
}

func activeScope() *scope {
	if rt := lookupRoutine(); rt != nil {
		return rt.owner
	}
	return nil
}

func withReaction(r Reaction, fn func()) {
	rt := currentRoutine()
	prev := rt.reaction
	rt.reaction = r
	defer func() {
		// fn may have released the routine, fetch it again
		rt := currentRoutine()
		rt.reaction = prev
		rt.release()
	}()

	fn()
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	withReaction(nil, func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called when the current owner is disposed,
// or before the current effect re-runs. Outside of any owner it does nothing.
func OnCleanup(fn func()) {
	if s := activeScope(); s != nil {
		s.onCleanup(fn)
	}
}
