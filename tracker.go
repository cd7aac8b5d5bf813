package pace

import (
	"slices"
	"sync"
)

type reactionTracker struct {
	mu        sync.Mutex
	reactions []Reaction
}

func (t *reactionTracker) track(o Observable, r Reaction) {
	t.mu.Lock()
	if slices.Contains(t.reactions, r) {
		t.mu.Unlock()
		return
	}
	t.reactions = append(t.reactions, r)
	t.mu.Unlock()

	r.addDependency(o)
}

func (t *reactionTracker) untrack(o Observable, r Reaction) {
	t.mu.Lock()
	index := slices.Index(t.reactions, r)
	if index == -1 {
		t.mu.Unlock()
		return
	}
	t.reactions = slices.Delete(t.reactions, index, index+1)
	t.mu.Unlock()

	r.removeDependency(o)
}

func (t *reactionTracker) clear(o Observable) {
	t.mu.Lock()
	reactions := t.reactions
	t.reactions = nil
	t.mu.Unlock()

	for _, r := range reactions {
		r.removeDependency(o)
	}
}

// react notifies every tracked reaction. Computeds are marked stale right away
// so that effects queued behind them read fresh values.
func (t *reactionTracker) react() {
	t.mu.Lock()
	reactions := slices.Clone(t.reactions)
	t.mu.Unlock()

	for _, r := range reactions {
		if s, ok := r.(staler); ok {
			s.markStale()
			continue
		}
		queueReaction(r)
	}
}

type staler interface {
	markStale()
}

type dependencyTracker struct {
	mu           sync.Mutex
	dependencies []Observable
}

func (d *dependencyTracker) add(o Observable) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !slices.Contains(d.dependencies, o) {
		d.dependencies = append(d.dependencies, o)
	}
}

func (d *dependencyTracker) remove(o Observable) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index := slices.Index(d.dependencies, o); index != -1 {
		d.dependencies = slices.Delete(d.dependencies, index, index+1)
	}
}

func (d *dependencyTracker) clear(r Reaction) {
	d.mu.Lock()
	dependencies := d.dependencies
	d.dependencies = nil
	d.mu.Unlock()

	for _, dep := range dependencies {
		dep.untrack(r)
	}
}
