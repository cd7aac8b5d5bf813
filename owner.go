package pace

import (
	"slices"
	"sync"
)

// scope is the lifecycle shared by owners and effects: children to dispose,
// cleanups to run and panic handlers.
type scope struct {
	mu sync.Mutex

	parent   *scope
	children []Disposable
	cleanups []func()
	catchers []func(any)
}

func (s *scope) addChild(child Disposable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.children, child) {
		s.children = append(s.children, child)
	}
}

func (s *scope) removeChild(child Disposable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.children, child); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
}

func (s *scope) onCleanup(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanups = append(s.cleanups, fn)
}

func (s *scope) onError(fn func(any)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catchers = append(s.catchers, fn)
}

// clean disposes the children, most recent first, then runs the cleanups in
// reverse registration order.
func (s *scope) clean() {
	s.mu.Lock()
	children := s.children
	cleanups := s.cleanups
	s.children = nil
	s.cleanups = nil
	s.mu.Unlock()

	for _, child := range slices.Backward(children) {
		child.Dispose()
	}
	for _, fn := range slices.Backward(cleanups) {
		fn()
	}
}

// run executes fn with s as the active owner.
// Panics go to the nearest scope with an error handler.
func (s *scope) run(fn func()) {
	rt := currentRoutine()
	prev := rt.owner
	rt.owner = s

	defer func() {
		rt := currentRoutine()
		rt.owner = prev
		rt.release()

		if r := recover(); r != nil {
			s.handle(r)
		}
	}()

	fn()
}

func (s *scope) handle(r any) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.Lock()
		catchers := slices.Clone(cur.catchers)
		cur.mu.Unlock()

		if len(catchers) == 0 {
			continue
		}
		for _, catcher := range catchers {
			catcher(r)
		}
		return
	}

	panic(r)
}

// adopt registers child with the active owner, if any, and returns that owner.
func adopt(child Disposable) *scope {
	parent := activeScope()
	if parent != nil {
		parent.addChild(child)
	}
	return parent
}

// Owner manages the lifecycle of the reactive nodes created within it.
type Owner struct {
	scope *scope
}

// NewOwner creates a new owner, child of the current one if any.
func NewOwner() *Owner {
	o := &Owner{scope: &scope{}}
	o.scope.parent = adopt(o)
	return o
}

// Run a function within the context of this owner.
// Each effect or value wrapper created within the function becomes a child of
// this owner, and is disposed when Dispose is called on it.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.scope.run(func() { err = fn() })
	return err
}

// Dispose this owner and all its children.
func (o *Owner) Dispose() {
	o.scope.clean()

	if o.scope.parent != nil {
		o.scope.parent.removeChild(o)
	}
}

// OnCleanup adds a function to be called when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.scope.onCleanup(fn) }

// OnError adds a function to be called when a panic occurs within this owner.
// If no error listener is registered up the owner chain, the panic propagates as usual.
func (o *Owner) OnError(fn func(any)) { o.scope.onError(fn) }
