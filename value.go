package pace

import "time"

// ThrottledValue republishes a source through a Throttler. It starts with the
// source's current value; each later change of the source is accepted only
// when the throttler is idle, on the same goroutine and turn as the source
// write.
//
// Changes made during a cooldown are lost, so after a burst the value may lag
// behind the source until the next change arrives after the cooldown. Pass
// WithTrailing to publish the last of them when the cooldown ends instead.
type ThrottledValue[T comparable] struct {
	cell      *Cell[T]
	throttler *Throttler[T]
	watcher   *Effect
}

// NewThrottledValue observes source until disposed, either directly or with
// the owner it was created in. The interval is DefaultLimit unless WithLimit
// is given.
func NewThrottledValue[T comparable](source Source[T], opts ...Option) *ThrottledValue[T] {
	o := newOptions(opts)

	v := &ThrottledValue[T]{
		cell: NewCell(Untrack(source.Read)),
	}
	v.throttler = NewThrottler(v.cell.Write, o.limit, opts...)
	v.watcher = Watch(source, func(x T) { v.throttler.Call(x) })
	OnCleanup(func() { v.throttler.Cancel() })

	return v
}

// Read the latest accepted value, tracking the dependency if within a reactive context.
func (v *ThrottledValue[T]) Read() T {
	return v.cell.Read()
}

// Peek reads the latest accepted value without tracking it.
func (v *ThrottledValue[T]) Peek() T {
	return v.cell.Peek()
}

// Dispose stops observing the source and drops any trailing value.
func (v *ThrottledValue[T]) Dispose() {
	v.watcher.Dispose()
	v.throttler.Cancel()
}

// DebouncedValue republishes a source once it has stopped changing for a
// quiet period. It starts with the source's current value. The new value is
// written from a timer goroutine, where its own subscribers then run.
type DebouncedValue[T comparable] struct {
	cell      *Cell[T]
	debouncer *Debouncer[T]
	watcher   *Effect
}

// NewDebouncedValue observes source until disposed, either directly or with
// the owner it was created in.
func NewDebouncedValue[T comparable](source Source[T], wait time.Duration, opts ...Option) *DebouncedValue[T] {
	v := &DebouncedValue[T]{
		cell: NewCell(Untrack(source.Read)),
	}
	v.debouncer = NewDebouncer(v.cell.Write, wait, opts...)
	v.watcher = Watch(source, v.debouncer.Call)
	OnCleanup(func() { v.debouncer.Cancel() })

	return v
}

// Read the latest published value, tracking the dependency if within a reactive context.
func (v *DebouncedValue[T]) Read() T {
	return v.cell.Read()
}

// Peek reads the latest published value without tracking it.
func (v *DebouncedValue[T]) Peek() T {
	return v.cell.Peek()
}

// Dispose stops observing the source and drops any pending value.
func (v *DebouncedValue[T]) Dispose() {
	v.watcher.Dispose()
	v.debouncer.Cancel()
}
