package pace

import (
	"sync"
	"time"
)

// Debouncer delays a function until calls have stopped for a quiet period.
// Each Call replaces the pending one, so a burst runs fn once, with the
// arguments of the last call, wait after that call.
//
// fn runs on a timer goroutine and never blocks Call.
type Debouncer[T any] struct {
	mu sync.Mutex

	fn   func(T)
	wait time.Duration
	opts options

	timer   *time.Timer
	arg     T
	pending bool

	// gen is bumped on every Call and Cancel so that a timer which already
	// fired but lost the race for mu drops its call.
	gen uint64
}

// NewDebouncer returns a debouncer running fn wait after the last Call.
// A zero or negative wait still defers fn to a timer goroutine.
func NewDebouncer[T any](fn func(T), wait time.Duration, opts ...Option) *Debouncer[T] {
	return &Debouncer[T]{
		fn:   fn,
		wait: wait,
		opts: newOptions(opts),
	}
}

// Debounce returns fn wrapped in a Debouncer.
func Debounce[T any](fn func(T), wait time.Duration, opts ...Option) func(T) {
	return NewDebouncer(fn, wait, opts...).Call
}

// Call schedules fn(arg) after the wait, cancelling any pending call.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.opts.logger.Debug("debounced call rescheduled", "wait", d.wait)
	}

	d.gen++
	gen := d.gen
	d.arg = arg
	d.pending = true
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	arg, ok := d.take(gen)
	if !ok {
		return
	}

	d.opts.invoke(func() { d.fn(arg) })
}

// take clears the pending call and returns its argument, provided gen is
// still the current generation.
func (d *Debouncer[T]) take(gen uint64) (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.takeLocked(gen)
}

func (d *Debouncer[T]) takeLocked(gen uint64) (T, bool) {
	var zero T
	if gen != d.gen || !d.pending {
		return zero, false
	}

	arg := d.arg
	d.arg = zero
	d.pending = false
	d.timer = nil

	return arg, true
}

// Cancel drops the pending call, if any, and reports whether there was one.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	var zero T
	pending := d.pending
	d.gen++
	d.arg = zero
	d.pending = false

	return pending
}

// Flush runs the pending call right away on the calling goroutine and reports
// whether there was one.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	arg, ok := d.takeLocked(d.gen)
	d.mu.Unlock()

	if !ok {
		return false
	}

	d.opts.invoke(func() { d.fn(arg) })
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}
