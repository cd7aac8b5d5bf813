package pace

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttler runs a function at most once per interval, on the leading edge:
// the first call runs synchronously and starts a cooldown, calls made during
// the cooldown are dropped. With WithTrailing, the last dropped call is kept
// and runs once the cooldown ends.
//
// The cooldown is a token bucket holding a single token refilled every limit.
type Throttler[T any] struct {
	limiter *rate.Limiter
	limit   time.Duration
	fn      func(T)
	opts    options

	mu      sync.Mutex
	timer   *time.Timer
	arg     T
	pending bool
	gen     uint64
}

// NewThrottler returns a throttler running fn at most once per limit.
// A zero or negative limit never cools down.
func NewThrottler[T any](fn func(T), limit time.Duration, opts ...Option) *Throttler[T] {
	return &Throttler[T]{
		limiter: rate.NewLimiter(rate.Every(limit), 1),
		limit:   limit,
		fn:      fn,
		opts:    newOptions(opts),
	}
}

// Throttle returns fn wrapped in a Throttler.
func Throttle[T any](fn func(T), limit time.Duration, opts ...Option) func(T) {
	t := NewThrottler(fn, limit, opts...)
	return func(arg T) { t.Call(arg) }
}

// Call runs fn(arg) if the throttler is idle and reports whether it did.
// The cooldown starts before fn runs.
func (t *Throttler[T]) Call(arg T) bool {
	if t.limiter.Allow() {
		if t.opts.trailing {
			t.Cancel()
		}

		t.opts.invoke(func() { t.fn(arg) })
		return true
	}

	if !t.opts.trailing {
		t.opts.logger.Debug("throttled call dropped", "limit", t.limit)
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.arg = arg
	t.pending = true
	if t.timer == nil {
		t.scheduleLocked()
	}
	return false
}

// cooldown returns how long until the throttler is idle again.
func (t *Throttler[T]) cooldown() time.Duration {
	tokens := t.limiter.Tokens()
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) * float64(t.limit))
}

func (t *Throttler[T]) scheduleLocked() {
	delay := t.cooldown()
	gen := t.gen
	t.timer = time.AfterFunc(delay, func() { t.fireTrailing(gen) })

	t.opts.logger.Debug("throttled call deferred", "delay", delay)
}

func (t *Throttler[T]) fireTrailing(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.pending {
		t.mu.Unlock()
		return
	}
	t.timer = nil

	// still cooling down when the timer rounds early
	if !t.limiter.Allow() {
		t.scheduleLocked()
		t.mu.Unlock()
		return
	}

	arg, _ := t.takeLocked()
	t.mu.Unlock()

	t.opts.invoke(func() { t.fn(arg) })
}

func (t *Throttler[T]) takeLocked() (T, bool) {
	var zero T
	if !t.pending {
		return zero, false
	}

	arg := t.arg
	t.arg = zero
	t.pending = false
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	return arg, true
}

// Cancel drops the trailing call, if any, and reports whether there was one.
// The cooldown itself is left running.
func (t *Throttler[T]) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.takeLocked()
	return ok
}

// Flush runs the trailing call right away, ignoring the cooldown, and reports
// whether there was one.
func (t *Throttler[T]) Flush() bool {
	t.mu.Lock()
	arg, ok := t.takeLocked()
	t.mu.Unlock()

	if !ok {
		return false
	}

	t.opts.invoke(func() { t.fn(arg) })
	return true
}
