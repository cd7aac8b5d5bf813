package pace

import (
	"log/slog"
	"time"
)

// DefaultLimit is the throttle interval used by NewThrottledValue when no
// WithLimit option is given.
const DefaultLimit = 300 * time.Millisecond

// Option configures a Debouncer, a Throttler or a value wrapper.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	onPanic  func(any)
	limit    time.Duration
	trailing bool
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		limit:  DefaultLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used to report dropped, rescheduled and
// recovered calls. A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecover installs a handler for panics raised by the wrapped function.
// Without it the panic propagates on whichever goroutine ran the call.
func WithRecover(fn func(any)) Option {
	return func(o *options) {
		o.onPanic = fn
	}
}

// WithLimit sets the interval of NewThrottledValue.
func WithLimit(d time.Duration) Option {
	return func(o *options) {
		o.limit = d
	}
}

// WithTrailing makes throttling also fire the last dropped call once the
// interval ends.
func WithTrailing() Option {
	return func(o *options) {
		o.trailing = true
	}
}

// invoke runs fn, handing a panic to the recover handler when one is set.
func (o options) invoke(fn func()) {
	if o.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("recovered panic in wrapped function", "panic", r)
				o.onPanic(r)
			}
		}()
	}

	fn()
}
