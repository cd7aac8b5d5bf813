package pace

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDelayCanceled is returned by Delay when its context ends first.
var ErrDelayCanceled = errors.New("delay canceled")

// Delay blocks for d, or until ctx ends. A zero or negative d returns at once
// unless ctx has already ended.
func Delay(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w early: %w", ErrDelayCanceled, err)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrDelayCanceled, ctx.Err())
	}
}
