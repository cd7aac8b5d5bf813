package pace

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay(t *testing.T) {
	t.Run("waits for the duration", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			start := time.Now()

			err := Delay(t.Context(), 250*time.Millisecond)
			assert.NoError(t, err)
			assert.Equal(t, 250*time.Millisecond, time.Since(start))
		})
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
			defer cancel()

			start := time.Now()
			err := Delay(ctx, time.Hour)

			assert.ErrorIs(t, err, ErrDelayCanceled)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Equal(t, 100*time.Millisecond, time.Since(start))
		})
	})

	t.Run("fails early on an ended context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := Delay(ctx, time.Hour)
		assert.ErrorIs(t, err, ErrDelayCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
