package pace

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewCell(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("update", func(t *testing.T) {
		count := NewCell(1)
		count.Update(func(v int) int { return v + 1 })

		assert.Equal(t, 2, count.Peek())
	})

	t.Run("concurrent updates", func(t *testing.T) {
		var wg sync.WaitGroup
		count := NewCell(0)

		for range 50 {
			wg.Go(func() {
				count.Update(func(v int) int { return v + 1 })
			})
		}

		wg.Wait()
		assert.Equal(t, 50, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		err := NewCell[error](nil)
		assert.Nil(t, err.Read())

		err.Write(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")

		err.Write(nil)
		assert.Nil(t, err.Read())
	})

	t.Run("equal write does not notify", func(t *testing.T) {
		runs := 0
		count := NewCell(3)

		NewEffect(func() {
			count.Read()
			runs++
		})

		count.Write(3)
		count.Update(func(v int) int { return v })

		assert.Equal(t, 1, runs)
	})
}
