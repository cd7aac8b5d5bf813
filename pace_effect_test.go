package pace

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on cell change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("returned cleanup runs before the next run", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)

		e := NewEffect(func() func() {
			c := count.Read()
			log = append(log, fmt.Sprintf("run %d", c))

			return func() { log = append(log, fmt.Sprintf("cleanup %d", c)) }
		})

		count.Write(1)
		e.Dispose()

		assert.Equal(t, []string{
			"run 0",
			"cleanup 0",
			"run 1",
			"cleanup 1",
		}, log)
	})

	t.Run("writes to another cell", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)
		double := NewCell(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")

				OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))

			OnCleanup(func() {
				log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)

		initialized := false
		NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Read()
			}
			initialized = true
		})

		count.Write(1)
		count.Write(2) // no longer a dependency

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("dispose stops re-runs", func(t *testing.T) {
		log := []int{}

		count := NewCell(0)
		e := NewEffect(func() {
			log = append(log, count.Read())
		})

		count.Write(1)
		e.Dispose()
		e.Dispose()
		count.Write(2)

		assert.Equal(t, []int{0, 1}, log)
	})

	t.Run("panics propagate without an error handler", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			NewEffect(func() { panic("boom") })
		})
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		log := []int{}

		count := NewCell(0)

		NewEffect(func() {
			mu.Lock()
			log = append(log, count.Read())
			mu.Unlock()
		})

		wg.Go(func() {
			for count.Read() < 5 {
				count.Write(count.Read() + 1)
			}
		})

		wg.Wait()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, log)
	})
}

func TestWatch(t *testing.T) {
	t.Run("skips the current value", func(t *testing.T) {
		log := []string{}

		name := NewCell("a")
		w := Watch(name, func(v string) {
			log = append(log, v)
		})

		name.Write("b")
		name.Write("c")
		w.Dispose()
		name.Write("d")

		assert.Equal(t, []string{"b", "c"}, log)
	})

	t.Run("does not track reads in the callback", func(t *testing.T) {
		log := []string{}

		name := NewCell("a")
		other := NewCell(0)

		Watch(name, func(v string) {
			log = append(log, fmt.Sprintf("%s %d", v, other.Read()))
		})

		name.Write("b")
		other.Write(1)
		name.Write("c")

		assert.Equal(t, []string{"b 0", "c 1"}, log)
	})

	t.Run("observes computeds", func(t *testing.T) {
		log := []int{}

		count := NewCell(1)
		double := NewComputed(func() int { return count.Read() * 2 })

		Watch(double, func(v int) {
			log = append(log, v)
		})

		count.Write(2)
		count.Write(3)

		assert.Equal(t, []int{4, 6}, log)
	})

	t.Run("skips notifications that keep the value", func(t *testing.T) {
		log := []int{}

		n := NewCell(1)
		parity := NewComputed(func() int { return n.Read() % 2 })

		Watch(parity, func(v int) {
			log = append(log, v)
		})

		n.Write(3)
		n.Write(5)
		n.Write(4)
		n.Write(6)
		n.Write(7)

		assert.Equal(t, []int{0, 1}, log)
	})
}
