package pace

import "slices"

// Batch runs fn and defers every effect it triggers until the outermost batch
// completes, so an effect sees all the writes at once and runs a single time.
func Batch(fn func()) {
	rt := currentRoutine()
	rt.batchDepth++

	defer func() {
		if rt.batchDepth > 1 {
			rt.batchDepth--
			return
		}

		defer func() {
			rt.batchDepth = 0
			rt.pending = nil
			rt.release()
		}()

		if r := recover(); r != nil {
			panic(r)
		}

		// the depth stays at 1 while flushing so that writes made by effects
		// are queued here instead of recursing
		for len(rt.pending) > 0 {
			reactions := rt.pending
			rt.pending = nil

			for _, reaction := range reactions {
				reaction.Execute()
			}
		}
	}()

	fn()
}

func queueReaction(r Reaction) {
	rt := lookupRoutine()

	// if not in batch mode, execute immediately
	if rt == nil || rt.batchDepth == 0 {
		r.Execute()
		return
	}

	if !slices.Contains(rt.pending, r) {
		rt.pending = append(rt.pending, r)
	}
}
