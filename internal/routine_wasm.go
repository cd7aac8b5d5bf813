//go:build wasm

package internal

// RoutineID always returns the same slot on wasm, where reactive state is
// shared by the whole program.
func RoutineID() int64 {
	return 0
}
