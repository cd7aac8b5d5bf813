//go:build !wasm

package internal

import "github.com/petermattis/goid"

// RoutineID identifies the calling goroutine.
func RoutineID() int64 {
	return goid.Get()
}
