package ui

import (
	"sync"
	"time"
)

// Debounce returns a function that delays calling fn until wait has passed
// without another call. Only the arguments of the last call are used.
func Debounce[T any](fn func(T), wait time.Duration) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() { fn(arg) })
	}
}
