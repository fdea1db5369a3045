package activeobject

import (
	"runtime"
	"testing"
	"time"
)

// Shared state types for tests.
type (
	counter struct{ n int }
	gauge   struct{ val float64 }
	pair    struct{ a, b int }
)

// checkNumGoroutines snapshots the goroutine count and returns a func that
// fails the test if the count has not settled back down within wait. Use as
// `defer checkNumGoroutines(time.Second * 3)(t)`.
func checkNumGoroutines(wait time.Duration) func(t testing.TB) {
	n := runtime.NumGoroutine()
	return func(t testing.TB) {
		t.Helper()
		deadline := time.Now().Add(wait)
		for {
			m := runtime.NumGoroutine()
			if m <= n {
				return
			}
			if time.Now().After(deadline) {
				t.Errorf("goroutine leak: started with %d, still %d after %s", n, m, wait)
				return
			}
			time.Sleep(time.Millisecond)
		}
	}
}
