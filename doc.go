// Package activeobject implements the active object concurrency pattern: a
// state value owned by a single worker goroutine, driven by deferred
// operations that any goroutine may enqueue.
//
// # Architecture
//
// Two components cooperate:
//
//   - DispatchQueue: an unbounded FIFO hand-off of deferred operations from
//     any number of producers to a single consumer, built on one mutex and
//     one wake-up condition.
//   - Object: the active object. It owns a DispatchQueue, the worker
//     goroutine consuming it, and a state value of type S that only the
//     worker touches.
//
// Callers never invoke behavior directly. They enqueue closures, and the
// worker executes them one at a time, in the order they were accepted,
// against the state it exclusively owns. Results travel back through
// single-use rendezvous cells surfaced by the blocking call APIs.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. Serialization of state
// access is the point of the pattern: because exactly one goroutine runs
// every operation, fields of S need no locking of their own, reads see all
// prior writes, and read-modify-write sequences are atomic with respect to
// each other.
//
// # Execution Model
//
// Four calling conventions cover the usual shapes of work:
//
//   - DoAsync(fn): fire and forget. Returns as soon as fn is queued.
//   - Query(obj, fn): block until the worker has run fn, returning the
//     value it computed.
//   - DoAsync with captured arguments: parameters travel as closure
//     captures; capture copies, since fn runs later.
//   - Do(fn): block until the worker has run fn. Because the caller stays
//     parked, fn may write through pointers into the caller's frame, and
//     those writes are visible when Do returns.
//
// Shutdown enqueues a sentinel operation behind everything already
// accepted, so a draining object finishes all of its queued work before the
// worker exits. Shutdown is idempotent and safe to call concurrently.
//
// Blocking calls have no timeout and must not be issued from a deferred
// operation: the worker cannot serve the queue while parked on itself.
//
// # Usage
//
//	type counter struct{ n int }
//
//	obj := activeobject.New(counter{}, nil)
//
//	// Fire and forget: the worker increments some time after this returns.
//	if err := obj.DoAsync(func(c *counter) { c.n++ }); err != nil {
//		// handle error
//	}
//
//	// Blocking read: parks until the worker computes the answer.
//	n, err := activeobject.Query(obj, func(c *counter) int { return c.n })
//	if err != nil {
//		// handle error
//	}
//	_ = n
//
//	// Drain and join the worker.
//	if err := obj.Close(); err != nil {
//		// handle error
//	}
//
// # Error Types
//
//   - ErrTerminated: returned by Do, DoAsync and Query once shutdown has
//     been requested; the operation was not enqueued.
//   - PanicError: wraps a value recovered from a panicking operation.
//     Blocking callers receive it as the call's error; fire-and-forget
//     panics are logged instead. PanicError unwraps to the panic value when
//     that value is itself an error.
package activeobject
