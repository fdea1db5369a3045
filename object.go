package activeobject

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// objectIDCounter assigns debug identifiers to objects, for log correlation.
var objectIDCounter atomic.Uint64

// Object is an active object: it owns a state value of type S, a dispatch
// queue, and the single worker goroutine that executes every deferred
// operation against that state. Its methods may be called from any
// goroutine.
//
// An Object must be constructed with New.
type Object[S any] struct { // betteralign:ignore
	id        uint64
	queue     *DispatchQueue
	logger    *logiface.Logger[logiface.Event]
	finalizer func(*S)

	// gate serializes enqueues against the shutdown sentinel: enqueuers hold
	// it shared around the status check and Put, the sentinel writer holds
	// it exclusively, so no operation can land behind the sentinel and every
	// accepted operation executes.
	gate     sync.RWMutex
	status   objectState
	done     atomic.Bool // set by the sentinel operation, read by the worker
	exited   chan struct{}
	stopOnce sync.Once

	enqueued  atomic.Uint64
	executed  atomic.Uint64
	recovered atomic.Uint64

	// state belongs to the worker goroutine: it is touched only from
	// deferred operations and the finalizer, which the worker executes one
	// at a time.
	state S
}

// New starts an active object around an initial state value. The worker
// goroutine is running by the time New returns; it parks on the dispatch
// queue while idle.
//
// A nil config is valid and selects the documented defaults.
func New[S any](state S, config *Config[S]) *Object[S] {
	x := &Object[S]{
		id:     objectIDCounter.Add(1),
		queue:  NewDispatchQueue(),
		exited: make(chan struct{}),
		state:  state,
	}
	if config != nil {
		x.logger = config.Logger
		x.finalizer = config.Finalizer
	}
	x.status.Store(StateRunning)
	go x.run()
	return x
}

// run is the worker: a single goroutine consuming the dispatch queue until
// the sentinel operation flips done. Everything queued ahead of the sentinel
// executes before the flag is observed, which is the drain guarantee.
func (x *Object[S]) run() {
	x.logger.Trace().
		Uint64(`object`, x.id).
		Log(`worker started`)
	for !x.done.Load() {
		x.execute(x.queue.Take())
	}
	if x.finalizer != nil {
		x.execute(func() { x.finalizer(&x.state) })
	}
	x.status.Store(StateTerminated)
	x.logger.Debug().
		Uint64(`object`, x.id).
		Uint64(`executed`, x.executed.Load()).
		Uint64(`recovered`, x.recovered.Load()).
		Log(`worker exited`)
	close(x.exited)
}

// execute runs one operation, recovering panics so a fault cannot kill the
// worker. Blocking calls deliver their own faults through their result cell
// and never reach this recovery; fire-and-forget faults land here and are
// counted and logged, stack included.
func (x *Object[S]) execute(op Operation) {
	defer func() {
		if r := recover(); r != nil {
			x.recovered.Add(1)
			x.logger.Err().
				Uint64(`object`, x.id).
				Interface(`recovered`, r).
				Str(`stack`, string(debug.Stack())).
				Log(`operation panicked`)
		}
	}()
	op()
}

// enqueue gates a deferred operation on the lifecycle: accepted only while
// running, never behind the sentinel.
func (x *Object[S]) enqueue(op Operation) error {
	x.gate.RLock()
	defer x.gate.RUnlock()
	if x.status.Load() != StateRunning {
		return ErrTerminated
	}
	x.queue.Put(op)
	x.enqueued.Add(1)
	return nil
}

// DoAsync enqueues fn and returns without waiting for it to execute. The
// worker calls fn with exclusive access to the state. Anything fn needs must
// travel as closure captures, and captures should be copies (plain function
// arguments do nicely), because fn runs later than DoAsync returns.
//
// Returns ErrTerminated, without enqueueing, once shutdown has been
// requested. DoAsync panics if fn is nil.
func (x *Object[S]) DoAsync(fn func(state *S)) error {
	if fn == nil {
		panic(`activeobject: nil function`)
	}
	return x.enqueue(func() {
		fn(&x.state)
		x.executed.Add(1)
	})
}

// Do enqueues fn and blocks until the worker has executed it. Because the
// caller stays parked for the duration, fn may write through pointers into
// the caller's frame, and those writes are complete and visible when Do
// returns.
//
// A panic inside fn is returned as a PanicError. Returns ErrTerminated,
// without enqueueing, once shutdown has been requested. Do panics if fn is
// nil.
//
// Do must not be called from a deferred operation: the worker cannot serve
// the queue while parked on itself, so the call would never return.
func (x *Object[S]) Do(fn func(state *S)) error {
	if fn == nil {
		panic(`activeobject: nil function`)
	}
	cell := newResultCell[struct{}]()
	if err := x.enqueue(func() {
		defer func() {
			if r := recover(); r != nil {
				x.recovered.Add(1)
				cell.reject(PanicError{Value: r})
			}
		}()
		fn(&x.state)
		x.executed.Add(1)
		cell.resolve(struct{}{})
	}); err != nil {
		return err
	}
	_, err := cell.wait()
	return err
}

// Query enqueues fn and blocks until the worker has executed it, returning
// the value fn computed with exclusive access to the state. It is a package
// function rather than a method so the result type can be a type parameter.
//
// A panic inside fn is returned as a PanicError. Returns ErrTerminated,
// without enqueueing, once shutdown has been requested. Query panics if fn
// is nil.
//
// Like Do, Query must not be called from a deferred operation.
func Query[S, T any](x *Object[S], fn func(state *S) T) (T, error) {
	if fn == nil {
		panic(`activeobject: nil function`)
	}
	cell := newResultCell[T]()
	if err := x.enqueue(func() {
		defer func() {
			if r := recover(); r != nil {
				x.recovered.Add(1)
				cell.reject(PanicError{Value: r})
			}
		}()
		value := fn(&x.state)
		x.executed.Add(1)
		cell.resolve(value)
	}); err != nil {
		var zero T
		return zero, err
	}
	return cell.wait()
}

// Shutdown requests termination and waits for the worker to exit. The first
// call flips the object to draining and enqueues the sentinel operation;
// everything accepted before that executes first, then the worker runs the
// finalizer, if any, and exits. Repeat calls, concurrent or sequential, are
// no-ops sharing the same wait.
//
// ctx bounds only the wait: on expiry Shutdown returns ctx.Err() while the
// drain continues in the background. Shutdown must not be called from a
// deferred operation.
func (x *Object[S]) Shutdown(ctx context.Context) error {
	x.stopOnce.Do(func() {
		x.logger.Debug().
			Uint64(`object`, x.id).
			Log(`shutdown requested`)
		x.gate.Lock()
		x.status.Store(StateDraining)
		// The sentinel is the last operation ever queued.
		x.queue.Put(func() { x.done.Store(true) })
		x.gate.Unlock()
	})
	select {
	case <-x.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close is Shutdown with an unbounded wait: enqueue the sentinel, drain,
// join the worker. It is likewise idempotent, and likewise must not be
// called from a deferred operation.
func (x *Object[S]) Close() error {
	return x.Shutdown(context.Background())
}

// Done returns a channel that is closed once the worker has exited.
func (x *Object[S]) Done() <-chan struct{} {
	return x.exited
}

// State reports the current lifecycle state.
func (x *Object[S]) State() State {
	return x.status.Load()
}
