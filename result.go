package activeobject

// resultCell is a single-use rendezvous between the worker and one blocking
// caller. The buffer of one means settling never blocks the worker, whether
// or not the caller has reached wait yet.
type resultCell[T any] struct {
	ch chan settled[T]
}

type settled[T any] struct {
	value T
	err   error
}

func newResultCell[T any]() resultCell[T] {
	return resultCell[T]{ch: make(chan settled[T], 1)}
}

// resolve settles the cell with a value. Each cell is settled exactly once,
// by the single operation constructed around it.
func (c resultCell[T]) resolve(value T) {
	c.ch <- settled[T]{value: value}
}

// reject settles the cell with an error.
func (c resultCell[T]) reject(err error) {
	c.ch <- settled[T]{err: err}
}

// wait parks the caller until the cell is settled. There is deliberately no
// timeout and no cancellation: an accepted operation always runs, so the
// wait always ends.
func (c resultCell[T]) wait() (T, error) {
	s := <-c.ch
	return s.value, s.err
}
