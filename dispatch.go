package activeobject

import (
	"sync"
)

// chunkSize is the number of operations per node in the queue's linked list.
// 64 func values plus cursors keeps a chunk near half a KiB.
const chunkSize = 64

// Operation is a deferred operation: a nullary procedure whose arguments and
// result plumbing, if any, live in the closure.
type Operation func()

// DispatchQueue is an unbounded FIFO hand-off of deferred operations from
// any number of producers to a single consumer.
//
// Put never blocks beyond a short critical section; Take parks the calling
// goroutine until an operation is available. Operations are stored in
// fixed-size chunks recycled through a sync.Pool, so sustained traffic
// settles into zero steady-state allocation.
type DispatchQueue struct {
	mu       sync.Mutex
	nonEmpty sync.Cond
	head     *chunk
	tail     *chunk
	length   int
}

// chunk is a fixed-size node in the chunked linked list. It uses
// readPos/pos cursors for O(1) push and pop without shifting.
type chunk struct {
	ops     [chunkSize]Operation
	next    *chunk
	readPos int // first unread slot
	pos     int // first unused slot
}

// chunkPool prevents GC thrashing under sustained put/take traffic.
var chunkPool = sync.Pool{
	New: func() any {
		return &chunk{}
	},
}

func newChunk() *chunk {
	c := chunkPool.Get().(*chunk)
	// Reset cursors for reuse; the chunk may carry stale state.
	c.pos = 0
	c.readPos = 0
	c.next = nil
	return c
}

// returnChunk hands an exhausted chunk back to the pool, clearing operation
// slots first so retained closures can be collected.
func returnChunk(c *chunk) {
	for i := 0; i < c.pos; i++ {
		c.ops[i] = nil
	}
	c.pos = 0
	c.readPos = 0
	c.next = nil
	chunkPool.Put(c)
}

// NewDispatchQueue returns an empty queue ready for use.
func NewDispatchQueue() *DispatchQueue {
	q := &DispatchQueue{}
	q.nonEmpty.L = &q.mu
	return q
}

// Put appends op and wakes the consumer if it is parked. The queue is
// unbounded, so the only wait a producer can experience is the O(1)
// critical section of a concurrent Put or Take.
//
// Put panics if op is nil.
func (q *DispatchQueue) Put(op Operation) {
	if op == nil {
		panic(`activeobject: nil operation`)
	}
	q.mu.Lock()
	q.push(op)
	q.mu.Unlock()
	// One consumer at most, so Signal suffices over Broadcast.
	q.nonEmpty.Signal()
}

// Take blocks until the queue is non-empty, then removes and returns the
// oldest operation. Executing the operation is the caller's business and
// happens after Take has released the lock.
func (q *DispatchQueue) Take() Operation {
	q.mu.Lock()
	// Re-check the predicate after every wakeup: condition waits are subject
	// to spurious wakeups and lost races with other wakers.
	for q.length == 0 {
		q.nonEmpty.Wait()
	}
	op := q.pop()
	q.mu.Unlock()
	return op
}

// Len returns the number of queued operations.
func (q *DispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.length
}

// push appends to the tail chunk, growing the list when the tail is full.
// Caller must hold mu.
func (q *DispatchQueue) push(op Operation) {
	if q.tail == nil {
		q.tail = newChunk()
		q.head = q.tail
	}
	if q.tail.pos == len(q.tail.ops) {
		c := newChunk()
		q.tail.next = c
		q.tail = c
	}
	q.tail.ops[q.tail.pos] = op
	q.tail.pos++
	q.length++
}

// pop removes and returns the head operation. Caller must hold mu and have
// established length > 0.
func (q *DispatchQueue) pop() Operation {
	if q.head.readPos == q.head.pos {
		// Exhausted head. Non-tail chunks are always full, so with
		// length > 0 the next chunk holds the remaining operations.
		exhausted := q.head
		q.head = exhausted.next
		returnChunk(exhausted)
	}
	op := q.head.ops[q.head.readPos]
	q.head.ops[q.head.readPos] = nil // drop the reference for GC
	q.head.readPos++
	q.length--
	if q.length == 0 {
		// Rewind the resident chunk so it is reusable without a pool
		// round trip.
		q.head.pos = 0
		q.head.readPos = 0
	}
	return op
}
