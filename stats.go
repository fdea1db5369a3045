package activeobject

type (
	// Stats is a point-in-time snapshot of an Object's counters.
	Stats struct {
		// Enqueued is the number of operations accepted by Do, DoAsync and
		// Query. The shutdown sentinel is not counted.
		Enqueued uint64

		// Executed is the number of accepted operations that ran to
		// completion without panicking.
		Executed uint64

		// Recovered is the number of panics recovered, whether delivered to
		// a blocking caller, logged from a fire-and-forget operation, or
		// raised by the finalizer.
		Recovered uint64

		// Depth is the current dispatch queue length, sentinel included
		// while draining.
		Depth int
	}
)

// Stats returns a snapshot of the object's counters. Fields are read one at
// a time from atomics, so a snapshot taken mid-flight is internally
// approximate; after termination it is exact.
func (x *Object[S]) Stats() Stats {
	return Stats{
		Enqueued:  x.enqueued.Load(),
		Executed:  x.executed.Load(),
		Recovered: x.recovered.Load(),
		Depth:     x.queue.Len(),
	}
}
