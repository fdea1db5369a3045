// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package activeobject

import (
	"sync/atomic"
)

// State is the lifecycle state of an Object.
type State uint32

const (
	// StateRunning means the worker is consuming the dispatch queue and new
	// operations are accepted.
	StateRunning State = iota

	// StateDraining means shutdown has been requested: the sentinel
	// operation is queued, new operations are rejected, and the worker is
	// still executing whatever was accepted beforehand.
	StateDraining

	// StateTerminated means the worker has exited.
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// objectState is an atomic holder for State. Transitions are one-way,
// running to draining to terminated, each written by a single writer: the
// first Shutdown call and the exiting worker respectively.
type objectState struct {
	v atomic.Uint32
}

func (s *objectState) Load() State {
	return State(s.v.Load())
}

func (s *objectState) Store(n State) {
	s.v.Store(uint32(n))
}
