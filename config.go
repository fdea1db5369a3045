// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package activeobject

import (
	"github.com/joeycumines/logiface"
)

type (
	// Config models optional Object behavior, for New. A nil *Config is
	// equivalent to the zero value. It takes the state type parameter
	// because Finalizer receives the state.
	Config[S any] struct {
		// Logger receives structured events covering the worker lifecycle
		// and panics recovered from fire-and-forget operations. Any logiface
		// backend works, e.g. stumpy via stumpy.L.New(...).Logger().
		//
		// Lifecycle events are logged at trace and debug level, recovered
		// panics at error level.
		//
		// **Defaults to nil (no logging).**
		Logger *logiface.Logger[logiface.Event]

		// Finalizer runs on the worker goroutine after the dispatch queue
		// has drained, immediately before the object terminates. It has the
		// same exclusive access to the state as a deferred operation, which
		// makes it the place to release resources the state owns. A panic in
		// the finalizer is recovered, counted, and logged like any other.
		//
		// **Defaults to nil (no finalizer).**
		Finalizer func(state *S)
	}
)
