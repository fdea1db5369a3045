package activeobject

import (
	"errors"
	"fmt"
)

var (
	// ErrTerminated is returned when operations are attempted on an object
	// whose shutdown has been requested or completed.
	ErrTerminated = errors.New("activeobject: object has been terminated")
)

// PanicError wraps a value recovered from a panicking operation. Blocking
// calls return it so the caller observes the fault instead of waiting on a
// result that will never arrive.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("activeobject: operation panicked: %v", e.Value)
}

// Unwrap returns the underlying error if the panic value is an error type.
// This enables use with [errors.Is] and [errors.As] for error matching
// through the cause chain.
//
// If the panic Value is not an error (e.g., a string or other type),
// returns nil.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
