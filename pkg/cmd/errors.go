package cmd

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by ResolutionError via errors.Is.
var ErrNotFound = errors.New("handler not found")

// ResolutionError reports that no handler is registered at the computed key.
type ResolutionError struct {
	Key string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Key, ErrNotFound)
}

func (e *ResolutionError) Unwrap() error { return ErrNotFound }

// HandlerError wraps a failure raised inside a handler body, including
// recovered panics.
type HandlerError struct {
	Key string
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Key, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }
