package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is returned by GetInto when target is not a non-nil pointer.
var ErrInvalidTarget = errors.New("storage: target must be a non-nil pointer")

// SerializationError reports a value that could not be encoded as JSON.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("storage: cannot encode value for key %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
