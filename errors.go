package gostreams

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a stage or buffer is constructed with an argument
	// it cannot work with, such as a negative limit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilArgument is returned when a required function argument is nil.
	// It wraps ErrInvalidArgument.
	ErrNilArgument = fmt.Errorf("%w: nil argument", ErrInvalidArgument)

	// ErrExhausted is returned by Next when the iterator has no more elements.
	ErrExhausted = errors.New("iterator exhausted")

	// ErrUnsupported is returned by Remove, as pipelines are not views over a mutable collection.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrState is returned when a stream does not have the shape an operation requires,
	// such as FindSingle encountering a second element.
	ErrState = errors.New("illegal state")

	// ErrIndexOutOfBounds is returned by Spine.Get for indexes outside the buffer.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)
