package gostreams

import "fmt"

// OperatorFunc is a custom operation on a pipeline. It may return a new pipeline,
// making it an intermediate operation, or any other value, making it a terminal operation.
type OperatorFunc[T any, R any] func(p *Pipeline[T]) R

// Custom calls op with p and returns its result.
// It allows adding operations that are not part of this package while keeping them chainable.
// It returns ErrNilArgument if op is nil.
func Custom[T any, R any](p *Pipeline[T], op OperatorFunc[T, R]) (R, error) {
	if op == nil {
		var zero R
		return zero, fmt.Errorf("%w: custom operator", ErrNilArgument)
	}

	return op(p), nil
}
