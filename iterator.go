package gostreams

import "go.uber.org/zap"

// Iterator provides pull-based, forward-only access to a sequence of elements.
//
// HasNext reports whether Next would return an element. It must be idempotent:
// calling it repeatedly without calling Next must not consume anything.
// Next returns the next element, or an error if there is none.
type Iterator[T any] interface {
	HasNext() bool
	Next() (T, error)
}

// AdvanceFunc computes the next element of a stage.
// It returns false if the sequence has ended, and a non-nil error if it ended because of a failure.
// It may pull any number of elements from upstream before deciding.
type AdvanceFunc[T any] func() (T, bool, error)

type lookaheadState uint8

const (
	stateUninitialized lookaheadState = iota
	stateReady
	stateDone
)

// LookaheadIterator is the iterator every pipeline stage is built on.
// It computes one element ahead using an AdvanceFunc, so that HasNext can answer
// without over-consuming upstream, and Next never hands out an element that was
// not established by the lookahead first.
//
// Once the sequence has ended, the iterator stays ended and never calls its AdvanceFunc again.
type LookaheadIterator[T any] struct {
	advance AdvanceFunc[T]
	pending T
	state   lookaheadState
	err     error
}

// NewLookaheadIterator returns an iterator that produces the elements computed by advance.
// advance is not called until the first call to HasNext or Next.
func NewLookaheadIterator[T any](advance AdvanceFunc[T]) *LookaheadIterator[T] {
	return &LookaheadIterator[T]{
		advance: advance,
	}
}

// HasNext implements Iterator.
func (it *LookaheadIterator[T]) HasNext() bool {
	if it.state == stateUninitialized {
		it.lookahead()
	}

	return it.state == stateReady
}

// Next implements Iterator.
// If no element is available, it returns ErrExhausted, or the error that ended the sequence.
func (it *LookaheadIterator[T]) Next() (T, error) {
	if !it.HasNext() {
		var zero T

		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrExhausted
	}

	elem := it.pending

	var zero T
	it.pending = zero
	it.state = stateUninitialized

	return elem, nil
}

// Remove always returns ErrUnsupported.
func (it *LookaheadIterator[T]) Remove() error {
	return ErrUnsupported
}

// Err returns the error that ended the sequence, if any.
func (it *LookaheadIterator[T]) Err() error {
	return it.err
}

// pull returns the next element, false if the sequence has ended, and the error that ended it, if any.
// Stages use it to consume their upstream.
func (it *LookaheadIterator[T]) pull() (T, bool, error) {
	elem, err := it.Next()
	if err != nil {
		return elem, false, it.err
	}

	return elem, true, nil
}

func (it *LookaheadIterator[T]) lookahead() {
	elem, ok, err := it.advance()

	switch {
	case err != nil:
		it.err = err
		it.state = stateDone

		logger.Debug("stream ended with error", zap.Error(err))

	case !ok:
		it.state = stateDone

	default:
		it.pending = elem
		it.state = stateReady
	}
}

// exhausted returns an AdvanceFunc for an empty sequence.
func exhausted[T any]() AdvanceFunc[T] {
	return func() (T, bool, error) {
		var zero T
		return zero, false, nil
	}
}

// advanceFrom returns an AdvanceFunc that pulls from an external iterator.
// An error from Next after HasNext returned true ends the sequence with that error.
func advanceFrom[T any](src Iterator[T]) AdvanceFunc[T] {
	return func() (T, bool, error) {
		if !src.HasNext() {
			var zero T
			return zero, false, nil
		}

		elem, err := src.Next()
		if err != nil {
			return elem, false, err
		}

		return elem, true, nil
	}
}
