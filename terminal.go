package gostreams

import "fmt"

// ConsumerFunc consumes element elem.
// The index is the 0-based index of elem, in the order produced by the upstream pipeline.
type ConsumerFunc[T any] func(elem T, index uint64)

// AccumulatorFunc folds element elem into the accumulator acc, returning acc, or a new accumulator.
// The index is the 0-based index of elem, in the order produced by the upstream pipeline.
// Returning an error stops the reduction.
type AccumulatorFunc[T any, A any] func(elem T, index uint64, acc A) (A, error)

// FuncConsumer returns a consumer that calls each for each element.
func FuncConsumer[T any](each func(elem T)) ConsumerFunc[T] {
	return func(elem T, _ uint64) {
		each(elem)
	}
}

// Reduce calls reduce for each element produced by p, folding it into accumulator acc, returning the final accumulator.
// If reduce or p fail, it returns the accumulator so far, and the error.
func Reduce[T any, A any](p *Pipeline[T], acc A, reduce AccumulatorFunc[T, A]) (A, error) {
	var reduceErr error

	err := visit(p, func(elem T, index uint64) bool {
		acc, reduceErr = reduce(elem, index, acc)
		return reduceErr == nil
	})

	if reduceErr != nil {
		return acc, reduceErr
	}

	return acc, err
}

// ReduceFunc folds all elements produced by p into identity using op.
func ReduceFunc[T any](p *Pipeline[T], identity T, op BinaryOperator[T]) (T, error) {
	result := identity

	err := visit(p, func(elem T, _ uint64) bool {
		result = op(result, elem)
		return true
	})

	return result, err
}

// ReduceOptional folds all elements produced by p using op, starting with the first element.
// It returns false if p produces no elements.
func ReduceOptional[T any](p *Pipeline[T], op BinaryOperator[T]) (T, bool, error) {
	var result T

	found := false

	err := visit(p, func(elem T, _ uint64) bool {
		if found {
			result = op(result, elem)
		} else {
			result = elem
			found = true
		}

		return true
	})

	return result, found, err
}

// Each calls each for each element produced by p.
func Each[T any](p *Pipeline[T], each ConsumerFunc[T]) error {
	return visit(p, func(elem T, index uint64) bool {
		each(elem, index)
		return true
	})
}

// AnyMatch returns true as soon as pred returns true for an element produced by p, that is, an element matches.
// No elements are pulled after the first match.
func AnyMatch[T any](p *Pipeline[T], pred PredicateFunc[T]) (bool, error) {
	anyMatch := false

	err := visit(p, func(elem T, index uint64) bool {
		anyMatch = pred(elem, index)
		return !anyMatch
	})

	return anyMatch, err
}

// AllMatch returns true if pred returns true for all elements produced by p, that is, all elements match.
// No elements are pulled after the first element that does not match.
func AllMatch[T any](p *Pipeline[T], pred PredicateFunc[T]) (bool, error) {
	allMatch := true

	err := visit(p, func(elem T, index uint64) bool {
		allMatch = pred(elem, index)
		return allMatch
	})

	return allMatch, err
}

// NoneMatch returns true if pred returns false for all elements produced by p.
func NoneMatch[T any](p *Pipeline[T], pred PredicateFunc[T]) (bool, error) {
	anyMatch, err := AnyMatch(p, pred)
	return !anyMatch, err
}

// Count returns the number of elements produced by p.
func Count[T any](p *Pipeline[T]) (uint64, error) {
	count := uint64(0)

	err := visit(p, func(_ T, _ uint64) bool {
		count++
		return true
	})

	return count, err
}

// FindFirst returns the first element produced by p, pulling at most one element.
// It returns false if p produces no elements.
func FindFirst[T any](p *Pipeline[T]) (T, bool, error) {
	return p.it.pull()
}

// FindLast returns the last element produced by p.
// It returns false if p produces no elements.
func FindLast[T any](p *Pipeline[T]) (T, bool, error) {
	return ReduceOptional(p, func(_ T, b T) T {
		return b
	})
}

// FindSingle returns the only element produced by p, pulling at most two elements.
// It returns false if p produces no elements, and ErrState if it produces more than one.
func FindSingle[T any](p *Pipeline[T]) (T, bool, error) {
	elem, ok, err := p.it.pull()
	if !ok {
		return elem, false, err
	}

	var zero T

	_, more, err := p.it.pull()
	if err != nil {
		return zero, false, err
	}

	if more {
		return zero, false, fmt.Errorf("%w: stream contains more than one element", ErrState)
	}

	return elem, true, nil
}

// Min returns the least element produced by p according to less. If several elements are least, the first is returned.
// It returns false if p produces no elements.
func Min[T any](p *Pipeline[T], less LessFunc[T]) (T, bool, error) {
	return ReduceOptional(p, func(a T, b T) T {
		if less(b, a) {
			return b
		}

		return a
	})
}

// Max returns the greatest element produced by p according to less. If several elements are greatest, the last is returned.
// It returns false if p produces no elements.
func Max[T any](p *Pipeline[T], less LessFunc[T]) (T, bool, error) {
	return ReduceOptional(p, func(a T, b T) T {
		if less(b, a) {
			return a
		}

		return b
	})
}

// ToSlice returns all elements produced by p, in order.
// The elements are accumulated in a Spine and copied into a slice of the exact size once p is exhausted.
func ToSlice[T any](p *Pipeline[T]) ([]T, error) {
	buffer := newSpine[T](MinChunkPower)

	if err := visit(p, func(elem T, _ uint64) bool {
		buffer.Append(elem)
		return true
	}); err != nil {
		return nil, err
	}

	return buffer.ToSlice()
}

// visit calls each for each element produced by p, until each returns false or p is exhausted.
// It returns the error p ended with, if any.
func visit[T any](p *Pipeline[T], each func(elem T, index uint64) bool) error {
	index := uint64(0)

	for {
		elem, ok, err := p.it.pull()
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		if !each(elem, index) {
			return nil
		}

		index++
	}
}
