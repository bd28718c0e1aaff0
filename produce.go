package gostreams

import (
	"context"
	"iter"

	"golang.org/x/exp/constraints"
)

// SupplierFunc returns a new element each time it is called.
type SupplierFunc[T any] func() T

// Produce returns a pipeline that produces the elements of the given slices, in order.
func Produce[T any](slices ...[]T) *Pipeline[T] {
	sliceIdx, elemIdx := 0, 0

	return newPipeline(func() (T, bool, error) {
		for sliceIdx < len(slices) {
			if elemIdx < len(slices[sliceIdx]) {
				elem := slices[sliceIdx][elemIdx]
				elemIdx++

				return elem, true, nil
			}

			sliceIdx++
			elemIdx = 0
		}

		var zero T

		return zero, false, nil
	})
}

// Of returns a pipeline that produces the given elements, in order.
func Of[T any](elems ...T) *Pipeline[T] {
	return Produce(elems)
}

// Empty returns a pipeline that produces no elements.
func Empty[T any]() *Pipeline[T] {
	return newPipeline(exhausted[T]())
}

// ProduceIterator returns a pipeline that produces the elements of it.
// If it returns an error from Next after reporting that it has a next element, the pipeline ends with that error.
func ProduceIterator[T any](it Iterator[T]) *Pipeline[T] {
	if it == nil {
		return Empty[T]()
	}

	return newPipeline(advanceFrom(it))
}

// ProduceSeq returns a pipeline that produces the elements of seq.
// The sequence is converted to pull form using iter.Pull; it is stopped once it is exhausted,
// or when the pipeline is closed, whichever happens first.
func ProduceSeq[T any](seq iter.Seq[T]) *Pipeline[T] {
	var (
		next func() (T, bool)
		stop func()
	)

	p := newPipeline(func() (T, bool, error) {
		if next == nil {
			next, stop = iter.Pull(seq)
		}

		elem, ok := next()
		if !ok {
			stop()
		}

		return elem, ok, nil
	})

	return p.OnClose(func() error {
		if stop != nil {
			stop()
		}

		return nil
	})
}

// ProduceChannel returns a pipeline that produces the elements received through the given channels, in order.
// Pulling from the pipeline blocks until an element is received or a channel is closed.
// If ctx is canceled while waiting, the pipeline ends with the cause of the cancelation.
func ProduceChannel[T any](ctx context.Context, channels ...<-chan T) *Pipeline[T] {
	chIdx := 0

	return newPipeline(func() (T, bool, error) {
		var zero T

		for chIdx < len(channels) {
			if contextDone(ctx) {
				return zero, false, context.Cause(ctx)
			}

			select {
			case elem, ok := <-channels[chIdx]:
				if ok {
					return elem, true, nil
				}

				chIdx++

			case <-ctx.Done():
				return zero, false, context.Cause(ctx)
			}
		}

		return zero, false, nil
	})
}

// Generate returns an infinite pipeline that produces the elements returned by supplier.
func Generate[T any](supplier SupplierFunc[T]) *Pipeline[T] {
	return newPipeline(func() (T, bool, error) {
		return supplier(), true, nil
	})
}

// Iterate returns an infinite pipeline that produces seed, op(seed), op(op(seed)), and so on.
func Iterate[T any](seed T, op Function[T, T]) *Pipeline[T] {
	return IterateWhile(seed, func(T) bool { return true }, op)
}

// IterateWhile returns a pipeline that produces seed, op(seed), op(op(seed)), and so on,
// for as long as hasNext returns true for the element about to be produced.
func IterateWhile[T any](seed T, hasNext Function[T, bool], op Function[T, T]) *Pipeline[T] {
	current := seed
	started := false

	return newPipeline(func() (T, bool, error) {
		if started {
			current = op(current)
		}

		started = true

		if !hasNext(current) {
			var zero T
			return zero, false, nil
		}

		return current, true, nil
	})
}

// Range returns a pipeline that produces the integers from from (inclusive) to to (exclusive), in steps of 1.
func Range[N constraints.Integer](from N, to N) *Pipeline[N] {
	if from >= to {
		return Empty[N]()
	}

	return RangeClosed(from, to-1)
}

// RangeClosed returns a pipeline that produces the integers from from to to, both inclusive, in steps of 1.
func RangeClosed[N constraints.Integer](from N, to N) *Pipeline[N] {
	current := from
	done := from > to

	return newPipeline(func() (N, bool, error) {
		if done {
			return 0, false, nil
		}

		elem := current

		if current == to {
			done = true
		} else {
			current++
		}

		return elem, true, nil
	})
}

// Join returns a pipeline that produces the elements produced by the given pipelines, in order.
// Closing the new pipeline closes all of the given pipelines.
func Join[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	chains := make([]*closeChain, len(pipelines))
	for i, p := range pipelines {
		chains[i] = p.chain
	}

	idx := 0

	return &Pipeline[T]{
		it: NewLookaheadIterator(func() (T, bool, error) {
			for idx < len(pipelines) {
				elem, ok, err := pipelines[idx].it.pull()
				if err != nil {
					return elem, false, err
				}

				if ok {
					return elem, true, nil
				}

				idx++
			}

			var zero T

			return zero, false, nil
		}),
		chain: mergeCloseChains(chains...),
	}
}
