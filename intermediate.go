package gostreams

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream pipeline.
type MapperFunc[T any, U any] func(elem T, index uint64) U

// PredicateFunc returns true if elem matches a predicate.
// The index is the 0-based index of elem, in the order produced by the upstream pipeline.
type PredicateFunc[T any] func(elem T, index uint64) bool

// LessFunc returns true if element a is "less" than element b.
type LessFunc[T any] func(a T, b T) bool

// CompareFunc returns a negative number if a is less than b, a positive number if a is greater than b,
// and zero if they are equal. It must be a total order.
type CompareFunc[T any] func(a T, b T) int

// BinaryOperator combines two elements of the same type into one.
type BinaryOperator[T any] func(a T, b T) T

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(elem T, _ uint64) U {
		return mapp(elem)
	}
}

// FuncPredicate returns a predicate that calls pred for each element.
func FuncPredicate[T any](pred Function[T, bool]) PredicateFunc[T] {
	return func(elem T, _ uint64) bool {
		return pred(elem)
	}
}

// Identity returns a mapper that returns the same element it receives.
func Identity[T any]() MapperFunc[T, T] {
	return func(elem T, _ uint64) T {
		return elem
	}
}

// Map returns a pipeline that calls mapp for each element produced by p, mapping it to type U.
func Map[T any, U any](p *Pipeline[T], mapp MapperFunc[T, U]) *Pipeline[U] {
	index := uint64(0)

	return derive(p, func() (U, bool, error) {
		elem, ok, err := p.it.pull()
		if !ok {
			var zero U
			return zero, false, err
		}

		outElem := mapp(elem, index)
		index++

		return outElem, true, nil
	})
}

// Filter returns a pipeline that calls filter for each element produced by p, and only produces elements for which
// filter returns true. filter is called exactly once per upstream element, and no element after the next match
// is pulled.
func Filter[T any](p *Pipeline[T], filter PredicateFunc[T]) *Pipeline[T] {
	index := uint64(0)

	return derive(p, func() (T, bool, error) {
		for {
			elem, ok, err := p.it.pull()
			if !ok {
				return elem, false, err
			}

			match := filter(elem, index)
			index++

			if match {
				return elem, true, nil
			}
		}
	})
}

// FilterNot returns a pipeline that only produces elements produced by p for which filter returns false.
func FilterNot[T any](p *Pipeline[T], filter PredicateFunc[T]) *Pipeline[T] {
	return Filter(p, func(elem T, index uint64) bool {
		return !filter(elem, index)
	})
}

// FlatMap returns a pipeline that calls mapp for each element produced by p, mapping it to an intermediate pipeline
// that produces elements of type U. The new pipeline produces all elements produced by the intermediate pipelines, in order.
// mapp may return nil, which is treated as an empty pipeline.
//
// Each intermediate pipeline is drained before the next upstream element is pulled, and closed as soon as it is drained.
// Closing the new pipeline closes the intermediate pipeline that is still being drained, if any, and returns the
// failures of intermediate pipelines closed earlier.
func FlatMap[T any, U any](p *Pipeline[T], mapp MapperFunc[T, *Pipeline[U]]) *Pipeline[U] {
	index := uint64(0)

	var (
		inner      *Pipeline[U]
		drainedErr error
		registered bool
	)

	closeInner := func() error {
		if inner == nil {
			return nil
		}

		err := inner.Close()
		inner = nil

		return err
	}

	return derive(p, func() (U, bool, error) {
		for {
			if inner != nil {
				elem, ok, err := inner.it.pull()
				if err != nil {
					return elem, false, err
				}

				if ok {
					return elem, true, nil
				}

				drainedErr = multierr.Append(drainedErr, closeInner())
			}

			elem, ok, err := p.it.pull()
			if !ok {
				var zero U
				return zero, false, err
			}

			inner = mapp(elem, index)
			index++

			if inner != nil && !registered {
				registered = true

				p.chain.add(func() error {
					return multierr.Append(drainedErr, closeInner())
				})
			}
		}
	})
}

// MapMulti returns a pipeline that calls expand for each element produced by p. expand may call emit any number of times;
// the emitted elements are produced in order, before the next upstream element is pulled.
// emit must not be called after expand has returned.
func MapMulti[T any, U any](p *Pipeline[T], expand func(elem T, index uint64, emit func(U))) *Pipeline[U] {
	index := uint64(0)

	buffer := newSpine[U](MinChunkPower)
	pos := int64(0)

	return derive(p, func() (U, bool, error) {
		for pos >= buffer.Count() {
			elem, ok, err := p.it.pull()
			if !ok {
				var zero U
				return zero, false, err
			}

			buffer.Clear()
			pos = 0

			live := true

			expand(elem, index, func(out U) {
				if !live {
					panic(fmt.Errorf("%w: emit called after MapMulti expander returned", ErrState))
				}

				buffer.Append(out)
			})

			live = false
			index++
		}

		elem, err := buffer.Get(pos)
		if err != nil {
			return elem, false, err
		}

		pos++

		return elem, true, nil
	})
}

// Peek returns a pipeline that calls peek for each element produced by p, in order, and produces the same elements.
// peek is only called for elements that are pulled from the new pipeline.
func Peek[T any](p *Pipeline[T], peek ConsumerFunc[T]) *Pipeline[T] {
	index := uint64(0)

	return derive(p, func() (T, bool, error) {
		elem, ok, err := p.it.pull()
		if !ok {
			return elem, false, err
		}

		peek(elem, index)
		index++

		return elem, true, nil
	})
}

// Distinct returns a pipeline that produces the elements produced by p, skipping elements that have been
// produced before. The first occurrence of each element is kept, in order. Elements are compared using ==.
// Distinct does not consume more of p than needed for the next distinct element.
func Distinct[T comparable](p *Pipeline[T]) *Pipeline[T] {
	return DistinctBy(p, func(elem T) T { return elem })
}

// DistinctBy returns a pipeline that produces the elements produced by p, skipping elements whose key
// has been seen before.
func DistinctBy[T any, K comparable](p *Pipeline[T], key Function[T, K]) *Pipeline[T] {
	seen := map[K]struct{}{}

	return Filter(p, func(elem T, _ uint64) bool {
		k := key(elem)

		if _, ok := seen[k]; ok {
			return false
		}

		seen[k] = struct{}{}

		return true
	})
}

// DistinctFunc returns a pipeline that produces the elements produced by p, skipping elements that compare
// equal to an element produced before. It is meant for element types that cannot be compared using ==.
// compare must be a consistent total order.
func DistinctFunc[T any](p *Pipeline[T], compare CompareFunc[T]) *Pipeline[T] {
	seen := treeset.NewWith(func(a interface{}, b interface{}) int {
		return compare(a.(T), b.(T))
	})

	return Filter(p, func(elem T, _ uint64) bool {
		if seen.Contains(elem) {
			return false
		}

		seen.Add(elem)

		return true
	})
}

// Sort returns a pipeline that consumes all elements produced by p, sorts them using less, and produces them in sorted order.
// The sort is stable. No element is pulled from p until the first element is pulled from the new pipeline.
func Sort[T any](p *Pipeline[T], less LessFunc[T]) *Pipeline[T] {
	var (
		sorted []T
		pos    int
	)

	return derive(p, func() (T, bool, error) {
		var zero T

		if sorted == nil {
			buffer := newSpine[T](MinChunkPower)

			for {
				elem, ok, err := p.it.pull()
				if err != nil {
					return zero, false, err
				}

				if !ok {
					break
				}

				buffer.Append(elem)
			}

			result, err := buffer.ToSlice()
			if err != nil {
				return zero, false, err
			}

			slices.SortStableFunc(result, less)

			logger.Debug("sorted stream materialized", zap.Int("elements", len(result)))

			sorted = result
		}

		if pos >= len(sorted) {
			return zero, false, nil
		}

		elem := sorted[pos]
		sorted[pos] = zero
		pos++

		return elem, true, nil
	})
}

// Sorted returns a pipeline that produces the elements produced by p in ascending natural order.
func Sorted[T constraints.Ordered](p *Pipeline[T]) *Pipeline[T] {
	return Sort(p, func(a T, b T) bool {
		return a < b
	})
}

// SortBy returns a pipeline that produces the elements produced by p in ascending natural order of their keys.
func SortBy[T any, K constraints.Ordered](p *Pipeline[T], key Function[T, K]) *Pipeline[T] {
	return Sort(p, func(a T, b T) bool {
		return key(a) < key(b)
	})
}

// Limit returns a pipeline that produces the same elements as p, in order, up to max elements.
// Once max elements have been produced, no more elements are pulled from p.
// It returns ErrInvalidArgument if max is negative.
func Limit[T any](p *Pipeline[T], max int) (*Pipeline[T], error) {
	if max < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrInvalidArgument, max)
	}

	done := 0

	return derive(p, func() (T, bool, error) {
		if done >= max {
			var zero T
			return zero, false, nil
		}

		elem, ok, err := p.it.pull()
		if !ok {
			return elem, false, err
		}

		done++

		return elem, true, nil
	}), nil
}

// Skip returns a pipeline that produces the same elements as p, in order, skipping the first num elements.
// The skipped elements are pulled and discarded when the first element is pulled from the new pipeline.
// It returns ErrInvalidArgument if num is negative.
func Skip[T any](p *Pipeline[T], num int) (*Pipeline[T], error) {
	if num < 0 {
		return nil, fmt.Errorf("%w: negative skip %d", ErrInvalidArgument, num)
	}

	skipped := false

	return derive(p, func() (T, bool, error) {
		if !skipped {
			skipped = true

			for i := 0; i < num; i++ {
				elem, ok, err := p.it.pull()
				if !ok {
					return elem, false, err
				}
			}
		}

		return p.it.pull()
	}), nil
}

// TakeWhile returns a pipeline that produces the elements produced by p for as long as pred returns true.
// The first element for which pred returns false is discarded, and nothing after it is pulled.
func TakeWhile[T any](p *Pipeline[T], pred PredicateFunc[T]) *Pipeline[T] {
	index := uint64(0)
	done := false

	return derive(p, func() (T, bool, error) {
		var zero T

		if done {
			return zero, false, nil
		}

		elem, ok, err := p.it.pull()
		if !ok {
			return zero, false, err
		}

		match := pred(elem, index)
		index++

		if !match {
			done = true
			return zero, false, nil
		}

		return elem, true, nil
	})
}

// TakeUntil returns a pipeline that produces the elements produced by p up to and including the first
// element for which pred returns true.
func TakeUntil[T any](p *Pipeline[T], pred PredicateFunc[T]) *Pipeline[T] {
	index := uint64(0)
	done := false

	return derive(p, func() (T, bool, error) {
		if done {
			var zero T
			return zero, false, nil
		}

		elem, ok, err := p.it.pull()
		if !ok {
			return elem, false, err
		}

		done = pred(elem, index)
		index++

		return elem, true, nil
	})
}

// DropWhile returns a pipeline that discards the elements produced by p for as long as pred returns true,
// and produces the first element for which pred returns false and all elements after it.
// pred is not called again once it has returned false.
func DropWhile[T any](p *Pipeline[T], pred PredicateFunc[T]) *Pipeline[T] {
	index := uint64(0)
	dropping := true

	return derive(p, func() (T, bool, error) {
		for dropping {
			elem, ok, err := p.it.pull()
			if !ok {
				return elem, false, err
			}

			match := pred(elem, index)
			index++

			if !match {
				dropping = false
				return elem, true, nil
			}
		}

		return p.it.pull()
	})
}

// Sample returns a pipeline that produces every step-th element produced by p, starting with the first.
// A step of 1 produces all elements. It returns ErrInvalidArgument if step is not positive.
func Sample[T any](p *Pipeline[T], step int) (*Pipeline[T], error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: sample step must be positive, got %d", ErrInvalidArgument, step)
	}

	if step == 1 {
		return p, nil
	}

	started := false

	return derive(p, func() (T, bool, error) {
		if started {
			for i := 1; i < step; i++ {
				elem, ok, err := p.it.pull()
				if !ok {
					return elem, false, err
				}
			}
		}

		started = true

		return p.it.pull()
	}), nil
}

// Scan returns a pipeline that produces the running fold of the elements produced by p using op.
// The first element is produced as-is, and every following element is produced as op(previous result, element).
func Scan[T any](p *Pipeline[T], op BinaryOperator[T]) *Pipeline[T] {
	var acc T

	started := false

	return derive(p, func() (T, bool, error) {
		elem, ok, err := p.it.pull()
		if !ok {
			return elem, false, err
		}

		if started {
			acc = op(acc, elem)
		} else {
			acc = elem
			started = true
		}

		return acc, true, nil
	})
}

// ScanIdentity returns a pipeline that first produces identity, and then, for every element produced by p,
// the result of folding it into the previous result using acc.
func ScanIdentity[T any, R any](p *Pipeline[T], identity R, acc func(result R, elem T) R) *Pipeline[R] {
	result := identity
	emittedIdentity := false

	return derive(p, func() (R, bool, error) {
		if !emittedIdentity {
			emittedIdentity = true
			return result, true, nil
		}

		elem, ok, err := p.it.pull()
		if !ok {
			var zero R
			return zero, false, err
		}

		result = acc(result, elem)

		return result, true, nil
	})
}
