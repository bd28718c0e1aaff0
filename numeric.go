package gostreams

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Number is the set of element types numeric pipelines can be built from.
type Number interface {
	constraints.Integer | constraints.Float
}

// IntPipeline is a pipeline of 32-bit integers.
type IntPipeline = Pipeline[int32]

// LongPipeline is a pipeline of 64-bit integers.
type LongPipeline = Pipeline[int64]

// DoublePipeline is a pipeline of 64-bit floats.
type DoublePipeline = Pipeline[float64]

// Summary holds statistics about the elements of a numeric pipeline.
type Summary struct {
	Count  int64
	Sum    float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// MapToInt returns a pipeline that maps each element produced by p to a 32-bit integer.
func MapToInt[T any](p *Pipeline[T], mapp MapperFunc[T, int32]) *IntPipeline {
	return Map(p, mapp)
}

// MapToLong returns a pipeline that maps each element produced by p to a 64-bit integer.
func MapToLong[T any](p *Pipeline[T], mapp MapperFunc[T, int64]) *LongPipeline {
	return Map(p, mapp)
}

// MapToDouble returns a pipeline that maps each element produced by p to a 64-bit float.
func MapToDouble[T any](p *Pipeline[T], mapp MapperFunc[T, float64]) *DoublePipeline {
	return Map(p, mapp)
}

// AsLong returns a pipeline that converts each integer produced by p to a 64-bit integer.
func AsLong[N constraints.Integer](p *Pipeline[N]) *LongPipeline {
	return Map(p, func(elem N, _ uint64) int64 {
		return int64(elem)
	})
}

// AsDouble returns a pipeline that converts each number produced by p to a 64-bit float.
func AsDouble[N Number](p *Pipeline[N]) *DoublePipeline {
	return Map(p, func(elem N, _ uint64) float64 {
		return float64(elem)
	})
}

// Boxed returns a pipeline that produces the numbers produced by p as values of type any.
func Boxed[N Number](p *Pipeline[N]) *Pipeline[any] {
	return Map(p, func(elem N, _ uint64) any {
		return elem
	})
}

// Unbox returns a pipeline that produces the values produced by p as numbers of type N.
// If a value is not of type N, the pipeline ends with ErrInvalidArgument.
func Unbox[N Number](p *Pipeline[any]) *Pipeline[N] {
	index := uint64(0)

	return derive(p, func() (N, bool, error) {
		elem, ok, err := p.it.pull()
		if !ok {
			return 0, false, err
		}

		num, ok := elem.(N)
		if !ok {
			return 0, false, fmt.Errorf("%w: element %d is %T, not %T", ErrInvalidArgument, index, elem, num)
		}

		index++

		return num, true, nil
	})
}

// Sum returns the sum of all numbers produced by p.
func Sum[N Number](p *Pipeline[N]) (N, error) {
	return ReduceFunc(p, 0, func(a N, b N) N {
		return a + b
	})
}

// Average returns the arithmetic mean of all numbers produced by p.
// It returns false if p produces no elements.
func Average[N Number](p *Pipeline[N]) (float64, bool, error) {
	sum, count := 0.0, 0

	err := visit(p, func(elem N, _ uint64) bool {
		sum += float64(elem)
		count++

		return true
	})

	if err != nil || count == 0 {
		return 0, false, err
	}

	return sum / float64(count), true, nil
}

// Summarize returns statistics about all numbers produced by p.
// StdDev is the sample standard deviation, and is zero for fewer than two elements.
func Summarize[N Number](p *Pipeline[N]) (Summary, error) {
	buffer := newSpine[float64](MinChunkPower)

	if err := visit(p, func(elem N, _ uint64) bool {
		buffer.Append(float64(elem))
		return true
	}); err != nil {
		return Summary{}, err
	}

	if buffer.Count() == 0 {
		return Summary{}, nil
	}

	values, err := buffer.ToSlice()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Count: int64(len(values)),
		Sum:   floats.Sum(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}

	if len(values) < 2 {
		summary.Mean = values[0]
		return summary, nil
	}

	summary.Mean, summary.StdDev = stat.MeanStdDev(values, nil)

	return summary, nil
}
