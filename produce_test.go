package gostreams

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/matryer/is"
)

func TestProduce(t *testing.T) {
	is := is.New(t)

	ints, _ := ToSlice(Produce([]int{1, 2}, []int{}, []int{3, 4, 5}))

	is.Equal(ints, []int{1, 2, 3, 4, 5})
}

func TestEmpty(t *testing.T) {
	is := is.New(t)

	count, err := Count(Empty[string]())

	is.NoErr(err)
	is.Equal(count, uint64(0))
}

func TestProduceIterator(t *testing.T) {
	is := is.New(t)

	ints, _ := ToSlice(ProduceIterator[int](&countingIterator{elems: []int{1, 2, 3}}))
	is.Equal(ints, []int{1, 2, 3})

	count, _ := Count(ProduceIterator[int](nil))
	is.Equal(count, uint64(0))
}

func TestProduceSeq(t *testing.T) {
	is := is.New(t)

	ints := ProduceSeq(slices.Values([]int{1, 2, 3}))
	defer ints.Close()

	result, _ := ToSlice(ints)

	is.Equal(result, []int{1, 2, 3})
}

func TestProduceSeq_Partial(t *testing.T) {
	is := is.New(t)

	yielded := 0

	seq := func(yield func(int) bool) {
		for i := 0; ; i++ {
			yielded++

			if !yield(i) {
				return
			}
		}
	}

	ints := ProduceSeq(seq)

	result, _ := ToSlice(Must(Limit(ints, 3)))
	is.Equal(result, []int{0, 1, 2})

	is.NoErr(ints.Close())
	is.Equal(yielded, 3)
}

func TestProduceChannel(t *testing.T) {
	is := is.New(t)

	ch1 := make(chan int, 2)
	ch1 <- 1
	ch1 <- 2
	close(ch1)

	ch2 := make(chan int, 3)
	ch2 <- 3
	ch2 <- 4
	ch2 <- 5
	close(ch2)

	ints, err := ToSlice(ProduceChannel(context.Background(), ch1, ch2))

	is.NoErr(err)
	is.Equal(ints, []int{1, 2, 3, 4, 5})
}

func TestProduceChannel_Cancel(t *testing.T) {
	is := is.New(t)

	errStop := errors.New("stop")

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	ch := make(chan int, 1)
	ch <- 1

	ints := ProduceChannel(ctx, ch)

	ints = Peek(ints, func(_ int, _ uint64) {
		cancel(errStop)
	})

	result, err := ToSlice(ints)

	is.Equal(result, nil)
	is.True(errors.Is(err, errStop))
}

func TestGenerate(t *testing.T) {
	is := is.New(t)

	next := 0

	ints := Generate(func() int {
		next += 2
		return next
	})

	result, _ := ToSlice(Must(Limit(ints, 4)))

	is.Equal(result, []int{2, 4, 6, 8})
}

func TestIterate(t *testing.T) {
	is := is.New(t)

	ints := Iterate(1, func(elem int) int {
		return elem * 3
	})

	result, _ := ToSlice(Must(Limit(ints, 5)))

	is.Equal(result, []int{1, 3, 9, 27, 81})
}

func TestIterateWhile(t *testing.T) {
	is := is.New(t)

	ints := IterateWhile(1, func(elem int) bool {
		return elem < 100
	}, func(elem int) int {
		return elem * 3
	})

	result, _ := ToSlice(ints)

	is.Equal(result, []int{1, 3, 9, 27, 81})
}

func TestRange(t *testing.T) {
	is := is.New(t)

	ints, _ := ToSlice(Range(3, 7))
	is.Equal(ints, []int{3, 4, 5, 6})

	ints, _ = ToSlice(Range(3, 3))
	is.Equal(ints, []int{})

	bytes, _ := ToSlice(RangeClosed[uint8](253, 255))
	is.Equal(bytes, []uint8{253, 254, 255})

	count, _ := Count(RangeClosed(5, 4))
	is.Equal(count, uint64(0))
}

func TestJoin(t *testing.T) {
	is := is.New(t)

	ints, _ := ToSlice(Join(Of(1, 2), Empty[int](), Of(3, 4, 5)))

	is.Equal(ints, []int{1, 2, 3, 4, 5})
}
