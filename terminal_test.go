package gostreams

import (
	"errors"
	"strconv"
	"testing"

	"github.com/matryer/is"
)

func TestReduce(t *testing.T) {
	is := is.New(t)

	ints := Produce([]int{1, 2, 3, 4, 5})

	summer := func(elem int, index uint64, acc int) (int, error) {
		is.Equal(index, uint64(elem-1))

		return acc + elem, nil
	}

	result, _ := Reduce(ints, 0, summer)

	is.Equal(result, 15)
}

func TestReduce_Error(t *testing.T) {
	is := is.New(t)

	errStop := errors.New("stop")

	src := &countingIterator{elems: []int{1, 2, 3, 4, 5}}

	summer := func(elem int, _ uint64, acc int) (int, error) {
		is.True(elem <= 3)

		if elem == 3 {
			return acc, errStop
		}

		return acc + elem, nil
	}

	result, err := Reduce(ProduceIterator[int](src), 0, summer)

	is.Equal(result, 3)
	is.Equal(err, errStop)
	is.Equal(src.pulled, 3)
}

func TestReduce_CollectMapNoDuplicateKeys(t *testing.T) {
	is := is.New(t)

	ints := Produce([]int{1, 2, 3, 3, 4, 5})

	result, err := Reduce(ints, map[string]int{}, CollectMapNoDuplicateKeys(itoa, Identity[int]()))

	is.Equal(result, map[string]int{
		"1": 1,
		"2": 2,
		"3": 3,
	})

	var cause *DuplicateKeyError[int, string]

	is.True(errors.As(err, &cause))
	is.Equal(cause.Element, 3)
	is.Equal(cause.Key, "3")
}

func TestReduceFunc(t *testing.T) {
	is := is.New(t)

	result, err := ReduceFunc(Of("a", "b", "c"), ">", func(a string, b string) string {
		return a + b
	})

	is.NoErr(err)
	is.Equal(result, ">abc")
}

func TestReduceOptional(t *testing.T) {
	is := is.New(t)

	product, ok, _ := ReduceOptional(Of(2, 3, 4), func(a int, b int) int {
		return a * b
	})

	is.True(ok)
	is.Equal(product, 24)

	_, ok, _ = ReduceOptional(Empty[int](), func(a int, b int) int {
		return a * b
	})

	is.True(!ok)
}

func TestEach(t *testing.T) {
	is := is.New(t)

	ints := Produce([]int{1, 2, 3, 4, 5})

	sum := 0

	summer := func(elem int, index uint64) {
		is.Equal(index, uint64(elem-1))

		sum += elem
	}

	_ = Each(ints, summer)

	is.Equal(sum, 15)
}

func TestAnyMatch(t *testing.T) {
	tests := []struct {
		given      []int
		want       bool
		wantPulled int
	}{
		{given: []int{1, 3, 4, 5, 6}, want: true, wantPulled: 3},
		{given: []int{1, 3, 5}, want: false, wantPulled: 3},
		{given: []int{}, want: false, wantPulled: 0},
	}

	for idx, test := range tests {
		t.Run(strconv.Itoa(idx), func(t *testing.T) {
			is := is.New(t)

			src := &countingIterator{elems: test.given}

			anyMatch, err := AnyMatch(ProduceIterator[int](src), even)

			is.NoErr(err)
			is.Equal(anyMatch, test.want)
			is.Equal(src.pulled, test.wantPulled)
		})
	}
}

func TestAllMatch(t *testing.T) {
	tests := []struct {
		given      []int
		want       bool
		wantPulled int
	}{
		{given: []int{2, 4, 5, 6}, want: false, wantPulled: 3},
		{given: []int{2, 4, 6}, want: true, wantPulled: 3},
		{given: []int{}, want: true, wantPulled: 0},
	}

	for idx, test := range tests {
		t.Run(strconv.Itoa(idx), func(t *testing.T) {
			is := is.New(t)

			src := &countingIterator{elems: test.given}

			allMatch, err := AllMatch(ProduceIterator[int](src), even)

			is.NoErr(err)
			is.Equal(allMatch, test.want)
			is.Equal(src.pulled, test.wantPulled)
		})
	}
}

func TestNoneMatch(t *testing.T) {
	is := is.New(t)

	noneMatch, _ := NoneMatch(Of(1, 3, 5), even)
	is.True(noneMatch)

	noneMatch, _ = NoneMatch(Of(1, 2, 5), even)
	is.True(!noneMatch)
}

func TestCount(t *testing.T) {
	is := is.New(t)

	ints := Produce([]int{1, 2, 3, 4, 5})

	count, _ := Count(ints)

	is.Equal(count, uint64(5))
}

func TestFindFirst(t *testing.T) {
	is := is.New(t)

	src := &countingIterator{elems: []int{7, 8, 9}}

	first, ok, err := FindFirst(ProduceIterator[int](src))

	is.NoErr(err)
	is.True(ok)
	is.Equal(first, 7)
	is.Equal(src.pulled, 1)

	_, ok, _ = FindFirst(Empty[int]())
	is.True(!ok)
}

func TestFindLast(t *testing.T) {
	is := is.New(t)

	src := &countingIterator{elems: []int{7, 8, 9}}

	last, ok, _ := FindLast(ProduceIterator[int](src))

	is.True(ok)
	is.Equal(last, 9)
	is.Equal(src.pulled, 3)
}

func TestFindSingle(t *testing.T) {
	is := is.New(t)

	single, ok, err := FindSingle(Of(42))
	is.NoErr(err)
	is.True(ok)
	is.Equal(single, 42)

	_, ok, err = FindSingle(Empty[int]())
	is.NoErr(err)
	is.True(!ok)

	src := &countingIterator{elems: []int{1, 2, 3}}

	_, ok, err = FindSingle(ProduceIterator[int](src))
	is.True(!ok)
	is.True(errors.Is(err, ErrState))
	is.Equal(src.pulled, 2)
}

func TestMinMax(t *testing.T) {
	is := is.New(t)

	type entry struct {
		key   int
		label string
	}

	entries := []entry{{2, "a"}, {1, "b"}, {3, "c"}, {1, "d"}, {3, "e"}}

	less := func(a entry, b entry) bool {
		return a.key < b.key
	}

	least, _, _ := Min(Produce(entries), less)
	greatest, _, _ := Max(Produce(entries), less)

	is.Equal(least, entry{1, "b"})
	is.Equal(greatest, entry{3, "e"})

	_, ok, _ := Min(Empty[entry](), less)
	is.True(!ok)
}

func TestToSlice(t *testing.T) {
	is := is.New(t)

	ints, err := ToSlice(Range(0, 100))

	is.NoErr(err)
	is.Equal(len(ints), 100)
	is.Equal(ints[99], 99)
}

func TestAll(t *testing.T) {
	is := is.New(t)

	result := []int{}

	for elem := range Of(1, 2, 3, 4).All() {
		if elem == 3 {
			break
		}

		result = append(result, elem)
	}

	is.Equal(result, []int{1, 2})
}
