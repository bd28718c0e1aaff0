package gostreams

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// MinChunkPower is the smallest chunk size of a Spine, as a power of two.
	MinChunkPower = 4

	// MaxChunkPower is the largest chunk size of a Spine, as a power of two.
	MaxChunkPower = 30

	// MaxArraySize is the largest number of elements ToSlice will copy into a single slice.
	MaxArraySize = math.MaxInt32 - 8

	minSpineSize = 8
)

// Spine is an append-only, index-addressable buffer that grows in chunks.
//
// The first two chunks hold 2^initialPower elements each, and every following chunk doubles
// in size, up to 2^MaxChunkPower. Elements that have been written are never moved, so appending
// is O(1) amortized without the copying a single growing slice would do. Random access scans the
// prior element counts of the chunks.
//
// A Spine is meant to be written first and read afterwards. It is not safe for concurrent use.
type Spine[T any] struct {
	initialChunkPower int

	// curChunk is the chunk currently being written to.
	curChunk []T

	// elementIndex is the next free slot in curChunk.
	elementIndex int

	// spineIndex is the index of curChunk in spine.
	spineIndex int

	// spine holds all chunks, and is nil as long as only the first chunk is in use.
	spine [][]T

	// priorElementCount[i] is the number of elements in all chunks before spine[i].
	priorElementCount []int64
}

// IntSpine is a Spine of 32-bit integers.
type IntSpine = Spine[int32]

// LongSpine is a Spine of 64-bit integers.
type LongSpine = Spine[int64]

// DoubleSpine is a Spine of 64-bit floats.
type DoubleSpine = Spine[float64]

// NewSpine returns a Spine whose first chunk can hold at least initialCapacity elements.
// It returns ErrInvalidArgument if initialCapacity is negative.
func NewSpine[T any](initialCapacity int) (*Spine[T], error) {
	if initialCapacity < 0 {
		return nil, fmt.Errorf("%w: illegal spine capacity %d", ErrInvalidArgument, initialCapacity)
	}

	power := MinChunkPower
	if initialCapacity > 0 {
		power = min(max(MinChunkPower, bits.Len(uint(initialCapacity-1))), MaxChunkPower)
	}

	return newSpine[T](power), nil
}

func newSpine[T any](initialChunkPower int) *Spine[T] {
	return &Spine[T]{
		initialChunkPower: initialChunkPower,
		curChunk:          make([]T, 1<<initialChunkPower),
	}
}

// Append adds elem at the end of the buffer.
func (s *Spine[T]) Append(elem T) {
	if s.elementIndex == len(s.curChunk) {
		s.inflateSpine()

		if s.spineIndex+1 >= len(s.spine) || s.spine[s.spineIndex+1] == nil {
			s.ensureCapacity(s.capacity() + 1)
		}

		s.elementIndex = 0
		s.spineIndex++
		s.curChunk = s.spine[s.spineIndex]
	}

	s.curChunk[s.elementIndex] = elem
	s.elementIndex++
}

// Count returns the number of elements in the buffer.
func (s *Spine[T]) Count() int64 {
	if s.spineIndex == 0 {
		return int64(s.elementIndex)
	}

	return s.priorElementCount[s.spineIndex] + int64(s.elementIndex)
}

// Get returns the element at index.
// It returns ErrIndexOutOfBounds if index is negative or not less than Count.
func (s *Spine[T]) Get(index int64) (T, error) {
	var zero T

	if index < 0 || index >= s.Count() {
		return zero, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfBounds, index, s.Count())
	}

	if s.spineIndex == 0 {
		return s.curChunk[index], nil
	}

	for j := 0; j <= s.spineIndex; j++ {
		if index < s.priorElementCount[j]+int64(len(s.spine[j])) {
			return s.spine[j][index-s.priorElementCount[j]], nil
		}
	}

	return zero, fmt.Errorf("%w: index %d", ErrIndexOutOfBounds, index)
}

// CopyInto copies all elements into dst, starting at offset.
// It returns ErrIndexOutOfBounds if dst is too small.
func (s *Spine[T]) CopyInto(dst []T, offset int) error {
	count := s.Count()

	if offset < 0 || int64(offset)+count > int64(len(dst)) {
		return fmt.Errorf("%w: %d elements do not fit into slice of length %d at offset %d",
			ErrIndexOutOfBounds, count, len(dst), offset)
	}

	if s.spineIndex == 0 {
		copy(dst[offset:], s.curChunk[:s.elementIndex])
		return nil
	}

	for i := 0; i < s.spineIndex; i++ {
		offset += copy(dst[offset:], s.spine[i])
	}

	copy(dst[offset:], s.curChunk[:s.elementIndex])

	return nil
}

// ToSlice returns a new slice containing all elements, in insertion order.
// It returns ErrInvalidArgument if the buffer holds more than MaxArraySize elements.
func (s *Spine[T]) ToSlice() ([]T, error) {
	count := s.Count()
	if count > MaxArraySize {
		return nil, fmt.Errorf("%w: %d elements exceed maximum slice size", ErrInvalidArgument, count)
	}

	result := make([]T, count)

	if err := s.CopyInto(result, 0); err != nil {
		return nil, err
	}

	return result, nil
}

// ForEach calls each for every element, in insertion order.
func (s *Spine[T]) ForEach(each func(elem T)) {
	for i := 0; i < s.spineIndex; i++ {
		for _, elem := range s.spine[i] {
			each(elem)
		}
	}

	for _, elem := range s.curChunk[:s.elementIndex] {
		each(elem)
	}
}

// Iterator returns an iterator over the elements, in insertion order.
// The buffer must not be appended to while the iterator is in use.
func (s *Spine[T]) Iterator() *LookaheadIterator[T] {
	chunk, pos := 0, 0

	return NewLookaheadIterator(func() (T, bool, error) {
		for chunk < s.spineIndex {
			if pos < len(s.spine[chunk]) {
				elem := s.spine[chunk][pos]
				pos++

				return elem, true, nil
			}

			chunk++
			pos = 0
		}

		if pos < s.elementIndex {
			elem := s.curChunk[pos]
			pos++

			return elem, true, nil
		}

		var zero T

		return zero, false, nil
	})
}

// Clear removes all elements, keeping the first chunk for reuse.
func (s *Spine[T]) Clear() {
	if s.spine != nil {
		s.curChunk = s.spine[0]
		s.spine = nil
		s.priorElementCount = nil
	}

	clear(s.curChunk)

	s.elementIndex = 0
	s.spineIndex = 0
}

// chunkSize returns the capacity of the chunk at index n.
func (s *Spine[T]) chunkSize(n int) int {
	power := s.initialChunkPower
	if n > 1 {
		power = min(s.initialChunkPower+n-1, MaxChunkPower)
	}

	return 1 << power
}

// capacity returns the number of elements that fit into the chunks allocated so far,
// up to and including the current chunk.
func (s *Spine[T]) capacity() int64 {
	if s.spineIndex == 0 {
		return int64(len(s.curChunk))
	}

	return s.priorElementCount[s.spineIndex] + int64(len(s.spine[s.spineIndex]))
}

func (s *Spine[T]) inflateSpine() {
	if s.spine != nil {
		return
	}

	s.spine = make([][]T, minSpineSize)
	s.priorElementCount = make([]int64, minSpineSize)
	s.spine[0] = s.curChunk
}

// ensureCapacity allocates chunks until target elements fit.
func (s *Spine[T]) ensureCapacity(target int64) {
	capacity := s.capacity()
	if target <= capacity {
		return
	}

	s.inflateSpine()

	for i := s.spineIndex + 1; target > capacity; i++ {
		if i >= len(s.spine) {
			s.growSpine()
		}

		size := s.chunkSize(i)

		s.spine[i] = make([]T, size)
		s.priorElementCount[i] = s.priorElementCount[i-1] + int64(len(s.spine[i-1]))

		capacity += int64(size)
	}
}

// growSpine doubles the spine and its prior element counts.
func (s *Spine[T]) growSpine() {
	size := len(s.spine) * 2

	spine := make([][]T, size)
	copy(spine, s.spine)
	s.spine = spine

	counts := make([]int64, size)
	copy(counts, s.priorElementCount)
	s.priorElementCount = counts
}
