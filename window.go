package gostreams

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Windowed returns a pipeline that produces sliding windows over the elements produced by p.
// Each window holds up to size consecutive elements, and consecutive windows start step elements apart.
// If step is greater than size, the elements between windows are pulled and discarded
// when the next window is pulled.
//
// The last window may hold fewer than size elements. A window is only produced if at least one
// element in it was not part of an earlier window.
// It returns ErrInvalidArgument if size or step is not positive.
func Windowed[T any](p *Pipeline[T], size int, step int) (*Pipeline[[]T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidArgument, size)
	}

	if step <= 0 {
		return nil, fmt.Errorf("%w: window step must be positive, got %d", ErrInvalidArgument, step)
	}

	window := make([]T, 0, size)
	started := false

	return derive(p, func() ([]T, bool, error) {
		if started {
			for i := size; i < step; i++ {
				if _, ok, err := p.it.pull(); !ok {
					return nil, false, err
				}
			}
		}

		started = true
		pulled := false

		for len(window) < size {
			elem, ok, err := p.it.pull()
			if err != nil {
				return nil, false, err
			}

			if !ok {
				break
			}

			window = append(window, elem)
			pulled = true
		}

		if !pulled {
			return nil, false, nil
		}

		result := slices.Clone(window)

		drop := min(len(window), step)
		window = append(window[:0], window[drop:]...)

		return result, true, nil
	}), nil
}

// Chunk returns a pipeline that produces the elements produced by p in consecutive, non-overlapping
// slices of size elements. The last slice may hold fewer elements.
// It returns ErrInvalidArgument if size is not positive.
func Chunk[T any](p *Pipeline[T], size int) (*Pipeline[[]T], error) {
	return Windowed(p, size, size)
}
