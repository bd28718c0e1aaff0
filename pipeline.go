package gostreams

import "iter"

// Pipeline is a lazy, forward-only, single-pass sequence of elements.
//
// A pipeline is built from a source and any number of intermediate operations, each of which
// returns a new pipeline wrapping the previous one. No element is pulled from the source until
// a terminal operation, or the caller of Iterator, asks for one. Once a terminal operation has
// been invoked, neither the pipeline nor any pipeline it was derived from may be used again.
//
// Pipelines are not safe for concurrent use.
type Pipeline[T any] struct {
	it    *LookaheadIterator[T]
	chain *closeChain
}

// newPipeline returns a pipeline with a new close chain.
func newPipeline[T any](advance AdvanceFunc[T]) *Pipeline[T] {
	return &Pipeline[T]{
		it:    NewLookaheadIterator(advance),
		chain: &closeChain{},
	}
}

// derive returns a pipeline that produces the elements computed by advance, sharing the close chain of p.
func derive[T any, U any](p *Pipeline[T], advance AdvanceFunc[U]) *Pipeline[U] {
	return &Pipeline[U]{
		it:    NewLookaheadIterator(advance),
		chain: p.chain,
	}
}

// OnClose registers handler to be run when the pipeline is closed, after all handlers registered before it.
// It returns p.
func (p *Pipeline[T]) OnClose(handler CloseFunc) *Pipeline[T] {
	if handler != nil {
		p.chain.add(handler)
	}

	return p
}

// Close runs all close handlers registered on the pipeline, or any pipeline it was derived from, in order
// of registration. Every handler runs even if an earlier one fails; the first failure is returned, with later
// failures appended to it (see go.uber.org/multierr). Calls after the first are no-ops.
func (p *Pipeline[T]) Close() error {
	return p.chain.close()
}

// Iterator returns the iterator driving the pipeline. Consuming it consumes the pipeline.
func (p *Pipeline[T]) Iterator() *LookaheadIterator[T] {
	return p.it
}

// All returns a single-use sequence over the elements of the pipeline, for use with range.
// Iteration stops early if the pipeline ends with an error; use Iterator().Err() to check.
func (p *Pipeline[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, ok, _ := p.it.pull()
			if !ok || !yield(elem) {
				return
			}
		}
	}
}

// Must returns p, and panics if err is not nil.
// It is intended for chaining operations whose arguments are known to be valid, such as Limit(p, 10).
func Must[T any](p *Pipeline[T], err error) *Pipeline[T] {
	if err != nil {
		panic(err)
	}

	return p
}
