// Package gostreams provides a set of lazy operations on pipelines of elements.
// Pipelines form a chain of stages that elements are pulled through, one at a time.
//
// Pipelines are constructed from a source, such as slices, channels, iterators, iter.Seq sequences,
// ranges, or generator functions.
//
// Elements may then be operated upon using mapping, filtering, flattening, sorting, deduplication,
// sampling, windowing, and scanning operations (intermediate operations), each of which returns a new
// pipeline wrapping the previous one.
//
// Finally, the elements are consumed by terminal operations, such as reducing them into slices or maps,
// grouping/partitioning them, counting them, checking for matching elements, or finding single elements.
//
// Pipelines are always lazy and pull-based: no element is produced until a terminal operation asks for it,
// and every stage pulls only as many upstream elements as it needs to produce its next element. Only Sort,
// and terminal operations that return all elements, materialize elements, using a chunked Spine buffer.
// Everything happens synchronously, in the goroutine that calls the terminal operation.
//
// Every stage is a LookaheadIterator: it computes its next element ahead of time, so that HasNext can tell
// whether the sequence has ended without consuming more than one element of lookahead.
//
// Pipelines may hold resources. Close handlers registered using OnClose are run by Close. Pipelines returned
// by FlatMap mappers are closed as soon as they are drained, or by Close if they are still being drained. Callers should defer Close whenever a source registers
// close handlers, such as ProduceSeq.
package gostreams
