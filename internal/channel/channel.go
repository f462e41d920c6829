package channel

import "runtime"

// NewChannel creates a new bounded channel of the given capacity and
// returns its producer and consumer handles. capacity must be >= 1; a
// non-positive capacity is a contract violation and panics.
func NewChannel[T any](capacity int) (*Producer[T], *Consumer[T]) {
	q := newQueue[T](capacity)
	p := &Producer[T]{q: q}
	c := &Consumer[T]{q: q}
	runtime.SetFinalizer(p, finalizeProducer[T])
	runtime.SetFinalizer(c, finalizeConsumer[T])
	return p, c
}
