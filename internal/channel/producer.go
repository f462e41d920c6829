package channel

// Producer is the exclusive write end of a channel. It is not safe for
// concurrent use by more than one goroutine at a time, matching the
// single-producer discipline the whole package is built around.
type Producer[T any] struct {
	q        *queue[T]
	didClose bool
}

// Emplace blocks until the value is accepted or the consumer has closed
// its end, in which case the producer self-closes and Emplace returns
// false. Once the producer has closed (self- or explicitly), Emplace
// returns false immediately without touching the shared lock.
func (p *Producer[T]) Emplace(v T) bool {
	if p.didClose {
		return false
	}
	if closed := p.q.push(v); closed {
		p.Close()
		return false
	}
	return true
}

// TryEmplace is the non-blocking variant of Emplace. It returns false if
// the shared lock is contended, if the queue is full but not closed, or
// if the consumer has closed (in which case the producer also self-closes).
func (p *Producer[T]) TryEmplace(v T) bool {
	if p.didClose {
		return false
	}
	ok, _, closed := p.q.tryPush(v)
	if closed {
		p.Close()
		return false
	}
	return ok
}

// Close is idempotent: it sets the producer-side half-close flag and wakes
// a consumer blocked in Get, if any. Subsequent Emplace calls return false.
func (p *Producer[T]) Close() {
	if !p.didClose {
		p.q.closeIn()
		p.didClose = true
	}
}

// Closed reports whether this endpoint has closed, whether by an explicit
// Close call or by self-closing after observing the consumer go away.
func (p *Producer[T]) Closed() bool { return p.didClose }

// finalizeProducer is registered as a best-effort safety net so a Producer
// that is garbage collected without an explicit Close still unblocks its
// consumer eventually. It is not a substitute for calling Close (or
// deferring it): finalizers run on the GC's schedule, not promptly, and
// are skipped entirely if the process exits first.
func finalizeProducer[T any](p *Producer[T]) { p.Close() }
