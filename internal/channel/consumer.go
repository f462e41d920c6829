package channel

// Consumer is the exclusive read end of a channel. It is not safe for
// concurrent use by more than one goroutine at a time.
//
// cache/cacheIdx implement the mandatory drain-buffer optimization: reads
// are served from cache without touching the shared mutex while there is
// anything left in it. Only once cache is exhausted does the consumer
// acquire the shared lock, and then only to swap the entire backing slice
// out of the queue in one shot.
type Consumer[T any] struct {
	q        *queue[T]
	cache    []T
	cacheIdx int
	didClose bool
}

// Get returns the next value in FIFO order, blocking until one is
// available or the channel is fully drained and permanently closed. ok is
// false exactly when no further value will ever arrive.
func (c *Consumer[T]) Get() (v T, ok bool) {
	if c.didClose {
		return v, false
	}
	c.refill()
	return c.take()
}

// TryGet is the non-blocking variant of Get. ok is false both when nothing
// is available right now and when the channel is permanently closed and
// empty; callers distinguish the two with Closed, which only becomes true
// in the latter case.
func (c *Consumer[T]) TryGet() (v T, ok bool) {
	if c.didClose {
		return v, false
	}
	c.tryRefill()
	return c.take()
}

func (c *Consumer[T]) take() (v T, ok bool) {
	if c.cacheIdx < len(c.cache) {
		v = c.cache[c.cacheIdx]
		c.cacheIdx++
		return v, true
	}
	return v, false
}

func (c *Consumer[T]) refill() {
	if c.cacheIdx < len(c.cache) {
		return
	}
	newCache, closed := c.q.drain(c.cache[:0])
	if closed {
		c.Close()
		return
	}
	c.cache = newCache
	c.cacheIdx = 0
}

func (c *Consumer[T]) tryRefill() {
	if c.cacheIdx < len(c.cache) {
		return
	}
	newCache, wouldBlock, closed := c.q.tryDrain(c.cache[:0])
	if wouldBlock {
		return
	}
	if closed {
		c.Close()
		return
	}
	c.cache = newCache
	c.cacheIdx = 0
}

// Close is idempotent: it discards any locally cached undelivered items,
// sets the consumer-side half-close flag, and wakes a producer blocked in
// Emplace, if any. After Close, Get always returns ok=false.
func (c *Consumer[T]) Close() {
	if !c.didClose {
		c.cache = nil
		c.cacheIdx = 0
		c.q.closeOut()
		c.didClose = true
	}
}

// Closed reports whether this endpoint has closed.
func (c *Consumer[T]) Closed() bool { return c.didClose }

// finalizeConsumer mirrors finalizeProducer: a best-effort safety net, not
// a substitute for an explicit Close.
func finalizeConsumer[T any](c *Consumer[T]) { c.Close() }
