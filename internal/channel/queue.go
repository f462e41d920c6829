package channel

import (
	"sync"

	"github.com/coldstore/filed/internal/errs"
	"github.com/coldstore/filed/internal/logging"
)

var log = logging.Component("channel")

// queue is the state shared between a Producer and a Consumer. Every
// mutation happens under mu; inUpdate is signaled on push and on producer
// close, outUpdate is signaled on drain and on consumer close. Because
// there is at most one waiter per condition variable (one producer, one
// consumer), Signal is always correct and preferred over Broadcast.
type queue[T any] struct {
	mu        sync.Mutex
	inUpdate  *sync.Cond
	outUpdate *sync.Cond

	data    []T
	maxSize int
	inDead  bool
	outDead bool
}

func newQueue[T any](maxSize int) *queue[T] {
	if maxSize <= 0 {
		errs.Violation("channel capacity must be >= 1, got %d", maxSize)
	}
	q := &queue[T]{maxSize: maxSize}
	q.inUpdate = sync.NewCond(&q.mu)
	q.outUpdate = sync.NewCond(&q.mu)
	return q
}

// push blocks until there is room to append v or the channel is closed.
// closed reports whether the caller (Producer.Emplace) should self-close:
// that happens both when the consumer already closed (outDead) and, as a
// logged programmer-error case, when this queue was reached through a
// producer that had already closed it (inDead) -- the exported wrappers
// make the latter unreachable through ordinary use.
func (q *queue[T]) push(v T) (closed bool) {
	q.mu.Lock()
	for len(q.data) >= q.maxSize && !q.outDead {
		q.outUpdate.Wait()
	}
	if q.inDead {
		q.mu.Unlock()
		log.Debug().Msg("write attempted on a producer-closed channel")
		return true
	}
	if q.outDead {
		q.mu.Unlock()
		return true
	}
	q.data = append(q.data, v)
	q.mu.Unlock()
	q.inUpdate.Signal()
	return false
}

// tryPush is the non-blocking variant of push. wouldBlock is set when the
// mutex was contended or the queue was full but not yet closed.
func (q *queue[T]) tryPush(v T) (ok, wouldBlock, closed bool) {
	if !q.mu.TryLock() {
		return false, true, false
	}
	if q.inDead {
		q.mu.Unlock()
		log.Debug().Msg("write attempted on a producer-closed channel")
		return false, false, true
	}
	if q.outDead {
		q.mu.Unlock()
		return false, false, true
	}
	if len(q.data) >= q.maxSize {
		q.mu.Unlock()
		return false, true, false
	}
	q.data = append(q.data, v)
	q.mu.Unlock()
	q.inUpdate.Signal()
	return true, false, false
}

// drain blocks until the queue has at least one value or is permanently,
// closed then swaps the entire backing slice into the caller's recycled
// buffer (the consumer's exhausted cache) and returns it. This is what
// bounds shared-mutex contention to at most once per maxSize consumer
// reads: the consumer only calls drain when its local cache runs dry.
func (q *queue[T]) drain(recycled []T) (newCache []T, closed bool) {
	q.mu.Lock()
	for len(q.data) == 0 && !q.inDead {
		q.inUpdate.Wait()
	}
	if q.outDead {
		q.mu.Unlock()
		log.Debug().Msg("read attempted on a consumer-closed channel")
		return recycled, true
	}
	if len(q.data) == 0 {
		q.mu.Unlock()
		return recycled, true
	}
	newCache = q.data
	q.data = recycled[:0]
	q.mu.Unlock()
	q.outUpdate.Signal()
	return newCache, false
}

// tryDrain is the non-blocking variant of drain.
func (q *queue[T]) tryDrain(recycled []T) (newCache []T, wouldBlock, closed bool) {
	if !q.mu.TryLock() {
		return recycled, true, false
	}
	if q.outDead {
		q.mu.Unlock()
		log.Debug().Msg("read attempted on a consumer-closed channel")
		return recycled, false, true
	}
	if len(q.data) == 0 {
		if q.inDead {
			q.mu.Unlock()
			return recycled, false, true
		}
		q.mu.Unlock()
		return recycled, true, false
	}
	newCache = q.data
	q.data = recycled[:0]
	q.mu.Unlock()
	q.outUpdate.Signal()
	return newCache, false, false
}

func (q *queue[T]) closeIn() {
	q.mu.Lock()
	already := q.inDead
	q.inDead = true
	q.mu.Unlock()
	if !already {
		q.inUpdate.Signal()
	}
}

func (q *queue[T]) closeOut() {
	q.mu.Lock()
	already := q.outDead
	q.outDead = true
	q.mu.Unlock()
	if !already {
		q.outUpdate.Signal()
	}
}

// length reports the current queue depth. Used only by tests -- never by
// the hot Emplace/Get path.
func (q *queue[T]) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}
