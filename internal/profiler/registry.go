package profiler

import (
	"context"
	"sync"
	"time"

	"github.com/coldstore/filed/internal/clock"
)

// Registry is a process-wide (or test-scoped) collection of per-goroutine
// recorders. One Registry backs both the call-stack view (CallstackReport)
// and the flat view (OverviewReport) of the same underlying event stream —
// every BeginEvent/EndEvent pair updates both simultaneously, so the two
// views are never out of sync with each other.
type Registry struct {
	mu      sync.RWMutex
	threads map[GoroutineID]*recorder
	start   time.Time
	clk     clock.Clock
}

// NewRegistry creates an empty registry. start is stamped immediately from
// clk and becomes the denominator reporters use for "percent of everything
// measured so far" at the root of a report.
func NewRegistry(clk clock.Clock) *Registry {
	return &Registry{
		threads: make(map[GoroutineID]*recorder),
		start:   clk.Now(),
		clk:     clk,
	}
}

// forCurrent returns the calling goroutine's recorder, registering a fresh
// one on first use. The common case (already registered) only takes a
// read lock.
func (r *Registry) forCurrent() *recorder {
	gid := currentGoroutineID()

	r.mu.RLock()
	rec, ok := r.threads[gid]
	r.mu.RUnlock()
	if ok {
		return rec
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok = r.threads[gid]; ok {
		return rec
	}
	rec = newRecorder()
	r.threads[gid] = rec
	return rec
}

// TimedBlock opens id on the calling goroutine's recorder and returns a
// closer that ends it. Idiomatic use is a deferred call at the top of the
// scope being timed:
//
//	defer reg.TimedBlock(blockDecode)()
func (r *Registry) TimedBlock(id *BlockIdentity) func() {
	rec := r.forCurrent()
	start := r.clk.Now()
	rec.beginEvent(id, start)
	return func() {
		rec.endEvent(id, r.clk.Now())
	}
}

// TimedBlockCtx is the context.Context-threaded variant of TimedBlock,
// used by call sites that already carry a request-scoped context — the
// debug HTTP handlers in particular. If ctx is already canceled when the
// block would open, there is nothing worth attributing the time to, so it
// skips recording and returns a no-op closer instead of opening an event
// for work that is already being abandoned.
func (r *Registry) TimedBlockCtx(ctx context.Context, id *BlockIdentity) func() {
	if ctx.Err() != nil {
		return func() {}
	}
	return r.TimedBlock(id)
}

// Callstack returns the hierarchical view of this registry.
func (r *Registry) Callstack() CallstackReport { return CallstackReport{r: r} }

// Overview returns the flat view of this registry.
func (r *Registry) Overview() OverviewReport { return OverviewReport{r: r} }

// CallstackReport is the hierarchical, per-goroutine view of a Registry.
type CallstackReport struct{ r *Registry }

// Start is the instant the backing registry was created, used by
// formatters as the denominator for the implicit root's percentage.
func (cr CallstackReport) Start() time.Time { return cr.r.start }

// Snapshot returns a detached tree per currently-registered goroutine, as
// of now. Goroutines that have never called TimedBlock are absent, not
// present with an empty tree.
func (cr CallstackReport) Snapshot(now time.Time) map[GoroutineID]*Node {
	cr.r.mu.RLock()
	defer cr.r.mu.RUnlock()
	out := make(map[GoroutineID]*Node, len(cr.r.threads))
	for gid, rec := range cr.r.threads {
		out[gid] = rec.asOfCallstack(now)
	}
	return out
}

// OverviewReport is the flat, per-goroutine view of a Registry.
type OverviewReport struct{ r *Registry }

func (or OverviewReport) Start() time.Time { return or.r.start }

func (or OverviewReport) Snapshot(now time.Time) map[GoroutineID]OverviewSnapshot {
	or.r.mu.RLock()
	defer or.r.mu.RUnlock()
	out := make(map[GoroutineID]OverviewSnapshot, len(or.r.threads))
	for gid, rec := range or.r.threads {
		out[gid] = rec.asOfOverview(now)
	}
	return out
}

var defaultRegistry = NewRegistry(clock.Real{})

// TimedBlock times a block on the process-wide default registry. Most
// callers want this rather than constructing their own Registry; tests
// that need isolation from other tests' goroutines should construct one
// with NewRegistry instead.
func TimedBlock(id *BlockIdentity) func() { return defaultRegistry.TimedBlock(id) }

// TimedBlockCtx times a block on the process-wide default registry,
// honoring ctx cancellation the way Registry.TimedBlockCtx does.
func TimedBlockCtx(ctx context.Context, id *BlockIdentity) func() {
	return defaultRegistry.TimedBlockCtx(ctx, id)
}

// DefaultCallstackReport returns the hierarchical view of the process-wide
// default registry.
func DefaultCallstackReport() CallstackReport { return defaultRegistry.Callstack() }

// DefaultOverviewReport returns the flat view of the process-wide default
// registry.
func DefaultOverviewReport() OverviewReport { return defaultRegistry.Overview() }
