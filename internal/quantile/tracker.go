package quantile

import (
	"sync"
	"time"

	"github.com/coldstore/filed/internal/profiler"
)

// Tracker keeps a streaming latency distribution per BlockIdentity,
// independent of any single goroutine's call-stack tree. Where the
// profiler answers "how much total time went into this block," Tracker
// answers "what does one call to this block usually cost."
type Tracker struct {
	mu      sync.Mutex
	byBlock map[*profiler.BlockIdentity]*Samples
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{byBlock: make(map[*profiler.BlockIdentity]*Samples)}
}

// Observe records one completed call's duration against id.
func (t *Tracker) Observe(id *profiler.BlockIdentity, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byBlock[id]
	if !ok {
		s = &Samples{}
		t.byBlock[id] = s
	}
	s.Add(d.Seconds())
}

// TimedBlock wraps profiler.Registry.TimedBlock, additionally feeding the
// completed call's duration into this tracker. Use it in place of a bare
// TimedBlock call wherever per-block latency percentiles are wanted, not
// just cumulative time.
func (t *Tracker) TimedBlock(reg *profiler.Registry, id *profiler.BlockIdentity) func() {
	start := time.Now()
	end := reg.TimedBlock(id)
	return func() {
		end()
		t.Observe(id, time.Since(start))
	}
}

// Summary is a point-in-time p50/p95/p99 snapshot for one block.
type Summary struct {
	Count int
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// Summary computes percentiles for id's recorded samples as of now. The
// zero Summary (Count == 0) is returned for a block with no observations.
func (t *Tracker) Summary(id *profiler.BlockIdentity) Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byBlock[id]
	if !ok {
		return Summary{}
	}
	return Summary{
		Count: s.Len(),
		P50:   time.Duration(s.Percentile(0.50) * float64(time.Second)),
		P95:   time.Duration(s.Percentile(0.95) * float64(time.Second)),
		P99:   time.Duration(s.Percentile(0.99) * float64(time.Second)),
	}
}

// Blocks returns every BlockIdentity with at least one recorded sample.
func (t *Tracker) Blocks() []*profiler.BlockIdentity {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*profiler.BlockIdentity, 0, len(t.byBlock))
	for id := range t.byBlock {
		out = append(out, id)
	}
	return out
}
