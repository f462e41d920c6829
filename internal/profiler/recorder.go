package profiler

import (
	"sync"
	"time"

	"github.com/coldstore/filed/internal/errs"
)

// recorder owns one goroutine's timing state: a call-stack tree, a flat
// per-block accumulation, and the stack of currently-open events that
// feeds both. It is only ever mutated by its owning goroutine via
// beginEvent/endEvent; the mutex exists solely to let a reporter goroutine
// take a consistent snapshot concurrently with that.
type recorder struct {
	mu sync.Mutex

	root    *Node
	current *Node
	stack   []openEvent

	culTime map[*BlockIdentity]time.Duration
}

func newRecorder() *recorder {
	root := newNode(nil, 0)
	return &recorder{
		root:    root,
		current: root,
		culTime: make(map[*BlockIdentity]time.Duration),
	}
}

func (rec *recorder) beginEvent(src *BlockIdentity, start time.Time) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.stack = append(rec.stack, openEvent{source: src, start: start})
	rec.current = rec.current.childFor(src)
}

func (rec *recorder) endEvent(src *BlockIdentity, end time.Time) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.stack) == 0 {
		errs.Violation("EndEvent(%q) called with no open block on this goroutine", src.Name)
	}
	top := rec.stack[len(rec.stack)-1]
	if top.source != src {
		errs.Violation("EndEvent(%q) does not match the innermost open block %q", src.Name, top.source.Name)
	}
	if end.Before(top.start) {
		errs.Violation("EndEvent(%q) time precedes its own BeginEvent", src.Name)
	}

	d := end.Sub(top.start)
	rec.current.TimeSpent += d
	rec.culTime[src] += d
	rec.stack = rec.stack[:len(rec.stack)-1]
	rec.current = rec.current.Parent
}

// asOfCallstack returns a detached tree reflecting this goroutine's timing
// as of t: closed intervals as recorded, still-open intervals extrapolated
// by attributing time.Since(start) up to t wherever start <= t.
func (rec *recorder) asOfCallstack(t time.Time) *Node {
	rec.mu.Lock()
	cloneRoot := cloneNode(rec.root, nil)
	stackCopy := append([]openEvent(nil), rec.stack...)
	rec.mu.Unlock()

	n := cloneRoot
	for _, ev := range stackCopy {
		n = n.Children[ev.source]
		if !ev.start.After(t) {
			n.TimeSpent += t.Sub(ev.start)
		}
	}
	return cloneRoot
}

// asOfOverview is the flat-map analogue of asOfCallstack.
func (rec *recorder) asOfOverview(t time.Time) OverviewSnapshot {
	rec.mu.Lock()
	out := make(OverviewSnapshot, len(rec.culTime))
	for id, d := range rec.culTime {
		out[id] = d
	}
	stackCopy := append([]openEvent(nil), rec.stack...)
	rec.mu.Unlock()

	for _, ev := range stackCopy {
		if !ev.start.After(t) {
			out[ev.source] += t.Sub(ev.start)
		}
	}
	return out
}
