package quantile

import (
	"testing"
	"time"

	"github.com/coldstore/filed/internal/profiler"
)

func TestTrackerSummary(t *testing.T) {
	tr := NewTracker()
	id := &profiler.BlockIdentity{Name: "decode"}

	for _, d := range []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond} {
		tr.Observe(id, d)
	}

	sum := tr.Summary(id)
	if sum.Count != 3 {
		t.Fatalf("Count = %d, want 3", sum.Count)
	}
	if sum.P50 != 20*time.Millisecond {
		t.Fatalf("P50 = %v, want 20ms", sum.P50)
	}
}

func TestTrackerSummaryUnknownBlock(t *testing.T) {
	tr := NewTracker()
	sum := tr.Summary(&profiler.BlockIdentity{Name: "never observed"})
	if sum.Count != 0 {
		t.Fatalf("Count = %d, want 0 for an unobserved block", sum.Count)
	}
}
