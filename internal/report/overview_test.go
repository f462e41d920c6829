package report

import (
	"strings"
	"testing"
	"time"
)

func TestFormatCallstackOverviewRelativeExcludesChildren(t *testing.T) {
	root, _, _ := buildTestTree()
	start := time.Unix(0, 0)
	now := start.Add(15 * time.Millisecond)

	out := FormatCallstackOverview(root, start, now, 0, true)
	if !strings.Contains(out, "A: "+formatDuration(5*time.Millisecond)) {
		t.Fatalf("relative overview should attribute A's own (exclusive) 5ms, got:\n%s", out)
	}
	if !strings.Contains(out, "B: "+formatDuration(10*time.Millisecond)) {
		t.Fatalf("relative overview should attribute B's 10ms, got:\n%s", out)
	}
}

func TestFormatCallstackOverviewNonRelativeIncludesChildren(t *testing.T) {
	root, _, _ := buildTestTree()
	start := time.Unix(0, 0)
	now := start.Add(15 * time.Millisecond)

	out := FormatCallstackOverview(root, start, now, 0, false)
	if !strings.Contains(out, "A: "+formatDuration(15*time.Millisecond)) {
		t.Fatalf("non-relative overview should attribute A's full (inclusive) 15ms, got:\n%s", out)
	}
}

func TestFormatOverviewTopN(t *testing.T) {
	root, _, _ := buildTestTree()
	start := time.Unix(0, 0)
	now := start.Add(15 * time.Millisecond)

	full := FormatCallstackOverview(root, start, now, 0, true)
	top1 := FormatCallstackOverview(root, start, now, 1, true)
	if strings.Count(full, "\n") <= strings.Count(top1, "\n") {
		t.Fatalf("topN=1 should produce fewer lines than unbounded:\nfull:\n%s\ntop1:\n%s", full, top1)
	}
}
