package report

import (
	"sort"
	"strings"
	"time"

	"github.com/coldstore/filed/internal/profiler"
)

type overviewEntry struct {
	id *profiler.BlockIdentity
	d  time.Duration
}

func sortedOverview(snap profiler.OverviewSnapshot) []overviewEntry {
	entries := make([]overviewEntry, 0, len(snap))
	for id, d := range snap {
		entries = append(entries, overviewEntry{id: id, d: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].d != entries[j].d {
			return entries[i].d > entries[j].d
		}
		return pointerValue(entries[i].id) > pointerValue(entries[j].id)
	})
	return entries
}

// FormatOverview renders a single goroutine's flat per-block accumulation,
// ranked by descending time. topN <= 0 means unbounded.
func FormatOverview(snap map[*profiler.BlockIdentity]time.Duration, start, now time.Time, topN int) string {
	elapsed := now.Sub(start)
	entries := sortedOverview(snap)
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	var buf strings.Builder
	for _, e := range entries {
		buf.WriteString(e.id.Name)
		buf.WriteString(": ")
		buf.WriteString(formatDuration(e.d))
		if elapsed > 0 {
			buf.WriteString(" (")
			buf.WriteString(formatPercent(float64(e.d) / float64(elapsed)))
			buf.WriteString("%)")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// createOverview recursively attributes a call-stack tree's time onto a
// flat per-BlockIdentity map. When relative is true, a node's attributed
// time excludes whatever its children already accounted for, so a block's
// overview entry reflects only time spent directly in it, not in things it
// called. When false, every enclosing block gets full credit for
// everything nested inside it too, matching the tree view's non-relative
// percentages.
func createOverview(out map[*profiler.BlockIdentity]time.Duration, id *profiler.BlockIdentity, n *profiler.Node, relative bool) time.Duration {
	var childTime time.Duration
	for childID, child := range n.Children {
		childTime += createOverview(out, childID, child, relative)
	}
	attributed := n.TimeSpent
	if relative {
		attributed -= childTime
	}
	out[id] += attributed
	return n.TimeSpent
}

var measuredBlock = &profiler.BlockIdentity{Name: rootLabel}

// FormatCallstackOverview flattens a call-stack tree into the same
// ranked-list shape as FormatOverview, attributing every node's time to
// its own BlockIdentity regardless of where in the tree it occurred.
func FormatCallstackOverview(root *profiler.Node, start, now time.Time, topN int, relative bool) string {
	flat := make(map[*profiler.BlockIdentity]time.Duration)
	createOverview(flat, measuredBlock, root, relative)
	return FormatOverview(flat, start, now, topN)
}
