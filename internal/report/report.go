package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coldstore/filed/internal/profiler"
)

func sortedGoroutineIDs[V any](m map[profiler.GoroutineID]V) []profiler.GoroutineID {
	ids := make([]profiler.GoroutineID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func startBoundary(buf *strings.Builder, kind string) {
	fmt.Fprintf(buf, "=== Start Performance Report (%s) ===\n", kind)
}

func endBoundary(buf *strings.Builder) {
	buf.WriteString("=== End Performance Report ===\n")
}

func threadHeader(buf *strings.Builder, gid profiler.GoroutineID) {
	fmt.Fprintf(buf, "== Thread: %d ==\n", gid)
}

// Callstack renders every currently-registered goroutine's call-stack
// tree as of now, wrapped in the "Callstack" report boundaries and one
// "== Thread: N ==" section per goroutine.
func Callstack(cr profiler.CallstackReport, now time.Time, maxDepth int, relative bool) string {
	snap := cr.Snapshot(now)
	var buf strings.Builder
	startBoundary(&buf, "Callstack")
	for _, gid := range sortedGoroutineIDs(snap) {
		threadHeader(&buf, gid)
		buf.WriteString(FormatTree(snap[gid], cr.Start(), now, maxDepth, relative))
	}
	endBoundary(&buf)
	return buf.String()
}

// Collapsed renders every currently-registered goroutine's call-stack tree
// as of now in folded-stack format, wrapped in the "Collapsed Callstack"
// report boundaries and one "== Thread: N ==" section per goroutine.
func Collapsed(cr profiler.CallstackReport, now time.Time, maxDepth int) string {
	snap := cr.Snapshot(now)
	var buf strings.Builder
	startBoundary(&buf, "Collapsed Callstack")
	for _, gid := range sortedGoroutineIDs(snap) {
		threadHeader(&buf, gid)
		buf.WriteString(FormatCollapsed(snap[gid], maxDepth))
	}
	endBoundary(&buf)
	return buf.String()
}

// Overview renders every currently-registered goroutine's flat
// accumulation as of now, wrapped in the "Overview" report boundaries and
// one "== Thread: N ==" section per goroutine.
func Overview(or profiler.OverviewReport, now time.Time, topN int) string {
	snap := or.Snapshot(now)
	var buf strings.Builder
	startBoundary(&buf, "Overview")
	for _, gid := range sortedGoroutineIDs(snap) {
		threadHeader(&buf, gid)
		buf.WriteString(FormatOverview(snap[gid], or.Start(), now, topN))
	}
	endBoundary(&buf)
	return buf.String()
}

// CallstackOverview renders every currently-registered goroutine's
// call-stack tree, flattened to a per-block ranking, wrapped in the
// "Overview" report boundaries and one "== Thread: N ==" section per
// goroutine. This is the cross-goroutine analogue of Overview that still
// benefits from the tree's nesting information.
func CallstackOverview(cr profiler.CallstackReport, now time.Time, topN int, relative bool) string {
	snap := cr.Snapshot(now)
	var buf strings.Builder
	startBoundary(&buf, "Overview")
	for _, gid := range sortedGoroutineIDs(snap) {
		threadHeader(&buf, gid)
		buf.WriteString(FormatCallstackOverview(snap[gid], cr.Start(), now, topN, relative))
	}
	endBoundary(&buf)
	return buf.String()
}
