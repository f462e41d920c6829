package report

import (
	"reflect"
	"sort"

	"github.com/coldstore/filed/internal/profiler"
)

// childEntry pairs a BlockIdentity with the node it keys, so children can
// be sorted deterministically before printing: Go map iteration order is
// randomized, and the formatted output needs to be stable run to run.
type childEntry struct {
	id   *profiler.BlockIdentity
	node *profiler.Node
}

// sortedChildren orders a node's children by descending TimeSpent, tied
// broken by descending address of the BlockIdentity key — the same rule
// the original report generator uses, since a node's children come from a
// map with no inherent ordering either way and *some* deterministic order
// is required for a stable, diffable report.
func sortedChildren(n *profiler.Node) []childEntry {
	entries := make([]childEntry, 0, len(n.Children))
	for id, child := range n.Children {
		entries = append(entries, childEntry{id: id, node: child})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].node.TimeSpent != entries[j].node.TimeSpent {
			return entries[i].node.TimeSpent > entries[j].node.TimeSpent
		}
		return pointerValue(entries[i].id) > pointerValue(entries[j].id)
	})
	return entries
}

func pointerValue(id *profiler.BlockIdentity) uintptr {
	return reflect.ValueOf(id).Pointer()
}
