package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/coldstore/filed/internal/errs"
	"github.com/coldstore/filed/internal/profiler"
)

// printCollapsedNode emits one line for n and one for every descendant
// within maxDepth, in semicolon-joined folded-stack format
// ("Measured;A;B <nanoseconds>"), each carrying only the time not already
// printed on a deeper line, and
// returns this node's own TimeSpent so its caller can subtract the
// already-printed children out of its own line.
func printCollapsedNode(buf *strings.Builder, path string, maxDepth int, n *profiler.Node) time.Duration {
	var childTime time.Duration
	if n.Depth < maxDepth {
		for _, e := range sortedChildren(n) {
			childTime += printCollapsedNode(buf, path+";"+e.id.Name, maxDepth, e.node)
		}
	}
	if childTime > n.TimeSpent {
		errs.Violation("collapsed accounting: %q's children sum to more time than the node itself", path)
	}
	fmt.Fprintf(buf, "%s %d\n", path, (n.TimeSpent - childTime).Nanoseconds())
	return n.TimeSpent
}

// FormatCollapsed renders a single goroutine's call-stack tree in the
// folded-stack format used by flame graph tooling: one line per path from
// root to a printed node, exclusive of any time already attributed to a
// deeper line. Summing every line's nanosecond count reproduces the sum of
// the root's immediate children's TimeSpent exactly. maxDepth <= 0 means
// unbounded.
func FormatCollapsed(root *profiler.Node, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = math.MaxInt32
	}
	// root itself is never actively timed (nothing calls BeginEvent/EndEvent
	// on the implicit root), so it contributes no line of its own — only
	// its children, prefixed with the root label, do.
	var buf strings.Builder
	for _, e := range sortedChildren(root) {
		printCollapsedNode(&buf, rootLabel+";"+e.id.Name, maxDepth, e.node)
	}
	return buf.String()
}
