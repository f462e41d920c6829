package report

import (
	"strings"
	"time"

	"github.com/coldstore/filed/internal/profiler"
)

// rootLabel is the name printed for the implicit root of every call-stack
// tree: the goroutine as a whole, rather than any single timed block.
const rootLabel = "Measured"

// maxChildValues walks n's descendants (not n itself) and reports the
// deepest additional level reached and the longest BlockIdentity name
// seen, both used to size the dash-fill column so every line's duration
// lands in the same place regardless of name length or nesting depth.
func maxChildValues(n *profiler.Node) (depth, nameLen int) {
	for id, child := range n.Children {
		if l := len(id.Name); l > nameLen {
			nameLen = l
		}
		cd, cl := maxChildValues(child)
		if cd+1 > depth {
			depth = cd + 1
		}
		if cl > nameLen {
			nameLen = cl
		}
	}
	return depth, nameLen
}

func printNode(buf *strings.Builder, name string, depth int, parentTime time.Duration, maxNameLen, maxPrintDepth int, relative bool, n *profiler.Node) {
	buf.WriteString(strings.Repeat(" ", depth))
	buf.WriteString(name)
	buf.WriteString(": ")

	offset := (maxNameLen - len(name)) + (maxPrintDepth - depth)
	if offset > 0 {
		buf.WriteString(strings.Repeat("-", offset-1))
		buf.WriteString(" ")
	}
	buf.WriteString(formatDuration(n.TimeSpent))
	if parentTime > 0 {
		buf.WriteString(" (")
		buf.WriteString(formatPercent(float64(n.TimeSpent) / float64(parentTime)))
		buf.WriteString("%)")
	}
	buf.WriteString("\n")

	if depth >= maxPrintDepth {
		return
	}
	childParent := parentTime
	if relative {
		childParent = n.TimeSpent
	}
	for _, e := range sortedChildren(n) {
		printNode(buf, e.id.Name, depth+1, childParent, maxNameLen, maxPrintDepth, relative, e.node)
	}
}

// FormatTree renders a single goroutine's call-stack tree. maxDepth <= 0
// means unbounded. relative controls whether each node's percentage is
// taken against its immediate parent (true) or against the report's
// overall elapsed time (false).
func FormatTree(root *profiler.Node, start, now time.Time, maxDepth int, relative bool) string {
	childDepth, childNameLen := maxChildValues(root)
	maxNameLen := len(rootLabel)
	if childNameLen > maxNameLen {
		maxNameLen = childNameLen
	}
	maxPrintDepth := childDepth
	if maxDepth > 0 && maxDepth < maxPrintDepth {
		maxPrintDepth = maxDepth
	}

	rootElapsed := now.Sub(start)

	var buf strings.Builder
	offset := (maxNameLen - len(rootLabel)) + maxPrintDepth
	buf.WriteString(rootLabel)
	buf.WriteString(": ")
	if offset > 0 {
		buf.WriteString(strings.Repeat("-", offset-1))
		buf.WriteString(" ")
	}
	buf.WriteString(formatDuration(rootElapsed))
	buf.WriteString(" (")
	buf.WriteString(formatPercent(1))
	buf.WriteString("%)\n")

	childParent := rootElapsed
	if relative {
		childParent = root.TimeSpent
	}
	for _, e := range sortedChildren(root) {
		printNode(&buf, e.id.Name, 1, childParent, maxNameLen, maxPrintDepth, relative, e.node)
	}
	return buf.String()
}
