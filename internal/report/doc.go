// Package report renders profiler.Registry snapshots as text, in three
// flavors: a depth-indented tree (Callstack), a folded single-line-per-leaf
// form (Collapsed), and a flat per-block ranking (Overview and
// CallstackOverview). The per-goroutine Format* functions are pure
// functions of an already-taken snapshot plus the instant it was taken at.
// The report-level wrappers take that snapshot themselves through the
// report's Snapshot method, which holds the registry's read lock only
// while copying; formatting happens after it is released. None of them
// read a clock: the instant is always passed in.
package report
