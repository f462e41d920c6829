// Package profiler implements a per-goroutine, hierarchical, block-scoped
// timer. Every goroutine that calls TimedBlock gets its own accumulator
// tree (and flat overview map), registered on first use with a
// process-wide Registry. A reporter goroutine can snapshot any or all
// registered goroutines' state at any time without blocking them for more
// than the duration of a single tree clone.
package profiler
