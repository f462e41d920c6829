package profiler

import "time"

// OverviewSnapshot is a flat accumulation of time spent per BlockIdentity,
// as observed at a single instant by a recorder's overview map. Unlike a
// Node tree, it carries no nesting information: a block that was entered
// both at top level and nested under another block contributes to the
// same single entry either way.
type OverviewSnapshot map[*BlockIdentity]time.Duration
