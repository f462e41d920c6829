package profiler

import "time"

// openEvent is a BeginEvent that has not yet been matched by an EndEvent.
type openEvent struct {
	source *BlockIdentity
	start  time.Time
}
