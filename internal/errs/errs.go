// Package errs collects the sentinel errors and contract-violation helper
// shared by the channel and profiler packages.
package errs

import (
	"errors"
	"fmt"
)

// ErrChannelClosed indicates the far endpoint of a channel has gone away
// permanently. It never crosses an exported API as a return value (those
// use a boolean), but composing code that wraps Try* calls can match on it.
var ErrChannelClosed = errors.New("filed: channel closed")

// ErrWouldBlock indicates a non-blocking operation could not make progress
// right now: the shared lock was contended, or the queue was full/empty but
// not yet closed.
var ErrWouldBlock = errors.New("filed: operation would block")

// Violation panics with a formatted message. It marks a contract violation:
// a case the caller is expected to never trigger through correct use of the
// exported API (e.g. a non-positive channel capacity, a mismatched
// EndEvent). Unlike the sentinel errors above, violations are never meant
// to be recovered from by ordinary control flow.
func Violation(format string, args ...any) {
	panic(fmt.Sprintf("filed: contract violation: "+format, args...))
}
