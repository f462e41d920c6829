package profiler

import (
	"bytes"
	"runtime"
	"strconv"

	"github.com/coldstore/filed/internal/errs"
)

// GoroutineID is the runtime's own goroutine identifier, used as the
// registry key for per-goroutine recorders. Go exposes no public
// goroutine-local storage, so it is recovered the same way other
// goroutine-aware diagnostic tools do it: parse the "goroutine N [...]:"
// header off a small stack capture. It is not cheap enough to call on
// every event, which is why Registry caches it per TimedBlock call rather
// than per BeginEvent/EndEvent pair.
type GoroutineID int64

func currentGoroutineID() GoroutineID {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		errs.Violation("unexpected stack trace header %q", string(b))
	}
	b = b[len(prefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		errs.Violation("unexpected stack trace header: no space after goroutine id")
	}
	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		errs.Violation("could not parse goroutine id: %v", err)
	}
	return GoroutineID(id)
}
