package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/coldstore/filed/internal/channel"
	"github.com/coldstore/filed/internal/logging"
)

// Snapshot is what gets archived: the three rendered report flavors for
// one instant, plus the instant itself so a restored snapshot can be
// placed back on a timeline.
type Snapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	Callstack  string    `json:"callstack"`
	Collapsed  string    `json:"collapsed"`
	Overview   string    `json:"overview"`
}

// Archiver drains snapshots from a bounded channel and writes each one to
// a backend, compressed. It is meant to run in its own goroutine for the
// life of the daemon, fed by a channel.Producer the caller holds onto.
//
// Snapshots taken close together (the steady-state periodic flush) are
// small and disposable; Archiver uses a cheap, fast compression level for
// those and reserves its best compression level for a snapshot recorded
// right before shutdown, which is more likely to be the one an operator
// actually goes back and reads.
type Archiver struct {
	backend ObjectHandler
	in      *channel.Consumer[Snapshot]

	routineOpts codecOptions
	finalOpts   codecOptions
}

// NewArchiver builds an Archiver that reads from in and writes to backend.
func NewArchiver(backend ObjectHandler, in *channel.Consumer[Snapshot]) *Archiver {
	routine := defaultCodecOptions
	routine.level = lz4.Level1

	final := defaultCodecOptions
	final.level = lz4.Level9

	return &Archiver{
		backend:     backend,
		in:          in,
		routineOpts: routine,
		finalOpts:   final,
	}
}

var log = logging.Component("archive")

// Run drains in until it is closed (or ctx is canceled), writing every
// snapshot it sees. It holds back the most recently drained snapshot by
// one step so it can tell whether a given snapshot is the last one the
// producer will ever send — that final snapshot gets written with the
// best compression level rather than the cheap one used for the routine
// flush cadence. A write failure is logged and does not stop the loop:
// one bad snapshot should not cost every snapshot after it.
func (a *Archiver) Run(ctx context.Context) error {
	var pending *Snapshot
	for {
		if ctx.Err() != nil {
			if pending != nil {
				a.write(context.WithoutCancel(ctx), *pending, a.finalOpts)
			}
			return ctx.Err()
		}
		snap, ok := a.in.Get()
		if !ok {
			if pending != nil {
				a.write(context.WithoutCancel(ctx), *pending, a.finalOpts)
			}
			return nil
		}
		if pending != nil {
			a.write(ctx, *pending, a.routineOpts)
		}
		pending = &snap
	}
}

func (a *Archiver) write(ctx context.Context, snap Snapshot, opts codecOptions) {
	name := objectName(snap.CapturedAt)
	if err := compressedWrite(ctx, a.backend, name, snap, opts); err != nil {
		log.Error().Err(err).Str("object", name).Msg("failed to archive snapshot")
		return
	}
	log.Debug().Str("object", name).Msg("archived snapshot")
}

// Load restores a previously archived Snapshot.
func Load(ctx context.Context, backend ObjectHandler, capturedAt time.Time) (Snapshot, error) {
	var snap Snapshot
	err := unmarshalCompressed(ctx, backend, objectName(capturedAt), &snap)
	return snap, err
}

func objectName(t time.Time) string {
	return fmt.Sprintf("snapshots/%s.json.lz4", t.UTC().Format(time.RFC3339Nano))
}
