// Package archive ships periodic profiler snapshots to durable storage:
// an embedded Badger database for a single-node deployment, or GCS for a
// fleet. Snapshots arrive over a channel.Consumer fed by the daemon's main
// loop and are written out LZ4-compressed, JSON-encoded.
package archive

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by ObjectHandler.Get when name has never
// been written.
var ErrObjectNotFound = errors.New("archive: object not found")

// ReadSizeCloser is what ObjectHandler.Get returns: a readable object that
// knows its own size up front, without requiring a full read.
type ReadSizeCloser interface {
	io.Reader
	io.Closer
	Size() int64
}

// ObjectHandler is the storage seam both backends in this package
// implement, so the archiver doesn't care whether it's writing to Badger
// or GCS.
type ObjectHandler interface {
	Put(ctx context.Context, name string) (io.WriteCloser, error)
	Get(ctx context.Context, name string) (ReadSizeCloser, error)
}
