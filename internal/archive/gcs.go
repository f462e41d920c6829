package archive

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSBackend stores snapshots as objects in a GCS bucket. Prefix lets
// several daemons (or several environments) share one bucket without
// their snapshots colliding; it's applied as a path segment, not a raw
// string concatenation, so a prefix of "staging" and one of "stagingx"
// never collide on object name.
type GCSBackend struct {
	Bucket *storage.BucketHandle
	Prefix string
}

func (g *GCSBackend) objectKey(name string) string {
	if g.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(g.Prefix, "/") + "/" + name
}

func (g *GCSBackend) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	return g.Bucket.Object(g.objectKey(name)).NewWriter(ctx), nil
}

func (g *GCSBackend) Get(ctx context.Context, name string) (ReadSizeCloser, error) {
	rc, err := g.Bucket.Object(g.objectKey(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return rc, nil
}
