package archive

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend stores snapshots as keys in an embedded Badger database,
// for single-node deployments that don't want a network dependency for
// archival.
type BadgerBackend struct {
	DB *badger.DB
}

func (b *BadgerBackend) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	return &badgerWriter{
		buf:  &bytes.Buffer{},
		txn:  b.DB.NewTransaction(true),
		name: name,
	}, nil
}

func (b *BadgerBackend) Get(ctx context.Context, name string) (ReadSizeCloser, error) {
	txn := b.DB.NewTransaction(false)
	item, err := txn.Get([]byte(name))
	if err != nil {
		txn.Discard()
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}

	value, err := item.ValueCopy(nil)
	if err != nil {
		txn.Discard()
		return nil, err
	}

	return &badgerReader{
		txn:    txn,
		reader: bytes.NewReader(value),
		size:   item.ValueSize(),
	}, nil
}

type badgerWriter struct {
	buf  *bytes.Buffer
	txn  *badger.Txn
	name string
}

func (w *badgerWriter) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	if err != nil {
		w.txn.Discard()
	}
	return n, err
}

func (w *badgerWriter) Close() error {
	if err := w.txn.Set([]byte(w.name), w.buf.Bytes()); err != nil {
		w.txn.Discard()
		return err
	}
	return w.txn.Commit()
}

type badgerReader struct {
	txn    *badger.Txn
	reader io.Reader
	size   int64
}

func (r *badgerReader) Read(p []byte) (int, error) { return r.reader.Read(p) }

func (r *badgerReader) Close() error {
	r.txn.Discard()
	return nil
}

func (r *badgerReader) Size() int64 { return r.size }
