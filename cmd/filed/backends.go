package main

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/dgraph-io/badger/v4"
)

func storageNewClient(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

func badgerOpen(dir string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(dir))
}
