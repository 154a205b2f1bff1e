// Package kv is the durable local key-value store of the TaskDesk client.
//
// It holds the small amount of state that must survive a restart: the
// bearer token, the serialized user record and the last-activity timestamp.
// Two drivers implement Store: SQLite (default, goose-migrated) and Badger.
package kv

import (
	"context"
)

// Pair is a single key/value write used by SetMany.
type Pair struct {
	Key   string
	Value []byte
}

// Store is a string-keyed byte store.
//
// Get returns (nil, nil) when the key is absent. SetMany and Delete are
// all-or-nothing, and Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, pairs []Pair) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}
