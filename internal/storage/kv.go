// ABOUTME: Key-value contract shared by every storage backend.
// ABOUTME: Backends store opaque bytes; the profile store owns the encoding.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when an ID prefix matches more than one record.
	ErrAmbiguous = errors.New("ambiguous id prefix")

	// ErrReadOnly is returned by backends opened without write access.
	ErrReadOnly = errors.New("store is read-only")
)

// KV is the persistence boundary. Keys are plain strings such as
// "profile:current" or "assessment:<uuid>".
type KV interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value at key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
