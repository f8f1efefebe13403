// Package store defines the file-access boundary the core consumes
// and ships a few implementations of it: a directory tree, a single
// sqlite database, and an in-memory map for tests. The index and
// everything above it only ever see these interfaces.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Fetch for a path the store does not
// hold. Callers distinguish it with errors.Is.
var ErrNotFound = errors.New("file not found")

// FileStore is the read side of the collaborator contract.
type FileStore interface {
	// List enumerates every file path in the project tree,
	// slash-separated and relative to the store root. It is
	// synchronous and never partial on purpose; unreadable entries
	// are simply skipped.
	List() []string

	// Fetch returns the full text content of one path, or an error
	// wrapping ErrNotFound.
	Fetch(ctx context.Context, path string) (string, error)
}

// WritableStore adds the write capabilities. The core treats the
// presence of all of them together as "write enabled"; a read-only
// caller just passes a plain FileStore.
type WritableStore interface {
	FileStore

	Write(ctx context.Context, path, content string) error
	MkdirAll(ctx context.Context, path string) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
}
