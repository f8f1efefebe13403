package store

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Dedup coalesces concurrent fetches for the same path into one call
// against the inner store. Two fetches for different paths are never
// coalesced, the flight key is the path itself. This replaces the
// old delay-and-retry softening with a real in-flight map.
type Dedup struct {
	inner FileStore
	group singleflight.Group
}

// NewDedup wraps a FileStore with same-path fetch coalescing.
func NewDedup(inner FileStore) *Dedup {
	return &Dedup{inner: inner}
}

func (d *Dedup) List() []string {
	return d.inner.List()
}

// Fetch joins an in-flight fetch for the same path when one exists.
// Joiners share the first caller's result; the first caller's context
// governs the underlying fetch.
func (d *Dedup) Fetch(ctx context.Context, path string) (string, error) {
	content, err, _ := d.group.Do(path, func() (any, error) {
		return d.inner.Fetch(ctx, path)
	})
	if err != nil {
		return "", err
	}
	return content.(string), nil
}
