package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory WritableStore. It backs tests and remote
// listings (task sets imported from elsewhere and browsed without
// touching disk).
type MemStore struct {
	mu    sync.Mutex
	files map[string]string

	// FetchHook, when set, runs before every Fetch. Tests use it to
	// count or block fetches.
	FetchHook func(path string)
}

// NewMemStore copies the given file map into a fresh store. A nil map
// is fine.
func NewMemStore(files map[string]string) *MemStore {
	m := &MemStore{files: make(map[string]string, len(files))}
	for path, content := range files {
		m.files[path] = content
	}
	return m
}

func (m *MemStore) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (m *MemStore) Fetch(ctx context.Context, path string) (string, error) {
	if hook := m.FetchHook; hook != nil {
		hook(path)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("fetch %s: %w", path, ErrNotFound)
	}
	return content, nil
}

func (m *MemStore) Write(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	return nil
}

// MkdirAll is a no-op: directories are implicit in a path-keyed map.
func (m *MemStore) MkdirAll(ctx context.Context, path string) error {
	return ctx.Err()
}

func (m *MemStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok {
		return fmt.Errorf("delete %s: %w", path, ErrNotFound)
	}
	delete(m.files, path)
	return nil
}

func (m *MemStore) Exists(ctx context.Context, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		return true
	}
	// Directory existence: any file under the prefix counts.
	prefix := strings.TrimSuffix(path, "/") + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
