package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OSStore serves a project directory on the local filesystem. Paths
// exposed through the interface are slash-separated and relative to
// the root.
type OSStore struct {
	root string
}

// NewOSStore creates a store rooted at the given directory. The
// directory does not have to exist yet; Init-style callers create it
// through MkdirAll.
func NewOSStore(root string) *OSStore {
	return &OSStore{root: root}
}

// Root returns the absolute directory this store serves.
func (s *OSStore) Root() string {
	return s.root
}

func (s *OSStore) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *OSStore) List() []string {
	var paths []string
	_ = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths
}

func (s *OSStore) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("fetch %s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	return string(data), nil
}

// Write is atomic: content goes to a uniquely named temp file in the
// target directory, then renames over the destination.
func (s *OSStore) Write(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := s.abs(path)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmp := dst + ".tmp." + hex.EncodeToString(suffix)

	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *OSStore) MkdirAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(s.abs(path), 0o755)
}

func (s *OSStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.abs(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *OSStore) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(s.abs(path))
	return err == nil
}
