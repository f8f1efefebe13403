package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps a whole project tree inside one sqlite database:
// a single files(path, content) table. Useful for carrying a board
// around as one file (`tablero --db board.db ...`) and for hermetic
// tests against the write-enabled interface.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dbPath and bootstraps
// the schema.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps concurrent fire-and-forget writes from tripping over
	// reads; the busy timeout covers the rest.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS files (
		path    TEXT PRIMARY KEY,
		content TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List() []string {
	rows, err := s.db.Query("SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if rows.Scan(&path) == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

func (s *SQLiteStore) Fetch(ctx context.Context, path string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM files WHERE path = ?", path).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("fetch %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	return content, nil
}

func (s *SQLiteStore) Write(ctx context.Context, path, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (path, content) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET content = excluded.content`,
		path, content)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MkdirAll is a no-op: directories are implicit in path keys.
func (s *SQLiteStore) MkdirAll(ctx context.Context, path string) error {
	return ctx.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete %s: %w", path, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Exists(ctx context.Context, path string) bool {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM files WHERE path = ? OR path LIKE ? LIMIT 1",
		path, path+"/%").Scan(&one)
	return err == nil
}
