package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const catalogFileName = "catalog.sqlite"

// CatalogEntry is one list the user has opened or saved.
type CatalogEntry struct {
	Path      string    `json:"path" yaml:"path"`
	Name      string    `json:"name" yaml:"name"`
	Entries   int       `json:"entries" yaml:"entries"`
	Completed int       `json:"completed" yaml:"completed"`
	SeenAt    time.Time `json:"seenAt" yaml:"seenAt"`
}

// Catalog indexes recently used lists by absolute path. It never stores list
// contents; the .todo file stays the source of truth.
type Catalog struct {
	db *sql.DB
}

func CatalogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, catalogFileName), nil
}

// OpenCatalog opens (creating if needed) the catalog database at path.
func OpenCatalog(ctx context.Context, path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("open catalog: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The CLI and TUI may both touch the catalog; WAL + busy_timeout keeps
	// that from failing with "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateCatalog(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func migrateCatalog(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lists (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			entries INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			seen_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lists_seen ON lists(seen_at_unixms DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Record inserts or refreshes e, keyed by its absolute path. A zero SeenAt
// means now.
func (c *Catalog) Record(ctx context.Context, e CatalogEntry) error {
	p, err := catalogKey(e.Path)
	if err != nil {
		return err
	}
	at := e.SeenAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO lists(path, name, entries, completed, seen_at_unixms)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			entries = excluded.entries,
			completed = excluded.completed,
			seen_at_unixms = excluded.seen_at_unixms;`,
		p, e.Name, e.Entries, e.Completed, at.UnixMilli())
	return err
}

// Recent returns up to limit lists, most recently seen first. limit <= 0
// returns all of them.
func (c *Catalog) Recent(ctx context.Context, limit int) ([]CatalogEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT path, name, entries, completed, seen_at_unixms
		FROM lists
		ORDER BY seen_at_unixms DESC, path ASC
		LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		var (
			e  CatalogEntry
			ms int64
		)
		if err := rows.Scan(&e.Path, &e.Name, &e.Entries, &e.Completed, &ms); err != nil {
			return nil, err
		}
		e.SeenAt = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget drops path from the catalog. Unknown paths are not an error.
func (c *Catalog) Forget(ctx context.Context, path string) error {
	p, err := catalogKey(path)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `DELETE FROM lists WHERE path = ?;`, p)
	return err
}

// Prune forgets lists whose file no longer exists and reports how many went.
func (c *Catalog) Prune(ctx context.Context) (int, error) {
	all, err := c.Recent(ctx, 0)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range all {
		if _, err := os.Stat(e.Path); err == nil || !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := c.Forget(ctx, e.Path); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func catalogKey(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("catalog: missing path")
	}
	return filepath.Abs(path)
}
