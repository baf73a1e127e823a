package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quantmind-br/docmanifest-go/internal/domain"
)

// SQLiteFileName is the database file created inside the cache directory
const SQLiteFileName = "docmanifest.db"

// SQLiteCache is a cache implementation backed by a single SQLite table
type SQLiteCache struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteCache opens (or creates) the SQLite cache database
func NewSQLiteCache(opts Options) (*SQLiteCache, error) {
	dsn := "file::memory:?cache=shared"
	dbPath := ":memory:"

	if !opts.InMemory {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = filepath.Join(homeDir, ".docmanifest", "cache")
		}
		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		dbPath = filepath.Join(opts.Directory, SQLiteFileName)
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps the shared in-memory database alive
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expires_at INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteCache{db: db, dbPath: dbPath}, nil
}

// Get retrieves a value from cache
func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM entries WHERE key = ? AND (expires_at = 0 OR expires_at > ?)`,
		key, time.Now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value in cache. A zero ttl never expires.
func (c *SQLiteCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries (key, value, expires_at) VALUES (?, ?, ?)`,
		key, value, expiresAt,
	)
	return err
}

// Has checks if a key exists in cache
func (c *SQLiteCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)
	return err == nil
}

// Delete removes a key from cache
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key)
	return err
}

// Close releases cache resources
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Clear removes all entries from the cache
func (c *SQLiteCache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM entries`)
	return err
}

// Size returns the number of entries in the cache
func (c *SQLiteCache) Size() int64 {
	var count int64
	_ = c.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count)
	return count
}

// Stats returns cache statistics
func (c *SQLiteCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "sqlite",
		"entries": c.Size(),
		"path":    c.dbPath,
	}
}
