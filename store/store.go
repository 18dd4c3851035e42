// Package store provides the content-addressed compile cache: compiled
// programs in their wire encoding, keyed by the SHA-256 of the source
// that produced them, persisted in SQLite.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates the requested program is not in the cache.
var ErrNotFound = errors.New("program not found")

// Store is a SQLite-backed cache of compiled programs.
type Store struct {
	db   *sql.DB
	path string
}

// SourceHash returns the cache key for a source: the hex SHA-256 of its
// bytes.
func SourceHash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Open opens (creating if needed) the cache database at path. Parent
// directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		hash  TEXT PRIMARY KEY,
		chunk BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating programs table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Put stores the wire-encoded program under the given source hash,
// replacing any previous entry.
func (s *Store) Put(hash string, chunk []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO programs (hash, chunk) VALUES (?, ?)",
		hash, chunk,
	)
	if err != nil {
		return fmt.Errorf("storing program %s: %w", hash, err)
	}
	return nil
}

// Get returns the wire-encoded program for the given source hash, or
// ErrNotFound.
func (s *Store) Get(hash string) ([]byte, error) {
	var chunk []byte
	err := s.db.QueryRow(
		"SELECT chunk FROM programs WHERE hash = ?", hash,
	).Scan(&chunk)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", hash, err)
	}
	return chunk, nil
}

// Len returns the number of cached programs.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM programs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting programs: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
