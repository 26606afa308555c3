// Package index implements the per-album face index: a single SQLite file
// inside the album directory mapping each processed image to the face
// embeddings found in it.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the well-known name of the index file inside an album root.
// Its existence is the sole signal that the album has been initialized.
const FileName = "index.sqlite3"

var (
	// ErrNotFound reports that no index file exists where one was required.
	ErrNotFound = errors.New("index does not exist")

	// ErrAlreadyExists reports an attempt to initialize over an existing index.
	ErrAlreadyExists = errors.New("index already exists")

	// ErrDuplicateEntry reports an attempt to record a file that already has
	// an entry. Callers are expected to pre-filter with ListFilenames.
	ErrDuplicateEntry = errors.New("file already indexed")
)

// Record pairs an indexed filename with one face embedding from that file.
type Record struct {
	Filename string
	Vector   []float32
}

// Stats summarizes the index contents.
type Stats struct {
	Files      int
	Embeddings int
}

// Store is the durable album index. Entries are append-only: files removed
// from the album are never pruned (delete the index and resync to rebuild),
// and a single process is assumed to own the file at a time.
type Store struct {
	path  string
	db    *sql.DB
	codec VectorCodec
}

// Path returns the index file location for an album root.
func Path(albumRoot string) string {
	return filepath.Join(albumRoot, FileName)
}

// Exists reports whether an index file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open attaches to an existing index. It never creates one: a missing file
// reports ErrNotFound so the caller can decide to Initialize. A nil codec
// selects Float32Codec.
func Open(path string, codec VectorCodec) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at '%s'", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking index file: %w", err)
	}
	return open(path, codec)
}

// Initialize creates a new, empty index at path. ErrAlreadyExists if an
// index file is already present.
func Initialize(path string, codec VectorCodec) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w at '%s'", ErrAlreadyExists, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking index file: %w", err)
	}

	s, err := open(path, codec)
	if err != nil {
		return nil, err
	}
	if err := s.createSchema(); err != nil {
		s.db.Close()
		os.Remove(path)
		return nil, err
	}
	return s, nil
}

// Delete removes the index file entirely. ErrNotFound if no index exists,
// so accidental deletes of the wrong path surface instead of no-oping.
func Delete(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w at '%s'", ErrNotFound, path)
		}
		return fmt.Errorf("checking index file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}
	return nil
}

func open(path string, codec VectorCodec) (*Store, error) {
	if codec == nil {
		codec = Float32Codec{}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &Store{path: path, db: db, codec: codec}, nil
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS files (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS embeddings (
			filename TEXT NOT NULL REFERENCES files(name),
			vector BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_embeddings_filename ON embeddings(filename);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordEntry appends one file entry plus one embedding row per vector, in
// a single transaction: a crash mid-write leaves either the whole record or
// nothing. Zero vectors is valid — the file is still recorded so it is not
// reprocessed on the next sync.
func (s *Store) RecordEntry(filename string, vectors [][]float32) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM files WHERE name = ?)", filename).Scan(&exists); err != nil {
		return fmt.Errorf("checking for existing entry: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, filename)
	}

	if _, err := tx.Exec("INSERT INTO files(name) VALUES (?)", filename); err != nil {
		return fmt.Errorf("recording file entry: %w", err)
	}
	for _, vec := range vectors {
		if _, err := tx.Exec("INSERT INTO embeddings(filename, vector) VALUES (?, ?)",
			filename, s.codec.Encode(vec)); err != nil {
			return fmt.Errorf("recording embedding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry: %w", err)
	}
	return nil
}

// ListFilenames returns the set of files already indexed.
func (s *Store) ListFilenames() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT name FROM files")
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning filename: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// ForEachEmbedding streams every stored (filename, vector) pair in storage
// order, stopping at the first callback error. The table is never
// materialized in full.
func (s *Store) ForEachEmbedding(fn func(Record) error) error {
	rows, err := s.db.Query("SELECT filename, vector FROM embeddings")
	if err != nil {
		return fmt.Errorf("listing embeddings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			blob []byte
		)
		if err := rows.Scan(&name, &blob); err != nil {
			return fmt.Errorf("scanning embedding: %w", err)
		}
		vec, err := s.codec.Decode(blob)
		if err != nil {
			return fmt.Errorf("decoding embedding for %s: %w", name, err)
		}
		if err := fn(Record{Filename: name, Vector: vec}); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Stats returns row counts for both tables.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&st.Files); err != nil {
		return st, fmt.Errorf("counting files: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM embeddings").Scan(&st.Embeddings); err != nil {
		return st, fmt.Errorf("counting embeddings: %w", err)
	}
	return st, nil
}
