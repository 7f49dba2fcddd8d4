// Package cache stores compilation results in a SQLite database so that
// unchanged sources are not recompiled. Entries are keyed by a hash of the
// source text and the settings that affect generated code.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sampl-lang/sampl/internal/config"
)

// Entry is one cached build.
type Entry struct {
	Key       string
	BuildID   string
	Source    string
	Canonical string
	Kotlin    string
	CreatedAt time.Time
}

// Store is an open cache database.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `CREATE TABLE IF NOT EXISTS builds (
	key        TEXT PRIMARY KEY,
	build_id   TEXT NOT NULL,
	source     TEXT NOT NULL,
	canonical  TEXT NOT NULL,
	kotlin     TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// Open opens the cache at path, creating the file and its directory when
// they do not exist.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file of the store.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the entry stored under key. The boolean is false when
// there is none.
func (s *Store) Lookup(ctx context.Context, key string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, build_id, source, canonical, kotlin, created_at FROM builds WHERE key = ?`, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return e, true, nil
}

// Store records e under e.Key, replacing any previous entry. It assigns a
// fresh build id and creation time and returns the stored entry.
func (s *Store) Store(ctx context.Context, e Entry) (Entry, error) {
	if e.Key == "" {
		return Entry{}, errors.New("cache entry has no key")
	}
	e.BuildID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO builds (key, build_id, source, canonical, kotlin, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Key, e.BuildID, e.Source, e.Canonical, e.Kotlin, e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("writing cache entry: %w", err)
	}
	return e, nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, build_id, source, canonical, kotlin, created_at FROM builds ORDER BY created_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("listing cache: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry and reports how many there were.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM builds`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var created int64
	if err := row.Scan(&e.Key, &e.BuildID, &e.Source, &e.Canonical, &e.Kotlin, &created); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.Unix(0, created).UTC()
	return e, nil
}

// Key identifies a compilation of source under cfg.
func Key(source string, cfg *config.Config) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte("\x00"))
	h.Write([]byte(cfg.Fingerprint()))
	h.Write([]byte("\x00"))
	h.Write([]byte(codegenVersion))
	return hex.EncodeToString(h.Sum(nil))[:32]
}

// codegenVersion is bumped when the generated code format changes, so
// that entries written by older versions are not reused.
const codegenVersion = "v1"
