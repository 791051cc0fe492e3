package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// A corrupted database file is set aside and replaced with an empty one
// instead of failing the open, so bad local data never bricks the app.
func New(dbPath string) (*Store, error) {
	s, err := open(dbPath)
	if err == nil || dbPath == ":memory:" || !isCorrupt(err) {
		return s, err
	}
	if err := quarantine(dbPath); err != nil {
		return nil, err
	}
	return open(dbPath)
}

func open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// isCorrupt reports whether err is SQLite telling us the file on disk is
// not a usable database (SQLITE_NOTADB or SQLITE_CORRUPT).
func isCorrupt(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "file is not a database") ||
		strings.Contains(msg, "database disk image is malformed")
}

// quarantine moves a corrupt database out of the way so a fresh one can be
// created at the same path. Stale WAL sidecars go with it.
func quarantine(dbPath string) error {
	if err := os.Rename(dbPath, dbPath+".corrupt"); err != nil {
		return fmt.Errorf("set aside corrupt database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(dbPath + suffix)
	}
	return nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS labels (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL,
		text        TEXT NOT NULL,
		top_offset  REAL NOT NULL DEFAULT 0,
		left_offset REAL NOT NULL DEFAULT 0,
		color       TEXT NOT NULL DEFAULT '#333333',
		background  TEXT NOT NULL DEFAULT '#fffbe6',
		font_size   TEXT NOT NULL DEFAULT '13',
		font_weight TEXT NOT NULL DEFAULT 'normal',
		font_style  TEXT NOT NULL DEFAULT 'normal',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_labels_date ON labels(date);

	CREATE TABLE IF NOT EXISTS templates (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		text        TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '#333333',
		background  TEXT NOT NULL DEFAULT '#fffbe6',
		font_size   TEXT NOT NULL DEFAULT '13',
		font_weight TEXT NOT NULL DEFAULT 'normal',
		font_style  TEXT NOT NULL DEFAULT 'normal',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('current_id',          ''),
		('style_color',         '#333333'),
		('style_background',    '#fffbe6'),
		('style_font_size',     '13'),
		('style_font_weight',   'normal'),
		('style_font_style',    'normal');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/daymark/daymark.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "daymark", "daymark.db"), nil
}
