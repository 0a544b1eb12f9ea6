// Package memory implements the persistent command store for memtrail.
//
// It uses SQLite to persist single-user command entries (free instruction
// text plus tags) in one append-only table. Rows are immutable once
// written: there is no update or delete operation. Every query fully
// materializes its result into detached Command values inside the
// transaction scope, so no caller ever touches store-bound state after
// the scope exits.
package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Command is one persisted user instruction plus metadata. Instances
// returned by the store are snapshots — plain values with no connection
// to the underlying session.
type Command struct {
	ID        int64    `json:"id"`
	Text      string   `json:"command_text"`
	Tags      []string `json:"tags"`
	Timestamp string   `json:"timestamp"`
}

// RecentContext is the recency view served by both facade boundaries.
type RecentContext struct {
	RecentCommands []string  `json:"recent_commands"`
	Items          []Command `json:"items"`
}

// NewRecentContext builds the recency view from a newest-first snapshot.
func NewRecentContext(cmds []Command) RecentContext {
	texts := make([]string, len(cmds))
	for i, c := range cmds {
		texts[i] = c.Text
	}
	return RecentContext{RecentCommands: texts, Items: cmds}
}

// Config holds command store configuration.
type Config struct {
	// Path is the SQLite database file. The parent directory is created
	// on open if needed.
	Path string
	// DefaultRecent is the limit applied when Recent is called with a
	// non-positive limit.
	DefaultRecent int
	// MaxSearchResults caps Search output.
	MaxSearchResults int
}

// DefaultConfig returns the default configuration: a database under
// ~/.memtrail, overridable via the MEMTRAIL_DB environment variable.
func DefaultConfig() Config {
	path := os.Getenv("MEMTRAIL_DB")
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".memtrail", "memory.db")
	}
	return Config{
		Path:             path,
		DefaultRecent:    10,
		MaxSearchResults: 10,
	}
}

// Store is the persistent command store backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and ensures the schema.
func New(cfg Config) (*Store, error) {
	if cfg.DefaultRecent <= 0 {
		cfg.DefaultRecent = 10
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 10
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("memory: create data dir: %w", err)
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS commands (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			command_text TEXT    NOT NULL,
			tags         TEXT    NOT NULL DEFAULT '',
			timestamp    TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// withTx runs fn inside a transaction: commit if fn returns nil, roll
// back and return the error otherwise. The deferred rollback releases
// the transaction on every exit path, including panics.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("memory: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("memory: commit: %w", err)
	}
	return nil
}

// Add persists one command with a store-assigned UTC timestamp
// (millisecond precision). Text validation belongs to the facade; this
// layer trusts its caller.
func (s *Store) Add(text string, tags []string) error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO commands (command_text, tags, timestamp)
			 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))`,
			text, JoinTags(tags),
		)
		if err != nil {
			return fmt.Errorf("memory: insert command: %w", err)
		}
		return nil
	})
}

// List returns all commands newest first. Timestamps may collide at
// millisecond resolution, so id descending breaks ties.
func (s *Store) List() ([]Command, error) {
	return s.selectCommands(
		`SELECT id, command_text, tags, timestamp FROM commands
		 ORDER BY timestamp DESC, id DESC`,
	)
}

// Recent returns the newest commands up to limit. A non-positive limit
// falls back to the configured default; a limit beyond the row count
// returns everything.
func (s *Store) Recent(limit int) ([]Command, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultRecent
	}
	return s.selectCommands(
		`SELECT id, command_text, tags, timestamp FROM commands
		 ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
}

// Search returns commands whose text or tags contain the query,
// case-insensitive, newest first, capped at MaxSearchResults.
func (s *Store) Search(query string, limit int) ([]Command, error) {
	if limit <= 0 || limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}
	pattern := "%" + strings.ToLower(query) + "%"
	return s.selectCommands(
		`SELECT id, command_text, tags, timestamp FROM commands
		 WHERE lower(command_text) LIKE ? OR lower(tags) LIKE ?
		 ORDER BY timestamp DESC, id DESC LIMIT ?`,
		pattern, pattern, limit,
	)
}

// Count returns the number of stored commands.
func (s *Store) Count() (int, error) {
	var n int
	err := s.withTx(func(tx *sql.Tx) error {
		if err := tx.QueryRow(`SELECT COUNT(*) FROM commands`).Scan(&n); err != nil {
			return fmt.Errorf("memory: count commands: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// selectCommands scans query results into detached Command values before
// the transaction closes (the snapshot invariant).
func (s *Store) selectCommands(query string, args ...any) ([]Command, error) {
	out := []Command{}
	err := s.withTx(func(tx *sql.Tx) error {
		rows, err := tx.Query(query, args...)
		if err != nil {
			return fmt.Errorf("memory: query commands: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var c Command
			var tags string
			if err := rows.Scan(&c.ID, &c.Text, &tags, &c.Timestamp); err != nil {
				return fmt.Errorf("memory: scan command: %w", err)
			}
			c.Tags = SplitTags(tags)
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
