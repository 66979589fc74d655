// Package cache persists the registry's visible entries between sessions so
// startup can skip the descriptor scan. The cache is a pure performance
// optimization: corruption, schema drift, or stale directory state all
// degrade to a cache miss and a fresh scan, never to a different visible
// set. The on-disk format is an internal contract and may change between
// versions.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/log"
)

// schemaVersion invalidates the whole cache whenever the entry layout
// changes. Bump on any schema edit; old caches are dropped, not migrated.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dirs (
	path TEXT PRIMARY KEY,
	present INTEGER NOT NULL,
	mtime_unix INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	generic_name TEXT NOT NULL DEFAULT '',
	comment TEXT NOT NULL DEFAULT '',
	exec TEXT NOT NULL,
	try_exec TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '',
	terminal INTEGER NOT NULL DEFAULT 0,
	work_path TEXT NOT NULL DEFAULT '',
	source_priority INTEGER NOT NULL DEFAULT 0,
	source_file TEXT NOT NULL DEFAULT '',
	launch_count INTEGER NOT NULL DEFAULT 0
);
`

// Store is a sqlite-backed cache of the visible registry snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the cache file location:
// ${XDG_CACHE_HOME:-~/.cache}/fling/fling.db.
func DefaultPath() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving cache dir: %w", err)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "fling", "fling.db"), nil
}

// Open opens (creating if needed) the cache database at path. A cache whose
// schema version does not match is wiped and recreated in place.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := open(path)
	if err != nil {
		// Corrupt database file: drop it and start over. The cache never
		// carries state that cannot be rebuilt by a scan.
		log.Warn(log.CatCache, "cache unusable, recreating", "path", path, "reason", err)
		_ = os.Remove(path)
		db, err = open(path)
		if err != nil {
			return nil, err
		}
	}

	return &Store{db: db, path: path}, nil
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying cache schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var stored string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`,
			fmt.Sprint(schemaVersion))
		return err
	case err != nil:
		return fmt.Errorf("reading cache schema version: %w", err)
	case stored != fmt.Sprint(schemaVersion):
		return fmt.Errorf("cache schema version %s, want %d", stored, schemaVersion)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached visible entries and their launch counts when the
// cache is fresh against the current directory states. ok=false means cache
// miss (empty, stale, or unreadable) and the caller must scan.
func (s *Store) Load(current []desktop.DirState) (entries []desktop.Entry, counts map[string]int, ok bool) {
	if !s.fresh(current) {
		return nil, nil, false
	}

	rows, err := s.db.Query(`SELECT id, name, generic_name, comment, exec, try_exec, icon,
		keywords, terminal, work_path, source_priority, source_file, launch_count
		FROM entries`)
	if err != nil {
		log.Warn(log.CatCache, "cache read failed, treating as miss", "reason", err)
		return nil, nil, false
	}
	defer rows.Close()

	counts = make(map[string]int)
	for rows.Next() {
		var (
			e        desktop.Entry
			keywords string
			terminal int
			count    int
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.GenericName, &e.Comment, &e.Exec, &e.TryExec,
			&e.Icon, &keywords, &terminal, &e.Path, &e.SourcePriority, &e.SourceFile, &count); err != nil {
			log.Warn(log.CatCache, "corrupt cache row, treating as miss", "reason", err)
			return nil, nil, false
		}
		e.Keywords = splitJoined(keywords)
		e.Terminal = terminal != 0
		entries = append(entries, e)
		counts[e.ID] = count
	}
	if err := rows.Err(); err != nil {
		log.Warn(log.CatCache, "cache scan failed, treating as miss", "reason", err)
		return nil, nil, false
	}
	if len(entries) == 0 {
		return nil, nil, false
	}

	log.Info(log.CatCache, "cache hit", "entries", len(entries))
	return entries, counts, true
}

// fresh compares the stored directory states with the current ones. Any
// difference in the set of dirs, their existence, or their mtimes
// invalidates the cache wholesale.
func (s *Store) fresh(current []desktop.DirState) bool {
	rows, err := s.db.Query(`SELECT path, present, mtime_unix FROM dirs`)
	if err != nil {
		return false
	}
	defer rows.Close()

	stored := make(map[string]desktop.DirState)
	for rows.Next() {
		var (
			state desktop.DirState
			pres  int
			mtime int64
		)
		if err := rows.Scan(&state.Path, &pres, &mtime); err != nil {
			return false
		}
		state.Exists = pres != 0
		state.ModTime = time.Unix(mtime, 0)
		stored[state.Path] = state
	}
	if rows.Err() != nil || len(stored) != len(current) {
		return false
	}

	for _, cur := range current {
		prev, found := stored[cur.Path]
		if !found || prev.Exists != cur.Exists || prev.ModTime.Unix() != cur.ModTime.Unix() {
			log.Debug(log.CatCache, "cache stale", "dir", cur.Path)
			return false
		}
	}
	return true
}

// Save replaces the cached snapshot wholesale with the given visible
// entries, preserving nothing from the previous generation except what the
// caller already merged into counts.
func (s *Store) Save(entries []desktop.Entry, counts map[string]int, dirs []desktop.DirState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing cache entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM dirs`); err != nil {
		return fmt.Errorf("clearing cache dirs: %w", err)
	}

	for _, e := range entries {
		terminal := 0
		if e.Terminal {
			terminal = 1
		}
		if _, err := tx.Exec(`INSERT INTO entries
			(id, name, generic_name, comment, exec, try_exec, icon, keywords, terminal,
			 work_path, source_priority, source_file, launch_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.GenericName, e.Comment, e.Exec, e.TryExec, e.Icon,
			joinList(e.Keywords), terminal, e.Path, e.SourcePriority, e.SourceFile,
			counts[e.ID]); err != nil {
			return fmt.Errorf("inserting cache entry %s: %w", e.ID, err)
		}
	}

	for _, d := range dirs {
		present := 0
		if d.Exists {
			present = 1
		}
		if _, err := tx.Exec(`INSERT INTO dirs (path, present, mtime_unix) VALUES (?, ?, ?)`,
			d.Path, present, d.ModTime.Unix()); err != nil {
			return fmt.Errorf("inserting cache dir %s: %w", d.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache save: %w", err)
	}
	log.Info(log.CatCache, "cache saved", "entries", len(entries), "dirs", len(dirs))
	return nil
}

// LaunchCounts returns the stored usage counts regardless of cache
// freshness. A stale cache still remembers how often apps were launched, so
// a rescan carries the counts forward instead of resetting them.
func (s *Store) LaunchCounts() map[string]int {
	counts := make(map[string]int)
	rows, err := s.db.Query(`SELECT id, launch_count FROM entries WHERE launch_count > 0`)
	if err != nil {
		return counts
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return counts
		}
		counts[id] = count
	}
	return counts
}

// RecordLaunch increments the usage count for an entry. Missing IDs are a
// no-op; the count reappears on the next Save anyway.
func (s *Store) RecordLaunch(id string) error {
	_, err := s.db.Exec(`UPDATE entries SET launch_count = launch_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("recording launch for %s: %w", id, err)
	}
	return nil
}

// TopEntry is one row of the usage report produced by Top.
type TopEntry struct {
	ID          string
	Name        string
	Icon        string
	LaunchCount int
}

// Top returns up to n cached entries ordered by usage, most launched first,
// ties alphabetical. Used by `fling cache inspect`.
func (s *Store) Top(n int) ([]TopEntry, error) {
	rows, err := s.db.Query(`SELECT id, name, icon, launch_count FROM entries
		ORDER BY launch_count DESC, name COLLATE NOCASE ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying top entries: %w", err)
	}
	defer rows.Close()

	var top []TopEntry
	for rows.Next() {
		var e TopEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Icon, &e.LaunchCount); err != nil {
			return nil, fmt.Errorf("scanning top entry: %w", err)
		}
		top = append(top, e)
	}
	return top, rows.Err()
}

// Reset removes the cache file entirely. A missing file is not an error.
func Reset(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache: %w", err)
	}
	return nil
}

// joinList flattens a keyword list for storage; splitJoined reverses it.
// Keywords containing the separator survive via the same \; escape the
// descriptor format uses.
func joinList(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = strings.ReplaceAll(item, ";", "\\;")
	}
	return strings.Join(escaped, ";")
}

func splitJoined(s string) []string {
	if s == "" {
		return nil
	}
	var (
		items []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ';':
			cur.WriteByte(';')
			i++
		case s[i] == ';':
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	items = append(items, cur.String())
	return items
}
