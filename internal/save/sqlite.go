package save

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// storageKey is the fixed identifier for the single progress record.
const storageKey = "progress"

// Store is the SQLite-backed persistence adapter. A Store whose medium
// failed to open still works: every operation silently degrades per the
// package contract. Construct via Open.
type Store struct {
	db     *sql.DB // nil when the medium is unavailable
	logger *zap.Logger
}

// Open creates the data directory, opens the database, and runs the
// migration. It never fails: any problem yields a disabled adapter and a
// logged warning, because losing persistence must not take down a session.
func Open(dataDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	disabled := func(stage string, err error) *Store {
		logger.Warn("save: storage unavailable, progress will not persist",
			zap.String("stage", stage), zap.Error(err))
		return &Store{logger: logger}
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return disabled("create data dir", err)
	}

	db, err := openDB("sqlite", filepath.Join(dataDir, "progress.db"))
	if err != nil {
		return disabled("open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return disabled("pragma", err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS progress (
			key        TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			written_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return disabled("migration", err)
	}

	return &Store{db: db, logger: logger}
}

// Available reports whether the storage medium opened successfully.
func (s *Store) Available() bool {
	return s.db != nil
}

// Save serializes the snapshot and writes it under the fixed key,
// replacing any previous record. Failures are logged and swallowed.
func (s *Store) Save(snap Snapshot) {
	if s.db == nil {
		return
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("save: marshal snapshot", zap.Error(err))
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO progress (key, payload, written_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			written_at = excluded.written_at`,
		storageKey, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		s.logger.Warn("save: write snapshot", zap.Error(err))
	}
}

// Load returns the last written snapshot. Absence, an unavailable medium,
// and read failures all report StateAbsent; a payload that exists but does
// not decode reports StateCorrupt. Load never returns an error.
func (s *Store) Load() LoadResult {
	if s.db == nil {
		return LoadResult{State: StateAbsent}
	}

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM progress WHERE key = ?`, storageKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return LoadResult{State: StateAbsent}
	}
	if err != nil {
		s.logger.Warn("save: read snapshot", zap.Error(err))
		return LoadResult{State: StateAbsent}
	}

	res := decodeSnapshot([]byte(payload))
	if res.State == StateCorrupt {
		s.logger.Warn("save: stored snapshot is unreadable")
	}
	return res
}

// Clear deletes the persisted snapshot. No-op when nothing is stored or
// the medium is unavailable.
func (s *Store) Clear() {
	if s.db == nil {
		return
	}
	if _, err := s.db.Exec(`DELETE FROM progress WHERE key = ?`, storageKey); err != nil {
		s.logger.Warn("save: clear snapshot", zap.Error(err))
	}
}

// Close closes the underlying database. Safe on a disabled adapter.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
