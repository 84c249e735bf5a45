// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/scripttyper/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned by Get when the key has no payload.
var ErrNotFound = errors.New("store: key not found")

// Store wraps SQLite access for snapshots and run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Writers share a single connection.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			text_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			correct INTEGER NOT NULL,
			wrong INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			chars_awarded INTEGER NOT NULL,
			alarm INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Get returns the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM kv WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// Put stores payload under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// InsertRun appends a finished run to the history.
func (s *Store) InsertRun(ctx context.Context, res model.RunResult) (int64, error) {
	m := res.Metrics
	alarm := 0
	if m.Alarm {
		alarm = 1
	}
	out, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (text_id, started_at, ended_at, correct, wrong, duration_ms, chars_awarded, alarm)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.TextID,
		m.StartedAt.UTC().Format(time.RFC3339Nano),
		m.EndedAt.UTC().Format(time.RFC3339Nano),
		m.Correct,
		m.Wrong,
		m.ElapsedMs,
		res.CharsAwarded,
		alarm,
	)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

// ListRuns returns the last runs in insertion order. last <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunRecord, error) {
	limit := last
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text_id, ended_at, correct, wrong, duration_ms, chars_awarded, alarm FROM (
			SELECT * FROM runs ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var rec model.RunRecord
		var endedAt string
		var alarm int
		if err := rows.Scan(&rec.ID, &rec.TextID, &endedAt, &rec.Correct, &rec.Wrong, &rec.DurationMs, &rec.CharsAwarded, &alarm); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		rec.EndedAt = parsed
		rec.Alarm = alarm != 0
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
