// Package store handles SQLite persistence of local attempt history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itsmenuma/typing-tutor/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for attempt history. The leaderboard itself
// is owned by the external backend; this history only feeds the local
// summary and learning curves.
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
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			username TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL,
			case_sensitive INTEGER NOT NULL,
			cpm INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			mistakes INTEGER NOT NULL,
			typed_chars INTEGER NOT NULL,
			target_chars INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ended_at ON attempts(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_username ON attempts(username);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a submitted attempt.
func (s *Store) InsertAttempt(ctx context.Context, rec model.AttemptRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (started_at, ended_at, username, difficulty, mode, case_sensitive,
			cpm, wpm, accuracy, mistakes, typed_chars, target_chars, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Username,
		string(rec.Difficulty),
		string(rec.Mode),
		boolToInt(rec.CaseSensitive),
		rec.CPM,
		rec.WPM,
		rec.Accuracy,
		rec.Mistakes,
		rec.TypedChars,
		rec.TargetChars,
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts matching the filter, oldest first.
func (s *Store) ListAttempts(ctx context.Context, filter model.HistoryFilter) ([]model.AttemptRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Username != "" {
		clauses = append(clauses, "username = ?")
		args = append(args, filter.Username)
	}
	if filter.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, string(filter.Difficulty))
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT started_at, ended_at, username, difficulty, mode, case_sensitive,
			cpm, wpm, accuracy, mistakes, typed_chars, target_chars, duration_ms
		FROM attempts
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptRecord
	for rows.Next() {
		var rec model.AttemptRecord
		var startedAt, endedAt, difficulty, mode string
		var caseSensitive int
		if err := rows.Scan(&startedAt, &endedAt, &rec.Username, &difficulty, &mode, &caseSensitive,
			&rec.CPM, &rec.WPM, &rec.Accuracy, &rec.Mistakes, &rec.TypedChars, &rec.TargetChars, &rec.DurationMs); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Difficulty = model.Difficulty(difficulty)
		rec.Mode = model.Mode(mode)
		rec.CaseSensitive = caseSensitive != 0
		attempts = append(attempts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(attempts) > filter.Last {
		attempts = attempts[len(attempts)-filter.Last:]
	}
	return attempts, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
