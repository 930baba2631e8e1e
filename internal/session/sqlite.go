// ABOUTME: SQLite-backed implementation of the session Store interface.
// ABOUTME: WAL mode, auto-created schema, JSON-encoded state column.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a session database at the given path.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "session-store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("session store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			agent TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetOrCreate returns the session, inserting an empty one if absent.
func (s *SQLiteStore) GetOrCreate(ctx context.Context, sessionID, userID string) (*Context, error) {
	sess, err := s.Get(ctx, sessionID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, state, created_at) VALUES (?, ?, '{}', ?)
		 ON CONFLICT(id) DO NOTHING`,
		sessionID, userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	s.logger.Debug("session created", "session_id", sessionID, "user_id", userID)
	return s.Get(ctx, sessionID)
}

// Get loads a session document with its full history.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*Context, error) {
	var sess Context
	var stateJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, state, created_at FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&sess.SessionID, &sess.UserID, &stateJSON, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if err := json.Unmarshal([]byte(stateJSON), &sess.State); err != nil {
		return nil, fmt.Errorf("decoding session state: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, agent, created_at FROM turns WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Role, &t.Content, &t.Agent, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		sess.History = append(sess.History, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return &sess, nil
}

// Update merges state into the stored session state. Existing keys are
// overwritten; last write wins.
func (s *SQLiteStore) Update(ctx context.Context, sessionID string, state map[string]string) error {
	if len(state) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stateJSON string
	err = tx.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = ?`, sessionID).Scan(&stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading session state: %w", err)
	}

	merged := make(map[string]string)
	if err := json.Unmarshal([]byte(stateJSON), &merged); err != nil {
		return fmt.Errorf("decoding session state: %w", err)
	}
	for k, v := range state {
		merged[k] = v
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET state = ? WHERE id = ?`, string(encoded), sessionID); err != nil {
		return fmt.Errorf("updating session state: %w", err)
	}

	return tx.Commit()
}

// AppendTurn appends one history entry to the session.
func (s *SQLiteStore) AppendTurn(ctx context.Context, sessionID string, turn Turn) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, role, content, agent, created_at)
		 SELECT id, ?, ?, ?, ? FROM sessions WHERE id = ?`,
		turn.Role, turn.Content, turn.Agent, turn.CreatedAt, sessionID,
	)
	if err != nil {
		return fmt.Errorf("appending turn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking append result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
