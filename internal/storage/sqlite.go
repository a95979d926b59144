// Package storage provides the SQLite session journal: the seed, settings and
// velocity changes of every played game, enough to replay it exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// DefaultPath is where the CLI keeps the journal unless told otherwise.
const DefaultPath = "~/.snake/journal.db"

// Store manages the SQLite database connection for the session journal.
// It is safe for concurrent use by several game sessions.
type Store struct {
	db *sql.DB
}

// Session is one journaled game.
type Session struct {
	ID         int64
	Seed       int64
	Difficulty snake.Difficulty
	GridSize   int
	TargetFPS  int
	Player     string // SSH user, or empty for a local game
	Ticks      uint64 // steps taken; set when the session ends
	Ended      bool
	StartedAt  time.Time
	EndedAt    time.Time
}

// ReplayConfig builds the input for snake.Replay from the session settings.
func (s Session) ReplayConfig(inputs []snake.Input) snake.ReplayConfig {
	return snake.ReplayConfig{
		Seed:       s.Seed,
		Difficulty: s.Difficulty,
		TargetFPS:  s.TargetFPS,
		GridSize:   s.GridSize,
		Ticks:      s.Ticks,
		Inputs:     inputs,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; SSH sessions share this handle.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			difficulty REAL NOT NULL,
			grid_size INTEGER NOT NULL,
			target_fps INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			ended INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS inputs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			vx INTEGER NOT NULL,
			vy INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_inputs_session ON inputs(session_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records the settings of a new game.
// Returns the ID of the inserted record.
func (s *Store) StartSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (seed, difficulty, grid_size, target_fps, player)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.Seed, float64(sess.Difficulty), sess.GridSize, sess.TargetFPS, sess.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordInput appends a velocity change to a session.
func (s *Store) RecordInput(sessionID int64, in snake.Input) error {
	_, err := s.db.Exec(
		"INSERT INTO inputs (session_id, tick, vx, vy) VALUES (?, ?, ?, ?)",
		sessionID, int64(in.Tick), in.Velocity.X, in.Velocity.Y,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record input: %w", err)
	}
	return nil
}

// EndSession stores the final tick count and marks the session complete.
func (s *Store) EndSession(sessionID int64, ticks uint64) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET ticks = ?, ended = 1, ended_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		int64(ticks), sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: session %d does not exist", sessionID)
	}
	return nil
}

const sessionColumns = `id, seed, difficulty, grid_size, target_fps, player, ticks, ended, started_at, ended_at`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var difficulty float64
	var ticks int64
	var startedAt, endedAt any
	if err := row.Scan(
		&sess.ID,
		&sess.Seed,
		&difficulty,
		&sess.GridSize,
		&sess.TargetFPS,
		&sess.Player,
		&ticks,
		&sess.Ended,
		&startedAt,
		&endedAt,
	); err != nil {
		return Session{}, err
	}
	sess.Difficulty = snake.Difficulty(difficulty)
	sess.Ticks = uint64(ticks)
	sess.StartedAt = parseTime(startedAt)
	sess.EndedAt = parseTime(endedAt)
	return sess, nil
}

// Session retrieves a session by ID.
// Returns nil if it does not exist.
func (s *Store) Session(id int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Inputs retrieves the velocity changes of a session in recording order.
func (s *Store) Inputs(sessionID int64) ([]snake.Input, error) {
	rows, err := s.db.Query(
		`SELECT tick, vx, vy
		 FROM inputs
		 WHERE session_id = ?
		 ORDER BY tick, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []snake.Input
	for rows.Next() {
		var tick int64
		var in snake.Input
		if err := rows.Scan(&tick, &in.Velocity.X, &in.Velocity.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		in.Tick = uint64(tick)
		inputs = append(inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return inputs, nil
}

// DeleteSession removes a session and its inputs.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM inputs WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return tx.Commit()
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
