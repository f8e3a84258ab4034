// Package history stores verification attempts in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dimasma0305/starklings/internal/log"

	// Import pure-Go SQLite driver for database/sql (no CGO required)
	_ "modernc.org/sqlite"
)

// Outcome of one verification attempt.
type Outcome string

// Attempt outcomes
const (
	OutcomeDone    Outcome = "done"
	OutcomePending Outcome = "pending"
	OutcomeFailed  Outcome = "failed"
)

// Attempt is one toolchain invocation for one exercise.
type Attempt struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Exercise  string        `json:"exercise"`
	Mode      string        `json:"mode"`
	Outcome   Outcome       `json:"outcome"`
	Duration  time.Duration `json:"duration"`
}

// DB wraps the attempt store. A disabled DB accepts every call and stores
// nothing.
type DB struct {
	db      *sql.DB
	mu      sync.RWMutex
	enabled bool
	path    string
}

// New creates a new database instance
func New(dbPath string, enabled bool) *DB {
	return &DB{
		path:    dbPath,
		enabled: enabled,
	}
}

// Init opens the database and creates the schema.
func (d *DB) Init() error {
	if !d.enabled {
		log.Debug("attempt history disabled")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL so that `starklings history` can read while a watch session writes
	dsn := d.path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			exercise TEXT NOT NULL,
			mode TEXT NOT NULL,
			outcome TEXT NOT NULL,
			duration INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_exercise ON attempts(exercise);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create attempts table: %w", err)
	}

	d.mu.Lock()
	d.db = db
	d.mu.Unlock()
	log.Debug("attempt history at %s", d.path)
	return nil
}

func (d *DB) conn() *sql.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db
}

// Record stores an attempt. Failures are logged, never returned: a broken
// history must not stop a verification pass.
func (d *DB) Record(a Attempt) {
	db := d.conn()
	if !d.enabled || db == nil {
		return
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	_, err := db.Exec(
		`INSERT INTO attempts (timestamp, exercise, mode, outcome, duration) VALUES (?, ?, ?, ?, ?)`,
		a.Timestamp.UnixNano(), a.Exercise, a.Mode, string(a.Outcome), int64(a.Duration),
	)
	if err != nil {
		log.Error("failed to record attempt for %s: %v", a.Exercise, err)
	}
}

// Recent returns the latest attempts, newest first. An empty exercise name
// selects every exercise.
func (d *DB) Recent(exercise string, limit int) ([]Attempt, error) {
	db := d.conn()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `SELECT id, timestamp, exercise, mode, outcome, duration FROM attempts`
	args := []interface{}{}
	if exercise != "" {
		query += ` WHERE exercise = ?`
		args = append(args, exercise)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var ts, dur int64
		var outcome string
		if err := rows.Scan(&a.ID, &ts, &a.Exercise, &a.Mode, &outcome, &dur); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.Timestamp = time.Unix(0, ts)
		a.Outcome = Outcome(outcome)
		a.Duration = time.Duration(dur)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Close closes the database connection
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		err := d.db.Close()
		d.db = nil
		return err
	}
	return nil
}

// IsEnabled returns whether the database is enabled
func (d *DB) IsEnabled() bool {
	return d.enabled
}
