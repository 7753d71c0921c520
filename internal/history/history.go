// Package history journals each run of the reminder in SQLite. The journal
// is write-mostly bookkeeping; a recording failure never fails the run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run modes recorded in the journal.
const (
	ModeSend   = "send"
	ModeDryRun = "dry-run"
)

// Delivery statuses.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Delivery is one recorded run.
type Delivery struct {
	ID        int64
	Account   string
	Recipient string
	Subject   string
	Mode      string
	Status    string
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates (or opens) the journal at dbPath and applies migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one delivery row.
func (s *Store) Record(ctx context.Context, d Delivery) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deliveries (account, recipient, subject, mode, status, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Account, d.Recipient, d.Subject, d.Mode, d.Status, d.Error, d.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	return nil
}

// Recent returns the latest n deliveries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Delivery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account, recipient, subject, mode, status, error, duration_ms, created_at
		 FROM deliveries ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var d Delivery
		var durationMs int64
		if err := rows.Scan(&d.ID, &d.Account, &d.Recipient, &d.Subject, &d.Mode,
			&d.Status, &d.Error, &durationMs, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, d)
	}
	return out, rows.Err()
}
