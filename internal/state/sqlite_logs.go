package state

import (
	"context"
	"fmt"
	"time"
)

// logTimeFormat is the timestamp layout stored in the logs table.
const logTimeFormat = "2006-01-02 15:04:05"

// InsertLog appends an action log row.
func (s *SQLiteStore) InsertLog(ctx context.Context, ts time.Time, level, message string) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO logs (timestamp, level, message) VALUES (?, ?, ?)`,
		ts.Format(logTimeFormat), level, message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// RecentLogs returns up to limit log rows, newest first.
func (s *SQLiteStore) RecentLogs(ctx context.Context, limit int) ([]LogEntry, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, level, message FROM logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Level, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
