package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapdraw/pkg/codec"
)

// SaveDrawing inserts a new drawing with its shape records and returns the
// new drawing id.
func (s *SQLiteStore) SaveDrawing(ctx context.Context, name string, records []codec.Record) (int64, error) {
	if s.db == nil {
		return 0, ErrStorageUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO drawings (name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert drawing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get drawing id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO shapes (drawing_id, position, shape_type, shape_data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare shape insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, id, i, rec.Type, rec.Data); err != nil {
			return 0, fmt.Errorf("failed to insert shape %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit drawing: %w", err)
	}

	s.logger.Debug("saved drawing",
		slog.String("name", name), slog.Int64("id", id), slog.Int("shapes", len(records)))
	return id, nil
}

// LoadDrawing returns the most recent drawing saved under name.
// Returns ErrNotFound if there is none.
func (s *SQLiteStore) LoadDrawing(ctx context.Context, name string) (*Drawing, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	d := &Drawing{Name: name}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM drawings WHERE name = ? ORDER BY id DESC LIMIT 1`,
		name,
	).Scan(&d.ID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}
	d.CreatedAt = time.UnixMilli(createdAt).UTC()

	rows, err := s.db.QueryContext(ctx,
		`SELECT shape_type, shape_data FROM shapes WHERE drawing_id = ? ORDER BY position, id`,
		d.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shapes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var rec codec.Record
		if err := rows.Scan(&rec.Type, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to scan shape: %w", err)
		}
		d.Records = append(d.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shapes: %w", err)
	}

	s.logger.Debug("loaded drawing",
		slog.String("name", name), slog.Int64("id", d.ID), slog.Int("shapes", len(d.Records)))
	return d, nil
}

// ListDrawingNames returns distinct drawing names, most recently saved first.
func (s *SQLiteStore) ListDrawingNames(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM drawings GROUP BY name ORDER BY MAX(created_at) DESC, MAX(id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan drawing name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListDrawings summarises the latest save of every named drawing,
// most recently saved first.
func (s *SQLiteStore) ListDrawings(ctx context.Context) ([]DrawingSummary, error) {
	if s.db == nil {
		return nil, ErrStorageUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.created_at,
		       (SELECT COUNT(*) FROM shapes sh WHERE sh.drawing_id = d.id),
		       (SELECT COUNT(*) FROM drawings o WHERE o.name = d.name)
		FROM drawings d
		WHERE d.id = (SELECT MAX(id) FROM drawings l WHERE l.name = d.name)
		ORDER BY d.created_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []DrawingSummary
	for rows.Next() {
		var ds DrawingSummary
		var createdAt int64
		if err := rows.Scan(&ds.ID, &ds.Name, &createdAt, &ds.ShapeCount, &ds.Saves); err != nil {
			return nil, fmt.Errorf("failed to scan drawing: %w", err)
		}
		ds.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, ds)
	}
	return out, rows.Err()
}
