// Package state persists named drawings and action logs in SQLite.
//
// A drawing is stored as an ordered list of shape records (variant name plus
// canonical text). Every save inserts a new drawing row; loading by name
// returns the most recent save.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/leapdraw/pkg/codec"
)

// ErrStorageUnavailable is returned when the database cannot be reached.
// Callers treat it as recoverable and keep working in memory.
var ErrStorageUnavailable = errors.New("drawing store unavailable")

// ErrNotFound is returned when no drawing has the requested name.
var ErrNotFound = errors.New("drawing not found")

// Store is the persistence surface used by the editor.
type Store interface {
	SaveDrawing(ctx context.Context, name string, records []codec.Record) (int64, error)
	LoadDrawing(ctx context.Context, name string) (*Drawing, error)
	ListDrawingNames(ctx context.Context) ([]string, error)
	ListDrawings(ctx context.Context) ([]DrawingSummary, error)
	InsertLog(ctx context.Context, ts time.Time, level, message string) error
	RecentLogs(ctx context.Context, limit int) ([]LogEntry, error)
	Close() error
}

// Drawing is a persisted drawing with its shape records in z-order.
type Drawing struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Records   []codec.Record
}

// DrawingSummary describes the latest save of a named drawing.
type DrawingSummary struct {
	ID         int64
	Name       string
	CreatedAt  time.Time
	ShapeCount int
	Saves      int
}

// LogEntry is a row of the logs table.
type LogEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

var _ Store = (*SQLiteStore)(nil)
