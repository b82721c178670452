package actionlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Strategy is a logging backend.
type Strategy interface {
	Write(e Entry)
	Name() string
	Close() error
}

// Strategy names accepted by NewStrategy.
const (
	StrategyConsole  = "console"
	StrategyFile     = "file"
	StrategyDatabase = "database"
)

// DefaultLogFile is used by the file strategy when no path is configured.
const DefaultLogFile = "leapdraw.log"

// LogStore is the persistence surface used by the database strategy.
type LogStore interface {
	InsertLog(ctx context.Context, ts time.Time, level, message string) error
}

// Options configures NewStrategy.
type Options struct {
	// Console receives console output (default os.Stderr).
	Console io.Writer
	// FilePath is the file strategy target (default DefaultLogFile).
	FilePath string
	// Store backs the database strategy.
	Store LogStore
}

// NewStrategy builds a strategy by name.
func NewStrategy(name string, opts Options) (Strategy, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyConsole, "":
		return NewConsoleStrategy(console), nil
	case StrategyFile:
		path := opts.FilePath
		if path == "" {
			path = DefaultLogFile
		}
		return NewFileStrategy(path)
	case StrategyDatabase:
		if opts.Store == nil {
			return nil, fmt.Errorf("database logging requires a store")
		}
		return NewDatabaseStrategy(opts.Store, NewConsoleStrategy(console)), nil
	default:
		return nil, fmt.Errorf("unknown logging strategy %q (expected console, file or database)", name)
	}
}

// SlogStrategy writes entries through a slog handler.
type SlogStrategy struct {
	name   string
	logger *slog.Logger
	closer io.Closer
}

// NewConsoleStrategy writes human-readable lines to w.
func NewConsoleStrategy(w io.Writer) *SlogStrategy {
	return &SlogStrategy{
		name:   "Console Logging",
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

// NewFileStrategy appends JSON lines to the file at path.
func NewFileStrategy(path string) (*SlogStrategy, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &SlogStrategy{
		name:   fmt.Sprintf("File Logging (%s)", path),
		logger: slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})),
		closer: f,
	}, nil
}

// Name implements Strategy.
func (s *SlogStrategy) Name() string { return s.name }

// Write implements Strategy.
func (s *SlogStrategy) Write(e Entry) {
	attrs := []slog.Attr{slog.Time("at", e.Time)}
	if e.Level == LevelAction {
		attrs = append(attrs, slog.String("action", e.Action))
	}
	s.logger.LogAttrs(context.Background(), slogLevel(e.Level), e.Message, attrs...)
}

// Close implements Strategy.
func (s *SlogStrategy) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func slogLevel(l Level) slog.Level {
	if l == LevelError {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DatabaseStrategy stores entries in the logs table. When the store
// rejects a write the entry goes to the fallback strategy instead.
type DatabaseStrategy struct {
	store    LogStore
	fallback Strategy
}

// NewDatabaseStrategy creates a database strategy with a fallback.
func NewDatabaseStrategy(store LogStore, fallback Strategy) *DatabaseStrategy {
	return &DatabaseStrategy{store: store, fallback: fallback}
}

// Name implements Strategy.
func (d *DatabaseStrategy) Name() string { return "Database Logging" }

// Write implements Strategy.
func (d *DatabaseStrategy) Write(e Entry) {
	err := d.store.InsertLog(context.Background(), e.Time, string(e.Level), e.Text())
	if err != nil && d.fallback != nil {
		d.fallback.Write(e)
	}
}

// Close implements Strategy. The store is owned by the caller.
func (d *DatabaseStrategy) Close() error {
	if d.fallback != nil {
		return d.fallback.Close()
	}
	return nil
}
