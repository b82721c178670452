// Package actionlog records editor actions through a swappable strategy.
//
// Recording is fire-and-forget: a Recorder never returns an error and a
// failing backend never reaches the caller.
package actionlog

import (
	"sync"
	"time"
)

// Level classifies an entry.
type Level string

// Entry levels.
const (
	LevelInfo   Level = "INFO"
	LevelAction Level = "ACTION"
	LevelError  Level = "ERROR"
)

// Entry is a single log record handed to a strategy.
type Entry struct {
	Time    time.Time
	Level   Level
	Action  string // set for LevelAction only
	Message string
}

// Text returns the flattened message, "ACTION - details" for actions.
func (e Entry) Text() string {
	if e.Level == LevelAction {
		return e.Action + " - " + e.Message
	}
	return e.Message
}

// Recorder receives action events from commands and the editor.
type Recorder interface {
	Record(action, details string)
	Info(msg string)
	Error(msg string)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(string, string) {}

// Info implements Recorder.
func (Nop) Info(string) {}

// Error implements Recorder.
func (Nop) Error(string) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}

// Logger is a Recorder that forwards entries to its current strategy.
type Logger struct {
	mu       sync.RWMutex
	strategy Strategy
	now      func() time.Time
}

// New creates a Logger. A nil strategy behaves as Nop.
func New(strategy Strategy) *Logger {
	return &Logger{strategy: strategy, now: time.Now}
}

// SetStrategy swaps the backend and records the change on the new one.
// The previous strategy is closed.
func (l *Logger) SetStrategy(strategy Strategy) {
	l.mu.Lock()
	old := l.strategy
	l.strategy = strategy
	l.mu.Unlock()

	if old != nil && old != strategy {
		_ = old.Close()
	}
	if strategy != nil {
		l.Info("logging strategy changed to: " + strategy.Name())
	}
}

// StrategyName returns the name of the current strategy.
func (l *Logger) StrategyName() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.strategy == nil {
		return "none"
	}
	return l.strategy.Name()
}

// Record implements Recorder.
func (l *Logger) Record(action, details string) {
	l.write(Entry{Level: LevelAction, Action: action, Message: details})
}

// Info implements Recorder.
func (l *Logger) Info(msg string) {
	l.write(Entry{Level: LevelInfo, Message: msg})
}

// Error implements Recorder.
func (l *Logger) Error(msg string) {
	l.write(Entry{Level: LevelError, Message: msg})
}

// Close closes the current strategy.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.strategy == nil {
		return nil
	}
	err := l.strategy.Close()
	l.strategy = nil
	return err
}

func (l *Logger) write(e Entry) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.strategy == nil {
		return
	}
	e.Time = l.now()
	l.strategy.Write(e)
}
