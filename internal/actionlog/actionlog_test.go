package actionlog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStrategy collects entries for assertions.
type memoryStrategy struct {
	entries []Entry
	closed  bool
}

func (m *memoryStrategy) Write(e Entry) { m.entries = append(m.entries, e) }
func (m *memoryStrategy) Name() string  { return "memory" }
func (m *memoryStrategy) Close() error {
	m.closed = true
	return nil
}

type fakeLogStore struct {
	err  error
	rows []string
}

func (f *fakeLogStore) InsertLog(_ context.Context, _ time.Time, level, message string) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, level+"|"+message)
	return nil
}

func TestLogger_Record(t *testing.T) {
	mem := &memoryStrategy{}
	l := New(mem)

	l.Record("ADD_SHAPE", "Circle[x=0.00]")
	l.Info("hello")
	l.Error("boom")

	require.Len(t, mem.entries, 3)
	assert.Equal(t, LevelAction, mem.entries[0].Level)
	assert.Equal(t, "ADD_SHAPE - Circle[x=0.00]", mem.entries[0].Text())
	assert.False(t, mem.entries[0].Time.IsZero())
	assert.Equal(t, LevelInfo, mem.entries[1].Level)
	assert.Equal(t, "boom", mem.entries[2].Text())
}

func TestLogger_NilStrategyIsNoop(t *testing.T) {
	l := New(nil)
	assert.NotPanics(t, func() {
		l.Record("X", "y")
		l.Info("z")
	})
	assert.Equal(t, "none", l.StrategyName())
	assert.NoError(t, l.Close())
}

func TestLogger_SetStrategy(t *testing.T) {
	first := &memoryStrategy{}
	second := &memoryStrategy{}
	l := New(first)

	l.SetStrategy(second)

	assert.True(t, first.closed, "previous strategy should be closed")
	assert.Equal(t, "memory", l.StrategyName())
	require.Len(t, second.entries, 1)
	assert.Contains(t, second.entries[0].Message, "logging strategy changed to: memory")
}

func TestConsoleStrategy(t *testing.T) {
	var buf bytes.Buffer
	l := New(NewConsoleStrategy(&buf))

	l.Record("UNDO", "Add Rectangle")

	out := buf.String()
	assert.Contains(t, out, "action=UNDO")
	assert.Contains(t, out, "Add Rectangle")
}

func TestFileStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")

	s, err := NewFileStrategy(path)
	require.NoError(t, err)
	l := New(s)
	l.Record("SAVE_DRAWING", "house")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action":"SAVE_DRAWING"`)
	assert.Contains(t, string(data), `"msg":"house"`)
	assert.Contains(t, s.Name(), path)
}

func TestFileStrategy_BadPath(t *testing.T) {
	_, err := NewFileStrategy(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

func TestDatabaseStrategy(t *testing.T) {
	t.Run("writes to store", func(t *testing.T) {
		store := &fakeLogStore{}
		l := New(NewDatabaseStrategy(store, nil))

		l.Record("CLEAR_DRAWING", "drawing cleared")

		assert.Equal(t, []string{"ACTION|CLEAR_DRAWING - drawing cleared"}, store.rows)
	})

	t.Run("falls back when store fails", func(t *testing.T) {
		store := &fakeLogStore{err: errors.New("database is locked")}
		fallback := &memoryStrategy{}
		l := New(NewDatabaseStrategy(store, fallback))

		l.Error("disk full")

		require.Len(t, fallback.entries, 1)
		assert.Equal(t, "disk full", fallback.entries[0].Message)
	})
}

func TestNewStrategy(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name      string
		opts      Options
		wantName  string
		wantErr   bool
		errSubstr string
	}{
		{name: "console", wantName: "Console Logging"},
		{name: "", wantName: "Console Logging"},
		{name: "CONSOLE", wantName: "Console Logging"},
		{name: "file", opts: Options{FilePath: filepath.Join(t.TempDir(), "a.log")}, wantName: "File Logging"},
		{name: "database", opts: Options{Store: &fakeLogStore{}}, wantName: "Database Logging"},
		{name: "database", wantErr: true, errSubstr: "requires a store"},
		{name: "syslog", wantErr: true, errSubstr: "unknown logging strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Console = &buf
			s, err := NewStrategy(tt.name, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			assert.True(t, strings.HasPrefix(s.Name(), tt.wantName), "got %q", s.Name())
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, Nop{}, OrNop(nil))

	l := New(nil)
	assert.Same(t, l, OrNop(l))
}
