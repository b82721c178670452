package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/leapstack-labs/leapdraw/internal/cli/testutil"
	"github.com/leapstack-labs/leapdraw/internal/state"
	"github.com/leapstack-labs/leapdraw/pkg/codec"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		use  string
		args []string
		ok   bool
	}{
		{cmd: NewListCommand(), use: "list", args: nil, ok: true},
		{cmd: NewListCommand(), use: "list", args: []string{"extra"}, ok: false},
		{cmd: NewShowCommand(), use: "show <name>", args: []string{"sketch"}, ok: true},
		{cmd: NewShowCommand(), use: "show <name>", args: nil, ok: false},
		{cmd: NewShellCommand(), use: "shell", args: nil, ok: true},
		{cmd: NewShellCommand(), use: "shell", args: []string{"x"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			err := tt.cmd.Args(tt.cmd, tt.args)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "leapdraw v1.2.3")
}

func TestRenderShapes(t *testing.T) {
	rect := shape.NewRectangle(1, 2, 3, 4, shape.Black, 2)
	line := shape.NewLine(0, 0, 10, 10, shape.MustParseColor("#ff0000"), 1)
	shapes := []shape.Shape{rect, line}

	t.Run("markdown", func(t *testing.T) {
		tr := clitest.NewTestRendererMarkdown()
		require.NoError(t, renderShapes(tr.Renderer, shapes, line.ID()))

		out := tr.Output()
		clitest.AssertMarkdownTable(t, out, "#", "Type", "Geometry", "Color", "Stroke", "ID")
		clitest.AssertNoANSI(t, out)
		assert.Contains(t, out, "(1.00, 2.00) 3.00×4.00")
		assert.Contains(t, out, "(0.00, 0.00) → (10.00, 10.00)")
		assert.Contains(t, out, "0xff0000ff")
		assert.Contains(t, out, "2*")
	})

	t.Run("json", func(t *testing.T) {
		tr := clitest.NewTestRendererJSON()
		require.NoError(t, renderShapes(tr.Renderer, shapes, ""))

		var rows []shapeJSON
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, shapeJSON{Index: 1, ID: rect.ID(), Type: "Rectangle", Data: rect.CanonicalText()}, rows[0])
		assert.Equal(t, "Line", rows[1].Type)
	})

	t.Run("empty", func(t *testing.T) {
		tr := clitest.NewTestRendererMarkdown()
		require.NoError(t, renderShapes(tr.Renderer, nil, ""))
		assert.Equal(t, "(no shapes)\n", tr.Output())
	})

	t.Run("text swatch", func(t *testing.T) {
		tr := clitest.NewTestRenderer("text", false)
		require.NoError(t, renderShapes(tr.Renderer, shapes, ""))
		assert.Contains(t, tr.Output(), "■ 0xff0000ff")
	})
}

func TestRenderDrawings(t *testing.T) {
	saved := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	drawings := []state.DrawingSummary{
		{ID: 3, Name: "house", CreatedAt: saved, ShapeCount: 4, Saves: 2},
		{ID: 1, Name: "tree", CreatedAt: saved, ShapeCount: 1, Saves: 1},
	}

	t.Run("markdown", func(t *testing.T) {
		tr := clitest.NewTestRendererMarkdown()
		require.NoError(t, renderDrawings(tr.Renderer, drawings))

		out := tr.Output()
		assert.Contains(t, out, "# Drawings (2 total)")
		clitest.AssertMarkdownTable(t, out, "Name", "Shapes", "Saves", "Last Saved")
		assert.Contains(t, out, "house")
		assert.Contains(t, out, "tree")
	})

	t.Run("json", func(t *testing.T) {
		tr := clitest.NewTestRendererJSON()
		require.NoError(t, renderDrawings(tr.Renderer, drawings))

		var rows []drawingJSON
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "house", rows[0].Name)
		assert.Equal(t, 4, rows[0].ShapeCount)
		assert.True(t, saved.Equal(rows[0].SavedAt))
	})

	t.Run("empty", func(t *testing.T) {
		tr := clitest.NewTestRendererMarkdown()
		require.NoError(t, renderDrawings(tr.Renderer, nil))
		assert.Equal(t, "# Drawings (0 total)\n(no saved drawings)\n", tr.Output())
	})
}

func TestRenderLogs(t *testing.T) {
	logs := []state.LogEntry{
		{ID: 2, Timestamp: "2024-05-01 12:00:01", Level: "INFO", Message: "[ADD_SHAPE] Rectangle"},
	}

	tr := clitest.NewTestRendererJSON()
	require.NoError(t, renderLogs(tr.Renderer, logs))

	var rows []state.LogEntry
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &rows))
	assert.Equal(t, logs, rows)
}

func seedStore(t *testing.T, path string, name string, records []codec.Record) {
	t.Helper()
	store, err := state.OpenSQLiteStore(path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.SaveDrawing(context.Background(), name, records)
	require.NoError(t, err)
}

func executeWithConfig(t *testing.T, cmd *cobra.Command, storePath string, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()
	cfg := clitest.MemoryConfig()
	cfg.StorePath = storePath
	cfg.OutputFormat = "markdown"

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(clitest.ContextWithConfig(cfg))
	return out, errOut, err
}

func TestListAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawings.db")
	rect := shape.NewRectangle(0, 0, 5, 5, shape.Black, 2)
	seedStore(t, path, "sketch", []codec.Record{codec.Encode(rect), {Type: "Hexagon", Data: "Hexagon[x=1]"}})

	out, _, err := executeWithConfig(t, NewListCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# Drawings (1 total)")
	assert.Contains(t, out.String(), "sketch")

	out, errOut, err := executeWithConfig(t, NewShowCommand(), path, "sketch")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# sketch")
	assert.Contains(t, out.String(), "- **Shapes**: 1")
	assert.Contains(t, out.String(), "Rectangle")
	assert.Contains(t, errOut.String(), "1 stored shape record(s) could not be decoded")

	_, _, err = executeWithConfig(t, NewShowCommand(), path, "missing")
	require.ErrorIs(t, err, state.ErrNotFound)
}

func TestLogStoreNil(t *testing.T) {
	assert.Nil(t, logStore(nil))
}
