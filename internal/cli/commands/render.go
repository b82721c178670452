package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapdraw/internal/cli/output"
	"github.com/leapstack-labs/leapdraw/internal/state"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// shapeJSON is the JSON form of a shape row.
type shapeJSON struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Type  string `json:"type"`
	Data  string `json:"data"`
}

type drawingJSON struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SavedAt    time.Time `json:"saved_at"`
	ShapeCount int       `json:"shape_count"`
	Saves      int       `json:"saves"`
}

// geometry summarises the variant-specific fields of a shape.
func geometry(s shape.Shape) string {
	switch v := s.(type) {
	case *shape.Rectangle:
		return fmt.Sprintf("(%.2f, %.2f) %.2f×%.2f", v.X, v.Y, v.Width, v.Height)
	case *shape.Circle:
		return fmt.Sprintf("(%.2f, %.2f) r=%.2f", v.X, v.Y, v.Radius)
	case *shape.Line:
		return fmt.Sprintf("(%.2f, %.2f) → (%.2f, %.2f)", v.X, v.Y, v.EndX, v.EndY)
	default:
		return s.CanonicalText()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderShapes prints shapes bottom first; the last row is topmost.
// selectedID marks one row, if non-empty.
func renderShapes(r *output.Renderer, shapes []shape.Shape, selectedID string) error {
	if r.EffectiveMode() == output.ModeJSON {
		rows := make([]shapeJSON, len(shapes))
		for i, s := range shapes {
			rows[i] = shapeJSON{Index: i + 1, ID: s.ID(), Type: s.Kind().String(), Data: s.CanonicalText()}
		}
		return r.JSON(rows)
	}

	if len(shapes) == 0 {
		r.Muted("(no shapes)")
		return nil
	}

	t := newTable(r.Writer())
	t.AppendHeader(table.Row{"#", "Type", "Geometry", "Color", "Stroke", "ID"})
	for i, s := range shapes {
		b := s.Common()
		col := b.Color.String()
		if r.EffectiveMode() == output.ModeText {
			col = r.Styles().Swatch(b.Color)
		}
		idx := fmt.Sprintf("%d", i+1)
		if s.ID() == selectedID {
			idx += "*"
		}
		t.AppendRow(table.Row{idx, s.Kind().String(), geometry(s), col, fmt.Sprintf("%.2f", b.StrokeWidth), shortID(s.ID())})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}

// renderDrawings prints saved drawing summaries.
func renderDrawings(r *output.Renderer, drawings []state.DrawingSummary) error {
	if r.EffectiveMode() == output.ModeJSON {
		rows := make([]drawingJSON, len(drawings))
		for i, d := range drawings {
			rows[i] = drawingJSON{ID: d.ID, Name: d.Name, SavedAt: d.CreatedAt, ShapeCount: d.ShapeCount, Saves: d.Saves}
		}
		return r.JSON(rows)
	}

	r.Header(1, fmt.Sprintf("Drawings (%d total)", len(drawings)))
	if len(drawings) == 0 {
		r.Muted("(no saved drawings)")
		return nil
	}

	t := newTable(r.Writer())
	t.AppendHeader(table.Row{"Name", "Shapes", "Saves", "Last Saved"})
	for _, d := range drawings {
		t.AppendRow(table.Row{d.Name, d.ShapeCount, d.Saves, d.CreatedAt.Local().Format(time.DateTime)})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}

// renderLogs prints action log rows, newest first.
func renderLogs(r *output.Renderer, logs []state.LogEntry) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(logs)
	}
	if len(logs) == 0 {
		r.Muted("(no log entries)")
		return nil
	}

	t := newTable(r.Writer())
	t.AppendHeader(table.Row{"Time", "Level", "Message"})
	for _, l := range logs {
		t.AppendRow(table.Row{l.Timestamp, l.Level, l.Message})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}
