// Package editor is the drawing session controller. It owns the document, the
// undo history and the current tool settings, and talks to the drawing store
// and the action log on behalf of the front end.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/internal/command"
	"github.com/leapstack-labs/leapdraw/internal/document"
	"github.com/leapstack-labs/leapdraw/internal/state"
	"github.com/leapstack-labs/leapdraw/pkg/codec"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// ErrNameRequired is returned when saving an untitled drawing without a name.
var ErrNameRequired = errors.New("drawing name required")

// Actions recorded by the editor in addition to the command actions.
const (
	ActionCreateShape   = "CREATE_SHAPE"
	ActionSelectShape   = "SELECT_SHAPE"
	ActionUndo          = "UNDO"
	ActionRedo          = "REDO"
	ActionNewDrawing    = "NEW_DRAWING"
	ActionClearDrawing  = "CLEAR_DRAWING"
	ActionSaveDrawing   = "SAVE_DRAWING"
	ActionLoadDrawing   = "LOAD_DRAWING"
	ActionChangeLogging = "CHANGE_LOGGING_STRATEGY"
)

const defaultRecentLogLimit = 20

// Options configures a new Editor. Every field is optional.
type Options struct {
	// Store persists drawings. Without one, Save and Open return
	// state.ErrStorageUnavailable.
	Store state.Store
	// ActionLog receives user actions. Defaults to a logger with no strategy.
	ActionLog *actionlog.Logger
	// LogOptions is used when switching logging strategies.
	LogOptions actionlog.Options
	// Logger receives diagnostics such as skipped shape records.
	Logger *slog.Logger
	// Color and StrokeWidth seed the tool settings.
	Color       *shape.Color
	StrokeWidth float64
}

// Editor is a single-user drawing session. It is not safe for concurrent use.
type Editor struct {
	doc     *document.Document
	history *command.Stack
	store   state.Store
	actions *actionlog.Logger
	logOpts actionlog.Options
	logger  *slog.Logger

	tool        shape.Kind
	color       shape.Color
	strokeWidth float64
	selected    shape.Shape
}

// New creates an editor with an empty untitled document.
func New(opts Options) *Editor {
	e := &Editor{
		doc:         document.New(""),
		history:     command.NewStack(),
		store:       opts.Store,
		actions:     opts.ActionLog,
		logOpts:     opts.LogOptions,
		logger:      opts.Logger,
		tool:        shape.KindRectangle,
		color:       shape.Black,
		strokeWidth: shape.DefaultStrokeWidth,
	}
	if e.actions == nil {
		e.actions = actionlog.New(nil)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if opts.Color != nil {
		e.color = *opts.Color
	}
	if opts.StrokeWidth > 0 {
		e.strokeWidth = opts.StrokeWidth
	}
	if e.store != nil && e.logOpts.Store == nil {
		e.logOpts.Store = e.store
	}
	e.actions.Info("drawing editor initialised")
	return e
}

// Document returns the document being edited.
func (e *Editor) Document() *document.Document { return e.doc }

// History returns the undo history.
func (e *Editor) History() *command.Stack { return e.history }

// Tool returns the shape kind created by CreateShape.
func (e *Editor) Tool() shape.Kind { return e.tool }

// SetTool selects the shape kind created by CreateShape.
func (e *Editor) SetTool(k shape.Kind) { e.tool = k }

// Color returns the colour applied to new shapes.
func (e *Editor) Color() shape.Color { return e.color }

// SetColor sets the colour applied to new shapes.
func (e *Editor) SetColor(c shape.Color) { e.color = c }

// StrokeWidth returns the stroke width applied to new shapes.
func (e *Editor) StrokeWidth() float64 { return e.strokeWidth }

// SetStrokeWidth sets the stroke width applied to new shapes.
func (e *Editor) SetStrokeWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("stroke width must be positive, got %g", w)
	}
	e.strokeWidth = w
	return nil
}

// Selected returns the selected shape, or nil.
func (e *Editor) Selected() shape.Shape { return e.selected }

// CreateShape builds a shape of the current tool from a drag gesture and adds
// it through the undo history.
func (e *Editor) CreateShape(startX, startY, endX, endY float64) (shape.Shape, error) {
	s, err := shape.FromDrag(e.tool, startX, startY, endX, endY, e.color, e.strokeWidth)
	if err != nil {
		e.actions.Error("failed to create shape: " + err.Error())
		return nil, fmt.Errorf("failed to create shape: %w", err)
	}
	e.history.Execute(command.NewAddShape(e.doc, s, e.actions))
	e.actions.Record(ActionCreateShape, s.CanonicalText())
	return s, nil
}

// Select marks the topmost shape at (x, y) as selected and returns it.
// A miss clears the selection and returns nil.
func (e *Editor) Select(x, y float64) shape.Shape {
	e.selected = e.doc.ShapeAt(x, y)
	if e.selected != nil {
		e.actions.Record(ActionSelectShape, e.selected.CanonicalText())
	}
	return e.selected
}

// RemoveAt removes the topmost shape at (x, y) through the undo history.
// Returns nil when nothing is hit.
func (e *Editor) RemoveAt(x, y float64) shape.Shape {
	s := e.doc.ShapeAt(x, y)
	if s == nil {
		return nil
	}
	e.remove(s)
	return s
}

// RemoveSelected removes the selected shape through the undo history.
// Returns nil when nothing is selected.
func (e *Editor) RemoveSelected() shape.Shape {
	s := e.selected
	if s == nil {
		return nil
	}
	e.remove(s)
	return s
}

func (e *Editor) remove(s shape.Shape) {
	e.history.Execute(command.NewRemoveShape(e.doc, s, e.actions))
	if e.selected != nil && e.selected.ID() == s.ID() {
		e.selected = nil
	}
}

// Undo reverts the last edit. Returns the description of the reverted
// command, or "" when there was nothing to undo.
func (e *Editor) Undo() string {
	if !e.history.Undo() {
		return ""
	}
	desc := e.history.PeekRedoDescription()
	e.actions.Record(ActionUndo, desc)
	e.dropStaleSelection()
	return desc
}

// Redo replays the last undone edit. Returns the description of the replayed
// command, or "" when there was nothing to redo.
func (e *Editor) Redo() string {
	if !e.history.Redo() {
		return ""
	}
	desc := e.history.PeekUndoDescription()
	e.actions.Record(ActionRedo, desc)
	e.dropStaleSelection()
	return desc
}

func (e *Editor) dropStaleSelection() {
	if e.selected == nil {
		return
	}
	for _, s := range e.doc.Shapes() {
		if s.ID() == e.selected.ID() {
			return
		}
	}
	e.selected = nil
}

// NewDrawing starts over with an empty untitled drawing and no history.
func (e *Editor) NewDrawing() {
	e.doc.Replace(document.DefaultName, time.Now().UnixMilli(), nil)
	e.history.Clear()
	e.selected = nil
	e.actions.Record(ActionNewDrawing, "new drawing created")
}

// ClearDrawing removes every shape and forgets the history. The name is kept.
func (e *Editor) ClearDrawing() {
	e.doc.Clear()
	e.history.Clear()
	e.selected = nil
	e.actions.Record(ActionClearDrawing, "drawing cleared")
}

// Save persists the document. A non-empty name renames the document once the
// drawing is stored; an untitled document with no name fails with
// ErrNameRequired. A failed save leaves the document name unchanged.
func (e *Editor) Save(ctx context.Context, name string) (int64, error) {
	target := e.doc.Name()
	if name != "" {
		target = name
	}
	if target == "" || target == document.DefaultName {
		return 0, ErrNameRequired
	}
	if e.store == nil {
		return 0, e.storageFailure("save", state.ErrStorageUnavailable)
	}

	id, err := e.store.SaveDrawing(ctx, target, codec.EncodeAll(e.doc.Shapes()))
	if err != nil {
		return 0, e.storageFailure("save", err)
	}
	if target != e.doc.Name() {
		e.doc.SetName(target)
	}
	e.doc.SetID(id)
	e.actions.Record(ActionSaveDrawing, fmt.Sprintf("drawing '%s' saved", target))
	return id, nil
}

// Open replaces the document with the latest saved drawing called name and
// clears the history. Records that fail to decode are dropped; the number
// dropped is returned.
func (e *Editor) Open(ctx context.Context, name string) (int, error) {
	if e.store == nil {
		return 0, e.storageFailure("load", state.ErrStorageUnavailable)
	}

	d, err := e.store.LoadDrawing(ctx, name)
	if err != nil {
		return 0, e.storageFailure("load", err)
	}

	shapes := codec.DecodeAll(d.Records, e.logger)
	e.doc.Replace(d.Name, d.ID, shapes)
	e.history.Clear()
	e.selected = nil
	e.actions.Record(ActionLoadDrawing, fmt.Sprintf("drawing '%s' loaded", d.Name))
	return len(d.Records) - len(shapes), nil
}

// ListDrawings returns saved drawing names, most recent first.
func (e *Editor) ListDrawings(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, state.ErrStorageUnavailable
	}
	names, err := e.store.ListDrawingNames(ctx)
	if err != nil {
		return nil, e.storageFailure("list", err)
	}
	return names, nil
}

// RecentLogs returns the latest rows written by the database strategy.
func (e *Editor) RecentLogs(ctx context.Context, limit int) ([]state.LogEntry, error) {
	if e.store == nil {
		return nil, state.ErrStorageUnavailable
	}
	if limit <= 0 {
		limit = defaultRecentLogLimit
	}
	return e.store.RecentLogs(ctx, limit)
}

// LoggingStrategy returns the name of the active logging strategy.
func (e *Editor) LoggingStrategy() string { return e.actions.StrategyName() }

// SetLoggingStrategy switches the action log backend by name
// (console, file or database).
func (e *Editor) SetLoggingStrategy(name string) error {
	strategy, err := actionlog.NewStrategy(name, e.logOpts)
	if err != nil {
		return fmt.Errorf("failed to set logging strategy: %w", err)
	}
	e.actions.SetStrategy(strategy)
	e.actions.Record(ActionChangeLogging, name)
	return nil
}

func (e *Editor) storageFailure(op string, err error) error {
	e.actions.Error(fmt.Sprintf("failed to %s drawing: %v", op, err))
	e.logger.Warn("drawing store operation failed", slog.String("op", op), slog.Any("error", err))
	return fmt.Errorf("failed to %s drawing: %w", op, err)
}
