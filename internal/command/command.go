// Package command implements undoable document edits and the history stack
// that replays them.
package command

import (
	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/internal/document"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// Action names recorded for each edit.
const (
	ActionAddShape        = "ADD_SHAPE"
	ActionUndoAddShape    = "UNDO_ADD_SHAPE"
	ActionRemoveShape     = "REMOVE_SHAPE"
	ActionUndoRemoveShape = "UNDO_REMOVE_SHAPE"
)

// Command is a reversible document edit. Execute and Undo are exact inverses
// and never fail; parameters are validated when the shape is built.
type Command interface {
	Execute()
	Undo()
	Description() string
}

// AddShape places a shape on top of a document.
type AddShape struct {
	doc      *document.Document
	shape    shape.Shape
	recorder actionlog.Recorder
}

// NewAddShape returns a command adding s to doc. A nil recorder is a no-op.
func NewAddShape(doc *document.Document, s shape.Shape, recorder actionlog.Recorder) *AddShape {
	return &AddShape{doc: doc, shape: s, recorder: actionlog.OrNop(recorder)}
}

func (c *AddShape) Execute() {
	c.doc.Add(c.shape)
	c.recorder.Record(ActionAddShape, c.shape.CanonicalText())
}

func (c *AddShape) Undo() {
	c.doc.Remove(c.shape)
	c.recorder.Record(ActionUndoAddShape, c.shape.CanonicalText())
}

func (c *AddShape) Description() string {
	return "Add " + c.shape.Kind().String()
}

// Shape returns the shape this command adds.
func (c *AddShape) Shape() shape.Shape { return c.shape }

// RemoveShape takes a shape off a document. Undo puts it back on top.
type RemoveShape struct {
	doc      *document.Document
	shape    shape.Shape
	recorder actionlog.Recorder
}

// NewRemoveShape returns a command removing s from doc. A nil recorder is a no-op.
func NewRemoveShape(doc *document.Document, s shape.Shape, recorder actionlog.Recorder) *RemoveShape {
	return &RemoveShape{doc: doc, shape: s, recorder: actionlog.OrNop(recorder)}
}

func (c *RemoveShape) Execute() {
	c.doc.Remove(c.shape)
	c.recorder.Record(ActionRemoveShape, c.shape.CanonicalText())
}

func (c *RemoveShape) Undo() {
	c.doc.Add(c.shape)
	c.recorder.Record(ActionUndoRemoveShape, c.shape.CanonicalText())
}

func (c *RemoveShape) Description() string {
	return "Remove " + c.shape.Kind().String()
}

// Shape returns the shape this command removes.
func (c *RemoveShape) Shape() shape.Shape { return c.shape }

var (
	_ Command = (*AddShape)(nil)
	_ Command = (*RemoveShape)(nil)
)
