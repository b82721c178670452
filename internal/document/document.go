// Package document holds the ordered shape collection being edited.
//
// Insertion order is z-order: the last shape is topmost and is hit-tested
// first. Every mutation is announced to subscribed observers.
package document

import (
	"time"

	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// DefaultName is the name of a drawing that has never been named.
const DefaultName = "untitled"

// Document is an ordered, named collection of shapes.
// It is not safe for concurrent use.
type Document struct {
	name   string
	id     int64
	shapes []shape.Shape

	observers []observerEntry
	nextSub   Subscription
}

// New creates an empty document. An empty name becomes DefaultName and the
// id defaults to the creation time in milliseconds.
func New(name string) *Document {
	if name == "" {
		name = DefaultName
	}
	return &Document{
		name: name,
		id:   time.Now().UnixMilli(),
	}
}

// Name returns the display name.
func (d *Document) Name() string { return d.name }

// SetName renames the document and emits NameChanged.
func (d *Document) SetName(name string) {
	d.name = name
	d.emit(Event{Kind: NameChanged})
}

// ID returns the document id.
func (d *Document) ID() int64 { return d.id }

// SetID overwrites the id, typically with the persisted identity.
func (d *Document) SetID(id int64) { d.id = id }

// IsUntitled reports whether the document still carries the default name.
func (d *Document) IsUntitled() bool { return d.name == DefaultName }

// Add appends s on top of the z-order.
func (d *Document) Add(s shape.Shape) {
	d.shapes = append(d.shapes, s)
	d.emit(Event{Kind: ShapeAdded, Shape: s})
}

// Remove deletes the first shape with the same identity as s.
// It reports whether a shape was removed.
func (d *Document) Remove(s shape.Shape) bool {
	for i, existing := range d.shapes {
		if existing.ID() != s.ID() {
			continue
		}
		d.shapes = append(d.shapes[:i], d.shapes[i+1:]...)
		d.emit(Event{Kind: ShapeRemoved, Shape: existing})
		return true
	}
	return false
}

// Clear removes every shape.
func (d *Document) Clear() {
	d.shapes = nil
	d.emit(Event{Kind: DrawingCleared})
}

// Replace swaps in a loaded drawing: the shapes are cleared, each given shape
// is added in order, then the name and id are set.
func (d *Document) Replace(name string, id int64, shapes []shape.Shape) {
	d.Clear()
	for _, s := range shapes {
		d.Add(s)
	}
	d.SetName(name)
	d.SetID(id)
}

// ShapeAt returns the topmost shape containing (x, y), or nil.
func (d *Document) ShapeAt(x, y float64) shape.Shape {
	for i := len(d.shapes) - 1; i >= 0; i-- {
		if d.shapes[i].Contains(x, y) {
			return d.shapes[i]
		}
	}
	return nil
}

// Shapes returns a copy of the shapes in z-order, bottom first.
func (d *Document) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(d.shapes))
	copy(out, d.shapes)
	return out
}

// Len returns the number of shapes.
func (d *Document) Len() int { return len(d.shapes) }

// IsEmpty reports whether the document has no shapes.
func (d *Document) IsEmpty() bool { return len(d.shapes) == 0 }
