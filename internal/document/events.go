package document

import (
	"slices"

	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// EventKind tags a document change.
type EventKind int

// Document change kinds.
const (
	ShapeAdded EventKind = iota + 1
	ShapeRemoved
	DrawingCleared
	NameChanged
)

func (k EventKind) String() string {
	switch k {
	case ShapeAdded:
		return "SHAPE_ADDED"
	case ShapeRemoved:
		return "SHAPE_REMOVED"
	case DrawingCleared:
		return "DRAWING_CLEARED"
	case NameChanged:
		return "NAME_CHANGED"
	default:
		return "UNKNOWN"
	}
}

// Event describes one change. Shape is set for ShapeAdded and ShapeRemoved.
type Event struct {
	Kind  EventKind
	Shape shape.Shape
}

// Observer receives document events synchronously.
type Observer func(Event)

// Subscription identifies a registered observer.
type Subscription uint64

type observerEntry struct {
	sub Subscription
	fn  Observer
}

// Subscribe registers fn. Observers are called in registration order.
// Callers must Unsubscribe before discarding the observer.
func (d *Document) Subscribe(fn Observer) Subscription {
	d.nextSub++
	d.observers = append(d.observers, observerEntry{sub: d.nextSub, fn: fn})
	return d.nextSub
}

// Unsubscribe removes a registered observer. Unknown subscriptions are ignored.
// It is safe to call from inside an observer; delivery of the current event
// continues with the observers registered when it started.
func (d *Document) Unsubscribe(sub Subscription) {
	d.observers = slices.DeleteFunc(slices.Clone(d.observers), func(o observerEntry) bool {
		return o.sub == sub
	})
}

func (d *Document) emit(e Event) {
	for _, o := range slices.Clone(d.observers) {
		o.fn(e)
	}
}
