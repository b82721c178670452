// Package shape provides the drawing primitives of a leapdraw document.
//
// A Shape is one of three variants (Rectangle, Circle, Line). Every shape
// carries an opaque identity token assigned at construction; documents and
// commands locate shapes by that token, never by structural equality, so two
// geometrically identical shapes remain distinct.
package shape

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies a shape variant.
type Kind int

// Shape variants.
const (
	KindRectangle Kind = iota + 1
	KindCircle
	KindLine
)

// Kinds lists all shape variants in declaration order.
var Kinds = []Kind{KindRectangle, KindCircle, KindLine}

// String returns the variant name used in canonical text and persistence.
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindCircle:
		return "Circle"
	case KindLine:
		return "Line"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a variant name or tool alias (case-insensitive).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangle", "rect":
		return KindRectangle, nil
	case "circle":
		return KindCircle, nil
	case "line":
		return KindLine, nil
	default:
		return 0, fmt.Errorf("unknown shape kind %q", name)
	}
}

// DefaultStrokeWidth is applied when a stroke width is not supplied.
const DefaultStrokeWidth = 2.0

// lineHitTolerance is the hit distance around a line, in canvas units.
const lineHitTolerance = 5.0

// Shape is a geometric entity owned by a document.
type Shape interface {
	// ID returns the identity token. It is not part of the canonical text.
	ID() string
	Kind() Kind
	// Common exposes the attributes shared by every variant.
	Common() *Base
	// Contains reports whether the point hits the shape.
	Contains(px, py float64) bool
	// CanonicalText returns the two-decimal text form of the shape.
	CanonicalText() string
}

// Base holds the attributes shared by every variant. The meaning of the
// anchor (X, Y) depends on the variant.
type Base struct {
	id          string
	X, Y        float64
	Color       Color
	StrokeWidth float64
}

func newBase(x, y float64, c Color, strokeWidth float64) Base {
	return Base{id: uuid.NewString(), X: x, Y: y, Color: c, StrokeWidth: strokeWidth}
}

// ID returns the identity token. Shapes built without a constructor get one
// on first use.
func (b *Base) ID() string {
	if b.id == "" {
		b.id = uuid.NewString()
	}
	return b.id
}

// Common returns b.
func (b *Base) Common() *Base { return b }

// SetColor changes the colour. Not undoable.
func (b *Base) SetColor(c Color) { b.Color = c }

// MoveTo changes the anchor point. Not undoable.
func (b *Base) MoveTo(x, y float64) {
	b.X = x
	b.Y = y
}

// Rectangle is an axis-aligned rectangle anchored at its top-left corner.
type Rectangle struct {
	Base
	Width, Height float64
}

// Kind returns KindRectangle.
func (r *Rectangle) Kind() Kind { return KindRectangle }

// Contains reports whether the point lies in the closed box.
func (r *Rectangle) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.Width &&
		py >= r.Y && py <= r.Y+r.Height
}

// CanonicalText returns the canonical text form.
func (r *Rectangle) CanonicalText() string {
	return fmt.Sprintf("Rectangle[x=%.2f,y=%.2f,width=%.2f,height=%.2f,color=%s,strokeWidth=%.2f]",
		r.X, r.Y, r.Width, r.Height, r.Color, r.StrokeWidth)
}

// Circle is anchored at its centre.
type Circle struct {
	Base
	Radius float64
}

// Kind returns KindCircle.
func (c *Circle) Kind() Kind { return KindCircle }

// Contains reports whether the point is within Radius of the centre.
func (c *Circle) Contains(px, py float64) bool {
	dx, dy := px-c.X, py-c.Y
	return math.Sqrt(dx*dx+dy*dy) <= c.Radius
}

// CanonicalText returns the canonical text form.
func (c *Circle) CanonicalText() string {
	return fmt.Sprintf("Circle[x=%.2f,y=%.2f,radius=%.2f,color=%s,strokeWidth=%.2f]",
		c.X, c.Y, c.Radius, c.Color, c.StrokeWidth)
}

// Line is a segment from the anchor (X, Y) to (EndX, EndY).
type Line struct {
	Base
	EndX, EndY float64
}

// Kind returns KindLine.
func (l *Line) Kind() Kind { return KindLine }

// Contains reports whether the point is within the hit tolerance of the
// line and inside its bounding box grown by the same tolerance.
// A zero-length line contains nothing.
func (l *Line) Contains(px, py float64) bool {
	dx, dy := l.EndX-l.X, l.EndY-l.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return false
	}

	distance := math.Abs(dy*px-dx*py+l.EndX*l.Y-l.EndY*l.X) / length

	minX := math.Min(l.X, l.EndX) - lineHitTolerance
	maxX := math.Max(l.X, l.EndX) + lineHitTolerance
	minY := math.Min(l.Y, l.EndY) - lineHitTolerance
	maxY := math.Max(l.Y, l.EndY) + lineHitTolerance

	return distance <= lineHitTolerance &&
		px >= minX && px <= maxX &&
		py >= minY && py <= maxY
}

// CanonicalText returns the canonical text form.
func (l *Line) CanonicalText() string {
	return fmt.Sprintf("Line[startX=%.2f,startY=%.2f,endX=%.2f,endY=%.2f,color=%s,strokeWidth=%.2f]",
		l.X, l.Y, l.EndX, l.EndY, l.Color, l.StrokeWidth)
}
