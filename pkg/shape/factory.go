package shape

import (
	"fmt"
	"math"
)

// InvalidParametersError is returned when a shape is constructed from too
// few numeric parameters.
type InvalidParametersError struct {
	Kind Kind
	Want int
	Got  int
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("not enough parameters to create %s: want %d [%s], got %d",
		e.Kind, e.Want, parameterNames(e.Kind), e.Got)
}

// Arity returns the number of numeric parameters a variant requires.
func Arity(k Kind) int {
	switch k {
	case KindCircle:
		return 3
	case KindRectangle, KindLine:
		return 4
	default:
		return 0
	}
}

func parameterNames(k Kind) string {
	switch k {
	case KindRectangle:
		return "x, y, width, height"
	case KindCircle:
		return "x, y, radius"
	case KindLine:
		return "startX, startY, endX, endY"
	default:
		return ""
	}
}

// ValidateParameters checks the parameter vector arity for a variant.
// Values are not range checked; negative sizes and NaN are accepted.
func ValidateParameters(k Kind, params []float64) error {
	want := Arity(k)
	if want == 0 {
		return fmt.Errorf("unsupported shape kind: %s", k)
	}
	if len(params) < want {
		return &InvalidParametersError{Kind: k, Want: want, Got: len(params)}
	}
	return nil
}

// Create builds a shape of the given kind from raw parameters:
//
//	Rectangle: x, y, width, height
//	Circle:    x, y, radius
//	Line:      startX, startY, endX, endY
//
// Extra parameters are ignored.
func Create(k Kind, params []float64, c Color, strokeWidth float64) (Shape, error) {
	if err := ValidateParameters(k, params); err != nil {
		return nil, err
	}

	switch k {
	case KindRectangle:
		return NewRectangle(params[0], params[1], params[2], params[3], c, strokeWidth), nil
	case KindCircle:
		return NewCircle(params[0], params[1], params[2], c, strokeWidth), nil
	default:
		return NewLine(params[0], params[1], params[2], params[3], c, strokeWidth), nil
	}
}

// NewRectangle creates a rectangle with a fresh identity.
func NewRectangle(x, y, width, height float64, c Color, strokeWidth float64) *Rectangle {
	return &Rectangle{Base: newBase(x, y, c, strokeWidth), Width: width, Height: height}
}

// NewCircle creates a circle with a fresh identity.
func NewCircle(x, y, radius float64, c Color, strokeWidth float64) *Circle {
	return &Circle{Base: newBase(x, y, c, strokeWidth), Radius: radius}
}

// NewLine creates a line with a fresh identity.
func NewLine(startX, startY, endX, endY float64, c Color, strokeWidth float64) *Line {
	return &Line{Base: newBase(startX, startY, c, strokeWidth), EndX: endX, EndY: endY}
}

// FromDrag builds a shape from a drag gesture between two points.
// A rectangle spans the two corners, a circle is centred on the start point
// with the drag length as radius, and a line joins the two points.
func FromDrag(k Kind, startX, startY, endX, endY float64, c Color, strokeWidth float64) (Shape, error) {
	var params []float64
	switch k {
	case KindRectangle:
		params = []float64{
			math.Min(startX, endX),
			math.Min(startY, endY),
			math.Abs(endX - startX),
			math.Abs(endY - startY),
		}
	case KindCircle:
		params = []float64{startX, startY, math.Hypot(endX-startX, endY-startY)}
	case KindLine:
		params = []float64{startX, startY, endX, endY}
	}
	return Create(k, params, c, strokeWidth)
}
