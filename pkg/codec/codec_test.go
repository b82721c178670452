package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdraw/internal/testutil"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

func TestDecode_Lenient(t *testing.T) {
	s, err := Decode("Rectangle",
		"Rectangle[x=1.00,y=2.00,bogus,width=3.00,height=4.00,color=#000000ff,strokeWidth=1.00]")
	require.NoError(t, err)

	r, ok := s.(*shape.Rectangle)
	require.True(t, ok)
	assert.Equal(t, 1.0, r.X)
	assert.Equal(t, 2.0, r.Y)
	assert.Equal(t, 3.0, r.Width)
	assert.Equal(t, 4.0, r.Height)
	assert.Equal(t, shape.Black, r.Color)
	assert.Equal(t, 1.0, r.StrokeWidth)
}

func TestDecode_Variants(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		text    string
		check   func(t *testing.T, s shape.Shape)
	}{
		{
			name:    "circle",
			variant: "Circle",
			text:    "Circle[x=50.00,y=50.00,radius=25.00,color=0x0000ffff,strokeWidth=1.50]",
			check: func(t *testing.T, s shape.Shape) {
				c := s.(*shape.Circle)
				assert.Equal(t, 25.0, c.Radius)
				assert.Equal(t, shape.Color{B: 255, A: 255}, c.Color)
				assert.Equal(t, 1.5, c.StrokeWidth)
			},
		},
		{
			name:    "line uses start keys",
			variant: "Line",
			text:    "Line[startX=1.00,startY=2.00,endX=3.00,endY=4.00,color=0x000000ff,strokeWidth=3.00]",
			check: func(t *testing.T, s shape.Shape) {
				l := s.(*shape.Line)
				assert.Equal(t, []float64{1, 2, 3, 4}, []float64{l.X, l.Y, l.EndX, l.EndY})
			},
		},
		{
			name:    "stroke width defaults",
			variant: "Circle",
			text:    "Circle[x=0,y=0,radius=1]",
			check: func(t *testing.T, s shape.Shape) {
				assert.Equal(t, shape.DefaultStrokeWidth, s.Common().StrokeWidth)
				assert.Equal(t, shape.Black, s.Common().Color)
			},
		},
		{
			name:    "unknown keys and empty values ignored",
			variant: "Rectangle",
			text:    "Rectangle[x=5, y = 6 ,z=9,width=,height=1=2,width=7]",
			check: func(t *testing.T, s shape.Shape) {
				r := s.(*shape.Rectangle)
				assert.Equal(t, 5.0, r.X)
				assert.Equal(t, 6.0, r.Y)
				assert.Equal(t, 7.0, r.Width)
				assert.Equal(t, 0.0, r.Height)
			},
		},
		{
			name:    "text outside brackets ignored",
			variant: "Circle",
			text:    "junk Circle[x=1,y=1,radius=2] trailing]",
			check: func(t *testing.T, s shape.Shape) {
				assert.Equal(t, 2.0, s.(*shape.Circle).Radius)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.variant, tt.text)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestDecode_UnknownShapeType(t *testing.T) {
	s, err := Decode("Ellipse", "Ellipse[x=1.00]")
	assert.Nil(t, s)

	var unknown *UnknownShapeTypeError
	require.True(t, errors.As(err, &unknown), "got %v", err)
	assert.Equal(t, "Ellipse", unknown.Type)
}

func TestDecode_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "missing open bracket", text: "Circle x=1,y=1,radius=2]"},
		{name: "missing close bracket", text: "Circle[x=1,y=1,radius=2"},
		{name: "reversed brackets", text: "Circle]x=1[,"},
		{name: "bad number", text: "Circle[x=abc,y=1,radius=2]"},
		{name: "bad color", text: "Circle[x=1,y=1,radius=2,color=nope]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode("Circle", tt.text)
			assert.Nil(t, s)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe), "got %v", err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	c := shape.Color{R: 12, G: 34, B: 56, A: 200}
	shapes := []shape.Shape{
		shape.NewRectangle(10.123, 20.456, 100.001, 50.5, c, 2.25),
		shape.NewCircle(-3.14159, 2.71828, 42, shape.Black, 1),
		shape.NewLine(0, 0, 99.999, -7.5, shape.White, 3.333),
	}

	for _, original := range shapes {
		t.Run(original.Kind().String(), func(t *testing.T) {
			rec := Encode(original)
			assert.Equal(t, original.Kind().String(), rec.Type)

			decoded, err := Decode(rec.Type, rec.Data)
			require.NoError(t, err)

			assert.Equal(t, original.Kind(), decoded.Kind())
			assert.Equal(t, rec.Data, decoded.CanonicalText(), "re-encoding must be identical")
			assert.Equal(t, original.Common().Color.String(), decoded.Common().Color.String())
			assert.InDelta(t, original.Common().X, decoded.Common().X, 0.005)
			assert.InDelta(t, original.Common().Y, decoded.Common().Y, 0.005)
			assert.NotEqual(t, original.ID(), decoded.ID())
		})
	}
}

func TestDecodeAll_SkipsFailures(t *testing.T) {
	records := []Record{
		{Type: "Rectangle", Data: "Rectangle[x=1,y=2,width=3,height=4]"},
		{Type: "Ellipse", Data: "Ellipse[x=1.00]"},
		{Type: "Circle", Data: "Circle[x=1,y=1,radius=oops]"},
		{Type: "Circle", Data: "no brackets"},
		{Type: "Line", Data: "Line[startX=0,startY=0,endX=5,endY=5]"},
	}

	shapes := DecodeAll(records, testutil.NewTestLogger(t))
	require.Len(t, shapes, 2)
	assert.Equal(t, shape.KindRectangle, shapes[0].Kind())
	assert.Equal(t, shape.KindLine, shapes[1].Kind())
}

func TestDecodeAll_NilLogger(t *testing.T) {
	shapes := DecodeAll([]Record{{Type: "Bogus", Data: "Bogus[]"}}, nil)
	assert.Empty(t, shapes)
}

func TestEncodeAll(t *testing.T) {
	shapes := []shape.Shape{
		shape.NewCircle(0, 0, 1, shape.Black, 1),
		shape.NewRectangle(0, 0, 1, 1, shape.Black, 1),
	}

	records := EncodeAll(shapes)
	require.Len(t, records, 2)
	assert.Equal(t, "Circle", records[0].Type)
	assert.Equal(t, "Rectangle", records[1].Type)
}
