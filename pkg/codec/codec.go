// Package codec converts shapes to and from their canonical text form.
//
// The canonical form is lossy (two-decimal fixed point) but deterministic:
// decoding an encoded shape and encoding it again yields the same text.
// It is used both for persistence and for action logging.
package codec

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// Record is a persisted shape: its variant name and canonical text.
type Record struct {
	Type string
	Data string
}

// ParseError reports malformed canonical text.
type ParseError struct {
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse shape %q: %s", e.Text, e.Message)
}

// UnknownShapeTypeError reports an unrecognised variant name.
type UnknownShapeTypeError struct {
	Type string
}

func (e *UnknownShapeTypeError) Error() string {
	return fmt.Sprintf("unknown shape type %q", e.Type)
}

// Encode returns the persisted record for a shape.
func Encode(s shape.Shape) Record {
	return Record{Type: s.Kind().String(), Data: s.CanonicalText()}
}

// EncodeAll encodes shapes in order.
func EncodeAll(shapes []shape.Shape) []Record {
	records := make([]Record, 0, len(shapes))
	for _, s := range shapes {
		records = append(records, Encode(s))
	}
	return records
}

// fields collects the values read from canonical text.
type fields struct {
	x, y, width, height, radius, endX, endY float64
	color                                   shape.Color
	strokeWidth                             float64
}

// Decode parses canonical text for the named variant.
//
// Only the text between the first '[' and the first ']' is read. Tokens
// that are not exactly one key=value pair are skipped, as are unknown keys.
// A missing strokeWidth defaults to shape.DefaultStrokeWidth and a missing
// color to black. The decoded shape gets a fresh identity.
func Decode(variant, text string) (shape.Shape, error) {
	kind, ok := kindByName[variant]
	if !ok {
		return nil, &UnknownShapeTypeError{Type: variant}
	}

	start := strings.IndexByte(text, '[')
	end := strings.IndexByte(text, ']')
	if start == -1 || end == -1 {
		return nil, &ParseError{Text: text, Message: "missing '[' or ']' delimiter"}
	}
	if end < start {
		return nil, &ParseError{Text: text, Message: "']' before '['"}
	}

	f := fields{color: shape.Black, strokeWidth: shape.DefaultStrokeWidth}
	for _, token := range strings.Split(text[start+1:end], ",") {
		kv := strings.Split(token, "=")
		// "key=" carries no value and is treated like a malformed token.
		if len(kv) != 2 || kv[1] == "" {
			continue
		}
		if err := f.set(strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])); err != nil {
			return nil, &ParseError{Text: text, Message: err.Error()}
		}
	}

	var params []float64
	switch kind {
	case shape.KindRectangle:
		params = []float64{f.x, f.y, f.width, f.height}
	case shape.KindCircle:
		params = []float64{f.x, f.y, f.radius}
	case shape.KindLine:
		params = []float64{f.x, f.y, f.endX, f.endY}
	}
	return shape.Create(kind, params, f.color, f.strokeWidth)
}

var kindByName = map[string]shape.Kind{
	shape.KindRectangle.String(): shape.KindRectangle,
	shape.KindCircle.String():    shape.KindCircle,
	shape.KindLine.String():      shape.KindLine,
}

func (f *fields) set(key, value string) error {
	var target *float64
	switch key {
	case "x", "startX":
		target = &f.x
	case "y", "startY":
		target = &f.y
	case "width":
		target = &f.width
	case "height":
		target = &f.height
	case "radius":
		target = &f.radius
	case "endX":
		target = &f.endX
	case "endY":
		target = &f.endY
	case "strokeWidth":
		target = &f.strokeWidth
	case "color":
		c, err := shape.ParseColor(value)
		if err != nil {
			return err
		}
		f.color = c
		return nil
	default:
		return nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q", key, value)
	}
	*target = v
	return nil
}

// DecodeAll decodes a batch of records, keeping successful shapes in order.
// Records that fail to decode are logged and dropped; a batch never fails
// as a whole.
func DecodeAll(records []Record, logger *slog.Logger) []shape.Shape {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	shapes := make([]shape.Shape, 0, len(records))
	for i, rec := range records {
		s, err := Decode(rec.Type, rec.Data)
		if err != nil {
			logger.Warn("skipping shape record", "index", i, "type", rec.Type, "error", err)
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes
}
