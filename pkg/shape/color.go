package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an 8-bit, non-premultiplied RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Common colors
var (
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Transparent = Color{}
)

// String returns the canonical colour spec, e.g. "0xff0000ff".
// The result is always accepted by ParseColor.
func (c Color) String() string {
	return fmt.Sprintf("0x%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// NRGBA converts the colour to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseColor parses a web-style colour spec.
// Supported forms: "0xRRGGBBAA", "#RRGGBB", "#RGB", "#RGBA", bare hex digits,
// and CSS colour names such as "red" or "cornflowerblue".
func ParseColor(spec string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return Color{}, fmt.Errorf("invalid color %q: empty", spec)
	}

	switch {
	case strings.HasPrefix(s, "0x"):
		return parseHexColor(s[2:], spec)
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:], spec)
	}

	if c, ok := colornames.Map[s]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if s == "transparent" {
		return Transparent, nil
	}

	return parseHexColor(s, spec)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(spec string) Color {
	c, err := ParseColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(hex, spec string) (Color, error) {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected 3, 4, 6 or 8 hex digits", spec)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}

	// Short forms repeat each nibble: "f" -> 0xff.
	nibble := func(shift uint) uint8 { return uint8((v>>shift)&0xf) * 17 }
	octet := func(shift uint) uint8 { return uint8(v >> shift) }

	switch len(hex) {
	case 3:
		return Color{R: nibble(8), G: nibble(4), B: nibble(0), A: 255}, nil
	case 4:
		return Color{R: nibble(12), G: nibble(8), B: nibble(4), A: nibble(0)}, nil
	case 6:
		return Color{R: octet(16), G: octet(8), B: octet(0), A: 255}, nil
	default:
		return Color{R: octet(24), G: octet(16), B: octet(8), A: octet(0)}, nil
	}
}
