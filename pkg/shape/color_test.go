package shape

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		spec string
		want Color
	}{
		{spec: "0xff0000ff", want: Color{R: 255, A: 255}},
		{spec: "0x00000080", want: Color{A: 128}},
		{spec: "#000000ff", want: Color{A: 255}},
		{spec: "#00ff00", want: Color{G: 255, A: 255}},
		{spec: "#fff", want: White},
		{spec: "#f008", want: Color{R: 255, A: 136}},
		{spec: "0000FF", want: Color{B: 255, A: 255}},
		{spec: "  Red ", want: Color{R: 255, A: 255}},
		{spec: "cornflowerblue", want: Color{R: 100, G: 149, B: 237, A: 255}},
		{spec: "transparent", want: Transparent},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseColor(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, spec := range []string{"", "#12", "0xzzzzzzzz", "notacolor", "#1234567"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseColor(spec)
			assert.Error(t, err)
		})
	}
}

func TestColor_StringReparses(t *testing.T) {
	for _, c := range []Color{Black, White, Transparent, {R: 18, G: 52, B: 86, A: 120}} {
		s := c.String()
		back, err := ParseColor(s)
		require.NoError(t, err)
		assert.Equal(t, c, back)
		assert.Equal(t, s, back.String())
	}
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 255}, FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, Color{R: 255, A: 255}.NRGBA())
}

func TestMustParseColor_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseColor("bogus") })
}
