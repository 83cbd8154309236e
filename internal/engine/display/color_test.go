package display

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#f00", color.RGBA{255, 0, 0, 255}},
		{"1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{"#1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 255}},
		{"#1a2b3c80", color.RGBA{0x1a, 0x2b, 0x3c, 0x80}},
		{"#000000", color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, input := range []string{"", "#", "#ff", "#fffff", "#zzzzzz", "not a color"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseHex(input)
			assert.Error(t, err)
		})
	}
}

func TestLerp(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}

	assert.Equal(t, black, Lerp(black, white, 0))
	assert.Equal(t, white, Lerp(black, white, 1))
	assert.Equal(t, color.RGBA{127, 127, 127, 255}, Lerp(black, white, 0.5))

	// t is clamped.
	assert.Equal(t, black, Lerp(black, white, -3))
	assert.Equal(t, white, Lerp(black, white, 7))
}

func TestScale(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}

	assert.Equal(t, color.RGBA{100, 50, 25, 127}, Scale(c, 0.5))
	assert.Equal(t, color.RGBA{}, Scale(c, 0))
	assert.Equal(t, c, Scale(c, 1))
	assert.Equal(t, c, Scale(c, 2))
}
