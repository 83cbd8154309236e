// Package display holds the color and bounds utilities the engine and the
// example game share.
package display

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex converts a CSS-style hex string into a color. Accepted forms
// are "#rgb", "#rrggbb" and "#rrggbbaa" (leading '#' optional). Anything
// else is an error; callers treat that as a programming mistake.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")

	var r, g, b, a uint64
	var err error
	a = 0xff

	switch len(hex) {
	case 3:
		var v uint64
		v, err = strconv.ParseUint(hex, 16, 16)
		if err == nil {
			r = (v >> 8 & 0xf) * 0x11
			g = (v >> 4 & 0xf) * 0x11
			b = (v & 0xf) * 0x11
		}
	case 6:
		var v uint64
		v, err = strconv.ParseUint(hex, 16, 32)
		if err == nil {
			r, g, b = v>>16&0xff, v>>8&0xff, v&0xff
		}
	case 8:
		var v uint64
		v, err = strconv.ParseUint(hex, 16, 64)
		if err == nil {
			r, g, b, a = v>>24&0xff, v>>16&0xff, v>>8&0xff, v&0xff
		}
	default:
		return color.RGBA{}, fmt.Errorf("display: invalid hex color %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("display: invalid hex color %q", s)
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}

// Lerp blends two colors; t is clamped to [0, 1].
func Lerp(from, to color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return color.RGBA{
		mix(from.R, to.R),
		mix(from.G, to.G),
		mix(from.B, to.B),
		mix(from.A, to.A),
	}
}

// Scale multiplies every channel of c by factor, clamped to [0, 1].
// Useful for brightness and fade effects over pre-multiplied colors.
func Scale(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return color.RGBA{
		uint8(float64(c.R) * factor),
		uint8(float64(c.G) * factor),
		uint8(float64(c.B) * factor),
		uint8(float64(c.A) * factor),
	}
}
