package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a linear color with channels nominally in [0, 1].
type RGB struct {
	R, G, B float64
}

// FallbackColor replaces any color string that cannot be parsed.
var FallbackColor = RGB{R: 0.5, G: 0.5, B: 0.5}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{
		R: float64((v>>16)&0xFF) / 255,
		G: float64((v>>8)&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, true
}

// MustHex parses s and panics on malformed input. Only for literals.
func MustHex(s string) RGB {
	c, ok := ParseHex(s)
	if !ok {
		panic(fmt.Sprintf("params: malformed color literal %q", s))
	}
	return c
}

// Hex formats the color as "#rrggbb" after clamping to [0, 1].
func (c RGB) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// RGBA8 returns the clamped channels as bytes.
func (c RGB) RGBA8() (uint8, uint8, uint8) {
	c = c.Clamp()
	return to8(c.R), to8(c.G), to8(c.B)
}

// Add returns c + o.
func (c RGB) Add(o RGB) RGB { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }

// Scale returns c * s.
func (c RGB) Scale(s float64) RGB { return RGB{c.R * s, c.G * s, c.B * s} }

// Mul returns the channel-wise product.
func (c RGB) Mul(o RGB) RGB { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }

// Mix linearly interpolates from c to o. t is clamped to [0, 1].
func (c RGB) Mix(o RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Clamp limits every channel to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Luminance uses Rec. 709 weights.
func (c RGB) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Saturate pushes the color away from (s > 1) or toward (s < 1) its gray.
func (c RGB) Saturate(s float64) RGB {
	l := c.Luminance()
	gray := RGB{l, l, l}
	return gray.Add(c.Add(gray.Scale(-1)).Scale(s))
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
