// Package colorx implements the OASIS Color type: a 32-bit
// premultiplied-ready (r,g,b,a) tuple with the hex grammar and the
// lighten/darken/alpha transforms theme derivation is built on.
package colorx

import (
	"fmt"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// Color is an (r,g,b,a) tuple, each channel in [0,255].
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA builds a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// ParseHex parses `#RGB`, `#RRGGBB`, or `#RRGGBBAA`. Parsing is total:
// malformed input yields a typed *errors.Error rather than panicking.
func ParseHex(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, oerrors.New(oerrors.KindParse, "color must start with #").WithInput(s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, err := hexNibble(hex[0])
		if err != nil {
			return Color{}, badColor(s)
		}
		g, err := hexNibble(hex[1])
		if err != nil {
			return Color{}, badColor(s)
		}
		b, err := hexNibble(hex[2])
		if err != nil {
			return Color{}, badColor(s)
		}
		return RGB(r*17, g*17, b*17), nil
	case 6:
		r, g, b, ok := parseByteTriple(hex)
		if !ok {
			return Color{}, badColor(s)
		}
		return RGB(r, g, b), nil
	case 8:
		r, g, b, ok := parseByteTriple(hex[:6])
		if !ok {
			return Color{}, badColor(s)
		}
		a, err := hexByte(hex[6:8])
		if err != nil {
			return Color{}, badColor(s)
		}
		return RGBA(r, g, b, a), nil
	default:
		return Color{}, badColor(s)
	}
}

func badColor(s string) error {
	return oerrors.New(oerrors.KindParse, "invalid color literal").WithInput(s)
}

func parseByteTriple(hex string) (r, g, b uint8, ok bool) {
	rb, err := hexByte(hex[0:2])
	if err != nil {
		return 0, 0, 0, false
	}
	gb, err := hexByte(hex[2:4])
	if err != nil {
		return 0, 0, 0, false
	}
	bb, err := hexByte(hex[4:6])
	if err != nil {
		return 0, 0, 0, false
	}
	return rb, gb, bb, true
}

func hexByte(s string) (uint8, error) {
	hi, err := hexNibble(s[0])
	if err != nil {
		return 0, err
	}
	lo, err := hexNibble(s[1])
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}

func hexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("not hex: %c", c)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so Color fields
// decode directly from TOML/YAML/JSON string values like "#3a3a3a".
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Hex renders the color as #RRGGBB, or #RRGGBBAA when A != 255.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Lighten blends the color toward white by the given amount in [0,1].
func (c Color) Lighten(amount float64) Color {
	return Color{
		R: blendToward(c.R, 255, amount),
		G: blendToward(c.G, 255, amount),
		B: blendToward(c.B, 255, amount),
		A: c.A,
	}
}

// Darken blends the color toward black by the given amount in [0,1].
func (c Color) Darken(amount float64) Color {
	return Color{
		R: blendToward(c.R, 0, amount),
		G: blendToward(c.G, 0, amount),
		B: blendToward(c.B, 0, amount),
		A: c.A,
	}
}

// WithAlpha returns a copy with alpha set from a [0,1] fraction.
func (c Color) WithAlpha(fraction float64) Color {
	c.A = clampByte(fraction * 255)
	return c
}

func blendToward(channel, target uint8, amount float64) uint8 {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	delta := float64(target) - float64(channel)
	return clampByte(float64(channel) + delta*amount)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
