// SPDX-License-Identifier: MIT
package themes

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a seed color cannot be parsed
var ErrInvalidColorFormat = errors.New("invalid color format")

// Stop identifies one step of a palette ramp (50 is lightest, 950 darkest)
type Stop int

// Stops is the fixed, ordered set of stop identifiers shared by every palette
var Stops = [11]Stop{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

// baseIndex is the position of stop 500, which holds the seed itself
const baseIndex = 5

const (
	tintStep  = 19 // percent toward white per stop above 500
	shadeStep = 15 // percent toward black per stop below 500
)

// Interpolation selects the color space used to mix tints and shades
type Interpolation string

const (
	InterpolationRGB Interpolation = "rgb"
	InterpolationLab Interpolation = "lab"
)

// ParseInterpolation maps a config value to an Interpolation
func ParseInterpolation(s string) (Interpolation, error) {
	switch Interpolation(strings.ToLower(strings.TrimSpace(s))) {
	case "", InterpolationRGB:
		return InterpolationRGB, nil
	case InterpolationLab:
		return InterpolationLab, nil
	}
	return "", fmt.Errorf("unknown interpolation %q (want rgb or lab)", s)
}

// Palette is an 11-step tint/shade ramp, indexed in Stops order
type Palette [11]string

// index returns the array position of a stop
func index(stop Stop) (int, bool) {
	for i, s := range Stops {
		if s == stop {
			return i, true
		}
	}
	return 0, false
}

// Get returns the color at a stop
func (p Palette) Get(stop Stop) (string, bool) {
	i, ok := index(stop)
	if !ok {
		return "", false
	}
	return p[i], true
}

// MustGet returns the color at a stop and panics on an unknown stop
func (p Palette) MustGet(stop Stop) string {
	c, ok := p.Get(stop)
	if !ok {
		panic(fmt.Sprintf("themes: unknown palette stop %d", stop))
	}
	return c
}

// Stops returns the stop names in ramp order
func (p Palette) Stops() []Stop {
	return Stops[:]
}

// Map returns the palette keyed by stop name ("50" ... "950")
func (p Palette) Map() map[string]string {
	m := make(map[string]string, len(Stops))
	for i, s := range Stops {
		m[strconv.Itoa(int(s))] = p[i]
	}
	return m
}

// MarshalJSON writes the stops in ramp order rather than sorted key order
func (p Palette) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range Stops {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%q", strconv.Itoa(int(s)), p[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseColor parses a #rgb or #rrggbb seed
func ParseColor(seed string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(seed))
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, seed)
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, seed)
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, seed)
	}
	return c, nil
}

// NormalizeColor returns the seed as lowercase #rrggbb
func NormalizeColor(seed string) (string, error) {
	c, err := ParseColor(seed)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// DerivePalette builds the 11-stop ramp for a seed using RGB mixing
func DerivePalette(seed string) (Palette, error) {
	return DerivePaletteWith(seed, InterpolationRGB)
}

// DerivePaletteWith builds the ramp using the given interpolation.
// Stops 50..400 mix the seed toward white, 600..950 toward black, and 500
// is the seed.
func DerivePaletteWith(seed string, interp Interpolation) (Palette, error) {
	base, err := ParseColor(seed)
	if err != nil {
		return Palette{}, err
	}

	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}

	var p Palette
	for i := range Stops {
		switch {
		case i < baseIndex:
			p[i] = mix(base, white, float64((baseIndex-i)*tintStep)/100, interp)
		case i > baseIndex:
			p[i] = mix(base, black, float64((i-baseIndex)*shadeStep)/100, interp)
		default:
			p[i] = base.Hex()
		}
	}
	return p, nil
}

func mix(from, to colorful.Color, t float64, interp Interpolation) string {
	if interp == InterpolationLab {
		return from.BlendLab(to, t).Clamped().Hex()
	}
	return from.BlendRgb(to, t).Clamped().Hex()
}

// Lightness returns the CIE L* of a hex color in [0, 1]
func Lightness(hex string) (float64, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return 0, err
	}
	l, _, _ := c.Lab()
	return l, nil
}
