// SPDX-License-Identifier: MIT
package themes

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestDerivePaletteBrandSeed(t *testing.T) {
	p, err := DerivePalette("#334155")
	require.NoError(t, err)

	want := Palette{
		"#f5f6f7", "#ced1d6", "#a7adb6", "#818996", "#5a6575",
		"#334155",
		"#2b3748", "#242d3c", "#1c242f", "#141a22", "#0d1015",
	}
	assert.Equal(t, want, p)
}

func TestDerivePaletteHasAllStops(t *testing.T) {
	for _, seed := range []string{"#334155", "#64748b", "#000000", "#ffffff", "#f0A", "  #E11D48 "} {
		p, err := DerivePalette(seed)
		require.NoError(t, err, seed)

		m := p.Map()
		assert.Len(t, m, 11)
		for _, stop := range []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"} {
			c, ok := m[stop]
			require.True(t, ok, "seed %s missing stop %s", seed, stop)
			assert.Regexp(t, hexPattern, c)
		}
	}
}

func TestDerivePaletteIsDeterministic(t *testing.T) {
	a, err := DerivePalette("#64748b")
	require.NoError(t, err)
	b, err := DerivePalette("#64748b")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := DerivePaletteWith("#64748b", InterpolationLab)
	require.NoError(t, err)
	d, err := DerivePaletteWith("#64748b", InterpolationLab)
	require.NoError(t, err)
	assert.Equal(t, c, d)
}

func TestDerivePaletteStop500IsSeed(t *testing.T) {
	p, err := DerivePalette("#E11D48")
	require.NoError(t, err)
	assert.Equal(t, "#e11d48", p.MustGet(500))

	short, err := DerivePalette("#abc")
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", short.MustGet(500))
}

func TestDerivePaletteLightnessIsMonotonic(t *testing.T) {
	seeds := map[Interpolation][]string{
		InterpolationRGB: {"#334155", "#64748b", "#4f46e5", "#e11d48", "#059669", "#000080", "#f59e0b", "#ffffff", "#000000"},
		// low-chroma seeds stay inside the sRGB gamut when mixed in lab
		InterpolationLab: {"#334155", "#64748b", "#6b7280", "#ffffff", "#000000"},
	}
	for interp, list := range seeds {
		for _, seed := range list {
			p, err := DerivePaletteWith(seed, interp)
			require.NoError(t, err)

			prev := 2.0
			for i, c := range p {
				l, err := Lightness(c)
				require.NoError(t, err)
				assert.LessOrEqual(t, l, prev+0.005, "%s/%s stop %d", interp, seed, Stops[i])
				prev = l
			}
		}
	}
}

func TestDerivePaletteInvalidSeed(t *testing.T) {
	for _, seed := range []string{"not-a-color", "", "#", "334155", "#12345", "#1234567", "#zzzzzz", "rgb(1,2,3)"} {
		_, err := DerivePalette(seed)
		assert.ErrorIs(t, err, ErrInvalidColorFormat, "seed %q", seed)
	}
}

func TestPaletteGetUnknownStop(t *testing.T) {
	p, err := DerivePalette("#334155")
	require.NoError(t, err)

	_, ok := p.Get(550)
	assert.False(t, ok)
	assert.Panics(t, func() { p.MustGet(1000) })

	stops := p.Stops()
	require.Len(t, stops, 11)
	assert.Equal(t, Stop(50), stops[0])
	assert.Equal(t, Stop(950), stops[10])
}

func TestPaletteJSONKeepsRampOrder(t *testing.T) {
	p, err := DerivePalette("#334155")
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"50":"#f5f6f7","100":.*"950":"#0d1015"\}$`, string(data))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p.Map(), decoded)
}

func TestParseInterpolation(t *testing.T) {
	i, err := ParseInterpolation("")
	require.NoError(t, err)
	assert.Equal(t, InterpolationRGB, i)

	i, err = ParseInterpolation("LAB")
	require.NoError(t, err)
	assert.Equal(t, InterpolationLab, i)

	_, err = ParseInterpolation("hsl")
	assert.Error(t, err)
}
