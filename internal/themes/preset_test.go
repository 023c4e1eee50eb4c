// SPDX-License-Identifier: MIT
package themes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThemePresetRoles(t *testing.T) {
	preset, err := BuildThemePreset("#334155", "#64748b")
	require.NoError(t, err)
	require.NotNil(t, preset)

	primary, err := DerivePalette("#334155")
	require.NoError(t, err)
	surface, err := DerivePalette("#64748b")
	require.NoError(t, err)
	assert.Equal(t, primary, preset.Primary)
	assert.Equal(t, surface, preset.Surface)

	assert.Equal(t, ColorRoleMapping{
		Color:         "{primary.500}",
		ContrastColor: "#ffffff",
		HoverColor:    "{primary.600}",
		ActiveColor:   "{primary.700}",
	}, preset.ColorScheme.Light)
	assert.Equal(t, ColorRoleMapping{
		Color:         "{primary.400}",
		ContrastColor: "{surface.900}",
		HoverColor:    "{primary.300}",
		ActiveColor:   "{primary.200}",
	}, preset.ColorScheme.Dark)

	light, err := preset.Resolved(Light)
	require.NoError(t, err)
	assert.Equal(t, primary.MustGet(500), light.Color)
	assert.Equal(t, "#ffffff", light.ContrastColor)
	assert.Equal(t, primary.MustGet(600), light.HoverColor)
	assert.Equal(t, primary.MustGet(700), light.ActiveColor)

	dark, err := preset.Resolved(Dark)
	require.NoError(t, err)
	assert.Equal(t, primary.MustGet(400), dark.Color)
	assert.Equal(t, surface.MustGet(900), dark.ContrastColor)
	assert.Equal(t, primary.MustGet(300), dark.HoverColor)
	assert.Equal(t, primary.MustGet(200), dark.ActiveColor)
}

func TestBuildThemePresetInvalidSeed(t *testing.T) {
	preset, err := BuildThemePreset("not-a-color", "#64748b")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
	assert.Nil(t, preset)

	preset, err = BuildThemePreset("#334155", "not-a-color")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)
	assert.Nil(t, preset)
}

func TestParseTokenRef(t *testing.T) {
	name, stop, ok := ParseTokenRef("{surface.900}")
	require.True(t, ok)
	assert.Equal(t, "surface", name)
	assert.Equal(t, Stop(900), stop)

	for _, v := range []string{"#ffffff", "{primary}", "{primary.550}", "{primary.x}", "primary.500"} {
		_, _, ok := ParseTokenRef(v)
		assert.False(t, ok, v)
	}
}

func TestResolveRejectsUnknownReferences(t *testing.T) {
	preset, err := BuildThemePreset("#334155", "#64748b")
	require.NoError(t, err)

	_, err = preset.Resolve("{accent.500}")
	assert.Error(t, err)
	_, err = preset.Resolve("{primary.42}")
	assert.Error(t, err)

	v, err := preset.Resolve("#123456")
	require.NoError(t, err)
	assert.Equal(t, "#123456", v)
}

func TestThemePresetJSONShape(t *testing.T) {
	preset, err := BuildThemePreset("#334155", "#64748b")
	require.NoError(t, err)
	preset.Name = "brand"

	data, err := json.Marshal(preset)
	require.NoError(t, err)

	var doc struct {
		Name     string `json:"name"`
		Base     string `json:"base"`
		Semantic struct {
			Primary     map[string]string `json:"primary"`
			Surface     map[string]string `json:"surface"`
			ColorScheme struct {
				Light struct {
					Primary ColorRoleMapping `json:"primary"`
				} `json:"light"`
				Dark struct {
					Primary ColorRoleMapping `json:"primary"`
				} `json:"dark"`
			} `json:"colorScheme"`
		} `json:"semantic"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "brand", doc.Name)
	assert.Equal(t, "aura", doc.Base)
	assert.Equal(t, "#334155", doc.Semantic.Primary["500"])
	assert.Len(t, doc.Semantic.Surface, 11)
	assert.Equal(t, "{primary.600}", doc.Semantic.ColorScheme.Light.Primary.HoverColor)
	assert.Equal(t, "{surface.900}", doc.Semantic.ColorScheme.Dark.Primary.ContrastColor)
}
