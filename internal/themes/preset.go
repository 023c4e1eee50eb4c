// SPDX-License-Identifier: MIT
package themes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mode is a color-scheme mode
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ContrastLight is the text color drawn on primary surfaces in light mode
const ContrastLight = "#ffffff"

// BasePreset is the stock preset the brand preset extends
const BasePreset = "aura"

// ColorRoleMapping maps semantic roles to a literal color or a token
// reference such as "{primary.500}"
type ColorRoleMapping struct {
	Color         string `json:"color"`
	ContrastColor string `json:"contrastColor"`
	HoverColor    string `json:"hoverColor"`
	ActiveColor   string `json:"activeColor"`
}

// ColorScheme holds the role mappings for both modes
type ColorScheme struct {
	Light ColorRoleMapping
	Dark  ColorRoleMapping
}

// ThemePreset is the full styling configuration handed to the UI framework.
// It is built once and never modified afterwards.
type ThemePreset struct {
	Name        string
	Base        string
	Primary     Palette
	Surface     Palette
	ColorScheme ColorScheme
}

// TokenRef formats a reference to a palette stop, e.g. {primary.500}
func TokenRef(palette string, stop Stop) string {
	return "{" + palette + "." + strconv.Itoa(int(stop)) + "}"
}

// ParseTokenRef splits a token reference into palette name and stop
func ParseTokenRef(v string) (string, Stop, bool) {
	if !strings.HasPrefix(v, "{") || !strings.HasSuffix(v, "}") {
		return "", 0, false
	}
	name, stopStr, ok := strings.Cut(v[1:len(v)-1], ".")
	if !ok {
		return "", 0, false
	}
	n, err := strconv.Atoi(stopStr)
	if err != nil {
		return "", 0, false
	}
	if _, known := index(Stop(n)); !known {
		return "", 0, false
	}
	return name, Stop(n), true
}

// BuildThemePreset derives both palettes and assembles the light and dark
// role mappings. Either seed failing to parse yields no preset.
func BuildThemePreset(primarySeed, surfaceSeed string) (*ThemePreset, error) {
	return BuildThemePresetWith(primarySeed, surfaceSeed, InterpolationRGB)
}

// BuildThemePresetWith is BuildThemePreset with a chosen interpolation
func BuildThemePresetWith(primarySeed, surfaceSeed string, interp Interpolation) (*ThemePreset, error) {
	primary, err := DerivePaletteWith(primarySeed, interp)
	if err != nil {
		return nil, fmt.Errorf("primary seed: %w", err)
	}
	surface, err := DerivePaletteWith(surfaceSeed, interp)
	if err != nil {
		return nil, fmt.Errorf("surface seed: %w", err)
	}

	return &ThemePreset{
		Base:    BasePreset,
		Primary: primary,
		Surface: surface,
		ColorScheme: ColorScheme{
			Light: ColorRoleMapping{
				Color:         TokenRef("primary", 500),
				ContrastColor: ContrastLight,
				HoverColor:    TokenRef("primary", 600),
				ActiveColor:   TokenRef("primary", 700),
			},
			Dark: ColorRoleMapping{
				Color:         TokenRef("primary", 400),
				ContrastColor: TokenRef("surface", 900),
				HoverColor:    TokenRef("primary", 300),
				ActiveColor:   TokenRef("primary", 200),
			},
		},
	}, nil
}

// Mapping returns the raw role mapping for a mode
func (p *ThemePreset) Mapping(mode Mode) ColorRoleMapping {
	if mode == Dark {
		return p.ColorScheme.Dark
	}
	return p.ColorScheme.Light
}

// Resolve turns a token reference into its hex value. Literals pass through.
func (p *ThemePreset) Resolve(v string) (string, error) {
	name, stop, ok := ParseTokenRef(v)
	if !ok {
		if strings.HasPrefix(v, "{") {
			return "", fmt.Errorf("malformed token reference %q", v)
		}
		return v, nil
	}
	switch name {
	case "primary":
		return p.Primary.MustGet(stop), nil
	case "surface":
		return p.Surface.MustGet(stop), nil
	}
	return "", fmt.Errorf("unknown palette %q in %q", name, v)
}

// Resolved returns the role mapping for a mode with every reference
// replaced by a literal color
func (p *ThemePreset) Resolved(mode Mode) (ColorRoleMapping, error) {
	m := p.Mapping(mode)
	var out ColorRoleMapping
	for _, f := range []struct {
		src string
		dst *string
	}{
		{m.Color, &out.Color},
		{m.ContrastColor, &out.ContrastColor},
		{m.HoverColor, &out.HoverColor},
		{m.ActiveColor, &out.ActiveColor},
	} {
		v, err := p.Resolve(f.src)
		if err != nil {
			return ColorRoleMapping{}, err
		}
		*f.dst = v
	}
	return out, nil
}

type schemeJSON struct {
	Primary ColorRoleMapping `json:"primary"`
}

type colorSchemeJSON struct {
	Light schemeJSON `json:"light"`
	Dark  schemeJSON `json:"dark"`
}

type semanticJSON struct {
	Primary     Palette         `json:"primary"`
	Surface     Palette         `json:"surface"`
	ColorScheme colorSchemeJSON `json:"colorScheme"`
}

type presetJSON struct {
	Name     string       `json:"name,omitempty"`
	Base     string       `json:"base"`
	Semantic semanticJSON `json:"semantic"`
}

// MarshalJSON emits the definePreset shape:
// {"base","semantic":{"primary","surface","colorScheme":{"light":{"primary":{...}},"dark":{...}}}}
func (p *ThemePreset) MarshalJSON() ([]byte, error) {
	return json.Marshal(presetJSON{
		Name: p.Name,
		Base: p.Base,
		Semantic: semanticJSON{
			Primary: p.Primary,
			Surface: p.Surface,
			ColorScheme: colorSchemeJSON{
				Light: schemeJSON{Primary: p.ColorScheme.Light},
				Dark:  schemeJSON{Primary: p.ColorScheme.Dark},
			},
		},
	})
}
