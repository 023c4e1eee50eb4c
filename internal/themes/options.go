package themes

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// DarkModeSystem follows the operating system's color-scheme preference
const DarkModeSystem = "system"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Options controls how the UI framework renders the preset
type Options struct {
	// Prefix namespaces every generated CSS variable: --<prefix>-primary-500
	Prefix string `json:"prefix"`
	// DarkModeSelector is "system" to follow prefers-color-scheme, or a CSS
	// selector (e.g. ".app-dark") that switches the dark mapping on
	DarkModeSelector string `json:"darkModeSelector"`
	// CSSLayer wraps generated styles in a cascade layer
	CSSLayer bool `json:"cssLayer"`
}

// DefaultOptions returns prefix "p", system dark mode, no css layer
func DefaultOptions() Options {
	return Options{
		Prefix:           "p",
		DarkModeSelector: DarkModeSystem,
		CSSLayer:         false,
	}
}

// Validate checks the options before they reach the renderer
func (o Options) Validate() error {
	if o.Prefix == "" {
		return errors.New("theme prefix is required")
	}
	if !identPattern.MatchString(o.Prefix) {
		return fmt.Errorf("theme prefix %q is not a valid CSS identifier", o.Prefix)
	}
	if o.DarkModeSelector == "" {
		return errors.New("dark mode selector is required")
	}
	return nil
}

// ThemeConfig is the value handed to the UI framework initializer
type ThemeConfig struct {
	Preset  *ThemePreset `json:"preset"`
	Options Options      `json:"options"`
}

// MarshalJSON wraps the config as {"theme": {...}}
func (c ThemeConfig) MarshalJSON() ([]byte, error) {
	type inner ThemeConfig
	return json.Marshal(struct {
		Theme inner `json:"theme"`
	}{Theme: inner(c)})
}
