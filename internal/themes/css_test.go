// SPDX-License-Identifier: MIT
package themes

import (
	"strings"
	"testing"
)

func brandConfig(t *testing.T) ThemeConfig {
	t.Helper()
	preset, err := GetSeeds("brand").Build(InterpolationRGB)
	if err != nil {
		t.Fatalf("build preset: %v", err)
	}
	return ThemeConfig{Preset: preset, Options: DefaultOptions()}
}

func TestGenerateCSS(t *testing.T) {
	css := GenerateCSS(brandConfig(t))

	if css == "" {
		t.Fatal("GenerateCSS returned empty string")
	}
}

func TestGeneratedCSSContainsVariables(t *testing.T) {
	css := GenerateCSS(brandConfig(t))

	expectedVars := []string{
		"--p-primary-50:",
		"--p-primary-950:",
		"--p-surface-50:",
		"--p-surface-950:",
		"--p-primary-color: var(--p-primary-500);",
		"--p-primary-contrast-color: #ffffff;",
		"--p-primary-hover-color: var(--p-primary-600);",
		"--p-primary-active-color: var(--p-primary-700);",
		"--p-primary-contrast-color: var(--p-surface-900);",
	}

	for _, variable := range expectedVars {
		if !strings.Contains(css, variable) {
			t.Errorf("CSS missing variable: %s", variable)
		}
	}
}

func TestGeneratedCSSContainsHexValues(t *testing.T) {
	cfg := brandConfig(t)
	css := GenerateCSS(cfg)

	if !strings.Contains(css, "--p-primary-500: #334155;") {
		t.Errorf("CSS does not contain primary seed")
	}
	if !strings.Contains(css, "--p-surface-900: "+cfg.Preset.Surface.MustGet(900)+";") {
		t.Errorf("CSS does not contain surface 900")
	}
}

func TestGeneratedCSSSystemDarkMode(t *testing.T) {
	css := GenerateCSS(brandConfig(t))

	if !strings.Contains(css, ":root {") {
		t.Fatal("CSS missing :root selector")
	}
	if !strings.Contains(css, "@media (prefers-color-scheme: dark) {") {
		t.Fatal("CSS missing dark media query")
	}
	if strings.Contains(css, "@layer") {
		t.Fatal("CSS should not use a layer by default")
	}
}

func TestGeneratedCSSSelectorDarkMode(t *testing.T) {
	cfg := brandConfig(t)
	cfg.Options.DarkModeSelector = ".app-dark"
	cfg.Options.Prefix = "brand"
	css := GenerateCSS(cfg)

	if strings.Contains(css, "prefers-color-scheme") {
		t.Fatal("selector mode should not emit media query")
	}
	if !strings.Contains(css, ".app-dark {\n  --brand-primary-color: var(--brand-primary-400);") {
		t.Fatalf("dark selector block missing:\n%s", css)
	}
}

func TestGeneratedCSSLayer(t *testing.T) {
	cfg := brandConfig(t)
	cfg.Options.CSSLayer = true
	css := GenerateCSS(cfg)

	if !strings.HasPrefix(css, "@layer primevue {\n") {
		t.Fatalf("expected layer wrapper, got:\n%s", css)
	}
	if strings.Count(css, "{") != strings.Count(css, "}") {
		t.Fatal("unbalanced braces")
	}
}

func TestCSSGenerationLightVsDarkSelectors(t *testing.T) {
	cfg := brandConfig(t)
	system := GenerateCSS(cfg)
	cfg.Options.DarkModeSelector = ".dark"
	selector := GenerateCSS(cfg)

	if system == selector {
		t.Fatal("system and selector CSS should be different")
	}
	if GenerateCSS(cfg) != selector {
		t.Fatal("CSS generation should be deterministic")
	}
}
