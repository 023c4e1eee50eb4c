// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"strings"
)

// CSSLayerName is the cascade layer used when Options.CSSLayer is set
const CSSLayerName = "primevue"

// GenerateCSS renders the preset as CSS custom properties.
// Palette stops and light roles go on :root; dark roles go under the
// prefers-color-scheme media query or the configured selector.
func GenerateCSS(cfg ThemeConfig) string {
	prefix := cfg.Options.Prefix
	if prefix == "" {
		prefix = DefaultOptions().Prefix
	}
	p := cfg.Preset

	var b strings.Builder
	indent := ""
	if cfg.Options.CSSLayer {
		fmt.Fprintf(&b, "@layer %s {\n", CSSLayerName)
		indent = "  "
	}

	fmt.Fprintf(&b, "%s:root {\n", indent)
	writePalette(&b, indent+"  ", prefix, "primary", p.Primary)
	writePalette(&b, indent+"  ", prefix, "surface", p.Surface)
	writeRoles(&b, indent+"  ", prefix, p.ColorScheme.Light)
	fmt.Fprintf(&b, "%s}\n", indent)

	b.WriteString("\n")
	if cfg.Options.DarkModeSelector == DarkModeSystem || cfg.Options.DarkModeSelector == "" {
		fmt.Fprintf(&b, "%s@media (prefers-color-scheme: dark) {\n", indent)
		fmt.Fprintf(&b, "%s  :root {\n", indent)
		writeRoles(&b, indent+"    ", prefix, p.ColorScheme.Dark)
		fmt.Fprintf(&b, "%s  }\n", indent)
		fmt.Fprintf(&b, "%s}\n", indent)
	} else {
		fmt.Fprintf(&b, "%s%s {\n", indent, cfg.Options.DarkModeSelector)
		writeRoles(&b, indent+"  ", prefix, p.ColorScheme.Dark)
		fmt.Fprintf(&b, "%s}\n", indent)
	}

	if cfg.Options.CSSLayer {
		b.WriteString("}\n")
	}
	return b.String()
}

func writePalette(b *strings.Builder, indent, prefix, name string, p Palette) {
	for i, stop := range Stops {
		fmt.Fprintf(b, "%s--%s-%s-%d: %s;\n", indent, prefix, name, stop, p[i])
	}
}

func writeRoles(b *strings.Builder, indent, prefix string, m ColorRoleMapping) {
	fmt.Fprintf(b, "%s--%s-primary-color: %s;\n", indent, prefix, cssValue(prefix, m.Color))
	fmt.Fprintf(b, "%s--%s-primary-contrast-color: %s;\n", indent, prefix, cssValue(prefix, m.ContrastColor))
	fmt.Fprintf(b, "%s--%s-primary-hover-color: %s;\n", indent, prefix, cssValue(prefix, m.HoverColor))
	fmt.Fprintf(b, "%s--%s-primary-active-color: %s;\n", indent, prefix, cssValue(prefix, m.ActiveColor))
}

// cssValue turns {primary.500} into var(--p-primary-500); literals pass through
func cssValue(prefix, v string) string {
	if name, stop, ok := ParseTokenRef(v); ok {
		return fmt.Sprintf("var(--%s-%s-%d)", prefix, name, stop)
	}
	return v
}
