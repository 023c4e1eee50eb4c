package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/brandaura/internal/app"
	"github.com/thatcatcamp/brandaura/internal/config"
	"github.com/thatcatcamp/brandaura/internal/db"
	"github.com/thatcatcamp/brandaura/internal/store"
	"github.com/thatcatcamp/brandaura/internal/themes"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Theme operations",
	Long:  "Inspect palettes, render the active theme, and manage saved seed pairs",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the theme the server would use",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		saved, err := openSavedThemes(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		theme, err := app.ResolveTheme(cfg, saved)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		asCSS, _ := cmd.Flags().GetBool("css")
		asJSON, _ := cmd.Flags().GetBool("json")
		switch {
		case asCSS:
			fmt.Print(themes.GenerateCSS(theme))
		case asJSON:
			out, err := json.MarshalIndent(theme, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		default:
			fmt.Printf("Theme: %s\n\n", theme.Preset.Name)
			renderPalette(os.Stdout, "primary", theme.Preset.Primary)
			fmt.Println()
			renderPalette(os.Stdout, "surface", theme.Preset.Surface)
		}
	},
}

var themePaletteCmd = &cobra.Command{
	Use:   "palette <seed>",
	Short: "Derive and print the palette for a seed color",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		interpFlag, _ := cmd.Flags().GetString("interpolation")
		interp, err := themes.ParseInterpolation(interpFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		palette, err := themes.DerivePaletteWith(args[0], interp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		renderPalette(os.Stdout, args[0], palette)
	},
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in seed pairs",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-10s %-10s %s\n", "Name", "Primary", "Surface")
		for _, s := range themes.ListSeeds() {
			fmt.Printf("%-10s %s %s\n", s.Name, swatch(s.Primary, 9), swatch(s.Surface, 9))
		}
	},
}

var themeSaveCmd = &cobra.Command{
	Use:   "save <name> <primary> <surface>",
	Short: "Save a named seed pair",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		saved := mustSavedThemes()

		interpFlag, _ := cmd.Flags().GetString("interpolation")
		interp, err := themes.ParseInterpolation(interpFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		theme, err := saved.Save(args[0], args[1], args[2], interp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Saved theme %s (primary %s, surface %s)\n", theme.Name, theme.PrimarySeed, theme.SurfaceSeed)

		if use, _ := cmd.Flags().GetBool("use"); use {
			if err := saved.Use(theme.Name); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Theme %s is now active. Restart the server to apply.\n", theme.Name)
		}
	},
}

var themeUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a saved theme active",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := mustSavedThemes().Use(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Theme %s is now active. Restart the server to apply.\n", args[0])
	},
}

var themeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved theme",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := mustSavedThemes().Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted theme %s\n", args[0])
	},
}

var themeSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved themes",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := mustSavedThemes().List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(list) == 0 {
			fmt.Println("No saved themes. Create one with: brandaura theme save <name> <primary> <surface>")
			return
		}

		fmt.Printf("%-20s %-10s %-10s %-6s %s\n", "Name", "Primary", "Surface", "Mix", "Active")
		for _, t := range list {
			active := ""
			if t.Active {
				active = "*"
			}
			fmt.Printf("%-20s %-10s %-10s %-6s %s\n", t.Name, t.PrimarySeed, t.SurfaceSeed, t.Interpolation, active)
		}
	},
}

// renderPalette prints one colored row per stop
func renderPalette(w io.Writer, title string, p themes.Palette) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
	for i, stop := range themes.Stops {
		fmt.Fprintf(w, "  %-4d %s\n", stop, swatch(p[i], 9))
	}
}

// swatch renders hex as a colored block with a readable label
func swatch(hex string, width int) string {
	fg := "#ffffff"
	if l, err := themes.Lightness(hex); err == nil && l > 0.6 {
		fg = "#000000"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(hex)).
		Width(width).
		Align(lipgloss.Center).
		Render(strings.TrimPrefix(hex, "#"))
}

func mustLoadConfig() *config.Config {
	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func mustSavedThemes() *store.Themes {
	saved, err := openSavedThemes(mustLoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return saved
}

// openSavedThemes opens the configured database
func openSavedThemes(cfg *config.Config) (*store.Themes, error) {
	if err := db.InitDB(cfg.Database.Type, cfg.Database.Path); err != nil {
		return nil, err
	}
	return store.NewThemes(db.GetDB()), nil
}

func init() {
	themeShowCmd.Flags().Bool("css", false, "Print the generated CSS variables")
	themeShowCmd.Flags().Bool("json", false, "Print the theme configuration as JSON")
	themePaletteCmd.Flags().String("interpolation", "rgb", "Color mixing space (rgb or lab)")
	themeSaveCmd.Flags().String("interpolation", "rgb", "Color mixing space (rgb or lab)")
	themeSaveCmd.Flags().Bool("use", false, "Make the saved theme active")

	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themePaletteCmd)
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeSaveCmd)
	themeCmd.AddCommand(themeUseCmd)
	themeCmd.AddCommand(themeDeleteCmd)
	themeCmd.AddCommand(themeSavedCmd)
	rootCmd.AddCommand(themeCmd)
}
