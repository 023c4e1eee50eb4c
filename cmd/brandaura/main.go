// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brandaura",
	Short: "Brandaura - branded UI theme server",
	Long: `Brandaura derives an eleven-stop color palette from two brand seed
colors, builds a UI theme preset from them, and serves it alongside a
single-page frontend with an API proxy and toast notifications.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
