package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/brandaura/internal/config"
	"github.com/thatcatcamp/brandaura/internal/tls"
)

var tlsCmd = &cobra.Command{
	Use:   "tls",
	Short: "TLS certificate management",
	Long:  "Manage SSL/TLS certificates for the Brandaura server",
}

var tlsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show certificate status",
	Long:  "Display the status of all managed SSL/TLS certificates",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if !config.GetBool("server.tls_enabled") {
			fmt.Println("TLS is disabled. Enable it with: brandaura config set server.tls_enabled true")
			os.Exit(0)
		}

		tlsCfg, err := tls.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load TLS config: %v\n", err)
			os.Exit(1)
		}

		statuses := tls.GetCertificateStatus(tlsCfg, time.Now())
		if len(statuses) == 0 {
			fmt.Println("No certificates found. Certificates are provisioned when the server starts with TLS enabled.")
			fmt.Println("\nConfigured domains:")
			for _, domain := range tlsCfg.AllDomains() {
				fmt.Printf("  - %s (not yet provisioned)\n", domain)
			}
			os.Exit(0)
		}

		fmt.Printf("%-30s %-20s %-15s %s\n", "Domain", "Issuer", "Expires", "Days Left")
		fmt.Println("-----------------------------------------------------------------------------------")
		for _, status := range statuses {
			fmt.Printf("%-30s %-20s %-15s %d\n",
				status.Domain,
				status.Issuer,
				status.NotAfter.Format("2006-01-02"),
				status.DaysUntilExpiry,
			)
		}
	},
}

func init() {
	tlsCmd.AddCommand(tlsStatusCmd)
	rootCmd.AddCommand(tlsCmd)
}
