package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/brandaura/internal/app"
	"github.com/thatcatcamp/brandaura/internal/config"
	"github.com/thatcatcamp/brandaura/internal/logging"
	"github.com/thatcatcamp/brandaura/internal/tls"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the Brandaura HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runServer(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	saved, err := openSavedThemes(cfg)
	if err != nil {
		return err
	}

	opts := []app.Option{app.WithSavedThemes(saved)}

	var tlsManager *tls.Manager
	if cfg.Server.TLSEnabled {
		tlsCfg, err := tls.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load TLS config: %w", err)
		}
		tlsManager, err = tls.NewManager(tlsCfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize TLS manager: %w", err)
		}
		opts = append(opts, app.WithTLS(tlsManager))
	}

	a, err := app.Bootstrap(cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info().Str("frontend", a.Frontend().Base()).Msg("serving frontend")

	if tlsManager == nil {
		return a.Run(ctx)
	}

	// Bind both ports before serving so either failure surfaces immediately
	httpAddr := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s: %w", httpAddr, err)
	}

	httpsAddr := fmt.Sprintf(":%s", cfg.Server.HTTPSPort)
	httpsListener, err := net.Listen("tcp", httpsAddr)
	if err != nil {
		httpListener.Close()
		return fmt.Errorf("failed to bind HTTPS server to %s: %w", httpsAddr, err)
	}
	if err := tlsManager.Manage(ctx); err != nil {
		httpListener.Close()
		httpsListener.Close()
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Serve(ctx, httpListener)
	})
	g.Go(func() error {
		return a.ServeTLS(ctx, httpsListener)
	})

	return g.Wait()
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
