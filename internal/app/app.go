// SPDX-License-Identifier: MIT

// Package app assembles the theme, SPA host, notification service and API
// proxy into one server handle.
package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thatcatcamp/brandaura/internal/config"
	"github.com/thatcatcamp/brandaura/internal/frontend"
	"github.com/thatcatcamp/brandaura/internal/middleware"
	"github.com/thatcatcamp/brandaura/internal/notify"
	"github.com/thatcatcamp/brandaura/internal/proxy"
	"github.com/thatcatcamp/brandaura/internal/store"
	"github.com/thatcatcamp/brandaura/internal/themes"
)

// Plugin is installed into the app during Bootstrap, in registration order
type Plugin interface {
	Name() string
	Install(a *App) error
}

// App is a fully constructed server. Its theme never changes after
// Bootstrap returns.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger

	theme    themes.ThemeConfig
	engine   *gin.Engine
	host     *frontend.Host
	notifier *notify.Hub
	proxy    *proxy.Proxy
	limiter  *middleware.RateLimiter

	plugins   []string
	installed map[string]bool

	savedThemes *store.Themes
	extra       []Plugin
	tlsConfig   TLSProvider
}

// TLSProvider supplies certificates for HTTPS and answers ACME challenges
// on the plain HTTP listener
type TLSProvider interface {
	TLSConfig() *tls.Config
	HTTPChallengeHandler(next http.Handler) http.Handler
}

// Option configures Bootstrap
type Option func(*App)

// WithSavedThemes lets an active saved theme override the configured seeds
func WithSavedThemes(s *store.Themes) Option {
	return func(a *App) {
		a.savedThemes = s
	}
}

// WithTLS enables ServeTLS
func WithTLS(p TLSProvider) Option {
	return func(a *App) {
		a.tlsConfig = p
	}
}

// WithPlugins installs extra plugins after the built-in ones
func WithPlugins(plugins ...Plugin) Option {
	return func(a *App) {
		a.extra = append(a.extra, plugins...)
	}
}

// Bootstrap builds the theme preset and wires every component. A bad seed
// color is fatal: no App is returned.
func Bootstrap(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		installed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}

	theme, err := ResolveTheme(cfg, a.savedThemes)
	if err != nil {
		return nil, fmt.Errorf("failed to build theme: %w", err)
	}
	a.theme = theme

	gin.SetMode(gin.ReleaseMode)
	a.engine = gin.New()
	a.engine.Use(gin.Recovery())
	a.engine.Use(middleware.RequestLogger(logger))
	if cfg.Server.TLSEnabled {
		a.engine.Use(middleware.HTTPSRedirectMiddleware(cfg.Server.HTTPSPort))
	}
	a.engine.Use(middleware.SecurityHeadersMiddleware(cfg.Server.TLSEnabled))

	a.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "brandaura",
			"theme":   a.theme.Preset.Name,
		})
	})

	a.host = frontend.NewHost(cfg.Frontend.Base, cfg.Frontend.DistDir, logger)

	plugins := append([]Plugin{&RouterPlugin{}, &NotificationPlugin{}}, a.extra...)
	for _, p := range plugins {
		if err := a.Use(p); err != nil {
			return nil, err
		}
	}

	if err := a.mountProxy(); err != nil {
		return nil, err
	}

	a.host.Register(a.engine)

	logger.Info().
		Str("theme", a.theme.Preset.Name).
		Str("primary", a.theme.Preset.Primary.MustGet(500)).
		Str("surface", a.theme.Preset.Surface.MustGet(500)).
		Strs("plugins", a.plugins).
		Msg("application bootstrapped")

	return a, nil
}

// Use installs a plugin. Names must be unique.
func (a *App) Use(p Plugin) error {
	name := p.Name()
	if a.installed[name] {
		return fmt.Errorf("plugin %q already registered", name)
	}
	if err := p.Install(a); err != nil {
		return fmt.Errorf("failed to install plugin %q: %w", name, err)
	}
	a.installed[name] = true
	a.plugins = append(a.plugins, name)
	return nil
}

// ResolveTheme picks seeds: active saved theme, then explicit config
// seeds, then the named catalog entry. saved may be nil.
func ResolveTheme(cfg *config.Config, saved *store.Themes) (themes.ThemeConfig, error) {
	tc := cfg.Theme

	opts := themes.Options{
		Prefix:           tc.Prefix,
		DarkModeSelector: tc.DarkModeSelector,
		CSSLayer:         tc.CSSLayer,
	}
	if err := opts.Validate(); err != nil {
		return themes.ThemeConfig{}, err
	}

	interp, err := themes.ParseInterpolation(tc.Interpolation)
	if err != nil {
		return themes.ThemeConfig{}, err
	}

	var seeds *themes.Seeds
	if saved != nil {
		active, err := saved.Active()
		switch {
		case err == nil:
			seeds = store.Seeds(active)
			if active.Interpolation != "" {
				if interp, err = themes.ParseInterpolation(active.Interpolation); err != nil {
					return themes.ThemeConfig{}, err
				}
			}
		case !errors.Is(err, store.ErrNotFound):
			return themes.ThemeConfig{}, err
		}
	}
	if seeds == nil && tc.PrimarySeed != "" {
		seeds = &themes.Seeds{Name: "custom", Primary: tc.PrimarySeed, Surface: tc.SurfaceSeed}
	}
	if seeds == nil {
		name := tc.Preset
		if name == "" {
			name = themes.DefaultSeedsName
		}
		seeds = themes.GetSeeds(name)
		if seeds == nil {
			return themes.ThemeConfig{}, fmt.Errorf("unknown theme preset %q", name)
		}
	}

	preset, err := seeds.Build(interp)
	if err != nil {
		return themes.ThemeConfig{}, err
	}
	return themes.ThemeConfig{Preset: preset, Options: opts}, nil
}

func (a *App) mountProxy() error {
	pc := a.cfg.Proxy
	if pc.Target == "" {
		a.logger.Info().Msg("proxy target not configured; /api forwarding disabled")
		return nil
	}

	rule, err := proxy.ParseRule(pc.Prefix, pc.Target, pc.ChangeOrigin, pc.StripPrefix)
	if err != nil {
		return err
	}

	p, err := proxy.New(rule, a.logger, proxy.WithErrorHook(func(r *http.Request, err error) {
		if a.notifier == nil {
			return
		}
		a.notifier.Publish(notify.Toast{
			Severity: notify.SeverityError,
			Summary:  "Backend unavailable",
			Detail:   r.Method + " " + proxy.OriginalPath(r),
			Life:     5 * time.Second,
		})
	}))
	if err != nil {
		return err
	}
	a.proxy = p

	handlers := []gin.HandlerFunc{middleware.IPFilterMiddleware(a.cfg.Security.BlockedIPs, a.cfg.Security.AllowedIPs)}
	if a.cfg.Security.APIRateLimit > 0 && a.cfg.Security.APIRateInterval > 0 {
		a.limiter = middleware.NewRateLimiter(a.cfg.Security.APIRateLimit, a.cfg.Security.APIRateInterval)
		handlers = append(handlers, middleware.RateLimitMiddleware(a.limiter, rule.Prefix))
	}
	handlers = append(handlers, p.Handler())

	prefix := "/" + trimSlashes(rule.Prefix)
	a.engine.Any(prefix, handlers...)
	a.engine.Any(prefix+"/*path", handlers...)
	return nil
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Theme returns the theme handed to the UI framework
func (a *App) Theme() themes.ThemeConfig {
	return a.theme
}

// Plugins returns installed plugin names in registration order
func (a *App) Plugins() []string {
	out := make([]string, len(a.plugins))
	copy(out, a.plugins)
	return out
}

// Notifier returns the toast hub
func (a *App) Notifier() *notify.Hub {
	return a.notifier
}

// Frontend returns the SPA host
func (a *App) Frontend() *frontend.Host {
	return a.host
}

// Handler returns the HTTP handler for the whole app
func (a *App) Handler() http.Handler {
	return a.engine
}

// Close releases background resources
func (a *App) Close() {
	if a.notifier != nil {
		a.notifier.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

// Run listens on server.http_port and serves until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", a.cfg.Server.HTTPPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s: %w", addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve runs plain HTTP on listener until ctx is cancelled, then shuts
// down gracefully within server.shutdown_timeout
func (a *App) Serve(ctx context.Context, listener net.Listener) error {
	var handler http.Handler = a.engine
	if a.tlsConfig != nil {
		handler = a.tlsConfig.HTTPChallengeHandler(handler)
	}
	return a.serve(ctx, &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, listener)
}

// ServeTLS is Serve over HTTPS using the configured TLS provider
func (a *App) ServeTLS(ctx context.Context, listener net.Listener) error {
	if a.tlsConfig == nil {
		return errors.New("TLS provider not configured")
	}
	return a.serve(ctx, &http.Server{
		Handler:           a.engine,
		TLSConfig:         a.tlsConfig.TLSConfig(),
		ReadHeaderTimeout: 10 * time.Second,
	}, listener)
}

func (a *App) serve(ctx context.Context, srv *http.Server, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if srv.TLSConfig != nil {
			err = srv.ServeTLS(listener, "", "")
		} else {
			err = srv.Serve(listener)
		}
		errCh <- err
	}()

	a.logger.Info().Str("addr", listener.Addr().String()).Bool("tls", srv.TLSConfig != nil).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	// close SSE streams first so Shutdown doesn't wait on them
	if a.notifier != nil {
		a.notifier.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
