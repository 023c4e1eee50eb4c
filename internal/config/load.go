package config

import (
	"fmt"
	"strings"
	"time"
)

var envReplacer = strings.NewReplacer(".", "_")

// Config is the typed view of the settings the server needs at startup
type Config struct {
	Server   ServerConfig
	Frontend FrontendConfig
	Theme    ThemeConfig
	Proxy    ProxyConfig
	Database DatabaseConfig
	Security SecurityConfig
	Log      LogConfig
}

type ServerConfig struct {
	HTTPPort        string
	HTTPSPort       string
	BaseDomain      string
	TLSEnabled      bool
	ShutdownTimeout time.Duration
}

// FrontendConfig describes where the built SPA lives and how it is mounted
type FrontendConfig struct {
	Base    string
	DistDir string
	// Alias is build-time only; recorded for `config list`
	Alias map[string]string
}

// ThemeConfig selects the seeds and UI framework options
type ThemeConfig struct {
	Preset           string
	PrimarySeed      string
	SurfaceSeed      string
	Interpolation    string
	Prefix           string
	DarkModeSelector string
	CSSLayer         bool
}

// ProxyConfig is the /api forwarding rule
type ProxyConfig struct {
	Prefix       string
	Target       string
	ChangeOrigin bool
	StripPrefix  bool
}

type DatabaseConfig struct {
	Type string
	Path string
}

type SecurityConfig struct {
	BlockedIPs      []string
	AllowedIPs      []string
	APIRateLimit    int
	APIRateInterval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the initialized configuration into a Config
func Load() (*Config, error) {
	if v == nil {
		return nil, fmt.Errorf("config not initialized")
	}

	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        v.GetString("server.http_port"),
			HTTPSPort:       v.GetString("server.https_port"),
			BaseDomain:      v.GetString("server.base_domain"),
			TLSEnabled:      v.GetBool("server.tls_enabled"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Frontend: FrontendConfig{
			Base:    v.GetString("frontend.base"),
			DistDir: v.GetString("frontend.dist_dir"),
			Alias:   v.GetStringMapString("frontend.alias"),
		},
		Theme: ThemeConfig{
			Preset:           v.GetString("theme.preset"),
			PrimarySeed:      v.GetString("theme.primary_seed"),
			SurfaceSeed:      v.GetString("theme.surface_seed"),
			Interpolation:    v.GetString("theme.interpolation"),
			Prefix:           v.GetString("theme.prefix"),
			DarkModeSelector: v.GetString("theme.dark_mode_selector"),
			CSSLayer:         v.GetBool("theme.css_layer"),
		},
		Proxy: ProxyConfig{
			Prefix:       v.GetString("proxy.prefix"),
			Target:       v.GetString("proxy.target"),
			ChangeOrigin: v.GetBool("proxy.change_origin"),
			StripPrefix:  v.GetBool("proxy.strip_prefix"),
		},
		Database: DatabaseConfig{
			Type: v.GetString("database.type"),
			Path: v.GetString("database.path"),
		},
		Security: SecurityConfig{
			BlockedIPs:      v.GetStringSlice("security.blocked_ips"),
			AllowedIPs:      v.GetStringSlice("security.allowed_ips"),
			APIRateLimit:    v.GetInt("security.api_rate_limit"),
			APIRateInterval: v.GetDuration("security.api_rate_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.Server.HTTPPort == "" {
		return nil, fmt.Errorf("server.http_port is required")
	}
	if (cfg.Theme.PrimarySeed == "") != (cfg.Theme.SurfaceSeed == "") {
		return nil, fmt.Errorf("theme.primary_seed and theme.surface_seed must be set together")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	return cfg, nil
}

// Default returns the built-in defaults without touching a config file.
// Used by tests and by commands that only render themes.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        "5173",
			HTTPSPort:       "443",
			BaseDomain:      "localhost",
			ShutdownTimeout: 10 * time.Second,
		},
		Frontend: FrontendConfig{
			Base:    "/frontend/",
			DistDir: "./dist",
			Alias:   map[string]string{"@": "./src"},
		},
		Theme: ThemeConfig{
			Preset:           "brand",
			Interpolation:    "rgb",
			Prefix:           "p",
			DarkModeSelector: "system",
		},
		Proxy: ProxyConfig{
			Prefix:       "/api",
			Target:       "http://127.0.0.1:8080",
			ChangeOrigin: true,
			StripPrefix:  true,
		},
		Database: DatabaseConfig{Type: "sqlite"},
		Security: SecurityConfig{
			APIRateLimit:    120,
			APIRateInterval: time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}
