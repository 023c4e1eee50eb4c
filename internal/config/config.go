// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	// Set defaults
	setDefaults(filepath.Dir(configPath))

	// Set config file path
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// BRANDAURA_PROXY_TARGET overrides proxy.target, etc.
	v.SetEnvPrefix("BRANDAURA")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Try to read existing config
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, create it with defaults
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults(dataDir string) {
	// Server defaults
	v.SetDefault("server.http_port", "5173")
	v.SetDefault("server.https_port", "443")
	v.SetDefault("server.base_domain", "localhost")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Frontend defaults (mirrors the bundler's base path and alias)
	v.SetDefault("frontend.base", "/frontend/")
	v.SetDefault("frontend.dist_dir", "./dist")
	v.SetDefault("frontend.alias", map[string]string{"@": "./src"})

	// Theme defaults
	v.SetDefault("theme.preset", "brand")
	v.SetDefault("theme.primary_seed", "")
	v.SetDefault("theme.surface_seed", "")
	v.SetDefault("theme.interpolation", "rgb")
	v.SetDefault("theme.prefix", "p")
	v.SetDefault("theme.dark_mode_selector", "system")
	v.SetDefault("theme.css_layer", false)

	// Proxy defaults
	v.SetDefault("proxy.prefix", "/api")
	v.SetDefault("proxy.target", "http://127.0.0.1:8080")
	v.SetDefault("proxy.change_origin", true)
	v.SetDefault("proxy.strip_prefix", true)

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", filepath.Join(dataDir, "brandaura.db"))

	// Security defaults
	v.SetDefault("security.blocked_ips", []string{})
	v.SetDefault("security.allowed_ips", []string{})
	v.SetDefault("security.api_rate_limit", 120)
	v.SetDefault("security.api_rate_interval", "1m")

	// TLS defaults
	v.SetDefault("server.tls_enabled", false)
	v.SetDefault("tls.email", "")
	v.SetDefault("tls.cert_dir", filepath.Join(dataDir, "certs"))
	v.SetDefault("tls.staging", false)
	v.SetDefault("tls.domains", []string{})

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// GetStringSlice returns a config value as []string
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}
