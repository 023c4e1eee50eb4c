package tls

import (
	"fmt"
	"os"
	"strings"

	"github.com/thatcatcamp/brandaura/internal/config"
)

// Config holds TLS configuration
type Config struct {
	Email      string
	CertDir    string
	Staging    bool
	BaseDomain string
	// Domains are extra hostnames served alongside BaseDomain
	Domains []string
	Enabled bool
}

// LoadConfig loads TLS configuration from config system
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Email:      config.GetString("tls.email"),
		CertDir:    config.GetString("tls.cert_dir"),
		Staging:    config.GetBool("tls.staging"),
		BaseDomain: config.GetString("server.base_domain"),
		Domains:    config.GetStringSlice("tls.domains"),
		Enabled:    config.GetBool("server.tls_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create cert directory if it doesn't exist
	if cfg.CertDir != "" {
		if err := os.MkdirAll(cfg.CertDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create cert directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks required fields when TLS is enabled
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Email == "" {
		return fmt.Errorf("tls.email is required when TLS is enabled")
	}
	if c.BaseDomain == "" || c.BaseDomain == "localhost" {
		return fmt.Errorf("server.base_domain must be a public hostname when TLS is enabled")
	}
	return nil
}

// AllDomains returns BaseDomain followed by the extra domains, deduplicated
func (c *Config) AllDomains() []string {
	seen := make(map[string]bool)
	var domains []string
	for _, d := range append([]string{c.BaseDomain}, c.Domains...) {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		domains = append(domains, d)
	}
	return domains
}
