package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/caddyserver/certmagic"
	"github.com/rs/zerolog"
)

// Manager handles certificate provisioning and management
type Manager struct {
	cfg       *Config
	certmagic *certmagic.Config
	issuer    *certmagic.ACMEIssuer
	logger    zerolog.Logger
}

// NewManager creates a new TLS manager
func NewManager(cfg *Config, logger zerolog.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Create certmagic config
	var magicCfg *certmagic.Config
	cache := certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(certmagic.Certificate) (*certmagic.Config, error) {
			return magicCfg, nil
		},
	})

	magicCfg = certmagic.New(cache, certmagic.Config{
		Storage: &certmagic.FileStorage{Path: cfg.CertDir},
	})

	// Configure ACME issuer
	ca := certmagic.LetsEncryptProductionCA
	if cfg.Staging {
		ca = certmagic.LetsEncryptStagingCA
	}
	issuer := certmagic.NewACMEIssuer(magicCfg, certmagic.ACMEIssuer{
		CA:     ca,
		Email:  cfg.Email,
		Agreed: true,
	})
	magicCfg.Issuers = []certmagic.Issuer{issuer}

	return &Manager{
		cfg:       cfg,
		certmagic: magicCfg,
		issuer:    issuer,
		logger:    logger.With().Str("component", "tls").Logger(),
	}, nil
}

// GetAllowedDomains returns all domains that should have certificates
func (m *Manager) GetAllowedDomains() []string {
	return m.cfg.AllDomains()
}

// Manage starts obtaining and renewing certificates in the background
func (m *Manager) Manage(ctx context.Context) error {
	domains := m.GetAllowedDomains()

	m.logger.Info().Strs("domains", domains).Msg("managing certificates")

	// Tell certmagic to manage these domains
	if err := m.certmagic.ManageAsync(ctx, domains); err != nil {
		return fmt.Errorf("failed to manage domains: %w", err)
	}

	return nil
}

// TLSConfig returns TLS config for HTTPS server
func (m *Manager) TLSConfig() *tls.Config {
	return m.certmagic.TLSConfig()
}

// HTTPChallengeHandler answers ACME HTTP-01 challenges before passing
// requests to next
func (m *Manager) HTTPChallengeHandler(next http.Handler) http.Handler {
	return m.issuer.HTTPChallengeHandler(next)
}
