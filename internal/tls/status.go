package tls

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"time"
)

// certmagic stores certs in: {certDir}/certificates/{ca}/{domain}/{domain}.crt
var caDirs = []string{
	"acme-v02.api.letsencrypt.org-directory",
	"acme-staging-v02.api.letsencrypt.org-directory",
}

// CertificateStatus represents the status of a managed certificate
type CertificateStatus struct {
	Domain          string
	Issuer          string
	NotBefore       time.Time
	NotAfter        time.Time
	DaysUntilExpiry int
}

// GetCertificateStatus returns the status of all provisioned certificates.
// Domains without a certificate on disk are omitted.
func GetCertificateStatus(cfg *Config, now time.Time) []CertificateStatus {
	var statuses []CertificateStatus

	for _, domain := range cfg.AllDomains() {
		cert := loadCertificate(cfg.CertDir, domain)
		if cert == nil {
			// Not yet provisioned
			continue
		}

		statuses = append(statuses, CertificateStatus{
			Domain:          domain,
			Issuer:          cert.Issuer.CommonName,
			NotBefore:       cert.NotBefore,
			NotAfter:        cert.NotAfter,
			DaysUntilExpiry: int(cert.NotAfter.Sub(now).Hours() / 24),
		})
	}

	return statuses
}

// loadCertificate tries the production CA first, then staging
func loadCertificate(certDir, domain string) *x509.Certificate {
	for _, ca := range caDirs {
		certPEM, err := os.ReadFile(filepath.Join(certDir, "certificates", ca, domain, domain+".crt"))
		if err != nil {
			continue
		}

		block, _ := pem.Decode(certPEM)
		if block == nil {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		return cert
	}
	return nil
}
