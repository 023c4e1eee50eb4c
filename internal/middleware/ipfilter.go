package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// IPFilterMiddleware blocks requests based on client IP.
// Addresses in the blocklist are always rejected; a non-empty allowlist
// rejects everything outside it.
func IPFilterMiddleware(blocklist, allowlist []string) gin.HandlerFunc {
	blockedCIDRs := parseCIDRs(blocklist)
	allowedCIDRs := parseCIDRs(allowlist)

	return func(c *gin.Context) {
		// Extract client IP
		clientIP := extractIP(c)
		if clientIP == nil {
			c.AbortWithStatus(403)
			return
		}

		// Check blocklist
		for _, ipNet := range blockedCIDRs {
			if ipNet.Contains(clientIP) {
				c.AbortWithStatus(403)
				return
			}
		}

		// If an allowlist is configured, enforce it
		if len(allowedCIDRs) > 0 {
			allowed := false
			for _, ipNet := range allowedCIDRs {
				if ipNet.Contains(clientIP) {
					allowed = true
					break
				}
			}

			if !allowed {
				c.AbortWithStatus(403)
				return
			}
		}

		c.Next()
	}
}

// parseCIDRs accepts CIDR ranges and bare addresses; invalid entries are skipped
func parseCIDRs(entries []string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 32
				if ip.To4() == nil {
					bits = 128
				}
				nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			}
			continue
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err == nil {
			nets = append(nets, ipNet)
		}
	}
	return nets
}

// extractIP extracts the client IP from the request
// Handles X-Forwarded-For header if behind proxy
func extractIP(c *gin.Context) net.IP {
	// Check X-Forwarded-For header (if behind proxy)
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP in the list
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			return net.ParseIP(ip)
		}
	}

	// Fall back to RemoteAddr
	// Use SplitHostPort to properly handle IPv6 addresses with brackets
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		// If no port, use the whole string
		host = c.Request.RemoteAddr
	}

	return net.ParseIP(host)
}
