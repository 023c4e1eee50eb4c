// SPDX-License-Identifier: MIT

// Package frontend serves the built single-page app under its base path.
package frontend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const indexFile = "index.html"

// NormalizeBase returns base with a leading and trailing slash
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// Host serves the SPA bundle from DistDir. Paths that don't name a file
// fall back to index.html so client-side routes survive a reload.
type Host struct {
	base    string
	distDir string
	logger  zerolog.Logger

	mu        sync.RWMutex
	endpoints map[string]gin.HandlerFunc
}

// NewHost creates a host for distDir mounted at base
func NewHost(base, distDir string, logger zerolog.Logger) *Host {
	return &Host{
		base:      NormalizeBase(base),
		distDir:   distDir,
		logger:    logger.With().Str("component", "frontend").Logger(),
		endpoints: make(map[string]gin.HandlerFunc),
	}
}

// Base returns the normalized mount path
func (h *Host) Base() string {
	return h.base
}

// URL returns the public path for a name under the base
func (h *Host) URL(name string) string {
	return h.base + strings.TrimPrefix(name, "/")
}

// Handle registers a generated endpoint under the base, e.g. "theme.css".
// Endpoints take precedence over files in DistDir.
func (h *Host) Handle(name string, handler gin.HandlerFunc) error {
	name = "/" + strings.TrimPrefix(name, "/")
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.endpoints[name]; exists {
		return fmt.Errorf("frontend endpoint %s already registered", name)
	}
	h.endpoints[name] = handler
	return nil
}

// Register mounts the host on the router
func (h *Host) Register(r *gin.Engine) {
	if h.base == "/" {
		r.NoRoute(h.serve)
		return
	}

	r.GET(h.base+"*filepath", h.serve)
	r.HEAD(h.base+"*filepath", h.serve)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, h.base)
	})
}

func (h *Host) serve(c *gin.Context) {
	rel := c.Param("filepath")
	if h.base == "/" {
		rel = c.Request.URL.Path
	}
	rel = path.Clean("/" + rel)

	h.mu.RLock()
	endpoint, ok := h.endpoints[rel]
	h.mu.RUnlock()
	if ok {
		endpoint(c)
		return
	}

	full := filepath.Join(h.distDir, filepath.FromSlash(rel))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		if strings.HasPrefix(rel, "/assets/") {
			c.Header("Cache-Control", "public, max-age=31536000, immutable")
		}
		c.File(full)
		return
	}

	// missing assets are real 404s; everything else is a client route
	if path.Ext(rel) != "" && path.Ext(rel) != ".html" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	index := filepath.Join(h.distDir, indexFile)
	if _, err := os.Stat(index); err != nil {
		h.logger.Warn().Str("dist_dir", h.distDir).Msg("index.html not found; is the frontend built?")
		c.String(http.StatusNotFound, "frontend not built")
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.File(index)
}

// StaticContent serves fixed bytes with a content-hash ETag
func StaticContent(contentType string, body []byte) gin.HandlerFunc {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	return func(c *gin.Context) {
		c.Header("ETag", etag)
		c.Header("Cache-Control", "no-cache")
		if match := c.GetHeader("If-None-Match"); match != "" && etagMatches(match, etag) {
			c.Status(http.StatusNotModified)
			return
		}
		c.Data(http.StatusOK, contentType, body)
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
