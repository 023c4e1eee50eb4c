// SPDX-License-Identifier: MIT
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rule forwards requests under Prefix to Target
type Rule struct {
	Prefix       string
	Target       *url.URL
	ChangeOrigin bool // send the target's host as the Host header
	StripPrefix  bool // /api/users reaches the backend as /users
}

// ParseRule builds a Rule from config values
func ParseRule(prefix, target string, changeOrigin, stripPrefix bool) (Rule, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}
	return Rule{Prefix: prefix, Target: u, ChangeOrigin: changeOrigin, StripPrefix: stripPrefix}, nil
}

// Validate checks the prefix and target
func (r Rule) Validate() error {
	if !strings.HasPrefix(r.Prefix, "/") || r.Prefix == "/" {
		return fmt.Errorf("proxy prefix %q must start with / and name a path", r.Prefix)
	}
	if r.Target == nil {
		return errors.New("proxy target is required")
	}
	if r.Target.Scheme != "http" && r.Target.Scheme != "https" {
		return fmt.Errorf("proxy target %q must be http or https", r.Target)
	}
	if r.Target.Host == "" {
		return fmt.Errorf("proxy target %q has no host", r.Target)
	}
	return nil
}

// Matches reports whether a request path falls under the prefix.
// "/api" and "/api/x" match; "/apix" does not.
func (r Rule) Matches(path string) bool {
	prefix := strings.TrimSuffix(r.Prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Rewrite returns the backend path for a request path
func (r Rule) Rewrite(path string) string {
	if !r.StripPrefix {
		return path
	}
	rest := strings.TrimPrefix(path, strings.TrimSuffix(r.Prefix, "/"))
	if rest == "" {
		return "/"
	}
	return rest
}

type originalPathKey struct{}

// OriginalPath returns the path the client requested before the prefix was
// stripped. The error hook receives the outbound request, so use this to
// report what the browser asked for.
func OriginalPath(r *http.Request) string {
	if p, ok := r.Context().Value(originalPathKey{}).(string); ok {
		return p
	}
	return r.URL.Path
}

// ErrorHook is called when the backend cannot be reached
type ErrorHook func(r *http.Request, err error)

// Option configures a Proxy
type Option func(*Proxy)

// WithErrorHook registers a hook for backend failures
func WithErrorHook(hook ErrorHook) Option {
	return func(p *Proxy) {
		p.onError = hook
	}
}

// WithTransport replaces the outbound transport
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		p.rp.Transport = rt
	}
}

// Proxy is a reverse proxy for one Rule
type Proxy struct {
	rule    Rule
	rp      *httputil.ReverseProxy
	logger  zerolog.Logger
	onError ErrorHook
}

// New creates a proxy for the rule
func New(rule Rule, logger zerolog.Logger, opts ...Option) (*Proxy, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	p := &Proxy{
		rule:   rule,
		logger: logger.With().Str("component", "proxy").Str("target", rule.Target.String()).Logger(),
	}
	p.rp = &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		ErrorHandler: p.handleError,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Rule returns the proxy's rule
func (p *Proxy) Rule() Rule {
	return p.rule
}

func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.Out.URL.Path = p.rule.Rewrite(pr.In.URL.Path)
	pr.Out.URL.RawPath = ""
	pr.SetURL(p.rule.Target)
	pr.SetXForwarded()
	if !p.rule.ChangeOrigin {
		pr.Out.Host = pr.In.Host
	}
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error().Err(err).
		Str("path", OriginalPath(r)).
		Str("backend_path", r.URL.Path).
		Msg("backend request failed")
	if p.onError != nil {
		p.onError(r, err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	w.Write([]byte(`{"error":"backend unavailable"}`))
}

// ServeHTTP forwards matching requests and 404s the rest
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !p.rule.Matches(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	ctx := context.WithValue(r.Context(), originalPathKey{}, r.URL.Path)
	p.rp.ServeHTTP(w, r.WithContext(ctx))
}

// Handler adapts the proxy for gin routes
func (p *Proxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p.ServeHTTP(c.Writer, c.Request)
	}
}
