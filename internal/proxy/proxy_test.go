// SPDX-License-Identifier: MIT
package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	Path  string `json:"path"`
	Query string `json:"query"`
	Host  string `json:"host"`
	XFF   string `json:"xff"`
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(seen{
			Path:  r.URL.Path,
			Query: r.URL.RawQuery,
			Host:  r.Host,
			XFF:   r.Header.Get("X-Forwarded-For"),
		})
	}))
	t.Cleanup(backend.Close)
	return backend
}

func newProxy(t *testing.T, target string, changeOrigin, strip bool, opts ...Option) *Proxy {
	t.Helper()
	rule, err := ParseRule("/api", target, changeOrigin, strip)
	require.NoError(t, err)
	p, err := New(rule, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return p
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, seen) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = "frontend.local:5173"
	h.ServeHTTP(w, req)

	var s seen
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	}
	return w, s
}

func TestProxyStripsPrefix(t *testing.T) {
	backend := newBackend(t)
	p := newProxy(t, backend.URL, true, true)

	w, s := doGet(t, p, "/api/users/42?expand=roles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users/42", s.Path)
	assert.Equal(t, "expand=roles", s.Query)
	assert.NotEmpty(t, s.XFF)

	_, s = doGet(t, p, "/api")
	assert.Equal(t, "/", s.Path)
}

func TestProxyKeepsPrefixWhenNotStripping(t *testing.T) {
	backend := newBackend(t)
	p := newProxy(t, backend.URL, true, false)

	_, s := doGet(t, p, "/api/users")
	assert.Equal(t, "/api/users", s.Path)
}

func TestProxyChangeOrigin(t *testing.T) {
	backend := newBackend(t)
	u, _ := url.Parse(backend.URL)

	_, s := doGet(t, newProxy(t, backend.URL, true, true), "/api/ping")
	assert.Equal(t, u.Host, s.Host)

	_, s = doGet(t, newProxy(t, backend.URL, false, true), "/api/ping")
	assert.Equal(t, "frontend.local:5173", s.Host)
}

func TestProxyIgnoresSimilarPrefix(t *testing.T) {
	backend := newBackend(t)
	p := newProxy(t, backend.URL, true, true)

	w, _ := doGet(t, p, "/apix/users")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProxyBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	target := backend.URL
	backend.Close()

	var hookErr error
	var hookPath string
	p := newProxy(t, target, true, true, WithErrorHook(func(r *http.Request, err error) {
		hookErr = err
		hookPath = OriginalPath(r)
	}))

	w, _ := doGet(t, p, "/api/users")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"backend unavailable"}`, w.Body.String())
	assert.Error(t, hookErr)
	assert.Equal(t, "/api/users", hookPath)
}

func TestProxyCustomTransport(t *testing.T) {
	p := newProxy(t, "http://backend.invalid", true, true, WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial refused")
	})))

	w, _ := doGet(t, p, "/api/x")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProxyGinHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := newBackend(t)
	p := newProxy(t, backend.URL, true, true)

	r := gin.New()
	r.Any("/api/*path", p.Handler())

	_, s := doGet(t, r, "/api/orders?page=2")
	assert.Equal(t, "/orders", s.Path)
	assert.Equal(t, "page=2", s.Query)
}

func TestRuleValidate(t *testing.T) {
	tests := []struct {
		prefix  string
		target  string
		wantErr bool
	}{
		{"/api", "http://127.0.0.1:8080", false},
		{"/api/", "https://backend.example.com/v1", false},
		{"api", "http://127.0.0.1:8080", true},
		{"/", "http://127.0.0.1:8080", true},
		{"/api", "ftp://127.0.0.1", true},
		{"/api", "127.0.0.1:8080", true},
		{"/api", "http://", true},
	}
	for _, tt := range tests {
		rule, err := ParseRule(tt.prefix, tt.target, true, true)
		if err == nil {
			err = rule.Validate()
		}
		if tt.wantErr {
			assert.Error(t, err, "%s -> %s", tt.prefix, tt.target)
		} else {
			assert.NoError(t, err, "%s -> %s", tt.prefix, tt.target)
		}
	}
}

func TestRuleRewrite(t *testing.T) {
	rule := Rule{Prefix: "/api/", StripPrefix: true}
	assert.Equal(t, "/users", rule.Rewrite("/api/users"))
	assert.Equal(t, "/", rule.Rewrite("/api"))
	assert.True(t, rule.Matches("/api"))
	assert.False(t, rule.Matches("/apix"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
