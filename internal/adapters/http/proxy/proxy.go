// Package proxy forwards API prefixes of the console to the AI backend so the
// browser talks to a single origin during development.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/okian/robot/pkg/logger"
)

// Recorder receives upstream failures. *metrics.Manager implements it.
type Recorder interface {
	RecordProxyUpstreamError(prefix string)
}

// Proxy is a reverse proxy for a fixed set of path prefixes.
type Proxy struct {
	target       *url.URL
	prefixes     []string
	changeOrigin bool
	transport    http.RoundTripper
	logger       logger.Logger
	recorder     Recorder
	middleware   func(http.Handler) http.Handler
	rp           *httputil.ReverseProxy
}

// New creates a Proxy forwarding prefixes to target, e.g.
// New("http://localhost:8080", []string{"/ai"}). Origin rewriting is on by default.
func New(target string, prefixes []string, opts ...Option) (*Proxy, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	clean := make([]string, 0, len(prefixes))
	seen := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		p = "/" + strings.Trim(strings.TrimSpace(p), "/")
		if p != "/" && !seen[p] {
			seen[p] = true
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return nil, ErrNoPrefixes
	}

	p := &Proxy{
		target:       u,
		prefixes:     clean,
		changeOrigin: true,
		transport:    http.DefaultTransport,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.rp = &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		Transport:    p.transport,
		ErrorHandler: p.handleError,
	}
	return p, nil
}

// Target returns the upstream URL.
func (p *Proxy) Target() *url.URL { return p.target }

// Prefixes returns the forwarded path prefixes.
func (p *Proxy) Prefixes() []string { return append([]string(nil), p.prefixes...) }

// Match returns the prefix owning path. A prefix owns itself and its subtree,
// so "/ai" owns "/ai/chat" but not "/aix".
func (p *Proxy) Match(path string) (string, bool) {
	for _, pre := range p.prefixes {
		if path == pre || strings.HasPrefix(path, pre+"/") {
			return pre, true
		}
	}
	return "", false
}

// ServeHTTP forwards requests under a configured prefix and answers 404 otherwise.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := p.Match(r.URL.Path); !ok {
		http.NotFound(w, r)
		return
	}
	p.rp.ServeHTTP(w, r)
}

// Reserved reports the first prefix that would capture one of paths, the
// routes the console serves itself. "/" is ignored.
func (p *Proxy) Reserved(paths []string) error {
	for _, path := range paths {
		if path == "/" {
			continue
		}
		if pre, ok := p.Match(path); ok {
			return fmt.Errorf("%w: %s captures %s", ErrPrefixConflict, pre, path)
		}
	}
	return nil
}

// Register attaches every prefix, exact and subtree, to mux. The handler is
// wrapped by the WithMiddleware function when one is set.
func (p *Proxy) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	var h http.Handler = p
	if p.middleware != nil {
		h = p.middleware(p)
	}
	for _, pre := range p.prefixes {
		mux.Handle(pre, h)
		mux.Handle(pre+"/", h)
	}
}

func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(p.target)
	pr.SetXForwarded()
	if !p.changeOrigin {
		pr.Out.Host = pr.In.Host
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	prefix, _ := p.Match(r.URL.Path)
	if p.recorder != nil {
		p.recorder.RecordProxyUpstreamError(prefix)
	}
	status, code := http.StatusBadGateway, "bad_gateway"
	if errors.Is(err, context.DeadlineExceeded) {
		status, code = http.StatusGatewayTimeout, "gateway_timeout"
	}
	p.logger.Warn(r.Context(), "proxy upstream failed",
		logger.String("prefix", prefix),
		logger.String("path", r.URL.Path),
		logger.String("target", p.target.String()),
		logger.Error(err))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    code,
		Message: fmt.Errorf("%w: %w", ErrUpstream, err).Error(),
	})
}
