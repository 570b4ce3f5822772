// Package service is the console's composition root: it owns the API
// clients, the development proxy and the route table, and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/okian/robot/internal/adapters/http/api"
	"github.com/okian/robot/internal/adapters/http/proxy"
	"github.com/okian/robot/internal/adapters/http/site"
	"github.com/okian/robot/internal/adapters/http/swagger"
	"github.com/okian/robot/pkg/apiclient"
	"github.com/okian/robot/pkg/logger"
	"github.com/okian/robot/pkg/metrics"
	"golang.org/x/oauth2"
)

// ErrNotStarted is returned by operations that need a started service.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the console.
type Service struct {
	mu sync.RWMutex

	// Core components
	api   *apiclient.API
	proxy *proxy.Proxy

	// Configuration
	backendURL   string
	prefixes     []string
	changeOrigin bool
	basePaths    apiclient.BasePaths
	timeout      time.Duration
	apiToken     string
	version      string
	routes       []site.Route

	// State
	started   bool
	startedAt time.Time

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBackendURL sets the backend scheme and host.
func WithBackendURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.backendURL = u
		}
	}
}

// WithProxyPrefixes sets the path prefixes forwarded to the backend.
func WithProxyPrefixes(prefixes []string) Option {
	return func(s *Service) {
		if len(prefixes) > 0 {
			s.prefixes = prefixes
		}
	}
}

// WithChangeOrigin toggles Host rewriting in the proxy.
func WithChangeOrigin(enabled bool) Option {
	return func(s *Service) {
		s.changeOrigin = enabled
	}
}

// WithBasePaths sets the roots of the API clients. Empty fields keep the
// stock paths.
func WithBasePaths(paths apiclient.BasePaths) Option {
	return func(s *Service) {
		s.basePaths = paths.WithDefaults()
	}
}

// WithTimeout sets the per-request client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithAPIToken authenticates backend calls with a static bearer token.
func WithAPIToken(token string) Option {
	return func(s *Service) {
		s.apiToken = token
	}
}

// WithVersion sets the version reported by GetStats.
func WithVersion(v string) Option {
	return func(s *Service) {
		if v != "" {
			s.version = v
		}
	}
}

// WithRoutes replaces the console route table.
func WithRoutes(routes []site.Route) Option {
	return func(s *Service) {
		if len(routes) > 0 {
			s.routes = routes
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager; defaults to metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backendURL:   "http://localhost:8080",
		prefixes:     []string{apiclient.LegacyBasePath, apiclient.UnifiedBasePath, apiclient.SmartBasePath},
		changeOrigin: true,
		basePaths:    apiclient.BasePaths{}.WithDefaults(),
		timeout:      apiclient.DefaultTimeout,
		version:      "dev",
		routes:       site.DefaultRoutes(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the API clients and the proxy.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}

	s.logger.Info(ctx, "starting console service...")

	clientOpts := []apiclient.Option{
		apiclient.WithOrigin(s.backendURL),
		apiclient.WithLogger(s.logger.Named("apiclient")),
		apiclient.WithRecorder(s.metrics),
	}
	if s.apiToken != "" {
		clientOpts = append(clientOpts, apiclient.WithTokenSource(
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.apiToken, TokenType: "Bearer"})))
	}
	a, err := apiclient.NewAPIWithPaths(s.basePaths, s.timeout, clientOpts...)
	if err != nil {
		return fmt.Errorf("build api clients: %w", err)
	}

	p, err := proxy.New(s.backendURL, s.prefixes,
		proxy.WithChangeOrigin(s.changeOrigin),
		proxy.WithLogger(s.logger.Named("proxy")),
		proxy.WithRecorder(s.metrics),
		proxy.WithMiddleware(api.Middleware("proxy")),
	)
	if err != nil {
		return fmt.Errorf("build proxy: %w", err)
	}
	if err := p.Reserved(s.consolePaths()); err != nil {
		return fmt.Errorf("build proxy: %w", err)
	}

	s.api = a
	s.proxy = p
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "console service started",
		logger.String("backend", s.backendURL),
		logger.Any("prefixes", p.Prefixes()),
		logger.Duration("timeout", s.timeout),
	)

	return nil
}

// Stop marks the service stopped. The clients hold no resources of their own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "console service stopped")
}

// Register attaches every console route to mux: the console API, the
// docs, the proxy prefixes and the site shell.
func (s *Service) Register(ctx context.Context, mux *http.ServeMux) error {
	s.mu.RLock()
	started, p, routes := s.started, s.proxy, s.routes
	s.mu.RUnlock()

	if !started {
		return ErrNotStarted
	}
	if mux == nil {
		panic("mux is nil")
	}

	api.NewServer(s).Register(ctx, mux)
	swagger.Register(ctx, mux)
	p.Register(ctx, mux)
	if err := site.Register(ctx, mux, routes, api.Middleware("site")); err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	return nil
}

// consolePaths lists the routes the console serves itself; no proxy prefix
// may capture them.
func (s *Service) consolePaths() []string {
	paths := append(api.Paths(), swagger.Paths()...)
	return append(paths, site.Paths(s.routes)...)
}

// API returns the client pair; nil before Start.
func (s *Service) API() *apiclient.API {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.api
}

// BasePaths reports the roots of the API clients.
func (s *Service) BasePaths() apiclient.BasePaths {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.api != nil {
		return s.api.Paths()
	}
	return s.basePaths
}

// BackendHealth calls the unified health endpoint of the backend.
func (s *Service) BackendHealth(ctx context.Context) (*apiclient.Response, error) {
	a := s.API()
	if a == nil {
		return nil, ErrNotStarted
	}
	return a.Unified.Health(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":       s.started,
		"version":       s.version,
		"backendURL":    s.backendURL,
		"proxyPrefixes": s.prefixes,
		"changeOrigin":  s.changeOrigin,
		"timeoutMs":     s.timeout.Milliseconds(),
		"routes":        len(s.routes),
		"endpoints":     len(apiclient.LegacyEndpoints()) + len(apiclient.UnifiedEndpoints()) + len(apiclient.SmartEndpoints()),
		"goroutines":    runtime.NumGoroutine(),
	}
	if s.started {
		stats["proxyPrefixes"] = s.proxy.Prefixes()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}
