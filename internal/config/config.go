// Package config defines the console configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and ROBOT_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/okian/robot/pkg/apiclient"
)

// Config contains process configuration shared by the console server and robotctl.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the console listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// BackendURL is the scheme and host of the AI backend.
	BackendURL string `koanf:"backend_url"`

	// ProxyPrefixes is a comma separated list of path prefixes forwarded to BackendURL.
	ProxyPrefixes string `koanf:"proxy_prefixes"`

	// ChangeOrigin rewrites the outbound Host header to the backend's host.
	ChangeOrigin bool `koanf:"change_origin"`

	// LegacyBasePath, UnifiedBasePath and SmartBasePath root the API clients.
	LegacyBasePath  string `koanf:"legacy_base_path"`
	UnifiedBasePath string `koanf:"unified_base_path"`
	SmartBasePath   string `koanf:"smart_base_path"`

	// TimeoutMS is the fixed per-request client timeout.
	TimeoutMS int `koanf:"timeout_ms"`

	// APIToken, when set, is sent as a bearer token on every request.
	APIToken string `koanf:"api_token"`

	// UserID is the default user of unified chat calls.
	UserID string `koanf:"user_id"`

	// SmokeWorkers sizes the smoke runner's worker pool.
	SmokeWorkers int `koanf:"smoke_workers"`

	// SmokeRate caps smoke checks per second; zero means unlimited.
	SmokeRate float64 `koanf:"smoke_rate"`

	// Quiet and Debug are set from robotctl's common flags, never from a source.
	Quiet bool `koanf:"-"`
	Debug bool `koanf:"-"`
}

// New creates a Config populated with defaults. The context is reserved for
// future sources and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":3000",
		BackendURL:      "http://localhost:8080",
		ProxyPrefixes:   "/ai,/api/v1,/api/smart",
		ChangeOrigin:    true,
		LegacyBasePath:  "/ai",
		UnifiedBasePath: "/api/v1",
		SmartBasePath:   "/api/smart",
		TimeoutMS:       60_000,
		UserID:          "default",
		SmokeWorkers:    4,
	}
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// BasePaths returns the client roots as one value.
func (c *Config) BasePaths() apiclient.BasePaths {
	return apiclient.BasePaths{Legacy: c.LegacyBasePath, Unified: c.UnifiedBasePath, Smart: c.SmartBasePath}
}

// Prefixes splits ProxyPrefixes, dropping blanks.
func (c *Config) Prefixes() []string {
	var out []string
	for _, p := range strings.Split(c.ProxyPrefixes, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
