package proxy

import (
	"net/http"

	"github.com/okian/robot/pkg/logger"
)

// Option configures a Proxy.
type Option func(*Proxy)

// WithChangeOrigin rewrites the outbound Host header to the target's host.
// When disabled the inbound Host is forwarded unchanged.
func WithChangeOrigin(enabled bool) Option {
	return func(p *Proxy) {
		p.changeOrigin = enabled
	}
}

// WithTransport replaces the upstream round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		if rt != nil {
			p.transport = rt
		}
	}
}

// WithLogger sets the logger for upstream failures.
func WithLogger(l logger.Logger) Option {
	return func(p *Proxy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics sink for upstream failures.
func WithRecorder(r Recorder) Option {
	return func(p *Proxy) {
		p.recorder = r
	}
}

// WithMiddleware wraps the handler Register attaches, e.g. for metrics.
func WithMiddleware(mw func(http.Handler) http.Handler) Option {
	return func(p *Proxy) {
		p.middleware = mw
	}
}
