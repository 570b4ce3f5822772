// Package apiclient is the Go client of the robot AI chat backend.
//
// Three base clients exist: the legacy/debug client rooted at /ai, the
// unified production client rooted at /api/v1 and the smart chat client
// rooted at /api/smart. Each exported wrapper issues exactly one HTTP
// request and hands back the raw response; there is no retry, caching or
// response transformation.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/robot/pkg/logger"
	"golang.org/x/oauth2"
)

// Base paths and timeout of the stock clients.
const (
	LegacyBasePath  = "/ai"
	UnifiedBasePath = "/api/v1"
	SmartBasePath   = "/api/smart"
	DefaultTimeout  = 60 * time.Second

	// DefaultUserID is sent when a unified call does not name a user.
	DefaultUserID = "default"

	// ContentTypeText is the content type of raw-text bodies.
	ContentTypeText = "text/plain;charset=UTF-8"
	contentTypeJSON = "application/json"
	acceptHeader    = "application/json, text/plain, */*"

	// RequestIDHeader carries a fresh id on every outgoing request.
	RequestIDHeader = "X-Request-Id"
)

// Recorder receives per-call measurements. *metrics.Manager implements it.
type Recorder interface {
	ObserveClientRequest(endpoint, method string, status int, d time.Duration)
	RecordClientError(endpoint, kind string)
}

// Client is a base client bound to one base path and one timeout. It is
// read-only after New and safe for concurrent use.
type Client struct {
	origin    string
	basePath  string
	timeout   time.Duration
	http      *http.Client
	tokens    oauth2.TokenSource
	userAgent string
	logger    logger.Logger
	recorder  Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithOrigin sets the scheme and host the base path is resolved against,
// e.g. "http://localhost:8080".
func WithOrigin(origin string) Option {
	return func(c *Client) {
		if origin != "" {
			c.origin = strings.TrimRight(origin, "/")
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource authenticates every request with a bearer token.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// New creates a base client. baseURL is either a bare path ("/ai") or an
// absolute URL ("http://host:8080/ai"); the latter implies the origin.
// A non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		basePath:  strings.TrimRight(baseURL, "/"),
		timeout:   timeout,
		http:      &http.Client{},
		userAgent: "robot-apiclient/1.0",
		logger:    logger.Nop(),
	}
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		c.origin = u.Scheme + "://" + u.Host
		c.basePath = strings.TrimRight(u.Path, "/")
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens != nil {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		hc := *c.http
		hc.Transport = &oauth2.Transport{Source: c.tokens, Base: base}
		c.http = &hc
	}
	return c, nil
}

// BasePath returns the path prefix of every endpoint of this client.
func (c *Client) BasePath() string { return c.basePath }

// Origin returns the configured scheme and host, possibly empty.
func (c *Client) Origin() string { return c.origin }

// Timeout returns the fixed per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Response is the backend's answer, passed through untouched.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// call is one prepared request.
type call struct {
	endpoint    Endpoint
	pathArgs    []string
	query       url.Values
	body        []byte
	contentType string
}

// target builds the request URI relative to the origin.
func (c *Client) target(cl call) (string, error) {
	p, err := cl.endpoint.Expand(cl.pathArgs...)
	if err != nil {
		return "", err
	}
	u := c.basePath + p
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	return u, nil
}

// do issues exactly one request for cl.
func (c *Client) do(ctx context.Context, cl call) (*Response, error) {
	target, err := c.target(cl)
	if err != nil {
		return nil, err
	}
	full := c.origin + target
	method := cl.endpoint.Method
	name := cl.endpoint.Name

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", name, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)
	if cl.body != nil && cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		kind := "transport"
		wrapped := fmt.Errorf("%s %s: %w: %w", method, target, ErrTransport, err)
		if errors.Is(err, context.DeadlineExceeded) {
			kind = "timeout"
			wrapped = fmt.Errorf("%s %s: %w: %w", method, target, ErrTimeout, err)
		}
		c.observe(name, method, 0, elapsed, kind)
		c.logger.Debug(ctx, "backend request failed",
			logger.String("endpoint", name), logger.String("request_id", reqID), logger.Error(err))
		return nil, wrapped
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.observe(name, method, resp.StatusCode, time.Since(start), "timeout")
			return nil, fmt.Errorf("%s %s: read body: %w: %w", method, target, ErrTimeout, err)
		}
		c.observe(name, method, resp.StatusCode, time.Since(start), "transport")
		return nil, fmt.Errorf("%s %s: read body: %w: %w", method, target, ErrTransport, err)
	}

	c.logger.Debug(ctx, "backend request",
		logger.String("endpoint", name),
		logger.String("method", method),
		logger.String("target", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", elapsed),
		logger.String("request_id", reqID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(name, method, resp.StatusCode, elapsed, "status")
		return nil, &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: data}
	}
	c.observe(name, method, resp.StatusCode, elapsed, "")
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) observe(endpoint, method string, status int, d time.Duration, failure string) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveClientRequest(endpoint, method, status, d)
	if failure != "" {
		c.recorder.RecordClientError(endpoint, failure)
	}
}

// query builds url.Values from alternating key/value pairs.
func query(kv ...string) url.Values {
	v := make(url.Values, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func jsonBody(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return b, nil
}
