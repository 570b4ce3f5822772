// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/pkg/apiclient"
)

// Request is one request seen by the FakeBackend.
type Request struct {
	Method      string
	Path        string
	RawQuery    string
	Body        string
	ContentType string
}

// Reply is a canned answer.
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// FakeBackend is an httptest server that records requests and answers
// each path with a canned reply, or 200 {"ok":true} by default.
type FakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	replies  map[string]Reply // "METHOD /path" -> reply
}

// NewFakeBackend starts a FakeBackend closed at test cleanup.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{replies: make(map[string]Reply)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Reply sets the answer for method and escaped path.
func (f *FakeBackend) Reply(method, path string, r Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = r
}

// Requests returns a copy of every request seen so far.
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Last returns the most recent request, or the zero Request.
func (f *FakeBackend) Last() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}
	}
	return f.requests[len(f.requests)-1]
}

// Config returns a Config pointing at the fake backend.
func (f *FakeBackend) Config() *config.Config {
	cfg := config.New(context.Background())
	cfg.BackendURL = f.URL
	return cfg
}

// Factory returns an API factory bound to the fake backend. It matches
// cli.APIFactory.
func (f *FakeBackend) Factory() func(context.Context, *config.Config) (*apiclient.API, error) {
	return func(_ context.Context, cfg *config.Config) (*apiclient.API, error) {
		return apiclient.NewAPIWithPaths(cfg.BasePaths(), cfg.Timeout(),
			apiclient.WithOrigin(f.URL))
	}
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		RawQuery:    r.URL.RawQuery,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
	})
	reply, ok := f.replies[r.Method+" "+r.URL.EscapedPath()]
	f.mu.Unlock()

	if !ok {
		reply = Reply{Status: http.StatusOK, ContentType: "application/json", Body: `{"ok":true}`}
	}
	if reply.ContentType != "" {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}
