// Package site serves the embedded console shell with history-mode routing.
package site

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Error constants
var (
	ErrServe     = errors.New("console site serve failed")
	ErrNoIndex   = errors.New("console shell index.html missing")
	ErrNilRoutes = errors.New("route table is empty")
)

// RoutesPath publishes the route table as JSON.
const RoutesPath = "/routes.json"

// Handler answers declared routes with index.html, embedded assets as files
// and everything else with 404.
type Handler struct {
	table  *Table
	files  fs.FS
	index  []byte
	assets http.Handler
}

// NewHandler builds a Handler over the embedded shell.
func NewHandler(routes []Route) (*Handler, error) {
	return newHandler(routes, staticFiles())
}

func newHandler(routes []Route, files fs.FS) (*Handler, error) {
	if len(routes) == 0 {
		return nil, ErrNilRoutes
	}
	index, err := fs.ReadFile(files, "index.html")
	if err != nil {
		return nil, errors.Join(ErrNoIndex, err)
	}
	return &Handler{
		table:  NewTable(routes),
		files:  files,
		index:  index,
		assets: http.FileServer(http.FS(files)),
	}, nil
}

// Table returns the route table the handler serves.
func (h *Handler) Table() *Table { return h.table }

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	p := r.URL.Path
	switch {
	case p == RoutesPath:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.table.Routes())
	case h.isRoute(p):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(h.index)
	case h.isAsset(p):
		h.assets.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) isRoute(p string) bool {
	_, ok := h.table.Resolve(p)
	return ok
}

// isAsset reports whether p names a regular file of the shell other than index.html.
func (h *Handler) isAsset(p string) bool {
	name := strings.TrimPrefix(path.Clean(p), "/")
	if name == "" || name == "index.html" {
		return false
	}
	info, err := fs.Stat(h.files, name)
	return err == nil && !info.IsDir()
}

// Register attaches the console shell to mux at "/". Routes more specific
// than "/" registered elsewhere (proxy, docs, health) take precedence.
// wrap, when non-nil, decorates the shell handler, e.g. for metrics.
func Register(_ context.Context, mux *http.ServeMux, routes []Route, wrap func(http.Handler) http.Handler) error {
	if mux == nil {
		panic("mux is nil")
	}
	if routes == nil {
		routes = DefaultRoutes()
	}
	h, err := NewHandler(routes)
	if err != nil {
		return errors.Join(ErrServe, err)
	}
	var shell http.Handler = h
	if wrap != nil {
		shell = wrap(h)
	}
	mux.Handle("/", shell)
	return nil
}

// Paths lists the paths the shell answers for routes: every page and the
// route table itself.
func Paths(routes []Route) []string {
	out := make([]string, 0, len(routes)+1)
	for _, r := range routes {
		out = append(out, r.Path)
	}
	return append(out, RoutesPath)
}
