// Package api registers the console's own HTTP endpoints: health, status,
// backend reachability and the endpoint catalogue.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/robot/pkg/apiclient"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the composition root.
type Dependencies interface {
	StatsProvider

	// BackendHealth calls the backend's unified health endpoint.
	BackendHealth(ctx context.Context) (*apiclient.Response, error)

	// BasePaths reports where the live API clients are rooted.
	BasePaths() apiclient.BasePaths
}

// Console routes attached by Register.
const (
	PathHealthz       = "/healthz"
	PathStatus        = "/status"
	PathBackendHealth = "/backend/health"
	PathEndpoints     = "/endpoints"
)

// Paths lists the routes Register attaches.
func Paths() []string {
	return []string{PathHealthz, PathStatus, PathBackendHealth, PathEndpoints}
}

// Server wires HTTP routes for the console API.
type Server struct {
	healthHandler    *HealthHandler
	statusHandler    *StatusHandler
	backendHandler   *BackendHandler
	endpointsHandler *EndpointsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statusHandler:    NewStatusHandler(deps),
		backendHandler:   NewBackendHandler(deps),
		endpointsHandler: NewEndpointsHandler(deps.BasePaths()),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(PathHealthz, MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc(PathStatus, MetricsMiddleware(s.statusHandler.HandleStatus, "status"))
	mux.HandleFunc(PathBackendHealth, MetricsMiddleware(s.backendHandler.HandleBackendHealth, "backend_health"))
	mux.HandleFunc(PathEndpoints, MetricsMiddleware(s.endpointsHandler.HandleEndpoints, "endpoints"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}
