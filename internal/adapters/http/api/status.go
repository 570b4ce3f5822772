package api

import (
	"errors"
	"net/http"

	"github.com/okian/robot/pkg/apiclient"
)

// StatsProvider defines the interface for getting console statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatusHandler handles GET /status.
type StatusHandler struct {
	statsProvider StatsProvider
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(statsProvider StatsProvider) *StatusHandler {
	return &StatusHandler{statsProvider: statsProvider}
}

// HandleStatus writes the console statistics as JSON.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

// BackendHandler reports whether the AI backend answers its health check.
type BackendHandler struct {
	deps Dependencies
}

// NewBackendHandler creates a new backend handler.
func NewBackendHandler(deps Dependencies) *BackendHandler {
	return &BackendHandler{deps: deps}
}

type backendStatus struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Body       string `json:"body,omitempty"`
}

// HandleBackendHealth handles GET /backend/health. A reachable backend is
// reported with 200; any failure with 502.
func (h *BackendHandler) HandleBackendHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	resp, err := h.deps.BackendHealth(r.Context())
	if err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) {
			writeJSON(w, http.StatusBadGateway, backendStatus{Status: "down", StatusCode: se.StatusCode, Body: string(se.Body)})
			return
		}
		writeError(w, http.StatusBadGateway, "backend_down", errors.Join(ErrBackendDown, err))
		return
	}
	writeJSON(w, http.StatusOK, backendStatus{Status: "up", StatusCode: resp.StatusCode, Body: resp.String()})
}

// EndpointsHandler publishes the backend operations the console knows.
type EndpointsHandler struct {
	catalogue []endpointView
}

type endpointView struct {
	Name    string `json:"name"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Binding string `json:"binding"`
}

// NewEndpointsHandler creates an endpoints handler whose paths are rooted
// at paths. Empty fields fall back to the stock base paths.
func NewEndpointsHandler(paths apiclient.BasePaths) *EndpointsHandler {
	paths = paths.WithDefaults()
	var cat []endpointView
	add := func(base string, eps []apiclient.Endpoint) {
		for _, ep := range eps {
			cat = append(cat, endpointView{Name: ep.Name, Method: ep.Method, Path: base + ep.Path, Binding: ep.Binding.String()})
		}
	}
	add(paths.Unified, apiclient.UnifiedEndpoints())
	add(paths.Smart, apiclient.SmartEndpoints())
	add(paths.Legacy, apiclient.LegacyEndpoints())
	return &EndpointsHandler{catalogue: cat}
}

// HandleEndpoints handles GET /endpoints.
func (h *EndpointsHandler) HandleEndpoints(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.catalogue)
}
