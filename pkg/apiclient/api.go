package apiclient

import (
	"time"
)

// API bundles the base clients. Construct it once and pass it to the
// callers that need it.
type API struct {
	Legacy  *Legacy
	Unified *Unified
	Smart   *Smart
}

// BasePaths roots each client of an API. An empty field selects the stock path.
type BasePaths struct {
	Legacy  string
	Unified string
	Smart   string
}

// WithDefaults fills empty fields with the stock base paths.
func (p BasePaths) WithDefaults() BasePaths {
	if p.Legacy == "" {
		p.Legacy = LegacyBasePath
	}
	if p.Unified == "" {
		p.Unified = UnifiedBasePath
	}
	if p.Smart == "" {
		p.Smart = SmartBasePath
	}
	return p
}

// NewAPI builds the stock clients: /ai, /api/v1 and /api/smart, all with
// DefaultTimeout. opts apply to every client.
func NewAPI(opts ...Option) (*API, error) {
	return NewAPIWithPaths(BasePaths{}, DefaultTimeout, opts...)
}

// NewAPIWithPaths builds the clients from explicit base paths and timeout.
func NewAPIWithPaths(paths BasePaths, timeout time.Duration, opts ...Option) (*API, error) {
	paths = paths.WithDefaults()
	legacy, err := New(paths.Legacy, timeout, opts...)
	if err != nil {
		return nil, err
	}
	unified, err := New(paths.Unified, timeout, opts...)
	if err != nil {
		return nil, err
	}
	smart, err := New(paths.Smart, timeout, opts...)
	if err != nil {
		return nil, err
	}
	return &API{Legacy: NewLegacy(legacy), Unified: NewUnified(unified), Smart: NewSmart(smart)}, nil
}

// Paths reports the base path each client is rooted at.
func (a *API) Paths() BasePaths {
	return BasePaths{
		Legacy:  a.Legacy.Client().BasePath(),
		Unified: a.Unified.Client().BasePath(),
		Smart:   a.Smart.Client().BasePath(),
	}
}
