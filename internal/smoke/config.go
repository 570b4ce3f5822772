package smoke

import (
	"context"
	"time"

	"github.com/okian/robot/pkg/apiclient"
)

// Worker configuration constants.
const (
	DefaultWorkers          = 4
	WorkerChannelMultiplier = 2
)

// Config holds configuration for a smoke run.
type Config struct {
	Workers int     // Number of concurrent workers
	Rate    float64 // Checks started per second across all workers; <= 0 is unlimited
	Verbose bool    // Log every check as it completes
}

// Call invokes one wrapper against the backend.
type Call func(ctx context.Context, api *apiclient.API) (*apiclient.Response, error)

// Check is one named backend call.
type Check struct {
	Name string
	Call Call
}

// Result is the outcome of one check.
type Result struct {
	Name       string        `json:"name"`
	StatusCode int           `json:"status_code"`
	Latency    time.Duration `json:"latency"`
	OK         bool          `json:"ok"`
	Error      string        `json:"error,omitempty"`
}

// Report aggregates a run. Results keep the order of the checks.
type Report struct {
	Results  []Result      `json:"results"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Recorder receives per-check outcomes. *metrics.Manager implements it.
type Recorder interface {
	RecordSmokeCheck(endpoint, result string)
}
