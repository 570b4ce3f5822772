package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/okian/robot/internal/adapters/http/site"
	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/internal/exitcode"
	"github.com/okian/robot/internal/output"
	"github.com/okian/robot/internal/smoke"
	"github.com/okian/robot/pkg/apiclient"
	"github.com/okian/robot/pkg/logger"
	"github.com/okian/robot/pkg/metrics"
)

func init() {
	Register(&HealthCmd{})
	Register(&SmokeCmd{})
	Register(&RoutesCmd{})
}

// HealthCmd checks the unified API's health endpoint.
type HealthCmd struct{}

func (c *HealthCmd) Name() string                   { return "health" }
func (c *HealthCmd) Aliases() []string              { return nil }
func (c *HealthCmd) Synopsis() string               { return "Check backend health" }
func (c *HealthCmd) Usage() string                  { return "robotctl health [common flags]" }
func (c *HealthCmd) NeedsBackend() bool             { return true }
func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "health takes no arguments", c)
	}
	resp, err := api.Unified.Health(ctx)
	return finish(cfg, resp, err, out, errOut)
}

// SmokeCmd runs the read-only checks concurrently and prints a report.
type SmokeCmd struct {
	workers int
	rate    float64
	json    bool
}

func (c *SmokeCmd) Name() string       { return "smoke" }
func (c *SmokeCmd) Aliases() []string  { return nil }
func (c *SmokeCmd) Synopsis() string   { return "Run read-only checks against the backend" }
func (c *SmokeCmd) NeedsBackend() bool { return true }

func (c *SmokeCmd) Usage() string {
	return "robotctl smoke [common flags] [--workers <n>] [--rate <per-second>] [--json]"
}

func (c *SmokeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.workers, "workers", 0, "")
	fs.Float64Var(&c.rate, "rate", 0, "")
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *SmokeCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "smoke takes no arguments", c)
	}
	workers := c.workers
	if workers <= 0 {
		workers = cfg.SmokeWorkers
	}

	rate := c.rate
	if rate <= 0 {
		rate = cfg.SmokeRate
	}

	runner := smoke.NewRunner(api, smoke.Config{Workers: workers, Rate: rate, Verbose: cfg.Debug},
		smoke.WithRecorder(metrics.Default()),
		smoke.WithLogger(logger.Named("smoke")))
	report, err := runner.Run(ctx, smoke.DefaultChecks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if c.json {
		if err := output.SmokeReportJSON(out, report); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	} else if !cfg.Quiet || report.Failed > 0 {
		output.SmokeReport(out, report)
	}
	if report.Failed > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}

// RoutesCmd prints the console route table or the endpoint catalogue.
type RoutesCmd struct {
	endpoints bool
}

func (c *RoutesCmd) Name() string       { return "routes" }
func (c *RoutesCmd) Aliases() []string  { return nil }
func (c *RoutesCmd) Synopsis() string   { return "Print console routes or backend endpoints" }
func (c *RoutesCmd) Usage() string      { return "robotctl routes [common flags] [--endpoints]" }
func (c *RoutesCmd) NeedsBackend() bool { return false }

func (c *RoutesCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.endpoints, "endpoints", false, "")
}

func (c *RoutesCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, "routes takes no arguments", c)
	}
	if c.endpoints {
		output.Endpoints(out, cfg.BasePaths())
		return exitcode.Success
	}
	output.Routes(out, site.DefaultRoutes())
	return exitcode.Success
}
