// Package smoke calls a set of backend endpoints concurrently and reports
// which ones answer.
package smoke

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/robot/pkg/apiclient"
	"github.com/okian/robot/pkg/logger"
	"golang.org/x/time/rate"
)

// ErrNoChecks is returned when Run is given nothing to do.
var ErrNoChecks = errors.New("no smoke checks")

// Runner executes checks through a bounded worker pool.
type Runner struct {
	api      *apiclient.API
	cfg      Config
	recorder Recorder
	logger   logger.Logger
	limiter  *rate.Limiter
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(rn *Runner) {
		rn.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(rn *Runner) {
		if l != nil {
			rn.logger = l
		}
	}
}

// NewRunner creates a Runner. A non-positive worker count selects DefaultWorkers.
func NewRunner(api *apiclient.API, cfg Config, opts ...Option) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	r := &Runner{api: api, cfg: cfg, logger: logger.Nop()}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type job struct {
	index int
	check Check
}

// Run executes every check once. A failing check is reported, not returned;
// Run only errors when there is nothing to run or ctx ends first.
func (r *Runner) Run(ctx context.Context, checks []Check) (*Report, error) {
	if len(checks) == 0 {
		return nil, ErrNoChecks
	}
	start := time.Now()

	r.logger.Info(ctx, "starting smoke run",
		logger.Int("checks", len(checks)),
		logger.Int("workers", r.cfg.Workers),
		logger.Float64("rate", r.cfg.Rate))

	results := make([]Result, len(checks))
	var passed, failed int64

	jobs := make(chan job, r.cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := r.runOne(ctx, j.check)
				results[j.index] = res
				if res.OK {
					atomic.AddInt64(&passed, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, c := range checks {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, check: c}:
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Results:  results,
		Passed:   int(atomic.LoadInt64(&passed)),
		Failed:   int(atomic.LoadInt64(&failed)),
		Duration: time.Since(start),
	}
	r.logger.Info(ctx, "smoke run completed",
		logger.Int("passed", report.Passed),
		logger.Int("failed", report.Failed),
		logger.Duration("duration", report.Duration))
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, c Check) Result {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return Result{Name: c.Name, Error: err.Error()}
		}
	}
	begin := time.Now()
	resp, err := c.Call(ctx, r.api)
	res := Result{Name: c.Name, Latency: time.Since(begin)}

	switch {
	case err == nil:
		res.OK = true
		res.StatusCode = resp.StatusCode
	default:
		res.StatusCode = apiclient.StatusCode(err)
		res.Error = err.Error()
	}

	if r.recorder != nil {
		outcome := "pass"
		if !res.OK {
			outcome = "fail"
		}
		r.recorder.RecordSmokeCheck(c.Name, outcome)
	}
	if r.cfg.Verbose {
		r.logger.Info(ctx, "smoke check",
			logger.String("endpoint", c.Name),
			logger.Int("status", res.StatusCode),
			logger.Duration("latency", res.Latency),
			logger.Any("ok", res.OK))
	}
	return res
}
