// Package cli parses robotctl's command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/okian/robot/internal/commands"
	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/internal/exitcode"
	"github.com/okian/robot/pkg/apiclient"
	"github.com/okian/robot/pkg/logger"
	"github.com/okian/robot/pkg/metrics"
	"golang.org/x/oauth2"
)

// APIFactory creates the API clients from config.
// Used to inject the backend during dispatch.
type APIFactory func(ctx context.Context, cfg *config.Config) (*apiclient.API, error)

// NewAPI is the production APIFactory: both clients resolve against
// cfg.BackendURL and share its timeout and bearer token.
func NewAPI(_ context.Context, cfg *config.Config) (*apiclient.API, error) {
	opts := []apiclient.Option{
		apiclient.WithOrigin(cfg.BackendURL),
		apiclient.WithUserAgent("robotctl/" + commands.Version),
		apiclient.WithLogger(logger.Named("apiclient")),
		apiclient.WithRecorder(metrics.Default()),
	}
	if cfg.APIToken != "" {
		opts = append(opts, apiclient.WithTokenSource(
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken, TokenType: "Bearer"})))
	}
	return apiclient.NewAPIWithPaths(cfg.BasePaths(), cfg.Timeout(), opts...)
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  APIFactory
}

// NewDispatcher creates a new dispatcher with the given registry and API factory.
// A nil factory selects NewAPI.
func NewDispatcher(registry *commands.Registry, factory APIFactory) *Dispatcher {
	if factory == nil {
		factory = NewAPI
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> help
	if len(args) == 0 {
		return d.dispatch(ctx, "help", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	// Common flags
	var configFile string
	var quiet bool
	var debug bool

	fs.StringVar(&configFile, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagError(errOut, err)
	}

	// A leftover dash token means a flag after the first positional.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	if err := initLogger(errOut, debug); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(ctx, configFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	var api *apiclient.API
	if cmd.NeedsBackend() {
		api, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: config: %s\n", err)
			return exitcode.ConfigError
		}
	}

	return cmd.Run(ctx, cfg, api, positionalArgs, out, errOut)
}

// flagError maps a flag parse error to a message and UserError.
func flagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.Contains(errStr, "flag needs an argument") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}

// initLogger sends logs to errOut so stdout carries only response bodies.
func initLogger(errOut io.Writer, debug bool) error {
	if err := logger.InitWithWriter(errOut); err != nil {
		return err
	}
	level := "warn"
	if debug {
		level = "debug"
	}
	return logger.SetLevelString(level)
}
