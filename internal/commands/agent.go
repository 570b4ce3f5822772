package commands

import (
	"context"
	"flag"
	"io"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/pkg/apiclient"
)

var agentActions = []action{
	{name: "plan-trip", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.PlanTrip(ctx, args[0])
	}},
	{name: "analyze", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.AnalyzeData(ctx, args[0])
	}},
	{name: "assist", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.GeneralAssist(ctx, args[0])
	}},
}

// AgentCmd runs the tool-using agents.
type AgentCmd struct{}

func init() {
	Register(&AgentCmd{})
	Register(&DemoCmd{})
}

func (c *AgentCmd) Name() string                   { return "agent" }
func (c *AgentCmd) Aliases() []string              { return nil }
func (c *AgentCmd) Synopsis() string               { return "Run a tool-using agent" }
func (c *AgentCmd) NeedsBackend() bool             { return true }
func (c *AgentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AgentCmd) Usage() string {
	return "robotctl agent [common flags] " + actionNames(agentActions) + " <request...>"
}

func (c *AgentCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	return runAction(ctx, c, agentActions, cfg, api, args, out, errOut)
}

// DemoCmd runs the reasoning pattern demos.
type DemoCmd struct {
	retries int
}

func (c *DemoCmd) Name() string       { return "demo" }
func (c *DemoCmd) Aliases() []string  { return nil }
func (c *DemoCmd) Synopsis() string   { return "Run a reasoning or routing demo" }
func (c *DemoCmd) NeedsBackend() bool { return true }

func (c *DemoCmd) Usage() string {
	return "robotctl demo [common flags] [--retries <n>] " + actionNames(c.actions()) + " <text...>"
}

func (c *DemoCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.retries, "retries", 0, "")
}

func (c *DemoCmd) actions() []action {
	return []action{
		{name: "plan-execute", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.PlanExecuteDemo(ctx, args[0])
		}},
		{name: "reflexion", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.ReflexionDemo(ctx, args[0], &apiclient.ReflexionOptions{MaxRetries: c.retries})
		}},
		{name: "cot", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.CoTDemo(ctx, args[0])
		}},
		{name: "compare", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.CompareModes(ctx, args[0])
		}},
		{name: "router", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.RouterDemo(ctx, args[0])
		}},
		{name: "smart-route", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.SmartRoute(ctx, args[0])
		}},
		{name: "orchestrate", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.Orchestrate(ctx, args[0])
		}},
	}
}

func (c *DemoCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	return runAction(ctx, c, c.actions(), cfg, api, args, out, errOut)
}
