package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/internal/exitcode"
	"github.com/okian/robot/pkg/apiclient"
)

var taskActions = []action{
	{name: "start", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.StartTask(ctx, args[0])
	}},
	{name: "pause", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.PauseTask(ctx, args[0])
	}},
	{name: "resume", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.ResumeTask(ctx, args[0])
	}},
	{name: "stop", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.StopTask(ctx, args[0])
	}},
	{name: "status", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.TaskStatus(ctx, args[0])
	}},
	{name: "list", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
		return api.Legacy.ListTasks(ctx)
	}},
}

// TaskCmd controls long-running tasks.
type TaskCmd struct{}

func init() {
	Register(&TaskCmd{})
	Register(&OrchestrationCmd{})
}

func (c *TaskCmd) Name() string                   { return "task" }
func (c *TaskCmd) Aliases() []string              { return nil }
func (c *TaskCmd) Synopsis() string               { return "Start, pause, resume and stop long tasks" }
func (c *TaskCmd) NeedsBackend() bool             { return true }
func (c *TaskCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TaskCmd) Usage() string {
	return "robotctl task [common flags] " + actionNames(taskActions) + " [request... | task-id]"
}

func (c *TaskCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	return runAction(ctx, c, taskActions, cfg, api, args, out, errOut)
}

var orchestrationActions = []action{
	{name: "submit", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.SubmitOrchestration(ctx, args[0])
	}},
	{name: "status", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.OrchestrationStatus(ctx, args[0])
	}},
	{name: "graph", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.OrchestrationGraph(ctx, args[0])
	}},
	{name: "cancel", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.CancelOrchestration(ctx, args[0])
	}},
	{name: "list", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
		return api.Legacy.ListOrchestrations(ctx)
	}},
}

// OrchestrationCmd manages DAG orchestrations.
type OrchestrationCmd struct{}

func (c *OrchestrationCmd) Name() string                   { return "orchestration" }
func (c *OrchestrationCmd) Aliases() []string              { return []string{"dag"} }
func (c *OrchestrationCmd) Synopsis() string               { return "Submit and inspect DAG orchestrations" }
func (c *OrchestrationCmd) NeedsBackend() bool             { return true }
func (c *OrchestrationCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OrchestrationCmd) Usage() string {
	return "robotctl orchestration [common flags] " + actionNames(orchestrationActions) + "|watch [request... | dag-id]"
}

// Run handles watch, which follows the status stream until the backend
// closes it, and hands every other subcommand to runAction.
func (c *OrchestrationCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "watch" {
		return runAction(ctx, c, orchestrationActions, cfg, api, args, out, errOut)
	}
	if len(args) != 2 || strings.TrimSpace(args[1]) == "" {
		return usageError(errOut, "watch needs exactly one id", c)
	}
	if err := api.Legacy.StreamOrchestrationStatus(ctx, args[1], printEvents(cfg, out)); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
