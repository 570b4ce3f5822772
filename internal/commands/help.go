package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/internal/exitcode"
	"github.com/okian/robot/pkg/apiclient"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "robotctl help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  robotctl chat [common flags] [--memory <id>] [--stream] <message...>
  robotctl unified [common flags] [--user <id>] [--orchestrate] <message...>
  robotctl smart [common flags] [--user <id>] [--stream | --simple] chat <message...> | health | demo
  robotctl stream [common flags] [--user <id>] [--url] <request...>
  robotctl sql [common flags] [--memory <id>] [--hot | --rag] <question...>
  robotctl knowledge [common flags] add|add-batch|search|clear|delete|delete-batch|stats|load-ddl
  robotctl rag [common flags] expand|transform|compare|chat|sql|add-business <text...>
  robotctl agent [common flags] plan-trip|analyze|assist <request...>
  robotctl demo [common flags] [--retries <n>] plan-execute|reflexion|cot|compare|router|smart-route|orchestrate <text...>
  robotctl task [common flags] start|pause|resume|stop|status|list
  robotctl orchestration [common flags] submit|status|graph|cancel|list|watch
  robotctl mcp [common flags] [--params <json>] chat|servers|tools|exec
  robotctl prompt [common flags] [--version <v>] list|get|set
  robotctl health [common flags]
  robotctl smoke [common flags] [--workers <n>] [--rate <per-second>] [--json]
  robotctl routes [common flags] [--endpoints]
  robotctl help
  robotctl version

Common flags:
  --config <file>  YAML config file (default: $ROBOT_CONFIG)
  --quiet          Suppress response bodies
  --debug          Print debug logs to stderr

Exit codes:
  0 success, 1 usage error, 2 config error, 3 backend error
`
