package commands

import (
	"context"
	"flag"
	"io"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/pkg/apiclient"
)

// PromptCmd reads and hot-updates prompt templates.
type PromptCmd struct {
	version string
}

func (c *PromptCmd) Name() string       { return "prompt" }
func (c *PromptCmd) Aliases() []string  { return nil }
func (c *PromptCmd) Synopsis() string   { return "List, show and update prompt templates" }
func (c *PromptCmd) NeedsBackend() bool { return true }

func (c *PromptCmd) Usage() string {
	return "robotctl prompt [common flags] [--version <v>] list | get <key> | set <key> <content...>"
}

func (c *PromptCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.version, "version", "", "")
}

func (c *PromptCmd) actions() []action {
	return []action{
		{name: "list", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
			return api.Legacy.ListPrompts(ctx)
		}},
		{name: "get", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.GetPrompt(ctx, args[0])
		}},
	}
}

func (c *PromptCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "set" {
		return runAction(ctx, c, c.actions(), cfg, api, args, out, errOut)
	}
	if len(args) < 3 {
		return usageError(errOut, "set needs a key and content", c)
	}
	content := joinArgs(args[2:])
	if content == "" {
		return usageError(errOut, "set needs content", c)
	}
	resp, err := api.Legacy.UpdatePrompt(ctx, args[1], apiclient.PromptUpdate{Content: content, Version: c.version})
	return finish(cfg, resp, err, out, errOut)
}
