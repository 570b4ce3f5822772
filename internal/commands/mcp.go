package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/pkg/apiclient"
)

// MCPCmd talks to the tool-protocol bridge.
type MCPCmd struct {
	params string
}

func init() {
	Register(&MCPCmd{})
	Register(&PromptCmd{})
}

func (c *MCPCmd) Name() string       { return "mcp" }
func (c *MCPCmd) Aliases() []string  { return nil }
func (c *MCPCmd) Synopsis() string   { return "Chat with tools, list servers and tools, run a tool" }
func (c *MCPCmd) NeedsBackend() bool { return true }

func (c *MCPCmd) Usage() string {
	return "robotctl mcp [common flags] [--params <json>] chat <message...> | servers | tools | exec <server> <tool>"
}

func (c *MCPCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.params, "params", "", "")
}

func (c *MCPCmd) actions() []action {
	return []action{
		{name: "chat", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
			return api.Legacy.MCPChat(ctx, args[0])
		}},
		{name: "servers", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
			return api.Legacy.ListMCPServers(ctx)
		}},
		{name: "tools", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
			return api.Legacy.ListMCPTools(ctx)
		}},
	}
}

func (c *MCPCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "exec" {
		return runAction(ctx, c, c.actions(), cfg, api, args, out, errOut)
	}
	if len(args) != 3 {
		return usageError(errOut, "exec needs a server and a tool", c)
	}
	req := apiclient.MCPToolRequest{ServerName: args[1], ToolName: args[2]}
	if c.params != "" {
		if err := json.Unmarshal([]byte(c.params), &req.Parameters); err != nil {
			return usageError(errOut, fmt.Sprintf("--params must be a JSON object: %v", err), c)
		}
	}
	resp, err := api.Legacy.ExecuteMCPTool(ctx, req)
	return finish(cfg, resp, err, out, errOut)
}
