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

// ChatCmd sends a message to the legacy memory chat.
type ChatCmd struct {
	memory string
	stream bool
}

func init() {
	Register(&ChatCmd{})
	Register(&UnifiedCmd{})
	Register(&SmartCmd{})
	Register(&StreamCmd{})
	Register(&SQLCmd{})
}

func (c *ChatCmd) Name() string       { return "chat" }
func (c *ChatCmd) Aliases() []string  { return nil }
func (c *ChatCmd) Synopsis() string   { return "Chat with a memory session" }
func (c *ChatCmd) NeedsBackend() bool { return true }

func (c *ChatCmd) Usage() string {
	return "robotctl chat [common flags] [--memory <id>] [--stream] <message...>"
}

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.memory, "memory", "", "")
	fs.BoolVar(&c.stream, "stream", false, "")
}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	message := joinArgs(args)
	if message == "" {
		return usageError(errOut, "missing message", c)
	}
	memory := c.memory
	if memory == "" {
		memory = cfg.UserID
	}

	var (
		resp *apiclient.Response
		err  error
	)
	if c.stream {
		resp, err = api.Legacy.StreamChat(ctx, memory, message)
	} else {
		resp, err = api.Legacy.Chat(ctx, memory, message)
	}
	return finish(cfg, resp, err, out, errOut)
}

// UnifiedCmd sends a message to the production chat.
type UnifiedCmd struct {
	user        string
	orchestrate bool
}

func (c *UnifiedCmd) Name() string       { return "unified" }
func (c *UnifiedCmd) Aliases() []string  { return []string{"ask"} }
func (c *UnifiedCmd) Synopsis() string   { return "Chat through the unified production API" }
func (c *UnifiedCmd) NeedsBackend() bool { return true }

func (c *UnifiedCmd) Usage() string {
	return "robotctl unified [common flags] [--user <id>] [--orchestrate] <message...>"
}

func (c *UnifiedCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.BoolVar(&c.orchestrate, "orchestrate", false, "")
}

func (c *UnifiedCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	message := joinArgs(args)
	if message == "" {
		return usageError(errOut, "missing message", c)
	}
	opts := chatOptions(cfg, c.user)

	var (
		resp *apiclient.Response
		err  error
	)
	if c.orchestrate {
		resp, err = api.Unified.ChatOrchestration(ctx, message, opts)
	} else {
		resp, err = api.Unified.Chat(ctx, message, opts)
	}
	return finish(cfg, resp, err, out, errOut)
}

// SmartCmd talks to the smart chat API, which routes each message to the
// best-suited assistant.
type SmartCmd struct {
	user   string
	stream bool
	simple bool
}

func (c *SmartCmd) Name() string       { return "smart" }
func (c *SmartCmd) Aliases() []string  { return nil }
func (c *SmartCmd) Synopsis() string   { return "Chat through the smart routing API" }
func (c *SmartCmd) NeedsBackend() bool { return true }

func (c *SmartCmd) Usage() string {
	return "robotctl smart [common flags] [--user <id>] [--stream | --simple] chat <message...> | health | demo"
}

func (c *SmartCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.BoolVar(&c.stream, "stream", false, "")
	fs.BoolVar(&c.simple, "simple", false, "")
}

func (c *SmartCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, "missing subcommand", c)
	}
	name, rest := args[0], args[1:]
	switch name {
	case "health", "demo":
		if len(rest) > 0 {
			return usageError(errOut, name+" takes no arguments", c)
		}
		if name == "health" {
			resp, err := api.Smart.Health(ctx)
			return finish(cfg, resp, err, out, errOut)
		}
		resp, err := api.Smart.Demo(ctx)
		return finish(cfg, resp, err, out, errOut)
	case "chat":
	default:
		return usageError(errOut, "unknown subcommand: "+name, c)
	}

	message := joinArgs(rest)
	if message == "" {
		return usageError(errOut, "missing message", c)
	}
	if c.stream && c.simple {
		return usageError(errOut, "--stream and --simple are mutually exclusive", c)
	}
	opts := chatOptions(cfg, c.user)

	var err error
	switch {
	case c.stream:
		err = api.Smart.StreamChat(ctx, message, opts, printEvents(cfg, out))
	case c.simple:
		err = api.Smart.StreamChatSimple(ctx, message, opts, printEvents(cfg, out))
	default:
		resp, err := api.Smart.Chat(ctx, message, opts)
		return finish(cfg, resp, err, out, errOut)
	}
	if err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}

// StreamCmd follows the unified event stream and prints each event.
type StreamCmd struct {
	user    string
	urlOnly bool
}

func (c *StreamCmd) Name() string       { return "stream" }
func (c *StreamCmd) Aliases() []string  { return nil }
func (c *StreamCmd) Synopsis() string   { return "Stream a unified chat answer as events" }
func (c *StreamCmd) NeedsBackend() bool { return true }

func (c *StreamCmd) Usage() string {
	return "robotctl stream [common flags] [--user <id>] [--url] <request...>"
}

func (c *StreamCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.BoolVar(&c.urlOnly, "url", false, "")
}

func (c *StreamCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	request := joinArgs(args)
	if request == "" {
		return usageError(errOut, "missing request", c)
	}
	opts := chatOptions(cfg, c.user)

	if c.urlOnly {
		fmt.Fprintln(out, api.Unified.ChatStreamURL(request, opts))
		return exitcode.Success
	}

	if err := api.Unified.StreamChat(ctx, request, opts, printEvents(cfg, out)); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}

// SQLCmd turns a question into SQL.
type SQLCmd struct {
	memory string
	hot    bool
	rag    bool
}

func (c *SQLCmd) Name() string       { return "sql" }
func (c *SQLCmd) Aliases() []string  { return nil }
func (c *SQLCmd) Synopsis() string   { return "Generate SQL from a question" }
func (c *SQLCmd) NeedsBackend() bool { return true }

func (c *SQLCmd) Usage() string {
	return "robotctl sql [common flags] [--memory <id>] [--hot | --rag] <question...>"
}

func (c *SQLCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.memory, "memory", "", "")
	fs.BoolVar(&c.hot, "hot", false, "")
	fs.BoolVar(&c.rag, "rag", false, "")
}

func (c *SQLCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	question := joinArgs(args)
	if question == "" {
		return usageError(errOut, "missing question", c)
	}
	if c.hot && c.rag {
		return usageError(errOut, "--hot and --rag are mutually exclusive", c)
	}
	memory := c.memory
	if memory == "" {
		memory = cfg.UserID
	}

	var (
		resp *apiclient.Response
		err  error
	)
	switch {
	case c.rag:
		resp, err = api.Legacy.RAGGenerateSQL(ctx, question)
	case c.hot:
		resp, err = api.Legacy.GenerateSQLHotUpdate(ctx, memory, question)
	default:
		resp, err = api.Legacy.GenerateSQL(ctx, memory, question)
	}
	return finish(cfg, resp, err, out, errOut)
}

// chatOptions picks the flag's user, falling back to the configured one.
func chatOptions(cfg *config.Config, user string) *apiclient.ChatOptions {
	if user == "" {
		user = cfg.UserID
	}
	return &apiclient.ChatOptions{UserID: user}
}
