package commands

import (
	"context"
	"flag"
	"io"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/pkg/apiclient"
)

var knowledgeActions = []action{
	{name: "add", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.AddKnowledge(ctx, args[0])
	}},
	{name: "add-batch", args: argList, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.AddKnowledgeBatch(ctx, args)
	}},
	{name: "search", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.SearchKnowledge(ctx, args[0])
	}},
	{name: "clear", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
		return api.Legacy.ClearKnowledge(ctx)
	}},
	{name: "delete", args: argID, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.DeleteKnowledge(ctx, args[0])
	}},
	{name: "delete-batch", args: argList, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.DeleteKnowledgeBatch(ctx, args)
	}},
	{name: "stats", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
		return api.Legacy.KnowledgeStats(ctx)
	}},
	{name: "load-ddl", args: argNone, call: func(ctx context.Context, api *apiclient.API, _ []string) (*apiclient.Response, error) {
		return api.Legacy.LoadStudentDDL(ctx)
	}},
}

// KnowledgeCmd manages the knowledge base.
type KnowledgeCmd struct{}

func init() {
	Register(&KnowledgeCmd{})
	Register(&RAGCmd{})
}

func (c *KnowledgeCmd) Name() string                   { return "knowledge" }
func (c *KnowledgeCmd) Aliases() []string              { return []string{"kb"} }
func (c *KnowledgeCmd) Synopsis() string               { return "Add, search and delete knowledge entries" }
func (c *KnowledgeCmd) NeedsBackend() bool             { return true }
func (c *KnowledgeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *KnowledgeCmd) Usage() string {
	return "robotctl knowledge [common flags] " + actionNames(knowledgeActions) + " [args...]"
}

func (c *KnowledgeCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	return runAction(ctx, c, knowledgeActions, cfg, api, args, out, errOut)
}

var ragActions = []action{
	{name: "expand", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.ExpandQuery(ctx, args[0])
	}},
	{name: "transform", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.RAGWithTransform(ctx, args[0])
	}},
	{name: "compare", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.CompareRAG(ctx, args[0])
	}},
	{name: "chat", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.RAGChat(ctx, args[0])
	}},
	{name: "sql", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.RAGGenerateSQL(ctx, args[0])
	}},
	{name: "add-business", args: argText, call: func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error) {
		return api.Legacy.AddBusinessKnowledge(ctx, args[0])
	}},
}

// RAGCmd runs the retrieval-augmented endpoints.
type RAGCmd struct{}

func (c *RAGCmd) Name() string                   { return "rag" }
func (c *RAGCmd) Aliases() []string              { return nil }
func (c *RAGCmd) Synopsis() string               { return "Query expansion and retrieval-augmented answers" }
func (c *RAGCmd) NeedsBackend() bool             { return true }
func (c *RAGCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RAGCmd) Usage() string {
	return "robotctl rag [common flags] " + actionNames(ragActions) + " <text...>"
}

func (c *RAGCmd) Run(ctx context.Context, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	return runAction(ctx, c, ragActions, cfg, api, args, out, errOut)
}
