package smoke

import (
	"context"

	"github.com/okian/robot/pkg/apiclient"
)

// DefaultChecks returns the read-only backend calls. None of them changes
// backend state or invokes a model.
func DefaultChecks() []Check {
	return []Check{
		{Name: apiclient.EndpointHealthCheck.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Unified.Health(ctx)
		}},
		{Name: apiclient.EndpointSmartHealth.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Smart.Health(ctx)
		}},
		{Name: apiclient.EndpointTestChat.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.TestChat(ctx)
		}},
		{Name: apiclient.EndpointKnowledgeStats.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.KnowledgeStats(ctx)
		}},
		{Name: apiclient.EndpointListTasks.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.ListTasks(ctx)
		}},
		{Name: apiclient.EndpointListOrchestrations.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.ListOrchestrations(ctx)
		}},
		{Name: apiclient.EndpointListMCPServers.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.ListMCPServers(ctx)
		}},
		{Name: apiclient.EndpointListMCPTools.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.ListMCPTools(ctx)
		}},
		{Name: apiclient.EndpointListPrompts.Name, Call: func(ctx context.Context, a *apiclient.API) (*apiclient.Response, error) {
			return a.Legacy.ListPrompts(ctx)
		}},
	}
}
