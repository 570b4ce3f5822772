package apiclient

import (
	"context"
	"strconv"
)

// ReflexionOptions tune the reflexion demo. MaxRetries <= 0 leaves the
// parameter out and the backend applies its default of 3.
type ReflexionOptions struct {
	MaxRetries int
}

// PlanTrip sends GET /chat/agent/plan-trip?request=.
func (l *Legacy) PlanTrip(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointPlanTrip, query: query("request", request)})
}

// AnalyzeData sends GET /chat/agent/analyze-data?request=.
func (l *Legacy) AnalyzeData(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointAnalyzeData, query: query("request", request)})
}

// GeneralAssist sends GET /chat/agent/general?request=.
func (l *Legacy) GeneralAssist(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointGeneralAssist, query: query("request", request)})
}

// PlanExecuteDemo sends GET /agent-demo/mode/plan-execute?task=.
func (l *Legacy) PlanExecuteDemo(ctx context.Context, task string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointPlanExecuteDemo, query: query("task", task)})
}

// ReflexionDemo sends GET /agent-demo/mode/reflexion?task=[&maxRetries=].
func (l *Legacy) ReflexionDemo(ctx context.Context, task string, opts *ReflexionOptions) (*Response, error) {
	q := query("task", task)
	if opts != nil && opts.MaxRetries > 0 {
		q.Set("maxRetries", strconv.Itoa(opts.MaxRetries))
	}
	return l.client.do(ctx, call{endpoint: EndpointReflexionDemo, query: q})
}

// CoTDemo sends GET /agent-demo/mode/chain-of-thought?problem=.
func (l *Legacy) CoTDemo(ctx context.Context, problem string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointCoTDemo, query: query("problem", problem)})
}

// CompareModes sends GET /agent-demo/mode/compare?task=.
func (l *Legacy) CompareModes(ctx context.Context, task string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointCompareModes, query: query("task", task)})
}

// RouterDemo sends GET /agent-demo/router?input=.
func (l *Legacy) RouterDemo(ctx context.Context, input string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointRouterDemo, query: query("input", input)})
}

// SmartRoute sends POST /agent-demo/smart-route?input= with no body.
func (l *Legacy) SmartRoute(ctx context.Context, input string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointSmartRoute, query: query("input", input)})
}

// Orchestrate sends GET /agent-demo/orchestration?request=.
func (l *Legacy) Orchestrate(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointOrchestrate, query: query("request", request)})
}
