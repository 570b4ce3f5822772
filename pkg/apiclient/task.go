package apiclient

import (
	"context"
)

// Interactive tasks live on the server; the client only forwards the id.

// StartTask sends POST /agent-demo/interactive/start?request= with no body.
func (l *Legacy) StartTask(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointStartTask, query: query("request", request)})
}

// PauseTask sends POST /agent-demo/interactive/pause/{taskId}.
func (l *Legacy) PauseTask(ctx context.Context, taskID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointPauseTask, pathArgs: []string{taskID}})
}

// ResumeTask sends POST /agent-demo/interactive/resume/{taskId}.
func (l *Legacy) ResumeTask(ctx context.Context, taskID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointResumeTask, pathArgs: []string{taskID}})
}

// StopTask sends POST /agent-demo/interactive/stop/{taskId}.
func (l *Legacy) StopTask(ctx context.Context, taskID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointStopTask, pathArgs: []string{taskID}})
}

// TaskStatus sends GET /agent-demo/interactive/status/{taskId}.
func (l *Legacy) TaskStatus(ctx context.Context, taskID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointGetTaskStatus, pathArgs: []string{taskID}})
}

// ListTasks sends GET /agent-demo/interactive/list.
func (l *Legacy) ListTasks(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointListTasks})
}

// SubmitOrchestration sends POST /orchestration/submit?request= with no body.
func (l *Legacy) SubmitOrchestration(ctx context.Context, request string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointSubmitOrchestration, query: query("request", request)})
}

// OrchestrationStatus sends GET /orchestration/status/{dagId}.
func (l *Legacy) OrchestrationStatus(ctx context.Context, dagID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointOrchestrationStatus, pathArgs: []string{dagID}})
}

// StreamOrchestrationStatus opens GET /orchestration/status/{dagId}/stream
// and feeds every status push to fn. The backend closes the stream once the
// DAG is completed, partially failed or cancelled.
func (l *Legacy) StreamOrchestrationStatus(ctx context.Context, dagID string, fn StreamHandler) error {
	return l.client.streamCall(ctx, call{endpoint: EndpointOrchestrationStatusStream, pathArgs: []string{dagID}}, fn)
}

// OrchestrationGraph sends GET /orchestration/graph/{dagId}.
func (l *Legacy) OrchestrationGraph(ctx context.Context, dagID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointOrchestrationGraph, pathArgs: []string{dagID}})
}

// CancelOrchestration sends POST /orchestration/cancel/{dagId}.
func (l *Legacy) CancelOrchestration(ctx context.Context, dagID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointCancelOrchestration, pathArgs: []string{dagID}})
}

// ListOrchestrations sends GET /orchestration/list.
func (l *Legacy) ListOrchestrations(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointListOrchestrations})
}
