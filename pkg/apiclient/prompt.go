package apiclient

import (
	"context"
	"net/url"
)

// PromptUpdate carries the new prompt text. An empty Version leaves the
// parameter out and the backend applies "2.0".
type PromptUpdate struct {
	Content string
	Version string
}

// ListPrompts sends GET /chat/prompts/list.
func (l *Legacy) ListPrompts(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointListPrompts})
}

// GetPrompt sends GET /chat/prompts/{key}.
func (l *Legacy) GetPrompt(ctx context.Context, key string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointGetPrompt, pathArgs: []string{key}})
}

// UpdatePrompt sends PUT /chat/prompts/{key}?content=&version= with no body.
func (l *Legacy) UpdatePrompt(ctx context.Context, key string, update PromptUpdate) (*Response, error) {
	q := url.Values{}
	q.Set("content", update.Content)
	if update.Version != "" {
		q.Set("version", update.Version)
	}
	return l.client.do(ctx, call{endpoint: EndpointUpdatePrompt, pathArgs: []string{key}, query: q})
}
