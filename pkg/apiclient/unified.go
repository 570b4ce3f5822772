package apiclient

import (
	"context"
	"net/url"
	"strings"
)

// ChatOptions are the optional arguments of the unified chat calls.
// A nil *ChatOptions or an empty UserID selects DefaultUserID.
type ChatOptions struct {
	UserID string
}

func (o *ChatOptions) userID() string {
	if o == nil || o.UserID == "" {
		return DefaultUserID
	}
	return o.UserID
}

// Unified wraps the production /api/v1 endpoints.
type Unified struct {
	client *Client
}

// NewUnified binds the unified endpoints to c.
func NewUnified(c *Client) *Unified {
	return &Unified{client: c}
}

// Client returns the underlying base client.
func (u *Unified) Client() *Client { return u.client }

// Chat sends GET /chat?message=&userId=.
func (u *Unified) Chat(ctx context.Context, message string, opts *ChatOptions) (*Response, error) {
	return u.client.do(ctx, call{
		endpoint: EndpointUnifiedChat,
		query:    query("message", message, "userId", opts.userID()),
	})
}

// ChatOrchestration sends GET /chat/orchestration?request=&userId=.
func (u *Unified) ChatOrchestration(ctx context.Context, request string, opts *ChatOptions) (*Response, error) {
	return u.client.do(ctx, call{
		endpoint: EndpointUnifiedChatOrchestration,
		query:    query("request", request, "userId", opts.userID()),
	})
}

// ChatStreamURL returns the event-stream URL for request without issuing
// any request. The result is relative to the origin, e.g.
// /api/v1/chat/stream?request=hello%20world&userId=default.
func (u *Unified) ChatStreamURL(request string, opts *ChatOptions) string {
	return u.client.basePath + EndpointUnifiedChatStream.Path +
		"?request=" + encodeComponent(request) +
		"&userId=" + encodeComponent(opts.userID())
}

// Health sends GET /health.
func (u *Unified) Health(ctx context.Context) (*Response, error) {
	return u.client.do(ctx, call{endpoint: EndpointHealthCheck})
}

// componentUnescaper restores the characters a browser leaves bare in a
// query component.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%21", "!",
	"%2A", "*",
)

// encodeComponent percent-encodes s for use inside a query value the way
// encodeURIComponent does: spaces become %20 and '()!* stay literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
