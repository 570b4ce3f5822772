package apiclient

import (
	"context"
)

// Smart wraps the /api/smart chat endpoints, which route each message to
// the best-suited assistant on the backend.
type Smart struct {
	client *Client
}

// NewSmart binds the smart chat endpoints to c.
func NewSmart(c *Client) *Smart {
	return &Smart{client: c}
}

// Client returns the underlying base client.
func (s *Smart) Client() *Client { return s.client }

// Chat sends GET /chat?message=&userId=.
func (s *Smart) Chat(ctx context.Context, message string, opts *ChatOptions) (*Response, error) {
	return s.client.do(ctx, call{
		endpoint: EndpointSmartChat,
		query:    query("message", message, "userId", opts.userID()),
	})
}

// Health sends GET /health.
func (s *Smart) Health(ctx context.Context) (*Response, error) {
	return s.client.do(ctx, call{endpoint: EndpointSmartHealth})
}

// Demo sends GET /demo.
func (s *Smart) Demo(ctx context.Context) (*Response, error) {
	return s.client.do(ctx, call{endpoint: EndpointSmartDemo})
}

// StreamChat opens GET /chat/stream?userId=&message= and feeds every event
// to fn. The events narrate the backend's task orchestration up to a final
// all_complete event. Like the unified stream it is bounded by ctx only.
func (s *Smart) StreamChat(ctx context.Context, message string, opts *ChatOptions, fn StreamHandler) error {
	return s.client.streamCall(ctx, call{
		endpoint: EndpointSmartChatStream,
		query:    query("userId", opts.userID(), "message", message),
	}, fn)
}

// StreamChatSimple opens GET /chat/stream/simple?userId=&message=, the
// variant without task orchestration.
func (s *Smart) StreamChatSimple(ctx context.Context, message string, opts *ChatOptions, fn StreamHandler) error {
	return s.client.streamCall(ctx, call{
		endpoint: EndpointSmartChatStreamSimple,
		query:    query("userId", opts.userID(), "message", message),
	}, fn)
}
