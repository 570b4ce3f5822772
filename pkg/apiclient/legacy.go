package apiclient

import (
	"context"
)

// Legacy wraps the /ai learning and debug endpoints.
type Legacy struct {
	client *Client
}

// NewLegacy binds the legacy endpoints to c.
func NewLegacy(c *Client) *Legacy {
	return &Legacy{client: c}
}

// Client returns the underlying base client.
func (l *Legacy) Client() *Client { return l.client }

// TestChat sends GET /chat/test.
func (l *Legacy) TestChat(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointTestChat})
}

// Chat sends GET /chat?memoryId=&userMessage=.
func (l *Legacy) Chat(ctx context.Context, memoryID, message string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint: EndpointChat,
		query:    query("memoryId", memoryID, "userMessage", message),
	})
}

// StreamChat sends GET /chat/{memoryId}/stream/memory?userMessage= and
// returns the whole streamed body once the backend closes it.
func (l *Legacy) StreamChat(ctx context.Context, memoryID, message string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint: EndpointStreamChat,
		pathArgs: []string{memoryID},
		query:    query("userMessage", message),
	})
}

// GenerateSQL sends GET /chat/{memoryId}/sql/generate?userMessage=.
func (l *Legacy) GenerateSQL(ctx context.Context, memoryID, message string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint: EndpointGenerateSQL,
		pathArgs: []string{memoryID},
		query:    query("userMessage", message),
	})
}

// GenerateSQLHotUpdate sends GET /chat/{memoryId}/sql/generate/hotUpdate?userMessage=.
func (l *Legacy) GenerateSQLHotUpdate(ctx context.Context, memoryID, message string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint: EndpointGenerateSQLHotUpdate,
		pathArgs: []string{memoryID},
		query:    query("userMessage", message),
	})
}
