package apiclient

import (
	"context"
)

// MCPToolRequest is the body of ExecuteMCPTool.
type MCPToolRequest struct {
	ServerName string         `json:"serverName"`
	ToolName   string         `json:"toolName"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// MCPChat sends GET /chat/mcp/chat?message=.
func (l *Legacy) MCPChat(ctx context.Context, message string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointMCPChat, query: query("message", message)})
}

// ListMCPServers sends GET /chat/mcp/servers.
func (l *Legacy) ListMCPServers(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointListMCPServers})
}

// ListMCPTools sends GET /chat/mcp/tools.
func (l *Legacy) ListMCPTools(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointListMCPTools})
}

// ExecuteMCPTool posts req as JSON to /chat/mcp/execute.
func (l *Legacy) ExecuteMCPTool(ctx context.Context, req MCPToolRequest) (*Response, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	return l.client.do(ctx, call{endpoint: EndpointExecuteMCPTool, body: body, contentType: contentTypeJSON})
}
