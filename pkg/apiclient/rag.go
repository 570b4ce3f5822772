package apiclient

import (
	"context"
)

// ExpandQuery sends GET /chat/query/expand?query=.
func (l *Legacy) ExpandQuery(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointExpandQuery, query: query("query", q)})
}

// RAGWithTransform sends GET /chat/rag/with-query-transform?query=.
func (l *Legacy) RAGWithTransform(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointRAGWithTransform, query: query("query", q)})
}

// CompareRAG sends GET /chat/rag/compare-all?query=.
func (l *Legacy) CompareRAG(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointCompareRAG, query: query("query", q)})
}

// RAGChat sends GET /chat/rag/chat?query=.
func (l *Legacy) RAGChat(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointRAGChat, query: query("query", q)})
}

// RAGGenerateSQL sends GET /chat/rag/generate-sql?query=.
func (l *Legacy) RAGGenerateSQL(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointRAGGenerateSQL, query: query("query", q)})
}

// AddBusinessKnowledge posts knowledge verbatim as a text/plain body.
func (l *Legacy) AddBusinessKnowledge(ctx context.Context, knowledge string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint:    EndpointAddBusinessKnowledge,
		body:        []byte(knowledge),
		contentType: ContentTypeText,
	})
}
