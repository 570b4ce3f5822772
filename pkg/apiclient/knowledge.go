package apiclient

import (
	"context"
)

// AddKnowledge posts content verbatim as a text/plain body.
func (l *Legacy) AddKnowledge(ctx context.Context, content string) (*Response, error) {
	return l.client.do(ctx, call{
		endpoint:    EndpointAddKnowledge,
		body:        []byte(content),
		contentType: ContentTypeText,
	})
}

// AddKnowledgeBatch posts contents as a JSON array.
func (l *Legacy) AddKnowledgeBatch(ctx context.Context, contents []string) (*Response, error) {
	body, err := jsonBody(nonNil(contents))
	if err != nil {
		return nil, err
	}
	return l.client.do(ctx, call{endpoint: EndpointAddKnowledgeBatch, body: body, contentType: contentTypeJSON})
}

// SearchKnowledge sends GET /chat/knowledge/search?query=.
func (l *Legacy) SearchKnowledge(ctx context.Context, q string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointSearchKnowledge, query: query("query", q)})
}

// ClearKnowledge sends DELETE /chat/knowledge/clear with no body.
func (l *Legacy) ClearKnowledge(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointClearKnowledge})
}

// DeleteKnowledge sends DELETE /chat/knowledge/{embeddingId}.
func (l *Legacy) DeleteKnowledge(ctx context.Context, embeddingID string) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointDeleteKnowledge, pathArgs: []string{embeddingID}})
}

// DeleteKnowledgeBatch sends DELETE /chat/knowledge/batch with the ids as a JSON array.
func (l *Legacy) DeleteKnowledgeBatch(ctx context.Context, embeddingIDs []string) (*Response, error) {
	body, err := jsonBody(nonNil(embeddingIDs))
	if err != nil {
		return nil, err
	}
	return l.client.do(ctx, call{endpoint: EndpointDeleteKnowledgeBatch, body: body, contentType: contentTypeJSON})
}

// KnowledgeStats sends GET /chat/knowledge/stats.
func (l *Legacy) KnowledgeStats(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointKnowledgeStats})
}

// LoadStudentDDL sends POST /chat/knowledge/load-student-ddl with no body.
func (l *Legacy) LoadStudentDDL(ctx context.Context) (*Response, error) {
	return l.client.do(ctx, call{endpoint: EndpointLoadStudentDDL})
}

// nonNil keeps an empty batch encoded as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
