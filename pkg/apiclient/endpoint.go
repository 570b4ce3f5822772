package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Binding tells where an endpoint carries its non-path arguments.
type Binding int

const (
	// BindNone sends neither query parameters nor a body.
	BindNone Binding = iota
	// BindQuery sends arguments as query parameters with no body.
	BindQuery
	// BindBody sends the argument as the request body.
	BindBody
)

func (b Binding) String() string {
	switch b {
	case BindQuery:
		return "query"
	case BindBody:
		return "body"
	default:
		return "none"
	}
}

// Endpoint describes one backend route. Path may contain {name}
// placeholders which are filled positionally and percent-encoded.
type Endpoint struct {
	Name    string
	Method  string
	Path    string
	Binding Binding
}

// Expand fills the placeholders of the path template with args in order.
func (e Endpoint) Expand(args ...string) (string, error) {
	var b strings.Builder
	rest := e.Path
	used := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%s: unterminated placeholder in %q", e.Name, e.Path)
		}
		if used >= len(args) {
			return "", fmt.Errorf("%s: %w", e.Name, ErrPathParams)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(args[used]))
		used++
		rest = rest[open+end+1:]
	}
	if used != len(args) {
		return "", fmt.Errorf("%s: %w", e.Name, ErrPathParams)
	}
	return b.String(), nil
}

// Unified (/api/v1) endpoints.
var (
	EndpointUnifiedChat              = Endpoint{"unifiedChat", http.MethodGet, "/chat", BindQuery}
	EndpointUnifiedChatOrchestration = Endpoint{"unifiedChatOrchestration", http.MethodGet, "/chat/orchestration", BindQuery}
	EndpointUnifiedChatStream        = Endpoint{"unifiedChatStream", http.MethodGet, "/chat/stream", BindQuery}
	EndpointHealthCheck              = Endpoint{"healthCheck", http.MethodGet, "/health", BindNone}
)

// Smart (/api/smart) endpoints.
var (
	EndpointSmartChat             = Endpoint{"smartChat", http.MethodGet, "/chat", BindQuery}
	EndpointSmartHealth           = Endpoint{"smartHealth", http.MethodGet, "/health", BindNone}
	EndpointSmartDemo             = Endpoint{"smartDemo", http.MethodGet, "/demo", BindNone}
	EndpointSmartChatStream       = Endpoint{"smartChatStream", http.MethodGet, "/chat/stream", BindQuery}
	EndpointSmartChatStreamSimple = Endpoint{"smartChatStreamSimple", http.MethodGet, "/chat/stream/simple", BindQuery}
)

// Legacy (/ai) endpoints.
var (
	EndpointTestChat             = Endpoint{"testChat", http.MethodGet, "/chat/test", BindNone}
	EndpointChat                 = Endpoint{"chat", http.MethodGet, "/chat", BindQuery}
	EndpointStreamChat           = Endpoint{"streamChat", http.MethodGet, "/chat/{memoryId}/stream/memory", BindQuery}
	EndpointGenerateSQL          = Endpoint{"generateSql", http.MethodGet, "/chat/{memoryId}/sql/generate", BindQuery}
	EndpointGenerateSQLHotUpdate = Endpoint{"generateSqlHotUpdate", http.MethodGet, "/chat/{memoryId}/sql/generate/hotUpdate", BindQuery}

	EndpointAddKnowledge         = Endpoint{"addKnowledge", http.MethodPost, "/chat/knowledge/add", BindBody}
	EndpointAddKnowledgeBatch    = Endpoint{"addKnowledgeBatch", http.MethodPost, "/chat/knowledge/batch", BindBody}
	EndpointSearchKnowledge      = Endpoint{"searchKnowledge", http.MethodGet, "/chat/knowledge/search", BindQuery}
	EndpointClearKnowledge       = Endpoint{"clearKnowledge", http.MethodDelete, "/chat/knowledge/clear", BindNone}
	EndpointDeleteKnowledge      = Endpoint{"deleteKnowledge", http.MethodDelete, "/chat/knowledge/{embeddingId}", BindNone}
	EndpointDeleteKnowledgeBatch = Endpoint{"deleteKnowledgeBatch", http.MethodDelete, "/chat/knowledge/batch", BindBody}
	EndpointKnowledgeStats       = Endpoint{"getKnowledgeStats", http.MethodGet, "/chat/knowledge/stats", BindNone}
	EndpointLoadStudentDDL       = Endpoint{"loadStudentDDL", http.MethodPost, "/chat/knowledge/load-student-ddl", BindNone}

	EndpointExpandQuery          = Endpoint{"expandQuery", http.MethodGet, "/chat/query/expand", BindQuery}
	EndpointRAGWithTransform     = Endpoint{"ragWithTransform", http.MethodGet, "/chat/rag/with-query-transform", BindQuery}
	EndpointCompareRAG           = Endpoint{"compareRag", http.MethodGet, "/chat/rag/compare-all", BindQuery}
	EndpointRAGChat              = Endpoint{"ragChat", http.MethodGet, "/chat/rag/chat", BindQuery}
	EndpointRAGGenerateSQL       = Endpoint{"ragGenerateSql", http.MethodGet, "/chat/rag/generate-sql", BindQuery}
	EndpointAddBusinessKnowledge = Endpoint{"addBusinessKnowledge", http.MethodPost, "/chat/rag/add-business-knowledge", BindBody}

	EndpointPlanTrip      = Endpoint{"planTrip", http.MethodGet, "/chat/agent/plan-trip", BindQuery}
	EndpointAnalyzeData   = Endpoint{"analyzeData", http.MethodGet, "/chat/agent/analyze-data", BindQuery}
	EndpointGeneralAssist = Endpoint{"generalAssist", http.MethodGet, "/chat/agent/general", BindQuery}

	EndpointPlanExecuteDemo = Endpoint{"planExecuteDemo", http.MethodGet, "/agent-demo/mode/plan-execute", BindQuery}
	EndpointReflexionDemo   = Endpoint{"reflexionDemo", http.MethodGet, "/agent-demo/mode/reflexion", BindQuery}
	EndpointCoTDemo         = Endpoint{"cotDemo", http.MethodGet, "/agent-demo/mode/chain-of-thought", BindQuery}
	EndpointCompareModes    = Endpoint{"compareModes", http.MethodGet, "/agent-demo/mode/compare", BindQuery}
	EndpointRouterDemo      = Endpoint{"routerDemo", http.MethodGet, "/agent-demo/router", BindQuery}
	EndpointSmartRoute      = Endpoint{"smartRoute", http.MethodPost, "/agent-demo/smart-route", BindQuery}
	EndpointOrchestrate     = Endpoint{"orchestrate", http.MethodGet, "/agent-demo/orchestration", BindQuery}

	EndpointStartTask     = Endpoint{"startTask", http.MethodPost, "/agent-demo/interactive/start", BindQuery}
	EndpointPauseTask     = Endpoint{"pauseTask", http.MethodPost, "/agent-demo/interactive/pause/{taskId}", BindNone}
	EndpointResumeTask    = Endpoint{"resumeTask", http.MethodPost, "/agent-demo/interactive/resume/{taskId}", BindNone}
	EndpointStopTask      = Endpoint{"stopTask", http.MethodPost, "/agent-demo/interactive/stop/{taskId}", BindNone}
	EndpointGetTaskStatus = Endpoint{"getTaskStatus", http.MethodGet, "/agent-demo/interactive/status/{taskId}", BindNone}
	EndpointListTasks     = Endpoint{"listTasks", http.MethodGet, "/agent-demo/interactive/list", BindNone}

	EndpointSubmitOrchestration       = Endpoint{"submitOrchestration", http.MethodPost, "/orchestration/submit", BindQuery}
	EndpointOrchestrationStatus       = Endpoint{"getOrchestrationStatus", http.MethodGet, "/orchestration/status/{dagId}", BindNone}
	EndpointOrchestrationStatusStream = Endpoint{"streamOrchestrationStatus", http.MethodGet, "/orchestration/status/{dagId}/stream", BindNone}
	EndpointOrchestrationGraph        = Endpoint{"getOrchestrationGraph", http.MethodGet, "/orchestration/graph/{dagId}", BindNone}
	EndpointCancelOrchestration       = Endpoint{"cancelOrchestration", http.MethodPost, "/orchestration/cancel/{dagId}", BindNone}
	EndpointListOrchestrations        = Endpoint{"listOrchestrations", http.MethodGet, "/orchestration/list", BindNone}

	EndpointMCPChat        = Endpoint{"mcpChat", http.MethodGet, "/chat/mcp/chat", BindQuery}
	EndpointListMCPServers = Endpoint{"listMcpServers", http.MethodGet, "/chat/mcp/servers", BindNone}
	EndpointListMCPTools   = Endpoint{"listMcpTools", http.MethodGet, "/chat/mcp/tools", BindNone}
	EndpointExecuteMCPTool = Endpoint{"executeMcpTool", http.MethodPost, "/chat/mcp/execute", BindBody}

	EndpointListPrompts  = Endpoint{"listPrompts", http.MethodGet, "/chat/prompts/list", BindNone}
	EndpointGetPrompt    = Endpoint{"getPrompt", http.MethodGet, "/chat/prompts/{key}", BindNone}
	EndpointUpdatePrompt = Endpoint{"updatePrompt", http.MethodPut, "/chat/prompts/{key}", BindQuery}
)

// UnifiedEndpoints lists every route of the unified client.
func UnifiedEndpoints() []Endpoint {
	return []Endpoint{
		EndpointUnifiedChat, EndpointUnifiedChatOrchestration, EndpointUnifiedChatStream, EndpointHealthCheck,
	}
}

// SmartEndpoints lists every route of the smart chat client.
func SmartEndpoints() []Endpoint {
	return []Endpoint{
		EndpointSmartChat, EndpointSmartHealth, EndpointSmartDemo, EndpointSmartChatStream, EndpointSmartChatStreamSimple,
	}
}

// LegacyEndpoints lists every route of the legacy client.
func LegacyEndpoints() []Endpoint {
	return []Endpoint{
		EndpointTestChat, EndpointChat, EndpointStreamChat, EndpointGenerateSQL, EndpointGenerateSQLHotUpdate,
		EndpointAddKnowledge, EndpointAddKnowledgeBatch, EndpointSearchKnowledge, EndpointClearKnowledge,
		EndpointDeleteKnowledge, EndpointDeleteKnowledgeBatch, EndpointKnowledgeStats, EndpointLoadStudentDDL,
		EndpointExpandQuery, EndpointRAGWithTransform, EndpointCompareRAG, EndpointRAGChat, EndpointRAGGenerateSQL,
		EndpointAddBusinessKnowledge,
		EndpointPlanTrip, EndpointAnalyzeData, EndpointGeneralAssist,
		EndpointPlanExecuteDemo, EndpointReflexionDemo, EndpointCoTDemo, EndpointCompareModes, EndpointRouterDemo,
		EndpointSmartRoute, EndpointOrchestrate,
		EndpointStartTask, EndpointPauseTask, EndpointResumeTask, EndpointStopTask, EndpointGetTaskStatus, EndpointListTasks,
		EndpointSubmitOrchestration, EndpointOrchestrationStatus, EndpointOrchestrationStatusStream,
		EndpointOrchestrationGraph, EndpointCancelOrchestration, EndpointListOrchestrations,
		EndpointMCPChat, EndpointListMCPServers, EndpointListMCPTools, EndpointExecuteMCPTool,
		EndpointListPrompts, EndpointGetPrompt, EndpointUpdatePrompt,
	}
}
