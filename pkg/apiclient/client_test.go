package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/okian/robot/pkg/apiclient"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/oauth2"
)

// captured is what the fake backend saw for one request.
type captured struct {
	Method      string
	Path        string
	Query       url.Values
	RawQuery    string
	Body        string
	ContentType string
	Header      http.Header
}

// backend records every request and answers with status/body.
type backend struct {
	mu       sync.Mutex
	requests []captured
	status   int
	body     string
	delay    time.Duration
	srv      *httptest.Server
}

func newBackend() *backend {
	b := &backend{status: http.StatusOK, body: `{"ok":true}`}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, captured{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			Query:       r.URL.Query(),
			RawQuery:    r.URL.RawQuery,
			Body:        string(data),
			ContentType: r.Header.Get("Content-Type"),
			Header:      r.Header.Clone(),
		})
		status, body, delay := b.status, b.body, b.delay
		b.mu.Unlock()
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	return b
}

func (b *backend) respond(status int, body string, delay time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.body, b.delay = status, body, delay
}

func (b *backend) last() captured {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *backend) api(opts ...apiclient.Option) *apiclient.API {
	api, err := apiclient.NewAPI(append([]apiclient.Option{apiclient.WithOrigin(b.srv.URL)}, opts...)...)
	if err != nil {
		panic(err)
	}
	return api
}

type fakeRecorder struct {
	mu       sync.Mutex
	observed []string
	failures []string
}

func (f *fakeRecorder) ObserveClientRequest(endpoint, method string, status int, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observed = append(f.observed, endpoint)
}

func (f *fakeRecorder) RecordClientError(endpoint, kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, endpoint+":"+kind)
}

func TestNew(t *testing.T) {
	Convey("Given the client factory", t, func() {
		Convey("When the base URL is empty", func() {
			c, err := apiclient.New("  ", time.Second)

			Convey("Then it should be rejected", func() {
				So(c, ShouldBeNil)
				So(errors.Is(err, apiclient.ErrEmptyBaseURL), ShouldBeTrue)
			})
		})

		Convey("When the base URL is a bare path", func() {
			c, err := apiclient.New("/ai", 0)

			Convey("Then the default timeout applies and no origin is set", func() {
				So(err, ShouldBeNil)
				So(c.BasePath(), ShouldEqual, "/ai")
				So(c.Origin(), ShouldEqual, "")
				So(c.Timeout(), ShouldEqual, 60*time.Second)
			})
		})

		Convey("When the base URL is absolute", func() {
			c, err := apiclient.New("http://backend:8080/api/v1/", time.Second)

			Convey("Then origin and base path are split", func() {
				So(err, ShouldBeNil)
				So(c.Origin(), ShouldEqual, "http://backend:8080")
				So(c.BasePath(), ShouldEqual, "/api/v1")
			})
		})

		Convey("When only some base paths are given", func() {
			api, err := apiclient.NewAPIWithPaths(apiclient.BasePaths{Smart: "/robot/smart/"}, time.Second)

			Convey("Then the others keep the stock paths", func() {
				So(err, ShouldBeNil)
				So(api.Paths(), ShouldResemble, apiclient.BasePaths{
					Legacy: "/ai", Unified: "/api/v1", Smart: "/robot/smart",
				})
			})
		})

		Convey("When the stock clients are built", func() {
			api, err := apiclient.NewAPI()

			Convey("Then it uses /ai, /api/v1 and /api/smart with 60s", func() {
				So(err, ShouldBeNil)
				So(api.Legacy.Client().BasePath(), ShouldEqual, "/ai")
				So(api.Unified.Client().BasePath(), ShouldEqual, "/api/v1")
				So(api.Smart.Client().BasePath(), ShouldEqual, "/api/smart")
				So(api.Smart.Client().Timeout(), ShouldEqual, 60*time.Second)
				So(api.Legacy.Client().Timeout(), ShouldEqual, 60*time.Second)
				So(api.Unified.Client().Timeout(), ShouldEqual, 60*time.Second)
			})
		})
	})
}

func TestEndpointWrappers(t *testing.T) {
	Convey("Given a fake backend", t, func() {
		b := newBackend()
		defer b.srv.Close()
		api := b.api()
		ctx := context.Background()

		type expect struct {
			name   string
			invoke func() (*apiclient.Response, error)
			method string
			path   string
			query  map[string]string
			body   string
		}
		cases := []expect{
			{"unifiedChat", func() (*apiclient.Response, error) {
				return api.Unified.Chat(ctx, "hi", &apiclient.ChatOptions{UserID: "u1"})
			}, "GET", "/api/v1/chat", map[string]string{"message": "hi", "userId": "u1"}, ""},
			{"unifiedChatOrchestration", func() (*apiclient.Response, error) {
				return api.Unified.ChatOrchestration(ctx, "plan", nil)
			}, "GET", "/api/v1/chat/orchestration", map[string]string{"request": "plan", "userId": "default"}, ""},
			{"healthCheck", func() (*apiclient.Response, error) { return api.Unified.Health(ctx) },
				"GET", "/api/v1/health", nil, ""},
			{"smartChat", func() (*apiclient.Response, error) {
				return api.Smart.Chat(ctx, "which course", nil)
			}, "GET", "/api/smart/chat", map[string]string{"message": "which course", "userId": "default"}, ""},
			{"smartChat user", func() (*apiclient.Response, error) {
				return api.Smart.Chat(ctx, "hi", &apiclient.ChatOptions{UserID: "u9"})
			}, "GET", "/api/smart/chat", map[string]string{"message": "hi", "userId": "u9"}, ""},
			{"smartHealth", func() (*apiclient.Response, error) { return api.Smart.Health(ctx) },
				"GET", "/api/smart/health", nil, ""},
			{"smartDemo", func() (*apiclient.Response, error) { return api.Smart.Demo(ctx) },
				"GET", "/api/smart/demo", nil, ""},
			{"testChat", func() (*apiclient.Response, error) { return api.Legacy.TestChat(ctx) },
				"GET", "/ai/chat/test", nil, ""},
			{"chat", func() (*apiclient.Response, error) { return api.Legacy.Chat(ctx, "m1", "hello") },
				"GET", "/ai/chat", map[string]string{"memoryId": "m1", "userMessage": "hello"}, ""},
			{"streamChat", func() (*apiclient.Response, error) { return api.Legacy.StreamChat(ctx, "m1", "hello") },
				"GET", "/ai/chat/m1/stream/memory", map[string]string{"userMessage": "hello"}, ""},
			{"generateSql", func() (*apiclient.Response, error) { return api.Legacy.GenerateSQL(ctx, "m1", "all students") },
				"GET", "/ai/chat/m1/sql/generate", map[string]string{"userMessage": "all students"}, ""},
			{"generateSqlHotUpdate", func() (*apiclient.Response, error) {
				return api.Legacy.GenerateSQLHotUpdate(ctx, "m1", "q")
			}, "GET", "/ai/chat/m1/sql/generate/hotUpdate", map[string]string{"userMessage": "q"}, ""},
			{"searchKnowledge", func() (*apiclient.Response, error) { return api.Legacy.SearchKnowledge(ctx, "ddl") },
				"GET", "/ai/chat/knowledge/search", map[string]string{"query": "ddl"}, ""},
			{"clearKnowledge", func() (*apiclient.Response, error) { return api.Legacy.ClearKnowledge(ctx) },
				"DELETE", "/ai/chat/knowledge/clear", nil, ""},
			{"deleteKnowledge", func() (*apiclient.Response, error) { return api.Legacy.DeleteKnowledge(ctx, "e-1") },
				"DELETE", "/ai/chat/knowledge/e-1", nil, ""},
			{"getKnowledgeStats", func() (*apiclient.Response, error) { return api.Legacy.KnowledgeStats(ctx) },
				"GET", "/ai/chat/knowledge/stats", nil, ""},
			{"loadStudentDDL", func() (*apiclient.Response, error) { return api.Legacy.LoadStudentDDL(ctx) },
				"POST", "/ai/chat/knowledge/load-student-ddl", nil, ""},
			{"expandQuery", func() (*apiclient.Response, error) { return api.Legacy.ExpandQuery(ctx, "q") },
				"GET", "/ai/chat/query/expand", map[string]string{"query": "q"}, ""},
			{"ragWithTransform", func() (*apiclient.Response, error) { return api.Legacy.RAGWithTransform(ctx, "q") },
				"GET", "/ai/chat/rag/with-query-transform", map[string]string{"query": "q"}, ""},
			{"compareRag", func() (*apiclient.Response, error) { return api.Legacy.CompareRAG(ctx, "q") },
				"GET", "/ai/chat/rag/compare-all", map[string]string{"query": "q"}, ""},
			{"ragChat", func() (*apiclient.Response, error) { return api.Legacy.RAGChat(ctx, "q") },
				"GET", "/ai/chat/rag/chat", map[string]string{"query": "q"}, ""},
			{"ragGenerateSql", func() (*apiclient.Response, error) { return api.Legacy.RAGGenerateSQL(ctx, "q") },
				"GET", "/ai/chat/rag/generate-sql", map[string]string{"query": "q"}, ""},
			{"planTrip", func() (*apiclient.Response, error) { return api.Legacy.PlanTrip(ctx, "beijing") },
				"GET", "/ai/chat/agent/plan-trip", map[string]string{"request": "beijing"}, ""},
			{"analyzeData", func() (*apiclient.Response, error) { return api.Legacy.AnalyzeData(ctx, "grades") },
				"GET", "/ai/chat/agent/analyze-data", map[string]string{"request": "grades"}, ""},
			{"generalAssist", func() (*apiclient.Response, error) { return api.Legacy.GeneralAssist(ctx, "x") },
				"GET", "/ai/chat/agent/general", map[string]string{"request": "x"}, ""},
			{"planExecuteDemo", func() (*apiclient.Response, error) { return api.Legacy.PlanExecuteDemo(ctx, "t") },
				"GET", "/ai/agent-demo/mode/plan-execute", map[string]string{"task": "t"}, ""},
			{"reflexionDemo", func() (*apiclient.Response, error) { return api.Legacy.ReflexionDemo(ctx, "t", nil) },
				"GET", "/ai/agent-demo/mode/reflexion", map[string]string{"task": "t"}, ""},
			{"reflexionDemo retries", func() (*apiclient.Response, error) {
				return api.Legacy.ReflexionDemo(ctx, "t", &apiclient.ReflexionOptions{MaxRetries: 5})
			}, "GET", "/ai/agent-demo/mode/reflexion", map[string]string{"task": "t", "maxRetries": "5"}, ""},
			{"cotDemo", func() (*apiclient.Response, error) { return api.Legacy.CoTDemo(ctx, "p") },
				"GET", "/ai/agent-demo/mode/chain-of-thought", map[string]string{"problem": "p"}, ""},
			{"compareModes", func() (*apiclient.Response, error) { return api.Legacy.CompareModes(ctx, "t") },
				"GET", "/ai/agent-demo/mode/compare", map[string]string{"task": "t"}, ""},
			{"routerDemo", func() (*apiclient.Response, error) { return api.Legacy.RouterDemo(ctx, "i") },
				"GET", "/ai/agent-demo/router", map[string]string{"input": "i"}, ""},
			{"smartRoute", func() (*apiclient.Response, error) { return api.Legacy.SmartRoute(ctx, "i") },
				"POST", "/ai/agent-demo/smart-route", map[string]string{"input": "i"}, ""},
			{"orchestrate", func() (*apiclient.Response, error) { return api.Legacy.Orchestrate(ctx, "r") },
				"GET", "/ai/agent-demo/orchestration", map[string]string{"request": "r"}, ""},
			{"startTask", func() (*apiclient.Response, error) { return api.Legacy.StartTask(ctx, "r") },
				"POST", "/ai/agent-demo/interactive/start", map[string]string{"request": "r"}, ""},
			{"resumeTask", func() (*apiclient.Response, error) { return api.Legacy.ResumeTask(ctx, "abc123") },
				"POST", "/ai/agent-demo/interactive/resume/abc123", nil, ""},
			{"stopTask", func() (*apiclient.Response, error) { return api.Legacy.StopTask(ctx, "abc123") },
				"POST", "/ai/agent-demo/interactive/stop/abc123", nil, ""},
			{"getTaskStatus", func() (*apiclient.Response, error) { return api.Legacy.TaskStatus(ctx, "abc123") },
				"GET", "/ai/agent-demo/interactive/status/abc123", nil, ""},
			{"listTasks", func() (*apiclient.Response, error) { return api.Legacy.ListTasks(ctx) },
				"GET", "/ai/agent-demo/interactive/list", nil, ""},
			{"submitOrchestration", func() (*apiclient.Response, error) { return api.Legacy.SubmitOrchestration(ctx, "r") },
				"POST", "/ai/orchestration/submit", map[string]string{"request": "r"}, ""},
			{"getOrchestrationStatus", func() (*apiclient.Response, error) { return api.Legacy.OrchestrationStatus(ctx, "d1") },
				"GET", "/ai/orchestration/status/d1", nil, ""},
			{"getOrchestrationGraph", func() (*apiclient.Response, error) { return api.Legacy.OrchestrationGraph(ctx, "d1") },
				"GET", "/ai/orchestration/graph/d1", nil, ""},
			{"cancelOrchestration", func() (*apiclient.Response, error) { return api.Legacy.CancelOrchestration(ctx, "d1") },
				"POST", "/ai/orchestration/cancel/d1", nil, ""},
			{"listOrchestrations", func() (*apiclient.Response, error) { return api.Legacy.ListOrchestrations(ctx) },
				"GET", "/ai/orchestration/list", nil, ""},
			{"mcpChat", func() (*apiclient.Response, error) { return api.Legacy.MCPChat(ctx, "weather") },
				"GET", "/ai/chat/mcp/chat", map[string]string{"message": "weather"}, ""},
			{"listMcpServers", func() (*apiclient.Response, error) { return api.Legacy.ListMCPServers(ctx) },
				"GET", "/ai/chat/mcp/servers", nil, ""},
			{"listMcpTools", func() (*apiclient.Response, error) { return api.Legacy.ListMCPTools(ctx) },
				"GET", "/ai/chat/mcp/tools", nil, ""},
			{"listPrompts", func() (*apiclient.Response, error) { return api.Legacy.ListPrompts(ctx) },
				"GET", "/ai/chat/prompts/list", nil, ""},
			{"getPrompt", func() (*apiclient.Response, error) { return api.Legacy.GetPrompt(ctx, "sql") },
				"GET", "/ai/chat/prompts/sql", nil, ""},
		}

		for _, tc := range cases {
			tc := tc
			Convey("When calling "+tc.name, func() {
				before := b.count()
				resp, err := tc.invoke()

				Convey("Then exactly one matching request is issued", func() {
					So(err, ShouldBeNil)
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					So(resp.String(), ShouldEqual, `{"ok":true}`)
					So(b.count(), ShouldEqual, before+1)

					got := b.last()
					So(got.Method, ShouldEqual, tc.method)
					So(got.Path, ShouldEqual, tc.path)
					So(len(got.Query), ShouldEqual, len(tc.query))
					for k, v := range tc.query {
						So(got.Query.Get(k), ShouldEqual, v)
					}
					So(got.Body, ShouldEqual, tc.body)
				})
			})
		}
	})
}

func TestExactReproductionNotes(t *testing.T) {
	Convey("Given a fake backend", t, func() {
		b := newBackend()
		defer b.srv.Close()
		api := b.api()
		ctx := context.Background()

		Convey("When adding knowledge", func() {
			_, err := api.Legacy.AddKnowledge(ctx, "CREATE TABLE student (id INT);\n")

			Convey("Then the raw text is posted with a text/plain content type", func() {
				So(err, ShouldBeNil)
				got := b.last()
				So(got.Method, ShouldEqual, http.MethodPost)
				So(got.Path, ShouldEqual, "/ai/chat/knowledge/add")
				So(got.ContentType, ShouldEqual, "text/plain;charset=UTF-8")
				So(got.Body, ShouldEqual, "CREATE TABLE student (id INT);\n")
				So(got.RawQuery, ShouldEqual, "")
			})
		})

		Convey("When adding business knowledge", func() {
			_, err := api.Legacy.AddBusinessKnowledge(ctx, "GPA above 3.5 is honours")

			Convey("Then it is posted as raw text too", func() {
				So(err, ShouldBeNil)
				So(b.last().ContentType, ShouldEqual, apiclient.ContentTypeText)
				So(b.last().Body, ShouldEqual, "GPA above 3.5 is honours")
			})
		})

		Convey("When adding and deleting knowledge in batch", func() {
			_, err := api.Legacy.AddKnowledgeBatch(ctx, []string{"a", "b"})
			So(err, ShouldBeNil)
			added := b.last()
			_, err = api.Legacy.DeleteKnowledgeBatch(ctx, nil)
			So(err, ShouldBeNil)
			deleted := b.last()

			Convey("Then JSON arrays are sent", func() {
				So(added.Path, ShouldEqual, "/ai/chat/knowledge/batch")
				So(added.ContentType, ShouldEqual, "application/json")
				So(added.Body, ShouldEqual, `["a","b"]`)
				So(deleted.Method, ShouldEqual, http.MethodDelete)
				So(deleted.Body, ShouldEqual, `[]`)
			})
		})

		Convey("When updating a prompt", func() {
			_, err := api.Legacy.UpdatePrompt(ctx, "sql", apiclient.PromptUpdate{Content: "You are a SQL expert", Version: "2.1"})

			Convey("Then content and version travel in the query of a bodyless PUT", func() {
				So(err, ShouldBeNil)
				got := b.last()
				So(got.Method, ShouldEqual, http.MethodPut)
				So(got.Path, ShouldEqual, "/ai/chat/prompts/sql")
				So(got.Body, ShouldEqual, "")
				So(got.ContentType, ShouldEqual, "")
				So(got.Query.Get("content"), ShouldEqual, "You are a SQL expert")
				So(got.Query.Get("version"), ShouldEqual, "2.1")
			})
		})

		Convey("When updating a prompt without a version", func() {
			_, err := api.Legacy.UpdatePrompt(ctx, "sql", apiclient.PromptUpdate{Content: "c"})

			Convey("Then version is left to the backend default", func() {
				So(err, ShouldBeNil)
				So(b.last().Query.Has("version"), ShouldBeFalse)
			})
		})

		Convey("When pausing a task", func() {
			_, err := api.Legacy.PauseTask(ctx, "abc123")

			Convey("Then a bare POST with the id in the path is issued", func() {
				So(err, ShouldBeNil)
				got := b.last()
				So(got.Method, ShouldEqual, http.MethodPost)
				So(got.Path, ShouldEqual, "/ai/agent-demo/interactive/pause/abc123")
				So(got.Body, ShouldEqual, "")
				So(got.RawQuery, ShouldEqual, "")
			})
		})

		Convey("When starting a task", func() {
			_, err := api.Legacy.StartTask(ctx, "analyse grades")

			Convey("Then the payload is entirely in the query", func() {
				So(err, ShouldBeNil)
				So(b.last().Body, ShouldEqual, "")
				So(b.last().Query.Get("request"), ShouldEqual, "analyse grades")
			})
		})

		Convey("When calling unified chat with no options", func() {
			_, err := api.Unified.Chat(ctx, "hello", nil)

			Convey("Then userId defaults to default", func() {
				So(err, ShouldBeNil)
				So(b.last().Query.Get("userId"), ShouldEqual, "default")
				So(b.last().Query.Get("message"), ShouldEqual, "hello")
			})
		})

		Convey("When executing an MCP tool", func() {
			_, err := api.Legacy.ExecuteMCPTool(ctx, apiclient.MCPToolRequest{
				ServerName: "database",
				ToolName:   "query",
				Parameters: map[string]any{"sql": "SELECT 1"},
			})

			Convey("Then the request is posted as JSON", func() {
				So(err, ShouldBeNil)
				got := b.last()
				So(got.Path, ShouldEqual, "/ai/chat/mcp/execute")
				So(got.ContentType, ShouldEqual, "application/json")
				So(got.Body, ShouldEqual, `{"serverName":"database","toolName":"query","parameters":{"sql":"SELECT 1"}}`)
			})
		})

		Convey("When path segments contain reserved characters", func() {
			_, err := api.Legacy.GenerateSQL(ctx, "a b/c?", "x")

			Convey("Then they are percent-encoded as one opaque segment", func() {
				So(err, ShouldBeNil)
				So(b.last().Path, ShouldEqual, "/ai/chat/a%20b%2Fc%3F/sql/generate")
			})
		})

		Convey("When any request is sent", func() {
			_, err := api.Legacy.ListTasks(ctx)

			Convey("Then it carries a request id and accepts JSON", func() {
				So(err, ShouldBeNil)
				So(b.last().Header.Get(apiclient.RequestIDHeader), ShouldNotBeEmpty)
				So(b.last().Header.Get("Accept"), ShouldContainSubstring, "application/json")
			})
		})
	})
}

func TestChatStreamURL(t *testing.T) {
	Convey("Given the unified client", t, func() {
		b := newBackend()
		defer b.srv.Close()
		api := b.api()

		Convey("When building the stream URL", func() {
			u := api.Unified.ChatStreamURL("analyse grades & report", &apiclient.ChatOptions{UserID: "u42"})

			Convey("Then the URL is relative and percent-encoded", func() {
				So(u, ShouldEqual, "/api/v1/chat/stream?request=analyse%20grades%20%26%20report&userId=u42")
			})

			Convey("And no request is issued", func() {
				So(b.count(), ShouldEqual, 0)
			})
		})

		Convey("When no user is given", func() {
			So(api.Unified.ChatStreamURL("hi", nil), ShouldEqual, "/api/v1/chat/stream?request=hi&userId=default")
		})

		Convey("When the request holds characters a browser leaves bare", func() {
			u := api.Unified.ChatStreamURL("what's (new)!", nil)

			Convey("Then they are kept literal like encodeURIComponent", func() {
				So(u, ShouldEqual, "/api/v1/chat/stream?request=what's%20(new)!&userId=default")
			})
		})

		Convey("When the request holds a literal plus and an asterisk", func() {
			So(api.Unified.ChatStreamURL("1+1*2", nil), ShouldEqual, "/api/v1/chat/stream?request=1%2B1*2&userId=default")
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given a fake backend", t, func() {
		b := newBackend()
		defer b.srv.Close()
		rec := &fakeRecorder{}
		api := b.api(apiclient.WithRecorder(rec))
		ctx := context.Background()

		Convey("When the backend answers 500", func() {
			b.respond(http.StatusInternalServerError, `{"error":"boom"}`, 0)
			resp, err := api.Legacy.KnowledgeStats(ctx)

			Convey("Then a StatusError carrying the body is returned", func() {
				So(resp, ShouldBeNil)
				So(errors.Is(err, apiclient.ErrHTTPStatus), ShouldBeTrue)
				var se *apiclient.StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.StatusCode, ShouldEqual, 500)
				So(string(se.Body), ShouldEqual, `{"error":"boom"}`)
				So(se.URL, ShouldEqual, "/ai/chat/knowledge/stats")
				So(apiclient.StatusCode(err), ShouldEqual, 500)
			})

			Convey("And the recorder sees one status failure", func() {
				So(rec.observed, ShouldResemble, []string{"getKnowledgeStats"})
				So(rec.failures, ShouldResemble, []string{"getKnowledgeStats:status"})
			})

			Convey("And no retry happens", func() {
				So(b.count(), ShouldEqual, 1)
			})
		})

		Convey("When the backend is unreachable", func() {
			b.srv.Close()
			_, err := api.Unified.Health(ctx)

			Convey("Then a transport error is returned", func() {
				So(errors.Is(err, apiclient.ErrTransport), ShouldBeTrue)
				So(apiclient.StatusCode(err), ShouldEqual, 0)
			})
		})

		Convey("When the backend is slower than the client timeout", func() {
			b.respond(http.StatusOK, "{}", 500*time.Millisecond)
			slow, err := apiclient.New("/ai", 20*time.Millisecond, apiclient.WithOrigin(b.srv.URL))
			So(err, ShouldBeNil)
			_, err = apiclient.NewLegacy(slow).ListTasks(ctx)

			Convey("Then the call fails with a timeout", func() {
				So(errors.Is(err, apiclient.ErrTimeout), ShouldBeTrue)
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})
		})

		Convey("When the backend stalls after sending headers", func() {
			stall := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, `{"partial":`)
				w.(http.Flusher).Flush()
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			}))
			defer stall.Close()
			slow, err := apiclient.New("/ai", 50*time.Millisecond,
				apiclient.WithOrigin(stall.URL), apiclient.WithRecorder(rec))
			So(err, ShouldBeNil)
			_, err = apiclient.NewLegacy(slow).ListTasks(ctx)

			Convey("Then reading the body fails with a timeout", func() {
				So(errors.Is(err, apiclient.ErrTimeout), ShouldBeTrue)
				So(errors.Is(err, apiclient.ErrTransport), ShouldBeFalse)
				So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			})

			Convey("And the recorder sees a timeout", func() {
				So(rec.failures, ShouldResemble, []string{"listTasks:timeout"})
			})
		})

		Convey("When the caller cancels first", func() {
			b.respond(http.StatusOK, "{}", 500*time.Millisecond)
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := api.Legacy.ListTasks(cctx)

			Convey("Then the call fails as a transport error", func() {
				So(errors.Is(err, apiclient.ErrTransport), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestTokenSource(t *testing.T) {
	Convey("Given a client with a static token", t, func() {
		b := newBackend()
		defer b.srv.Close()
		api := b.api(apiclient.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"})))

		Convey("When a request is sent", func() {
			_, err := api.Unified.Health(context.Background())

			Convey("Then it carries a bearer token", func() {
				So(err, ShouldBeNil)
				So(b.last().Header.Get("Authorization"), ShouldEqual, "Bearer tok")
			})
		})
	})
}

func TestEndpointExpand(t *testing.T) {
	Convey("Given endpoint descriptors", t, func() {
		Convey("When expanding with the right arity", func() {
			p, err := apiclient.EndpointPauseTask.Expand("abc123")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "/agent-demo/interactive/pause/abc123")
		})

		Convey("When arity mismatches", func() {
			_, err := apiclient.EndpointPauseTask.Expand()
			So(errors.Is(err, apiclient.ErrPathParams), ShouldBeTrue)
			_, err = apiclient.EndpointListTasks.Expand("extra")
			So(errors.Is(err, apiclient.ErrPathParams), ShouldBeTrue)
		})

		Convey("Then every descriptor is unique by method and path", func() {
			seen := map[string]string{}
			groups := map[string][]apiclient.Endpoint{
				apiclient.LegacyBasePath:  apiclient.LegacyEndpoints(),
				apiclient.UnifiedBasePath: apiclient.UnifiedEndpoints(),
				apiclient.SmartBasePath:   apiclient.SmartEndpoints(),
			}
			for base, eps := range groups {
				for _, ep := range eps {
					key := ep.Method + " " + base + ep.Path
					_, dup := seen[key]
					So(dup, ShouldBeFalse)
					seen[key] = ep.Name
				}
			}
			So(len(seen), ShouldEqual,
				len(apiclient.LegacyEndpoints())+len(apiclient.UnifiedEndpoints())+len(apiclient.SmartEndpoints()))
		})
	})
}
