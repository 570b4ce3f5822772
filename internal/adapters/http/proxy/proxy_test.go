package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type seenRequest struct {
	Host      string
	Path      string
	RawQuery  string
	Method    string
	Body      string
	Forwarded string
}

type upstreamRecorder struct {
	prefixes []string
}

func (u *upstreamRecorder) RecordProxyUpstreamError(prefix string) {
	u.prefixes = append(u.prefixes, prefix)
}

func newUpstream(seen chan<- seenRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- seenRequest{
			Host:      r.Host,
			Path:      r.URL.EscapedPath(),
			RawQuery:  r.URL.RawQuery,
			Method:    r.Method,
			Body:      string(body),
			Forwarded: r.Header.Get("X-Forwarded-Host"),
		}
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "from backend")
	}))
}

func TestProxy(t *testing.T) {
	Convey("Given a backend and a proxy in front of it", t, func() {
		seen := make(chan seenRequest, 1)
		upstream := newUpstream(seen)
		defer upstream.Close()
		target, _ := url.Parse(upstream.URL)

		mux := http.NewServeMux()
		p, err := New(upstream.URL, []string{"/ai", "/api/v1/"})
		So(err, ShouldBeNil)
		p.Register(context.Background(), mux)

		Convey("When a request under /ai is sent", func() {
			req := httptest.NewRequest(http.MethodGet, "http://console.local/ai/chat/m%201/sql/generate?userMessage=hi+there", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it reaches the backend unchanged with the origin rewritten", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(w.Body.String(), ShouldEqual, "from backend")
				So(w.Header().Get("X-Upstream"), ShouldEqual, "yes")

				got := <-seen
				So(got.Host, ShouldEqual, target.Host)
				So(got.Path, ShouldEqual, "/ai/chat/m%201/sql/generate")
				So(got.RawQuery, ShouldEqual, "userMessage=hi+there")
				So(got.Forwarded, ShouldEqual, "console.local")
			})
		})

		Convey("When a body is posted under /api/v1", func() {
			req := httptest.NewRequest(http.MethodPost, "http://console.local/api/v1/chat", strings.NewReader("payload"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then method and body are forwarded", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				got := <-seen
				So(got.Method, ShouldEqual, http.MethodPost)
				So(got.Body, ShouldEqual, "payload")
			})
		})

		Convey("When the bare prefix is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "http://console.local/ai", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is forwarded too", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So((<-seen).Path, ShouldEqual, "/ai")
			})
		})
	})

	Convey("Given a proxy that keeps the inbound Host", t, func() {
		seen := make(chan seenRequest, 1)
		upstream := newUpstream(seen)
		defer upstream.Close()

		p, err := New(upstream.URL, []string{"/ai"}, WithChangeOrigin(false))
		So(err, ShouldBeNil)

		Convey("When a request is forwarded", func() {
			req := httptest.NewRequest(http.MethodGet, "http://console.local/ai/chat/test", http.NoBody)
			w := httptest.NewRecorder()
			p.ServeHTTP(w, req)

			Convey("Then the backend sees the console host", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So((<-seen).Host, ShouldEqual, "console.local")
			})
		})
	})
}

func TestProxyMatch(t *testing.T) {
	Convey("Given a proxy with two prefixes", t, func() {
		p, err := New("http://localhost:8080", []string{" /ai ", "/api/v1"})
		So(err, ShouldBeNil)

		Convey("Then prefixes own themselves and their subtree only", func() {
			pre, ok := p.Match("/ai/chat")
			So(ok, ShouldBeTrue)
			So(pre, ShouldEqual, "/ai")
			_, ok = p.Match("/ai")
			So(ok, ShouldBeTrue)
			_, ok = p.Match("/aix")
			So(ok, ShouldBeFalse)
			pre, ok = p.Match("/api/v1/health")
			So(ok, ShouldBeTrue)
			So(pre, ShouldEqual, "/api/v1")
			_, ok = p.Match("/api")
			So(ok, ShouldBeFalse)
		})

		Convey("Then ServeHTTP refuses foreign paths", func() {
			w := httptest.NewRecorder()
			p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", http.NoBody))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestProxyUpstreamFailure(t *testing.T) {
	Convey("Given a proxy whose backend is down", t, func() {
		dead := httptest.NewServer(http.NotFoundHandler())
		addr := dead.URL
		dead.Close()

		rec := &upstreamRecorder{}
		p, err := New(addr, []string{"/ai"}, WithRecorder(rec))
		So(err, ShouldBeNil)

		Convey("When a request is forwarded", func() {
			w := httptest.NewRecorder()
			p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/chat/test", http.NoBody))

			Convey("Then a 502 JSON error is returned and recorded", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				var body errorResponse
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "bad_gateway")
				So(body.Message, ShouldContainSubstring, ErrUpstream.Error())
				So(rec.prefixes, ShouldResemble, []string{"/ai"})
			})
		})
	})
}

func TestProxyConstruction(t *testing.T) {
	Convey("Given invalid proxy settings", t, func() {
		Convey("When the target is relative", func() {
			_, err := New("localhost:8080", []string{"/ai"})
			So(errors.Is(err, ErrInvalidTarget), ShouldBeTrue)
		})

		Convey("When no usable prefix is given", func() {
			_, err := New("http://localhost:8080", []string{"", "/"})
			So(errors.Is(err, ErrNoPrefixes), ShouldBeTrue)
		})

		Convey("When a prefix is repeated with a trailing slash", func() {
			p, err := New("http://localhost:8080", []string{"/ai", "/ai/", " /ai ", "/api/v1"})
			So(err, ShouldBeNil)

			Convey("Then it is kept once", func() {
				So(p.Prefixes(), ShouldResemble, []string{"/ai", "/api/v1"})
			})

			Convey("And registering it does not panic", func() {
				So(func() { p.Register(context.Background(), http.NewServeMux()) }, ShouldNotPanic)
			})
		})

		Convey("When a prefix captures a console route", func() {
			p, err := New("http://localhost:8080", []string{"/ai", "/backend"})
			So(err, ShouldBeNil)
			err = p.Reserved([]string{"/", "/healthz", "/backend/health"})

			Convey("Then the conflict is reported", func() {
				So(errors.Is(err, ErrPrefixConflict), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "/backend captures /backend/health")
			})
		})

		Convey("When no prefix touches a console route", func() {
			p, err := New("http://localhost:8080", []string{"/ai", "/api/v1"})
			So(err, ShouldBeNil)
			So(p.Reserved([]string{"/", "/healthz", "/api-docs", "/aix"}), ShouldBeNil)
		})

		Convey("When registering on a nil mux", func() {
			p, err := New("http://localhost:8080", []string{"/ai"})
			So(err, ShouldBeNil)
			So(func() { p.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestProxyMiddleware(t *testing.T) {
	Convey("Given a proxy with a middleware", t, func() {
		seen := make(chan seenRequest, 1)
		upstream := newUpstream(seen)
		defer upstream.Close()

		wrapped := 0
		mw := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrapped++
				w.Header().Set("X-Wrapped", "yes")
				next.ServeHTTP(w, r)
			})
		}
		p, err := New(upstream.URL, []string{"/ai"}, WithMiddleware(mw))
		So(err, ShouldBeNil)
		mux := http.NewServeMux()
		p.Register(context.Background(), mux)

		Convey("When a request under the prefix is sent", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/chat/test", http.NoBody))
			<-seen

			Convey("Then it passes through the middleware once", func() {
				So(wrapped, ShouldEqual, 1)
				So(w.Header().Get("X-Wrapped"), ShouldEqual, "yes")
				So(w.Code, ShouldEqual, http.StatusCreated)
			})
		})
	})
}
