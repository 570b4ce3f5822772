package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/robot/internal/app"
	"github.com/okian/robot/internal/adapters/http/proxy"
	"github.com/okian/robot/internal/adapters/http/site"
	"github.com/okian/robot/pkg/apiclient"
	"github.com/okian/robot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
}

func newBackend() (*httptest.Server, chan *http.Request) {
	seen := make(chan *http.Request, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		if r.Header.Get("Authorization") == "Bearer secret" {
			w.Header().Set("X-Authed", "1")
		}
		_, _ = io.WriteString(w, `{"status":"UP"}`)
	}))
	return srv, seen
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
			So(stats["backendURL"], ShouldEqual, "http://localhost:8080")
			So(stats["timeoutMs"], ShouldEqual, int64(60000))
			So(stats["routes"], ShouldEqual, len(site.DefaultRoutes()))
			So(svc.API(), ShouldBeNil)
		})

		Convey("And backend calls fail before start", func() {
			_, err := svc.BackendHealth(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("And routes cannot be registered before start", func() {
			So(errors.Is(svc.Register(context.Background(), http.NewServeMux()), service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service pointed at a backend", t, func() {
		backend, seen := newBackend()
		defer backend.Close()

		svc := service.New(
			service.WithBackendURL(backend.URL),
			service.WithTimeout(2*time.Second),
			service.WithAPIToken("secret"),
			service.WithVersion("1.2.3"),
		)
		defer svc.Stop()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When starting again", func() {
			Convey("Then it is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldBeTrue)
				So(svc.GetStats()["version"], ShouldEqual, "1.2.3")
			})
		})

		Convey("When checking backend health", func() {
			resp, err := svc.BackendHealth(ctx)

			Convey("Then the unified health endpoint is called with the token", func() {
				So(err, ShouldBeNil)
				So(resp.String(), ShouldEqual, `{"status":"UP"}`)
				So(resp.Header.Get("X-Authed"), ShouldEqual, "1")
				r := <-seen
				So(r.URL.Path, ShouldEqual, "/api/v1/health")
			})
		})

		Convey("When the console routes are registered", func() {
			mux := http.NewServeMux()
			So(svc.Register(ctx, mux), ShouldBeNil)
			console := httptest.NewServer(mux)
			defer console.Close()

			get := func(path string) *http.Response {
				resp, err := http.Get(console.URL + path)
				So(err, ShouldBeNil)
				return resp
			}

			Convey("Then the site serves declared routes", func() {
				resp := get("/knowledge")
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")
			})

			Convey("And the proxy forwards /ai", func() {
				resp := get("/ai/chat/test")
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("X-Request-Id"), ShouldNotBeEmpty)
				r := <-seen
				So(r.URL.Path, ShouldEqual, "/ai/chat/test")
			})

			Convey("And the proxy forwards /api/smart", func() {
				resp := get("/api/smart/health")
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				r := <-seen
				So(r.URL.Path, ShouldEqual, "/api/smart/health")
			})

			Convey("And the docs and status are served", func() {
				for _, p := range []string{"/api-docs", "/openapi.yaml", "/status", "/healthz", "/endpoints"} {
					resp := get(p)
					_ = resp.Body.Close()
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
				}
			})

			Convey("And unknown paths are not found", func() {
				resp := get("/definitely/not/here")
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When stopping", func() {
			svc.Stop()

			Convey("Then it is reported stopped", func() {
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

func TestService_PrefixConflicts(t *testing.T) {
	Convey("Given proxy prefix lists", t, func() {
		ctx := context.Background()

		Convey("When a prefix is listed twice", func() {
			svc := service.New(service.WithProxyPrefixes([]string{"/ai", "/ai/", "/api/v1"}))
			defer svc.Stop()
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then registering the routes does not panic", func() {
				mux := http.NewServeMux()
				So(func() { So(svc.Register(ctx, mux), ShouldBeNil) }, ShouldNotPanic)
				So(svc.GetStats()["proxyPrefixes"], ShouldResemble, []string{"/ai", "/api/v1"})
			})
		})

		Convey("When a prefix names a console route", func() {
			svc := service.New(service.WithProxyPrefixes([]string{"/ai", "/healthz"}))
			err := svc.Start(ctx)

			Convey("Then start fails with a wrapped conflict", func() {
				So(errors.Is(err, proxy.ErrPrefixConflict), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "/healthz")
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})

		Convey("When a prefix captures a site page", func() {
			svc := service.New(service.WithProxyPrefixes([]string{"/chat"}))
			So(errors.Is(svc.Start(ctx), proxy.ErrPrefixConflict), ShouldBeTrue)
		})
	})
}

func TestService_BasePaths(t *testing.T) {
	Convey("Given a service with custom client roots", t, func() {
		svc := service.New(service.WithBasePaths(apiclient.BasePaths{Legacy: "/robot/ai"}))

		Convey("Then unset roots keep the stock paths", func() {
			So(svc.BasePaths(), ShouldResemble, apiclient.BasePaths{
				Legacy: "/robot/ai", Unified: "/api/v1", Smart: "/api/smart",
			})
		})

		Convey("When started", func() {
			defer svc.Stop()
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the live clients report the same roots", func() {
				So(svc.API().Legacy.Client().BasePath(), ShouldEqual, "/robot/ai")
				So(svc.BasePaths().Legacy, ShouldEqual, "/robot/ai")
			})
		})
	})
}
