package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
	"github.com/ReactiumCore/ReactiumFramework-sub005/route"
	"github.com/ReactiumCore/ReactiumFramework-sub005/server"
)

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	})
}

func TestBuild_MountsRoutesFromHooks(t *testing.T) {
	e := hook.New()
	tbl := route.NewTable()
	s := server.New(e, tbl)
	ctx := context.Background()

	// A plugin enriches the route table during routes-init.
	e.Register(reactium.HookRoutesInit, func(_ context.Context, hc *hook.Context) error {
		table := hc.Param(0).(*route.Table)
		_, err := table.Register(route.Route{
			Method:  http.MethodGet,
			Path:    "/hello",
			Handler: textHandler("hello"),
		})
		return err
	})

	if err := s.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}

	h, err := s.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("GET /hello = %d %q", rec.Code, rec.Body.String())
	}
}

func TestBuild_MiddlewareRegistryOrder(t *testing.T) {
	e := hook.New()
	tbl := route.NewTable()
	tbl.Register(route.Route{Method: http.MethodGet, Path: "/", Handler: textHandler("ok")})
	s := server.New(e, tbl)
	ctx := context.Background()

	header := func(key, value string) server.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("X-Chain", key+"="+value)
				next.ServeHTTP(w, r)
			})
		}
	}

	e.Register(reactium.HookServerMiddleware, func(_ context.Context, hc *hook.Context) error {
		mws := hc.Param(0).(*registry.Registry[server.Middleware])
		mws.Register("outer", header("outer", "1"), registry.WithOrder(hook.High))
		mws.Register("inner", header("inner", "2"), registry.WithOrder(hook.Low))
		return nil
	})

	if err := s.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	h, _ := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	chain := rec.Header().Values("X-Chain")
	if len(chain) != 2 || chain[0] != "outer=1" || chain[1] != "inner=2" {
		t.Fatalf("middleware chain = %v", chain)
	}
}

func TestBuild_ServerInitSeesRouter(t *testing.T) {
	e := hook.New()
	s := server.New(e, route.NewTable())
	ctx := context.Background()

	e.Register(reactium.HookServerInit, func(_ context.Context, hc *hook.Context) error {
		router := hc.Param(0).(chi.Router)
		router.Get("/direct", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("direct"))
		})
		return nil
	})

	if err := s.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	h, _ := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/direct", nil))
	if rec.Body.String() != "direct" {
		t.Fatalf("Server.Init route body = %q", rec.Body.String())
	}
}

func TestBuild_RegisterRouteFiresPerRoute(t *testing.T) {
	e := hook.New()
	tbl := route.NewTable()
	tbl.Register(route.Route{Method: http.MethodGet, Path: "/a", Handler: textHandler("a")})
	tbl.Register(route.Route{Method: http.MethodGet, Path: "/b", Handler: textHandler("b")})
	s := server.New(e, tbl)

	var seen []string
	e.Register(reactium.HookRegisterRoute, func(_ context.Context, hc *hook.Context) error {
		seen = append(seen, hc.Param(0).(route.Route).Path)
		return nil
	})

	if err := s.Build(context.Background()); err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(seen) != 2 || seen[0] != "/a" || seen[1] != "/b" {
		t.Fatalf("register-route fired for %v", seen)
	}
}

func TestHandler_BeforeBuild(t *testing.T) {
	s := server.New(hook.New(), route.NewTable())
	if _, err := s.Handler(); !errors.Is(err, reactium.ErrServerNotBuilt) {
		t.Fatalf("expected ErrServerNotBuilt, got %v", err)
	}
}

func TestBuild_HookFailureAborts(t *testing.T) {
	e := hook.New()
	s := server.New(e, route.NewTable())

	boom := errors.New("boom")
	e.Register(reactium.HookServerInit, func(_ context.Context, _ *hook.Context) error {
		return boom
	})

	if err := s.Build(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped hook failure, got %v", err)
	}
	if _, err := s.Handler(); !errors.Is(err, reactium.ErrServerNotBuilt) {
		t.Fatalf("failed build left a handler: %v", err)
	}
}
