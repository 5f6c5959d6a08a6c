package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
	"github.com/ReactiumCore/ReactiumFramework-sub005/route"
)

// Middleware is standard net/http middleware, mounted in registry order.
type Middleware func(http.Handler) http.Handler

// Server assembles a chi router from the hook engine and route table.
type Server struct {
	engine *hook.Engine
	table  *route.Table
	logger *slog.Logger
	addr   string

	mu      sync.RWMutex
	handler chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger for the server.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAddr sets the listen address reported by Addr.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// New creates a Server over the given engine and route table.
func New(engine *hook.Engine, table *route.Table, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		table:  table,
		logger: slog.Default(),
		addr:   ":3030",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Table returns the route table the server mounts.
func (s *Server) Table() *route.Table { return s.table }

// Build runs the server assembly hooks and mounts the route table.
// Hook failures abort the build fail-fast and propagate.
func (s *Server) Build(ctx context.Context) error {
	// Subscribers enrich the middleware registry in place.
	middlewares := registry.New[Middleware]()
	if _, err := s.engine.Run(ctx, reactium.HookServerMiddleware, middlewares); err != nil {
		return err
	}

	router := chi.NewRouter()
	for _, entry := range middlewares.List() {
		router.Use(entry.Value)
	}

	if _, err := s.engine.Run(ctx, reactium.HookServerInit, router); err != nil {
		return err
	}

	if _, err := s.engine.Run(ctx, reactium.HookRoutesInit, s.table); err != nil {
		return err
	}

	for _, rt := range s.table.List() {
		if _, err := s.engine.Run(ctx, reactium.HookRegisterRoute, rt); err != nil {
			return err
		}
		if rt.Method == "" {
			router.Handle(rt.Path, rt.Handler)
		} else {
			router.Method(rt.Method, rt.Path, rt.Handler)
		}
		s.logger.Debug("route mounted",
			slog.String("method", rt.Method),
			slog.String("path", rt.Path),
		)
	}

	s.mu.Lock()
	s.handler = router
	s.mu.Unlock()
	return nil
}

// Handler returns the built router. It fails with ErrServerNotBuilt
// before a successful Build.
func (s *Server) Handler() (http.Handler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.handler == nil {
		return nil, reactium.ErrServerNotBuilt
	}
	return s.handler, nil
}
