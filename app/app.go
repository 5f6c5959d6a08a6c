package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/cache"
	"github.com/ReactiumCore/ReactiumFramework-sub005/component"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/plugin"
	"github.com/ReactiumCore/ReactiumFramework-sub005/pulse"
	"github.com/ReactiumCore/ReactiumFramework-sub005/route"
	"github.com/ReactiumCore/ReactiumFramework-sub005/server"
	"github.com/ReactiumCore/ReactiumFramework-sub005/zone"
)

type queuedPlugin struct {
	plugin plugin.Plugin
	order  int
}

// Option configures an App before Boot.
type Option func(*App)

// WithConfig supplies the boot configuration directly.
func WithConfig(cfg reactium.Config) Option {
	return func(a *App) {
		a.cfg = cfg
		a.cfgSet = true
	}
}

// WithConfigFile loads the boot configuration from a YAML file during
// Boot, overlaid on the defaults.
func WithConfigFile(path string) Option {
	return func(a *App) { a.cfgPath = path }
}

// WithLogger sets the structured logger. Without it Boot builds one from
// the configured log level.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithPlugin queues a plugin for activation at the given bootstrap order
// (lower boots first; hook.Neutral for no preference).
func WithPlugin(p plugin.Plugin, order int) Option {
	return func(a *App) {
		a.queued = append(a.queued, queuedPlugin{plugin: p, order: order})
	}
}

// WithObserver attaches an engine observer (audit recorder, metrics).
func WithObserver(o hook.Observer) Option {
	return func(a *App) { a.observers = append(a.observers, o) }
}

// App is the wired framework runtime.
type App struct {
	cfg     reactium.Config
	cfgSet  bool
	cfgPath string
	logger  *slog.Logger

	engine     *hook.Engine
	components *component.Registry
	zones      *zone.Zones
	routes     *route.Table
	host       *plugin.Host
	runner     *pulse.Runner
	cache      *cache.Cache
	server     *server.Server

	queued    []queuedPlugin
	observers []hook.Observer
	booted    bool
}

// New creates an App. Nothing runs until Boot.
func New(opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	engineOpts := make([]hook.Option, 0, len(a.observers)+1)
	if a.logger != nil {
		engineOpts = append(engineOpts, hook.WithLogger(a.logger))
	}
	for _, o := range a.observers {
		engineOpts = append(engineOpts, hook.WithObserver(o))
	}
	a.engine = hook.New(engineOpts...)

	return a
}

// Boot runs the full startup sequence: before-config, config resolution,
// after-config, init, plugin activation, and server build. Boot is
// fail-fast and runs at most once.
func (a *App) Boot(ctx context.Context) error {
	if a.booted {
		return reactium.ErrHostBooted
	}
	a.booted = true

	if _, err := a.engine.Run(ctx, reactium.HookBeforeConfig); err != nil {
		return err
	}

	if err := a.resolveConfig(); err != nil {
		return err
	}
	if a.logger == nil {
		a.logger = newLogger(a.cfg.LogLevel)
	}

	// Subscribers may adjust the config in place.
	if _, err := a.engine.Run(ctx, reactium.HookAfterConfig, &a.cfg); err != nil {
		return err
	}

	a.components = component.New()
	a.zones = zone.New()
	a.routes = route.NewTable()
	a.cache = cache.New(
		cache.WithEngine(a.engine),
		cache.WithLogger(a.logger),
		cache.WithJanitor(a.cfg.CacheJanitor),
	)
	a.runner = pulse.NewRunner(
		pulse.WithEngine(a.engine),
		pulse.WithLogger(a.logger),
		pulse.WithTick(a.cfg.PulseTick),
	)
	a.host = plugin.NewHost(a.engine, plugin.WithLogger(a.logger))
	a.server = server.New(a.engine, a.routes,
		server.WithLogger(a.logger),
		server.WithAddr(a.cfg.ServerAddr),
	)

	if _, err := a.engine.Run(ctx, reactium.HookInit); err != nil {
		return err
	}

	for _, q := range a.queued {
		if err := a.host.Add(q.plugin, q.order); err != nil {
			return err
		}
	}
	if err := a.host.Boot(ctx); err != nil {
		return err
	}

	if err := a.cache.Start(ctx); err != nil {
		return err
	}
	if err := a.runner.Start(ctx); err != nil {
		return err
	}

	if err := a.server.Build(ctx); err != nil {
		return err
	}

	a.logger.Info("app booted",
		slog.String("addr", a.cfg.ServerAddr),
		slog.Int("plugins", len(a.host.Active())),
	)
	return nil
}

// Stop tears the runtime down: plugins deactivate in reverse activation
// order, then the pulse runner and cache janitor stop. The configured
// shutdown timeout bounds the whole sequence.
func (a *App) Stop(ctx context.Context) error {
	if a.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
		defer cancel()
	}

	var firstErr error
	if a.host != nil {
		if err := a.host.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if a.runner != nil {
		if err := a.runner.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.cache != nil {
		if err := a.cache.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.logger != nil {
		a.logger.Info("app stopped")
	}
	return firstErr
}

// Handler returns the built HTTP surface. It fails with
// ErrServerNotBuilt before a successful Boot.
func (a *App) Handler() (http.Handler, error) {
	if a.server == nil {
		return nil, reactium.ErrServerNotBuilt
	}
	return a.server.Handler()
}

// Engine returns the hook engine.
func (a *App) Engine() *hook.Engine { return a.engine }

// Components returns the component registry.
func (a *App) Components() *component.Registry { return a.components }

// Zones returns the zone manager.
func (a *App) Zones() *zone.Zones { return a.zones }

// Routes returns the route table.
func (a *App) Routes() *route.Table { return a.routes }

// Plugins returns the plugin host.
func (a *App) Plugins() *plugin.Host { return a.host }

// Pulse returns the recurring task runner.
func (a *App) Pulse() *pulse.Runner { return a.runner }

// Cache returns the TTL cache.
func (a *App) Cache() *cache.Cache { return a.cache }

// Server returns the HTTP surface.
func (a *App) Server() *server.Server { return a.server }

// Config returns the resolved configuration. Before Boot it returns the
// zero value unless WithConfig was used.
func (a *App) Config() reactium.Config { return a.cfg }

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger { return a.logger }

func (a *App) resolveConfig() error {
	switch {
	case a.cfgPath != "":
		cfg, err := reactium.LoadConfig(a.cfgPath)
		if err != nil {
			return fmt.Errorf("app: %w", err)
		}
		a.cfg = cfg
	case !a.cfgSet:
		a.cfg = reactium.DefaultConfig()
	}
	return nil
}

// newLogger builds a text slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
