package plugin

import (
	"context"
	"log/slog"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name. It doubles as the
	// plugin's hook domain.
	Name() string

	// Register attaches the plugin's hooks through the session's
	// binding. It runs once, during host boot, in bootstrap order.
	Register(ctx context.Context, s *Session) error
}

// Readier is implemented by plugins that want a callback after every
// plugin has registered and plugin-init has run.
type Readier interface {
	Ready(ctx context.Context) error
}

// Deactivator is implemented by plugins that need teardown logic beyond
// the automatic disposal of their hook binding.
type Deactivator interface {
	Deactivate(ctx context.Context) error
}

// Func adapts a name and a register function into a Plugin, for plugins
// with no state or teardown.
func Func(name string, register func(ctx context.Context, s *Session) error) Plugin {
	return &funcPlugin{name: name, register: register}
}

type funcPlugin struct {
	name     string
	register func(ctx context.Context, s *Session) error
}

func (p *funcPlugin) Name() string { return p.name }

func (p *funcPlugin) Register(ctx context.Context, s *Session) error {
	return p.register(ctx, s)
}

// Session is what a plugin receives at registration time: its
// domain-scoped hook binding, the engine for dispatching, and a logger
// namespaced to the plugin.
type Session struct {
	// Hooks is the plugin's domain-scoped registrar. Registrations made
	// through it are torn down as a group on deactivation.
	Hooks *hook.Binding

	// Engine is the shared dispatch engine, for plugins that need to
	// run hooks or inspect dispatch points.
	Engine *hook.Engine

	// Logger is the host logger with the plugin name attached.
	Logger *slog.Logger
}
