package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Host activates and deactivates plugins against one hook engine.
// Plugins are held in an ordered registry: the registry order is the
// bootstrap order, and protecting a plugin id there makes the plugin
// undeactivatable until unprotected.
type Host struct {
	engine  *hook.Engine
	logger  *slog.Logger
	plugins *registry.Registry[Plugin]

	mu       sync.Mutex
	bindings map[string]*hook.Binding
	order    []string // activation order, for reverse shutdown
	booted   bool
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the structured logger for the host.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// NewHost creates a Host dispatching through the given engine.
func NewHost(engine *hook.Engine, opts ...Option) *Host {
	h := &Host{
		engine:   engine,
		logger:   slog.Default(),
		plugins:  registry.New[Plugin](registry.WithMode(registry.History)),
		bindings: make(map[string]*hook.Binding),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Add queues a plugin for boot at the given bootstrap order (lower
// boots first; hook.Neutral for no preference). Adding after Boot
// fails with ErrHostBooted.
func (h *Host) Add(p Plugin, order int) error {
	h.mu.Lock()
	booted := h.booted
	h.mu.Unlock()
	if booted {
		return reactium.ErrHostBooted
	}
	if err := h.plugins.Register(p.Name(), p, registry.WithOrder(order)); err != nil {
		return fmt.Errorf("plugin %s: add: %w", p.Name(), err)
	}
	return nil
}

// Registry exposes the plugin registry so callers can protect, ban, or
// inspect plugins through the standard registry contract.
func (h *Host) Registry() *registry.Registry[Plugin] { return h.plugins }

// Boot activates every queued plugin in bootstrap order, then runs the
// plugin-init and plugin-ready hooks. Boot is fail-fast: the first
// plugin error aborts the remainder and propagates.
func (h *Host) Boot(ctx context.Context) error {
	h.mu.Lock()
	if h.booted {
		h.mu.Unlock()
		return reactium.ErrHostBooted
	}
	h.booted = true
	h.mu.Unlock()

	for _, entry := range h.plugins.List() {
		if err := h.activate(ctx, entry.Value); err != nil {
			return err
		}
	}

	if _, err := h.engine.Run(ctx, reactium.HookPluginInit); err != nil {
		return err
	}

	for _, entry := range h.plugins.List() {
		if r, ok := entry.Value.(Readier); ok {
			if err := r.Ready(ctx); err != nil {
				return fmt.Errorf("plugin %s: ready: %w", entry.ID, err)
			}
		}
	}

	if _, err := h.engine.Run(ctx, reactium.HookPluginReady); err != nil {
		return err
	}

	return nil
}

func (h *Host) activate(ctx context.Context, p Plugin) error {
	name := p.Name()
	session := &Session{
		Hooks:  h.engine.Bind(name),
		Engine: h.engine,
		Logger: h.logger.With(slog.String("plugin", name)),
	}

	if err := p.Register(ctx, session); err != nil {
		session.Hooks.Dispose()
		return fmt.Errorf("plugin %s: register: %w", name, err)
	}

	h.mu.Lock()
	h.bindings[name] = session.Hooks
	h.order = append(h.order, name)
	h.mu.Unlock()

	h.logger.Debug("plugin activated", slog.String("plugin", name))
	return nil
}

// Deactivate runs the plugin-unregister hook, invokes the plugin's
// Deactivate (when implemented), disposes its hook binding, and removes
// it from the registry. Protected plugins fail with ErrEntryProtected.
func (h *Host) Deactivate(ctx context.Context, name string) error {
	p, ok := h.plugins.Get(name)
	if !ok {
		return reactium.ErrPluginNotFound
	}
	if err := h.plugins.Unregister(name); err != nil {
		return fmt.Errorf("plugin %s: deactivate: %w", name, err)
	}

	if _, err := h.engine.Run(ctx, reactium.HookPluginUnregister, name); err != nil {
		h.logger.Warn("plugin-unregister hook failed",
			slog.String("plugin", name),
			slog.String("error", err.Error()),
		)
	}

	if d, ok := p.(Deactivator); ok {
		if err := d.Deactivate(ctx); err != nil {
			h.logger.Warn("plugin deactivate error",
				slog.String("plugin", name),
				slog.String("error", err.Error()),
			)
		}
	}

	h.mu.Lock()
	binding := h.bindings[name]
	delete(h.bindings, name)
	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.mu.Unlock()

	if binding != nil {
		binding.Dispose()
	}

	h.logger.Debug("plugin deactivated", slog.String("plugin", name))
	return nil
}

// Shutdown deactivates every remaining plugin in reverse activation
// order. Protected plugins are unprotected first: shutdown outranks the
// protection guard.
func (h *Host) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	names := make([]string, len(h.order))
	copy(names, h.order)
	h.mu.Unlock()

	var firstErr error
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if entry, ok := h.plugins.Entry(name); ok && entry.Protected {
			if err := h.plugins.Unprotect(name); err != nil {
				h.logger.Warn("unprotect during shutdown",
					slog.String("plugin", name),
					slog.String("error", err.Error()),
				)
			}
		}
		if err := h.Deactivate(ctx, name); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Active returns the names of activated plugins in activation order.
func (h *Host) Active() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}
