package component

import (
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Registry is the named component collection. The zero value is not
// usable; create one with New.
type Registry struct {
	reg *registry.Registry[any]
}

// New creates an empty component collection. Pass registry options to
// control retention (registry.WithMode(registry.History) for an audit
// log of component swaps).
func New(opts ...registry.Option) *Registry {
	return &Registry{reg: registry.New[any](opts...)}
}

// Register publishes a component under name, replacing any unprotected
// prior registration (last-write-wins).
func (r *Registry) Register(name string, c any, opts ...registry.EntryOption) error {
	return r.reg.Register(name, c, opts...)
}

// Unregister removes the component at name. Absent names are a no-op.
func (r *Registry) Unregister(name string) error {
	return r.reg.Unregister(name)
}

// Get returns the component registered under name.
func (r *Registry) Get(name string) (any, bool) {
	return r.reg.Get(name)
}

// GetOr returns the component under name, or fallback when absent.
// The idiom for override points: core code asks for its own default
// name and plugins replace it.
func (r *Registry) GetOr(name string, fallback any) any {
	if c, ok := r.reg.Get(name); ok {
		return c
	}
	return fallback
}

// Protect marks a component immune to replacement and removal.
func (r *Registry) Protect(name string) error { return r.reg.Protect(name) }

// Unprotect clears a component's protection.
func (r *Registry) Unprotect(name string) error { return r.reg.Unprotect(name) }

// Ban blocks any future registration under name.
func (r *Registry) Ban(name string) error { return r.reg.Ban(name) }

// List returns all components in registry order.
func (r *Registry) List() []registry.Entry[any] { return r.reg.List() }

// Subscribe registers a change callback; see registry.Subscribe.
func (r *Registry) Subscribe(fn registry.Subscriber[any]) func() {
	return r.reg.Subscribe(fn)
}
