package hook

import "sync"

// Binding is a domain-scoped registrar. Every registration made through
// it carries the binding's domain, and the binding remembers which hook
// names it touched so Dispose can tear the whole group down without the
// caller tracking individual ids.
//
// A disposed binding refuses further registrations (they become no-ops
// returning an empty id) so a stale handle cannot resurrect a torn-down
// group.
type Binding struct {
	engine *Engine
	domain string

	mu       sync.Mutex
	names    map[string]struct{}
	disposed bool
}

// Bind returns a registrar scoped to the given domain.
func (e *Engine) Bind(domain string) *Binding {
	return &Binding{
		engine: e,
		domain: domain,
		names:  make(map[string]struct{}),
	}
}

// Domain returns the binding's domain string.
func (b *Binding) Domain() string { return b.domain }

// Register attaches an Async callback under the binding's domain.
func (b *Binding) Register(name string, cb Callback, opts ...RegisterOption) string {
	if !b.track(name) {
		return ""
	}
	return b.engine.Register(name, cb, append(opts, WithDomain(b.domain))...)
}

// RegisterSync attaches a Sync callback under the binding's domain.
func (b *Binding) RegisterSync(name string, cb Callback, opts ...RegisterOption) string {
	if !b.track(name) {
		return ""
	}
	return b.engine.RegisterSync(name, cb, append(opts, WithDomain(b.domain))...)
}

// Dispose removes every callback registered through the binding and
// marks it unusable. Dispose is idempotent.
func (b *Binding) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	names := make([]string, 0, len(b.names))
	for name := range b.names {
		names = append(names, name)
	}
	b.names = nil
	b.mu.Unlock()

	for _, name := range names {
		b.engine.UnregisterDomain(name, b.domain)
	}
}

func (b *Binding) track(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return false
	}
	b.names[name] = struct{}{}
	return true
}
