package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// index is the per-kind triple index. Every id reachable from byDomain is
// also reachable from byName; all three maps are updated under the engine
// mutex in one critical section, so no partial state is observable.
type index struct {
	// byID resolves a callback id to its declaration.
	byID map[string]*Declaration

	// byName holds, per hook name, the ids in registration order. It is
	// the iteration source for dispatch.
	byName map[string][]string

	// byDomain holds, per hook name and domain, the set of ids
	// registered under that pair. It makes group teardown O(group size).
	byDomain map[string]map[string]map[string]struct{}
}

func newIndex() *index {
	return &index{
		byID:     make(map[string]*Declaration),
		byName:   make(map[string][]string),
		byDomain: make(map[string]map[string]map[string]struct{}),
	}
}

// Engine manages named dispatch points. It is safe for concurrent use:
// index mutations are serialized by a mutex, and dispatch snapshots the
// subscriber list before invoking anything, so callbacks may re-enter the
// engine freely.
//
// An Engine is process-wide state: construct one at startup and inject it
// into every subsystem that registers or dispatches.
type Engine struct {
	mu    sync.RWMutex
	seq   uint64
	kinds map[Kind]*index

	logger    *slog.Logger
	observers *observerSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver attaches a lifecycle observer. Observers are type-cached
// at construction: only the interfaces an observer implements cost
// anything at dispatch time.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers.add(o) }
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		kinds: map[Kind]*index{
			Async: newIndex(),
			Sync:  newIndex(),
		},
		logger:    slog.Default(),
		observers: &observerSet{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.observers.logger = e.logger
	return e
}

// RegisterOption configures a single registration.
type RegisterOption func(*Declaration)

// WithOrder sets the execution order. Lower runs first; default Neutral.
func WithOrder(order int) RegisterOption {
	return func(d *Declaration) { d.Order = order }
}

// WithID sets the callback id. Registering an id that already exists in
// the same namespace silently replaces the prior declaration.
func WithID(id string) RegisterOption {
	return func(d *Declaration) { d.ID = id }
}

// WithDomain tags the registration for group-scoped teardown.
// Default DefaultDomain.
func WithDomain(domain string) RegisterOption {
	return func(d *Declaration) { d.Domain = domain }
}

// Register attaches a callback to the named hook in the Async namespace
// and returns its id. Register always succeeds; an id collision is a
// silent last-write-wins replacement.
func (e *Engine) Register(name string, cb Callback, opts ...RegisterOption) string {
	return e.register(Async, name, cb, opts)
}

// RegisterSync is Register for the Sync namespace.
func (e *Engine) RegisterSync(name string, cb Callback, opts ...RegisterOption) string {
	return e.register(Sync, name, cb, opts)
}

func (e *Engine) register(kind Kind, name string, cb Callback, opts []RegisterOption) string {
	d := &Declaration{
		Name:     name,
		Order:    Neutral,
		Domain:   DefaultDomain,
		Kind:     kind,
		Callback: cb,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.ID == "" {
		d.ID = freshID()
	}

	var replaced *Declaration

	e.mu.Lock()
	idx := e.kinds[kind]
	if prior, ok := idx.byID[d.ID]; ok {
		replaced = prior
		e.removeLocked(idx, prior)
	}
	e.seq++
	d.seq = e.seq
	idx.byID[d.ID] = d
	idx.byName[name] = append(idx.byName[name], d.ID)
	domains := idx.byDomain[name]
	if domains == nil {
		domains = make(map[string]map[string]struct{})
		idx.byDomain[name] = domains
	}
	ids := domains[d.Domain]
	if ids == nil {
		ids = make(map[string]struct{})
		domains[d.Domain] = ids
	}
	ids[d.ID] = struct{}{}
	e.mu.Unlock()

	if replaced != nil {
		e.observers.unregistered(*replaced)
	}
	e.observers.registered(*d)

	return d.ID
}

// Unregister removes the declaration owning id from whichever namespace
// holds it. Unknown ids are an idempotent no-op.
func (e *Engine) Unregister(id string) {
	var removed *Declaration

	e.mu.Lock()
	for _, idx := range e.kinds {
		if d, ok := idx.byID[id]; ok {
			e.removeLocked(idx, d)
			removed = d
			break
		}
	}
	e.mu.Unlock()

	if removed != nil {
		e.observers.unregistered(*removed)
	}
}

// UnregisterDomain removes every callback registered under the
// (name, domain) pair, in both namespaces. Registrations under other
// domains for the same name, including DefaultDomain, are untouched.
// An absent domain key is an idempotent no-op.
func (e *Engine) UnregisterDomain(name, domain string) {
	var removed []Declaration

	e.mu.Lock()
	for _, idx := range e.kinds {
		ids := idx.byDomain[name][domain]
		for id := range ids {
			if d, ok := idx.byID[id]; ok {
				e.removeLocked(idx, d)
				removed = append(removed, *d)
			}
		}
	}
	e.mu.Unlock()

	for _, d := range removed {
		e.observers.unregistered(d)
	}
}

// Flush removes every subscriber for name in the given namespace, across
// all domains.
func (e *Engine) Flush(name string, kind Kind) {
	var removed []Declaration

	e.mu.Lock()
	idx := e.kinds[kind]
	for _, id := range idx.byName[name] {
		if d, ok := idx.byID[id]; ok {
			delete(idx.byID, id)
			removed = append(removed, *d)
		}
	}
	delete(idx.byName, name)
	delete(idx.byDomain, name)
	e.mu.Unlock()

	for _, d := range removed {
		e.observers.unregistered(d)
	}
}

// List returns the alphabetically sorted hook names currently holding at
// least one subscriber in the given namespace.
func (e *Engine) List(kind Kind) []string {
	e.mu.RLock()
	idx := e.kinds[kind]
	names := make([]string, 0, len(idx.byName))
	for name, ids := range idx.byName {
		if len(ids) > 0 {
			names = append(names, name)
		}
	}
	e.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Subscribers returns how many callbacks are attached to name in the
// given namespace.
func (e *Engine) Subscribers(name string, kind Kind) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.kinds[kind].byName[name])
}

// Run dispatches the Async namespace for name: subscribers execute
// sequentially in ascending order (registration order on ties), each
// receiving the caller's ctx and the shared hook Context. The first
// callback error aborts the sequence and propagates; no partial Context
// is returned on failure.
func (e *Engine) Run(ctx context.Context, name string, params ...any) (*Context, error) {
	return e.dispatch(ctx, Async, name, params)
}

// RunSync is Run for the Sync namespace.
func (e *Engine) RunSync(ctx context.Context, name string, params ...any) (*Context, error) {
	return e.dispatch(ctx, Sync, name, params)
}

// dispatch is the action sequence shared by Run and RunSync.
func (e *Engine) dispatch(ctx context.Context, kind Kind, name string, params []any) (*Context, error) {
	e.mu.RLock()
	idx := e.kinds[kind]
	decls := make([]*Declaration, 0, len(idx.byName[name]))
	for _, id := range idx.byName[name] {
		if d, ok := idx.byID[id]; ok {
			decls = append(decls, d)
		}
	}
	e.mu.RUnlock()

	// (Order, seq) is a total order, so the sort is deterministic even
	// without stability.
	sort.Slice(decls, func(i, j int) bool {
		if decls[i].Order != decls[j].Order {
			return decls[i].Order < decls[j].Order
		}
		return decls[i].seq < decls[j].seq
	})

	hc := &Context{Hook: name, Params: params}

	e.observers.runStart(ctx, name, kind, len(decls))
	start := time.Now()

	for _, d := range decls {
		if err := d.Callback(ctx, hc); err != nil {
			wrapped := fmt.Errorf("hook %s: callback %s: %w", name, d.ID, err)
			e.observers.runEnd(ctx, name, kind, time.Since(start), wrapped)
			return nil, wrapped
		}
	}

	e.observers.runEnd(ctx, name, kind, time.Since(start), nil)
	return hc, nil
}

// removeLocked deletes d from all three indices of idx. Caller holds e.mu.
func (e *Engine) removeLocked(idx *index, d *Declaration) {
	delete(idx.byID, d.ID)

	ids := idx.byName[d.Name]
	for i, id := range ids {
		if id == d.ID {
			idx.byName[d.Name] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(idx.byName[d.Name]) == 0 {
		delete(idx.byName, d.Name)
	}

	if domains := idx.byDomain[d.Name]; domains != nil {
		if ids := domains[d.Domain]; ids != nil {
			delete(ids, d.ID)
			if len(ids) == 0 {
				delete(domains, d.Domain)
			}
		}
		if len(domains) == 0 {
			delete(idx.byDomain, d.Name)
		}
	}
}
