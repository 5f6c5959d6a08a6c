package route

import (
	"fmt"
	"net/http"

	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Route is one mountable HTTP route.
type Route struct {
	// ID defaults to "METHOD path" when empty.
	ID string

	// Method is the HTTP method; empty matches all methods.
	Method string

	// Path is the chi route pattern, e.g. "/api/things/{id}".
	Path string

	// Order controls mount precedence; lower mounts first.
	Order int

	// Handler serves the route.
	Handler http.Handler

	// Meta carries consumer-defined route metadata (capabilities,
	// zone bindings, titles).
	Meta map[string]any
}

// Table is the ordered route collection. It is safe for concurrent use.
type Table struct {
	reg *registry.Registry[Route]
}

// NewTable creates an empty route table.
func NewTable(opts ...registry.Option) *Table {
	return &Table{reg: registry.New[Route](opts...)}
}

// Register adds or replaces a route. Replacement follows the registry
// contract: protected ids refuse overwrite, banned ids refuse entirely.
func (t *Table) Register(r Route) (string, error) {
	if r.Path == "" {
		return "", fmt.Errorf("route: %q has no path", r.ID)
	}
	if r.Handler == nil {
		return "", fmt.Errorf("route: %q has no handler", r.ID)
	}
	if r.ID == "" {
		method := r.Method
		if method == "" {
			method = "*"
		}
		r.ID = method + " " + r.Path
	}
	if err := t.reg.Register(r.ID, r, registry.WithOrder(r.Order)); err != nil {
		return "", fmt.Errorf("route: register %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// Unregister removes a route by id. Absent ids are a no-op.
func (t *Table) Unregister(id string) error { return t.reg.Unregister(id) }

// Protect marks a route immune to replacement and removal.
func (t *Table) Protect(id string) error { return t.reg.Protect(id) }

// Get returns the route at id.
func (t *Table) Get(id string) (Route, bool) { return t.reg.Get(id) }

// List returns routes sorted by Order (stable on insertion for ties).
func (t *Table) List() []Route {
	entries := t.reg.List()
	out := make([]Route, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int { return t.reg.Len() }

// Subscribe registers a change callback; see registry.Subscribe.
func (t *Table) Subscribe(fn registry.Subscriber[Route]) func() {
	return t.reg.Subscribe(fn)
}
