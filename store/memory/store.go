// Package memory is a fully in-memory audit.Store. Safe for concurrent
// access. Intended for unit testing and development.
package memory

import (
	"context"
	"sync"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/audit"
)

var _ audit.Store = (*Store)(nil)

// Store keeps events in an append-only slice.
type Store struct {
	mu     sync.RWMutex
	events []*audit.Event
	closed bool
}

// New returns a new empty Store.
func New() *Store {
	return &Store{}
}

// Append persists one event.
func (m *Store) Append(_ context.Context, evt *audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return reactium.ErrStoreClosed
	}
	cp := *evt
	m.events = append(m.events, &cp)
	return nil
}

// List returns the most recent events, newest first, up to limit.
func (m *Store) List(_ context.Context, limit int) ([]*audit.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, reactium.ErrStoreClosed
	}

	n := len(m.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*audit.Event, 0, n)
	for i := len(m.events) - 1; i >= 0 && len(out) < n; i-- {
		cp := *m.events[i]
		out = append(out, &cp)
	}
	return out, nil
}

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close marks the store closed. Idempotent.
func (m *Store) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
