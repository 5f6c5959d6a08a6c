package zone

import (
	"fmt"
	"sync"

	"go.jetify.com/typeid/v2"

	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Component is one entry in a zone.
type Component struct {
	// ID is unique across all zones. Generated when empty.
	ID string

	// Zone names the slot this component fills.
	Zone string

	// Order controls position within the zone; lower renders first.
	Order int

	// Value is the component payload. Its type is the renderer's
	// concern.
	Value any
}

// Zones manages every zone collection. It is safe for concurrent use.
type Zones struct {
	mu    sync.RWMutex
	zones map[string]*registry.Registry[Component]
	byID  map[string]string // component id -> zone name
}

// New creates an empty zone manager.
func New() *Zones {
	return &Zones{
		zones: make(map[string]*registry.Registry[Component]),
		byID:  make(map[string]string),
	}
}

// Add places a component into its zone and returns the component id.
// An existing id is replaced in place (last-write-wins), moving zones
// when the Zone field changed.
func (z *Zones) Add(c Component) (string, error) {
	if c.Zone == "" {
		return "", fmt.Errorf("zone: component %q has no zone", c.ID)
	}
	if c.ID == "" {
		tid, err := typeid.Generate("zone")
		if err != nil {
			return "", fmt.Errorf("zone: generate id: %w", err)
		}
		c.ID = tid.String()
	}

	z.mu.Lock()
	if prior, ok := z.byID[c.ID]; ok && prior != c.Zone {
		if reg := z.zones[prior]; reg != nil {
			if err := reg.Unregister(c.ID); err != nil {
				z.mu.Unlock()
				return "", fmt.Errorf("zone: move %s: %w", c.ID, err)
			}
		}
	}
	reg := z.zones[c.Zone]
	if reg == nil {
		reg = registry.New[Component]()
		z.zones[c.Zone] = reg
	}
	z.byID[c.ID] = c.Zone
	z.mu.Unlock()

	if err := reg.Register(c.ID, c, registry.WithOrder(c.Order)); err != nil {
		return "", fmt.Errorf("zone: add %s: %w", c.ID, err)
	}
	return c.ID, nil
}

// Remove deletes a component by id, whichever zone holds it. Unknown
// ids are a no-op.
func (z *Zones) Remove(id string) error {
	z.mu.Lock()
	zoneName, ok := z.byID[id]
	if !ok {
		z.mu.Unlock()
		return nil
	}
	reg := z.zones[zoneName]
	z.mu.Unlock()

	if reg != nil {
		if err := reg.Unregister(id); err != nil {
			return fmt.Errorf("zone: remove %s: %w", id, err)
		}
	}

	z.mu.Lock()
	delete(z.byID, id)
	z.mu.Unlock()
	return nil
}

// Components returns the zone's components sorted by Order (stable on
// insertion for ties). An unknown zone yields an empty slice.
func (z *Zones) Components(zoneName string) []Component {
	z.mu.RLock()
	reg := z.zones[zoneName]
	z.mu.RUnlock()

	if reg == nil {
		return nil
	}
	entries := reg.List()
	out := make([]Component, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

// Subscribe watches one zone: fn receives the zone's sorted contents
// after every change. Returns the unsubscribe function.
func (z *Zones) Subscribe(zoneName string, fn func([]Component)) func() {
	z.mu.Lock()
	reg := z.zones[zoneName]
	if reg == nil {
		reg = registry.New[Component]()
		z.zones[zoneName] = reg
	}
	z.mu.Unlock()

	return reg.Subscribe(func(_ *registry.Registry[Component]) {
		fn(z.Components(zoneName))
	})
}
