package hook

import (
	"context"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Kind selects which of the engine's two namespaces a registration or
// dispatch targets.
type Kind string

const (
	// Async is the namespace dispatched by Run.
	Async Kind = "async"
	// Sync is the namespace dispatched by RunSync.
	Sync Kind = "sync"
)

// DefaultDomain is the reserved registration pool. Group-scoped teardown
// never targets it implicitly; callbacks registered without an explicit
// domain land here.
const DefaultDomain = "default"

// Execution order constants. These are a caller convention, not a closed
// enum: the engine accepts any signed order. Lower runs first.
const (
	Core    = -2000
	Highest = -1000
	High    = -500
	Neutral = 0
	Low     = 500
	Lowest  = 1000
)

// Callback is the uniform subscriber signature for both namespaces.
// Callbacks may mutate the hook Context or any reference-typed value in
// its Params; the common pattern passes one mutable object as the sole
// param for in-place enrichment by every subscriber.
type Callback func(ctx context.Context, hc *Context) error

// Declaration describes one registered callback. Declarations are never
// mutated in place: re-registering an id replaces the declaration
// entirely (last-write-wins) and re-indexes it under its possibly new
// name and domain.
type Declaration struct {
	ID       string
	Name     string
	Order    int
	Domain   string
	Kind     Kind
	Callback Callback

	// seq is the registration sequence number, the secondary sort key
	// that makes equal-order dispatch stable.
	seq uint64
}

// freshID generates a unique callback id for registrations that do not
// supply one. Ids are TypeIDs with the "hook" prefix.
func freshID() string {
	tid, err := typeid.Generate("hook")
	if err != nil {
		panic(fmt.Sprintf("hook: generate id: %v", err))
	}
	return tid.String()
}
