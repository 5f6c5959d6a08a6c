// Package registry provides the generic ordered keyed collection behind
// the framework's component, zone, route, middleware, and plugin
// collections: entries keyed by id, listed in ascending order with stable
// insertion tie-breaks, guarded by protect/ban flags, and observable
// through synchronous change subscriptions.
//
// Two retention modes exist. Clean keeps current state only. History
// additionally appends every mutation to an unbounded change log for
// debugging and audit trails.
//
// Mutations are atomic: no torn state is observable from other
// goroutines mid-operation. Subscribers fire synchronously after each
// mutation, outside the registry lock, so a subscriber may re-enter the
// registry. Re-entrant mutation during notification is allowed.
package registry
