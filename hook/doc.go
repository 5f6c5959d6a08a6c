// Package hook implements the dispatch engine at the center of the
// framework: named extension points ("hooks") to which callbacks attach
// with a signed execution order and a domain tag, and from which they are
// dispatched in a deterministic, stable order.
//
// An Engine carries two independent namespaces, Async and Sync. A callback
// id registered in one namespace never collides with the same id string in
// the other. Register/RegisterSync attach callbacks; Run/RunSync dispatch
// them sequentially, threading one mutable *Context through the chain.
//
// Dispatch is fail-fast: the first callback to return an error aborts the
// remaining sequence and the error propagates to the caller. The engine
// provides no per-callback timeout or cancellation; callers needing those
// wrap individual callbacks (see the middleware package).
//
// Domains are the lifecycle primitive: a plugin registers N callbacks
// under one domain string and later tears the whole group down with a
// single UnregisterDomain (or a Binding's Dispose), without tracking
// individual ids.
package hook
