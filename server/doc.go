// Package server builds the framework's HTTP surface from hooks. Build
// dispatches Server.Middleware (a middleware registry threaded through
// the hook context for in-place enrichment), Server.Init (the raw chi
// router), and routes-init (the route table), then mounts the sorted
// table. The result is a plain http.Handler; serving it is the host
// application's business.
package server
