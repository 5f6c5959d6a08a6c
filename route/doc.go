// Package route provides the route table: an ordered registry of HTTP
// routes that plugins enrich during the routes-init hook. The table only
// stores and orders routes; the server package mounts them.
package route
