// Package component provides the named component collection: a thin
// domain wrapper over the generic registry that lets plugins publish
// replaceable implementations under well-known names and lets the host
// protect the core ones. What a "component" is (a renderer, a handler
// factory, a service) is the consumer's business; the collection only
// stores and orders them.
package component
