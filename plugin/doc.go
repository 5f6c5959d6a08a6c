// Package plugin defines the framework's plugin system. A plugin is an
// explicit registration entry point; no code runs as a side effect of
// being imported. The host activates plugins in a deterministic
// bootstrap order and hands each one a domain-scoped hook binding
// (domain = plugin name), so deactivating a plugin tears down exactly
// the callbacks it registered with a single dispose.
//
// Lifecycle interfaces beyond Register are optional: a plugin opts into
// Ready and Deactivate by implementing them, discovered by type
// assertion at activation time.
package plugin
