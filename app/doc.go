// Package app wires the framework subsystems into one runtime value.
// An App owns the hook engine, component registry, zones, route table,
// plugin host, pulse runner, cache, and HTTP surface; Boot runs the full
// lifecycle hook sequence and Stop tears everything down in reverse.
//
// There is no package-level singleton: construct an App with New and
// inject it where needed.
package app
