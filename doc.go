// Package reactium is the core of a plugin-based application framework.
// Every extensibility surface in the framework rests on two primitives:
// a named, priority-ordered, domain-scoped callback dispatch engine
// (package hook) and a generic ordered keyed collection (package registry).
//
// Higher-level subsystems (components, zones, routes, server middleware,
// plugins, pulse tasks) are consumers of those two primitives: each
// registers named callbacks or entries, groups them by a domain tag, and
// relies on deterministic ordering plus group-scoped teardown.
//
// # Quick Start
//
//	a := app.New(
//	    app.WithLogger(logger),
//	    app.WithPlugin(&myPlugin{}, hook.Neutral),
//	)
//	if err := a.Boot(ctx); err != nil {
//	    return err
//	}
//
// # Architecture
//
// The framework is a library, not a service. There is no package-level
// singleton: the app package constructs one explicit runtime value at
// startup and every subsystem receives it (or the piece of it it needs)
// by injection.
//
// This root package holds only the shared leaves: sentinel errors, the
// boot configuration, and the well-known hook names the framework itself
// dispatches during its lifecycle.
package reactium
