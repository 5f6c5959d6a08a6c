// Package middleware provides composable wrappers for individual hook
// callbacks. The dispatch engine itself offers no per-callback timeout,
// panic recovery, logging, or telemetry; those concerns live at the
// caller, and this package is the caller-side toolkit for them.
//
// Wrap a callback before registering it:
//
//	engine.Register("plugin-init",
//	    middleware.Wrap(cb,
//	        middleware.Logging(logger),
//	        middleware.Recover(logger),
//	        middleware.Timeout(5*time.Second),
//	    ))
//
// Note that Recover converts a callback panic into an error, which still
// aborts the dispatch sequence fail-fast. It changes how the failure
// surfaces, not whether it does.
package middleware
