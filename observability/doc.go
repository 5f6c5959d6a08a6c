// Package observability provides an OpenTelemetry metrics observer for
// the hook engine. It records engine-wide counters for registrations,
// removals, and dispatch outcomes, plus a dispatch duration histogram.
//
// For per-callback tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
