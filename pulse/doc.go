// Package pulse runs recurring tasks on cron schedules. Tasks live in an
// ordered registry, so the protect/ban rules apply to them like any other
// registered artifact. A Runner ticks on an interval, executes due tasks
// with per-run retry backoff, and dispatches pulse-fired / pulse-exhausted
// through the attached hook engine.
package pulse
