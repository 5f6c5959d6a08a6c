// Package audit turns framework lifecycle activity into a persistent
// trail. A Recorder observes the hook engine (registrations, removals,
// dispatch outcomes) and can watch registries; every observation becomes
// an Event appended to a Store backend. Store failures are logged and
// never propagate into dispatch.
package audit
