// Package cache is an in-process TTL cache. Entries expire lazily on
// read and eagerly via a janitor sweep; evictions dispatch the
// cache-expired sync hook when an engine is attached, and synchronous
// subscribers observe every mutation.
package cache
