package audit

import "context"

// Store is the backend an audit trail persists to.
type Store interface {
	// Append persists one event.
	Append(ctx context.Context, evt *Event) error

	// List returns the most recent events, newest first, up to limit.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*Event, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources. Append and List fail with
	// ErrStoreClosed afterwards.
	Close() error
}
