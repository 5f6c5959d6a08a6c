// Package redis implements audit.Store on Redis. Events are serialized
// as JSON into a capped list, newest first.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	if err := s.Ping(ctx); err != nil { ... }
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/audit"
)

var _ audit.Store = (*Store)(nil)

// eventsKey holds the audit trail list. Prefixed to avoid collisions.
const eventsKey = "reactium:audit:events"

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaxEvents caps the trail length; older events are trimmed on
// append. Zero means unbounded.
func WithMaxEvents(n int64) Option {
	return func(s *Store) { s.maxEvents = n }
}

// Store implements audit.Store backed by Redis.
type Store struct {
	client    redis.Cmdable
	logger    *slog.Logger
	maxEvents int64

	mu     sync.RWMutex
	closed bool
}

// New creates a Redis-backed store. The caller owns the Redis client
// lifecycle.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{
		client:    client,
		logger:    slog.Default(),
		maxEvents: 10000,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// Append serializes the event and pushes it onto the trail.
func (s *Store) Append(ctx context.Context, evt *audit.Event) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return reactium.ErrStoreClosed
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("reactium/redis: marshal event: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, eventsKey, payload)
	if s.maxEvents > 0 {
		pipe.LTrim(ctx, eventsKey, 0, s.maxEvents-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("reactium/redis: append event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first, up to limit.
func (s *Store) List(ctx context.Context, limit int) ([]*audit.Event, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, reactium.ErrStoreClosed
	}

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raw, err := s.client.LRange(ctx, eventsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("reactium/redis: list events: %w", err)
	}

	out := make([]*audit.Event, 0, len(raw))
	for _, item := range raw {
		var evt audit.Event
		if err := json.Unmarshal([]byte(item), &evt); err != nil {
			s.logger.Warn("skipping malformed audit event",
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, &evt)
	}
	return out, nil
}

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close marks the store closed. The caller owns the Redis client
// lifecycle, so the connection itself stays open.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
