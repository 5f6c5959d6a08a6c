package cache

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// Op identifies a cache mutation kind.
type Op string

const (
	OpSet    Op = "set"
	OpDel    Op = "del"
	OpExpire Op = "expire"
	OpClear  Op = "clear"
)

// Event describes one cache mutation, delivered to subscribers.
type Event struct {
	Op    Op
	Key   string
	Value any
}

// Subscriber receives cache mutation events synchronously.
type Subscriber func(Event)

// Option configures a Cache.
type Option func(*Cache)

// WithEngine attaches a hook engine; expirations dispatch cache-expired
// on the sync namespace.
func WithEngine(e *hook.Engine) Option {
	return func(c *Cache) { c.engine = e }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithJanitor sets the sweep interval for expired entries. Zero disables
// the janitor; expiration is then lazy only.
func WithJanitor(d time.Duration) Option {
	return func(c *Cache) { c.janitor = d }
}

type item struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

func (it item) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !it.expiresAt.After(now)
}

// Cache is a keyed value store with per-entry TTL. Safe for concurrent
// use. Subscribers are notified outside the lock, so they may mutate the
// cache re-entrantly.
type Cache struct {
	engine  *hook.Engine
	logger  *slog.Logger
	janitor time.Duration

	mu      sync.RWMutex
	items   map[string]item
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool

	subMu   sync.Mutex
	nextSub int
	subs    map[int]Subscriber
}

// New creates an empty Cache. The janitor does not run until Start.
func New(opts ...Option) *Cache {
	c := &Cache{
		logger:  slog.Default(),
		janitor: 30 * time.Second,
		items:   make(map[string]item),
		subs:    make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key. ttl <= 0 means the entry never expires.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	it := item{value: value}
	if ttl > 0 {
		it.expiresAt = time.Now().UTC().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = it
	c.mu.Unlock()

	c.notify(Event{Op: OpSet, Key: key, Value: value})
}

// Get returns the live value at key. Expired entries are evicted on read.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now().UTC()

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.expired(now) {
		c.evict(context.Background(), key, now)
		return nil, false
	}
	return it.value, true
}

// GetOr returns the live value at key, or fallback when absent.
func (c *Cache) GetOr(key string, fallback any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	return fallback
}

// Del removes key. Absent keys are a no-op.
func (c *Cache) Del(key string) {
	c.mu.Lock()
	it, ok := c.items[key]
	if ok {
		delete(c.items, key)
	}
	c.mu.Unlock()
	if ok {
		c.notify(Event{Op: OpDel, Key: key, Value: it.value})
	}
}

// Keys returns the live keys in sorted order.
func (c *Cache) Keys() []string {
	now := time.Now().UTC()
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for k, it := range c.items {
		if it.expired(now) {
			continue
		}
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	now := time.Now().UTC()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		if !it.expired(now) {
			n++
		}
	}
	return n
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]item)
	c.mu.Unlock()
	c.notify(Event{Op: OpClear})
}

// Subscribe registers a mutation callback and returns its unsubscribe
// function.
func (c *Cache) Subscribe(fn Subscriber) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// Start launches the janitor sweep loop. No-op when the interval is zero
// or the janitor is already running.
func (c *Cache) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.janitor <= 0 {
		return nil
	}
	c.started = true
	c.stopCh = make(chan struct{})
	c.wg.Add(1)
	go c.sweepLoop(c.stopCh)
	return nil
}

// Stop halts the janitor and waits for it to finish.
func (c *Cache) Stop(_ context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	stopCh := c.stopCh
	c.started = false
	c.mu.Unlock()

	close(stopCh)
	c.wg.Wait()
	return nil
}

func (c *Cache) sweepLoop(stopCh chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.janitor)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			c.sweep(context.Background())
		}
	}
}

func (c *Cache) sweep(ctx context.Context) {
	now := time.Now().UTC()

	c.mu.RLock()
	var dead []string
	for k, it := range c.items {
		if it.expired(now) {
			dead = append(dead, k)
		}
	}
	c.mu.RUnlock()

	for _, k := range dead {
		c.evict(ctx, k, now)
	}
}

// evict removes key if it is still expired, then dispatches cache-expired
// and notifies subscribers. Hook failures are logged, never propagated.
func (c *Cache) evict(ctx context.Context, key string, now time.Time) {
	c.mu.Lock()
	it, ok := c.items[key]
	if !ok || !it.expired(now) {
		c.mu.Unlock()
		return
	}
	delete(c.items, key)
	c.mu.Unlock()

	if c.engine != nil {
		if _, err := c.engine.RunSync(ctx, reactium.HookCacheExpired, key, it.value); err != nil {
			c.logger.Warn("cache hook error",
				slog.String("hook", reactium.HookCacheExpired),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
	c.notify(Event{Op: OpExpire, Key: key, Value: it.value})
}

func (c *Cache) notify(ev Event) {
	c.subMu.Lock()
	fns := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
