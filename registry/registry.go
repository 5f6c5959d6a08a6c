package registry

import (
	"sort"
	"sync"
	"time"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
)

// Mode selects the registry's retention behavior.
type Mode int

const (
	// Clean retains current state only.
	Clean Mode = iota
	// History additionally appends every mutation to an unbounded log.
	History
)

// Action names a mutation kind in the history log.
type Action string

const (
	ActionRegister   Action = "register"
	ActionUnregister Action = "unregister"
	ActionProtect    Action = "protect"
	ActionUnprotect  Action = "unprotect"
	ActionBan        Action = "ban"
)

// Record is one history log entry.
type Record struct {
	Action Action
	ID     string
	At     time.Time
}

// Entry is one registered value with its ordering and guard state.
type Entry[T any] struct {
	ID        string
	Value     T
	Order     int
	Protected bool

	// seq is the insertion sequence, the stable tie-break for List.
	// Overwriting an entry keeps its original insertion position.
	seq uint64
}

// Subscriber is notified synchronously after every mutation.
type Subscriber[T any] func(r *Registry[T])

// Option configures a Registry at construction.
type Option func(*settings)

type settings struct {
	mode Mode
}

// WithMode sets the retention mode. Default Clean.
func WithMode(m Mode) Option {
	return func(s *settings) { s.mode = m }
}

// EntryOption configures a single registration.
type EntryOption func(*entryMeta)

type entryMeta struct {
	order int
}

// WithOrder sets the entry's list order. Lower sorts first; default 0.
func WithOrder(order int) EntryOption {
	return func(m *entryMeta) { m.order = order }
}

// Registry is a generic ordered keyed collection. It is safe for
// concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	mode    Mode
	seq     uint64
	entries map[string]*Entry[T]
	banned  map[string]struct{}
	history []Record

	subMu   sync.Mutex
	subs    map[int]Subscriber[T]
	nextSub int
}

// New creates an empty registry.
func New[T any](opts ...Option) *Registry[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Registry[T]{
		mode:    s.mode,
		entries: make(map[string]*Entry[T]),
		banned:  make(map[string]struct{}),
		subs:    make(map[int]Subscriber[T]),
	}
}

// Mode returns the retention mode.
func (r *Registry[T]) Mode() Mode { return r.mode }

// Register inserts or overwrites the entry at id. It fails when id is
// banned, or when a live protected entry holds the id. Overwriting keeps
// the entry's original insertion position for tie-breaking.
func (r *Registry[T]) Register(id string, value T, opts ...EntryOption) error {
	var meta entryMeta
	for _, opt := range opts {
		opt(&meta)
	}

	r.mu.Lock()
	if _, ok := r.banned[id]; ok {
		r.mu.Unlock()
		return reactium.ErrEntryBanned
	}
	if prior, ok := r.entries[id]; ok {
		if prior.Protected {
			r.mu.Unlock()
			return reactium.ErrEntryProtected
		}
		prior.Value = value
		prior.Order = meta.order
	} else {
		r.seq++
		r.entries[id] = &Entry[T]{
			ID:    id,
			Value: value,
			Order: meta.order,
			seq:   r.seq,
		}
	}
	r.record(ActionRegister, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

// Unregister removes the entry at id. An absent id is a no-op, not an
// error; a protected id fails.
func (r *Registry[T]) Unregister(id string) error {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return nil
	}
	if entry.Protected {
		r.mu.Unlock()
		return reactium.ErrEntryProtected
	}
	delete(r.entries, id)
	r.record(ActionUnregister, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

// Protect marks an existing entry immune to removal and overwrite.
func (r *Registry[T]) Protect(id string) error {
	return r.setProtected(id, true, ActionProtect)
}

// Unprotect clears an entry's removal/overwrite immunity.
func (r *Registry[T]) Unprotect(id string) error {
	return r.setProtected(id, false, ActionUnprotect)
}

func (r *Registry[T]) setProtected(id string, protected bool, action Action) error {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return reactium.ErrEntryNotFound
	}
	entry.Protected = protected
	r.record(action, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

// Ban prevents any future Register for id and removes its live entry, if
// any. Banning a protected entry fails; unprotect it first.
func (r *Registry[T]) Ban(id string) error {
	r.mu.Lock()
	if entry, ok := r.entries[id]; ok {
		if entry.Protected {
			r.mu.Unlock()
			return reactium.ErrEntryProtected
		}
		delete(r.entries, id)
	}
	r.banned[id] = struct{}{}
	r.record(ActionBan, id)
	r.mu.Unlock()

	r.notify()
	return nil
}

// IsBanned reports whether id is banned.
func (r *Registry[T]) IsBanned(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.banned[id]
	return ok
}

// Get returns the value registered at id.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[id]; ok {
		return entry.Value, true
	}
	var zero T
	return zero, false
}

// Entry returns a copy of the full entry at id.
func (r *Registry[T]) Entry(id string) (Entry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.entries[id]; ok {
		return *entry, true
	}
	return Entry[T]{}, false
}

// List returns entry copies sorted ascending by Order, ties broken by
// insertion sequence.
func (r *Registry[T]) List() []Entry[T] {
	r.mu.RLock()
	out := make([]Entry[T], 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Len returns the number of live entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// History returns a copy of the mutation log. It is always empty in
// Clean mode.
func (r *Registry[T]) History() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.history))
	copy(out, r.history)
	return out
}

// Subscribe registers a change callback and returns its unsubscribe
// function. Subscribers fire synchronously, in no particular order,
// after every mutation.
func (r *Registry[T]) Subscribe(fn Subscriber[T]) func() {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		r.subMu.Unlock()
	}
}

// record appends to the history log in History mode. Caller holds r.mu.
func (r *Registry[T]) record(action Action, id string) {
	if r.mode != History {
		return
	}
	r.history = append(r.history, Record{Action: action, ID: id, At: time.Now().UTC()})
}

// notify fires subscribers outside the registry lock so they may
// re-enter the registry.
func (r *Registry[T]) notify() {
	r.subMu.Lock()
	fns := make([]Subscriber[T], 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
}
