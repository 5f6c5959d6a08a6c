package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
	"github.com/ReactiumCore/ReactiumFramework-sub005/registry"
)

// Compile-time interface checks.
var (
	_ hook.Observer           = (*Recorder)(nil)
	_ hook.RegisterObserver   = (*Recorder)(nil)
	_ hook.UnregisterObserver = (*Recorder)(nil)
	_ hook.RunEndObserver     = (*Recorder)(nil)
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// WithActions restricts the recorder to the given actions. By default
// every action is recorded.
func WithActions(actions ...string) Option {
	return func(r *Recorder) {
		r.enabled = make(map[string]bool, len(actions))
		for _, a := range actions {
			r.enabled[a] = true
		}
	}
}

// Recorder bridges engine lifecycle events to a Store. Attach it with
// hook.WithObserver.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	enabled map[string]bool // nil = all enabled
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(s Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:  s,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements hook.Observer.
func (r *Recorder) Name() string { return "audit" }

// OnHookRegistered implements hook.RegisterObserver.
func (r *Recorder) OnHookRegistered(d hook.Declaration) error {
	evt := NewEvent(ActionHookRegistered, ResourceHook, d.ID)
	evt.Metadata = map[string]any{
		"name":   d.Name,
		"domain": d.Domain,
		"kind":   string(d.Kind),
		"order":  d.Order,
	}
	r.append(context.Background(), evt)
	return nil
}

// OnHookUnregistered implements hook.UnregisterObserver.
func (r *Recorder) OnHookUnregistered(d hook.Declaration) error {
	evt := NewEvent(ActionHookUnregistered, ResourceHook, d.ID)
	evt.Metadata = map[string]any{
		"name":   d.Name,
		"domain": d.Domain,
		"kind":   string(d.Kind),
	}
	r.append(context.Background(), evt)
	return nil
}

// OnRunEnd implements hook.RunEndObserver.
func (r *Recorder) OnRunEnd(ctx context.Context, name string, kind hook.Kind, elapsed time.Duration, runErr error) error {
	evt := NewEvent(ActionRunCompleted, ResourceHook, name)
	if runErr != nil {
		evt.Action = ActionRunFailed
		evt.Outcome = OutcomeFailure
		evt.Severity = SeverityWarning
		evt.Reason = runErr.Error()
	}
	evt.Metadata = map[string]any{
		"kind":       string(kind),
		"elapsed_ms": elapsed.Milliseconds(),
	}
	r.append(ctx, evt)
	return nil
}

// ObserveRegistry watches a registry and records its mutations. With a
// History-mode registry every action is recorded individually; in Clean
// mode each notification becomes a single registry.changed event. The
// returned function stops watching.
func ObserveRegistry[T any](name string, reg *registry.Registry[T], r *Recorder) func() {
	seen := len(reg.History())
	return reg.Subscribe(func(reg *registry.Registry[T]) {
		history := reg.History()
		if len(history) > seen {
			for _, rec := range history[seen:] {
				evt := NewEvent(ActionRegistryChanged, ResourceRegistry, name)
				evt.Metadata = map[string]any{
					"action":   string(rec.Action),
					"entry_id": rec.ID,
				}
				r.append(context.Background(), evt)
			}
			seen = len(history)
			return
		}
		evt := NewEvent(ActionRegistryChanged, ResourceRegistry, name)
		r.append(context.Background(), evt)
	})
}

// append persists an event if its action is enabled. Store failures are
// logged, never returned.
func (r *Recorder) append(ctx context.Context, evt *Event) {
	if r.enabled != nil && !r.enabled[evt.Action] {
		return
	}
	if err := r.store.Append(ctx, evt); err != nil {
		r.logger.Warn("audit append failed",
			slog.String("action", evt.Action),
			slog.String("resource_id", evt.ResourceID),
			slog.String("error", err.Error()),
		)
	}
}
