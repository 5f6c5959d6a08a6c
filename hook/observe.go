package hook

import (
	"context"
	"log/slog"
	"time"
)

// Observer is the base interface all engine observers must implement.
// Each lifecycle event is a separate interface so observers opt in only
// to the events they care about.
type Observer interface {
	// Name returns a unique human-readable name for the observer.
	Name() string
}

// RegisterObserver is notified after a callback is (re)registered.
type RegisterObserver interface {
	OnHookRegistered(d Declaration) error
}

// UnregisterObserver is notified after a callback is removed, whether by
// Unregister, UnregisterDomain, Flush, or an id-collision replacement.
type UnregisterObserver interface {
	OnHookUnregistered(d Declaration) error
}

// RunStartObserver is notified when a dispatch sequence begins.
type RunStartObserver interface {
	OnRunStart(ctx context.Context, name string, kind Kind, subscribers int) error
}

// RunEndObserver is notified when a dispatch sequence ends. err is nil on
// success and the wrapped callback error on fail-fast abort.
type RunEndObserver interface {
	OnRunEnd(ctx context.Context, name string, kind Kind, elapsed time.Duration, err error) error
}

// Named entry types pair an observer hook with the observer name captured
// at registration time.
type registerEntry struct {
	name string
	obs  RegisterObserver
}

type unregisterEntry struct {
	name string
	obs  UnregisterObserver
}

type runStartEntry struct {
	name string
	obs  RunStartObserver
}

type runEndEntry struct {
	name string
	obs  RunEndObserver
}

// observerSet holds type-cached observer slices. Observer errors are
// logged and never propagated; they must not affect dispatch semantics.
type observerSet struct {
	logger *slog.Logger

	registerObs   []registerEntry
	unregisterObs []unregisterEntry
	runStartObs   []runStartEntry
	runEndObs     []runEndEntry
}

func (s *observerSet) add(o Observer) {
	name := o.Name()
	if h, ok := o.(RegisterObserver); ok {
		s.registerObs = append(s.registerObs, registerEntry{name, h})
	}
	if h, ok := o.(UnregisterObserver); ok {
		s.unregisterObs = append(s.unregisterObs, unregisterEntry{name, h})
	}
	if h, ok := o.(RunStartObserver); ok {
		s.runStartObs = append(s.runStartObs, runStartEntry{name, h})
	}
	if h, ok := o.(RunEndObserver); ok {
		s.runEndObs = append(s.runEndObs, runEndEntry{name, h})
	}
}

func (s *observerSet) registered(d Declaration) {
	for _, e := range s.registerObs {
		if err := e.obs.OnHookRegistered(d); err != nil {
			s.logError("OnHookRegistered", e.name, err)
		}
	}
}

func (s *observerSet) unregistered(d Declaration) {
	for _, e := range s.unregisterObs {
		if err := e.obs.OnHookUnregistered(d); err != nil {
			s.logError("OnHookUnregistered", e.name, err)
		}
	}
}

func (s *observerSet) runStart(ctx context.Context, name string, kind Kind, subscribers int) {
	for _, e := range s.runStartObs {
		if err := e.obs.OnRunStart(ctx, name, kind, subscribers); err != nil {
			s.logError("OnRunStart", e.name, err)
		}
	}
}

func (s *observerSet) runEnd(ctx context.Context, name string, kind Kind, elapsed time.Duration, err error) {
	for _, e := range s.runEndObs {
		if oerr := e.obs.OnRunEnd(ctx, name, kind, elapsed, err); oerr != nil {
			s.logError("OnRunEnd", e.name, oerr)
		}
	}
}

func (s *observerSet) logError(event, obsName string, err error) {
	s.logger.Warn("hook observer error",
		slog.String("event", event),
		slog.String("observer", obsName),
		slog.String("error", err.Error()),
	)
}
