package hook_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// appendCallback returns a callback that records label into calls.
func appendCallback(calls *[]string, label string) hook.Callback {
	return func(_ context.Context, _ *hook.Context) error {
		*calls = append(*calls, label)
		return nil
	}
}

func TestRun_AscendingOrder(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "a"), hook.WithID("a"), hook.WithOrder(hook.Neutral))
	e.Register("init", appendCallback(&calls, "b"), hook.WithID("b"), hook.WithOrder(hook.High))
	e.Register("init", appendCallback(&calls, "c"), hook.WithID("c"), hook.WithOrder(hook.Low))
	e.Register("init", appendCallback(&calls, "d"), hook.WithID("d"), hook.WithOrder(hook.Core))

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"d", "b", "a", "c"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected call order %v, got %v", want, calls)
	}
}

func TestRun_EqualOrderIsRegistrationOrder(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	for _, label := range []string{"first", "second", "third", "fourth"} {
		e.Register("boot", appendCallback(&calls, label))
	}

	if _, err := e.Run(ctx, "boot"); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"first", "second", "third", "fourth"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected stable order %v, got %v", want, calls)
	}
}

func TestRun_ScenarioNegativeOrderFirst(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "cbA"), hook.WithID("a"), hook.WithOrder(0))
	e.Register("init", appendCallback(&calls, "cbB"), hook.WithID("b"), hook.WithOrder(-500))

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"cbB", "cbA"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
}

func TestRun_NamespacesAreIndependent(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "async"), hook.WithID("shared"))
	e.RegisterSync("init", appendCallback(&calls, "sync"), hook.WithID("shared"))

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"async"}) {
		t.Fatalf("async run invoked %v", calls)
	}

	calls = nil
	if _, err := e.RunSync(ctx, "init"); err != nil {
		t.Fatalf("runsync: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"sync"}) {
		t.Fatalf("sync run invoked %v", calls)
	}
}

func TestRegister_IDCollisionOverwrites(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "old"), hook.WithID("x"))
	e.Register("renamed", appendCallback(&calls, "new"), hook.WithID("x"), hook.WithDomain("PluginX"))

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run init: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("overwritten callback still attached to old name: %v", calls)
	}

	if _, err := e.Run(ctx, "renamed"); err != nil {
		t.Fatalf("run renamed: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"new"}) {
		t.Fatalf("expected re-indexed callback, got %v", calls)
	}

	// Re-indexed under the new domain too.
	e.UnregisterDomain("renamed", "PluginX")
	calls = nil
	if _, err := e.Run(ctx, "renamed"); err != nil {
		t.Fatalf("run after domain teardown: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("domain teardown missed re-indexed callback: %v", calls)
	}
}

func TestUnregister_Idempotent(t *testing.T) {
	e := hook.New()

	id := e.Register("init", func(_ context.Context, _ *hook.Context) error { return nil })
	e.Unregister(id)
	e.Unregister(id)
	e.Unregister("never-existed")

	if got := e.Subscribers("init", hook.Async); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}
}

func TestUnregisterDomain_RemovesExactGroup(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "cb1"), hook.WithDomain("PluginX"))
	e.Register("cleanup", appendCallback(&calls, "cb2"), hook.WithDomain("PluginX"))
	e.Register("init", appendCallback(&calls, "default"))
	e.Register("init", appendCallback(&calls, "other"), hook.WithDomain("PluginY"))

	e.UnregisterDomain("init", "PluginX")

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run init: %v", err)
	}
	want := []string{"default", "other"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("expected %v after teardown, got %v", want, calls)
	}

	calls = nil
	if _, err := e.Run(ctx, "cleanup"); err != nil {
		t.Fatalf("run cleanup: %v", err)
	}
	if !reflect.DeepEqual(calls, []string{"cb2"}) {
		t.Fatalf("cleanup hook lost its subscriber: %v", calls)
	}
}

func TestUnregisterDomain_AbsentIsNoop(t *testing.T) {
	e := hook.New()
	e.UnregisterDomain("init", "never-registered")
	e.UnregisterDomain("never-registered", "PluginX")
}

func TestFlush_RemovesAllDomains(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	var calls []string
	e.Register("init", appendCallback(&calls, "a"))
	e.Register("init", appendCallback(&calls, "b"), hook.WithDomain("PluginX"))
	e.Register("init", appendCallback(&calls, "c"), hook.WithDomain("PluginY"))

	e.Flush("init", hook.Async)

	if _, err := e.Run(ctx, "init"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("flush left subscribers: %v", calls)
	}
	if names := e.List(hook.Async); len(names) != 0 {
		t.Fatalf("flush left names: %v", names)
	}
}

func TestList_SortedAndIdempotent(t *testing.T) {
	e := hook.New()

	e.Register("zeta", func(_ context.Context, _ *hook.Context) error { return nil })
	e.Register("alpha", func(_ context.Context, _ *hook.Context) error { return nil })
	e.Register("mid", func(_ context.Context, _ *hook.Context) error { return nil })
	e.RegisterSync("sync-only", func(_ context.Context, _ *hook.Context) error { return nil })

	want := []string{"alpha", "mid", "zeta"}
	if got := e.List(hook.Async); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := e.List(hook.Async); !reflect.DeepEqual(got, want) {
		t.Fatalf("list not idempotent between mutations: %v", got)
	}
	if got := e.List(hook.Sync); !reflect.DeepEqual(got, []string{"sync-only"}) {
		t.Fatalf("sync namespace list: %v", got)
	}
}

func TestRun_FailFast(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	boom := errors.New("boom")
	var calls []string
	e.Register("init", appendCallback(&calls, "first"), hook.WithOrder(-10))
	e.Register("init", func(_ context.Context, _ *hook.Context) error { return boom })
	e.Register("init", appendCallback(&calls, "never"), hook.WithOrder(10))

	hc, err := e.Run(ctx, "init")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped callback error, got %v", err)
	}
	if hc != nil {
		t.Fatalf("expected no partial context on failure, got %+v", hc)
	}
	if !reflect.DeepEqual(calls, []string{"first"}) {
		t.Fatalf("remaining subscribers ran after failure: %v", calls)
	}
}

func TestRun_ContextThreading(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	e.Register("enrich", func(_ context.Context, hc *hook.Context) error {
		hc.Set("count", 1)
		return nil
	}, hook.WithOrder(-1))
	e.Register("enrich", func(_ context.Context, hc *hook.Context) error {
		v, ok := hc.Get("count")
		if !ok {
			return errors.New("missing count")
		}
		hc.Set("count", v.(int)+1)
		return nil
	})

	hc, err := e.Run(ctx, "enrich", "param0")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if hc.Hook != "enrich" {
		t.Fatalf("context hook name = %q", hc.Hook)
	}
	if got := hc.Param(0); got != "param0" {
		t.Fatalf("param 0 = %v", got)
	}
	if got := hc.Param(1); got != nil {
		t.Fatalf("out-of-range param = %v", got)
	}
	if v, _ := hc.Get("count"); v != 2 {
		t.Fatalf("expected threaded count 2, got %v", v)
	}
}

func TestRun_ParamEnrichmentInPlace(t *testing.T) {
	e := hook.New()
	ctx := context.Background()

	// The canonical pattern: one mutable object as the sole param,
	// enriched by every subscriber.
	table := map[string]string{}
	e.Register("routes-init", func(_ context.Context, hc *hook.Context) error {
		hc.Param(0).(map[string]string)["/"] = "home"
		return nil
	})
	e.Register("routes-init", func(_ context.Context, hc *hook.Context) error {
		hc.Param(0).(map[string]string)["/admin"] = "admin"
		return nil
	})

	if _, err := e.Run(ctx, "routes-init", table); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(table) != 2 || table["/"] != "home" || table["/admin"] != "admin" {
		t.Fatalf("param not enriched in place: %v", table)
	}
}

func TestRun_NoSubscribers(t *testing.T) {
	e := hook.New()

	hc, err := e.Run(context.Background(), "empty")
	if err != nil {
		t.Fatalf("run with no subscribers: %v", err)
	}
	if hc == nil || hc.Hook != "empty" {
		t.Fatalf("expected empty context, got %+v", hc)
	}
}

func TestRegister_ReturnsGeneratedID(t *testing.T) {
	e := hook.New()

	id := e.Register("init", func(_ context.Context, _ *hook.Context) error { return nil })
	if id == "" {
		t.Fatal("expected generated id")
	}
	id2 := e.Register("init", func(_ context.Context, _ *hook.Context) error { return nil })
	if id == id2 {
		t.Fatalf("generated ids collide: %s", id)
	}
}
