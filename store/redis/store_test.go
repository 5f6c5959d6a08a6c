package redis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	reactium "github.com/ReactiumCore/ReactiumFramework-sub005"
	"github.com/ReactiumCore/ReactiumFramework-sub005/audit"
	redisstore "github.com/ReactiumCore/ReactiumFramework-sub005/store/redis"
)

func newTestStore(t *testing.T, opts ...redisstore.Option) *redisstore.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return redisstore.New(client, opts...)
}

func TestStore_Ping(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestStore_AppendList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, action := range []string{"first", "second", "third"} {
		evt := audit.NewEvent(action, audit.ResourceHook, "h")
		evt.Metadata = map[string]any{"name": "init"}
		if err := s.Append(ctx, evt); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("List returned %d events", len(events))
	}
	// Newest first.
	if events[0].Action != "third" || events[2].Action != "first" {
		t.Fatalf("order = [%s %s %s]", events[0].Action, events[1].Action, events[2].Action)
	}
	if events[0].Metadata["name"] != "init" {
		t.Fatalf("metadata lost in round trip: %+v", events[0].Metadata)
	}
}

func TestStore_ListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, action := range []string{"a", "b", "c"} {
		if err := s.Append(ctx, audit.NewEvent(action, audit.ResourceHook, "h")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 || events[0].Action != "c" || events[1].Action != "b" {
		t.Fatalf("limited list = %+v", events)
	}
}

func TestStore_TrimsToMaxEvents(t *testing.T) {
	s := newTestStore(t, redisstore.WithMaxEvents(2))
	ctx := context.Background()

	for _, action := range []string{"a", "b", "c"} {
		if err := s.Append(ctx, audit.NewEvent(action, audit.ResourceHook, "h")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 || events[0].Action != "c" || events[1].Action != "b" {
		t.Fatalf("trimmed trail = %+v", events)
	}
}

func TestStore_Closed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Append(ctx, audit.NewEvent("a", audit.ResourceHook, "h")); !errors.Is(err, reactium.ErrStoreClosed) {
		t.Fatalf("Append after Close = %v", err)
	}
	if _, err := s.List(ctx, 0); !errors.Is(err, reactium.ErrStoreClosed) {
		t.Fatalf("List after Close = %v", err)
	}
}
