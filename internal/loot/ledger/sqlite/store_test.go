package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/lootforge/internal/loot"
	apperrors "github.com/louisbranch/lootforge/internal/platform/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func batch(names ...string) []loot.Item {
	items := make([]loot.Item, 0, len(names))
	for _, name := range names {
		items = append(items, loot.Item{
			Name:       name,
			Quality:    "common",
			Type:       "weapon",
			Subtype:    "sword",
			Attributes: map[string]loot.Attribute{"level": loot.NewAttribute("level", 3, 0, 0, false)},
			Metadata:   loot.Metadata{"slot": "hand"},
		})
	}
	return items
}

func TestRecordLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	want := batch("Longsword", "Rapier")

	if err := store.Record(ctx, "session-1", "chest", want); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := store.Load(ctx, "session-1", "chest")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Load(context.Background(), "session-1", "nothing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty batch, got %v", got)
	}
}

func TestRecordReplacesKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Record(ctx, "s", "boss", batch("a", "b", "c")); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "s", "boss", batch("d")); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := store.Load(ctx, "s", "boss")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "d" {
		t.Fatalf("expected replaced batch, got %+v", got)
	}
	count, err := store.Count(ctx, "s")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 stored item, got %d", count)
	}
}

func TestKeysAndForgetAreScopedBySession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"b", "a"} {
		if err := store.Record(ctx, "one", key, batch("x")); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := store.Record(ctx, "two", "a", batch("y")); err != nil {
		t.Fatalf("record: %v", err)
	}

	keys, err := store.Keys(ctx, "one")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := store.Forget(ctx, "one"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	keys, err = store.Keys(ctx, "one")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys after forget, got %v", keys)
	}
	got, err := store.Load(ctx, "two", "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Name != "y" {
		t.Fatalf("expected other session untouched, got %+v", got)
	}
}

func TestRecordRequiresSession(t *testing.T) {
	store := openTestStore(t)
	err := store.Record(context.Background(), " ", "k", batch("x"))
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Load(ctx, "s", "k"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestNilStore(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := store.Keys(context.Background(), "s"); !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	first := openTestStore(t)
	second := openTestStore(t)
	ctx := context.Background()
	if err := first.Record(ctx, "s", "k", batch("x")); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := second.Load(ctx, "s", "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected separate databases, got %+v", got)
	}
}
