package dashboard

import (
	"context"
	"testing"
)

func TestInMemorySettingsStore(t *testing.T) {
	store := NewInMemorySettingsStore()
	ctx := context.Background()
	key := SettingsKey{OwnerID: "user-1", Scope: ColumnScope("products")}

	if _, found, err := store.Get(ctx, key); err != nil || found {
		t.Fatalf("expected empty store, got found=%v err=%v", found, err)
	}
	if err := store.Upsert(ctx, key, SettingsBlob(`[{"key":"name"}]`)); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if err := store.Upsert(ctx, key, SettingsBlob(`[{"key":"sku"}]`)); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one record per key, got %d", store.Len())
	}
	blob, found, err := store.Get(ctx, key)
	if err != nil || !found {
		t.Fatalf("expected stored record, got found=%v err=%v", found, err)
	}
	if string(blob) != `[{"key":"sku"}]` {
		t.Fatalf("expected latest blob, got %s", blob)
	}

	blob[0] = 'X'
	again, _, _ := store.Get(ctx, key)
	if again[0] != '[' {
		t.Fatalf("store leaked its internal buffer")
	}

	other := SettingsKey{OwnerID: "user-1", Scope: WidgetScope}
	if _, found, _ := store.Get(ctx, other); found {
		t.Fatalf("expected scopes to be independent")
	}
}

func TestInMemorySettingsStoreRequiresOwner(t *testing.T) {
	store := NewInMemorySettingsStore()
	if err := store.Upsert(context.Background(), SettingsKey{}, SettingsBlob(`[]`)); err == nil {
		t.Fatalf("expected error for missing owner")
	}
	if _, _, err := store.Get(context.Background(), SettingsKey{}); err == nil {
		t.Fatalf("expected error for missing owner")
	}
}
