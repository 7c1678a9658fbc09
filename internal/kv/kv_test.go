package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cuppa.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	testStore(t, store)
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, KeyCoins); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v; want absent, nil", ok, err)
	}

	if err := store.Set(ctx, KeyCoins, "1000"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := store.Get(ctx, KeyCoins)
	if err != nil || !ok || v != "1000" {
		t.Fatalf("Get = (%q, %v, %v), want (1000, true, nil)", v, ok, err)
	}

	// Overwrite
	if err := store.Set(ctx, KeyCoins, "1100"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = store.Get(ctx, KeyCoins)
	if v != "1100" {
		t.Errorf("Get after overwrite = %q, want 1100", v)
	}

	if err := store.Delete(ctx, KeyCoins); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyCoins); ok {
		t.Error("key should be absent after Delete")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete(ctx, "never_set"); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuppa.db")
	ctx := context.Background()

	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	if err := store.Set(ctx, KeyMonthlyBudget, "150"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, KeyMonthlyBudget)
	if err != nil || !ok || v != "150" {
		t.Fatalf("Get after reopen = (%q, %v, %v), want (150, true, nil)", v, ok, err)
	}
}

func TestMemorySeeded(t *testing.T) {
	store := NewMemorySeeded(map[string]string{KeyCurrentCup: "3"})
	v, ok, _ := store.Get(context.Background(), KeyCurrentCup)
	if !ok || v != "3" {
		t.Fatalf("seeded value = (%q, %v), want (3, true)", v, ok)
	}
}
