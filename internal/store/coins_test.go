package store

import (
	"context"
	"testing"

	"cuppa/internal/kv"
)

func TestCoinStoreDefaultBalance(t *testing.T) {
	s := NewCoinStore(kv.NewMemory())
	if got := s.Coins(context.Background()); got != DefaultCoins {
		t.Errorf("Coins on fresh store = %d, want %d", got, DefaultCoins)
	}
}

func TestCoinStoreAdd(t *testing.T) {
	ctx := context.Background()
	s := NewCoinStore(kv.NewMemory())

	total, err := s.Add(ctx, 100)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if total != DefaultCoins+100 {
		t.Errorf("Add returned %d, want %d", total, DefaultCoins+100)
	}
	if got := s.Coins(ctx); got != total {
		t.Errorf("Coins = %d, want %d", got, total)
	}
}

func TestCoinStoreSpend(t *testing.T) {
	ctx := context.Background()
	s := NewCoinStore(kv.NewMemory())

	ok, err := s.Spend(ctx, 800)
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if !ok {
		t.Fatal("Spend within balance should succeed")
	}
	if got := s.Coins(ctx); got != 200 {
		t.Errorf("Coins after spend = %d, want 200", got)
	}

	// Overdraft fails without mutating the balance.
	ok, err = s.Spend(ctx, 201)
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if ok {
		t.Error("Spend beyond balance should fail")
	}
	if got := s.Coins(ctx); got != 200 {
		t.Errorf("failed spend mutated balance: %d, want 200", got)
	}

	// Exact balance is spendable, never below zero.
	if ok, _ = s.Spend(ctx, 200); !ok {
		t.Error("spending the exact balance should succeed")
	}
	if got := s.Coins(ctx); got != 0 {
		t.Errorf("Coins = %d, want 0", got)
	}
}

func TestCoinStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewCoinStore(kv.NewMemory())
	if _, err := s.Add(ctx, 500); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := s.Coins(ctx); got != DefaultCoins {
		t.Errorf("Coins after reset = %d, want %d", got, DefaultCoins)
	}
}

func TestCoinStoreCorruptValueUsesDefault(t *testing.T) {
	s := NewCoinStore(kv.NewMemorySeeded(map[string]string{kv.KeyCoins: "lots"}))
	if got := s.Coins(context.Background()); got != DefaultCoins {
		t.Errorf("corrupt balance should read as default, got %d", got)
	}
}
