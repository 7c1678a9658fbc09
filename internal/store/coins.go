package store

import (
	"context"
	"log/slog"
	"strconv"

	"cuppa/internal/kv"
)

// DefaultCoins is the starting balance granted on first read.
const DefaultCoins = 1000

// CoinStore holds the virtual currency balance. Spend is the sole enforcement
// point preventing a negative balance; callers must not bypass it.
type CoinStore struct {
	kv kv.Store
}

func NewCoinStore(store kv.Store) *CoinStore {
	return &CoinStore{kv: store}
}

// Coins returns the current balance, defaulting to DefaultCoins when no value
// has been persisted yet or the persisted value cannot be parsed.
func (s *CoinStore) Coins(ctx context.Context) int {
	raw, ok, err := s.kv.Get(ctx, kv.KeyCoins)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read coin balance, using default", "error", err)
		return DefaultCoins
	}
	if !ok {
		return DefaultCoins
	}

	balance, err := strconv.Atoi(raw)
	if err != nil {
		slog.WarnContext(ctx, "Failed to parse coin balance, using default",
			"value", raw, "error", err)
		return DefaultCoins
	}
	return balance
}

// Add unconditionally increases the balance and returns the new total.
func (s *CoinStore) Add(ctx context.Context, amount int) (int, error) {
	total := s.Coins(ctx) + amount
	if err := s.kv.Set(ctx, kv.KeyCoins, strconv.Itoa(total)); err != nil {
		return 0, err
	}
	return total, nil
}

// Spend deducts amount if the balance covers it. It returns false, leaving
// the balance untouched, when funds are insufficient; that is a normal
// outcome, not an error.
func (s *CoinStore) Spend(ctx context.Context, amount int) (bool, error) {
	current := s.Coins(ctx)
	if current < amount {
		return false, nil
	}
	if err := s.kv.Set(ctx, kv.KeyCoins, strconv.Itoa(current-amount)); err != nil {
		return false, err
	}
	return true, nil
}

// Reset restores the default starting balance.
func (s *CoinStore) Reset(ctx context.Context) error {
	return s.kv.Set(ctx, kv.KeyCoins, strconv.Itoa(DefaultCoins))
}
