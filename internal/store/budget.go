package store

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"cuppa/internal/kv"
)

// BudgetStore holds at most one active monthly budget value. The store has no
// concept of "month": the stored value applies to whichever month is current
// at read time, and it is never auto-cleared at month boundaries. That the
// budget silently carries into the next month is intentional simplicity, not
// a bug.
type BudgetStore struct {
	kv kv.Store
}

func NewBudgetStore(store kv.Store) *BudgetStore {
	return &BudgetStore{kv: store}
}

// MonthlyBudget returns the configured budget and whether one is set. A
// stored value that is absent, unparsable, NaN or not strictly positive is
// reported as unset.
func (s *BudgetStore) MonthlyBudget(ctx context.Context) (float64, bool) {
	raw, ok, err := s.kv.Get(ctx, kv.KeyMonthlyBudget)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read monthly budget, treating as unset", "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.WarnContext(ctx, "Failed to parse monthly budget, treating as unset",
			"value", raw, "error", err)
		return 0, false
	}
	if math.IsNaN(value) || value <= 0 {
		return 0, false
	}
	return value, true
}

// SetMonthlyBudget stores a positive budget, or clears the stored budget
// entirely when value <= 0. Clearing via a non-positive value is the only
// supported removal path.
func (s *BudgetStore) SetMonthlyBudget(ctx context.Context, value float64) error {
	if value <= 0 || math.IsNaN(value) {
		return s.kv.Delete(ctx, kv.KeyMonthlyBudget)
	}
	return s.kv.Set(ctx, kv.KeyMonthlyBudget, strconv.FormatFloat(value, 'f', -1, 64))
}
