package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"

	"cuppa/internal/kv"
)

// DefaultCupID is the cup every user owns and starts with.
const DefaultCupID = 1

// CupStore tracks owned cup skins and the current selection. The store does
// not enforce that the current cup is owned; offering only owned cups as
// selectable is the policy layer's responsibility.
type CupStore struct {
	kv kv.Store
}

func NewCupStore(store kv.Store) *CupStore {
	return &CupStore{kv: store}
}

// Owned returns the set of owned cup ids, defaulting to {DefaultCupID}.
func (s *CupStore) Owned(ctx context.Context) []int {
	raw, ok, err := s.kv.Get(ctx, kv.KeyOwnedCups)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read owned cups, using default", "error", err)
		return []int{DefaultCupID}
	}
	if !ok {
		return []int{DefaultCupID}
	}

	var owned []int
	if err := json.Unmarshal([]byte(raw), &owned); err != nil {
		slog.WarnContext(ctx, "Failed to parse owned cups, using default",
			"value", raw, "error", err)
		return []int{DefaultCupID}
	}
	return owned
}

// IsOwned reports whether the cup id is in the owned set.
func (s *CupStore) IsOwned(ctx context.Context, id int) bool {
	return slices.Contains(s.Owned(ctx), id)
}

// AddOwned inserts a cup id into the owned set. Idempotent.
func (s *CupStore) AddOwned(ctx context.Context, id int) error {
	owned := s.Owned(ctx)
	if slices.Contains(owned, id) {
		return nil
	}
	return s.saveOwned(ctx, append(owned, id))
}

// RemoveOwned removes a cup id from the owned set. Idempotent.
func (s *CupStore) RemoveOwned(ctx context.Context, id int) error {
	owned := s.Owned(ctx)
	filtered := slices.DeleteFunc(slices.Clone(owned), func(c int) bool { return c == id })
	return s.saveOwned(ctx, filtered)
}

// ResetOwned restores the default ownership set.
func (s *CupStore) ResetOwned(ctx context.Context) error {
	return s.saveOwned(ctx, []int{DefaultCupID})
}

func (s *CupStore) saveOwned(ctx context.Context, owned []int) error {
	encoded, err := json.Marshal(owned)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, kv.KeyOwnedCups, string(encoded))
}

// Current returns the selected cup id, defaulting to DefaultCupID.
func (s *CupStore) Current(ctx context.Context) int {
	raw, ok, err := s.kv.Get(ctx, kv.KeyCurrentCup)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read current cup, using default", "error", err)
		return DefaultCupID
	}
	if !ok {
		return DefaultCupID
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		slog.WarnContext(ctx, "Failed to parse current cup, using default",
			"value", raw, "error", err)
		return DefaultCupID
	}
	return id
}

// SetCurrent overwrites the selected cup id unconditionally.
func (s *CupStore) SetCurrent(ctx context.Context, id int) error {
	return s.kv.Set(ctx, kv.KeyCurrentCup, strconv.Itoa(id))
}
