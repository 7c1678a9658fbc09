// Package store implements the persistent stores of the habit tracker on top
// of the kv port: the drink log ledger, the monthly budget, the coin balance
// and the cup ownership set. Reads are fail-open: a value that cannot be
// parsed is logged and replaced by the documented default, never surfaced as
// an error to the caller.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cuppa/internal/core"
	"cuppa/internal/kv"
)

// DrinkLogStore is the append-only ledger of drink purchase events, the
// system of record for all spend and count derivations.
type DrinkLogStore struct {
	kv  kv.Store
	now func() time.Time
}

func NewDrinkLogStore(store kv.Store) *DrinkLogStore {
	return &DrinkLogStore{kv: store, now: time.Now}
}

// WithClock overrides the store's time source and returns the store.
func (s *DrinkLogStore) WithClock(now func() time.Time) *DrinkLogStore {
	s.now = now
	return s
}

// Logs returns every log ever recorded, in insertion order. An absent or
// unparsable ledger is an empty one.
func (s *DrinkLogStore) Logs(ctx context.Context) []core.DrinkLog {
	raw, ok, err := s.kv.Get(ctx, kv.KeyLogs)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read drink logs, treating as empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var logs []core.DrinkLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		slog.WarnContext(ctx, "Failed to parse drink logs, treating as empty", "error", err)
		return nil
	}
	return logs
}

// Add appends a new log to the ledger. The date is normalized to its
// 10-character YYYY-MM-DD portion, or defaults to today when empty; the store
// assigns the id and creation instant. Amount validation is the caller's
// contract, not enforced here.
func (s *DrinkLogStore) Add(ctx context.Context, in core.LogInput) (core.DrinkLog, error) {
	now := s.now()

	date := core.NormalizeDate(in.Date)
	if date == "" {
		date = core.FormatDate(now)
	}

	entry := core.DrinkLog{
		ID:         uuid.NewString(),
		Type:       in.Type,
		Amount:     in.Amount,
		Date:       date,
		CreatedAt:  now.UnixMilli(),
		Name:       in.Name,
		CustomName: in.CustomName,
	}

	logs := append(s.Logs(ctx), entry)
	encoded, err := json.Marshal(logs)
	if err != nil {
		return core.DrinkLog{}, err
	}
	if err := s.kv.Set(ctx, kv.KeyLogs, string(encoded)); err != nil {
		return core.DrinkLog{}, err
	}

	slog.InfoContext(ctx, "Drink logged",
		"id", entry.ID,
		"type", entry.Type,
		"amount", entry.Amount,
		"date", entry.Date)

	return entry, nil
}

// Clear deletes the entire ledger. Used only for resets and testing.
func (s *DrinkLogStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, kv.KeyLogs)
}

// CheckNewDayAndReset compares today against the persisted last-open-date
// marker, updates the marker, and reports whether a new day has started.
// Despite the name it never touches the ledger: it is a refresh signal for
// day-scoped views, not a data-clearing operation.
func (s *DrinkLogStore) CheckNewDayAndReset(ctx context.Context) bool {
	today := core.FormatDate(s.now())

	marker, ok, err := s.kv.Get(ctx, kv.KeyLastOpenDate)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read last-open-date marker", "error", err)
		ok = false
	}
	if ok && marker == today {
		return false
	}

	if err := s.kv.Set(ctx, kv.KeyLastOpenDate, today); err != nil {
		slog.WarnContext(ctx, "Failed to update last-open-date marker", "error", err)
	}
	return true
}

// CurrentMonthSpent sums amounts over logs dated within the calendar month
// containing now, both bounds inclusive, compared lexically on the
// YYYY-MM-DD key.
func (s *DrinkLogStore) CurrentMonthSpent(ctx context.Context) float64 {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.Local)
	start, end := core.FormatDate(first), core.FormatDate(last)

	var sum float64
	for _, l := range s.Logs(ctx) {
		date := core.NormalizeDate(l.Date)
		if date >= start && date <= end {
			sum += l.Amount
		}
	}
	return sum
}
