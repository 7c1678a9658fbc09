// Package kv defines the key-value persistence port the stores are built on,
// plus its memory and SQLite implementations. The persisted key space is
// logically partitioned one key per store; no store reads another store's key.
package kv

import "context"

// Store is the persistence port. Values are opaque serialized strings; the
// stores own their own encoding. Get reports ok=false for an absent key
// without an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Persisted key names, carried over unchanged from earlier versions so
// existing data keeps working.
const (
	KeyLogs          = "cup_habit_logs"
	KeyLastOpenDate  = "cup_habit_last_open_date"
	KeyMonthlyBudget = "cup_habit_monthly_budget"
	KeyCoins         = "cup_habit_coins"
	KeyOwnedCups     = "cup_habit_owned_cups"
	KeyCurrentCup    = "cup_habit_current_cup"
)
