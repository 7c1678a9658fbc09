// Package services provides the orchestration layer between the HTTP boundary
// and the stores. The derivation logic itself lives in derive; this package
// only sequences store reads and writes around it.
package services

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"cuppa/internal/catalog"
	"cuppa/internal/core"
	"cuppa/internal/derive"
	"cuppa/internal/metrics"
	"cuppa/internal/store"
)

var (
	ErrUnknownCup        = errors.New("unknown cup")
	ErrCupAlreadyOwned   = errors.New("cup already owned")
	ErrCupNotOwned       = errors.New("cup not owned")
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// HabitService orchestrates the drink log, budget, coin and cup stores.
type HabitService struct {
	logs   *store.DrinkLogStore
	budget *store.BudgetStore
	coins  *store.CoinStore
	cups   *store.CupStore
	now    func() time.Time
}

func NewHabitService(logs *store.DrinkLogStore, budget *store.BudgetStore, coins *store.CoinStore, cups *store.CupStore) *HabitService {
	return &HabitService{
		logs:   logs,
		budget: budget,
		coins:  coins,
		cups:   cups,
		now:    time.Now,
	}
}

// LogResult is the outcome of logging a drink.
type LogResult struct {
	Log     core.DrinkLog `json:"log"`
	Reward  int           `json:"reward"`
	Balance int           `json:"balance"`
}

// LogDrink records a drink and awards coins. The order is fixed: take the
// month-spent snapshot, decide the reward from the projected total, persist
// the log, then award the coins. Persisting the log and awarding the coins
// are two independent writes with no atomicity between them; a failure in
// between leaves a persisted log with coins unawarded, which is an accepted
// inconsistency window of this design.
//
// Input validation is the caller's contract (LogInput.Validate at the
// presentation boundary); nothing is re-checked here.
func (s *HabitService) LogDrink(ctx context.Context, in core.LogInput) (LogResult, error) {
	spentBefore := s.logs.CurrentMonthSpent(ctx)
	budget, hasBudget := s.budget.MonthlyBudget(ctx)
	reward := derive.Reward(spentBefore, in.Amount, budget, hasBudget)

	entry, err := s.logs.Add(ctx, in)
	if err != nil {
		return LogResult{}, err
	}
	metrics.DrinksLogged.WithLabelValues(string(entry.Type)).Inc()

	balance, err := s.coins.Add(ctx, reward)
	if err != nil {
		slog.ErrorContext(ctx, "Drink logged but coin award failed",
			"id", entry.ID, "reward", reward, "error", err)
		return LogResult{}, err
	}
	metrics.CoinsAwarded.Add(float64(reward))

	slog.InfoContext(ctx, "Coins awarded",
		"reward", reward,
		"balance", balance,
		"over_budget", reward == derive.RewardOverBudget)

	return LogResult{Log: entry, Reward: reward, Balance: balance}, nil
}

// PurchaseCup buys a catalog cup with coins and adds it to the owned set.
// Insufficient funds and double purchases are sentinel-error outcomes, not
// failures; the coin store's Spend remains the only negative-balance guard.
func (s *HabitService) PurchaseCup(ctx context.Context, id int) error {
	cup, ok := catalog.Lookup(id)
	if !ok {
		return ErrUnknownCup
	}
	if s.cups.IsOwned(ctx, id) {
		return ErrCupAlreadyOwned
	}

	paid, err := s.coins.Spend(ctx, cup.Price)
	if err != nil {
		return err
	}
	if !paid {
		return ErrInsufficientCoins
	}

	if err := s.cups.AddOwned(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Coins spent but ownership update failed",
			"cup", id, "price", cup.Price, "error", err)
		return err
	}
	metrics.CupPurchases.Inc()
	metrics.CoinsSpent.Add(float64(cup.Price))

	slog.InfoContext(ctx, "Cup purchased", "cup", id, "name", cup.Name, "price", cup.Price)
	return nil
}

// SelectCup makes an owned cup the current one. Only owned cups are
// selectable here; the store-level setter stays unvalidated by design.
func (s *HabitService) SelectCup(ctx context.Context, id int) error {
	if !s.cups.IsOwned(ctx, id) {
		return ErrCupNotOwned
	}
	return s.cups.SetCurrent(ctx, id)
}

// SetBudget stores a positive monthly budget or clears it for value <= 0.
func (s *HabitService) SetBudget(ctx context.Context, value float64) error {
	return s.budget.SetMonthlyBudget(ctx, value)
}

// Budget returns the monthly budget and whether one is set.
func (s *HabitService) Budget(ctx context.Context) (float64, bool) {
	return s.budget.MonthlyBudget(ctx)
}

// Logs returns the full ledger in insertion order.
func (s *HabitService) Logs(ctx context.Context) []core.DrinkLog {
	return s.logs.Logs(ctx)
}

// ClearLogs deletes the entire ledger.
func (s *HabitService) ClearLogs(ctx context.Context) error {
	return s.logs.Clear(ctx)
}

// Coins returns the current coin balance.
func (s *HabitService) Coins(ctx context.Context) int {
	return s.coins.Coins(ctx)
}

// ResetCoins restores the coin balance to its starting value.
func (s *HabitService) ResetCoins(ctx context.Context) error {
	return s.coins.Reset(ctx)
}

// ResetCups restores cup ownership and selection to the defaults.
func (s *HabitService) ResetCups(ctx context.Context) error {
	if err := s.cups.ResetOwned(ctx); err != nil {
		return err
	}
	return s.cups.SetCurrent(ctx, store.DefaultCupID)
}

// Dashboard is the home screen read model.
type Dashboard struct {
	Today      []core.DrinkLog `json:"today"`
	Progress   derive.Progress `json:"progress"`
	Coins      int             `json:"coins"`
	CurrentCup int             `json:"currentCup"`
	OwnedCups  []int           `json:"ownedCups"`
	NewDay     bool            `json:"newDay"`
}

// BuildDashboard assembles the home screen state. It flips the new-day marker
// as a side effect, which is the marker's only writer.
func (s *HabitService) BuildDashboard(ctx context.Context) Dashboard {
	newDay := s.logs.CheckNewDayAndReset(ctx)
	now := s.now()

	budget, hasBudget := s.budget.MonthlyBudget(ctx)
	spent := s.logs.CurrentMonthSpent(ctx)

	return Dashboard{
		Today:      derive.TodayLogs(s.logs.Logs(ctx), now),
		Progress:   derive.BudgetProgress(spent, budget, hasBudget),
		Coins:      s.coins.Coins(ctx),
		CurrentCup: s.cups.Current(ctx),
		OwnedCups:  s.cups.Owned(ctx),
		NewDay:     newDay,
	}
}

// CategoryNames pairs a ranked category with its ranked drink names.
type CategoryNames struct {
	Type  core.DrinkType     `json:"type"`
	Count int                `json:"count"`
	Names []derive.NameCount `json:"names"`
}

// Overview is the overview screen read model for one window.
type Overview struct {
	Window        derive.Window     `json:"window"`
	Logs          []core.DrinkLog   `json:"logs"`
	Summary       derive.Summary    `json:"summary"`
	TopCategories []CategoryNames   `json:"topCategories"`
	Calendar      []derive.DayMarks `json:"calendar"`
}

// BuildOverview derives the overview for the window around ref: filtered
// logs, their summary, the top categories each with their top drink names,
// and the calendar markers for ref's month.
func (s *HabitService) BuildOverview(ctx context.Context, window derive.Window, ref time.Time) Overview {
	all := s.logs.Logs(ctx)
	filtered := derive.Filter(all, window, ref)

	ranked := derive.TopCategories(filtered)
	topCategories := make([]CategoryNames, 0, len(ranked))
	for _, c := range ranked {
		topCategories = append(topCategories, CategoryNames{
			Type:  c.Type,
			Count: c.Count,
			Names: derive.TopNames(filtered, c.Type),
		})
	}

	return Overview{
		Window:        window,
		Logs:          filtered,
		Summary:       derive.Summarize(filtered),
		TopCategories: topCategories,
		Calendar:      derive.MonthMarks(all, ref),
	}
}

// CupListing merges the static catalog with ownership and selection state.
type CupListing struct {
	catalog.Cup
	Owned   bool `json:"owned"`
	Current bool `json:"current"`
}

// ListCups returns every catalog cup annotated with ownership and selection.
func (s *HabitService) ListCups(ctx context.Context) []CupListing {
	current := s.cups.Current(ctx)
	owned := s.cups.Owned(ctx)

	all := catalog.All()
	listings := make([]CupListing, 0, len(all))
	for _, cup := range all {
		listings = append(listings, CupListing{
			Cup:     cup,
			Owned:   slices.Contains(owned, cup.ID),
			Current: cup.ID == current,
		})
	}
	return listings
}
