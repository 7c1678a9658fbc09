package derive

import (
	"math"

	"cuppa/internal/core"
)

// Summary aggregates a window of logs for the overview card.
type Summary struct {
	Cups       int     `json:"cups"`
	TotalSpent float64 `json:"totalSpent"`
	AvgPerCup  float64 `json:"avgPerCup"`
}

// Summarize computes cup count, total spending and average per cup.
func Summarize(logs []core.DrinkLog) Summary {
	s := Summary{Cups: len(logs)}
	for _, l := range logs {
		s.TotalSpent += l.Amount
	}
	if s.Cups > 0 {
		s.AvgPerCup = s.TotalSpent / float64(s.Cups)
	}
	return s
}

// Progress is the budget progress read model. Percent is always within
// [0, 100] no matter how far spending exceeds the budget; Remaining never
// goes negative. With no positive budget configured both are zero and
// HasBudget is false.
type Progress struct {
	HasBudget  bool    `json:"hasBudget"`
	Budget     float64 `json:"budget,omitempty"`
	MonthSpent float64 `json:"monthSpent"`
	Percent    float64 `json:"percent"`
	Remaining  float64 `json:"remaining"`
}

// BudgetProgress derives budget progress from the month's spending and the
// configured budget snapshot.
func BudgetProgress(monthSpent, budget float64, hasBudget bool) Progress {
	p := Progress{MonthSpent: monthSpent}
	if !hasBudget || budget <= 0 {
		return p
	}
	p.HasBudget = true
	p.Budget = budget
	p.Percent = math.Min(monthSpent/budget*100, 100)
	if p.Percent < 0 {
		p.Percent = 0
	}
	p.Remaining = math.Max(0, budget-monthSpent)
	return p
}

// Coin rewards for logging a drink. Staying within budget earns the full
// reward; a log that would push the month over a configured budget earns the
// reduced one.
const (
	RewardFull       = 100
	RewardOverBudget = 20
)

// Reward decides the coin award for a new log of the given amount. The
// projection uses the month's spending BEFORE the log is persisted plus the
// new amount; taking the pre-persist total as a parameter is what pins the
// compute-projection, decide-reward, persist, award ordering.
func Reward(monthSpentBefore, amount, budget float64, hasBudget bool) int {
	if hasBudget && budget > 0 && monthSpentBefore+amount > budget {
		return RewardOverBudget
	}
	return RewardFull
}
