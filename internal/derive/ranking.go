package derive

import (
	"sort"
	"strings"

	"cuppa/internal/core"
)

// topN is how many entries each ranking keeps.
const topN = 3

// CategoryCount is one entry of the category ranking.
type CategoryCount struct {
	Type  core.DrinkType `json:"type"`
	Count int            `json:"count"`
}

// NameCount is one entry of the per-category name ranking. Name carries the
// first-seen casing as the display form.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopCategories groups the logs by type and returns up to three categories by
// descending count. Ties keep first-seen order: the category whose first log
// appears earlier in the window ranks higher.
func TopCategories(logs []core.DrinkLog) []CategoryCount {
	counts := make(map[core.DrinkType]int)
	var order []core.DrinkType
	for _, l := range logs {
		if counts[l.Type] == 0 {
			order = append(order, l.Type)
		}
		counts[l.Type]++
	}

	ranked := make([]CategoryCount, 0, len(order))
	for _, typ := range order {
		ranked = append(ranked, CategoryCount{Type: typ, Count: counts[typ]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// TopNames ranks the drink labels within one category by descending count,
// up to three. Labels are grouped case-insensitively on the trimmed first
// non-empty of name/customName; the first-seen casing is kept for display.
// Unnamed logs are excluded from this ranking (they still count toward the
// category total). Ties keep first-seen order.
func TopNames(logs []core.DrinkLog, typ core.DrinkType) []NameCount {
	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string

	for _, l := range logs {
		if l.Type != typ {
			continue
		}
		label := l.Label()
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if counts[key] == 0 {
			order = append(order, key)
			display[key] = label
		}
		counts[key]++
	}

	ranked := make([]NameCount, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, NameCount{Name: display[key], Count: counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
