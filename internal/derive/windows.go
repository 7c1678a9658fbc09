// Package derive holds the stateless derivation and policy layer: time-window
// filters, spending summaries, budget progress, the coin reward rule and the
// category/name rankings. Every function is a pure function of its inputs —
// store snapshots and a reference instant — and holds no cache, so callers
// always see freshly computed results.
package derive

import (
	"time"

	"cuppa/internal/core"
)

// Window selects the time span a derivation covers.
type Window string

const (
	Day   Window = "day"
	Week  Window = "week"
	Month Window = "month"
	Year  Window = "year"
)

// ParseWindow maps a raw string to a Window, defaulting to Month.
func ParseWindow(raw string) Window {
	switch Window(raw) {
	case Day, Week, Month, Year:
		return Window(raw)
	default:
		return Month
	}
}

// Filter returns the logs whose date falls within the window around ref,
// preserving ledger order. Day and week comparisons are lexical on the
// YYYY-MM-DD key; month and year compare the key's prefixes against ref.
func Filter(logs []core.DrinkLog, window Window, ref time.Time) []core.DrinkLog {
	var keep func(date string) bool
	switch window {
	case Day:
		today := core.FormatDate(ref)
		keep = func(date string) bool { return date == today }
	case Week:
		start, end := weekBounds(ref)
		keep = func(date string) bool { return date >= start && date <= end }
	case Year:
		prefix := ref.Format("2006")
		keep = func(date string) bool { return len(date) >= 4 && date[:4] == prefix }
	default: // Month
		prefix := ref.Format("2006-01")
		keep = func(date string) bool { return len(date) >= 7 && date[:7] == prefix }
	}

	var out []core.DrinkLog
	for _, l := range logs {
		if keep(core.NormalizeDate(l.Date)) {
			out = append(out, l)
		}
	}
	return out
}

// TodayLogs returns the logs dated on the calendar day containing ref.
func TodayLogs(logs []core.DrinkLog, ref time.Time) []core.DrinkLog {
	return Filter(logs, Day, ref)
}

// weekBounds returns the YYYY-MM-DD keys of the Sunday and Saturday of the
// week containing ref. Weeks start on Sunday (weekday index 0).
func weekBounds(ref time.Time) (start, end string) {
	offset := int(ref.Weekday())
	sunday := ref.AddDate(0, 0, -offset)
	saturday := sunday.AddDate(0, 0, 6)
	return core.FormatDate(sunday), core.FormatDate(saturday)
}

// DayMarks describes which drink categories appear on one calendar day,
// feeding the calendar grid indicators.
type DayMarks struct {
	Date      string `json:"date"`
	HasCoffee bool   `json:"hasCoffee"`
	HasBubble bool   `json:"hasBubble"`
	HasOther  bool   `json:"hasOther"`
	Count     int    `json:"count"`
}

// MarksFor computes the category indicators for the given calendar day.
func MarksFor(logs []core.DrinkLog, date string) DayMarks {
	marks := DayMarks{Date: date}
	for _, l := range logs {
		if core.NormalizeDate(l.Date) != date {
			continue
		}
		marks.Count++
		switch l.Type {
		case core.Coffee:
			marks.HasCoffee = true
		case core.Bubble:
			marks.HasBubble = true
		case core.Other:
			marks.HasOther = true
		}
	}
	return marks
}

// MonthMarks computes DayMarks for every day of the month containing ref that
// has at least one log.
func MonthMarks(logs []core.DrinkLog, ref time.Time) []DayMarks {
	daysInMonth := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	var out []DayMarks
	for day := 1; day <= daysInMonth; day++ {
		date := core.FormatDate(time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, time.Local))
		if marks := MarksFor(logs, date); marks.Count > 0 {
			out = append(out, marks)
		}
	}
	return out
}
