package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Coffee DrinkType = "COFFEE"
	Bubble DrinkType = "BUBBLE"
	Other  DrinkType = "OTHER"

	// legacyBoba is the pre-rename value for bubble tea. It still appears in
	// ledgers written by old versions and is canonicalized to Bubble on read.
	legacyBoba = "BOBA"
)

type (
	// DrinkType is the closed set of drink categories.
	DrinkType string

	// DrinkLog is one immutable drink purchase event. Date carries the
	// calendar day as a local-time YYYY-MM-DD string and is the only field
	// used for day/month/year bucketing; CreatedAt is audit ordering only.
	DrinkLog struct {
		ID         string    `json:"id"`
		Type       DrinkType `json:"type"`
		Amount     float64   `json:"amount"`
		Date       string    `json:"date"`
		CreatedAt  int64     `json:"createdAt"`
		Name       string    `json:"name,omitempty"`
		CustomName string    `json:"customName,omitempty"`
	}

	// LogInput is the caller-supplied part of a new drink log. Validation
	// happens at the presentation boundary via Validate; the stores accept
	// whatever they are given.
	LogInput struct {
		Type       DrinkType `json:"type"`
		Amount     float64   `json:"amount"`
		Date       string    `json:"date"`
		Name       string    `json:"name,omitempty"`
		CustomName string    `json:"customName,omitempty"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid drink type")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDate      = errors.New("invalid date")
	ErrConflictingNames = errors.New("name and customName are mutually exclusive")
)

// ParseDrinkType canonicalizes a raw type value, accepting the legacy BOBA
// alias for Bubble. Unknown values are rejected.
func ParseDrinkType(raw string) (DrinkType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(Coffee):
		return Coffee, nil
	case string(Bubble), legacyBoba:
		return Bubble, nil
	case string(Other):
		return Other, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
	}
}

// IsValid reports whether t is one of the canonical drink types.
func (t DrinkType) IsValid() bool {
	switch t {
	case Coffee, Bubble, Other:
		return true
	}
	return false
}

// UnmarshalJSON canonicalizes drink types at the deserialization boundary so
// every reader sees only the closed enumeration: BOBA becomes BUBBLE here and
// nowhere else. Unknown historical values are kept verbatim rather than
// rejected because the ledger read path is fail-open.
func (t *DrinkType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == legacyBoba {
		*t = Bubble
		return nil
	}
	*t = DrinkType(raw)
	return nil
}

// Label returns the display label for a log: the first non-empty of
// Name/CustomName, preferring Name.
func (l DrinkLog) Label() string {
	if s := strings.TrimSpace(l.Name); s != "" {
		return s
	}
	return strings.TrimSpace(l.CustomName)
}

// Validate enforces the presentation-boundary contract for new logs: a
// canonical type, a positive amount, a parseable YYYY-MM-DD date and the
// name/customName split gated by type. The stores deliberately do not
// re-check any of this.
func (in LogInput) Validate() error {
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, in.Type)
	}
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if in.Date != "" {
		if _, err := ParseDate(NormalizeDate(in.Date)); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
		}
	}
	switch in.Type {
	case Other:
		if strings.TrimSpace(in.Name) != "" {
			return ErrConflictingNames
		}
	default:
		if strings.TrimSpace(in.CustomName) != "" {
			return ErrConflictingNames
		}
	}
	return nil
}

// DateLayout is the canonical calendar-day key format. Lexical comparison of
// two such strings is chronological comparison, which the whole system relies
// on instead of numeric date arithmetic.
const DateLayout = "2006-01-02"

// FormatDate renders t as a local-time YYYY-MM-DD key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD key in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// NormalizeDate truncates any ISO timestamp to its 10-character date portion.
func NormalizeDate(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}
