package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultIcon marks categories created implicitly (CSV import, bare form).
const DefaultIcon = "🔖"

// IconPalette is the fixed set of icons offered by the category form.
// Custom free-form icons are accepted as well.
var IconPalette = []string{"🍽️", "🛒", "🪑", "📦", "💻", "🏠", "🚗", "🍎", "🍹"}

type (
	// Month is a year-month date with no day component. The zero value
	// means "no date" and renders as an empty string.
	Month struct {
		Year  int
		Month int // 1-12
	}

	// Expense is a single recorded expense. Amount is stored as parsed,
	// in Currency's unit; an unparseable input becomes NaN and is kept.
	Expense struct {
		ID          int64
		Description string
		Amount      float64
		Currency    Currency
		Category    string // category key; may be orphaned
		Date        Month
	}

	// Category is a named, iconed expense bucket. Key is the slug derived
	// from the name at creation time and never changes afterwards.
	Category struct {
		Key  string
		Name string
		Icon string
	}
)

var (
	ErrCountMismatch   = errors.New("the number of descriptions and amounts must match")
	ErrUnknownExpense  = errors.New("unknown expense id")
	ErrUnknownCategory = errors.New("unknown category key")
	ErrEmptyName       = errors.New("empty category name")
)

// IsZero reports whether the month carries no date.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// String renders the month as "YYYY-MM", or "" for the zero value.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// ParseMonth parses "YYYY-MM". An empty string is a valid blank month.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month{}, nil
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	mon, err := strconv.Atoi(parts[1])
	if err != nil || mon < 1 || mon > 12 {
		return Month{}, fmt.Errorf("invalid month %q", s)
	}
	return Month{Year: year, Month: mon}, nil
}

// ParseAmount parses a single amount string. The decimal separator may be
// "," or "."; commas are normalized before parsing. Unparseable input
// yields NaN rather than an error; the value propagates into totals,
// keeping the ledger renderable.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// SplitEntries splits a multi-entry form value on ";" or "+" into trimmed,
// non-empty parts.
func SplitEntries(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '+'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SlugKey derives a category key from a display name: lowercase with
// whitespace runs replaced by underscores.
func SlugKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
