// Package core provides the domain model for the shared expense splitter:
// currencies with fixed conversion rates, expense and category records,
// and the permissive amount parsing used by the entry form.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Currency is one of the fixed, supported currency codes.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	VND Currency = "VND"
)

type currencyInfo struct {
	Symbol string
	Rate   float64 // relative to the common base unit (VND)
}

// Rates are fixed constants, not user-editable data.
var currencies = map[Currency]currencyInfo{
	EUR: {Symbol: "€", Rate: 25000},
	USD: {Symbol: "$", Rate: 23000},
	VND: {Symbol: "₫", Rate: 1},
}

// currencyOrder fixes the display order of the currency set.
var currencyOrder = []Currency{EUR, USD, VND}

// Currencies returns the supported currencies in display order.
func Currencies() []Currency {
	out := make([]Currency, len(currencyOrder))
	copy(out, currencyOrder)
	return out
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

// Symbol returns the display symbol for c, or the code itself when unknown.
func (c Currency) Symbol() string {
	if info, ok := currencies[c]; ok {
		return info.Symbol
	}
	return string(c)
}

// Rate returns the fixed conversion rate of c relative to the base unit.
// Unknown currencies return 0; the resulting NaN/Inf amounts propagate into
// totals the same way unparseable input does.
func (c Currency) Rate() float64 {
	return currencies[c].Rate
}

// Convert converts an amount between currencies by direct rate multiplication.
// No rounding is applied; rounding happens only at format time.
func Convert(amount float64, from, to Currency) float64 {
	return amount * (from.Rate() / to.Rate())
}

// FormatAmount renders a value for display. VND is rounded to a whole number
// and grouped with vi-VN thousands separators behind the symbol; other
// currencies get two decimals, the symbol prefix and the code suffix.
func FormatAmount(value float64, c Currency) string {
	if c == VND {
		return c.Symbol() + groupThousands(math.Round(value))
	}
	return c.Symbol() + strconv.FormatFloat(value, 'f', 2, 64) + " " + string(c)
}

// FormatAmountCSV renders a value as a bare numeric string suitable for a
// spreadsheet cell: VND as an integer, other currencies with two decimals.
func FormatAmountCSV(value float64, c Currency) string {
	if c == VND {
		return strconv.FormatInt(int64(math.Round(value)), 10)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// groupThousands formats a rounded value with "." separators (vi-VN locale).
func groupThousands(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatInt(int64(v), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
