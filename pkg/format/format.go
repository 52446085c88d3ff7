// Package format renders raw values as display strings. Every function is
// total: malformed input yields a placeholder instead of an error, so one bad
// record never breaks list rendering.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Placeholder rendered for values that cannot be displayed.
const Placeholder = "—"

// DateStyle selects a date rendering layout.
type DateStyle int

const (
	// DateMedium renders as "Jan 2, 2006".
	DateMedium DateStyle = iota
	// DateShort renders as "01/02/2006".
	DateShort
	// DateLong renders as "January 2, 2006".
	DateLong
)

// Currency renders a decimal amount with the currency's symbol and digit
// grouping, e.g. Currency(1234.5, "USD") -> "$1,234.50". Unknown currency
// codes fall back to "CODE 1,234.50".
func Currency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return amount.StringFixed(2)
		}
		return code + " " + amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// CurrencyFloat is Currency over a float64, tolerating NaN and infinities.
func CurrencyFloat(v float64, code string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return Currency(decimal.NewFromFloat(v), code)
}

// dateLayouts are tried in order when parsing server-provided date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date renders an ISO-ish date string in the requested style. Unparseable
// input yields the placeholder.
func Date(raw string, style DateStyle) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Placeholder
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			switch style {
			case DateShort:
				return t.Format("01/02/2006")
			case DateLong:
				return t.Format("January 2, 2006")
			default:
				return t.Format("Jan 2, 2006")
			}
		}
	}
	return Placeholder
}

// Percent renders a fraction as a percentage, e.g. Percent(0.1234, 2) ->
// "12.34%". NaN and infinities yield the placeholder.
func Percent(fraction float64, decimals int) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, fraction*100)
}

// PercentDecimal is Percent over a decimal fraction.
func PercentDecimal(fraction decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fraction.Shift(2).StringFixed(int32(decimals)) + "%"
}
