// Package ui holds stateless presentation helpers: formatting, debouncing,
// button state and the cart-count badge.
package ui

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// InvalidDate is returned by FormatDate for unparseable input
const InvalidDate = "Invalid Date"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatCurrency renders amount as US dollars, e.g. $1,234.50 or -$5.00
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	return sign + "$" + usPrinter.Sprintf("%.2f", amount)
}

// ParseDate accepts RFC 3339 timestamps, zone-less ISO timestamps and plain dates
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as "Jan 2, 2006"
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("Jan 2, 2006")
}
