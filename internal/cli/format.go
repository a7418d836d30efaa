// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with comma grouping and two decimal
// places. e.g., 1234567.8 -> "1,234,567.80", -45 -> "-45.00"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	grouped := groupThousands(intPart)
	if neg {
		return "-" + grouped + frac
	}
	return grouped + frac
}

// FormatSignedMoney is FormatMoney with an explicit leading sign for
// non-negative values. e.g., 250 -> "+250.00"
func FormatSignedMoney(d decimal.Decimal) string {
	if d.Sign() < 0 {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation for a date.
func FormatDayOfWeek(t time.Time) string {
	return t.Format("Mon")
}
