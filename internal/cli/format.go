// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHours formats an hours value without trailing zeros.
// e.g., 7 -> "7h", 7.5 -> "7.5h", 0.25 -> "0.25h"
func FormatHours(h float64) string {
	return trimFloat(h, 2) + "h"
}

// FormatTotal formats a total-hours figure the way the live banner shows it.
func FormatTotal(h float64) string {
	return trimFloat(h, 2) + " hours"
}

// FormatDays formats a day count rounded to whole days with separators.
// e.g., 2661.46 -> "2,661"
func FormatDays(d float64) string {
	return FormatNumber(int64(math.Round(d)))
}

// FormatDaysCompact formats a day count with human-readable suffixes.
// e.g., 950 -> "950", 12345 -> "12.3K"
func FormatDaysCompact(d float64) string {
	n := math.Round(d)
	abs := math.Abs(n)

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return FormatNumber(int64(n))
	}
}

// FormatYears converts a day count into years with one decimal.
func FormatYears(days float64) string {
	return fmt.Sprintf("%.1fy", days/365)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
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

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a signed difference, e.g. +5 or -15.
func FormatDelta(delta float64) string {
	if delta >= 0 {
		return "+" + trimFloat(delta, 1)
	}
	return "-" + trimFloat(-delta, 1)
}

// trimFloat formats f with at most prec decimals, dropping trailing zeros.
func trimFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
