package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// RoundTo rounds half away from zero to the given number of decimal places.
func RoundTo(number float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(number).Round(places).Float64()
	return f
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TrimPtr trims an optional string in place, keeping nil as nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
