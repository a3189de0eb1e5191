package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Values above this are assumed to be mis-parsed digit runs, not amounts.
var maxReasonableValue = decimal.NewFromInt(10_000_000)

// ParseBRValue parses a number in Brazilian convention ("1.976,70" -> 1976.70).
// Returns nil unless 0 < value < 10,000,000.
func ParseBRValue(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil
	}
	if !value.IsPositive() || !value.LessThan(maxReasonableValue) {
		return nil
	}
	return &value
}

// ParseBRDate converts "20/02/2026" to "2026-02-20". Tokens that are not a
// real calendar date are treated as not recovered.
func ParseBRDate(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ""
	}
	iso := parts[2] + "-" + parts[1] + "-" + parts[0]
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return ""
	}
	return iso
}

// monthNumbers maps lowercase month names (cedilla folded) to "01".."12".
var monthNumbers = map[string]string{
	"janeiro": "01", "fevereiro": "02", "marco": "03", "abril": "04",
	"maio": "05", "junho": "06", "julho": "07", "agosto": "08",
	"setembro": "09", "outubro": "10", "novembro": "11", "dezembro": "12",
}

// monthNumber resolves a spelled-out Portuguese month name, case-insensitive
// and tolerant of the missing cedilla in OCR output ("Marco").
func monthNumber(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, "ç", "c")
	return monthNumbers[key]
}

// firstValue runs the patterns in order over text and returns the first
// capture group that parses into an accepted value.
func firstValue(text string, patterns []*regexp.Regexp) *decimal.Decimal {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if v := ParseBRValue(m[1]); v != nil {
				return v
			}
		}
	}
	return nil
}

// firstDate runs the patterns in order and returns the first capture group
// that normalizes into an ISO date.
func firstDate(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if d := ParseBRDate(strings.ReplaceAll(m[1], ".", "/")); d != "" {
				return d
			}
		}
	}
	return ""
}
