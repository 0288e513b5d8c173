package populator

import (
	"strings"
	"time"
	"unicode"

	"github.com/JaimeStill/vigil/internal/responses"
)

// DefaultCasePrefix prefixes generated case numbers.
const DefaultCasePrefix = "IR"

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// NormalizeCaseNumber returns number unless the model could not read one,
// in which case a deterministic number is derived from date.
func NormalizeCaseNumber(number, date, prefix string) string {
	n := strings.TrimSpace(number)
	if n != "" &&
		!strings.EqualFold(n, responses.Unknown) &&
		!strings.Contains(strings.ToLower(n), "not provided") {
		return n
	}
	return FallbackCaseNumber(date, prefix)
}

// FallbackCaseNumber builds "<prefix>-YYYYMMDD" from date. Unparseable dates
// fall back to the date's digits, and dates without digits to
// "<prefix>-UNDATED".
func FallbackCaseNumber(date, prefix string) string {
	if prefix == "" {
		prefix = DefaultCasePrefix
	}

	d := strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return prefix + "-" + t.Format("20060102")
		}
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, d)
	if digits != "" {
		return prefix + "-" + digits
	}

	return prefix + "-UNDATED"
}
