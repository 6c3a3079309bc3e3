// Package normalize converts free-text locations to IATA codes and repairs
// ambiguous travel dates before they reach the booking supplier.
//
// Both functions are best-effort: they never fail, they degrade to returning
// the input (or a documented fallback) and log the problem.
package normalize

import (
	"log/slog"
	"strings"
	"time"
	"unicode"
)

// cityToIATA maps well-known city names to the airport code the supplier
// expects. Matching is case-insensitive substring in either direction, so
// "Lagos, Nigeria" and "lag" both resolve to LOS.
var cityToIATA = map[string]string{
	"lagos":         "LOS",
	"london":        "LHR",
	"new york":      "JFK",
	"paris":         "CDG",
	"tokyo":         "NRT",
	"dubai":         "DXB",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"toronto":       "YYZ",
	"sydney":        "SYD",
	"mumbai":        "BOM",
	"delhi":         "DEL",
	"singapore":     "SIN",
	"hong kong":     "HKG",
	"bangkok":       "BKK",
}

// DateLayout is the wire format for all supplier dates.
const DateLayout = "2006-01-02"

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

// ToIATACode converts a city or country name to a 3-letter airport code.
//
// Rules, in order: a trimmed 3-letter alphabetic input is already a code and
// is returned uppercased; otherwise the city table is consulted with
// case-insensitive substring matching in either direction; otherwise the
// first three letters of the first word are uppercased. Empty input is
// returned unchanged.
func ToIATACode(location string) string {
	if location == "" {
		return location
	}

	clean := strings.ToUpper(strings.TrimSpace(location))
	if len(clean) == 3 && isAlpha(clean) {
		return clean
	}

	lower := strings.ToLower(strings.TrimSpace(location))
	for city, code := range cityToIATA {
		if strings.Contains(lower, city) || strings.Contains(city, lower) {
			return code
		}
	}

	words := strings.Fields(location)
	if len(words) > 0 && len(words[0]) >= 3 {
		return strings.ToUpper(words[0][:3])
	}

	return location
}

// Date repairs a YYYY-MM-DD date relative to the reference date.
//
// A date strictly before ref is assumed to mean the same day next year and
// is advanced by one year. If returnDate is supplied and the advanced
// departure would land after it, the year is retreated by one instead, so a
// round trip stays ordered. Malformed input is returned unchanged and logged
// as a warning.
func Date(dateStr string, ref time.Time, returnDate string) string {
	if dateStr == "" {
		return dateStr
	}

	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		slog.Warn("failed to normalize date", "input", dateStr, "error", err)
		return dateStr
	}

	if d.Before(ref) {
		d = d.AddDate(1, 0, 0)
	}

	if returnDate != "" {
		if ret, err := time.Parse(DateLayout, returnDate); err == nil {
			if d.After(ret) {
				d = d.AddDate(-1, 0, 0)
			}
		}
	}

	return d.Format(DateLayout)
}
