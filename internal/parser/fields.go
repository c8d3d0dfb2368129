package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field extractors shared across the bank parsers. All of them are pure
// functions of the body text and return nil (or the zero value) when the
// pattern does not match.

// parseAmount converts a Chilean-formatted amount string to a number.
// Thousands separators are dots, the decimal separator is a comma:
// "1.234.567" -> 1234567, "4.380" -> 4380, "1.234,50" -> 1234.5.
func parseAmount(s string) *float64 {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return floatPtr(f)
}

// matchAmount applies an amount pattern whose first capture group is the
// numeric token (without the "$" prefix) and normalizes it.
func matchAmount(re *regexp.Regexp, body string) *float64 {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return parseAmount(m[1])
}

// matchGroup returns the first capture group of re, trimmed, or nil.
func matchGroup(re *regexp.Regexp, body string) *string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return nil
	}
	return strPtr(v)
}

// lastFour keeps the trailing 4 digits of an account or card number, so a
// full number like "269725150" yields "5150". Shorter strings are returned
// as-is when they are non-empty.
func lastFour(digits string) *string {
	if digits == "" {
		return nil
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return strPtr(digits)
}

// slashDateTime builds an ISO-8601 timestamp with the fixed Chilean -03:00
// offset from a "dd/mm/yyyy" date and an "H:MM" or "HH:MM" time.
func slashDateTime(date, clock string) *string {
	dp := strings.Split(date, "/")
	if len(dp) != 3 {
		return nil
	}
	tp := strings.Split(clock, ":")
	if len(tp) != 2 {
		return nil
	}
	hour, err := strconv.Atoi(tp[0])
	if err != nil {
		return nil
	}
	return strPtr(fmt.Sprintf("%s-%s-%sT%02d:%s:00-03:00", dp[2], dp[1], dp[0], hour, tp[1]))
}

// clock12To24 converts a 12-hour clock reading with a Spanish period marker
// ("a" for a.m., "p" for p.m.) to a 24-hour value. 12 a.m. is 0, 12 p.m.
// stays 12, every other p.m. hour gains 12.
func clock12To24(hour int, marker string) int {
	switch strings.ToLower(marker) {
	case "p":
		if hour != 12 {
			hour += 12
		}
	case "a":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

// spanishMonths maps lowercase Spanish month names to their two-digit number.
var spanishMonths = map[string]string{
	"enero":      "01",
	"febrero":    "02",
	"marzo":      "03",
	"abril":      "04",
	"mayo":       "05",
	"junio":      "06",
	"julio":      "07",
	"agosto":     "08",
	"septiembre": "09",
	"octubre":    "10",
	"noviembre":  "11",
	"diciembre":  "12",
}

// monthNumber resolves a Spanish month name, defaulting to "01" when the
// name is not recognized.
func monthNumber(name string) string {
	if n, ok := spanishMonths[strings.ToLower(name)]; ok {
		return n
	}
	return "01"
}

// proseDate builds a midnight timestamp from the prose form found in
// transfer emails: "el día 20 de febrero de 2026".
func proseDate(day, monthName, year string) *string {
	d, err := strconv.Atoi(day)
	if err != nil {
		return nil
	}
	return strPtr(fmt.Sprintf("%s-%s-%02dT00:00:00-03:00", year, monthNumber(monthName), d))
}
