// Package identifier classifies free-text input into booking identifiers and
// derives storage keys from email addresses.
package identifier

import (
	"regexp"
	"strings"
)

// Kind is the identifier class detected in a piece of text.
type Kind string

const (
	KindEmail       Kind = "email"
	KindBookingCode Kind = "booking_code"
	KindPhone       Kind = "phone"
	KindNone        Kind = "none"
)

var (
	emailPattern       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	bookingCodePattern = regexp.MustCompile(`(?i)\bATH\d+\b`)

	// Phone patterns are tried in order, most specific first. A country-coded
	// number must win over the bare ten-digit form it contains.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+91[\s-]?\d{10}`),
		regexp.MustCompile(`\b91\d{10}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\+\d{1,3}[\s-]?\d{8,12}`),
	}
)

// Classify detects what kind of booking identifier the text contains and
// returns the matched value. Precedence is fixed: email, then booking code,
// then phone, first match wins with no backtracking. An input holding both
// an email-shaped and a digit-shaped substring is therefore always an email.
func Classify(text string) (Kind, string) {
	text = strings.TrimSpace(text)

	if strings.Contains(text, "@") && strings.Contains(text, ".") {
		if m := emailPattern.FindString(text); m != "" {
			return KindEmail, m
		}
	}

	if m := bookingCodePattern.FindString(text); m != "" {
		return KindBookingCode, strings.ToUpper(m)
	}

	for _, pattern := range phonePatterns {
		if m := pattern.FindString(text); m != "" {
			return KindPhone, m
		}
	}

	return KindNone, ""
}
