package identifier

import "strings"

// NormalizePhone strips everything except digits and a leading "+".
func NormalizePhone(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LookupVariants returns the ordered phone formats to try against the phone
// index: the normalized input, its last ten digits, and the last ten digits
// with "91" and "+91" country prefixes. The "+91" form is what the index
// holds for a number submitted as "+91 XXXXXXXXXX", so a bare ten-digit
// lookup still resolves it. Duplicates are dropped, order preserved.
func LookupVariants(s string) []string {
	clean := NormalizePhone(s)
	variants := []string{clean}
	digits := strings.TrimPrefix(clean, "+")
	if len(digits) >= 10 {
		last10 := digits[len(digits)-10:]
		variants = append(variants, last10, "91"+last10, "+91"+last10)
	}

	seen := make(map[string]struct{}, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if _, dup := seen[v]; dup || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
