package leads

import "strings"

// NormalizePhone validates and canonicalizes a shopper phone number.
//
// Numbers with a leading + are treated as international: all non-digits are
// stripped and the remainder must be 10 to 15 digits. Anything else is
// treated as a domestic mobile number: exactly 10 digits starting 6 to 9.
// The second return reports whether the input was acceptable.
func NormalizePhone(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "+") {
		digits := keepDigits(trimmed)
		if len(digits) < 10 || len(digits) > 15 {
			return "", false
		}
		return "+" + digits, true
	}

	digits := keepDigits(trimmed)
	if len(digits) != 10 {
		return "", false
	}
	if digits[0] < '6' || digits[0] > '9' {
		return "", false
	}
	return digits, true
}

func keepDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
