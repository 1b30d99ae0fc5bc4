package booking

import "strings"

// maxCardDigits is the longest card number the form accepts.
const maxCardDigits = 16

// FormatCardNumber regroups a card number into space-separated groups of
// four digits, keeping at most 16 digits. Input with fewer than four digits
// is returned unchanged. Formatting is cosmetic only; no checksum (Luhn or
// otherwise) is applied.
func FormatCardNumber(value string) string {
	digits := DigitsOnly(value)
	if len(digits) < 4 {
		return value
	}
	if len(digits) > maxCardDigits {
		digits = digits[:maxCardDigits]
	}

	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry inserts the month/year separator after two digits and caps
// the input at four digits (MM/YY).
func FormatExpiry(value string) string {
	digits := DigitsOnly(value)
	if len(digits) < 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) == 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// DigitsOnly strips everything but ASCII digits. Used for CVV and PIN input.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
