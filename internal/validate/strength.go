package validate

import "strings"

// Strength is the password-strength classification shown next to the
// registration field.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

const punctuation = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// CheckStrength scores a password 0-6: one point each for length >= 8,
// length >= 12, and the presence of upper case, lower case, digits, and
// punctuation. Scores <= 2 are weak, 3-4 medium, >= 5 strong.
//
// This is a heuristic, not an entropy estimate; the thresholds are fixed
// for parity with the registration form's indicator.
func CheckStrength(password string) Strength {
	score := 0

	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		score++
	}
	if strings.ContainsAny(password, punctuation) {
		score++
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
