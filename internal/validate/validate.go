// Package validate implements the stateless form validators and the
// password-strength heuristic.
package validate

import (
	"regexp"
	"strings"
)

// Deliberately permissive local@domain.tld shape, not full RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has a plausible email shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// MinPasswordLength is the registration minimum.
const MinPasswordLength = 8

// Password reports whether s meets the minimum length.
func Password(s string) bool {
	return len(s) >= MinPasswordLength
}

// Name reports whether s is a plausible person name (trimmed length >= 2).
func Name(s string) bool {
	return len(strings.TrimSpace(s)) >= 2
}

// ProfessionalID reports whether s is a plausible license/registration
// code (trimmed length >= 3).
func ProfessionalID(s string) bool {
	return len(strings.TrimSpace(s)) >= 3
}
