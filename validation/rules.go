// Package validation holds the client-side input rules shared by forms and
// API payloads.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like local@domain.tld
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword reports whether password meets the minimum length
func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
