package service

import "strings"

// Password length bounds enforced by the strength check.
const (
	minPasswordLength = 6
	maxPasswordLength = 100
)

// weakPasswords is a static blacklist of passwords too common to accept.
// The comparison is case-insensitive.
var weakPasswords = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"123456789":   {},
	"qwerty":      {},
	"abc123":      {},
	"password123": {},
	"admin":       {},
	"letmein":     {},
	"welcome":     {},
	"monkey":      {},
}

// CheckPasswordStrength runs the development-only strength rules and
// returns every violated rule, not just the first. An empty result means
// the password is acceptable.
//
// This is explicitly NOT a cryptographic control: it exists so the
// template demonstrates a validation flow, nothing more.
func CheckPasswordStrength(password string) []string {
	var issues []string

	if len(password) < minPasswordLength {
		issues = append(issues, "password must be at least 6 characters long")
	}
	if len(password) > maxPasswordLength {
		issues = append(issues, "password must be no more than 100 characters long")
	}
	if _, badlisted := weakPasswords[strings.ToLower(password)]; badlisted {
		issues = append(issues, "password is too common")
	}

	return issues
}

// simplePasswordCheck compares a submitted password with the stored one.
// Plain-text comparison, development only. NOT secure.
func simplePasswordCheck(plainPassword, storedPassword string) bool {
	return plainPassword == storedPassword
}
