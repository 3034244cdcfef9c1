package shared

import "strings"

// NormalizeEmail lowercases and trims an email address. Every storage
// lookup and comparison goes through this so uniqueness stays
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
