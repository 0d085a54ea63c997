package auth

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// SanitizeUsername removes any HTML and trims whitespace from a username
func SanitizeUsername(username string) string {
	cleaned := policy.Sanitize(username)
	return strings.TrimSpace(cleaned)
}

// SanitizeString is a generic sanitizer for user-supplied text fields
func SanitizeString(input string) string {
	return policy.Sanitize(input)
}
