package utils

import (
	"regexp"
	"strings"
)

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

func NilIfEmpty[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

var unsafeFilenameChars = regexp.MustCompile(`[\x00-\x1f/\\<>:"|?*]+`)

// SanitizeFilename turns a client name into something safe for a
// Content-Disposition filename. Collapses runs of unsafe characters into a
// single underscore; never returns an empty string.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "_")
	s = strings.Trim(strings.TrimSpace(s), ".")
	if s == "" {
		return "report"
	}
	return s
}
