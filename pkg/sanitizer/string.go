// Package sanitizer normalizes free-text input before it is validated
// and stored.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s and collapses every run of whitespace into a
// single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		result.WriteRune(r)
		lastWasSpace = false
	}
	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCategory lower-cases a catalog category so "Home  Cleaning" and
// "home cleaning" are the same category.
func NormalizeCategory(category string) string {
	return strings.ToLower(TrimAndNormalize(category))
}

// NormalizeText trims multi-line text such as notes and review comments
// without touching inner line breaks.
func NormalizeText(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}
