package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanSlug normalizes a course slug into its canonical lookup key.
func CleanSlug(slug string) string {
	return CleanString(slug, true /* lower */)
}
