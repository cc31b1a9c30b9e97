package models

import "regexp"

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// IsValidSlug reports whether s is usable as a post identifier and storage
// key stem: 2-128 characters, lowercase alphanumeric, interior hyphens only.
func IsValidSlug(s string) bool {
	return len(s) >= 2 && len(s) <= 128 && slugPattern.MatchString(s)
}
