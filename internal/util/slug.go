// Package util contains small, dependency-free helpers shared across layers.
package util

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern    = regexp.MustCompile(`\s+`)
	slugHyphenPattern   = regexp.MustCompile(`-+`)
	slugTrimEndsPattern = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-safe slug from a human-readable name: lowercase, strip
// everything outside [a-z0-9\s-], collapse whitespace runs and repeated hyphens
// to a single hyphen, and trim hyphens at both ends.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugHyphenPattern.ReplaceAllString(slug, "-")
	slug = strings.TrimSpace(slug)

	return slugTrimEndsPattern.ReplaceAllString(slug, "")
}
