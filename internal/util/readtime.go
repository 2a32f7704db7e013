package util

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	markdownPattern = regexp.MustCompile("[#*_`]")
)

// CalculateReadTime estimates reading time in whole minutes for article content,
// assuming 200 words per minute after stripping HTML tags and Markdown markers.
// Always at least 1.
func CalculateReadTime(content string) int {
	plain := htmlTagPattern.ReplaceAllString(content, "")
	plain = markdownPattern.ReplaceAllString(plain, "")

	words := 0
	for _, w := range strings.Fields(plain) {
		if w != "" {
			words++
		}
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}

	return minutes
}
