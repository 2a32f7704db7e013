package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"punctuation and double space", "Hello, World!  Test", "hello-world-test"},
		{"simple title", "Go Concurrency Patterns", "go-concurrency-patterns"},
		{"existing hyphens collapse", "already--hyphen---ated", "already-hyphen-ated"},
		{"leading and trailing noise", "  ***Breaking News***  ", "breaking-news"},
		{"digits survive", "Top 10 Articles of 2026", "top-10-articles-of-2026"},
		{"only special characters", "!!!", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestCalculateReadTime(t *testing.T) {
	assert.Equal(t, 1, CalculateReadTime(""))
	assert.Equal(t, 1, CalculateReadTime("a few words only"))

	// 200 words exactly is one minute; one more tips it over.
	twoHundred := strings.TrimSpace(strings.Repeat("word ", 200))
	assert.Equal(t, 1, CalculateReadTime(twoHundred))
	assert.Equal(t, 2, CalculateReadTime(twoHundred+" extra"))

	// HTML tags and markdown markers are not words.
	assert.Equal(t, 1, CalculateReadTime("<p># **bold** `code`</p>"))
}
