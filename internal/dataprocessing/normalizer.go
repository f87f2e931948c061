package dataprocessing

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases the input, replaces every character outside
// [a-z0-9] and whitespace with a space, collapses whitespace runs and trims
// the ends. The function is total and idempotent; empty input yields the
// empty string.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = nonAlphanumeric.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
