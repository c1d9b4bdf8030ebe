package ocr

import (
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Normalize cleans raw recognized text: a trailing hyphen followed by a
// line break is deleted (rejoining the split word), remaining line
// breaks become spaces, whitespace runs collapse to one space, and the
// result is trimmed. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "-\n", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
