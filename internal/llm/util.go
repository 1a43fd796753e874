// Package llm - util.go provides shared utilities for model response
// processing.
package llm

import (
	"strings"
	"unicode"
)

// CleanJSONBlock strips the markdown fencing and stray leading bytes that
// models wrap around JSON payloads. Even with a JSON response MIME type
// configured, responses occasionally arrive fenced or with a BOM prefix,
// so every response is cleaned before schema validation.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF"))

	rest, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}

	// The ```json tag can sit directly against the payload.
	rest = strings.TrimPrefix(rest, "json")

	// A short bare word on the opening fence line is a language tag, not
	// payload. A line containing the payload itself stays.
	if idx := strings.Index(rest, "\n"); idx >= 0 && isFenceTag(rest[:idx]) {
		rest = rest[idx+1:]
	}

	// Unterminated fences keep the remainder as-is.
	if idx := strings.LastIndex(rest, "```"); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}

func isFenceTag(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) >= 20 {
		return false
	}
	for _, r := range line {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
