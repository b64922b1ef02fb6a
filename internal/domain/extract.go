package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fencedBlockPattern   = regexp.MustCompile("(?s)```(?:json|markdown)?\\n?(.*?)\\n?```")
	markdownFencePattern = regexp.MustCompile("(?s)```(?:markdown)?\\n?(.*?)\\n?```")
)

// ExtractStructured recovers the payload embedded in a free-form agent reply:
// a fenced block first, then the first balanced {...} object, else the whole text.
func ExtractStructured(text string) string {
	if match := fencedBlockPattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return strings.TrimSpace(text)
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return strings.TrimSpace(text[start : i+1])
		}
	}

	return strings.TrimSpace(text)
}

// PrettyJSON indents text when it is valid JSON and returns it untouched otherwise.
func PrettyJSON(text string) string {
	if !json.Valid([]byte(text)) {
		return text
	}

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(text), "", "  "); err != nil {
		return text
	}
	return out.String()
}

func StripMarkdownFences(text string) string {
	if match := markdownFencePattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(text)
}
