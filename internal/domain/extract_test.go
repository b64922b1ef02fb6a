package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStructured(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "balanced braces inside noise", in: `noise {"a":1} noise`, want: `{"a":1}`},
		{name: "nested object", in: `Here: {"a":{"b":[1,2]}} trailing }`, want: `{"a":{"b":[1,2]}}`},
		{name: "json fence", in: "Sure!\n```json\n{\"title\": \"Test\"}\n```\nBye", want: `{"title": "Test"}`},
		{name: "markdown fence", in: "```markdown\n# Welcome\n\nHello\n```", want: "# Welcome\n\nHello"},
		{name: "untagged fence", in: "```\nplain body\n```", want: "plain body"},
		{name: "plain text", in: "  # Heading\n\nSome prose.  ", want: "# Heading\n\nSome prose."},
		{name: "unbalanced braces fall back to text", in: " {\"a\": 1 ", want: `{"a": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStructured(tt.in))
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}", PrettyJSON(`{"a":1,"b":[true]}`))
	assert.Equal(t, "# Not JSON", PrettyJSON("# Not JSON"))
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, "# Analysis\nFit: good", StripMarkdownFences("```markdown\n# Analysis\nFit: good\n```"))
	assert.Equal(t, "no fences", StripMarkdownFences("  no fences \n"))
}
