package domain

import (
	"path/filepath"
	"strings"
)

type PromptSource string

const (
	SourceFrontmatter     PromptSource = "frontmatter"
	SourceTOMLFrontmatter PromptSource = "toml_frontmatter"
	SourceJSON            PromptSource = "json"
	SourcePlainText       PromptSource = "plain_text"
)

const (
	DefaultPromptRole  = "Content Analyst"
	PromptFileSuffix   = ".prompt.md"
	FileAnalysisPrompt = "file_analysis" + PromptFileSuffix
)

// PromptDefinition is one parsed prompt file. OutputFormat is passed through to the
// agent verbatim, so its shape is whatever the prompt author wrote.
type PromptDefinition struct {
	Role         string
	Task         string
	Content      string
	OutputFormat any
	Source       PromptSource
}

func DefaultOutputFormat() map[string]any {
	return map[string]any{"type": "markdown"}
}

type Task struct {
	PromptPath string
	TargetPath string
}

// PromptName is the file name of path without its .prompt.md suffix, or
// without its extension for other files.
func PromptName(path string) string {
	base := filepath.Base(path)
	if trimmed, ok := strings.CutSuffix(base, PromptFileSuffix); ok {
		return trimmed
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
