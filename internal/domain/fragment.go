package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxFragmentBytes = 500_000
	FragmentTitle           = "Organization Data"
)

type ContentFragment struct {
	Title   string
	Content string
}

// FragmentContent splits content into fragments of at most maxBytes, cutting only
// on line boundaries. A single line longer than maxBytes is kept whole.
func FragmentContent(content string, maxBytes int) []ContentFragment {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFragmentBytes
	}
	if len(content) <= maxBytes {
		return []ContentFragment{{Title: FragmentTitle, Content: content}}
	}

	chunks := chunkLines(content, maxBytes)
	fragments := make([]ContentFragment, 0, len(chunks))
	for i, chunk := range chunks {
		fragments = append(fragments, ContentFragment{
			Title:   fmt.Sprintf("%s (Part %d/%d)", FragmentTitle, i+1, len(chunks)),
			Content: chunk,
		})
	}

	return fragments
}

func chunkLines(content string, maxBytes int) []string {
	var chunks []string
	var current strings.Builder

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		if current.Len()+len(line) > maxBytes {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func TotalBytes(fragments []ContentFragment) int {
	total := 0
	for _, fragment := range fragments {
		total += len(fragment.Content)
	}
	return total
}
