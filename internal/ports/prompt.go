package ports

import (
	"context"

	"github.com/bnema/page-migration/internal/domain"
)

type PromptLoader interface {
	Load(ctx context.Context, path string) (domain.PromptDefinition, error)
}

// PromptCatalog lists prompt files below a root directory in path order.
type PromptCatalog interface {
	Discover(ctx context.Context, root string) ([]string, error)
}

type PromptCache interface {
	Fingerprint(promptContent, inputContent string) string
	Fetch(ctx context.Context, promptContent, inputContent string, metadata map[string]string, compute func(context.Context) (string, error)) (string, error)
	Stats() domain.CacheStats
}

type ResultWriter interface {
	Write(ctx context.Context, path string, content string) error
}

type ProcessRequest struct {
	PromptPath             string
	Summary                string
	OutputRoot             string
	AdditionalInstructions string
	Save                   bool
	// TargetPath is where Save writes the result. When empty the prompt's
	// subpath is mirrored under OutputRoot.
	TargetPath string
}

type PromptProcessor interface {
	Process(ctx context.Context, req ProcessRequest) (string, error)
}
