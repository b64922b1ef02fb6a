package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

const (
	DefaultLanguage = "fr"
	resultFileExt   = ".json"
)

type ProcessorConfig struct {
	// PromptsRoot is stripped from prompt paths to mirror their subdirectory
	// under the output root.
	PromptsRoot      string
	Language         string
	MaxFragmentBytes int
}

type PromptProcessor struct {
	loader ports.PromptLoader
	runner ports.AgentRunner
	cache  ports.PromptCache
	writer ports.ResultWriter
	cfg    ProcessorConfig
	logger *slog.Logger
}

var _ ports.PromptProcessor = (*PromptProcessor)(nil)

// NewPromptProcessor accepts a nil cache, in which case every prompt reaches the agent.
func NewPromptProcessor(loader ports.PromptLoader, runner ports.AgentRunner, cache ports.PromptCache, writer ports.ResultWriter, cfg ProcessorConfig, logger *slog.Logger) *PromptProcessor {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.MaxFragmentBytes <= 0 {
		cfg.MaxFragmentBytes = domain.DefaultMaxFragmentBytes
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PromptProcessor{
		loader: loader,
		runner: runner,
		cache:  cache,
		writer: writer,
		cfg:    cfg,
		logger: logger,
	}
}

func (p *PromptProcessor) Process(ctx context.Context, req ports.ProcessRequest) (string, error) {
	definition, err := p.loader.Load(ctx, req.PromptPath)
	if err != nil {
		return "", err
	}

	name := domain.PromptName(req.PromptPath)
	p.logger.Debug("prompt loaded", "prompt", name, "role", definition.Role, "task", definition.Task, "source", definition.Source)

	userContent, err := BuildUserContent(definition, p.cfg.Language, req.AdditionalInstructions)
	if err != nil {
		return "", fmt.Errorf("build prompt %s: %w", name, err)
	}

	fragments := domain.FragmentContent(req.Summary, p.cfg.MaxFragmentBytes)
	p.logger.Debug("content fragments", "prompt", name, "count", len(fragments), "bytes", domain.TotalBytes(fragments))

	compute := func(ctx context.Context) (string, error) {
		result, err := p.runner.Run(ctx, userContent, fragments)
		if err != nil {
			return "", err
		}
		if result == nil {
			return "", nil
		}
		p.logger.Debug("response received", "prompt", name, "chars", len(result.Content), "url", result.URL)
		return result.Content, nil
	}

	var content string
	if p.cache != nil {
		content, err = p.cache.Fetch(ctx, userContent, req.Summary, map[string]string{"prompt": name}, compute)
	} else {
		content, err = compute(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("run prompt %s: %w", name, err)
	}
	if content == "" {
		return "", fmt.Errorf("prompt %s: %w", name, domain.ErrNoAgentResponse)
	}

	if req.Save {
		target := req.TargetPath
		if target == "" {
			target = TargetPath(p.cfg.PromptsRoot, req.PromptPath, req.OutputRoot)
		}
		structured := domain.PrettyJSON(domain.ExtractStructured(content))
		if err := p.writer.Write(ctx, target, structured); err != nil {
			return "", fmt.Errorf("save result for %s: %w", name, err)
		}
		p.logger.Debug("result saved", "prompt", name, "path", target)
	}

	return content, nil
}

// BuildUserContent renders the message sent to the agent for one prompt.
func BuildUserContent(definition domain.PromptDefinition, language string, additionalInstructions string) (string, error) {
	outputFormat, err := json.Marshal(definition.OutputFormat)
	if err != nil {
		return "", fmt.Errorf("encode output format: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Role: %s\n", definition.Role)
	fmt.Fprintf(&b, "Task: %s\n\n", definition.Task)
	fmt.Fprintf(&b, "CRITICAL: ONLY use the information provided in the content fragments titled '%s'. DO NOT use external knowledge or hallucinate facts not present in the data.\n\n", domain.FragmentTitle)
	fmt.Fprintf(&b, "IMPORTANT: Generate all content in %s (%s).\n\n", LanguageName(language), language)
	fmt.Fprintf(&b, "Instructions:\n%s", definition.Content)
	if additionalInstructions != "" {
		fmt.Fprintf(&b, "\n\nGuidelines:\n%s", additionalInstructions)
	}
	fmt.Fprintf(&b, "\n\nOutput format: %s", outputFormat)

	return b.String(), nil
}

func LanguageName(code string) string {
	if code == "fr" {
		return "French"
	}
	return "English"
}

// TargetPath mirrors the prompt's directory below promptsRoot under outputRoot.
// Prompts outside promptsRoot land directly in outputRoot.
func TargetPath(promptsRoot, promptPath, outputRoot string) string {
	fileName := domain.PromptName(promptPath) + resultFileExt
	if promptsRoot == "" {
		return filepath.Join(outputRoot, fileName)
	}

	rel, err := filepath.Rel(promptsRoot, promptPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return filepath.Join(outputRoot, fileName)
	}

	return filepath.Join(outputRoot, filepath.Dir(rel), fileName)
}
