package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
)

const AnalysisFileName = "analysis.md"

type MigrationConfig struct {
	PromptsDir string
}

type MigrationPlan struct {
	PromptsDir string
	// PreAnalysis is empty when the prompts directory has no file analysis prompt.
	PreAnalysis string
	Prompts     []string
}

type MigrationService struct {
	catalog   ports.PromptCatalog
	processor ports.PromptProcessor
	runner    *TaskRunner
	writer    ports.ResultWriter
	cfg       MigrationConfig
	logger    *slog.Logger
}

func NewMigrationService(catalog ports.PromptCatalog, processor ports.PromptProcessor, runner *TaskRunner, writer ports.ResultWriter, cfg MigrationConfig, logger *slog.Logger) *MigrationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MigrationService{
		catalog:   catalog,
		processor: processor,
		runner:    runner,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *MigrationService) Plan(ctx context.Context) (MigrationPlan, error) {
	paths, err := s.catalog.Discover(ctx, s.cfg.PromptsDir)
	if err != nil {
		return MigrationPlan{}, fmt.Errorf("discover prompts: %w", err)
	}

	plan := MigrationPlan{PromptsDir: s.cfg.PromptsDir}
	for _, path := range paths {
		if filepath.Base(path) == domain.FileAnalysisPrompt {
			if plan.PreAnalysis == "" {
				plan.PreAnalysis = path
			}
			continue
		}
		plan.Prompts = append(plan.Prompts, path)
	}

	return plan, nil
}

// Migrate runs the file analysis prompt first and hands its answer to every
// other prompt as guidelines. A failed pre-analysis is logged and skipped.
func (s *MigrationService) Migrate(ctx context.Context, summary, outputRoot string) (domain.RunReport, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return domain.RunReport{}, err
	}

	guidelines := ""
	if plan.PreAnalysis != "" {
		s.logger.Info("running file analysis", "prompt", plan.PreAnalysis)
		analysis, err := s.processor.Process(ctx, ports.ProcessRequest{
			PromptPath: plan.PreAnalysis,
			TargetPath: TargetPath(plan.PromptsDir, plan.PreAnalysis, outputRoot),
			Summary:    summary,
			OutputRoot: outputRoot,
			Save:       true,
		})
		switch {
		case err == nil:
			guidelines = analysis
			s.logger.Debug("file analysis complete", "chars", len(analysis))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return domain.RunReport{}, err
		default:
			s.logger.Warn("file analysis failed, continuing without guidelines", "error", err)
		}
	}

	tasks := make([]domain.Task, 0, len(plan.Prompts))
	for _, path := range plan.Prompts {
		s.logger.Debug("queued prompt", "prompt", path)
		tasks = append(tasks, domain.Task{PromptPath: path, TargetPath: TargetPath(plan.PromptsDir, path, outputRoot)})
	}

	return s.runner.Run(ctx, tasks, summary, outputRoot, guidelines), nil
}

// Analyze runs a single prompt without saving its JSON result and writes the
// answer, fences stripped, to <outputDir>/analysis.md.
func (s *MigrationService) Analyze(ctx context.Context, analysisPrompt, summary, outputDir string) (string, error) {
	if _, err := os.Stat(analysisPrompt); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &domain.FileNotFoundError{FilePath: analysisPrompt}
		}
		return "", fmt.Errorf("stat analysis prompt: %w", err)
	}

	content, err := s.processor.Process(ctx, ports.ProcessRequest{
		PromptPath: analysisPrompt,
		Summary:    summary,
		OutputRoot: outputDir,
	})
	if err != nil {
		return "", fmt.Errorf("analysis: %w", err)
	}

	path := filepath.Join(outputDir, AnalysisFileName)
	if err := s.writer.Write(ctx, path, domain.StripMarkdownFences(content)); err != nil {
		return "", fmt.Errorf("write analysis: %w", err)
	}

	return path, nil
}

// LoadSummary reads the content summary the prompts run against.
func LoadSummary(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &domain.FileNotFoundError{FilePath: path}
		}
		return "", fmt.Errorf("read content summary: %w", err)
	}

	return string(data), nil
}
