package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	filecache "github.com/bnema/page-migration/internal/adapters/cache/file"
	"github.com/bnema/page-migration/internal/adapters/config"
	"github.com/bnema/page-migration/internal/adapters/output"
	"github.com/bnema/page-migration/internal/adapters/progress"
	promptadapter "github.com/bnema/page-migration/internal/adapters/prompt"
	"github.com/bnema/page-migration/internal/adapters/render/report"
	"github.com/bnema/page-migration/internal/application"
	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/spf13/cobra"
)

var errMigrationFailed = errors.New("migration finished with failures")

type migrateOptions struct {
	contentPath    string
	promptsDir     string
	outputDir      string
	language       string
	analysisPrompt string
	workers        int
	debug          bool
	noCache        bool
	dryRun         bool
	analysis       bool
	sequential     bool
	asJSON         bool
}

func newMigrateCmd(a *app) *cobra.Command {
	opts := migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the migration prompts against the Dust agent",
		Long:  "migrate runs every prompt below the prompts directory with the content summary, file analysis first, and writes one JSON result per prompt under the output directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.applyDefaults(a.settings, cmd)
			if err := validateLanguage(opts.language); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.debug)

			if opts.dryRun {
				return runDryRun(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			return runMigrate(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.contentPath, "content", "", "content summary file the prompts run against")
	cmd.Flags().StringVar(&opts.promptsDir, "prompts", "", "prompts directory (default migration.prompts_dir)")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "output directory (default migration.output_dir)")
	cmd.Flags().StringVar(&opts.language, "language", "", "output language: fr or en (default migration.language)")
	cmd.Flags().StringVar(&opts.analysisPrompt, "analysis-prompt", "", "prompt used by --analysis (default migration.analysis_prompt)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel workers (default workers.count)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log debug output and process prompts sequentially")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "ignore and do not write the prompt cache")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would run without calling the agent")
	cmd.Flags().BoolVar(&opts.analysis, "analysis", false, "only run the page migration fit analysis")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "process prompts one at a time without debug output")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func (o *migrateOptions) applyDefaults(settings config.Settings, cmd *cobra.Command) {
	if o.promptsDir == "" {
		o.promptsDir = settings.PromptsDir
	}
	if o.outputDir == "" {
		o.outputDir = settings.OutputDir
	}
	if o.language == "" {
		o.language = settings.Language
	}
	if o.analysisPrompt == "" {
		o.analysisPrompt = settings.AnalysisPrompt
	}
	if !cmd.Flags().Changed("workers") {
		o.workers = settings.Workers
	}
}

func runDryRun(ctx context.Context, stdout io.Writer, opts migrateOptions) error {
	view := report.PlanView{
		Language:    opts.language,
		ContentPath: opts.contentPath,
		OutputRoot:  opts.outputDir,
	}

	if opts.analysis {
		view.AnalysisPrompt = opts.analysisPrompt
	} else {
		svc := application.NewMigrationService(promptadapter.NewLoader(), nil, nil, nil, application.MigrationConfig{PromptsDir: opts.promptsDir}, nil)
		plan, err := svc.Plan(ctx)
		if err != nil {
			return err
		}
		view.Plan = plan
	}

	if opts.asJSON {
		return writeJSON(stdout, planJSON(view))
	}

	rendered, err := report.RenderPlan(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, rendered)
	return err
}

func runMigrate(ctx context.Context, a *app, stdout, stderr io.Writer, opts migrateOptions, logger *slog.Logger) error {
	if a.settings.Dust.AgentID == "" {
		return fmt.Errorf("agent id: %w", domain.ErrMissingSetting)
	}

	summary, err := application.LoadSummary(opts.contentPath)
	if err != nil {
		return err
	}
	logger.Debug("content loaded", "path", opts.contentPath, "bytes", len(summary), "language", opts.language)

	apiKey, err := a.apiKey(ctx)
	if err != nil {
		return err
	}
	client, err := a.newClient(apiKey, logger)
	if err != nil {
		return fmt.Errorf("wire agent client: %w", err)
	}

	clock := ports.SystemClock{}
	loader := promptadapter.NewLoader()
	writer := output.NewWriter()
	cache := filecache.NewCache(opts.outputDir, a.settings.CacheEnabled && !opts.noCache, logger)
	runner := application.NewConversationRunner(client, a.settings.Dust.AgentID, application.DefaultConversationHost, clock, logger)
	processor := application.NewPromptProcessor(loader, runner, cache, writer, application.ProcessorConfig{
		PromptsRoot:      opts.promptsDir,
		Language:         opts.language,
		MaxFragmentBytes: a.settings.MaxFragmentSize,
	}, logger)

	// Debug output is only readable when prompts run one at a time.
	sequential := opts.sequential || opts.debug
	var tracker ports.Progress = ports.NopProgress{}
	if !sequential {
		tracker = progress.New(stderr, "Processing")
	}
	taskRunner := application.NewTaskRunner(processor, tracker, application.TaskRunnerConfig{
		Workers:    opts.workers,
		Sequential: sequential,
	}, clock, logger)
	svc := application.NewMigrationService(loader, processor, taskRunner, writer, application.MigrationConfig{PromptsDir: opts.promptsDir}, logger)

	if opts.analysis {
		return runAnalysis(ctx, svc, stdout, stderr, opts, summary)
	}

	logger.Debug("starting migration", "prompts", opts.promptsDir, "output", opts.outputDir)
	result, err := svc.Migrate(ctx, summary, opts.outputDir)
	if err != nil {
		return err
	}

	view := report.RunView{
		Report:       result,
		Cache:        cache.Stats(),
		CacheEnabled: cache.Enabled(),
		OutputRoot:   opts.outputDir,
	}
	if opts.asJSON {
		err = writeJSON(stdout, runJSON(view))
	} else {
		var rendered string
		rendered, err = report.RenderRun(view)
		if err == nil {
			_, err = fmt.Fprintln(stdout, rendered)
		}
	}
	if err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%w: %s", errMigrationFailed, result.Summary())
	}
	return nil
}

func runAnalysis(ctx context.Context, svc *application.MigrationService, stdout, stderr io.Writer, opts migrateOptions, summary string) error {
	var path string
	analyze := func(ctx context.Context) error {
		var err error
		path, err = svc.Analyze(ctx, opts.analysisPrompt, summary, opts.outputDir)
		return err
	}

	var err error
	if progress.IsTerminal(stderr) && !opts.debug {
		err = runAnalysisSpinner(ctx, stderr, filepath.Base(opts.analysisPrompt), analyze)
	} else {
		err = analyze(ctx)
	}
	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeJSON(stdout, map[string]string{"analysis": path})
	}
	_, err = fmt.Fprintf(stdout, "Analysis written to %s\n", path)
	return err
}

func validateLanguage(language string) error {
	if language != "fr" && language != "en" {
		return fmt.Errorf("unsupported language %q: use fr or en", language)
	}
	return nil
}

type failureJSON struct {
	Prompt string `json:"prompt"`
	Error  string `json:"error"`
}

type cacheJSON struct {
	Enabled bool    `json:"enabled"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

type runReportJSON struct {
	RunID      string        `json:"run_id"`
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Failed     []failureJSON `json:"failed"`
	DurationMS int64         `json:"duration_ms"`
	OutputRoot string        `json:"output_root"`
	Cache      cacheJSON     `json:"cache"`
}

func runJSON(view report.RunView) runReportJSON {
	out := runReportJSON{
		RunID:      view.Report.RunID,
		Total:      view.Report.Total,
		Succeeded:  view.Report.Succeeded,
		Failed:     []failureJSON{},
		DurationMS: view.Report.Duration.Milliseconds(),
		OutputRoot: view.OutputRoot,
		Cache: cacheJSON{
			Enabled: view.CacheEnabled,
			Hits:    view.Cache.Hits,
			Misses:  view.Cache.Misses,
			HitRate: view.Cache.HitRate(),
		},
	}
	for _, failure := range view.Report.Failed {
		out.Failed = append(out.Failed, failureJSON{Prompt: failure.Task.PromptPath, Error: failure.Err.Error()})
	}
	return out
}

type planJSONView struct {
	Language       string   `json:"language"`
	ContentPath    string   `json:"content"`
	OutputRoot     string   `json:"output"`
	PromptsDir     string   `json:"prompts_dir,omitempty"`
	PreAnalysis    string   `json:"pre_analysis,omitempty"`
	Prompts        []string `json:"prompts"`
	AnalysisPrompt string   `json:"analysis_prompt,omitempty"`
	AnalysisOutput string   `json:"analysis_output,omitempty"`
}

func planJSON(view report.PlanView) planJSONView {
	out := planJSONView{
		Language:    view.Language,
		ContentPath: view.ContentPath,
		OutputRoot:  view.OutputRoot,
		PromptsDir:  view.Plan.PromptsDir,
		PreAnalysis: view.Plan.PreAnalysis,
		Prompts:     append([]string{}, view.Plan.Prompts...),
	}
	if view.AnalysisPrompt != "" {
		out.AnalysisPrompt = view.AnalysisPrompt
		out.AnalysisOutput = filepath.Join(view.OutputRoot, application.AnalysisFileName)
	}
	return out
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
