package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/page-migration/internal/application"
	"github.com/bnema/page-migration/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RunView struct {
	Report       domain.RunReport
	Cache        domain.CacheStats
	CacheEnabled bool
	OutputRoot   string
}

type PlanView struct {
	Plan        application.MigrationPlan
	Language    string
	ContentPath string
	OutputRoot  string
	// AnalysisPrompt is set in analysis-only mode.
	AnalysisPrompt string
}

type CacheView struct {
	Dir     string
	Entries int
	Bytes   int64
}

func RenderRun(view RunView) (string, error) {
	return render(func(s styles) string { return runView(view, s) })
}

func RenderPlan(view PlanView) (string, error) {
	return render(func(s styles) string { return planView(view, s) })
}

func RenderHealth(checks []application.HealthCheck) (string, error) {
	return render(func(s styles) string { return healthView(checks, s) })
}

func RenderCache(view CacheView) (string, error) {
	return render(func(s styles) string { return cacheView(view, s) })
}

func runView(view RunView, s styles) string {
	report := view.Report
	lines := []string{
		s.title.Render("Migration run"),
		s.header.Render(fmt.Sprintf("run: %s  prompts: %d  duration: %s", report.RunID, report.Total, report.Duration.Round(time.Millisecond))),
	}

	percent := 0.0
	if report.Total > 0 {
		percent = float64(report.Succeeded) / float64(report.Total) * 100
	}
	outcome := s.ok.Render(report.Summary())
	if !report.OK() {
		outcome = s.failure.Render(report.Summary())
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, renderBar(percent, s), " ", outcome))

	if view.OutputRoot != "" {
		lines = append(lines, s.detail.Render("output: "+view.OutputRoot))
	}
	if view.CacheEnabled {
		lines = append(lines, s.detail.Render(fmt.Sprintf("cache: %d hits, %d misses (%.1f%% hit rate)", view.Cache.Hits, view.Cache.Misses, view.Cache.HitRate())))
	} else {
		lines = append(lines, s.empty.Render("cache: disabled"))
	}

	if len(report.Failed) > 0 {
		failures := []string{s.failure.Render("Failed prompts")}
		for _, failure := range report.Failed {
			failures = append(failures, s.label.Render(filepath.Base(failure.Task.PromptPath)+": ")+s.detail.Render(firstLine(failure.Err)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, failures...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func planView(view PlanView, s styles) string {
	lines := []string{
		s.title.Render("Dry run"),
		s.label.Render("language: ") + s.detail.Render(fmt.Sprintf("%s (%s)", application.LanguageName(view.Language), view.Language)),
		s.label.Render("content: ") + s.detail.Render(view.ContentPath),
		s.label.Render("output: ") + s.detail.Render(view.OutputRoot),
	}

	if view.AnalysisPrompt != "" {
		analysis := []string{
			s.title.Render("Analysis"),
			s.detail.Render("prompt: " + view.AnalysisPrompt),
			s.detail.Render("writes: " + filepath.Join(view.OutputRoot, application.AnalysisFileName)),
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, analysis...)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if view.Plan.PreAnalysis != "" {
		lines = append(lines, s.label.Render("pre-analysis: ")+s.detail.Render(domain.PromptName(view.Plan.PreAnalysis)))
	}

	prompts := []string{s.title.Render(fmt.Sprintf("Prompts to process (%d)", len(view.Plan.Prompts)))}
	if len(view.Plan.Prompts) == 0 {
		prompts = append(prompts, s.empty.Render("No prompts found in "+view.Plan.PromptsDir))
	}
	for i, path := range view.Plan.Prompts {
		prompts = append(prompts, s.detail.Render(fmt.Sprintf("%d. %s", i+1, domain.PromptName(path))))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, prompts...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func healthView(checks []application.HealthCheck, s styles) string {
	lines := []string{s.title.Render("Environment checks")}

	for _, check := range checks {
		mark := s.ok.Render("✓")
		if !check.OK {
			mark = s.failure.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, s.label.Render(check.Name), s.detail.Render("("+check.Detail+")")))
	}

	summary := s.ok.Render("All checks passed.")
	if !application.Healthy(checks) {
		summary = s.failure.Render("Some checks failed.")
	}
	lines = append(lines, s.section.Render(summary))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cacheView(view CacheView, s styles) string {
	lines := []string{
		s.title.Render("Prompt cache"),
		s.header.Render(view.Dir),
	}
	if view.Entries == 0 {
		lines = append(lines, s.empty.Render("No cached prompts."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.detail.Render(fmt.Sprintf("entries: %d  size: %s", view.Entries, formatBytes(view.Bytes))))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(percent float64, s styles) string {
	percent = max(0, min(100, percent))
	filled := int(percent / 100 * barWidth)

	return s.barBracket.Render("[") +
		s.barFill.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", barWidth-filled)) +
		s.barBracket.Render("]")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for value := n / unit; value >= unit; value /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
