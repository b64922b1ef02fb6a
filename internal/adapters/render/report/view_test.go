package report

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/page-migration/internal/application"
	"github.com/bnema/page-migration/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRunWithFailures(t *testing.T) {
	output, err := RenderRun(RunView{
		Report: domain.RunReport{
			RunID:     "run-1",
			Total:     3,
			Succeeded: 2,
			Failed: []domain.TaskFailure{{
				Task: domain.Task{PromptPath: "/prompts/faq.prompt.md"},
				Err:  errors.New("agent api error: 400 - bad request\nmore detail"),
			}},
			Duration: 1500 * time.Millisecond,
		},
		Cache:        domain.CacheStats{Hits: 1, Misses: 3},
		CacheEnabled: true,
		OutputRoot:   "/out",
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Migration run")
	assert.Contains(t, output, "prompts: 3")
	assert.Contains(t, output, "2 succeeded, 1 failed")
	assert.Contains(t, output, "cache: 1 hits, 3 misses (25.0% hit rate)")
	assert.Contains(t, output, "faq.prompt.md: agent api error: 400 - bad request")
	assert.NotContains(t, output, "more detail")
}

func TestRenderRunWithCacheDisabled(t *testing.T) {
	output, err := RenderRun(RunView{Report: domain.RunReport{Total: 1, Succeeded: 1}})

	require.NoError(t, err)
	assert.Contains(t, output, "1 succeeded, 0 failed")
	assert.Contains(t, output, "cache: disabled")
	assert.NotContains(t, output, "Failed prompts")
}

func TestRenderPlanListsPrompts(t *testing.T) {
	output, err := RenderPlan(PlanView{
		Plan: application.MigrationPlan{
			PromptsDir:  "/prompts",
			PreAnalysis: "/prompts/file_analysis.prompt.md",
			Prompts:     []string{"/prompts/about/team.prompt.md", "/prompts/welcome.prompt.md"},
		},
		Language:    "fr",
		ContentPath: "/data/acme.txt",
		OutputRoot:  "/out",
	})

	require.NoError(t, err)
	assert.Contains(t, output, "French (fr)")
	assert.Contains(t, output, "pre-analysis: file_analysis")
	assert.Contains(t, output, "Prompts to process (2)")
	assert.Contains(t, output, "1. team")
	assert.Contains(t, output, "2. welcome")
}

func TestRenderPlanForAnalysisOnly(t *testing.T) {
	output, err := RenderPlan(PlanView{Language: "en", OutputRoot: "/out", AnalysisPrompt: "/prompts/analysis.prompt.md"})

	require.NoError(t, err)
	assert.Contains(t, output, "prompt: /prompts/analysis.prompt.md")
	assert.Contains(t, output, "analysis.md")
	assert.NotContains(t, output, "Prompts to process")
}

func TestRenderHealth(t *testing.T) {
	output, err := RenderHealth([]application.HealthCheck{
		{Name: "DUST_WORKSPACE_ID", OK: true, Detail: "set"},
		{Name: "DUST_API_KEY", Detail: "missing"},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "DUST_WORKSPACE_ID")
	assert.Contains(t, output, "(missing)")
	assert.Contains(t, output, "Some checks failed.")
}

func TestRenderCache(t *testing.T) {
	output, err := RenderCache(CacheView{Dir: "/out/.cache", Entries: 3, Bytes: 2048})
	require.NoError(t, err)
	assert.Contains(t, output, "entries: 3  size: 2.0 KiB")

	output, err = RenderCache(CacheView{Dir: "/out/.cache"})
	require.NoError(t, err)
	assert.Contains(t, output, "No cached prompts.")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "3.0 MiB", formatBytes(3<<20))
}
