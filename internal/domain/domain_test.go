package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStatsHitRate(t *testing.T) {
	tests := []struct {
		name  string
		stats CacheStats
		want  float64
	}{
		{name: "no operations", stats: CacheStats{}, want: 0},
		{name: "all hits", stats: CacheStats{Hits: 4}, want: 100},
		{name: "one third rounds to one decimal", stats: CacheStats{Hits: 1, Misses: 2}, want: 33.3},
		{name: "two thirds rounds up", stats: CacheStats{Hits: 2, Misses: 1}, want: 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.HitRate())
		})
	}
}

func TestTranscriptLatestAgentMessageScansNewestFirst(t *testing.T) {
	transcript := Transcript{Messages: []AgentMessage{
		{Type: "user_message", Content: "hi"},
		{Type: AgentMessageType, Status: "succeeded", Content: "first"},
		{Type: "user_message", Content: "again"},
		{Type: AgentMessageType, Status: "succeeded", Content: "second"},
	}}

	msg, ok := transcript.LatestAgentMessage()
	require.True(t, ok)
	assert.Equal(t, "second", msg.Text())

	_, ok = Transcript{Messages: []AgentMessage{{Type: "user_message"}}}.LatestAgentMessage()
	assert.False(t, ok)
}

func TestAgentMessageTextFallsBackToTextPart(t *testing.T) {
	msg := AgentMessage{
		Type: AgentMessageType,
		Parts: []MessagePart{
			{Type: "tool_call", Value: "ignored"},
			{Type: "text", Value: "from parts"},
		},
	}

	assert.Equal(t, "from parts", msg.Text())
	assert.Empty(t, AgentMessage{}.Text())
	assert.True(t, AgentMessage{Status: "failed"}.Failed())
}

func TestRunReportSummary(t *testing.T) {
	report := RunReport{
		Total:     3,
		Succeeded: 2,
		Failed:    []TaskFailure{{Task: Task{PromptPath: "a.prompt.md"}, Err: errors.New("boom")}},
		Duration:  time.Second,
	}

	assert.Equal(t, "2 succeeded, 1 failed", report.Summary())
	assert.False(t, report.OK())
	assert.True(t, RunReport{Succeeded: 1, Total: 1}.OK())
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("connection reset")

	apiErr := &AgentAPIError{Status: 0, Err: cause}
	assert.ErrorIs(t, apiErr, cause)
	assert.Contains(t, apiErr.Error(), "connection reset")

	withStatus := &AgentAPIError{Status: 500, ResponseBody: `{"error":"Internal"}`}
	assert.Equal(t, `agent api error: 500 - {"error":"Internal"}`, withStatus.Error())

	parseErr := &ParseError{FilePath: "/p/x.prompt.md", Err: cause}
	var target *ParseError
	require.ErrorAs(t, error(parseErr), &target)
	assert.Equal(t, "/p/x.prompt.md", target.FilePath)
	assert.ErrorIs(t, parseErr, cause)

	assert.Equal(t, "file not found: /tmp/missing.txt", (&FileNotFoundError{FilePath: "/tmp/missing.txt"}).Error())
}

func TestPromptName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "welcome", PromptName("/prompts/welcome.prompt.md"))
	assert.Equal(t, "file_analysis", PromptName(FileAnalysisPrompt))
	assert.Equal(t, "notes", PromptName("/prompts/notes.txt"))
}
