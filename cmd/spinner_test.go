package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisSpinnerShowsPromptAndElapsedTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := newAnalysisSpinnerModel("analysis.prompt.md", clock, nil)

	now = now.Add(83*time.Second + 400*time.Millisecond)
	view := m.View()
	assert.Contains(t, view, "Waiting for the agent on analysis.prompt.md")
	assert.Contains(t, view, "(1m23s)")
}

func TestAnalysisSpinnerQuitsWithWorkResult(t *testing.T) {
	t.Parallel()

	boom := errors.New("agent unavailable")
	m := newAnalysisSpinnerModel("analysis.prompt.md", time.Now, nil)

	next, cmd := m.Update(analysisDoneMsg{err: boom})
	require.NotNil(t, cmd)

	done := next.(analysisSpinnerModel)
	assert.True(t, done.done)
	assert.ErrorIs(t, done.err, boom)
	assert.Empty(t, done.View())
}
