package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/bnema/page-migration/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingProgress struct {
	total     atomic.Int64
	increment atomic.Int64
	finished  atomic.Bool
}

func (p *countingProgress) Start(total int) { p.total.Store(int64(total)) }
func (p *countingProgress) Increment()      { p.increment.Add(1) }
func (p *countingProgress) Finish()         { p.finished.Store(true) }

func makeTasks(n int) []domain.Task {
	tasks := make([]domain.Task, 0, n)
	for i := range n {
		tasks = append(tasks, domain.Task{PromptPath: fmt.Sprintf("/prompts/p%02d.prompt.md", i)})
	}
	return tasks
}

func TestTaskRunnerParallelProcessesEveryTaskOnce(t *testing.T) {
	t.Parallel()

	processor := mocks.NewMockPromptProcessor(t)
	progress := &countingProgress{}
	runner := NewTaskRunner(processor, progress, TaskRunnerConfig{Workers: 3}, nil, nil)
	tasks := makeTasks(12)

	var mu sync.Mutex
	seen := map[string]int{}
	processor.EXPECT().Process(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req ports.ProcessRequest) (string, error) {
		mu.Lock()
		seen[req.PromptPath]++
		mu.Unlock()

		assert.Equal(t, "summary", req.Summary)
		assert.Equal(t, "/out", req.OutputRoot)
		assert.Equal(t, "guidelines", req.AdditionalInstructions)
		assert.True(t, req.Save)
		return "ok", nil
	}).Times(12)

	report := runner.Run(context.Background(), tasks, "summary", "/out", "guidelines")

	assert.True(t, report.OK())
	assert.Equal(t, 12, report.Total)
	assert.Equal(t, 12, report.Succeeded)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "12 succeeded, 0 failed", report.Summary())
	for _, task := range tasks {
		assert.Equal(t, 1, seen[task.PromptPath], task.PromptPath)
	}
	assert.Equal(t, int64(12), progress.total.Load())
	assert.Equal(t, int64(12), progress.increment.Load())
	assert.True(t, progress.finished.Load())
}

func TestTaskRunnerIsolatesFailures(t *testing.T) {
	t.Parallel()

	processor := mocks.NewMockPromptProcessor(t)
	runner := NewTaskRunner(processor, nil, TaskRunnerConfig{}, nil, nil)
	tasks := makeTasks(4)
	boom := errors.New("agent api error: 400 - bad")

	processor.EXPECT().Process(mockAnyContext(), mock.MatchedBy(func(req ports.ProcessRequest) bool {
		return req.PromptPath == tasks[1].PromptPath || req.PromptPath == tasks[3].PromptPath
	})).Return("", boom).Times(2)
	processor.EXPECT().Process(mockAnyContext(), mock.Anything).Return("ok", nil).Times(2)

	report := runner.Run(context.Background(), tasks, "summary", "/out", "")

	assert.False(t, report.OK())
	assert.Equal(t, 2, report.Succeeded)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, tasks[1], report.Failed[0].Task)
	assert.Equal(t, tasks[3], report.Failed[1].Task)
	assert.ErrorIs(t, report.Failed[0].Err, boom)
	assert.Equal(t, "2 succeeded, 2 failed", report.Summary())
}

func TestTaskRunnerSequentialKeepsInputOrder(t *testing.T) {
	t.Parallel()

	processor := mocks.NewMockPromptProcessor(t)
	runner := NewTaskRunner(processor, nil, TaskRunnerConfig{Sequential: true}, nil, nil)
	tasks := makeTasks(5)

	var order []string
	processor.EXPECT().Process(mockAnyContext(), mock.Anything).RunAndReturn(func(_ context.Context, req ports.ProcessRequest) (string, error) {
		order = append(order, req.PromptPath)
		return "ok", nil
	}).Times(5)

	report := runner.Run(context.Background(), tasks, "summary", "/out", "")

	require.True(t, report.OK())
	want := make([]string, 0, len(tasks))
	for _, task := range tasks {
		want = append(want, task.PromptPath)
	}
	assert.Equal(t, want, order)
}

func TestTaskRunnerStopsPullingTasksAfterCancellation(t *testing.T) {
	t.Parallel()

	processor := mocks.NewMockPromptProcessor(t)
	runner := NewTaskRunner(processor, nil, TaskRunnerConfig{Workers: 1}, nil, nil)
	tasks := makeTasks(3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processor.EXPECT().Process(mockAnyContext(), mock.Anything).RunAndReturn(func(context.Context, ports.ProcessRequest) (string, error) {
		cancel()
		return "ok", nil
	}).Once()

	report := runner.Run(ctx, tasks, "summary", "/out", "")

	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed[0].Err, context.Canceled)
	assert.Equal(t, tasks[1], report.Failed[0].Task)
}

func TestTaskRunnerHandlesEmptyBatch(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(mocks.NewMockPromptProcessor(t), nil, TaskRunnerConfig{}, nil, nil)

	report := runner.Run(context.Background(), nil, "summary", "/out", "")
	assert.True(t, report.OK())
	assert.Zero(t, report.Total)
}

func TestTaskRunnerForwardsTargetPath(t *testing.T) {
	t.Parallel()

	processor := mocks.NewMockPromptProcessor(t)
	runner := NewTaskRunner(processor, nil, TaskRunnerConfig{Sequential: true}, nil, nil)
	task := domain.Task{PromptPath: "/prompts/about/team.prompt.md", TargetPath: "/out/about/team.json"}

	processor.EXPECT().Process(mockAnyContext(), mock.MatchedBy(func(req ports.ProcessRequest) bool {
		return req.PromptPath == task.PromptPath && req.TargetPath == task.TargetPath
	})).Return("ok", nil).Once()

	report := runner.Run(context.Background(), []domain.Task{task}, "summary", "/out", "")
	assert.True(t, report.OK())
}

func TestTaskRunnerRecoversFromPanickingTasks(t *testing.T) {
	t.Parallel()

	for _, cfg := range []TaskRunnerConfig{{Workers: 2}, {Sequential: true}} {
		processor := mocks.NewMockPromptProcessor(t)
		progress := &countingProgress{}
		runner := NewTaskRunner(processor, progress, cfg, nil, nil)
		tasks := makeTasks(4)

		processor.EXPECT().Process(mockAnyContext(), mock.MatchedBy(func(req ports.ProcessRequest) bool {
			return req.PromptPath == tasks[2].PromptPath
		})).RunAndReturn(func(context.Context, ports.ProcessRequest) (string, error) {
			panic("nil map write")
		}).Once()
		processor.EXPECT().Process(mockAnyContext(), mock.Anything).Return("ok", nil).Times(3)

		report := runner.Run(context.Background(), tasks, "summary", "/out", "")

		assert.Equal(t, 3, report.Succeeded, "sequential=%t", cfg.Sequential)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, tasks[2], report.Failed[0].Task)
		assert.ErrorIs(t, report.Failed[0].Err, errTaskPanicked)
		assert.ErrorContains(t, report.Failed[0].Err, "nil map write")
		if !cfg.Sequential {
			assert.Equal(t, int64(4), progress.increment.Load())
		}
	}
}
