package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkerCount = 5

var errTaskPanicked = errors.New("prompt processing panicked")

type TaskRunnerConfig struct {
	Workers int
	// Sequential processes tasks one at a time in input order.
	Sequential bool
}

type TaskRunner struct {
	processor ports.PromptProcessor
	progress  ports.Progress
	cfg       TaskRunnerConfig
	clock     ports.Clock
	logger    *slog.Logger
}

func NewTaskRunner(processor ports.PromptProcessor, progress ports.Progress, cfg TaskRunnerConfig, clock ports.Clock, logger *slog.Logger) *TaskRunner {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkerCount
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskRunner{
		processor: processor,
		progress:  progress,
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
	}
}

type indexedFailure struct {
	index   int
	failure domain.TaskFailure
}

// Run processes every task and reports the outcome. A failing task never
// stops its siblings; once ctx is done the remaining tasks fail with ctx.Err().
func (r *TaskRunner) Run(ctx context.Context, tasks []domain.Task, summary, outputRoot, additionalInstructions string) domain.RunReport {
	started := r.clock.Now()
	report := domain.RunReport{RunID: uuid.NewString(), Total: len(tasks)}

	var failures []indexedFailure
	if r.cfg.Sequential {
		report.Succeeded, failures = r.runSequential(ctx, tasks, summary, outputRoot, additionalInstructions)
	} else {
		report.Succeeded, failures = r.runParallel(ctx, tasks, summary, outputRoot, additionalInstructions)
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].index < failures[j].index })
	for _, failure := range failures {
		report.Failed = append(report.Failed, failure.failure)
	}
	report.Duration = r.clock.Now().Sub(started)

	for _, failure := range report.Failed {
		r.logger.Warn("prompt failed", "run", report.RunID, "prompt", filepath.Base(failure.Task.PromptPath), "error", failure.Err)
	}
	r.logger.Info("prompts processed", "run", report.RunID, "result", report.Summary(), "duration", report.Duration.Round(time.Millisecond))

	return report
}

func (r *TaskRunner) runSequential(ctx context.Context, tasks []domain.Task, summary, outputRoot, additionalInstructions string) (int, []indexedFailure) {
	r.logger.Info(fmt.Sprintf("Processing %d prompts sequentially", len(tasks)))

	succeeded := 0
	var failures []indexedFailure
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			failures = append(failures, indexedFailure{index: i, failure: domain.TaskFailure{Task: task, Err: err}})
			continue
		}

		r.logger.Info(fmt.Sprintf("[%d/%d] Processing: %s", i+1, len(tasks), filepath.Base(task.PromptPath)))
		if err := r.process(ctx, task, summary, outputRoot, additionalInstructions); err != nil {
			failures = append(failures, indexedFailure{index: i, failure: domain.TaskFailure{Task: task, Err: err}})
			continue
		}
		succeeded++
	}

	return succeeded, failures
}

type queuedTask struct {
	index int
	task  domain.Task
}

func (r *TaskRunner) runParallel(ctx context.Context, tasks []domain.Task, summary, outputRoot, additionalInstructions string) (int, []indexedFailure) {
	if len(tasks) == 0 {
		return 0, nil
	}

	queue := make(chan queuedTask, len(tasks))
	for i, task := range tasks {
		queue <- queuedTask{index: i, task: task}
	}
	close(queue)

	workers := min(r.cfg.Workers, len(tasks))
	r.logger.Info(fmt.Sprintf("Processing %d prompts in parallel", len(tasks)), "workers", workers)

	var (
		succeeded atomic.Int64
		mu        sync.Mutex
		failures  []indexedFailure
	)
	recordFailure := func(item queuedTask, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, indexedFailure{index: item.index, failure: domain.TaskFailure{Task: item.task, Err: err}})
	}

	r.progress.Start(len(tasks))
	defer r.progress.Finish()

	var group errgroup.Group
	for range workers {
		group.Go(func() error {
			for item := range queue {
				if err := ctx.Err(); err != nil {
					recordFailure(item, err)
					continue
				}

				if err := r.process(ctx, item.task, summary, outputRoot, additionalInstructions); err != nil {
					recordFailure(item, err)
				} else {
					succeeded.Add(1)
				}
				r.progress.Increment()
			}
			return nil
		})
	}
	_ = group.Wait()

	return int(succeeded.Load()), failures
}

// process turns a panic in the processor into a failure of this task only.
func (r *TaskRunner) process(ctx context.Context, task domain.Task, summary, outputRoot, additionalInstructions string) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error("prompt panicked", "prompt", filepath.Base(task.PromptPath), "panic", recovered, "stack", string(debug.Stack()))
			err = fmt.Errorf("process %s: %w: %v", filepath.Base(task.PromptPath), errTaskPanicked, recovered)
		}
	}()

	_, err = r.processor.Process(ctx, ports.ProcessRequest{
		PromptPath:             task.PromptPath,
		TargetPath:             task.TargetPath,
		Summary:                summary,
		OutputRoot:             outputRoot,
		AdditionalInstructions: additionalInstructions,
		Save:                   true,
	})
	return err
}
