package domain

import (
	"fmt"
	"time"
)

type TaskFailure struct {
	Task Task
	Err  error
}

type RunReport struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    []TaskFailure
	Duration  time.Duration
}

func (r RunReport) OK() bool {
	return len(r.Failed) == 0
}

func (r RunReport) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, len(r.Failed))
}
