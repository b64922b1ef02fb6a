package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/page-migration/internal/ports"
)

var _ ports.Progress = (*Lines)(nil)

// Lines prints one line per finished task.
type Lines struct {
	mu    sync.Mutex
	out   io.Writer
	label string
	total int
	done  int
}

func NewLines(out io.Writer, label string) *Lines {
	return &Lines{out: out, label: label}
}

func (l *Lines) Start(total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.total = total
	l.done = 0
	_, _ = fmt.Fprintf(l.out, "%s: 0/%d\n", l.label, total)
}

func (l *Lines) Increment() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.done++
	_, _ = fmt.Fprintf(l.out, "%s: %d/%d\n", l.label, l.done, l.total)
}

func (l *Lines) Finish() {}
