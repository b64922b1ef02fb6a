package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/page-migration/internal/ports"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var _ ports.Progress = (*Bar)(nil)

type incrementMsg struct{}

type finishMsg struct{}

type barModel struct {
	bar   progress.Model
	label lipgloss.Style
	title string
	total int
	done  int
	quit  bool
}

func newBarModel(title string, total int) barModel {
	return barModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		title: title,
		total: total,
	}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case incrementMsg:
		m.done = min(m.done+1, m.total)
		return m, nil
	case finishMsg:
		m.quit = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m barModel) percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m barModel) View() string {
	line := fmt.Sprintf("%s %s %d/%d", m.label.Render(m.title), m.bar.ViewAs(m.percent()), m.done, m.total)
	if m.quit {
		return line + "\n"
	}
	return line
}

// Bar drives a bubbletea program that redraws a progress bar in place.
type Bar struct {
	out   io.Writer
	title string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

func NewBar(out io.Writer, title string) *Bar {
	return &Bar{out: out, title: title}
}

func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.program != nil {
		return
	}

	b.program = tea.NewProgram(
		newBarModel(b.title, total),
		tea.WithInput(nil),
		tea.WithOutput(b.out),
	)
	b.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = p.Run()
	}(b.program, b.done)
}

func (b *Bar) Increment() {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()

	if p != nil {
		p.Send(incrementMsg{})
	}
}

// Finish stops the program and waits for the final frame.
func (b *Bar) Finish() {
	b.mu.Lock()
	p, done := b.program, b.done
	b.program, b.done = nil, nil
	b.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(finishMsg{})
	<-done
}
