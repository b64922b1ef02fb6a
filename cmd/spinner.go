package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type analysisDoneMsg struct {
	err error
}

// analysisSpinnerModel shows which prompt the agent is working on and for how long.
type analysisSpinnerModel struct {
	spinner spinner.Model
	prompt  string
	started time.Time
	now     func() time.Time
	elapsed lipgloss.Style
	work    tea.Cmd
	err     error
	done    bool
}

func newAnalysisSpinnerModel(prompt string, now func() time.Time, work tea.Cmd) analysisSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return analysisSpinnerModel{
		spinner: s,
		prompt:  prompt,
		started: now(),
		now:     now,
		elapsed: lipgloss.NewStyle().Faint(true),
		work:    work,
	}
}

func (m analysisSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m analysisSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case analysisDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m analysisSpinnerModel) View() string {
	if m.done {
		return ""
	}

	elapsed := m.now().Sub(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s Waiting for the agent on %s %s", m.spinner.View(), m.prompt, m.elapsed.Render("("+elapsed.String()+")"))
}

func runAnalysisSpinner(ctx context.Context, output io.Writer, prompt string, work func(context.Context) error) error {
	workCmd := func() tea.Msg {
		return analysisDoneMsg{err: work(ctx)}
	}

	p := tea.NewProgram(
		newAnalysisSpinnerModel(prompt, time.Now, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(analysisSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
