package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/studysync/internal/cli/formatter"
	"github.com/alexanderramin/studysync/internal/domain"
)

type tipDoneMsg struct{}

// tipWaitModel shows a spinner until the tip request closes done. Ctrl+C
// or Esc stops waiting early.
type tipWaitModel struct {
	spinner   spinner.Model
	label     string
	done      <-chan struct{}
	finished  bool
	abandoned bool
}

func newTipWaitModel(task *domain.DailyTask, done <-chan struct{}) tipWaitModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)
	return tipWaitModel{
		spinner: s,
		label:   fmt.Sprintf("Asking for a tip on %s...", task.TipTopic()),
		done:    done,
	}
}

func waitForTip(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return tipDoneMsg{}
	}
}

func (m tipWaitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForTip(m.done))
}

func (m tipWaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tipDoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.abandoned = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tipWaitModel) View() string {
	if m.finished || m.abandoned {
		return ""
	}
	return fmt.Sprintf("  %s %s  %s\n", m.spinner.View(), m.label, formatter.Dim("esc to stop waiting"))
}

// runTipSpinner blocks until the tip arrives or the user stops waiting.
// It reports whether the user gave up.
func runTipSpinner(ctx context.Context, in io.Reader, out io.Writer, task *domain.DailyTask, done <-chan struct{}) (bool, error) {
	p := tea.NewProgram(newTipWaitModel(task, done),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running tip spinner: %w", err)
	}
	m, _ := final.(tipWaitModel)
	return m.abandoned, nil
}
