package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nhle/sprintbranch/internal/keys"
	"github.com/nhle/sprintbranch/internal/theme"
)

// doneMsg is sent when the wrapped function returns.
type doneMsg struct {
	err error
}

// Model is the Bubble Tea model showing a spinner while work runs.
type Model struct {
	spinner  spinner.Model
	keys     *keys.KeyMap
	title    string
	work     func() error
	cancel   context.CancelFunc
	done     bool
	canceled bool
	err      error
}

// NewModel creates a spinner model that runs work and calls cancel when
// the user presses the cancel key.
func NewModel(title string, work func() error, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.SpinnerStyle

	return Model{
		spinner: sp,
		keys:    keys.DefaultKeyMap(),
		title:   title,
		work:    work,
		cancel:  cancel,
	}
}

// Init starts the spinner and the work.
func (m Model) Init() tea.Cmd {
	work := m.work
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return doneMsg{err: work()} },
	)
}

// Update handles messages for the spinner.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		// The work notices the canceled context and reports back with
		// a doneMsg, so keep running until then.
		if key.Matches(msg, m.keys.Cancel) && !m.canceled {
			m.canceled = true
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line.
func (m Model) View() string {
	if m.done {
		return ""
	}

	title := m.title
	if m.canceled {
		title = "Canceling..."
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	return fmt.Sprintf("%s %s  %s\n",
		m.spinner.View(), title,
		theme.HelpStyle.Render(strings.Join(help, " • ")),
	)
}

// Err returns the error the work finished with.
func (m Model) Err() error {
	return m.err
}

// Runner shows a spinner while a function runs, if output is a terminal.
type Runner struct {
	in      io.Reader
	out     io.Writer
	enabled bool
}

// NewRunner creates a Runner drawing on out. The spinner is disabled when
// out is not a terminal.
func NewRunner(out *os.File) *Runner {
	return &Runner{
		in:      os.Stdin,
		out:     out,
		enabled: term.IsTerminal(int(out.Fd())),
	}
}

// Disabled returns a Runner that just calls the function.
func Disabled() *Runner {
	return &Runner{}
}

// Run calls fn, showing title next to a spinner until it returns.
// Pressing the cancel key cancels the context passed to fn.
func (r *Runner) Run(
	ctx context.Context,
	title string,
	fn func(ctx context.Context) error,
) error {
	if !r.enabled {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(title, func() error { return fn(ctx) }, cancel)
	final, err := tea.NewProgram(m,
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	).Run()
	if err != nil {
		return fmt.Errorf("running progress display: %w", err)
	}

	return final.(Model).Err()
}
