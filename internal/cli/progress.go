package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/framecast/pkg/progress"
)

// Progress view styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	phaseStyle     = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

const defaultBarWidth = 40

// =============================================================================
// ProgressModel - Interactive conversion progress
// =============================================================================

type eventMsg progress.Event

type finishedMsg struct{ err error }

// ProgressModel is the bubbletea model that renders conversion events as
// a progress bar. Pressing q or ctrl+c cancels the conversion.
type ProgressModel struct {
	Title    string
	Last     progress.Event
	Events   int
	Finished bool
	Err      error
	Width    int

	events <-chan progress.Event
	cancel context.CancelFunc
}

// NewProgressModel creates a model reading from events.
func NewProgressModel(title string, events <-chan progress.Event, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{Title: title, Width: defaultBarWidth, events: events, cancel: cancel}
}

func waitForEvent(events <-chan progress.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.Last = progress.Event(msg)
		m.Events++
		return m, waitForEvent(m.events)
	case finishedMsg:
		m.Finished = true
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.Width = min(defaultBarWidth, max(10, msg.Width-30))
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	pct := max(0, min(100, m.Last.Percent))
	filled := int(pct / 100 * float64(m.Width))
	b.WriteString("  ")
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", m.Width-filled)))
	b.WriteString(StyleNumber.Render(fmt.Sprintf(" %3.0f%%", pct)))
	b.WriteString("\n")

	phase := string(m.Last.Phase)
	if phase == "" {
		phase = "starting"
	}
	b.WriteString("  " + phaseStyle.Render(phase) + StyleDim.Render(m.Last.Message))
	b.WriteString("\n")

	if m.Finished {
		b.WriteString("\n")
		if m.Err != nil {
			b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
		} else {
			b.WriteString(styleIconSuccess.Render(iconSuccess) + " done")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(listDimStyle.Render("  q cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// runProgressView runs work while showing the bubbletea progress view.
// Cancelling from the view cancels the context passed to work.
func runProgressView(ctx context.Context, title string, work func(ctx context.Context, r progress.Reporter) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := progress.NewChannel(256)
	p := tea.NewProgram(NewProgressModel(title, ch.C, cancel), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	errc := make(chan error, 1)
	go func() {
		err := work(ctx, ch)
		p.Send(finishedMsg{err: err})
		errc <- err
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-errc
		return fmt.Errorf("progress view: %w", err)
	}
	return <-errc
}
