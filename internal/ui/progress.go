package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mpint/internal/check"
)

type progressModel struct {
	title   string
	events  <-chan check.Event
	spinner spinner.Model
	prog    progress.Model
	rows    []propertyRow
	index   map[check.Property]int
	width   int
	done    bool

	// interrupted is set when the user quits before the run finishes.
	interrupted bool
}

type propertyRow struct {
	prop    check.Property
	status  check.Status
	done    int
	total   int
	elapsed time.Duration
	err     error
}

type eventMsg check.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// The model quits once events is closed.
func NewProgressModel(title string, props []check.Property, events <-chan check.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	rows := make([]propertyRow, 0, len(props))
	index := make(map[check.Property]int, len(props))
	for _, p := range props {
		if _, dup := index[p]; dup {
			continue
		}
		index[p] = len(rows)
		rows = append(rows, propertyRow{prop: p, status: check.StatusQueued})
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		rows:    rows,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(check.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	switch {
	case m.interrupted:
		header = "interrupted: " + header
	case m.done:
		header = "done: " + header
	default:
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	// "  " + status(8) + " " + name(8) + " " + count(13) + " "
	detailWidth := m.width - 36
	if detailWidth < 20 {
		detailWidth = 20
	}

	for _, row := range m.rows {
		status := styleStatus(row.status).Render(fmt.Sprintf("%8s", row.status))
		count := fmt.Sprintf("%6d/%-6d", row.done, row.total)
		line := fmt.Sprintf("  %s %-8s %s %s", status, row.prop, count, truncate(rowDetail(row), detailWidth))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func rowDetail(row propertyRow) string {
	switch {
	case row.err != nil:
		return row.err.Error()
	case row.status == check.StatusPassed:
		return row.elapsed.Round(time.Millisecond).String()
	default:
		return ""
	}
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev check.Event) tea.Cmd {
	idx, ok := m.index[ev.Property]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	row.status = ev.Status
	row.done = ev.Done
	row.total = ev.Total
	if ev.Elapsed > 0 {
		row.elapsed = ev.Elapsed
	}
	if ev.Err != nil {
		row.err = ev.Err
	}
	return m.prog.SetPercent(m.percent())
}

// percent counts a finished property as complete even when it stopped at
// a counterexample.
func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range m.rows {
		switch {
		case row.status == check.StatusPassed || row.status == check.StatusFailed:
			total += 1.0
		case row.total > 0:
			total += float64(row.done) / float64(row.total)
		}
	}
	return total / float64(len(m.rows))
}

func styleStatus(status check.Status) lipgloss.Style {
	switch status {
	case check.StatusPassed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case check.StatusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case check.StatusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

// Interrupted reports whether the user quit the model before its events
// channel closed.
func Interrupted(m tea.Model) bool {
	pm, ok := m.(*progressModel)
	return ok && pm.interrupted
}

// Truncate fits value into width terminal cells, marking the cut with "...".
func Truncate(value string, width int) string {
	return truncate(value, width)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
