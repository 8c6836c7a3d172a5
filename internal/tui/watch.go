// Package tui implements the live control-line dashboard behind the
// watch command. It renders the current state of all four lines plus a
// scrolling table of recent transitions, fed by a monitor running in a
// background goroutine.
package tui

import (
	"context"
	"fmt"

	"github.com/allbin/linemon"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyTime      = "time"
	columnKeySignal    = "signal"
	columnKeyLevel     = "level"
	columnKeyDirection = "direction"

	maxTransitions = 200
)

// ChannelSink routes monitor events into a channel for the dashboard.
// Emit never blocks the sampling loop: when the dashboard falls behind,
// excess events are dropped from the display (the monitor's own log
// output is unaffected because watch mode replaces it entirely).
type ChannelSink struct {
	ch chan<- linemon.Event
}

func NewChannelSink(ch chan<- linemon.Event) ChannelSink {
	return ChannelSink{ch: ch}
}

func (s ChannelSink) Emit(e linemon.Event) error {
	select {
	case s.ch <- e:
	default:
	}
	return nil
}

type eventMsg linemon.Event

// monitorStoppedMsg is delivered when the background monitor exits and
// no further events will arrive. The exit reason is reported by Run
// after the program terminates.
type monitorStoppedMsg struct{}

// Model is the Bubble Tea model for the watch dashboard
type Model struct {
	device string
	kind   linemon.BackendKind

	state  linemon.LineState
	recent []linemon.Event
	count  int

	events <-chan linemon.Event

	tbl     table.Model
	help    help.Model
	keys    watchKeys
	width   int
	stopped bool
}

func newModel(device string, kind linemon.BackendKind, initial linemon.LineState,
	events <-chan linemon.Event) Model {

	columns := []table.Column{
		table.NewColumn(columnKeyTime, "Time", 16),
		table.NewColumn(columnKeySignal, "Signal", 8),
		table.NewColumn(columnKeyLevel, "Level", 7),
		table.NewColumn(columnKeyDirection, "Edge", 6),
	}

	tbl := table.New(columns).
		WithBaseStyle(tableBaseStyle).
		WithPageSize(12)

	return Model{
		device: device,
		kind:   kind,
		state:  initial,
		events: events,
		tbl:    tbl,
		help:   help.New(),
		keys:   newWatchKeys(),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan linemon.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return monitorStoppedMsg{}
		}
		return eventMsg(e)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.recent = nil
			m.tbl = m.tbl.WithRows(nil)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.tbl = m.tbl.WithTargetWidth(msg.Width - 2)
		return m, nil

	case eventMsg:
		m.applyEvent(linemon.Event(msg))
		m.tbl = m.tbl.WithRows(m.transitionRows())
		return m, waitForEvent(m.events)

	case monitorStoppedMsg:
		m.stopped = true
		return m, nil
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// applyEvent updates the live line state and the transition history,
// newest first, bounded at maxTransitions.
func (m *Model) applyEvent(e linemon.Event) {
	switch e.Signal {
	case linemon.SignalCTS:
		m.state.CTS = e.New
	case linemon.SignalRTS:
		m.state.RTS = e.New
	case linemon.SignalDSR:
		m.state.DSR = e.New
	case linemon.SignalDTR:
		m.state.DTR = e.New
	}

	m.recent = append([]linemon.Event{e}, m.recent...)
	if len(m.recent) > maxTransitions {
		m.recent = m.recent[:maxTransitions]
	}
	m.count++
}

func (m Model) transitionRows() []table.Row {
	rows := make([]table.Row, 0, len(m.recent))
	for _, e := range m.recent {
		level := "LOW"
		if e.New {
			level = "HIGH"
		}
		edge := risingStyle.Render("↑ rising")
		if e.Direction() == linemon.Falling {
			edge = fallingStyle.Render("↓ falling")
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyTime:      e.Time.Format("15:04:05.000000"),
			columnKeySignal:    e.Signal.String(),
			columnKeyLevel:     level,
			columnKeyDirection: edge,
		}))
	}
	return rows
}

func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf(" linemon watch — %s (%s backend) ", m.device, m.kind))
	status := statusStyle.Render(fmt.Sprintf("%d transitions observed", m.count))

	lines := lipgloss.JoinHorizontal(lipgloss.Top,
		renderLine("CTS", m.state.CTS),
		renderLine("RTS", m.state.RTS),
		renderLine("DSR", m.state.DSR),
		renderLine("DTR", m.state.DTR),
	)

	sections := []string{title, "", lines, "", m.tbl.View(), status}
	if m.stopped {
		sections = append(sections, errorStyle.Render("monitor stopped (press q to exit)"))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderLine(name string, high bool) string {
	level := lowStyle.Render("LOW ")
	if high {
		level = highStyle.Render("HIGH")
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(
		signalNameStyle.Render(name) + " " + level)
}

// Run opens a monitor on the device, starts it in the background and
// drives the dashboard until the user quits or the monitor fails.
// DSR/DTR reporting is always on here; the dashboard shows all four
// lines regardless of the monitor command's verbose flag.
func Run(device string, opts ...linemon.Option) error {
	events := make(chan linemon.Event, 64)

	opts = append(opts,
		linemon.WithSink(NewChannelSink(events)),
		linemon.WithVerbose(true),
	)

	m, err := linemon.New(device, opts...)
	if err != nil {
		return err
	}
	if err := m.Init(); err != nil {
		return err
	}

	initial, err := m.State()
	if err != nil {
		m.Cleanup()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := m.Run(ctx)
		close(events)
		done <- err
	}()

	model := newModel(device, m.Backend(), initial, events)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		cancel()
		<-done
		return err
	}

	cancel()
	return <-done
}
