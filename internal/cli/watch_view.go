package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/projectdesk/internal/cli/formatter"
	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/tracker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type watchKeyMap struct {
	Start  key.Binding
	Hold   key.Binding
	Resume key.Binding
	End    key.Binding
	Quit   key.Binding
}

func newWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Hold:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hold")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Hold, k.Resume, k.End, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// forSnapshot enables only the bindings that are legal next transitions.
func (k watchKeyMap) forSnapshot(snap tracker.Snapshot) watchKeyMap {
	k.Start.SetEnabled(snap.Allows(domain.EventStart))
	k.Hold.SetEnabled(snap.Allows(domain.EventHold))
	k.Resume.SetEnabled(snap.Allows(domain.EventResume))
	k.End.SetEnabled(snap.Allows(domain.EventEnd))
	return k
}

type watchTickMsg struct{}

type watchTransitionMsg struct {
	event domain.WorkEventType
	snap  tracker.Snapshot
	err   error
}

// watchModel is the live timer view. It ticks only while the displayed
// status is start; the tick chain ends on the first tick that finds the
// session held, ended or rolled back.
type watchModel struct {
	ctx      context.Context
	tracker  *tracker.Tracker
	clock    clock.Clock
	interval time.Duration
	title    string

	keys    watchKeyMap
	help    help.Model
	note    textinput.Model
	editing bool
	ticking bool
	err     error
}

func newWatchModel(ctx context.Context, tr *tracker.Tracker, clk clock.Clock, interval time.Duration, title string) *watchModel {
	if interval <= 0 {
		interval = tracker.DefaultTickInterval
	}
	note := textinput.New()
	note.Placeholder = "What was done?"
	note.CharLimit = 500
	note.Width = 60

	return &watchModel{
		ctx:      ctx,
		tracker:  tr,
		clock:    clk,
		interval: interval,
		title:    title,
		keys:     newWatchKeyMap(),
		help:     help.New(),
		note:     note,
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.ensureTicking()
}

func (m *watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return watchTickMsg{} })
}

func (m *watchModel) ensureTicking() tea.Cmd {
	if m.ticking || m.tracker.Snapshot().Status != domain.WorkRunning {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *watchModel) transition(ev domain.WorkEventType, note string) tea.Cmd {
	m.err = nil
	ctx, tr := m.ctx, m.tracker
	run := func() tea.Msg {
		snap, err := tr.Transition(ctx, ev, note)
		return watchTransitionMsg{event: ev, snap: snap, err: err}
	}
	if ev == domain.EventStart && !m.ticking {
		// start is shown optimistically, so the clock runs right away.
		m.ticking = true
		return tea.Batch(run, m.tick())
	}
	return run
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		if m.tracker.Snapshot().Status == domain.WorkRunning {
			return m, m.tick()
		}
		m.ticking = false
		return m, nil

	case watchTransitionMsg:
		m.err = msg.err
		return m, m.ensureTicking()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateNote(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m, m.transition(domain.EventStart, "")
		case key.Matches(msg, m.keys.Hold):
			return m, m.transition(domain.EventHold, "")
		case key.Matches(msg, m.keys.Resume):
			return m, m.transition(domain.EventResume, "")
		case key.Matches(msg, m.keys.End):
			if !m.tracker.Snapshot().Allows(domain.EventEnd) {
				return m, m.transition(domain.EventEnd, "")
			}
			m.err = nil
			m.editing = true
			m.note.Reset()
			return m, m.note.Focus()
		}
	}
	return m, nil
}

func (m *watchModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.note.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.note.Value()
		if err := validateDoneNote(value); err != nil {
			m.err = err
			return m, nil
		}
		m.editing = false
		m.note.Blur()
		return m, m.transition(domain.EventEnd, value)
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

var clockStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4)

func (m *watchModel) View() string {
	snap := m.tracker.Snapshot()
	elapsed := snap.ElapsedSeconds(m.clock.Now())

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Foreground(formatter.WorkStatusStyle(snap.Status).GetForeground()).Render(formatter.FormatClock(elapsed)))
	b.WriteString("\n")
	status := formatter.WorkStatusPill(snap.Status)
	if snap.Cycle > 0 {
		status += formatter.Dim(fmt.Sprintf("  cycle %d", snap.Cycle))
	}
	if snap.IsUpdating {
		status += formatter.Dim("  saving…")
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.editing {
		b.WriteString(formatter.Bold("Done note"))
		b.WriteString("\n")
		b.WriteString(m.note.View())
		b.WriteString("\n")
		b.WriteString(formatter.Dim("enter save · esc cancel"))
	} else {
		b.WriteString(m.help.View(m.keys.forSnapshot(snap)))
	}
	b.WriteString("\n")
	return b.String()
}

func runWatchView(ctx context.Context, app *App, tr *tracker.Tracker, title string) error {
	m := newWatchModel(ctx, tr, app.clk(), app.TickInterval, title)
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, tea.ErrProgramKilled)) && ctx.Err() != nil {
		return nil
	}
	return err
}
