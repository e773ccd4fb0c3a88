package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/dashboard"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type timerKeyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish & log")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Finish, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// tickMsg carries the timer generation it was scheduled under so a tick
// outliving a pause or finish is dropped.
type tickMsg struct {
	gen uint64
}

// timerModel is the bubbletea front end for the quick timer. All timer
// state lives in the coordinator; the model only mirrors the last snapshot.
type timerModel struct {
	ctx         context.Context
	coord       *dashboard.Coordinator
	interval    time.Duration
	clientID    string
	clientName  string
	projectName string

	keys     timerKeyMap
	help     help.Model
	snap     dashboard.Snapshot
	elapsed  time.Duration
	logged   int
	quitting bool
}

func newTimerModel(ctx context.Context, coord *dashboard.Coordinator, interval time.Duration, clientID, clientName, projectName string) *timerModel {
	return &timerModel{
		ctx:         ctx,
		coord:       coord,
		interval:    interval,
		clientID:    clientID,
		clientName:  clientName,
		projectName: projectName,
		keys:        defaultTimerKeys(),
		help:        help.New(),
		snap:        coord.Snapshot(),
	}
}

func (m *timerModel) Init() tea.Cmd {
	return nil
}

func (m *timerModel) scheduleTick(gen uint64) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *timerModel) dispatch(cmd dashboard.Command) {
	_, _ = m.coord.Dispatch(m.ctx, cmd)
	m.snap = m.coord.Snapshot()
	m.elapsed = m.snap.Elapsed
}

func (m *timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		elapsed, ok := m.coord.Tick(msg.gen)
		m.elapsed = elapsed
		if !ok {
			return m, nil
		}
		return m, m.scheduleTick(msg.gen)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Start):
			m.dispatch(dashboard.Command{Kind: dashboard.StartTimer})
			// A rejected start leaves the existing tick chain in charge.
			if !m.snap.Message.Failure && m.snap.TimerState == timer.Running {
				return m, m.scheduleTick(m.coord.TimerGeneration())
			}

		case key.Matches(msg, m.keys.Pause):
			m.dispatch(dashboard.Command{Kind: dashboard.PauseTimer})

		case key.Matches(msg, m.keys.Finish):
			m.dispatch(dashboard.Command{Kind: dashboard.FinishTimer})
			if !m.snap.Message.Failure {
				m.logged++
			}
			// A finish that reset the timer clears its project whether or
			// not the run was stored; re-arm the same target so the next run
			// can start right away.
			if m.snap.TimerState == timer.Idle {
				result := m.snap.Message
				_, _ = m.coord.Dispatch(m.ctx, dashboard.Command{
					Kind:        dashboard.SelectTarget,
					ClientRef:   m.clientID,
					ProjectName: m.projectName,
				})
				m.snap = m.coord.Snapshot()
				m.snap.Message = result
			}
		}
	}
	return m, nil
}

func (m *timerModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n\n", formatter.Bold(m.clientName), formatter.Dim("/"), m.projectName)
	fmt.Fprintf(&b, "  %s   %s\n", formatter.StyleBold.Render(formatter.FormatClock(m.elapsed)), formatter.TimerStatePill(m.snap.TimerState))

	if text := m.snap.Message.Text; text != "" {
		if m.snap.Message.Failure {
			b.WriteString("\n" + formatter.Failure(text) + "\n")
		} else {
			b.WriteString("\n" + formatter.Success(text) + "\n")
		}
	}
	if m.logged > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("%d session(s) logged this run", m.logged)) + "\n")
	}

	return formatter.RenderBox("Timer", b.String()) + "\n" + m.help.View(m.keys) + "\n"
}
