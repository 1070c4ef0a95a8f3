// Package tui implements the terminal dashboard on top of the query
// controller.
//
// The model is driven by the bubbletea event loop. Controller state arrives
// as snapshots over the controller's subscription channel; the model never
// reads controller state from another goroutine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"askai/client/internal/controller"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// Exit describes why the dashboard ended.
type Exit int

const (
	ExitQuit Exit = iota
	ExitLoggedOut
	ExitSignedOut
)

type snapshotMsg controller.Snapshot

type closedMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(36)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	queryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Dashboard is the bubbletea model of the terminal dashboard.
type Dashboard struct {
	ctx     context.Context
	ctrl    *controller.Controller
	updates <-chan controller.Snapshot

	input   textinput.Model
	spinner spinner.Model

	snap   controller.Snapshot
	focus  focusArea
	cursor int
	width  int
	exit   Exit
	done   bool
}

// NewDashboard returns a dashboard for a mounted controller. The subscription
// is taken here so that no update is missed before the program starts.
func NewDashboard(ctx context.Context, ctrl *controller.Controller) *Dashboard {
	ti := textinput.New()
	ti.Placeholder = "Ask anything"
	ti.Prompt = "> "
	ti.CharLimit = 8000
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	updates, _ := ctrl.Subscribe()
	return &Dashboard{
		ctx:     ctx,
		ctrl:    ctrl,
		updates: updates,
		input:   ti,
		spinner: sp,
		snap:    ctrl.Snapshot(),
	}
}

// Exit reports how the dashboard ended.
func (m *Dashboard) Exit() Exit { return m.exit }

func (m *Dashboard) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForSnapshot())
}

func (m *Dashboard) waitForSnapshot() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func (m *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-4)
		return m, nil

	case snapshotMsg:
		wasMounted := m.snap.Mounted
		m.snap = controller.Snapshot(msg)
		if m.cursor >= len(m.snap.History) {
			m.cursor = max(0, len(m.snap.History)-1)
		}
		if wasMounted && !m.snap.Mounted && m.exit == ExitQuit {
			m.exit = ExitSignedOut
			m.done = true
			return m, tea.Quit
		}
		return m, m.waitForSnapshot()

	case closedMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.exit = ExitLoggedOut
		m.done = true
		_ = m.ctrl.Logout(m.ctx)
		return m, tea.Quit

	case tea.KeyCtrlN:
		m.ctrl.NewChat()
		m.input.SetValue("")
		return m, nil

	case tea.KeyTab:
		if m.focus == focusInput && len(m.snap.History) > 0 {
			m.focus = focusHistory
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusHistory {
		switch msg.Type {
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown:
			if m.cursor < len(m.snap.History)-1 {
				m.cursor++
			}
		case tea.KeyEnter:
			if m.cursor < len(m.snap.History) {
				m.ctrl.SelectHistory(m.snap.History[m.cursor].ID)
			}
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if m.ctrl.Submit(m.ctx, m.input.Value()) {
			m.input.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Dashboard) View() string {
	if m.done {
		return ""
	}

	var main strings.Builder
	main.WriteString(titleStyle.Render("askai"))
	main.WriteString("\n\n")

	switch m.snap.State {
	case controller.StateIdle:
		main.WriteString(dimStyle.Render("Ask a question to get started."))
	case controller.StateLoading:
		fmt.Fprintf(&main, "%s\n\n%s Thinking...", queryStyle.Render(m.snap.Query), m.spinner.View())
	case controller.StateSuccess:
		fmt.Fprintf(&main, "%s\n\n", queryStyle.Render(m.snap.Query))
		if m.snap.Exchange != nil {
			main.WriteString(m.snap.Exchange.Response)
		}
	case controller.StateError:
		fmt.Fprintf(&main, "%s\n\n%s", queryStyle.Render(m.snap.Query), errorStyle.Render(m.snap.Error))
	}
	main.WriteString("\n\n")
	main.WriteString(m.input.View())

	body := main.String()
	if len(m.snap.History) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderHistory(), "  ", body)
	}

	help := "enter: ask • tab: history • ctrl+n: new chat • ctrl+l: log out • esc: quit"
	return body + "\n" + helpStyle.Render(help) + "\n"
}

func (m *Dashboard) renderHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	for i, item := range m.snap.History {
		b.WriteString("\n")
		if m.focus == focusHistory && i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + item.Label))
		} else {
			b.WriteString("  " + item.Label)
		}
	}
	return sidebarStyle.Render(b.String())
}
