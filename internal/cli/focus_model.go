package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tandem/internal/cli/formatter"
	"github.com/alexanderramin/tandem/internal/focus"
	"github.com/alexanderramin/tandem/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// focusTickMsg carries the "MM:SS" pushed by the timer.
type focusTickMsg string

// focusCheckpointMsg reports the checkpoint taken by a pause.
type focusCheckpointMsg struct {
	result service.CheckpointResult
	err    error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type focusKeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

func newFocusKeyMap() focusKeyMap {
	return focusKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "start/pause")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "stop")),
	}
}

func (k focusKeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Toggle, k.Quit} }
func (k focusKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// ── model ────────────────────────────────────────────────────────────────────

// focusModel is the live timer screen. The timer pushes ticks into a channel
// that the model drains one message at a time; the final checkpoint is taken
// by the caller after the program exits.
type focusModel struct {
	ctx         context.Context
	session     *service.FocusSession
	projectName string

	ticks       chan string
	unsubscribe func()

	elapsed    string
	checkpoint *service.CheckpointResult
	busy       bool
	err        error

	keys focusKeyMap
	help help.Model
}

func newFocusModel(ctx context.Context, session *service.FocusSession, projectName string) *focusModel {
	m := &focusModel{
		ctx:         ctx,
		session:     session,
		projectName: projectName,
		ticks:       make(chan string, 1),
		elapsed:     focus.Format(session.Timer().Elapsed()),
		keys:        newFocusKeyMap(),
		help:        help.New(),
	}
	m.unsubscribe = session.Timer().OnTick(func(text string) {
		// Drop a tick rather than block the timer when the UI is behind.
		select {
		case m.ticks <- text:
		default:
		}
	})
	return m
}

func (m *focusModel) waitForTick() tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-m.ticks:
			return focusTickMsg(text)
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m *focusModel) Init() tea.Cmd {
	return m.waitForTick()
}

func (m *focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		m.elapsed = string(msg)
		return m, m.waitForTick()

	case focusCheckpointMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil && msg.result.Outcome != service.CheckpointSkipped {
			res := msg.result
			m.checkpoint = &res
		}
		m.elapsed = focus.Format(m.session.Timer().Elapsed())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.unsubscribe()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.busy {
				return m, nil
			}
			return m, m.toggle()
		}
	}
	return m, nil
}

// toggle pauses a running session, checkpointing in the background, or
// resumes a paused one.
func (m *focusModel) toggle() tea.Cmd {
	if m.session.Timer().State() != focus.Running {
		if _, err := m.session.Toggle(m.ctx); err != nil {
			m.err = err
		}
		return nil
	}
	m.busy = true
	m.session.Timer().Pause()
	m.elapsed = focus.Format(m.session.Timer().Elapsed())
	// Quitting or hitting the --for limit must not abort the submit.
	ctx := context.WithoutCancel(m.ctx)
	return func() tea.Msg {
		res, err := m.session.Pause(ctx)
		return focusCheckpointMsg{result: res, err: err}
	}
}

func (m *focusModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Focus · "+m.projectName) + "\n\n")

	clock := lipgloss.NewStyle().Bold(true).Foreground(formatter.ColorFg).PaddingLeft(2)
	switch m.session.Timer().State() {
	case focus.Running:
		b.WriteString(clock.Foreground(formatter.ColorGreen).Render(m.elapsed))
		b.WriteString("  " + formatter.StyleGreen.Render("● focusing"))
	case focus.Paused:
		b.WriteString(clock.Render(m.elapsed))
		b.WriteString("  " + formatter.StyleYellow.Render("❚❚ paused"))
	default:
		b.WriteString(clock.Render(m.elapsed))
		b.WriteString("  " + formatter.Dim("○ ready"))
	}
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString("  " + formatter.Dim("saving checkpoint…") + "\n")
	case m.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("error: "+m.err.Error()) + "\n")
	case m.checkpoint != nil:
		b.WriteString(fmt.Sprintf("  %s %s\n", formatter.CheckpointBadge(m.checkpoint.Outcome.String()),
			formatter.Dim(fmt.Sprintf("+%ds", m.checkpoint.Delta))))
	}

	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}
