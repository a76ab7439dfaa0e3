package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateInitializing SessionState = iota
	StateDashboard
)

// MainModel is the root bubbletea model that switches between sub-models.
type MainModel struct {
	state     SessionState
	ctx       context.Context
	db        Database
	textInput textinput.Model
	dashboard DashboardModel
	err       error
	width     int
	height    int
}

func NewMainModel(ctx context.Context, db Database) MainModel {
	m := MainModel{ctx: ctx, db: db}

	workspaces, err := db.GetWorkspaces(ctx)
	if err != nil {
		m.err = err
		return m
	}

	if len(workspaces) > 0 {
		m.state = StateDashboard
		m.dashboard = NewDashboardModel(ctx, db)
	} else {
		// First run: name the initial workspace before entering the dashboard.
		m.state = StateInitializing
		ti := textinput.New()
		ti.Placeholder = "Personal"
		ti.Focus()
		ti.CharLimit = 60
		ti.Width = 30
		m.textInput = ti
	}

	return m
}

func (m MainModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, textinput.Blink)
	if m.state == StateDashboard {
		cmds = append(cmds, m.dashboard.Init())
	}
	return tea.Batch(cmds...)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateDashboard {
			var newDash tea.Model
			newDash, cmd = m.dashboard.Update(msg)
			m.dashboard = newDash.(DashboardModel)
			return m, cmd
		}
	}

	switch m.state {
	case StateInitializing:
		return m.updateInitializing(msg)
	case StateDashboard:
		newDash, newCmd := m.dashboard.Update(msg)
		m.dashboard = newDash.(DashboardModel)
		return m, newCmd
	}

	return m, cmd
}

func (m MainModel) updateInitializing(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.textInput.Value())
		if name == "" {
			name = "Personal"
		}
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		if _, err := m.db.CreateWorkspace(m.ctx, name, slug); err != nil {
			m.err = err
			return m, nil
		}

		m.state = StateDashboard
		m.dashboard = NewDashboardModel(m.ctx, m.db)
		m.dashboard.width = m.width
		m.dashboard.height = m.height
		return m, m.dashboard.Init()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\nPress Ctrl+C to quit.", m.err)
	}

	switch m.state {
	case StateInitializing:
		return fmt.Sprintf(
			"\n  %s\n\n  %s\n\n  %s\n",
			"Welcome. Let's map your goals.",
			"Name your first workspace:",
			m.textInput.View(),
		)
	case StateDashboard:
		return m.dashboard.View()
	}

	return ""
}
