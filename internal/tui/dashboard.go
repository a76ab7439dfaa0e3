package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"habitmap/internal/models"
)

var AppVersion = "0"

// --- Model ---
type DashboardModel struct {
	ctx                context.Context
	db                 Database
	workspaces         []models.Workspace
	activeWorkspaceIdx int

	goals     []models.Goal
	habits    map[int64][]models.Habit
	relations []models.HabitRelation
	flat      []GoalView

	view     *ViewState
	modal    *ModalManager
	input    *InputState
	progress progress.Model

	err           error
	Message       string
	messageIsErr  bool
	width, height int
}

func NewDashboardModel(ctx context.Context, db Database) DashboardModel {
	if _, err := db.EnsureDefaultWorkspace(ctx); err != nil {
		return DashboardModel{ctx: ctx, db: db, err: err}
	}
	workspaces, err := db.GetWorkspaces(ctx)

	m := DashboardModel{
		ctx:        ctx,
		db:         db,
		workspaces: workspaces,
		habits:     make(map[int64][]models.Habit),
		view:       newViewState(),
		modal:      newModalManager(),
		input:      newInputState(),
		progress:   progress.New(progress.WithDefaultGradient()),
		err:        err,
	}
	m.progress.Width = 30
	m.refreshData()
	return m
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) activeWorkspace() (models.Workspace, bool) {
	if len(m.workspaces) == 0 || m.activeWorkspaceIdx >= len(m.workspaces) {
		return models.Workspace{}, false
	}
	return m.workspaces[m.activeWorkspaceIdx], true
}

// refreshData reloads the active workspace's goals, habits, and relations and
// rebuilds the flattened tree.
func (m *DashboardModel) refreshData() {
	m.goals = nil
	m.habits = make(map[int64][]models.Habit)
	m.relations = nil
	m.flat = nil

	activeWS, ok := m.activeWorkspace()
	if !ok {
		m.Message = "No workspaces found. Please create one."
		return
	}
	theme := activeWS.Theme
	if theme == "" {
		theme = appConfig.Theme
	}
	SetTheme(theme)

	var goals []models.Goal
	var err error
	if appConfig.ShowArchived {
		goals, err = m.db.GetAllGoals(m.ctx, activeWS.ID)
	} else {
		goals, err = m.db.GetGoals(m.ctx, activeWS.ID)
	}
	if err != nil {
		m.setStatusError("Error loading goals: " + err.Error())
		return
	}
	m.goals = goals

	habits, err := m.db.GetHabits(m.ctx, activeWS.ID)
	if err != nil {
		m.setStatusError("Error loading habits: " + err.Error())
		return
	}
	for _, h := range habits {
		m.habits[h.GoalID] = append(m.habits[h.GoalID], h)
	}

	relations, err := m.db.GetRelations(m.ctx, activeWS.ID)
	if err != nil {
		m.setStatusError("Error loading relations: " + err.Error())
		return
	}
	m.relations = relations

	// New goals start expanded so fresh subtrees are visible.
	for _, g := range goals {
		if _, seen := m.view.expandedState[g.ID]; !seen {
			m.view.expandedState[g.ID] = true
		}
	}

	roots := BuildHierarchy(goals)
	m.flat = Flatten(roots, 0, m.view.expandedState, 0)
	for i := range m.flat {
		m.flat[i].Habits = m.habits[m.flat[i].ID]
	}

	if m.view.focusedGoalIdx >= len(m.flat) {
		m.view.focusedGoalIdx = len(m.flat) - 1
	}
	if m.view.focusedGoalIdx < 0 {
		m.view.focusedGoalIdx = 0
	}
	m.clampHabitFocus()
}

func (m *DashboardModel) clampHabitFocus() {
	habits := m.focusedGoalHabits()
	if m.view.focusedHabitIdx >= len(habits) {
		m.view.focusedHabitIdx = len(habits) - 1
	}
	if m.view.focusedHabitIdx < 0 {
		m.view.focusedHabitIdx = 0
	}
}

func (m *DashboardModel) focusedGoal() (GoalView, bool) {
	if len(m.flat) == 0 || m.view.focusedGoalIdx >= len(m.flat) {
		return GoalView{}, false
	}
	return m.flat[m.view.focusedGoalIdx], true
}

func (m *DashboardModel) focusedGoalHabits() []models.Habit {
	g, ok := m.focusedGoal()
	if !ok {
		return nil
	}
	return m.habits[g.ID]
}

func (m *DashboardModel) focusedHabit() (models.Habit, bool) {
	habits := m.focusedGoalHabits()
	if len(habits) == 0 || m.view.focusedHabitIdx >= len(habits) {
		return models.Habit{}, false
	}
	return habits[m.view.focusedHabitIdx], true
}

func (m *DashboardModel) setStatus(msg string) {
	m.Message = msg
	m.messageIsErr = false
}

func (m *DashboardModel) setStatusError(msg string) {
	m.Message = msg
	m.messageIsErr = true
}
