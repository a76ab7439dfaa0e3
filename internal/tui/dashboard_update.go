package tui

import (
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitmap/internal/models"
)

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modal.IsOpen() {
			return m.updateModal(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m DashboardModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.view.focusedPane == paneGoals {
			m.view.focusedPane = paneHabits
			m.view.focusedHabitIdx = 0
		} else {
			m.view.focusedPane = paneGoals
		}
		return m, nil
	case "w":
		if len(m.workspaces) > 1 {
			m.activeWorkspaceIdx = (m.activeWorkspaceIdx + 1) % len(m.workspaces)
			m.view.focusedGoalIdx = 0
			m.view.focusedHabitIdx = 0
			m.refreshData()
		}
		return m, nil
	case "W":
		m.openInputModal(&WorkspaceCreateState{}, "Workspace name...", "")
		return m, nil
	case "T":
		names := make([]string, 0, len(Themes))
		for name := range Themes {
			names = append(names, name)
		}
		sort.Strings(names)
		m.modal.themeNames = names
		m.modal.Open(&ThemeState{})
		return m, nil
	case "E":
		m.modal.Open(&ExportState{Options: []string{"SVG map", "PNG map", "JSON backup", "PDF report"}})
		return m, nil
	}

	if m.view.focusedPane == paneHabits {
		return m.updateHabitPane(msg)
	}
	return m.updateGoalPane(msg)
}

func (m DashboardModel) updateGoalPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.view.focusedGoalIdx < len(m.flat)-1 {
			m.view.focusedGoalIdx++
			m.view.focusedHabitIdx = 0
		}
	case "k", "up":
		if m.view.focusedGoalIdx > 0 {
			m.view.focusedGoalIdx--
			m.view.focusedHabitIdx = 0
		}
	case " ", "enter":
		if g, ok := m.focusedGoal(); ok {
			m.view.expandedState[g.ID] = !m.view.expandedState[g.ID]
			m.refreshData()
		}
	case "a":
		m.openInputModal(&GoalCreateState{}, "New goal...", "")
	case "A":
		if g, ok := m.focusedGoal(); ok {
			id := g.ID
			m.openInputModal(&GoalCreateState{ParentID: &id}, "New subgoal...", "")
		}
	case "e":
		if g, ok := m.focusedGoal(); ok {
			m.openInputModal(&GoalEditState{GoalID: g.ID}, "Goal name...", g.Name)
		}
	case "d":
		if g, ok := m.focusedGoal(); ok {
			next := models.GoalStatusDone
			if g.Status == string(models.GoalStatusDone) {
				next = models.GoalStatusActive
			}
			if err := m.db.UpdateGoalStatus(m.ctx, g.ID, next); err != nil {
				m.setStatusError("Error updating goal: " + err.Error())
			} else {
				m.refreshData()
			}
		}
	case "z":
		if g, ok := m.focusedGoal(); ok {
			if err := m.db.UpdateGoalStatus(m.ctx, g.ID, models.GoalStatusArchived); err != nil {
				m.setStatusError("Error archiving goal: " + err.Error())
			} else {
				m.setStatus("Archived " + g.Name)
				m.refreshData()
			}
		}
	case "x":
		if g, ok := m.focusedGoal(); ok {
			m.modal.Open(&GoalDeleteState{GoalID: g.ID})
		}
	case "K":
		m.swapGoalWithSibling(-1)
	case "J":
		m.swapGoalWithSibling(1)
	}
	return m, nil
}

// swapGoalWithSibling reorders the focused goal against its neighbor in the
// flattened view when both share a parent.
func (m *DashboardModel) swapGoalWithSibling(dir int) {
	idx := m.view.focusedGoalIdx
	other := idx + dir
	if idx < 0 || idx >= len(m.flat) || other < 0 || other >= len(m.flat) {
		return
	}
	a, b := m.flat[idx], m.flat[other]
	if !sameParent(a.Goal, b.Goal) {
		return
	}
	if err := m.db.SwapGoalRanks(m.ctx, a.ID, b.ID); err != nil {
		m.setStatusError("Error reordering goals: " + err.Error())
		return
	}
	m.view.focusedGoalIdx = other
	m.refreshData()
}

func sameParent(a, b models.Goal) bool {
	if a.ParentID == nil && b.ParentID == nil {
		return true
	}
	return a.ParentID != nil && b.ParentID != nil && *a.ParentID == *b.ParentID
}

func (m DashboardModel) updateHabitPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.view.focusedHabitIdx < len(m.focusedGoalHabits())-1 {
			m.view.focusedHabitIdx++
		}
	case "k", "up":
		if m.view.focusedHabitIdx > 0 {
			m.view.focusedHabitIdx--
		}
	case "a":
		if g, ok := m.focusedGoal(); ok {
			m.openInputModal(&HabitCreateState{GoalID: g.ID}, "New habit...", "")
		}
	case "e":
		if h, ok := m.focusedHabit(); ok {
			m.openInputModal(&HabitEditState{HabitID: h.ID}, "Habit name...", h.Name)
		}
	case "c":
		if h, ok := m.focusedHabit(); ok {
			m.modal.Open(&HabitCompleteState{HabitID: h.ID})
			m.input.noteInput.SetValue("")
			m.input.noteInput.Focus()
		}
	case "p":
		if h, ok := m.focusedHabit(); ok {
			next := models.HabitStatusPaused
			if h.Status == string(models.HabitStatusPaused) {
				next = models.HabitStatusActive
			}
			if err := m.db.UpdateHabitStatus(m.ctx, h.ID, next); err != nil {
				m.setStatusError("Error updating habit: " + err.Error())
			} else {
				m.refreshData()
			}
		}
	case "x":
		if h, ok := m.focusedHabit(); ok {
			m.modal.Open(&HabitDeleteState{HabitID: h.ID})
		}
	case "m":
		m.openRelationPicker(string(models.RelationMain))
	case "n":
		m.openRelationPicker(string(models.RelationNext))
	case "K":
		m.swapHabitWithNeighbor(-1)
	case "J":
		m.swapHabitWithNeighbor(1)
	}
	return m, nil
}

func (m *DashboardModel) swapHabitWithNeighbor(dir int) {
	habits := m.focusedGoalHabits()
	idx := m.view.focusedHabitIdx
	other := idx + dir
	if idx < 0 || idx >= len(habits) || other < 0 || other >= len(habits) {
		return
	}
	if err := m.db.SwapHabitRanks(m.ctx, habits[idx].ID, habits[other].ID); err != nil {
		m.setStatusError("Error reordering habits: " + err.Error())
		return
	}
	m.view.focusedHabitIdx = other
	m.refreshData()
}

// openRelationPicker lists every other habit in the workspace as a candidate
// endpoint for the chosen relation kind.
func (m *DashboardModel) openRelationPicker(kind string) {
	h, ok := m.focusedHabit()
	if !ok {
		return
	}
	var options []relOption
	for _, goalHabits := range m.habits {
		for _, other := range goalHabits {
			if other.ID == h.ID {
				continue
			}
			options = append(options, relOption{ID: other.ID, Label: other.Name})
		}
	}
	if len(options) == 0 {
		m.setStatus("No other habits to relate to.")
		return
	}
	sort.Slice(options, func(i, j int) bool { return options[i].ID < options[j].ID })
	m.modal.Open(&RelationPickState{HabitID: h.ID, Kind: kind, Options: options})
}

func (m *DashboardModel) openInputModal(state ModalState, placeholder, value string) {
	m.modal.Open(state)
	m.input.textInput.Placeholder = placeholder
	m.input.textInput.SetValue(value)
	m.input.textInput.CursorEnd()
	m.input.textInput.Focus()
}

func (m DashboardModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.modal.Close()
		m.input.textInput.Blur()
		m.input.noteInput.Blur()
		return m, nil
	}

	if m.modal.InInputMode() {
		if msg.Type == tea.KeyEnter {
			return m.confirmInputModal()
		}
		var cmd tea.Cmd
		if m.modal.Is(ModalHabitComplete) {
			m.input.noteInput, cmd = m.input.noteInput.Update(msg)
		} else {
			m.input.textInput, cmd = m.input.textInput.Update(msg)
		}
		return m, cmd
	}

	switch m.modal.ActiveModal() {
	case ModalGoalDelete, ModalHabitDelete:
		return m.updateDeleteModal(msg)
	case ModalRelationPick:
		return m.updateRelationModal(msg)
	case ModalTheme:
		return m.updateThemeModal(msg)
	case ModalExport:
		return m.updateExportModal(msg)
	}
	return m, nil
}

func (m DashboardModel) confirmInputModal() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.textInput.Value())

	switch state := m.modal.Current().(type) {
	case *GoalCreateState:
		if value != "" {
			if ws, ok := m.activeWorkspace(); ok {
				if _, err := m.db.AddGoal(m.ctx, ws.ID, value, state.ParentID); err != nil {
					m.setStatusError("Error adding goal: " + err.Error())
				}
			}
		}
	case *GoalEditState:
		if value != "" {
			if err := m.db.EditGoal(m.ctx, state.GoalID, value); err != nil {
				m.setStatusError("Error editing goal: " + err.Error())
			}
		}
	case *HabitCreateState:
		if value != "" {
			if _, err := m.db.AddHabit(m.ctx, state.GoalID, value, 0); err != nil {
				m.setStatusError("Error adding habit: " + err.Error())
			}
		}
	case *HabitEditState:
		if value != "" {
			if err := m.db.EditHabit(m.ctx, state.HabitID, value); err != nil {
				m.setStatusError("Error editing habit: " + err.Error())
			}
		}
	case *HabitCompleteState:
		note := strings.TrimSpace(m.input.noteInput.Value())
		if err := m.db.CompleteHabit(m.ctx, state.HabitID, time.Now(), note); err != nil {
			m.setStatusError("Error logging completion: " + err.Error())
		} else {
			m.setStatus("Completion logged.")
		}
	case *WorkspaceCreateState:
		if value != "" {
			slug := strings.ToLower(strings.ReplaceAll(value, " ", "-"))
			if _, err := m.db.CreateWorkspace(m.ctx, value, slug); err != nil {
				m.setStatusError("Error creating workspace: " + err.Error())
			} else if workspaces, err := m.db.GetWorkspaces(m.ctx); err == nil {
				m.workspaces = workspaces
				m.activeWorkspaceIdx = len(workspaces) - 1
			}
		}
	}

	m.modal.Close()
	m.input.textInput.Blur()
	m.input.noteInput.Blur()
	m.refreshData()
	return m, nil
}

func (m DashboardModel) updateDeleteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if state, ok := m.modal.GoalDeleteState(); ok {
			if err := m.db.DeleteGoal(m.ctx, state.GoalID); err != nil {
				m.setStatusError("Error deleting goal: " + err.Error())
			} else {
				m.setStatus("Goal deleted.")
			}
		}
		if state, ok := m.modal.HabitDeleteState(); ok {
			if err := m.db.DeleteHabit(m.ctx, state.HabitID); err != nil {
				m.setStatusError("Error deleting habit: " + err.Error())
			} else {
				m.setStatus("Habit deleted.")
			}
		}
		m.modal.Close()
		m.refreshData()
	case "n":
		m.modal.Close()
	}
	return m, nil
}

func (m DashboardModel) updateRelationModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state, ok := m.modal.RelationPickState()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if state.Cursor > 0 {
			state.Cursor--
		}
	case "down", "j":
		if state.Cursor < len(state.Options)-1 {
			state.Cursor++
		}
	case "enter":
		if state.Cursor < len(state.Options) {
			other := state.Options[state.Cursor].ID
			err := m.db.SetRelation(m.ctx, state.HabitID, other, models.RelationKind(state.Kind))
			if err != nil {
				m.setStatusError("Error saving relation: " + err.Error())
			} else {
				m.setStatus("Relation saved.")
			}
		}
		m.modal.Close()
		m.refreshData()
	case "backspace":
		if state.Cursor < len(state.Options) {
			other := state.Options[state.Cursor].ID
			err := m.db.RemoveRelation(m.ctx, state.HabitID, other, models.RelationKind(state.Kind))
			if err != nil {
				m.setStatusError("Error removing relation: " + err.Error())
			} else {
				m.setStatus("Relation removed.")
			}
		}
		m.modal.Close()
		m.refreshData()
	}
	return m, nil
}

func (m DashboardModel) updateThemeModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state, ok := m.modal.ThemeState()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if state.Cursor > 0 {
			state.Cursor--
		}
	case "down", "j":
		if state.Cursor < len(m.modal.themeNames)-1 {
			state.Cursor++
		}
	case "enter":
		if state.Cursor < len(m.modal.themeNames) {
			name := m.modal.themeNames[state.Cursor]
			if ws, ok := m.activeWorkspace(); ok {
				if err := m.db.SetWorkspaceTheme(m.ctx, ws.ID, name); err != nil {
					m.setStatusError("Error updating theme: " + err.Error())
				} else {
					m.workspaces[m.activeWorkspaceIdx].Theme = name
					SetTheme(name)
				}
			}
		}
		m.modal.Close()
	}
	return m, nil
}

func (m DashboardModel) updateExportModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state, ok := m.modal.ExportState()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if state.Cursor > 0 {
			state.Cursor--
		}
	case "down", "j":
		if state.Cursor < len(state.Options)-1 {
			state.Cursor++
		}
	case "enter":
		m.runExport(state.Cursor)
		m.modal.Close()
	}
	return m, nil
}
