package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	paneGoals = iota
	paneHabits
)

// ViewState tracks cursor focus and scroll positions.
type ViewState struct {
	focusedPane     int
	focusedGoalIdx  int
	focusedHabitIdx int
	goalScrollOff   int
	expandedState   map[int64]bool
}

func newViewState() *ViewState {
	return &ViewState{
		expandedState: make(map[int64]bool),
	}
}

// ModalManager tracks modal-related UI state and selections.
type ModalManager struct {
	current    ModalState
	themeNames []string
}

func newModalManager() *ModalManager {
	return &ModalManager{}
}

func (m *ModalManager) InInputMode() bool {
	switch m.ActiveModal() {
	case ModalGoalCreate, ModalGoalEdit, ModalHabitCreate, ModalHabitEdit,
		ModalHabitComplete, ModalWorkspaceCreate:
		return true
	}
	return false
}

func (m *ModalManager) ActiveModal() ModalType {
	if m.current == nil {
		return ModalNone
	}
	return m.current.Type()
}

func (m *ModalManager) IsOpen() bool {
	return m.current != nil
}

func (m *ModalManager) Current() ModalState {
	return m.current
}

func (m *ModalManager) Open(state ModalState) {
	m.current = state
}

func (m *ModalManager) Close() {
	m.current = nil
}

func (m *ModalManager) Is(t ModalType) bool {
	return m.current != nil && m.current.Type() == t
}

func (m *ModalManager) GoalCreateState() (*GoalCreateState, bool) {
	state, ok := m.current.(*GoalCreateState)
	return state, ok
}

func (m *ModalManager) GoalEditState() (*GoalEditState, bool) {
	state, ok := m.current.(*GoalEditState)
	return state, ok
}

func (m *ModalManager) GoalDeleteState() (*GoalDeleteState, bool) {
	state, ok := m.current.(*GoalDeleteState)
	return state, ok
}

func (m *ModalManager) HabitCreateState() (*HabitCreateState, bool) {
	state, ok := m.current.(*HabitCreateState)
	return state, ok
}

func (m *ModalManager) HabitEditState() (*HabitEditState, bool) {
	state, ok := m.current.(*HabitEditState)
	return state, ok
}

func (m *ModalManager) HabitDeleteState() (*HabitDeleteState, bool) {
	state, ok := m.current.(*HabitDeleteState)
	return state, ok
}

func (m *ModalManager) HabitCompleteState() (*HabitCompleteState, bool) {
	state, ok := m.current.(*HabitCompleteState)
	return state, ok
}

func (m *ModalManager) RelationPickState() (*RelationPickState, bool) {
	state, ok := m.current.(*RelationPickState)
	return state, ok
}

func (m *ModalManager) ThemeState() (*ThemeState, bool) {
	state, ok := m.current.(*ThemeState)
	return state, ok
}

func (m *ModalManager) ExportState() (*ExportState, bool) {
	state, ok := m.current.(*ExportState)
	return state, ok
}

// InputState stores all text input models.
type InputState struct {
	textInput textinput.Model
	noteInput textinput.Model
}

func newInputState() *InputState {
	ti := textinput.New()
	ti.Placeholder = "Name..."
	ti.CharLimit = 120
	ti.Width = 40

	ni := textinput.New()
	ni.Placeholder = "Note (optional)"
	ni.Width = 50

	return &InputState{
		textInput: ti,
		noteInput: ni,
	}
}
