package tui

import tea "github.com/charmbracelet/bubbletea"

type ModalType int

const (
	ModalNone ModalType = iota
	ModalGoalCreate
	ModalGoalEdit
	ModalGoalDelete
	ModalHabitCreate
	ModalHabitEdit
	ModalHabitDelete
	ModalHabitComplete
	ModalRelationPick
	ModalWorkspaceCreate
	ModalTheme
	ModalExport
)

type ModalState interface {
	Type() ModalType
	HandleKey(key string) (ModalState, tea.Cmd)
}

type GoalCreateState struct {
	ParentID *int64
}

func (s *GoalCreateState) Type() ModalType { return ModalGoalCreate }
func (s *GoalCreateState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type GoalEditState struct {
	GoalID int64
}

func (s *GoalEditState) Type() ModalType { return ModalGoalEdit }
func (s *GoalEditState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type GoalDeleteState struct {
	GoalID int64
}

func (s *GoalDeleteState) Type() ModalType { return ModalGoalDelete }
func (s *GoalDeleteState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type HabitCreateState struct {
	GoalID int64
}

func (s *HabitCreateState) Type() ModalType { return ModalHabitCreate }
func (s *HabitCreateState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type HabitEditState struct {
	HabitID int64
}

func (s *HabitEditState) Type() ModalType { return ModalHabitEdit }
func (s *HabitEditState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type HabitDeleteState struct {
	HabitID int64
}

func (s *HabitDeleteState) Type() ModalType { return ModalHabitDelete }
func (s *HabitDeleteState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

// HabitCompleteState collects an optional note before logging a completion.
type HabitCompleteState struct {
	HabitID int64
}

func (s *HabitCompleteState) Type() ModalType { return ModalHabitComplete }
func (s *HabitCompleteState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type relOption struct {
	ID    int64
	Label string
}

// RelationPickState selects the other endpoint of a habit relation.
type RelationPickState struct {
	HabitID int64
	Kind    string
	Cursor  int
	Options []relOption
}

func (s *RelationPickState) Type() ModalType { return ModalRelationPick }
func (s *RelationPickState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type WorkspaceCreateState struct{}

func (s *WorkspaceCreateState) Type() ModalType { return ModalWorkspaceCreate }
func (s *WorkspaceCreateState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

type ThemeState struct {
	Cursor int
}

func (s *ThemeState) Type() ModalType { return ModalTheme }
func (s *ThemeState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}

// ExportState picks the export format.
type ExportState struct {
	Cursor  int
	Options []string
}

func (s *ExportState) Type() ModalType { return ModalExport }
func (s *ExportState) HandleKey(key string) (ModalState, tea.Cmd) {
	return s, nil
}
