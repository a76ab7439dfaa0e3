package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"habitmap/internal/database"
	"habitmap/internal/models"
)

// containsPlain checks rendered output after stripping ANSI styling, since
// lines are styled and truncated before display.
func containsPlain(rendered, want string) bool {
	return strings.Contains(ansi.Strip(rendered), want)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m DashboardModel, msg tea.Msg) DashboardModel {
	t.Helper()
	model, _ := m.Update(msg)
	return model.(DashboardModel)
}

func typeText(t *testing.T, m DashboardModel, text string) DashboardModel {
	t.Helper()
	for _, r := range text {
		m = press(t, m, keyRune(r))
	}
	return m
}

type dashFixture struct {
	db    *database.Database
	wsID  int64
	goals []int64
}

func setupDashboard(t *testing.T) (DashboardModel, dashFixture) {
	t.Helper()
	ctx := context.Background()
	db := setupModelDB(t)

	wsID, err := db.EnsureDefaultWorkspace(ctx)
	if err != nil {
		t.Fatalf("EnsureDefaultWorkspace failed: %v", err)
	}
	var goalIDs []int64
	for _, name := range []string{"Health", "Career"} {
		id, err := db.AddGoal(ctx, wsID, name, nil)
		if err != nil {
			t.Fatalf("AddGoal failed: %v", err)
		}
		goalIDs = append(goalIDs, id)
	}
	if _, err := db.AddHabit(ctx, goalIDs[0], "Run", 10); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := db.AddHabit(ctx, goalIDs[0], "Stretch", 0); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	m := NewDashboardModel(ctx, db)
	if m.err != nil {
		t.Fatalf("dashboard init failed: %v", m.err)
	}
	return m, dashFixture{db: db, wsID: wsID, goals: goalIDs}
}

func TestDashboardGoalNavigation(t *testing.T) {
	m, _ := setupDashboard(t)

	if m.view.focusedGoalIdx != 0 {
		t.Fatalf("expected focus on first goal")
	}
	m = press(t, m, keyRune('j'))
	if m.view.focusedGoalIdx != 1 {
		t.Fatalf("expected focus to move down, got %d", m.view.focusedGoalIdx)
	}
	m = press(t, m, keyRune('j'))
	if m.view.focusedGoalIdx != 1 {
		t.Fatalf("expected focus clamped at last goal")
	}
	m = press(t, m, keyRune('k'))
	if m.view.focusedGoalIdx != 0 {
		t.Fatalf("expected focus to move back up")
	}
}

func TestDashboardAddGoalFlow(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('a'))
	if !m.modal.Is(ModalGoalCreate) {
		t.Fatalf("expected goal create modal open")
	}
	m = typeText(t, m, "Finances")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal.IsOpen() {
		t.Fatalf("expected modal closed after confirm")
	}
	goals, err := fx.db.GetGoals(ctx, fx.wsID)
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(goals))
	}
}

func TestDashboardAddSubgoalFlow(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('A'))
	m = typeText(t, m, "Sleep better")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	goals, err := fx.db.GetGoals(ctx, fx.wsID)
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	var found bool
	for _, g := range goals {
		if g.Name == "Sleep better" {
			found = true
			if g.ParentID == nil || *g.ParentID != fx.goals[0] {
				t.Fatalf("expected subgoal parented under first goal, got %+v", g.ParentID)
			}
		}
	}
	if !found {
		t.Fatalf("subgoal not created")
	}
}

func TestDashboardEscCancelsModal(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('a'))
	m = typeText(t, m, "Abandoned")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal.IsOpen() {
		t.Fatalf("expected esc to close the modal")
	}
	goals, err := fx.db.GetGoals(ctx, fx.wsID)
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected no goal created on cancel, got %d", len(goals))
	}
}

func TestDashboardToggleGoalDone(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('d'))
	goal, err := fx.db.GetGoal(ctx, fx.goals[0])
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if goal.Status != string(models.GoalStatusDone) {
		t.Fatalf("expected goal marked done, got %q", goal.Status)
	}

	m = press(t, m, keyRune('d'))
	goal, err = fx.db.GetGoal(ctx, fx.goals[0])
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if goal.Status != string(models.GoalStatusActive) {
		t.Fatalf("expected goal back to active, got %q", goal.Status)
	}
}

func TestDashboardDeleteGoalConfirm(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('x'))
	if !m.modal.Is(ModalGoalDelete) {
		t.Fatalf("expected delete confirmation modal")
	}
	m = press(t, m, keyRune('n'))
	goals, _ := fx.db.GetGoals(ctx, fx.wsID)
	if len(goals) != 2 {
		t.Fatalf("expected cancel to keep the goal")
	}

	m = press(t, m, keyRune('x'))
	m = press(t, m, keyRune('y'))
	goals, _ = fx.db.GetGoals(ctx, fx.wsID)
	if len(goals) != 1 {
		t.Fatalf("expected goal deleted, got %d", len(goals))
	}
}

func TestDashboardHabitPaneFlow(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view.focusedPane != paneHabits {
		t.Fatalf("expected habit pane focused")
	}

	m = press(t, m, keyRune('a'))
	if !m.modal.Is(ModalHabitCreate) {
		t.Fatalf("expected habit create modal")
	}
	m = typeText(t, m, "Meditate")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	habits, err := fx.db.GetHabitsForGoal(ctx, fx.goals[0])
	if err != nil {
		t.Fatalf("GetHabitsForGoal failed: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
}

func TestDashboardCompleteHabitFlow(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, keyRune('c'))
	if !m.modal.Is(ModalHabitComplete) {
		t.Fatalf("expected completion modal")
	}
	m = typeText(t, m, "felt great")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	habits, err := fx.db.GetHabitsForGoal(ctx, fx.goals[0])
	if err != nil {
		t.Fatalf("GetHabitsForGoal failed: %v", err)
	}
	if habits[0].CompletionCount != 1 {
		t.Fatalf("expected completion count 1, got %d", habits[0].CompletionCount)
	}
	logs, err := fx.db.GetCompletionLogs(ctx, habits[0].ID)
	if err != nil {
		t.Fatalf("GetCompletionLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Note == nil || *logs[0].Note != "felt great" {
		t.Fatalf("expected logged note, got %+v", logs)
	}
}

func TestDashboardRelationPicker(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, keyRune('m'))
	if !m.modal.Is(ModalRelationPick) {
		t.Fatalf("expected relation picker")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	relations, err := fx.db.GetRelations(ctx, fx.wsID)
	if err != nil {
		t.Fatalf("GetRelations failed: %v", err)
	}
	if len(relations) != 1 {
		t.Fatalf("expected one relation, got %d", len(relations))
	}
	if relations[0].Relation != models.RelationMain {
		t.Fatalf("expected main relation, got %q", relations[0].Relation)
	}
}

func TestDashboardThemeModal(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	m = press(t, m, keyRune('T'))
	if !m.modal.Is(ModalTheme) {
		t.Fatalf("expected theme modal")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	workspaces, err := fx.db.GetWorkspaces(ctx)
	if err != nil {
		t.Fatalf("GetWorkspaces failed: %v", err)
	}
	// Names are sorted, so the first entry is what enter selects.
	if workspaces[0].Theme != m.workspaces[0].Theme {
		t.Fatalf("expected persisted theme to match model, db=%q model=%q",
			workspaces[0].Theme, m.workspaces[0].Theme)
	}
}

func TestDashboardWorkspaceCycle(t *testing.T) {
	m, fx := setupDashboard(t)
	ctx := context.Background()

	if _, err := fx.db.CreateWorkspace(ctx, "Side projects", "side"); err != nil {
		t.Fatalf("CreateWorkspace failed: %v", err)
	}
	m.workspaces, _ = fx.db.GetWorkspaces(ctx)

	m = press(t, m, keyRune('w'))
	if m.activeWorkspaceIdx != 1 {
		t.Fatalf("expected second workspace active, got %d", m.activeWorkspaceIdx)
	}
	if len(m.flat) != 0 {
		t.Fatalf("expected empty goal tree in fresh workspace")
	}

	m = press(t, m, keyRune('w'))
	if m.activeWorkspaceIdx != 0 {
		t.Fatalf("expected cycle back to first workspace")
	}
}

func TestDashboardViewRenders(t *testing.T) {
	m, _ := setupDashboard(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	out := m.View()
	if out == "" {
		t.Fatalf("expected rendered dashboard")
	}
	for _, want := range []string{"Health", "Career", "Run (0/10)"} {
		if !containsPlain(out, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}
