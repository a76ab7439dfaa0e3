package tui

import (
	"context"
	"time"

	"habitmap/internal/database"
	"habitmap/internal/models"
)

// Database defines the persistence methods the TUI requires.
type Database interface {
	GetSetting(key string) (string, bool)
	SetSetting(key, value string) error

	GetWorkspaces(ctx context.Context) ([]models.Workspace, error)
	EnsureDefaultWorkspace(ctx context.Context) (int64, error)
	CreateWorkspace(ctx context.Context, name, slug string) (int64, error)
	SetWorkspaceTheme(ctx context.Context, workspaceID int64, theme string) error

	GetGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error)
	GetAllGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error)
	GetGoal(ctx context.Context, goalID int64) (*models.Goal, error)
	AddGoal(ctx context.Context, workspaceID int64, name string, parentID *int64) (int64, error)
	EditGoal(ctx context.Context, goalID int64, name string) error
	UpdateGoalStatus(ctx context.Context, goalID int64, status models.GoalStatus) error
	ReparentGoal(ctx context.Context, goalID int64, newParentID *int64) error
	DeleteGoal(ctx context.Context, goalID int64) error
	SwapGoalRanks(ctx context.Context, goalID1, goalID2 int64) error

	GetHabits(ctx context.Context, workspaceID int64) ([]models.Habit, error)
	GetHabitsForGoal(ctx context.Context, goalID int64) ([]models.Habit, error)
	AddHabit(ctx context.Context, goalID int64, name string, completionTarget int) (int64, error)
	EditHabit(ctx context.Context, habitID int64, name string) error
	UpdateHabitStatus(ctx context.Context, habitID int64, status models.HabitStatus) error
	CompleteHabit(ctx context.Context, habitID int64, date time.Time, note string) error
	GetCompletionLogs(ctx context.Context, habitID int64) ([]models.CompletionLog, error)
	DeleteHabit(ctx context.Context, habitID int64) error
	SwapHabitRanks(ctx context.Context, habitID1, habitID2 int64) error

	SetRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error
	RemoveRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error
	GetRelations(ctx context.Context, workspaceID int64) ([]models.HabitRelation, error)

	ExportJSON(ctx context.Context, passphrase string) ([]byte, error)
	WriteExport(ctx context.Context, path, passphrase string) error
	ImportJSON(ctx context.Context, data []byte, passphrase string) error
}

var _ Database = (*database.Database)(nil)
