package database

import (
	"context"
	"time"

	"habitmap/internal/models"
)

// GoalRepository defines goal-related database operations.
type GoalRepository interface {
	GetGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error)
	GetAllGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error)
	GetGoal(ctx context.Context, goalID int64) (*models.Goal, error)
	AddGoal(ctx context.Context, workspaceID int64, name string, parentID *int64) (int64, error)
	EditGoal(ctx context.Context, goalID int64, name string) error
	UpdateGoalStatus(ctx context.Context, goalID int64, status models.GoalStatus) error
	ReparentGoal(ctx context.Context, goalID int64, newParentID *int64) error
	DeleteGoal(ctx context.Context, goalID int64) error
	SwapGoalRanks(ctx context.Context, goalID1, goalID2 int64) error
}

// HabitRepository defines habit-related database operations.
type HabitRepository interface {
	GetHabits(ctx context.Context, workspaceID int64) ([]models.Habit, error)
	GetAllHabits(ctx context.Context, workspaceID int64) ([]models.Habit, error)
	GetHabitsForGoal(ctx context.Context, goalID int64) ([]models.Habit, error)
	AddHabit(ctx context.Context, goalID int64, name string, completionTarget int) (int64, error)
	EditHabit(ctx context.Context, habitID int64, name string) error
	UpdateHabitTarget(ctx context.Context, habitID int64, target int) error
	UpdateHabitStatus(ctx context.Context, habitID int64, status models.HabitStatus) error
	CompleteHabit(ctx context.Context, habitID int64, date time.Time, note string) error
	GetCompletionLogs(ctx context.Context, habitID int64) ([]models.CompletionLog, error)
	MoveHabit(ctx context.Context, habitID, goalID int64) error
	DeleteHabit(ctx context.Context, habitID int64) error
	SwapHabitRanks(ctx context.Context, habitID1, habitID2 int64) error
}

// RelationRepository defines habit relation operations.
type RelationRepository interface {
	SetRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error
	RemoveRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error
	GetRelations(ctx context.Context, workspaceID int64) ([]models.HabitRelation, error)
}

// WorkspaceRepository defines workspace-related database operations.
type WorkspaceRepository interface {
	GetWorkspaces(ctx context.Context) ([]models.Workspace, error)
	EnsureDefaultWorkspace(ctx context.Context) (int64, error)
	CreateWorkspace(ctx context.Context, name, slug string) (int64, error)
	SetWorkspaceTheme(ctx context.Context, workspaceID int64, theme string) error
}

// ExportRepository defines backup export and import operations.
type ExportRepository interface {
	BuildExport(ctx context.Context) (*ExportBundle, error)
	ExportJSON(ctx context.Context, passphrase string) ([]byte, error)
	WriteExport(ctx context.Context, path, passphrase string) error
	ImportJSON(ctx context.Context, data []byte, passphrase string) error
}

// Repository combines all repository interfaces.
type Repository interface {
	GoalRepository
	HabitRepository
	RelationRepository
	WorkspaceRepository
	ExportRepository
}

var _ Repository = (*Database)(nil)
