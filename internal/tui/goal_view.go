package tui

import "habitmap/internal/models"

// GoalView wraps a goal with UI-only state.
type GoalView struct {
	models.Goal
	Subgoals []GoalView
	Habits   []models.Habit
	Expanded bool
	Level    int
}
