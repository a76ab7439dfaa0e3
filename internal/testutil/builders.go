package testutil

import (
	"time"

	"habitmap/internal/models"
	"habitmap/internal/util"
)

// GoalBuilder provides fluent API for creating test goals.
type GoalBuilder struct {
	goal models.Goal
}

func NewGoal(id int64) *GoalBuilder {
	return &GoalBuilder{
		goal: models.Goal{
			ID:        id,
			Name:      "Test Goal",
			Status:    string(models.GoalStatusActive),
			CreatedAt: time.Now(),
		},
	}
}

func (b *GoalBuilder) WithName(name string) *GoalBuilder {
	b.goal.Name = name
	return b
}

func (b *GoalBuilder) WithParent(id int64) *GoalBuilder {
	b.goal.ParentID = &id
	return b
}

func (b *GoalBuilder) WithWorkspace(id int64) *GoalBuilder {
	b.goal.WorkspaceID = &id
	return b
}

func (b *GoalBuilder) WithStatus(s models.GoalStatus) *GoalBuilder {
	b.goal.Status = string(s)
	return b
}

func (b *GoalBuilder) WithRank(rank int) *GoalBuilder {
	b.goal.Rank = rank
	return b
}

func (b *GoalBuilder) Build() models.Goal {
	return b.goal
}

// HabitBuilder provides fluent API for creating test habits.
type HabitBuilder struct {
	habit models.Habit
}

func NewHabit(id, goalID int64) *HabitBuilder {
	return &HabitBuilder{
		habit: models.Habit{
			ID:        id,
			GoalID:    goalID,
			Name:      "Test Habit",
			Status:    string(models.HabitStatusActive),
			CreatedAt: time.Now(),
		},
	}
}

func (b *HabitBuilder) WithName(name string) *HabitBuilder {
	b.habit.Name = name
	return b
}

func (b *HabitBuilder) WithTags(tags ...string) *HabitBuilder {
	jsonTags := util.TagsToJSON(tags)
	b.habit.Tags = &jsonTags
	return b
}

func (b *HabitBuilder) WithProgress(count, target int) *HabitBuilder {
	b.habit.CompletionCount = count
	b.habit.CompletionTarget = target
	return b
}

func (b *HabitBuilder) WithStatus(s models.HabitStatus) *HabitBuilder {
	b.habit.Status = string(s)
	return b
}

func (b *HabitBuilder) WithRank(rank int) *HabitBuilder {
	b.habit.Rank = rank
	return b
}

func (b *HabitBuilder) Build() models.Habit {
	return b.habit
}

// Relation is a convenience constructor for relation records.
func Relation(habitID, relatedHabitID int64, kind models.RelationKind) models.HabitRelation {
	return models.HabitRelation{HabitID: habitID, RelatedHabitID: relatedHabitID, Relation: kind}
}
