package models

import "time"

// GoalStatus enumerates the lifecycle states of a goal.
type GoalStatus string

const (
	GoalStatusActive   GoalStatus = "active"
	GoalStatusDone     GoalStatus = "done"
	GoalStatusArchived GoalStatus = "archived"
)

// IsValid returns true if the status is a recognized value.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusDone, GoalStatusArchived:
		return true
	}
	return false
}

// HabitStatus enumerates the lifecycle states of a habit.
type HabitStatus string

const (
	HabitStatusActive   HabitStatus = "active"
	HabitStatusPaused   HabitStatus = "paused"
	HabitStatusArchived HabitStatus = "archived"
)

// IsValid returns true if the status is a recognized value.
func (s HabitStatus) IsValid() bool {
	switch s {
	case HabitStatusActive, HabitStatusPaused, HabitStatusArchived:
		return true
	}
	return false
}

// RelationKind categorizes a habit-to-habit relation.
type RelationKind string

const (
	// RelationMain marks the related habit as the Main of the record's habit.
	RelationMain RelationKind = "main"
	// RelationSub marks the related habit as a Sub of the record's habit.
	RelationSub RelationKind = "sub"
	// RelationNext is an advisory sequencing edge; it never affects placement.
	RelationNext RelationKind = "next"
)

// IsValid returns true if the relation kind is a recognized value.
func (k RelationKind) IsValid() bool {
	switch k {
	case RelationMain, RelationSub, RelationNext:
		return true
	}
	return false
}

// Workspace represents an isolated tracking environment.
type Workspace struct {
	ID    int64
	Name  string
	Slug  string
	Theme string
}

// Goal represents a hierarchical objective. Goals form a forest via ParentID.
type Goal struct {
	ID          int64
	ParentID    *int64
	WorkspaceID *int64
	Name        string
	Notes       *string
	Status      string // active, done, archived
	Rank        int
	CreatedAt   time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time
}

// Habit represents a recurring actionable item attached to exactly one goal.
type Habit struct {
	ID               int64
	GoalID           int64
	Name             string
	Status           string  // active, paused, archived
	Tags             *string // JSON array
	CompletionCount  int
	CompletionTarget int
	Rank             int
	CreatedAt        time.Time
}

// TargetReached reports whether the habit has hit its completion target.
// A non-positive target means open-ended tracking.
func (h Habit) TargetReached() bool {
	return h.CompletionTarget > 0 && h.CompletionCount >= h.CompletionTarget
}

// HabitRelation links two habits. For kind "main" the RelatedHabitID is the
// Main and HabitID the Sub; for kind "sub" the roles are reversed.
type HabitRelation struct {
	HabitID        int64
	RelatedHabitID int64
	Relation       RelationKind
}

// CompletionLog records a single habit completion on a calendar day.
type CompletionLog struct {
	ID        int64
	HabitID   int64
	Date      string // YYYY-MM-DD
	Note      *string
	CreatedAt time.Time
}
