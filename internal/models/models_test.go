package models

import "testing"

func TestRelationKindIsValid(t *testing.T) {
	for _, k := range []RelationKind{RelationMain, RelationSub, RelationNext} {
		if !k.IsValid() {
			t.Fatalf("%q should be valid", k)
		}
	}
	if RelationKind("blocks").IsValid() {
		t.Fatalf("unknown relation kind should be invalid")
	}
}

func TestStatusIsValid(t *testing.T) {
	if !GoalStatusActive.IsValid() || !GoalStatusDone.IsValid() || !GoalStatusArchived.IsValid() {
		t.Fatalf("goal statuses should validate")
	}
	if GoalStatus("pending").IsValid() {
		t.Fatalf("unknown goal status should be invalid")
	}
	if !HabitStatusActive.IsValid() || !HabitStatusPaused.IsValid() || !HabitStatusArchived.IsValid() {
		t.Fatalf("habit statuses should validate")
	}
	if HabitStatus("").IsValid() {
		t.Fatalf("empty habit status should be invalid")
	}
}

func TestGoalZeroValues(t *testing.T) {
	var g Goal
	if g.ParentID != nil || g.WorkspaceID != nil || g.Notes != nil {
		t.Fatalf("expected nil pointer fields by default")
	}
	if g.CompletedAt != nil || g.ArchivedAt != nil {
		t.Fatalf("expected nil time fields by default")
	}
}

func TestHabitTargetReached(t *testing.T) {
	cases := []struct {
		name   string
		habit  Habit
		expect bool
	}{
		{"under target", Habit{CompletionCount: 3, CompletionTarget: 10}, false},
		{"at target", Habit{CompletionCount: 10, CompletionTarget: 10}, true},
		{"over target", Habit{CompletionCount: 12, CompletionTarget: 10}, true},
		{"open ended", Habit{CompletionCount: 50, CompletionTarget: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.habit.TargetReached(); got != tc.expect {
				t.Fatalf("TargetReached() = %v, want %v", got, tc.expect)
			}
		})
	}
}
