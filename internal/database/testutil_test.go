package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

type TestDataBuilder struct {
	t            *testing.T
	ctx          context.Context
	db           *Database
	workspaceIDs []int64
	goalIDs      []int64
	habitIDs     []int64
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

func (b *TestDataBuilder) WithWorkspace(name string) *TestDataBuilder {
	b.t.Helper()
	slug := strings.ToLower(name)
	id, err := b.db.CreateWorkspace(b.ctx, name, slug)
	if err != nil {
		b.t.Fatalf("CreateWorkspace failed: %v", err)
	}
	b.workspaceIDs = append(b.workspaceIDs, id)
	return b
}

func (b *TestDataBuilder) ensureWorkspace() int64 {
	b.t.Helper()
	if len(b.workspaceIDs) == 0 {
		id, err := b.db.EnsureDefaultWorkspace(b.ctx)
		if err != nil {
			b.t.Fatalf("EnsureDefaultWorkspace failed: %v", err)
		}
		b.workspaceIDs = append(b.workspaceIDs, id)
	}
	return b.workspaceIDs[0]
}

func (b *TestDataBuilder) WithGoals(count int) *TestDataBuilder {
	b.t.Helper()
	wsID := b.ensureWorkspace()
	for i := 0; i < count; i++ {
		id, err := b.db.AddGoal(b.ctx, wsID, fmt.Sprintf("Goal %d", i+1), nil)
		if err != nil {
			b.t.Fatalf("AddGoal failed: %v", err)
		}
		b.goalIDs = append(b.goalIDs, id)
	}
	return b
}

func (b *TestDataBuilder) WithHabits(perGoal int) *TestDataBuilder {
	b.t.Helper()
	if len(b.goalIDs) == 0 {
		b.WithGoals(1)
	}
	for goalIdx, goalID := range b.goalIDs {
		for i := 0; i < perGoal; i++ {
			name := fmt.Sprintf("Habit %d-%d", goalIdx+1, i+1)
			id, err := b.db.AddHabit(b.ctx, goalID, name, 0)
			if err != nil {
				b.t.Fatalf("AddHabit failed: %v", err)
			}
			b.habitIDs = append(b.habitIDs, id)
		}
	}
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}

func (b *TestDataBuilder) PrimaryWorkspaceID() int64 {
	b.t.Helper()
	return b.ensureWorkspace()
}

func (b *TestDataBuilder) GoalIDs() []int64 {
	return b.goalIDs
}

func (b *TestDataBuilder) HabitIDs() []int64 {
	return b.habitIDs
}
