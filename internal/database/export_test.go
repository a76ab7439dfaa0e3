package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"habitmap/internal/models"
)

func seedExportFixture(t *testing.T) (*TestDataBuilder, *Database) {
	t.Helper()
	b := NewTestDataBuilder(t).WithGoals(2).WithHabits(2)
	db := b.Build()
	ctx := context.Background()
	if err := db.SetRelation(ctx, b.HabitIDs()[0], b.HabitIDs()[1], models.RelationMain); err != nil {
		t.Fatalf("SetRelation failed: %v", err)
	}
	if err := db.CompleteHabit(ctx, b.HabitIDs()[0], testDate(t, "2026-08-01"), "warmup"); err != nil {
		t.Fatalf("CompleteHabit failed: %v", err)
	}
	return b, db
}

func TestExportImportRoundTrip(t *testing.T) {
	b, db := seedExportFixture(t)
	ctx := context.Background()

	data, err := db.ExportJSON(ctx, "")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var bundle ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(bundle.Goals) != 2 || len(bundle.Habits) != 4 || len(bundle.Relations) != 1 || len(bundle.Logs) != 1 {
		t.Fatalf("unexpected bundle shape: %d goals, %d habits, %d relations, %d logs",
			len(bundle.Goals), len(bundle.Habits), len(bundle.Relations), len(bundle.Logs))
	}

	// Import into a fresh database and verify the content carried over.
	fresh := setupTestDB(t, ctx)
	if err := fresh.ImportJSON(ctx, data, ""); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	goals, err := fresh.GetGoals(ctx, b.PrimaryWorkspaceID())
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals after import, got %d", len(goals))
	}
	logs, err := fresh.GetCompletionLogs(ctx, b.HabitIDs()[0])
	if err != nil {
		t.Fatalf("GetCompletionLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Date != "2026-08-01" {
		t.Fatalf("expected imported log for 2026-08-01, got %+v", logs)
	}
	relations, err := fresh.GetRelations(ctx, b.PrimaryWorkspaceID())
	if err != nil {
		t.Fatalf("GetRelations failed: %v", err)
	}
	if len(relations) != 1 || relations[0].Relation != models.RelationMain {
		t.Fatalf("expected imported main relation, got %+v", relations)
	}
}

func TestExportIncludesArchivedRows(t *testing.T) {
	b, db := seedExportFixture(t)
	ctx := context.Background()
	archivedGoal := b.GoalIDs()[0]

	// Archive a habit and a goal that still has live habits under it. Both
	// must survive a backup, and the restore must not trip the habits'
	// foreign key on a missing goal row.
	if err := db.UpdateHabitStatus(ctx, b.HabitIDs()[2], models.HabitStatusArchived); err != nil {
		t.Fatalf("UpdateHabitStatus failed: %v", err)
	}
	if err := db.UpdateGoalStatus(ctx, archivedGoal, models.GoalStatusArchived); err != nil {
		t.Fatalf("UpdateGoalStatus failed: %v", err)
	}

	data, err := db.ExportJSON(ctx, "")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var bundle ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(bundle.Goals) != 2 || len(bundle.Habits) != 4 {
		t.Fatalf("expected archived rows in bundle, got %d goals, %d habits",
			len(bundle.Goals), len(bundle.Habits))
	}
	var foundArchived bool
	for _, g := range bundle.Goals {
		if g.ID == archivedGoal {
			foundArchived = true
			if g.Status != string(models.GoalStatusArchived) || g.ArchivedAt == nil {
				t.Fatalf("archived goal exported without status/timestamp: %+v", g)
			}
		}
	}
	if !foundArchived {
		t.Fatalf("archived goal missing from bundle")
	}

	fresh := setupTestDB(t, ctx)
	if err := fresh.ImportJSON(ctx, data, ""); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	all, err := fresh.GetAllGoals(ctx, b.PrimaryWorkspaceID())
	if err != nil {
		t.Fatalf("GetAllGoals failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected archived goal restored, got %+v", all)
	}
	habits, err := fresh.GetAllHabits(ctx, b.PrimaryWorkspaceID())
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 4 {
		t.Fatalf("expected all habits restored, got %d", len(habits))
	}
}

func TestExportEncryptedRoundTrip(t *testing.T) {
	b, db := seedExportFixture(t)
	ctx := context.Background()

	data, err := db.ExportJSON(ctx, "Sup3rSecret")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	var wrapped encryptedExport
	if err := json.Unmarshal(data, &wrapped); err != nil || !wrapped.Encrypted {
		t.Fatalf("expected encrypted envelope, got %s", data)
	}
	if wrapped.Salt == "" || wrapped.Nonce == "" || wrapped.Data == "" {
		t.Fatalf("envelope missing fields: %+v", wrapped)
	}

	fresh := setupTestDB(t, ctx)
	if err := fresh.ImportJSON(ctx, data, "Sup3rSecret"); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	goals, err := fresh.GetGoals(ctx, b.PrimaryWorkspaceID())
	if err != nil {
		t.Fatalf("GetGoals failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals after encrypted import, got %d", len(goals))
	}
}

func TestImportWrongPassphrase(t *testing.T) {
	_, db := seedExportFixture(t)
	ctx := context.Background()

	data, err := db.ExportJSON(ctx, "Sup3rSecret")
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	fresh := setupTestDB(t, ctx)
	err = fresh.ImportJSON(ctx, data, "WrongPass1")
	if !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("expected ErrWrongPassphrase, got %v", err)
	}
}

func TestImportMalformedJSON(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.ImportJSON(ctx, []byte("{not json"), ""); err == nil {
		t.Fatalf("expected parse error")
	}
}
