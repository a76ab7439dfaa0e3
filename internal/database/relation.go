package database

import (
	"context"

	"habitmap/internal/models"
)

// SetRelation records a relation between two habits. Both habits must exist
// and belong to the same workspace; otherwise the call is a no-op, matching
// how goal moves tolerate bad input elsewhere.
func (d *Database) SetRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if !kind.IsValid() || habitID == relatedHabitID {
		return nil
	}
	habitID, relatedHabitID, kind = normalizeRelation(habitID, relatedHabitID, kind)
	ws1, ok := d.getHabitWorkspaceID(ctx, habitID)
	if !ok {
		return nil
	}
	ws2, ok := d.getHabitWorkspaceID(ctx, relatedHabitID)
	if !ok || ws1 != ws2 {
		return nil
	}
	_, err := d.DB.ExecContext(ctx,
		"INSERT OR IGNORE INTO habit_relations (habit_id, related_habit_id, relation) VALUES (?, ?, ?)",
		habitID, relatedHabitID, string(kind))
	return wrapErr(EntityRelation, "set", habitID, err)
}

// RemoveRelation deletes a specific relation record.
func (d *Database) RemoveRelation(ctx context.Context, habitID, relatedHabitID int64, kind models.RelationKind) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	habitID, relatedHabitID, kind = normalizeRelation(habitID, relatedHabitID, kind)
	_, err := d.DB.ExecContext(ctx,
		"DELETE FROM habit_relations WHERE habit_id = ? AND related_habit_id = ? AND relation = ?",
		habitID, relatedHabitID, string(kind))
	return wrapErr(EntityRelation, "remove", habitID, err)
}

// GetRelations retrieves all relations between habits in a workspace.
func (d *Database) GetRelations(ctx context.Context, workspaceID int64) ([]models.HabitRelation, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.HabitRelation, error) {
		rows, err := d.DB.QueryContext(ctx, `
			SELECT r.habit_id, r.related_habit_id, r.relation
			FROM habit_relations r
			JOIN habits h ON r.habit_id = h.id
			JOIN goals g ON h.goal_id = g.id
			WHERE g.workspace_id = ?
			ORDER BY r.habit_id ASC, r.related_habit_id ASC, r.relation ASC`, workspaceID)
		if err != nil {
			return nil, wrapErr(EntityRelation, "list", 0, err)
		}
		defer rows.Close()

		var relations []models.HabitRelation
		for rows.Next() {
			var r models.HabitRelation
			var kind string
			if err := rows.Scan(&r.HabitID, &r.RelatedHabitID, &kind); err != nil {
				return nil, wrapErr(EntityRelation, "list", 0, err)
			}
			r.Relation = models.RelationKind(kind)
			relations = append(relations, r)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityRelation, "list", 0, err)
		}
		return relations, nil
	})
}

// normalizeRelation stores groupings in one canonical shape: a "sub" record
// is flipped into the equivalent "main" record, so exports and the layout
// maps only ever see a single form.
func normalizeRelation(habitID, relatedHabitID int64, kind models.RelationKind) (int64, int64, models.RelationKind) {
	if kind == models.RelationSub {
		return relatedHabitID, habitID, models.RelationMain
	}
	return habitID, relatedHabitID, kind
}

func (d *Database) getHabitWorkspaceID(ctx context.Context, habitID int64) (int64, bool) {
	var wsID *int64
	err := d.DB.QueryRowContext(ctx, `
		SELECT g.workspace_id FROM habits h JOIN goals g ON h.goal_id = g.id WHERE h.id = ?`,
		habitID).Scan(&wsID)
	if err != nil || wsID == nil {
		return 0, false
	}
	return *wsID, true
}
