package database

import (
	"context"
	"database/sql"
	"strings"

	"habitmap/internal/models"
)

func scanGoal(row interface{ Scan(...interface{}) error }) (models.Goal, error) {
	var g models.Goal
	if err := row.Scan(
		&g.ID,
		&g.ParentID,
		&g.WorkspaceID,
		&g.Name,
		&g.Notes,
		&g.Status,
		&g.Rank,
		&g.CreatedAt,
		&g.CompletedAt,
		&g.ArchivedAt,
	); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

func (d *Database) queryGoals(ctx context.Context, op string, query string, args ...interface{}) ([]models.Goal, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Goal, error) {
		rows, err := d.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, wrapGoalErr(op, 0, err)
		}
		defer rows.Close()

		var goals []models.Goal
		for rows.Next() {
			g, err := scanGoal(rows)
			if err != nil {
				return nil, wrapGoalErr(op, 0, err)
			}
			goals = append(goals, g)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapGoalErr(op, 0, err)
		}
		return goals, nil
	})
}

// GetGoals retrieves all non-archived goals in a workspace, ordered for
// stable display and layout.
func (d *Database) GetGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error) {
	query, args := NewGoalQuery().
		WhereWorkspace(workspaceID).
		WhereNotArchived().
		OrderBy("rank ASC, id ASC").
		Build()
	return d.queryGoals(ctx, "list", query, args...)
}

// GetAllGoals retrieves every goal in a workspace, archived ones included.
func (d *Database) GetAllGoals(ctx context.Context, workspaceID int64) ([]models.Goal, error) {
	query, args := NewGoalQuery().
		WhereWorkspace(workspaceID).
		OrderBy("rank ASC, id ASC").
		Build()
	return d.queryGoals(ctx, "list", query, args...)
}

// GetGoal retrieves a single goal by ID.
func (d *Database) GetGoal(ctx context.Context, goalID int64) (*models.Goal, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (*models.Goal, error) {
		query, args := NewGoalQuery().Where("id = ?", goalID).Build()
		g, err := scanGoal(d.DB.QueryRowContext(ctx, query, args...))
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, wrapGoalErr("get", goalID, err)
		}
		return &g, nil
	})
}

// AddGoal inserts a new goal, ranked after its siblings. A nil parentID
// creates a root goal.
func (d *Database) AddGoal(ctx context.Context, workspaceID int64, name string, parentID *int64) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, nil
		}
		maxRank, err := d.getMaxGoalRank(ctx, workspaceID, parentID)
		if err != nil {
			return 0, wrapGoalErr("add", 0, err)
		}
		res, err := d.DB.ExecContext(ctx,
			"INSERT INTO goals (workspace_id, parent_id, name, status, rank) VALUES (?, ?, ?, 'active', ?)",
			workspaceID, toNullableArg(parentID), name, maxRank+1)
		if err != nil {
			return 0, wrapGoalErr("add", 0, err)
		}
		id, err := res.LastInsertId()
		return id, wrapGoalErr("add", 0, err)
	})
}

// EditGoal renames a goal.
func (d *Database) EditGoal(ctx context.Context, goalID int64, name string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE goals SET name = ? WHERE id = ?", name, goalID)
	return wrapGoalErr("edit", goalID, err)
}

// UpdateGoalStatus transitions a goal, stamping completed_at/archived_at.
func (d *Database) UpdateGoalStatus(ctx context.Context, goalID int64, status models.GoalStatus) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var err error
	switch status {
	case models.GoalStatusDone:
		_, err = d.DB.ExecContext(ctx,
			"UPDATE goals SET status = 'done', completed_at = CURRENT_TIMESTAMP WHERE id = ?", goalID)
	case models.GoalStatusArchived:
		_, err = d.DB.ExecContext(ctx,
			"UPDATE goals SET status = 'archived', archived_at = CURRENT_TIMESTAMP WHERE id = ?", goalID)
	default:
		_, err = d.DB.ExecContext(ctx,
			"UPDATE goals SET status = 'active', completed_at = NULL, archived_at = NULL WHERE id = ?", goalID)
	}
	return wrapGoalErr("update status", goalID, err)
}

// ReparentGoal moves a goal under a new parent (nil for root). The move is
// rejected with ErrGoalCycleDetected when the new parent sits in the goal's
// own subtree.
func (d *Database) ReparentGoal(ctx context.Context, goalID int64, newParentID *int64) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if newParentID != nil {
		ancestor := *newParentID
		for ancestor != 0 {
			if ancestor == goalID {
				return wrapGoalErr("reparent", goalID, ErrGoalCycleDetected)
			}
			var parent *int64
			err := d.DB.QueryRowContext(ctx, "SELECT parent_id FROM goals WHERE id = ?", ancestor).Scan(&parent)
			if err == sql.ErrNoRows {
				break
			}
			if err != nil {
				return wrapGoalErr("reparent", goalID, err)
			}
			if parent == nil {
				break
			}
			ancestor = *parent
		}
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE goals SET parent_id = ? WHERE id = ?",
		toNullableArg(newParentID), goalID)
	return wrapGoalErr("reparent", goalID, err)
}

// DeleteGoal removes a goal and everything hanging off it: its habits, their
// relations and logs. Child goals are promoted to the deleted goal's parent.
func (d *Database) DeleteGoal(ctx context.Context, goalID int64) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var parentID *int64
		err := tx.QueryRowContext(ctx, "SELECT parent_id FROM goals WHERE id = ?", goalID).Scan(&parentID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM habit_relations WHERE habit_id IN
			(SELECT id FROM habits WHERE goal_id = ?) OR related_habit_id IN
			(SELECT id FROM habits WHERE goal_id = ?)`, goalID, goalID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM completion_logs WHERE habit_id IN (SELECT id FROM habits WHERE goal_id = ?)", goalID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE goal_id = ?", goalID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE goals SET parent_id = ? WHERE parent_id = ?",
			toNullableArg(parentID), goalID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", goalID)
		return err
	})
	return wrapGoalErr("delete", goalID, err)
}

// SwapGoalRanks exchanges the display rank of two goals. This is the reorder
// primitive: the UI swaps a goal with its neighbor.
func (d *Database) SwapGoalRanks(ctx context.Context, goalID1, goalID2 int64) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var rank1, rank2 int
		if err := tx.QueryRowContext(ctx, "SELECT rank FROM goals WHERE id = ?", goalID1).Scan(&rank1); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, "SELECT rank FROM goals WHERE id = ?", goalID2).Scan(&rank2); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE goals SET rank = ? WHERE id = ?", rank2, goalID1); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "UPDATE goals SET rank = ? WHERE id = ?", rank1, goalID2)
		return err
	})
	return wrapGoalErr("swap ranks", goalID1, err)
}
