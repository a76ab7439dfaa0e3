package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"habitmap/internal/models"
	"habitmap/internal/util"
)

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	if err := row.Scan(
		&h.ID,
		&h.GoalID,
		&h.Name,
		&h.Status,
		&h.Tags,
		&h.CompletionCount,
		&h.CompletionTarget,
		&h.Rank,
		&h.CreatedAt,
	); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (d *Database) queryHabits(ctx context.Context, op string, query string, args ...interface{}) ([]models.Habit, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Habit, error) {
		rows, err := d.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, wrapHabitErr(op, 0, err)
		}
		defer rows.Close()

		var habits []models.Habit
		for rows.Next() {
			h, err := scanHabit(rows)
			if err != nil {
				return nil, wrapHabitErr(op, 0, err)
			}
			habits = append(habits, h)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapHabitErr(op, 0, err)
		}
		return habits, nil
	})
}

// GetHabits retrieves all non-archived habits in a workspace.
func (d *Database) GetHabits(ctx context.Context, workspaceID int64) ([]models.Habit, error) {
	return d.queryHabits(ctx, "list", `
		SELECT h.id, h.goal_id, h.name, h.status, h.tags, h.completion_count, h.completion_target, h.rank, h.created_at
		FROM habits h
		JOIN goals g ON h.goal_id = g.id
		WHERE g.workspace_id = ? AND h.status != 'archived'
		ORDER BY h.rank ASC, h.id ASC`, workspaceID)
}

// GetAllHabits retrieves every habit in a workspace, archived ones included.
func (d *Database) GetAllHabits(ctx context.Context, workspaceID int64) ([]models.Habit, error) {
	return d.queryHabits(ctx, "list", `
		SELECT h.id, h.goal_id, h.name, h.status, h.tags, h.completion_count, h.completion_target, h.rank, h.created_at
		FROM habits h
		JOIN goals g ON h.goal_id = g.id
		WHERE g.workspace_id = ?
		ORDER BY h.rank ASC, h.id ASC`, workspaceID)
}

// GetHabitsForGoal retrieves the habits attached to a single goal.
func (d *Database) GetHabitsForGoal(ctx context.Context, goalID int64) ([]models.Habit, error) {
	return d.queryHabits(ctx, "list goal", `
		SELECT `+habitColumns+`
		FROM habits
		WHERE goal_id = ? AND status != 'archived'
		ORDER BY rank ASC, id ASC`, goalID)
}

// AddHabit inserts a new habit under a goal. Hashtags in the name become tags.
func (d *Database) AddHabit(ctx context.Context, goalID int64, name string, completionTarget int) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, nil
		}
		maxRank, err := d.getMaxHabitRank(ctx, goalID)
		if err != nil {
			return 0, wrapHabitErr("add", 0, err)
		}
		if completionTarget < 0 {
			completionTarget = 0
		}
		tags := util.TagsToJSON(util.ExtractTags(name))
		res, err := d.DB.ExecContext(ctx,
			"INSERT INTO habits (goal_id, name, status, tags, completion_target, rank) VALUES (?, ?, 'active', ?, ?, ?)",
			goalID, name, tags, completionTarget, maxRank+1)
		if err != nil {
			return 0, wrapHabitErr("add", 0, err)
		}
		id, err := res.LastInsertId()
		return id, wrapHabitErr("add", 0, err)
	})
}

// EditHabit renames a habit and refreshes its extracted tags.
func (d *Database) EditHabit(ctx context.Context, habitID int64, name string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	tags := util.TagsToJSON(util.ExtractTags(name))
	_, err := d.DB.ExecContext(ctx, "UPDATE habits SET name = ?, tags = ? WHERE id = ?", name, tags, habitID)
	return wrapHabitErr("edit", habitID, err)
}

// UpdateHabitTarget changes the completion target. Non-positive targets mean
// open-ended tracking.
func (d *Database) UpdateHabitTarget(ctx context.Context, habitID int64, target int) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if target < 0 {
		target = 0
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE habits SET completion_target = ? WHERE id = ?", target, habitID)
	return wrapHabitErr("update target", habitID, err)
}

// UpdateHabitStatus transitions a habit between active, paused, and archived.
func (d *Database) UpdateHabitStatus(ctx context.Context, habitID int64, status models.HabitStatus) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if !status.IsValid() {
		return nil
	}
	_, err := d.DB.ExecContext(ctx, "UPDATE habits SET status = ? WHERE id = ?", string(status), habitID)
	return wrapHabitErr("update status", habitID, err)
}

// CompleteHabit records one completion: a log row plus an incremented count.
func (d *Database) CompleteHabit(ctx context.Context, habitID int64, date time.Time, note string) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM habits WHERE id = ?", habitID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO completion_logs (habit_id, date, note) VALUES (?, ?, ?)",
			habitID, date.Format("2006-01-02"), nullableString(strings.TrimSpace(note))); err != nil {
			return err
		}
		// The count clamps at the target so repeated completions past a
		// reached goal do not inflate progress. The log row above still
		// records the completion either way.
		_, err = tx.ExecContext(ctx, `
			UPDATE habits SET completion_count = CASE
				WHEN completion_target > 0 THEN MIN(completion_count + 1, completion_target)
				ELSE completion_count + 1
			END WHERE id = ?`, habitID)
		return err
	})
	return wrapHabitErr("complete", habitID, err)
}

// GetCompletionLogs retrieves a habit's completion history, oldest first.
func (d *Database) GetCompletionLogs(ctx context.Context, habitID int64) ([]models.CompletionLog, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.CompletionLog, error) {
		rows, err := d.DB.QueryContext(ctx,
			"SELECT id, habit_id, date, note, created_at FROM completion_logs WHERE habit_id = ? ORDER BY date ASC, id ASC", habitID)
		if err != nil {
			return nil, wrapHabitErr("logs", habitID, err)
		}
		defer rows.Close()

		var logs []models.CompletionLog
		for rows.Next() {
			var l models.CompletionLog
			if err := rows.Scan(&l.ID, &l.HabitID, &l.Date, &l.Note, &l.CreatedAt); err != nil {
				return nil, wrapHabitErr("logs", habitID, err)
			}
			logs = append(logs, l)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapHabitErr("logs", habitID, err)
		}
		return logs, nil
	})
}

// MoveHabit reattaches a habit to a different goal, ranked last.
func (d *Database) MoveHabit(ctx context.Context, habitID, goalID int64) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM goals WHERE id = ?", goalID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		var maxRank int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(rank), 0) FROM habits WHERE goal_id = ?", goalID).Scan(&maxRank); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "UPDATE habits SET goal_id = ?, rank = ? WHERE id = ?", goalID, maxRank+1, habitID)
		return err
	})
	return wrapHabitErr("move", habitID, err)
}

// DeleteHabit removes a habit with its relations and logs.
func (d *Database) DeleteHabit(ctx context.Context, habitID int64) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM habit_relations WHERE habit_id = ? OR related_habit_id = ?", habitID, habitID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM completion_logs WHERE habit_id = ?", habitID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", habitID)
		return err
	})
	return wrapHabitErr("delete", habitID, err)
}

// SwapHabitRanks exchanges the display rank of two habits.
func (d *Database) SwapHabitRanks(ctx context.Context, habitID1, habitID2 int64) error {
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		var rank1, rank2 int
		if err := tx.QueryRowContext(ctx, "SELECT rank FROM habits WHERE id = ?", habitID1).Scan(&rank1); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, "SELECT rank FROM habits WHERE id = ?", habitID2).Scan(&rank2); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE habits SET rank = ? WHERE id = ?", rank2, habitID1); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "UPDATE habits SET rank = ? WHERE id = ?", rank1, habitID2)
		return err
	})
	return wrapHabitErr("swap ranks", habitID1, err)
}
