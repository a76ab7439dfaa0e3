package database

import "context"

// getMaxGoalRank returns the highest rank among sibling goals.
func (d *Database) getMaxGoalRank(ctx context.Context, workspaceID int64, parentID *int64) (int, error) {
	var maxRank int
	var err error
	if parentID != nil {
		err = d.DB.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(rank), 0) FROM goals WHERE parent_id = ?", *parentID).Scan(&maxRank)
	} else {
		err = d.DB.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(rank), 0) FROM goals WHERE workspace_id = ? AND parent_id IS NULL", workspaceID).Scan(&maxRank)
	}
	return maxRank, err
}

// getMaxHabitRank returns the highest rank among a goal's habits.
func (d *Database) getMaxHabitRank(ctx context.Context, goalID int64) (int, error) {
	var maxRank int
	err := d.DB.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(rank), 0) FROM habits WHERE goal_id = ?", goalID).Scan(&maxRank)
	return maxRank, err
}
