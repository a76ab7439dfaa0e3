package database

import (
	"fmt"
	"strings"
)

const goalColumns = `id, parent_id, workspace_id, name, notes, status, rank, created_at, completed_at, archived_at`
const habitColumns = `id, goal_id, name, status, tags, completion_count, completion_target, rank, created_at`

// GoalQuery builds SELECT statements over the goals table.
type GoalQuery struct {
	columns string
	filters []string
	args    []interface{}
	orderBy string
	limit   int
}

func NewGoalQuery() *GoalQuery {
	return &GoalQuery{columns: goalColumns}
}

func (q *GoalQuery) Where(filter string, args ...interface{}) *GoalQuery {
	q.filters = append(q.filters, filter)
	q.args = append(q.args, args...)
	return q
}

func (q *GoalQuery) WhereWorkspace(workspaceID int64) *GoalQuery {
	return q.Where("workspace_id = ?", workspaceID)
}

func (q *GoalQuery) WhereParent(parentID int64) *GoalQuery {
	return q.Where("parent_id = ?", parentID)
}

func (q *GoalQuery) WhereRoots() *GoalQuery {
	return q.Where("parent_id IS NULL")
}

func (q *GoalQuery) WhereNotArchived() *GoalQuery {
	return q.Where("status != ?", "archived")
}

func (q *GoalQuery) OrderBy(orderBy string) *GoalQuery {
	q.orderBy = orderBy
	return q
}

func (q *GoalQuery) Limit(limit int) *GoalQuery {
	q.limit = limit
	return q
}

func (q *GoalQuery) Build() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM goals", q.columns)
	if len(q.filters) > 0 {
		query += " WHERE " + strings.Join(q.filters, " AND ")
	}
	if q.orderBy != "" {
		query += " ORDER BY " + q.orderBy
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, q.args
}
