package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"habitmap/internal/models"
)

// GetWorkspaces lists all workspaces, oldest first.
func (d *Database) GetWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Workspace, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT id, name, slug, theme FROM workspaces ORDER BY id ASC")
		if err != nil {
			return nil, wrapErr(EntityWorkspace, "list", 0, err)
		}
		defer rows.Close()

		var ws []models.Workspace
		for rows.Next() {
			var w models.Workspace
			var theme *string
			if err := rows.Scan(&w.ID, &w.Name, &w.Slug, &theme); err != nil {
				return nil, wrapErr(EntityWorkspace, "list", 0, err)
			}
			if theme != nil {
				w.Theme = *theme
			} else {
				w.Theme = "default"
			}
			ws = append(ws, w)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityWorkspace, "list", 0, err)
		}
		return ws, nil
	})
}

// EnsureDefaultWorkspace creates the default workspace if none exist and
// returns its ID.
func (d *Database) EnsureDefaultWorkspace(ctx context.Context) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		var id int64
		err := d.DB.QueryRowContext(ctx, "SELECT id FROM workspaces ORDER BY id ASC LIMIT 1").Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, wrapErr(EntityWorkspace, "ensure default", 0, err)
		}
		return d.CreateWorkspace(ctx, "Personal", "personal")
	})
}

// CreateWorkspace inserts a workspace, de-duplicating the slug if taken.
func (d *Database) CreateWorkspace(ctx context.Context, name, slug string) (int64, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (int64, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, nil
		}
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug == "" {
			slug = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		}

		candidate := slug
		for i := 2; ; i++ {
			var existing int64
			err := d.DB.QueryRowContext(ctx, "SELECT id FROM workspaces WHERE slug = ?", candidate).Scan(&existing)
			if err == sql.ErrNoRows {
				break
			}
			if err != nil {
				return 0, wrapErr(EntityWorkspace, "create", 0, err)
			}
			candidate = fmt.Sprintf("%s-%d", slug, i)
		}

		res, err := d.DB.ExecContext(ctx, "INSERT INTO workspaces (name, slug) VALUES (?, ?)", name, candidate)
		if err != nil {
			return 0, wrapErr(EntityWorkspace, "create", 0, err)
		}
		id, err := res.LastInsertId()
		return id, wrapErr(EntityWorkspace, "create", 0, err)
	})
}

// SetWorkspaceTheme persists the chosen theme name.
func (d *Database) SetWorkspaceTheme(ctx context.Context, workspaceID int64, theme string) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	_, err := d.DB.ExecContext(ctx, "UPDATE workspaces SET theme = ? WHERE id = ?", theme, workspaceID)
	return wrapErr(EntityWorkspace, "set theme", workspaceID, err)
}
