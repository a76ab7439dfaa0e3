package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"habitmap/internal/util"
)

const exportVersion = 1

type ExportWorkspace struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Theme string `json:"theme,omitempty"`
}

type ExportGoal struct {
	ID          int64   `json:"id"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	WorkspaceID *int64  `json:"workspace_id,omitempty"`
	Name        string  `json:"name"`
	Notes       *string `json:"notes,omitempty"`
	Status      string  `json:"status"`
	Rank        int     `json:"rank"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
	ArchivedAt  *string `json:"archived_at,omitempty"`
}

type ExportHabit struct {
	ID               int64    `json:"id"`
	GoalID           int64    `json:"goal_id"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	Tags             []string `json:"tags,omitempty"`
	CompletionCount  int      `json:"completion_count"`
	CompletionTarget int      `json:"completion_target,omitempty"`
	Rank             int      `json:"rank"`
	CreatedAt        string   `json:"created_at"`
}

type ExportRelation struct {
	HabitID        int64  `json:"habit_id"`
	RelatedHabitID int64  `json:"related_habit_id"`
	Relation       string `json:"relation"`
}

type ExportLog struct {
	HabitID int64   `json:"habit_id"`
	Date    string  `json:"date"`
	Note    *string `json:"note,omitempty"`
}

// ExportBundle is the on-disk JSON shape of a full database export.
type ExportBundle struct {
	Version    int               `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Workspaces []ExportWorkspace `json:"workspaces"`
	Goals      []ExportGoal      `json:"goals"`
	Habits     []ExportHabit     `json:"habits"`
	Relations  []ExportRelation  `json:"relations"`
	Logs       []ExportLog       `json:"logs"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// BuildExport collects the full database content into a bundle.
func (d *Database) BuildExport(ctx context.Context) (*ExportBundle, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (*ExportBundle, error) {
		bundle := &ExportBundle{
			Version:    exportVersion,
			ExportedAt: formatTime(time.Now()),
		}

		workspaces, err := d.GetWorkspaces(ctx)
		if err != nil {
			return nil, err
		}
		for _, w := range workspaces {
			bundle.Workspaces = append(bundle.Workspaces, ExportWorkspace{
				ID: w.ID, Name: w.Name, Slug: w.Slug, Theme: w.Theme,
			})

			// Backups carry archived rows too; a restore wipes the
			// tables first, so filtering here would destroy data.
			goals, err := d.GetAllGoals(ctx, w.ID)
			if err != nil {
				return nil, err
			}
			for _, g := range goals {
				bundle.Goals = append(bundle.Goals, ExportGoal{
					ID:          g.ID,
					ParentID:    g.ParentID,
					WorkspaceID: g.WorkspaceID,
					Name:        g.Name,
					Notes:       g.Notes,
					Status:      g.Status,
					Rank:        g.Rank,
					CreatedAt:   formatTime(g.CreatedAt),
					CompletedAt: formatTimePtr(g.CompletedAt),
					ArchivedAt:  formatTimePtr(g.ArchivedAt),
				})
			}

			habits, err := d.GetAllHabits(ctx, w.ID)
			if err != nil {
				return nil, err
			}
			for _, h := range habits {
				eh := ExportHabit{
					ID:               h.ID,
					GoalID:           h.GoalID,
					Name:             h.Name,
					Status:           h.Status,
					CompletionCount:  h.CompletionCount,
					CompletionTarget: h.CompletionTarget,
					Rank:             h.Rank,
					CreatedAt:        formatTime(h.CreatedAt),
				}
				if h.Tags != nil {
					eh.Tags = util.JSONToTags(*h.Tags)
				}
				bundle.Habits = append(bundle.Habits, eh)

				logs, err := d.GetCompletionLogs(ctx, h.ID)
				if err != nil {
					return nil, err
				}
				for _, l := range logs {
					bundle.Logs = append(bundle.Logs, ExportLog{
						HabitID: l.HabitID, Date: l.Date, Note: l.Note,
					})
				}
			}

			relations, err := d.GetRelations(ctx, w.ID)
			if err != nil {
				return nil, err
			}
			for _, r := range relations {
				bundle.Relations = append(bundle.Relations, ExportRelation{
					HabitID:        r.HabitID,
					RelatedHabitID: r.RelatedHabitID,
					Relation:       string(r.Relation),
				})
			}
		}
		return bundle, nil
	})
}

// ExportJSON serializes the full database, encrypting when a passphrase is
// given.
func (d *Database) ExportJSON(ctx context.Context, passphrase string) ([]byte, error) {
	bundle, err := d.BuildExport(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, wrapErr(EntityExport, "marshal", 0, err)
	}
	if passphrase == "" {
		return payload, nil
	}
	return encryptData(payload, passphrase)
}

// WriteExport writes an export file at path.
func (d *Database) WriteExport(ctx context.Context, path, passphrase string) error {
	data, err := d.ExportJSON(ctx, passphrase)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return wrapErr(EntityExport, "write", 0, err)
	}
	return nil
}

// ImportJSON replaces the database content with the bundle in data,
// decrypting first when the payload is an encrypted export.
func (d *Database) ImportJSON(ctx context.Context, data []byte, passphrase string) error {
	payload, err := maybeDecrypt(data, passphrase)
	if err != nil {
		return err
	}

	var bundle ExportBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		return wrapErr(EntityExport, "parse", 0, err)
	}
	if bundle.Version != exportVersion {
		return wrapErr(EntityExport, "parse", 0, fmt.Errorf("unsupported export version %d", bundle.Version))
	}

	err = d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"habit_relations", "completion_logs", "habits", "goals", "workspaces"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		for _, w := range bundle.Workspaces {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO workspaces (id, name, slug, theme) VALUES (?, ?, ?, ?)",
				w.ID, w.Name, w.Slug, w.Theme); err != nil {
				return err
			}
		}
		for _, g := range bundle.Goals {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO goals (id, parent_id, workspace_id, name, notes, status, rank, created_at, completed_at, archived_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				g.ID, toNullableArg(g.ParentID), toNullableArg(g.WorkspaceID), g.Name,
				toNullableArg(g.Notes), g.Status, g.Rank, g.CreatedAt,
				toNullableArg(g.CompletedAt), toNullableArg(g.ArchivedAt)); err != nil {
				return err
			}
		}
		for _, h := range bundle.Habits {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO habits (id, goal_id, name, status, tags, completion_count, completion_target, rank, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				h.ID, h.GoalID, h.Name, h.Status, util.TagsToJSON(h.Tags),
				h.CompletionCount, h.CompletionTarget, h.Rank, h.CreatedAt); err != nil {
				return err
			}
		}
		for _, r := range bundle.Relations {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO habit_relations (habit_id, related_habit_id, relation) VALUES (?, ?, ?)",
				r.HabitID, r.RelatedHabitID, r.Relation); err != nil {
				return err
			}
		}
		for _, l := range bundle.Logs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO completion_logs (habit_id, date, note) VALUES (?, ?, ?)",
				l.HabitID, l.Date, toNullableArg(l.Note)); err != nil {
				return err
			}
		}
		return nil
	})
	return wrapErr(EntityExport, "import", 0, err)
}
