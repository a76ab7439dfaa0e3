package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"habitmap/internal/config"
	"habitmap/internal/layout"
	"habitmap/internal/models"
	"habitmap/internal/render"
	"habitmap/internal/util"
)

// exportsDir resolves and creates the export target directory. The config
// file's export_dir wins over the platform documents directory.
func exportsDir() (string, error) {
	dir := appConfig.ExportDir
	if dir == "" {
		dir = util.ExportsDir(config.AppName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return dir, nil
}

const (
	exportSVG = iota
	exportPNG
	exportJSON
	exportPDF
)

func (m *DashboardModel) runExport(option int) {
	var path string
	var err error
	switch option {
	case exportSVG:
		path, err = m.exportMap("svg")
	case exportPNG:
		path, err = m.exportMap("png")
	case exportJSON:
		path, err = m.exportBackup()
	case exportPDF:
		path, err = m.exportPDF()
	default:
		return
	}
	if err != nil {
		m.setStatusError("Export failed: " + err.Error())
		return
	}
	m.setStatus("Exported " + path)
	util.LogError("record last export", m.db.SetSetting("last_export", path))
}

// allHabits flattens the per-goal habit buckets back into one list.
func (m *DashboardModel) allHabits() []models.Habit {
	var habits []models.Habit
	for _, g := range m.goals {
		habits = append(habits, m.habits[g.ID]...)
	}
	return habits
}

// exportMap lays out the active workspace and writes the map image.
func (m *DashboardModel) exportMap(format string) (string, error) {
	ws, ok := m.activeWorkspace()
	if !ok {
		return "", fmt.Errorf("no active workspace")
	}
	res, err := layout.Compute(m.goals, m.allHabits(), m.relations, layout.Options{
		MaxCanvasWidth: appConfig.MaxCanvasWidth,
	})
	if err != nil {
		return "", err
	}

	dir, err := exportsDir()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("map_%s_%s.%s", ws.Slug, time.Now().Format("2006-01-02"), format)
	path := filepath.Join(dir, name)
	style := render.StyleFor(ws.Theme)

	if format == "png" {
		err = render.SavePNG(path, res, style)
	} else {
		err = render.SaveSVG(path, res, style)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func (m *DashboardModel) exportBackup() (string, error) {
	dir, err := exportsDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("backup_%s.json", time.Now().Format("2006-01-02")))
	if err := m.db.WriteExport(m.ctx, path, ""); err != nil {
		return "", err
	}
	return path, nil
}

func (m *DashboardModel) exportPDF() (string, error) {
	ws, ok := m.activeWorkspace()
	if !ok {
		return "", fmt.Errorf("no active workspace")
	}
	dir, err := exportsDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("report_%s_%s.pdf", ws.Slug, time.Now().Format("2006-01-02")))
	if err := GeneratePDFReport(m.ctx, m.db, ws, path); err != nil {
		return "", err
	}
	return path, nil
}
