package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"habitmap/internal/models"
	"habitmap/internal/stats"
)

// GeneratePDFReport writes a progress report for one workspace: the goal tree
// with each goal's habits, completion counts, and streaks.
func GeneratePDFReport(ctx context.Context, db Database, ws models.Workspace, path string) error {
	goals, err := db.GetGoals(ctx, ws.ID)
	if err != nil {
		return err
	}
	habits, err := db.GetHabits(ctx, ws.ID)
	if err != nil {
		return err
	}
	habitsByGoal := make(map[int64][]models.Habit)
	for _, h := range habits {
		habitsByGoal[h.GoalID] = append(habitsByGoal[h.GoalID], h)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Progress Report: %s", ws.Name))
	pdf.Ln(12)

	today := time.Now()
	flatGoals := Flatten(BuildHierarchy(goals), 0, nil, 0)

	totalDone := 0
	var allLogs []models.CompletionLog
	var summaries []stats.Summary
	pdf.SetFont("Arial", "", 12)
	if len(flatGoals) == 0 {
		pdf.Cell(0, 8, "No goals yet.")
		pdf.Ln(8)
	}

	for _, g := range flatGoals {
		status := "[ ]"
		if g.Status == string(models.GoalStatusDone) {
			status = "[x]"
			totalDone++
		}
		indent := strings.Repeat("    ", g.Level)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("%s%s %s", indent, status, g.Name))
		pdf.Ln(6)

		pdf.SetFont("Arial", "", 11)
		for _, h := range habitsByGoal[g.ID] {
			logs, err := db.GetCompletionLogs(ctx, h.ID)
			if err != nil {
				return err
			}
			summary := stats.Summarize(logs, today)
			allLogs = append(allLogs, logs...)
			summaries = append(summaries, summary)
			line := fmt.Sprintf("%s    - %s %s", indent, h.Name, FormatProgress(h.CompletionCount, h.CompletionTarget))
			if streak := FormatStreak(summary.CurrentStreak); streak != "" {
				line += fmt.Sprintf(", streak %s", streak)
			}
			if p := stats.TargetProgress(h); p > 0 {
				line += fmt.Sprintf(" (%.0f%% of target)", p*100)
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(5)
		}
		pdf.Ln(2)
	}

	if len(allLogs) > 0 {
		counts := stats.DailyCounts(allLogs, today, 14)
		avg := stats.MovingAverage(counts, 7)
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Last 14 days")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 7, "Completions per day: "+formatCounts(counts))
		pdf.Ln(5)
		pdf.Cell(0, 7, fmt.Sprintf("Trailing 7-day average: %.1f per day", avg[len(avg)-1]))
		pdf.Ln(5)
		pdf.Cell(0, 7, fmt.Sprintf("Workspace completion rate: %.0f%%", stats.WorkspaceRate(summaries)*100))
		pdf.Ln(5)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, FormatGoalCount(totalDone, len(flatGoals))+" completed")
	pdf.Ln(10)

	return pdf.OutputFileAndClose(path)
}

// formatCounts renders a daily count series oldest-first, e.g. "0 2 1 3".
func formatCounts(counts []float64) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d", int(c))
	}
	return strings.Join(parts, " ")
}
