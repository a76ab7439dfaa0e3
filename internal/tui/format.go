package tui

import (
	"fmt"
	"time"
)

// FormatProgress formats a habit's progress toward its target.
func FormatProgress(count, target int) string {
	if target <= 0 {
		if count == 0 {
			return ""
		}
		return fmt.Sprintf("(%d)", count)
	}
	return fmt.Sprintf("(%d/%d)", count, target)
}

// FormatStreak formats a current streak for the habit pane.
func FormatStreak(days int) string {
	if days <= 0 {
		return ""
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatGoalCount formats goal counts for display.
func FormatGoalCount(completed, total int) string {
	if total == 0 {
		return "No goals"
	}
	return fmt.Sprintf("%d/%d goals", completed, total)
}

// FormatRelativeDay renders a log date relative to today.
func FormatRelativeDay(date string, today time.Time) string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	switch int(today.Truncate(24 * time.Hour).Sub(day).Hours() / 24) {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return date
	}
}
