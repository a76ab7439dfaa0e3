// Package stats derives completion statistics from habit logs: streaks,
// rates, and smoothed daily activity for the dashboard sparkline.
package stats

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"habitmap/internal/models"
)

const dateLayout = "2006-01-02"

// Summary condenses one habit's completion history.
type Summary struct {
	TotalCompletions int
	// ActiveDays counts distinct days with at least one completion.
	ActiveDays int
	// CurrentStreak counts consecutive active days ending today or yesterday.
	CurrentStreak int
	LongestStreak int
	// CompletionRate is active days divided by days since the first log.
	CompletionRate float64
}

// activeDays parses and deduplicates log dates, sorted ascending. Unparseable
// dates are skipped.
func activeDays(logs []models.CompletionLog) []time.Time {
	seen := make(map[string]bool, len(logs))
	var days []time.Time
	for _, l := range logs {
		if seen[l.Date] {
			continue
		}
		day, err := time.Parse(dateLayout, l.Date)
		if err != nil {
			continue
		}
		seen[l.Date] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Summarize computes a habit's summary as of today.
func Summarize(logs []models.CompletionLog, today time.Time) Summary {
	s := Summary{TotalCompletions: len(logs)}
	days := activeDays(logs)
	s.ActiveDays = len(days)
	if len(days) == 0 {
		return s
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	s.LongestStreak = longest

	// The current streak survives one missed day: completing yesterday but
	// not yet today still counts.
	today = today.Truncate(24 * time.Hour)
	last := days[len(days)-1]
	if gap := today.Sub(last); gap >= 0 && gap <= 24*time.Hour {
		s.CurrentStreak = run
	}

	span := today.Sub(days[0]).Hours()/24 + 1
	if span < 1 {
		span = 1
	}
	s.CompletionRate = float64(s.ActiveDays) / span

	return s
}

// DailyCounts buckets completions per day over the window ending at today,
// inclusive. The result has exactly windowDays entries, oldest first.
func DailyCounts(logs []models.CompletionLog, today time.Time, windowDays int) []float64 {
	if windowDays <= 0 {
		return nil
	}
	today = today.Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(windowDays - 1))
	counts := make([]float64, windowDays)
	for _, l := range logs {
		day, err := time.Parse(dateLayout, l.Date)
		if err != nil {
			continue
		}
		idx := int(day.Sub(start).Hours() / 24)
		if idx >= 0 && idx < windowDays {
			counts[idx]++
		}
	}
	return counts
}

// MovingAverage smooths a daily series with a trailing window. Entries before
// a full window average over what is available.
func MovingAverage(series []float64, window int) []float64 {
	if window <= 0 || len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series))
	for i := range series {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = stat.Mean(series[lo:i+1], nil)
	}
	return out
}

// TargetProgress returns completion progress in [0, 1]. Habits without a
// target report 0.
func TargetProgress(h models.Habit) float64 {
	if h.CompletionTarget <= 0 {
		return 0
	}
	p := float64(h.CompletionCount) / float64(h.CompletionTarget)
	if p > 1 {
		p = 1
	}
	return p
}

// WorkspaceRate is the mean completion rate across habit summaries.
func WorkspaceRate(summaries []Summary) float64 {
	if len(summaries) == 0 {
		return 0
	}
	rates := make([]float64, len(summaries))
	for i, s := range summaries {
		rates[i] = s.CompletionRate
	}
	return stat.Mean(rates, nil)
}
