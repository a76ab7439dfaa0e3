package stats

import (
	"math"
	"testing"
	"time"

	"habitmap/internal/models"
)

func logsFor(dates ...string) []models.CompletionLog {
	logs := make([]models.CompletionLog, 0, len(dates))
	for i, d := range dates {
		logs = append(logs, models.CompletionLog{ID: int64(i + 1), HabitID: 1, Date: d})
	}
	return logs
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, day(t, "2026-08-26"))
	if s.TotalCompletions != 0 || s.ActiveDays != 0 || s.CurrentStreak != 0 || s.LongestStreak != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_Streaks(t *testing.T) {
	logs := logsFor(
		"2026-08-10", "2026-08-11", "2026-08-12", // 3-day streak
		"2026-08-20", "2026-08-21", // 2-day streak ending further back
		"2026-08-25", "2026-08-26",
	)
	s := Summarize(logs, day(t, "2026-08-26"))
	if s.TotalCompletions != 7 {
		t.Fatalf("expected 7 completions, got %d", s.TotalCompletions)
	}
	if s.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", s.LongestStreak)
	}
	if s.CurrentStreak != 2 {
		t.Fatalf("expected current streak 2, got %d", s.CurrentStreak)
	}
}

func TestSummarize_StreakBrokenByGap(t *testing.T) {
	logs := logsFor("2026-08-20", "2026-08-21")
	s := Summarize(logs, day(t, "2026-08-26"))
	if s.CurrentStreak != 0 {
		t.Fatalf("expected broken streak, got %d", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Fatalf("expected longest streak 2, got %d", s.LongestStreak)
	}
}

func TestSummarize_YesterdayKeepsStreakAlive(t *testing.T) {
	logs := logsFor("2026-08-24", "2026-08-25")
	s := Summarize(logs, day(t, "2026-08-26"))
	if s.CurrentStreak != 2 {
		t.Fatalf("expected streak alive at 2, got %d", s.CurrentStreak)
	}
}

func TestSummarize_DuplicateDatesCollapse(t *testing.T) {
	logs := logsFor("2026-08-26", "2026-08-26", "2026-08-26")
	s := Summarize(logs, day(t, "2026-08-26"))
	if s.TotalCompletions != 3 {
		t.Fatalf("expected 3 completions, got %d", s.TotalCompletions)
	}
	if s.ActiveDays != 1 {
		t.Fatalf("expected 1 active day, got %d", s.ActiveDays)
	}
	if s.CompletionRate != 1 {
		t.Fatalf("expected rate 1, got %f", s.CompletionRate)
	}
}

func TestDailyCounts_Window(t *testing.T) {
	logs := logsFor("2026-08-20", "2026-08-25", "2026-08-26", "2026-08-26", "2026-07-01")
	counts := DailyCounts(logs, day(t, "2026-08-26"), 7)
	if len(counts) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(counts))
	}
	// Window covers Aug 20 through Aug 26.
	if counts[0] != 1 || counts[5] != 1 || counts[6] != 2 {
		t.Fatalf("unexpected buckets %v", counts)
	}
	var total float64
	for _, c := range counts {
		total += c
	}
	if total != 4 {
		t.Fatalf("expected 4 in-window completions, got %v", total)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestTargetProgress(t *testing.T) {
	if p := TargetProgress(models.Habit{CompletionCount: 5, CompletionTarget: 0}); p != 0 {
		t.Fatalf("expected 0 for open-ended habit, got %f", p)
	}
	if p := TargetProgress(models.Habit{CompletionCount: 5, CompletionTarget: 10}); p != 0.5 {
		t.Fatalf("expected 0.5, got %f", p)
	}
	if p := TargetProgress(models.Habit{CompletionCount: 20, CompletionTarget: 10}); p != 1 {
		t.Fatalf("expected clamp to 1, got %f", p)
	}
}

func TestWorkspaceRate(t *testing.T) {
	if r := WorkspaceRate(nil); r != 0 {
		t.Fatalf("expected 0, got %f", r)
	}
	r := WorkspaceRate([]Summary{{CompletionRate: 0.5}, {CompletionRate: 1}})
	if math.Abs(r-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %f", r)
	}
}
