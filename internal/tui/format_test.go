package tui

import (
	"testing"
	"time"
)

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(0, 0); got != "" {
		t.Fatalf("expected empty for untracked habit, got %q", got)
	}
	if got := FormatProgress(4, 0); got != "(4)" {
		t.Fatalf("expected (4), got %q", got)
	}
	if got := FormatProgress(4, 10); got != "(4/10)" {
		t.Fatalf("expected (4/10), got %q", got)
	}
}

func TestFormatStreak(t *testing.T) {
	if got := FormatStreak(0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := FormatStreak(1); got != "1 day" {
		t.Fatalf("expected 1 day, got %q", got)
	}
	if got := FormatStreak(5); got != "5 days" {
		t.Fatalf("expected 5 days, got %q", got)
	}
}

func TestFormatGoalCount(t *testing.T) {
	if got := FormatGoalCount(0, 0); got != "No goals" {
		t.Fatalf("expected No goals, got %q", got)
	}
	if got := FormatGoalCount(2, 5); got != "2/5 goals" {
		t.Fatalf("expected 2/5 goals, got %q", got)
	}
}

func TestFormatRelativeDay(t *testing.T) {
	today, err := time.Parse("2006-01-02", "2026-08-26")
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}
	if got := FormatRelativeDay("2026-08-26", today); got != "today" {
		t.Fatalf("expected today, got %q", got)
	}
	if got := FormatRelativeDay("2026-08-25", today); got != "yesterday" {
		t.Fatalf("expected yesterday, got %q", got)
	}
	if got := FormatRelativeDay("2026-08-20", today); got != "2026-08-20" {
		t.Fatalf("expected raw date, got %q", got)
	}
	if got := FormatRelativeDay("garbage", today); got != "garbage" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
