package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"habitmap/internal/layout"
	"habitmap/internal/models"
	"habitmap/internal/testutil"
)

func mapFixture(t *testing.T) layout.Result {
	t.Helper()
	goals := []models.Goal{
		testutil.NewGoal(1).WithName("Get fit").Build(),
	}
	habits := []models.Habit{
		testutil.NewHabit(10, 1).WithName("Run").WithProgress(3, 10).Build(),
		testutil.NewHabit(11, 1).WithName("Stretch").Build(),
		testutil.NewHabit(12, 1).WithName("Meditate").Build(),
	}
	relations := []models.HabitRelation{
		testutil.Relation(11, 10, models.RelationMain),
		testutil.Relation(10, 12, models.RelationNext),
	}
	res, err := layout.Compute(goals, habits, relations, layout.Options{})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return res
}

func TestWriteSVG(t *testing.T) {
	res := mapFixture(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, res, StyleFor("default")); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an SVG document")
	}
	if !strings.Contains(out, "Get fit") {
		t.Fatalf("expected goal label in output")
	}
	// The Main group absorbs its Sub, so the Sub appears as a nested row.
	if !strings.Contains(out, "Stretch") {
		t.Fatalf("expected sub habit label in output")
	}
	if !strings.Contains(out, "Run (3/10)") {
		t.Fatalf("expected progress label in output, got:\n%s", out)
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Fatalf("expected dashed next edge in output")
	}
	if !strings.Contains(out, "<marker") || !strings.Contains(out, "marker-end:url(#next-arrow)") {
		t.Fatalf("expected arrowhead marker on next edge")
	}
}

func TestSaveSVGAndPNG(t *testing.T) {
	res := mapFixture(t)
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "map.svg")
	if err := SaveSVG(svgPath, res, StyleFor("light")); err != nil {
		t.Fatalf("SaveSVG failed: %v", err)
	}
	info, err := os.Stat(svgPath)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty SVG file, err=%v", err)
	}

	pngPath := filepath.Join(dir, "map.png")
	if err := SavePNG(pngPath, res, StyleFor("default")); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	data, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if len(data) < 8 || !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected PNG magic header")
	}
}

func TestStyleFor_UnknownFallsBack(t *testing.T) {
	if StyleFor("nope") != Styles["default"] {
		t.Fatalf("expected fallback to default palette")
	}
}

func TestClip(t *testing.T) {
	long := strings.Repeat("a", 100)
	clipped := clip(long, 180)
	if len([]rune(clipped)) >= 100 {
		t.Fatalf("expected truncation, got %d runes", len([]rune(clipped)))
	}
	if !strings.HasSuffix(clipped, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", clipped)
	}
	if clip("short", 180) != "short" {
		t.Fatalf("short labels pass through")
	}
}
