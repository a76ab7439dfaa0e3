package layout

import (
	"errors"
	"reflect"
	"testing"

	"habitmap/internal/config"
	"habitmap/internal/models"
)

func mustCompute(t *testing.T, goals []models.Goal, habits []models.Habit, rels []models.HabitRelation) Result {
	t.Helper()
	res, err := Compute(goals, habits, rels, Options{})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return res
}

func findNode(res Result, id string) (Node, bool) {
	for _, n := range res.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func edgesOfKind(res Result, kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range res.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestSingleGoalTwoHabits(t *testing.T) {
	goals := []models.Goal{{ID: 1, Name: "Fitness"}}
	habits := []models.Habit{
		{ID: 1, GoalID: 1, Name: "Run"},
		{ID: 2, GoalID: 1, Name: "Swim"},
	}
	res := mustCompute(t, goals, habits, nil)

	goalNodes := 0
	habitNodes := 0
	for _, n := range res.Nodes {
		switch n.Kind {
		case NodeGoal:
			goalNodes++
		case NodeHabit:
			habitNodes++
		}
	}
	if goalNodes != 1 || habitNodes != 2 {
		t.Fatalf("nodes = %d goals, %d habits; want 1 and 2", goalNodes, habitNodes)
	}
	if got := len(edgesOfKind(res, EdgeGoalHabit)); got != 2 {
		t.Fatalf("goal->habit edges = %d, want 2", got)
	}
	if got := len(edgesOfKind(res, EdgeNext)); got != 0 {
		t.Fatalf("next edges = %d, want 0", got)
	}

	h1, _ := findNode(res, HabitNodeID(1))
	h2, _ := findNode(res, HabitNodeID(2))
	if h2.X <= h1.X {
		t.Fatalf("habits should stagger right: h1.X=%d h2.X=%d", h1.X, h2.X)
	}
	if h2.Y <= h1.Y {
		t.Fatalf("second habit should sit below the first: h1.Y=%d h2.Y=%d", h1.Y, h2.Y)
	}
}

func TestMainGroupAbsorption(t *testing.T) {
	goals := []models.Goal{{ID: 1, Name: "Fitness"}}
	habits := []models.Habit{
		{ID: 1, GoalID: 1, Name: "Run"},
		{ID: 2, GoalID: 1, Name: "Swim"},
	}
	rels := []models.HabitRelation{
		{HabitID: 2, RelatedHabitID: 1, Relation: models.RelationMain},
	}
	res := mustCompute(t, goals, habits, rels)

	if _, ok := findNode(res, HabitNodeID(2)); ok {
		t.Fatalf("sub habit must not produce its own node")
	}
	if _, ok := findNode(res, HabitNodeID(1)); ok {
		t.Fatalf("main habit should render as a group node, not a plain habit")
	}
	group, ok := findNode(res, MainGroupNodeID(1))
	if !ok {
		t.Fatalf("expected a main group node for habit 1")
	}
	if group.Kind != NodeMainGroup {
		t.Fatalf("group kind = %q", group.Kind)
	}
	if len(group.Subs) != 1 || group.Subs[0].HabitID != 2 {
		t.Fatalf("group subs = %+v, want habit 2", group.Subs)
	}
	if group.Subs[0].Label != "Swim" {
		t.Fatalf("sub label = %q", group.Subs[0].Label)
	}

	edges := edgesOfKind(res, EdgeGoalHabit)
	if len(edges) != 1 || edges[0].Target != MainGroupNodeID(1) {
		t.Fatalf("expected exactly one goal->mainGroup edge, got %+v", edges)
	}
}

func TestSiblingBandsDoNotOverlap(t *testing.T) {
	p := int64(1)
	goals := []models.Goal{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "a", ParentID: &p},
		{ID: 3, Name: "b", ParentID: &p},
		{ID: 4, Name: "c", ParentID: &p},
	}
	habits := []models.Habit{
		{ID: 10, GoalID: 2, Name: "x"},
		{ID: 11, GoalID: 2, Name: "y"},
		{ID: 12, GoalID: 3, Name: "z"},
	}
	res := mustCompute(t, goals, habits, nil)

	var siblings []Node
	for _, id := range []int64{2, 3, 4} {
		n, ok := findNode(res, GoalNodeID(id))
		if !ok {
			t.Fatalf("missing goal node %d", id)
		}
		siblings = append(siblings, n)
	}
	for i := 0; i < len(siblings); i++ {
		for j := i + 1; j < len(siblings); j++ {
			a, b := siblings[i], siblings[j]
			if a.X < b.X+b.Width && b.X < a.X+a.Width {
				t.Fatalf("sibling goals %s and %s overlap horizontally", a.ID, b.ID)
			}
		}
	}
}

func TestChildrenStartBelowHabitRow(t *testing.T) {
	p := int64(1)
	goals := []models.Goal{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "child", ParentID: &p},
	}
	habits := []models.Habit{
		{ID: 10, GoalID: 1, Name: "a"},
		{ID: 11, GoalID: 1, Name: "b"},
		{ID: 12, GoalID: 1, Name: "c"},
		{ID: 13, GoalID: 1, Name: "d"},
	}
	res := mustCompute(t, goals, habits, nil)

	child, _ := findNode(res, GoalNodeID(2))
	maxHabitBottom := 0
	for _, n := range res.Nodes {
		if n.Kind == NodeHabit {
			if b := n.Y + n.Height; b > maxHabitBottom {
				maxHabitBottom = b
			}
		}
	}
	if child.Y < maxHabitBottom {
		t.Fatalf("child goal at Y=%d starts above habit row bottom %d", child.Y, maxHabitBottom)
	}
}

func TestParentChildEdgeCompleteness(t *testing.T) {
	p1, p2 := int64(1), int64(2)
	missing := int64(404)
	goals := []models.Goal{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "mid", ParentID: &p1},
		{ID: 3, Name: "leaf", ParentID: &p2},
		{ID: 4, Name: "stray", ParentID: &missing},
	}
	res := mustCompute(t, goals, nil, nil)

	edges := edgesOfKind(res, EdgeGoalChild)
	if len(edges) != 2 {
		t.Fatalf("goal->goal edges = %d, want 2", len(edges))
	}
	want := map[string]string{
		GoalNodeID(2): GoalNodeID(1),
		GoalNodeID(3): GoalNodeID(2),
	}
	for _, e := range edges {
		if want[e.Target] != e.Source {
			t.Fatalf("unexpected edge %s -> %s", e.Source, e.Target)
		}
		delete(want, e.Target)
	}
	if len(want) != 0 {
		t.Fatalf("missing edges: %v", want)
	}
}

func TestNextEdgesRemapAndDedupe(t *testing.T) {
	goals := []models.Goal{{ID: 1, Name: "g"}}
	habits := []models.Habit{
		{ID: 1, GoalID: 1, Name: "main"},
		{ID: 2, GoalID: 1, Name: "sub"},
		{ID: 3, GoalID: 1, Name: "solo"},
	}
	rels := []models.HabitRelation{
		{HabitID: 2, RelatedHabitID: 1, Relation: models.RelationMain},
		// Next edge from the Sub: must terminate at the Main group instead.
		{HabitID: 2, RelatedHabitID: 3, Relation: models.RelationNext},
		{HabitID: 2, RelatedHabitID: 3, Relation: models.RelationNext},
		// Dangling endpoint: folded away silently.
		{HabitID: 99, RelatedHabitID: 3, Relation: models.RelationNext},
	}
	res := mustCompute(t, goals, habits, rels)

	edges := edgesOfKind(res, EdgeNext)
	if len(edges) != 1 {
		t.Fatalf("next edges = %+v, want exactly one", edges)
	}
	if edges[0].Source != MainGroupNodeID(1) || edges[0].Target != HabitNodeID(3) {
		t.Fatalf("next edge = %s -> %s, want %s -> %s",
			edges[0].Source, edges[0].Target, MainGroupNodeID(1), HabitNodeID(3))
	}
}

func TestDeterminism(t *testing.T) {
	p := int64(1)
	goals := []models.Goal{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "a", ParentID: &p},
		{ID: 3, Name: "b", ParentID: &p},
		{ID: 4, Name: "other root"},
	}
	habits := []models.Habit{
		{ID: 10, GoalID: 1, Name: "one"},
		{ID: 11, GoalID: 2, Name: "two"},
		{ID: 12, GoalID: 2, Name: "three"},
		{ID: 13, GoalID: 4, Name: "four"},
	}
	rels := []models.HabitRelation{
		{HabitID: 12, RelatedHabitID: 11, Relation: models.RelationMain},
		{HabitID: 13, RelatedHabitID: 10, Relation: models.RelationNext},
	}

	first := mustCompute(t, goals, habits, rels)
	second := mustCompute(t, goals, habits, rels)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs should produce identical output")
	}
}

func TestRootShelfPackingWraps(t *testing.T) {
	goals := []models.Goal{
		{ID: 1, Name: "r1"},
		{ID: 2, Name: "r2"},
		{ID: 3, Name: "r3"},
	}
	// Force a wrap after the second root.
	narrow := Options{MaxCanvasWidth: 2*config.GoalNodeWidth + config.SiblingGap + 2*config.CanvasMargin}
	res, err := Compute(goals, nil, nil, narrow)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	r1, _ := findNode(res, GoalNodeID(1))
	r2, _ := findNode(res, GoalNodeID(2))
	r3, _ := findNode(res, GoalNodeID(3))
	if r1.Y != r2.Y {
		t.Fatalf("first two roots should share a shelf: %d vs %d", r1.Y, r2.Y)
	}
	if r3.Y <= r1.Y {
		t.Fatalf("third root should wrap to a lower shelf: %d vs %d", r3.Y, r1.Y)
	}
	if r3.X != r1.X {
		t.Fatalf("wrapped root should reset to the left margin: %d vs %d", r3.X, r1.X)
	}
}

func TestGoalCycleDetected(t *testing.T) {
	a, b := int64(1), int64(2)
	goals := []models.Goal{
		{ID: 1, Name: "a", ParentID: &b},
		{ID: 2, Name: "b", ParentID: &a},
	}
	_, err := Compute(goals, nil, nil, Options{})
	if !errors.Is(err, ErrGoalCycle) {
		t.Fatalf("err = %v, want ErrGoalCycle", err)
	}
}

func TestInputsNotMutated(t *testing.T) {
	p := int64(1)
	goals := []models.Goal{{ID: 1, Name: "root"}, {ID: 2, Name: "c", ParentID: &p}}
	habits := []models.Habit{{ID: 1, GoalID: 1, Name: "h"}}
	rels := []models.HabitRelation{{HabitID: 1, RelatedHabitID: 1, Relation: models.RelationNext}}

	goalsCopy := make([]models.Goal, len(goals))
	copy(goalsCopy, goals)
	habitsCopy := make([]models.Habit, len(habits))
	copy(habitsCopy, habits)

	mustCompute(t, goals, habits, rels)

	if !reflect.DeepEqual(goals, goalsCopy) || !reflect.DeepEqual(habits, habitsCopy) {
		t.Fatalf("Compute must not mutate its inputs")
	}
}
