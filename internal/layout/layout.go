// Package layout converts a forest of goals and their attached habits into
// absolutely positioned nodes and connecting edges for the relationship map.
// The computation is a pure function of its inputs: it never mutates them,
// retains no state between calls, and is deterministic for a given snapshot.
package layout

import (
	"errors"
	"fmt"

	"habitmap/internal/config"
	"habitmap/internal/models"
)

// ErrGoalCycle is returned when the goal parent chain contains a cycle.
// The source data never guards against this, so the layout must.
var ErrGoalCycle = errors.New("goal hierarchy contains a cycle")

// NodeKind discriminates the derived node types.
type NodeKind string

const (
	NodeGoal      NodeKind = "goal"
	NodeHabit     NodeKind = "habit"
	NodeMainGroup NodeKind = "mainGroup"
)

// EdgeKind discriminates the derived edge types.
type EdgeKind string

const (
	EdgeGoalChild EdgeKind = "goal-child"
	EdgeGoalHabit EdgeKind = "goal-habit"
	EdgeNext      EdgeKind = "next"
)

// Sub is a habit nested inside a Main group node.
type Sub struct {
	HabitID int64
	Label   string
}

// Node is a positioned element of the map. Nodes are derived fresh on every
// layout run and are owned by the rendering layer.
type Node struct {
	ID      string
	Kind    NodeKind
	X       int
	Y       int
	Width   int
	Height  int
	Label   string
	GoalID  int64 // set for goal nodes
	HabitID int64 // set for habit and mainGroup nodes
	Done    bool  // goal done / habit target reached
	Count   int   // habit completion count
	Target  int   // habit completion target
	Subs    []Sub // set for mainGroup nodes
}

// Edge connects two nodes by ID.
type Edge struct {
	ID     string
	Source string
	Target string
	Kind   EdgeKind
}

// Result is the full output of one layout run.
type Result struct {
	Nodes  []Node
	Edges  []Edge
	Width  int
	Height int
}

// Options tune the layout run. The zero value uses the config defaults.
type Options struct {
	// MaxCanvasWidth bounds the shelf packing of independent root trees.
	MaxCanvasWidth int
}

// GoalNodeID returns the derived node ID for a goal.
func GoalNodeID(id int64) string { return fmt.Sprintf("g%d", id) }

// HabitNodeID returns the derived node ID for a simple habit.
func HabitNodeID(id int64) string { return fmt.Sprintf("h%d", id) }

// MainGroupNodeID returns the derived node ID for a Main group keyed by the
// Main habit's ID.
func MainGroupNodeID(id int64) string { return fmt.Sprintf("m%d", id) }

// Compute lays out the given goals, habits, and relations. Habits referencing
// unknown goals and relations referencing unknown habits are skipped silently;
// a goal whose parent does not resolve is treated as a root. A parent cycle
// is reported as ErrGoalCycle.
func Compute(goals []models.Goal, habits []models.Habit, relations []models.HabitRelation, opts Options) (Result, error) {
	maxWidth := opts.MaxCanvasWidth
	if maxWidth <= 0 {
		maxWidth = config.DefaultMaxCanvasWidth
	}

	rel := indexRelations(relations)
	idx := indexGoals(goals)
	attached := attachHabits(habits, idx, rel)
	geo := newGeometry(idx, attached, rel)

	p := &placer{
		idx:        idx,
		attached:   attached,
		rel:        rel,
		geo:        geo,
		habitsByID: habitsByID(habits),
		visited:    make(map[int64]bool),
	}

	cursorX := config.CanvasMargin
	rowTop := config.CanvasMargin
	rowBottom := rowTop
	for _, root := range idx.roots {
		w := geo.subtreeWidth(root.ID)
		if cursorX > config.CanvasMargin && cursorX+w > maxWidth {
			cursorX = config.CanvasMargin
			rowTop = rowBottom + config.RootRowGap
		}
		bottom, err := p.place(root.ID, cursorX, rowTop)
		if err != nil {
			return Result{}, err
		}
		if bottom > rowBottom {
			rowBottom = bottom
		}
		cursorX += w + config.SiblingGap
	}

	// A functional parent graph reachable from the roots is always a forest;
	// any goal left unvisited sits on a parent cycle.
	for _, g := range goals {
		if !p.visited[g.ID] {
			return Result{}, fmt.Errorf("%w: goal %d unreachable from any root", ErrGoalCycle, g.ID)
		}
	}

	p.synthesizeNextEdges(relations)

	res := Result{Nodes: p.nodes, Edges: p.edges}
	for _, n := range res.Nodes {
		if r := n.X + n.Width + config.CanvasMargin; r > res.Width {
			res.Width = r
		}
		if b := n.Y + n.Height + config.CanvasMargin; b > res.Height {
			res.Height = b
		}
	}
	return res, nil
}

func habitsByID(habits []models.Habit) map[int64]models.Habit {
	m := make(map[int64]models.Habit, len(habits))
	for _, h := range habits {
		m[h.ID] = h
	}
	return m
}
