package tui

import (
	"log"

	"habitmap/internal/models"
)

const (
	goalTreeWarnDepth       = 20
	goalTreeMaxDepthDefault = 100
)

// BuildHierarchy organizes a flat list of goals into a tree based on ParentID.
// Children are grouped by parent first, then subtrees are assembled
// recursively, so nesting depth is unbounded. A goal whose parent is not in
// the list (archived or filtered out) is treated as a root for this view.
func BuildHierarchy(flatGoals []models.Goal) []GoalView {
	present := make(map[int64]bool, len(flatGoals))
	for _, g := range flatGoals {
		present[g.ID] = true
	}

	childrenOf := make(map[int64][]models.Goal)
	var roots []models.Goal
	for _, g := range flatGoals {
		if g.ParentID != nil && present[*g.ParentID] {
			childrenOf[*g.ParentID] = append(childrenOf[*g.ParentID], g)
			continue
		}
		roots = append(roots, g)
	}

	var build func(g models.Goal) GoalView
	build = func(g models.Goal) GoalView {
		view := GoalView{Goal: g}
		for _, child := range childrenOf[g.ID] {
			view.Subgoals = append(view.Subgoals, build(child))
		}
		return view
	}

	out := make([]GoalView, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out
}

// Flatten converts a hierarchical tree into a flat list for rendering, respecting expansion state.
func Flatten(goals []GoalView, level int, expandedMap map[int64]bool, maxDepth int) []GoalView {
	if maxDepth <= 0 {
		maxDepth = goalTreeMaxDepthDefault
	}
	warned := false
	return flatten(goals, level, expandedMap, maxDepth, &warned)
}

func flatten(goals []GoalView, level int, expandedMap map[int64]bool, maxDepth int, warned *bool) []GoalView {
	var out []GoalView
	for _, g := range goals {
		if level >= maxDepth {
			if !*warned {
				log.Printf("goal tree depth exceeds %d; truncating deeper nodes", goalTreeWarnDepth)
				*warned = true
			}
			break
		}
		if level >= goalTreeWarnDepth && !*warned {
			log.Printf("goal tree depth exceeds %d; truncating deeper nodes", goalTreeWarnDepth)
			*warned = true
		}
		g.Level = level
		if expandedMap != nil {
			g.Expanded = expandedMap[g.ID]
		} else {
			g.Expanded = true // Default to expanded if no map provided (e.g. reports)
		}
		out = append(out, g)
		if g.Expanded && len(g.Subgoals) > 0 {
			out = append(out, flatten(g.Subgoals, level+1, expandedMap, maxDepth, warned)...)
		}
	}
	return out
}
