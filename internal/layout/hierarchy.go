package layout

import "habitmap/internal/models"

// goalIndex is the adjacency view of the goal forest.
type goalIndex struct {
	byID       map[int64]models.Goal
	childrenOf map[int64][]int64
	roots      []models.Goal
}

// indexGoals builds parent -> children adjacency and the root list.
// A goal referencing a nonexistent parent is treated as a root rather than
// dropped; this tolerates inconsistent data at the cost of possibly odd
// placement.
func indexGoals(goals []models.Goal) goalIndex {
	idx := goalIndex{
		byID:       make(map[int64]models.Goal, len(goals)),
		childrenOf: make(map[int64][]int64),
	}
	for _, g := range goals {
		idx.byID[g.ID] = g
	}
	for _, g := range goals {
		if g.ParentID != nil {
			if _, ok := idx.byID[*g.ParentID]; ok {
				idx.childrenOf[*g.ParentID] = append(idx.childrenOf[*g.ParentID], g.ID)
				continue
			}
		}
		idx.roots = append(idx.roots, g)
	}
	return idx
}

// attachHabits groups habits by their goal, preserving input order and
// excluding Subs, which are drawn nested inside their Main's group node.
// Habits referencing unknown goals are dropped.
func attachHabits(habits []models.Habit, idx goalIndex, rel relationIndex) map[int64][]models.Habit {
	attached := make(map[int64][]models.Habit)
	for _, h := range habits {
		if rel.isSub(h.ID) {
			continue
		}
		if _, ok := idx.byID[h.GoalID]; !ok {
			continue
		}
		attached[h.GoalID] = append(attached[h.GoalID], h)
	}
	return attached
}
