package layout

import (
	"habitmap/internal/config"
	"habitmap/internal/models"
)

// geometry computes subtree extents bottom-up, before any absolute placement.
// A parent's required width depends on its children's widths, so estimates are
// post-order and memoized per goal.
type geometry struct {
	idx      goalIndex
	attached map[int64][]models.Habit
	rel      relationIndex
	memo     map[int64]extent
}

type extent struct {
	w, h int
}

func newGeometry(idx goalIndex, attached map[int64][]models.Habit, rel relationIndex) *geometry {
	return &geometry{idx: idx, attached: attached, rel: rel, memo: make(map[int64]extent)}
}

// habitWidth returns the on-canvas width of a habit's visual unit.
func (geo *geometry) habitWidth(h models.Habit) int {
	if geo.rel.isMain(h.ID) {
		return config.MainGroupWidth
	}
	return config.HabitNodeWidth
}

// habitHeight returns the vertical footprint of a habit's visual unit.
// Main groups grow by one sub-row per nested Sub.
func (geo *geometry) habitHeight(h models.Habit) int {
	if subs := geo.rel.mainToSubs[h.ID]; len(subs) > 0 {
		return config.HabitNodeHeight + len(subs)*config.SubNodeHeight
	}
	return config.HabitNodeHeight
}

// habitRowWidth measures the cascading habit row. Habit i sits
// HabitIndexOffset further right than habit i-1, measured from the goal's
// center, so the row width is the farthest right edge.
func (geo *geometry) habitRowWidth(goalID int64) int {
	habits := geo.attached[goalID]
	if len(habits) == 0 {
		return 0
	}
	width := 0
	for i, h := range habits {
		right := config.GoalNodeWidth/2 + config.HabitIndexOffset*(i+1) + geo.habitWidth(h)
		if right > width {
			width = right
		}
	}
	return width
}

// habitAreaHeight sums the habit footprints plus inter-habit gaps, including
// the leading offset below the goal.
func (geo *geometry) habitAreaHeight(goalID int64) int {
	habits := geo.attached[goalID]
	if len(habits) == 0 {
		return 0
	}
	height := config.HabitVerticalOffset - config.GoalNodeHeight
	for i, h := range habits {
		if i > 0 {
			height += config.HabitGap
		}
		height += geo.habitHeight(h)
	}
	return height
}

// subtreeWidth returns the horizontal band the goal's entire subtree needs.
func (geo *geometry) subtreeWidth(goalID int64) int {
	if ext, ok := geo.memo[goalID]; ok && ext.w > 0 {
		return ext.w
	}

	childrenWidth := 0
	for i, childID := range geo.idx.childrenOf[goalID] {
		if i > 0 {
			childrenWidth += config.SiblingGap
		}
		childrenWidth += geo.subtreeWidth(childID)
	}

	width := config.GoalNodeWidth
	if row := geo.habitRowWidth(goalID); row > width {
		width = row
	}
	if childrenWidth > width {
		width = childrenWidth
	}

	ext := geo.memo[goalID]
	ext.w = width
	geo.memo[goalID] = ext
	return width
}

// subtreeHeight returns the vertical extent of the goal's subtree. Siblings
// share a vertical band, so children contribute their max height, not a sum.
func (geo *geometry) subtreeHeight(goalID int64) int {
	if ext, ok := geo.memo[goalID]; ok && ext.h > 0 {
		return ext.h
	}

	childrenHeight := 0
	for _, childID := range geo.idx.childrenOf[goalID] {
		if h := geo.subtreeHeight(childID); h > childrenHeight {
			childrenHeight = h
		}
	}
	if childrenHeight > 0 {
		childrenHeight += config.GoalVerticalSpacing - config.GoalNodeHeight
	}

	below := geo.habitAreaHeight(goalID)
	if childrenHeight > below {
		below = childrenHeight
	}

	height := config.GoalNodeHeight + below
	ext := geo.memo[goalID]
	ext.h = height
	geo.memo[goalID] = ext
	return height
}
