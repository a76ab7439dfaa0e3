package layout

import (
	"fmt"

	"habitmap/internal/config"
	"habitmap/internal/models"
)

// placer walks the goal forest top-down, assigning absolute coordinates and
// growing the node and edge lists. One placer serves exactly one Compute call.
type placer struct {
	idx        goalIndex
	attached   map[int64][]models.Habit
	rel        relationIndex
	geo        *geometry
	habitsByID map[int64]models.Habit

	nodes   []Node
	edges   []Edge
	visited map[int64]bool
}

// place positions the goal at the top of its horizontal band, lays its habit
// row out to the side, then recurses into children in side-by-side bands.
// It returns the lowest Y coordinate the subtree consumed.
func (p *placer) place(goalID int64, xStart, yStart int) (int, error) {
	if p.visited[goalID] {
		return 0, fmt.Errorf("%w: goal %d visited twice", ErrGoalCycle, goalID)
	}
	p.visited[goalID] = true

	goal := p.idx.byID[goalID]
	subtreeWidth := p.geo.subtreeWidth(goalID)

	goalX := xStart + subtreeWidth/2 - config.GoalNodeWidth/2
	goalY := yStart
	goalNodeID := GoalNodeID(goalID)
	p.nodes = append(p.nodes, Node{
		ID:     goalNodeID,
		Kind:   NodeGoal,
		X:      goalX,
		Y:      goalY,
		Width:  config.GoalNodeWidth,
		Height: config.GoalNodeHeight,
		Label:  goal.Name,
		GoalID: goalID,
		Done:   goal.Status == config.StatusDone,
	})
	maxY := goalY + config.GoalNodeHeight

	// Habit row: each habit staggers HabitIndexOffset further right than the
	// last so the right-angle connectors from the goal never overlap.
	habitCursorY := goalY + config.HabitVerticalOffset
	maxHabitY := goalY + config.GoalNodeHeight
	for i, h := range p.attached[goalID] {
		habitX := goalX + config.GoalNodeWidth/2 + config.HabitIndexOffset*(i+1)
		height := p.geo.habitHeight(h)

		node := Node{
			X:       habitX,
			Y:       habitCursorY,
			Height:  height,
			Label:   h.Name,
			HabitID: h.ID,
			Done:    h.TargetReached(),
			Count:   h.CompletionCount,
			Target:  h.CompletionTarget,
		}
		if subIDs := p.rel.mainToSubs[h.ID]; len(subIDs) > 0 {
			node.ID = MainGroupNodeID(h.ID)
			node.Kind = NodeMainGroup
			node.Width = config.MainGroupWidth
			for _, subID := range subIDs {
				sub := Sub{HabitID: subID}
				if sh, ok := p.habitsByID[subID]; ok {
					sub.Label = sh.Name
				}
				node.Subs = append(node.Subs, sub)
			}
		} else {
			node.ID = HabitNodeID(h.ID)
			node.Kind = NodeHabit
			node.Width = config.HabitNodeWidth
		}
		p.nodes = append(p.nodes, node)
		p.edges = append(p.edges, Edge{
			ID:     fmt.Sprintf("e-%s-%s", goalNodeID, node.ID),
			Source: goalNodeID,
			Target: node.ID,
			Kind:   EdgeGoalHabit,
		})

		bottom := habitCursorY + height
		if bottom > maxHabitY {
			maxHabitY = bottom
		}
		if bottom > maxY {
			maxY = bottom
		}
		habitCursorY = bottom + config.HabitGap
	}

	// Children never start above the bottom of this goal's habit row.
	childY := goalY + config.GoalVerticalSpacing
	if floor := maxHabitY + config.ChildTopMargin; floor > childY {
		childY = floor
	}

	childX := xStart
	for _, childID := range p.idx.childrenOf[goalID] {
		childWidth := p.geo.subtreeWidth(childID)
		bottom, err := p.place(childID, childX, childY)
		if err != nil {
			return 0, err
		}
		if bottom > maxY {
			maxY = bottom
		}
		p.edges = append(p.edges, Edge{
			ID:     fmt.Sprintf("e-%s-%s", goalNodeID, GoalNodeID(childID)),
			Source: goalNodeID,
			Target: GoalNodeID(childID),
			Kind:   EdgeGoalChild,
		})
		childX += childWidth + config.SiblingGap
	}

	return maxY, nil
}
