package layout

import (
	"fmt"

	"habitmap/internal/models"
)

// synthesizeNextEdges runs after all nodes are placed and emits one directed
// edge per "next" relation. Endpoints are remapped to the enclosing Main
// group when the habit is a Sub or anchors a group, since Subs are never
// visible nodes. Dangling endpoints are skipped; duplicates are suppressed.
func (p *placer) synthesizeNextEdges(relations []models.HabitRelation) {
	placed := make(map[string]bool, len(p.nodes))
	for _, n := range p.nodes {
		placed[n.ID] = true
	}

	seen := make(map[string]bool)
	for _, r := range relations {
		if r.Relation != models.RelationNext {
			continue
		}
		source, ok := p.endpointNodeID(r.HabitID)
		if !ok || !placed[source] {
			continue
		}
		target, ok := p.endpointNodeID(r.RelatedHabitID)
		if !ok || !placed[target] {
			continue
		}
		if source == target {
			continue
		}
		key := fmt.Sprintf("%s-%s-next", source, target)
		if seen[key] {
			continue
		}
		seen[key] = true
		p.edges = append(p.edges, Edge{
			ID:     "e-" + key,
			Source: source,
			Target: target,
			Kind:   EdgeNext,
		})
	}
}

// endpointNodeID resolves the visible node standing in for a habit.
func (p *placer) endpointNodeID(habitID int64) (string, bool) {
	if _, ok := p.habitsByID[habitID]; !ok {
		return "", false
	}
	if main, ok := p.rel.subToMain[habitID]; ok {
		return MainGroupNodeID(main), true
	}
	if p.rel.isMain(habitID) {
		return MainGroupNodeID(habitID), true
	}
	return HabitNodeID(habitID), true
}
