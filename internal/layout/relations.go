package layout

import "habitmap/internal/models"

// relationIndex holds the Main/Sub grouping lookups derived from the flat
// relation list. "next" relations are ignored here; they only produce edges.
type relationIndex struct {
	// mainToSubs lists the Subs of each Main, deduplicated, in the order the
	// relations first named them.
	mainToSubs map[int64][]int64
	// subToMain maps a Sub to its Main. Last write wins on inconsistent data.
	subToMain map[int64]int64
}

// indexRelations folds the relation list into the two grouping maps.
// Malformed or duplicate records are folded in idempotently, never rejected.
func indexRelations(relations []models.HabitRelation) relationIndex {
	idx := relationIndex{
		mainToSubs: make(map[int64][]int64),
		subToMain:  make(map[int64]int64),
	}

	// First pass settles sub -> main with last-write-wins semantics so a
	// reassigned Sub never appears under two Mains.
	for _, r := range relations {
		main, sub, ok := mainSubOf(r)
		if !ok {
			continue
		}
		idx.subToMain[sub] = main
	}

	seen := make(map[int64]bool)
	for _, r := range relations {
		_, sub, ok := mainSubOf(r)
		if !ok {
			continue
		}
		main, exists := idx.subToMain[sub]
		if !exists || seen[sub] {
			continue
		}
		seen[sub] = true
		idx.mainToSubs[main] = append(idx.mainToSubs[main], sub)
	}
	return idx
}

// mainSubOf resolves the Main and Sub roles of a relation record.
// Kind "main" reads Sub -> Main; kind "sub" reads Main -> Sub.
func mainSubOf(r models.HabitRelation) (main, sub int64, ok bool) {
	switch r.Relation {
	case models.RelationMain:
		return r.RelatedHabitID, r.HabitID, true
	case models.RelationSub:
		return r.HabitID, r.RelatedHabitID, true
	default:
		return 0, 0, false
	}
}

// isMain reports whether the habit anchors a Main group.
func (idx relationIndex) isMain(habitID int64) bool {
	return len(idx.mainToSubs[habitID]) > 0
}

// isSub reports whether the habit is absorbed into a Main group.
func (idx relationIndex) isSub(habitID int64) bool {
	_, ok := idx.subToMain[habitID]
	return ok
}
