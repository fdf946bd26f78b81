package note

import "sort"

// Group partitions entries by category and orders them for rendering.
// Groups follow the taxonomy total order; categories assigned outside the
// taxonomy (possible only when rules were validated against a different
// taxonomy) sort after all declared categories, by name. Empty groups are
// dropped. Within a group entries are newest first, identifier ascending
// on equal timestamps, so output is stable however history was retrieved.
func Group(entries []ClassifiedEntry, taxonomy []Category) []ChangeGroup {
	rank := make(map[Category]int, len(taxonomy))
	for i, c := range taxonomy {
		rank[c.Normalize()] = i
	}

	byCategory := make(map[Category][]ClassifiedEntry)
	for _, e := range entries {
		c := e.Category.Normalize()
		byCategory[c] = append(byCategory[c], e)
	}

	groups := make([]ChangeGroup, 0, len(byCategory))
	for c, members := range byCategory {
		sort.Slice(members, func(i, j int) bool {
			return entryLess(members[i], members[j])
		})
		groups = append(groups, ChangeGroup{Category: c, Entries: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		ri, iOK := rank[groups[i].Category]
		rj, jOK := rank[groups[j].Category]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return groups[i].Category < groups[j].Category
		}
	})

	return groups
}
