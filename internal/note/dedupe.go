package note

import "sort"

// Dedupe collapses entries that provably describe the same logical change:
// either one entry's cross-reference set contains the other's identifier
// (a commit and its squash-merged PR), or their canonical descriptions are
// identical AND the author matches. Matching descriptions alone never
// merge; the author is the required secondary signal guarding against
// false merges.
//
// Equivalence is computed over the whole input with union-find before any
// entry is discarded, so the merged set does not depend on traversal
// order. For each equivalence class the kept entry is the one with higher
// confidence, then the earlier timestamp, then the smaller identifier; the
// identifiers of discarded entries are retained on the keeper as MergedIDs
// for traceability. Running Dedupe on its own output is a no-op.
func Dedupe(entries []ClassifiedEntry) []ClassifiedEntry {
	if len(entries) <= 1 {
		return append([]ClassifiedEntry(nil), entries...)
	}

	uf := newUnionFind(len(entries))

	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID != "" {
			byID[e.ID] = i
		}
	}

	// Cross-reference matches, including references carried over from a
	// previously merged entry.
	for i, e := range entries {
		for _, ref := range append(append([]string{}, e.Refs...), e.MergedIDs...) {
			if j, ok := byID[ref]; ok && j != i {
				uf.union(i, j)
			}
		}
	}

	// Identical description + same author.
	type textKey struct{ desc, author string }
	byText := make(map[textKey]int, len(entries))
	for i, e := range entries {
		key := textKey{canonicalDescription(e.Description), lowerTrim(e.Author)}
		if key.desc == "" || key.author == "" {
			continue
		}
		if j, ok := byText[key]; ok {
			uf.union(i, j)
		} else {
			byText[key] = i
		}
	}

	groups := make(map[int][]int)
	for i := range entries {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	merged := make([]ClassifiedEntry, 0, len(groups))
	for _, members := range groups {
		merged = append(merged, mergeGroup(entries, members))
	}

	// The output order is deterministic regardless of input order;
	// grouping re-sorts per category later anyway.
	sort.Slice(merged, func(i, j int) bool {
		return entryLess(merged[i], merged[j])
	})
	return merged
}

// mergeGroup reduces one equivalence class to its kept entry.
func mergeGroup(entries []ClassifiedEntry, members []int) ClassifiedEntry {
	winner := members[0]
	for _, i := range members[1:] {
		if betterKeeper(entries[i], entries[winner]) {
			winner = i
		}
	}

	kept := entries[winner]
	seen := make(map[string]bool, len(kept.MergedIDs)+len(members))
	mergedIDs := append([]string(nil), kept.MergedIDs...)
	for _, id := range mergedIDs {
		seen[id] = true
	}
	for _, i := range members {
		if i == winner {
			continue
		}
		for _, id := range append([]string{entries[i].ID}, entries[i].MergedIDs...) {
			if id != "" && !seen[id] {
				seen[id] = true
				mergedIDs = append(mergedIDs, id)
			}
		}
	}
	sort.Strings(mergedIDs)
	kept.MergedIDs = mergedIDs
	return kept
}

// betterKeeper reports whether a should be kept over b:
// higher confidence, then earlier timestamp, then smaller identifier.
func betterKeeper(a, b ClassifiedEntry) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}

// entryLess is the deterministic presentation order: newest first,
// identifier ascending on timestamp collisions (squash merges often
// produce identical timestamps).
func entryLess(a, b ClassifiedEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID < b.ID
}

// unionFind is a minimal disjoint-set over slice indices.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri != rj {
		u.parent[rj] = ri
	}
}
