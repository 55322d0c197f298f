package rank

import "math"

// negInf is the score written into a suppressed duplicate — "smallest
// representable" per spec.md §4.4 step 4.
var negInf = math.Inf(-1)

// suppressDuplicates implements the shifted-NDCG duplicate suppressor
// (spec.md §4.4). It walks documents of query q in rank order (given by
// perm, which must already be sorted) and neutralises non-best duplicates
// within each dupe_ids group: their label is zeroed and their score set to
// negative infinity so a subsequent sort pushes them to the tail.
//
// labelsView and scoresView are mutated in place; they must be
// query-local copies (spec.md §4.5 step 2), not views onto the dataset.
func suppressDuplicates(ds *Dataset, q, begin, n int, perm []int, labelsView []int, scoresView []float64) error {
	groupTop := make(map[uint32]int, n)
	for rank := 0; rank < n; rank++ {
		local := perm[rank]
		idx := begin + local
		id := ds.DupeIDs[idx]
		if isDupeSentinel(id) {
			continue
		}
		if id < firstGroupID {
			return newDataError(q, idx, "dupe_ids group id %d below firstGroupID %d", id, firstGroupID)
		}
		group := id - firstGroupID
		if int(group) >= n {
			return newDataError(q, idx, "dupe_ids group index %d outside [0, %d)", group, n)
		}

		label := labelsView[local]
		top, seen := groupTop[id]
		if !seen {
			groupTop[id] = label
			continue
		}
		if label <= top {
			labelsView[local] = 0
			scoresView[local] = negInf
		}
		// A strictly better-rated duplicate is left alone — it may
		// legitimately rank higher after the re-sort. groupTop keeps the
		// label of the *first* encounter (spec.md §4.4 step 3) and is not
		// updated here.
	}
	return nil
}
