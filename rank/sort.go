package rank

// PermutationSort sorts perm[0:n] (expected to hold 0..n-1 on entry) so
// that iterating it visits documents base+perm[0], base+perm[1], ... in the
// composite order defined by spec.md §4.3:
//
//  1. scores[base+x] descending
//  2. labels[base+x] ascending (lower-label duplicates rank first on ties)
//  3. raw index x ascending (final stability)
//
// The comparator is total and deterministic, as required for reproducible
// lambda accumulation order (spec.md §5 "Ordering").
func PermutationSort(perm []int, scores []float64, labels []int, n int, base int) {
	less := func(a, b int) bool {
		sa, sb := scores[base+a], scores[base+b]
		if sa != sb {
			return sa > sb
		}
		la, lb := labels[base+a], labels[base+b]
		if la != lb {
			return la < lb
		}
		return a < b
	}
	insertionSortStable(perm[:n], less)
}

// insertionSortStable sorts s in place by less, which must already define a
// total order (spec.md §4.3's composite key is a total order by
// construction, so no additional stability handling is required here).
// Insertion sort keeps the per-query scratch allocation-free and is the
// right complexity trade-off given the kernel is already O(n^2) over the
// same n (spec.md §4.5 "Numerical details").
func insertionSortStable(s []int, less func(a, b int) bool) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && less(v, s[j]) {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
