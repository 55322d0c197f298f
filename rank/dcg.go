package rank

import "math"

// DefaultTruncation is the default k for DCG@k (spec.md §4.1).
const DefaultTruncation = 10

// DiscountFunc computes the position discount for rank d (0-based). The
// default is 1/log(2+d); a caller may install a different expression via
// Config.PositionDiscount (spec.md §6.2 position_discount_freeform).
type DiscountFunc func(d int) float64

// DefaultDiscount is discount[d] = 1/log(2+d).
func DefaultDiscount(d int) float64 {
	return 1.0 / math.Log(2+float64(d))
}

// DCGTables holds the precomputed per-position discount, the per-document
// gain lookup, and the per-query ideal-DCG inverse (spec.md §4.1).
type DCGTables struct {
	gain          *GainTable
	truncation    int
	discount      []float64 // [M)
	discountFn    DiscountFunc
	gainLabels    []float64 // [N), gain[labels[i]]
	inverseMaxDCG []float64 // [Q)
	useDCG        bool
}

// NewDCGTables builds the discount table, the per-document gain copy, and
// the per-query inverse-max-DCG table for ds, using truncation as the
// DCG@k level (default DefaultTruncation if <= 0) and discountFn as the
// position-discount expression (DefaultDiscount if nil).
func NewDCGTables(ds *Dataset, gain *GainTable, truncation int, discountFn DiscountFunc, useDCG bool) (*DCGTables, error) {
	if truncation <= 0 {
		truncation = DefaultTruncation
	}
	if discountFn == nil {
		discountFn = DefaultDiscount
	}

	m := ds.MaxDocsPerQuery()
	discount := make([]float64, m)
	for d := range discount {
		discount[d] = discountFn(d)
	}

	gainLabels := make([]float64, ds.NumDocs())
	for i, label := range ds.Labels {
		gainLabels[i] = gain.Gain(label)
	}

	t := &DCGTables{
		gain:       gain,
		truncation: truncation,
		discount:   discount,
		discountFn: discountFn,
		gainLabels: gainLabels,
		useDCG:     useDCG,
	}
	if err := t.computeInverseMaxDCG(ds); err != nil {
		return nil, err
	}
	return t, nil
}

// computeInverseMaxDCG fills inverseMaxDCG for every query by sorting
// labels descending (stable tie-break) and summing gain*discount over the
// truncated ranking (spec.md §4.1).
func (t *DCGTables) computeInverseMaxDCG(ds *Dataset) error {
	q := ds.NumQueries()
	t.inverseMaxDCG = make([]float64, q)
	if t.useDCG {
		for i := range t.inverseMaxDCG {
			t.inverseMaxDCG[i] = 1
		}
		return nil
	}

	for query := 0; query < q; query++ {
		begin, end := ds.QueryBounds(query)
		n := end - begin
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		sortByLabelDesc(idx, ds.Labels[begin:end])

		dcg := 0.0
		k := t.truncation
		if k > n {
			k = n
		}
		for rank := 0; rank < k; rank++ {
			label := ds.Labels[begin+idx[rank]]
			dcg += t.gain.Gain(label) * t.discount[rank]
		}
		if dcg > 0 {
			t.inverseMaxDCG[query] = 1 / dcg
		} else {
			// spec.md §7: "query with no positive-label documents ...
			// define inverse_max_dcg[q] = 0 and the query contributes
			// zero gradient and is excluded from the mean NDCG".
			t.inverseMaxDCG[query] = 0
		}
	}
	return nil
}

// sortByLabelDesc performs a stable descending sort of idx by
// labels[idx[x]], used only to compute the ideal ranking (ties broken by
// original order, which is what a stable sort gives for free).
func sortByLabelDesc(idx []int, labels []int) {
	insertionSortStableDesc(idx, func(a, b int) bool { return labels[a] > labels[b] })
}

// insertionSortStableDesc sorts idx in place so that less(idx[i], idx[i+1])
// never improves by swapping, i.e. idx is ordered with "better" elements
// (per less) first, ties kept in original relative order. Insertion sort is
// used rather than sort.SliceStable because per-query n is small (spec.md
// §4.5 "n <= M ... typically small") and this avoids an interface-dispatch
// comparator in the hot construction path.
func insertionSortStableDesc(idx []int, less func(a, b int) bool) {
	for i := 1; i < len(idx); i++ {
		v := idx[i]
		j := i - 1
		for j >= 0 && less(v, idx[j]) {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// InverseMaxDCG returns 1/idealDCG@k for query q.
func (t *DCGTables) InverseMaxDCG(q int) float64 {
	return t.inverseMaxDCG[q]
}

// RecomputeInverseMaxDCG recomputes inverse_max_dcg for a single query from
// a (possibly mutated) labels view, used when shifted-NDCG or
// continuous-cost mutation invalidates the cached value for that query
// (spec.md §4.5 step 7). actualN caps the truncation depth at the number of
// documents continuous-cost mode still considers "actual" results (spec.md
// §4.5 step 6): a suppressed duplicate keeps its rank slot but its zero
// gain must not displace a real result out of the DCG@k window.
func (t *DCGTables) RecomputeInverseMaxDCG(q int, labelsView []int, actualN int) {
	if t.useDCG {
		t.inverseMaxDCG[q] = 1
		return
	}
	n := len(labelsView)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sortByLabelDesc(idx, labelsView)

	dcg := 0.0
	k := t.truncation
	if actualN < n {
		n = actualN
	}
	if k > n {
		k = n
	}
	for rank := 0; rank < k; rank++ {
		dcg += t.gain.Gain(labelsView[idx[rank]]) * t.discount[rank]
	}
	if dcg > 0 {
		t.inverseMaxDCG[q] = 1 / dcg
	} else {
		t.inverseMaxDCG[q] = 0
	}
}

// Discount returns discount[d].
func (t *DCGTables) Discount(d int) float64 {
	return t.discount[d]
}

// GainLabel returns gain[labels[doc]], the per-document gain cached at
// construction to avoid a level of indirection in the pairwise loop.
func (t *DCGTables) GainLabel(doc int) float64 {
	return t.gainLabels[doc]
}

// Truncation returns the configured DCG@k level.
func (t *DCGTables) Truncation() int {
	return t.truncation
}

// Gain returns the underlying label-gain table.
func (t *DCGTables) Gain() *GainTable {
	return t.gain
}
