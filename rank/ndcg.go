package rank

import "strconv"

// NDCGResult is one (metric_name, value) pair a Test produces (spec.md
// §4.8 "compute() → ordered sequence of (metric_name, value)").
type NDCGResult struct {
	Name  string
	Value float64
}

// Test is the common interface for the three NDCG evaluators (spec.md
// §4.8).
type Test interface {
	Compute(scores []float64) []NDCGResult
}

// NdcgTest is the standard full-sort NDCG@k test, used for full test sets
// (spec.md §4.8).
type NdcgTest struct {
	ds  *Dataset
	dcg *DCGTables
	ks  []int
}

// NewNdcgTest builds a standard NDCG test reporting NDCG@k for each k in
// ks.
func NewNdcgTest(ds *Dataset, dcg *DCGTables, ks []int) *NdcgTest {
	return &NdcgTest{ds: ds, dcg: dcg, ks: ks}
}

// Compute sorts every query's documents descending by score and reports
// the mean NDCG@k over queries with positive ideal DCG (spec.md §4.8,
// §7 "query with no positive-label documents ... excluded from the mean").
func (t *NdcgTest) Compute(scores []float64) []NDCGResult {
	return computeNDCG(t.ds, t.dcg, scores, t.ks, nil)
}

// FastNdcgTest is the standard test reimplemented with a reusable
// per-thread sort buffer, used for validation-set evaluation every
// iteration (spec.md §4.8).
type FastNdcgTest struct {
	ds      *Dataset
	dcg     *DCGTables
	ks      []int
	permBuf []int
}

// NewFastNdcgTest builds a fast NDCG test with a scratch buffer sized to
// the dataset's largest query.
func NewFastNdcgTest(ds *Dataset, dcg *DCGTables, ks []int) *FastNdcgTest {
	return &FastNdcgTest{ds: ds, dcg: dcg, ks: ks, permBuf: make([]int, ds.MaxDocsPerQuery())}
}

// Compute is functionally identical to NdcgTest.Compute but reuses the
// test's own scratch permutation buffer instead of allocating one per
// query.
func (t *FastNdcgTest) Compute(scores []float64) []NDCGResult {
	return computeNDCG(t.ds, t.dcg, scores, t.ks, t.permBuf)
}

// FastNdcgTestForTrainSet reuses the label sort the objective already
// produced during gradient computation instead of sorting again, so its
// value may lag the true training NDCG by one iteration — documented and
// acceptable (spec.md §4.8).
type FastNdcgTestForTrainSet struct {
	ds  *Dataset
	dcg *DCGTables
	ks  []int
	obj *Objective
}

// NewFastNdcgTestForTrainSet builds a training-set NDCG test that reads
// obj's most recently computed top_labels/score-sort instead of re-sorting.
func NewFastNdcgTestForTrainSet(ds *Dataset, dcg *DCGTables, ks []int, obj *Objective) *FastNdcgTestForTrainSet {
	return &FastNdcgTestForTrainSet{ds: ds, dcg: dcg, ks: ks, obj: obj}
}

// Compute ignores its scores argument (the scores the objective last saw
// ARE the training scores by construction) and instead derives DCG@k
// directly from each query's top_labels, which the objective already
// sorted during its last GetGradient call. top_labels holds at most three
// labels per query, so ranks past the third never contribute, whatever k
// is; each query's DCG is multiplied by the DCG tables' InverseMaxDCG,
// which is the ideal DCG at the tables' truncation level rather than at k.
func (t *FastNdcgTestForTrainSet) Compute(scores []float64) []NDCGResult {
	results := make([]NDCGResult, len(t.ks))
	for i, k := range t.ks {
		results[i] = NDCGResult{Name: ndcgName(k), Value: t.meanNDCGFromTopLabels(k)}
	}
	return results
}

func (t *FastNdcgTestForTrainSet) meanNDCGFromTopLabels(k int) float64 {
	topLabels := t.obj.TopLabelsPerQuery()
	sum, count := 0.0, 0
	for q := 0; q < t.ds.NumQueries(); q++ {
		inv := t.dcg.InverseMaxDCG(q)
		if inv <= 0 {
			continue
		}
		dcg := 0.0
		labels := topLabels[q]
		limit := k
		if limit > len(labels) {
			limit = len(labels)
		}
		for rank := 0; rank < limit; rank++ {
			if labels[rank] < 0 {
				break
			}
			dcg += t.dcg.Gain().Gain(labels[rank]) * t.dcg.Discount(rank)
		}
		sum += dcg * inv
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// computeNDCG is shared by NdcgTest and FastNdcgTest: the only difference
// between them is whether permBuf is reused (non-nil) or allocated fresh
// per query (nil).
func computeNDCG(ds *Dataset, dcg *DCGTables, scores []float64, ks []int, permBuf []int) []NDCGResult {
	sums := make([]float64, len(ks))
	count := 0

	for q := 0; q < ds.NumQueries(); q++ {
		inv := dcg.InverseMaxDCG(q)
		if inv <= 0 {
			continue
		}
		begin, end := ds.QueryBounds(q)
		n := end - begin

		var perm []int
		if permBuf != nil {
			perm = permBuf[:n]
		} else {
			perm = make([]int, n)
		}
		for i := range perm {
			perm[i] = i
		}
		PermutationSort(perm, scores, ds.Labels, n, begin)
		ideal := make([]int, n)
		for i := range ideal {
			ideal[i] = i
		}
		sortByLabelDesc(ideal, ds.Labels[begin:end])

		count++
		for ki, k := range ks {
			limit := k
			if limit > n {
				limit = n
			}
			localDCG, idealDCG := 0.0, 0.0
			for rank := 0; rank < limit; rank++ {
				label := ds.Labels[begin+perm[rank]]
				localDCG += dcg.Gain().Gain(label) * dcg.Discount(rank)
				idealDCG += dcg.Gain().Gain(ds.Labels[begin+ideal[rank]]) * dcg.Discount(rank)
			}
			switch {
			case dcg.useDCG:
				sums[ki] += localDCG
			case idealDCG > 0:
				sums[ki] += localDCG / idealDCG
			}
		}
	}

	results := make([]NDCGResult, len(ks))
	for i, k := range ks {
		v := 0.0
		if count > 0 {
			v = sums[i] / float64(count)
		}
		results[i] = NDCGResult{Name: ndcgName(k), Value: v}
	}
	return results
}

func ndcgName(k int) string {
	return "NDCG@" + strconv.Itoa(k)
}

// TestHistory wraps a Test and records, per iteration, the computed value
// and the best-so-far iteration index (spec.md §4.8, §6.2 enable_pruning).
// Used when use_tolerant_pruning is off.
type TestHistory struct {
	test    Test
	name    string
	history []float64
	bestIdx int
}

// NewTestHistory wraps test, tracking the metric named name from its
// results (metric names are "NDCG@k").
func NewTestHistory(test Test, name string) *TestHistory {
	return &TestHistory{test: test, name: name, bestIdx: -1}
}

// Update computes test against scores, appends the tracked metric to the
// history, and updates the best-so-far index. It returns the newly
// recorded value.
func (h *TestHistory) Update(scores []float64) float64 {
	v := valueOf(h.test.Compute(scores), h.name)
	h.history = append(h.history, v)
	idx := len(h.history) - 1
	if h.bestIdx < 0 || v > h.history[h.bestIdx] {
		h.bestIdx = idx
	}
	return v
}

// History returns the recorded values in iteration order.
func (h *TestHistory) History() []float64 { return h.history }

// Best returns the best value seen so far and the iteration index
// (0-based) it was recorded at.
func (h *TestHistory) Best() (value float64, iteration int) {
	if h.bestIdx < 0 {
		return 0, -1
	}
	return h.history[h.bestIdx], h.bestIdx
}

func valueOf(results []NDCGResult, name string) float64 {
	for _, r := range results {
		if r.Name == name {
			return r.Value
		}
	}
	return 0
}

// TestWindowWithTolerance wraps a Test with a moving-average window and a
// relative tolerance for early stopping (spec.md §4.8, §6.2
// use_tolerant_pruning/pruning_window_size/pruning_threshold, §8 scenario E).
//
// "Best" is the maximum moving average over the last Window values; early
// stopping triggers once the current moving average falls below
// best*(1-Tolerance).
type TestWindowWithTolerance struct {
	test      Test
	name      string
	window    int
	tolerance float64

	values     []float64
	bestAvg    float64
	haveBest   bool
	triggered  bool
	triggerIdx int
}

// NewTestWindowWithTolerance wraps test with window size w and tolerance
// tol.
func NewTestWindowWithTolerance(test Test, name string, w int, tol float64) *TestWindowWithTolerance {
	if w < 1 {
		w = 1
	}
	return &TestWindowWithTolerance{test: test, name: name, window: w, tolerance: tol, triggerIdx: -1}
}

// Update computes test against scores, appends the value, and evaluates
// the early-stopping condition. It returns (movingAverage, shouldStop).
// Once triggered, ShouldStop continues to report true for every later
// call — matching "the stopping trigger fires at the first index ..." in
// spec.md §8 scenario E.
func (w *TestWindowWithTolerance) Update(scores []float64) (movingAverage float64, shouldStop bool) {
	v := valueOf(w.test.Compute(scores), w.name)
	w.values = append(w.values, v)

	avg := w.currentAverage()
	if !w.haveBest || avg > w.bestAvg {
		w.bestAvg = avg
		w.haveBest = true
	}

	if !w.triggered && w.haveBest && len(w.values) >= w.window && avg < w.bestAvg*(1-w.tolerance) {
		w.triggered = true
		w.triggerIdx = len(w.values) - 1
	}

	return avg, w.triggered
}

func (w *TestWindowWithTolerance) currentAverage() float64 {
	n := len(w.values)
	start := n - w.window
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i < n; i++ {
		sum += w.values[i]
	}
	return sum / float64(n-start)
}

// TriggerIteration returns the 0-based iteration index early stopping
// fired at, or -1 if it has not fired.
func (w *TestWindowWithTolerance) TriggerIteration() int {
	return w.triggerIdx
}
