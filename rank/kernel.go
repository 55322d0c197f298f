package rank

import "math"

// queryScratch is the per-thread working storage the per-query kernel
// reuses across calls: a permutation buffer plus scratch labels/scores
// views. One instance is addressed per worker index (spec.md §5 "Each
// worker has index t ... used to address its private scratch").
type queryScratch struct {
	perm       []int
	labelsView []int
	scoresView []float64
}

func newQueryScratch(maxDocsPerQuery int) *queryScratch {
	return &queryScratch{
		perm:       make([]int, maxDocsPerQuery),
		labelsView: make([]int, maxDocsPerQuery),
		scoresView: make([]float64, maxDocsPerQuery),
	}
}

// runQuery produces gradient and weights for the documents of query q
// (spec.md §4.5). scores are the current ensemble outputs supplied by the
// boosting driver for the whole dataset; gradient/weights are the
// objective's owned, dataset-sized output arrays — runQuery only ever
// writes the [begin, begin+n) slice that belongs to q.
func runQuery(
	ds *Dataset,
	cfg *Config,
	dcg *DCGTables,
	sig *SigmoidTable,
	q int,
	scores []float64,
	gradient, weights []float64,
	topLabels []int, // len 3, filled with up to 3 top labels
	scratch *queryScratch,
) error {
	begin, end := ds.QueryBounds(q)
	n := end - begin

	for i := begin; i < end; i++ {
		gradient[i] = 0
		weights[i] = 0
	}
	for i := range topLabels {
		topLabels[i] = -1
	}
	if n == 0 {
		return nil
	}

	mutating := cfg.UseShiftedNDCG || cfg.ContinuousCost

	var labelsView []int
	var scoresView []float64
	if mutating {
		labelsView = scratch.labelsView[:n]
		scoresView = scratch.scoresView[:n]
		copy(labelsView, ds.Labels[begin:end])
		copy(scoresView, scores[begin:end])
	} else {
		labelsView = ds.Labels[begin:end]
		scoresView = scores[begin:end]
	}

	perm := scratch.perm[:n]
	for i := range perm {
		perm[i] = i
	}
	PermutationSort(perm, scoresView, labelsView, n, 0)

	for i := 0; i < len(topLabels) && i < n; i++ {
		topLabels[i] = labelsView[perm[i]]
	}

	numActualResults := n

	if cfg.UseShiftedNDCG && ds.DupeIDs != nil {
		if err := suppressDuplicates(ds, q, begin, n, perm, labelsView, scoresView); err != nil {
			return err
		}
	}

	if cfg.ContinuousCost {
		g := dcg.Gain().Len()
		for local := 0; local < n; local++ {
			if scoresView[local] == negInf {
				numActualResults--
				continue
			}
			label := labelsView[local]
			scoresView[local] *= 1 - float64(label)/(20*float64(g))
		}
	}

	if mutating {
		PermutationSort(perm, scoresView, labelsView, n, 0)
		dcg.RecomputeInverseMaxDCG(q, labelsView, numActualResults)
	}

	invMaxDCG := dcg.InverseMaxDCG(q)

	// gainOf looks up the gain for a document's *current* label. The
	// dataset-wide gainLabels cache (DCGTables.GainLabel) only reflects
	// ds.Labels, so when shifted-NDCG/continuous-cost have produced a
	// mutated labelsView we must go back through the gain table instead.
	gainOf := func(local, doc int) float64 {
		if mutating {
			return dcg.Gain().Gain(labelsView[local])
		}
		return dcg.GainLabel(doc)
	}

	lambdaSum := 0.0
	for i := 0; i < n; i++ {
		high := begin + perm[i]
		highLocal := perm[i]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lowLocal := perm[j]
			if labelsView[highLocal] <= labelsView[lowLocal] {
				continue
			}
			low := begin + perm[j]

			deltaScore := scoresView[highLocal] - scoresView[lowLocal]
			absLambda := sig.Lookup(deltaScore)
			w := absLambda * (2 - absLambda)

			deltaNDCG := (gainOf(highLocal, high) - gainOf(lowLocal, low)) *
				math.Abs(dcg.Discount(i)-dcg.Discount(j)) * invMaxDCG
			if cfg.DistanceWeight2 {
				deltaNDCG *= math.Abs(float64(i - j))
			}

			gradient[high] += absLambda * deltaNDCG
			gradient[low] -= absLambda * deltaNDCG
			weights[high] += w * deltaNDCG
			weights[low] += w * deltaNDCG
			lambdaSum += absLambda * deltaNDCG
		}
	}

	if cfg.NormalizeQueryLambdas && lambdaSum > 0 {
		scale := 10 * math.Log(1+lambdaSum) / lambdaSum
		for i := begin; i < end; i++ {
			gradient[i] *= scale
			weights[i] *= scale
		}
	}

	return nil
}
