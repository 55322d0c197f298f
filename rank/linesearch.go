package rank

// Tree is the minimal surface the line-search adjuster needs from the
// (out-of-scope) boosting driver's regression tree: leaf count plus
// get/set of a leaf's current output (spec.md §4.7, §6.1).
type Tree interface {
	NumLeaves() int
	LeafOutput(leaf int) float64
	SetLeafOutput(leaf int, value float64)
}

// Partitioning maps each document to the leaf of Tree it currently falls
// into, standing in for the boosting driver's document partitioning
// (spec.md §6.1).
type Partitioning interface {
	LeafOf(doc int) int
}

// GlobalMeanReducer computes, for each leaf of tree, the mean of
// weights[doc] over the documents partitioning assigns to that leaf
// (optionally a distributed reduction — spec.md §6.1, §6.5). filterZero
// mirrors Config.FilterZeroLambdas: documents with zero weight are masked
// out of the mean.
type GlobalMeanReducer interface {
	GlobalMean(ds *Dataset, tree Tree, part Partitioning, weights []float64, filterZero bool) []float64
}

// LocalMeanReducer is the single-process GlobalMeanReducer: it walks every
// document once and accumulates a running mean per leaf. A network-backed
// reducer for distributed training can implement the same interface
// without this package depending on any transport (spec.md §6.5).
type LocalMeanReducer struct{}

// GlobalMean implements GlobalMeanReducer.
func (LocalMeanReducer) GlobalMean(ds *Dataset, tree Tree, part Partitioning, weights []float64, filterZero bool) []float64 {
	sums := make([]float64, tree.NumLeaves())
	counts := make([]float64, tree.NumLeaves())
	for doc := 0; doc < ds.NumDocs(); doc++ {
		if filterZero && weights[doc] == 0 {
			continue
		}
		leaf := part.LeafOf(doc)
		sums[leaf] += weights[doc]
		counts[leaf]++
	}
	means := make([]float64, tree.NumLeaves())
	for l := range means {
		if counts[l] > 0 {
			means[l] = sums[l] / counts[l]
		}
	}
	return means
}

// AdjustTreeOutputs rescales each leaf of tree in place, once per boosting
// iteration (spec.md §4.7). When cfg.BestStepRankingRegressionTrees is set,
// the tree-growing step already produced Newton-optimal outputs, so only
// clamping is applied.
func AdjustTreeOutputs(cfg *Config, ds *Dataset, tree Tree, part Partitioning, weights []float64, reducer GlobalMeanReducer) {
	var means []float64
	if !cfg.BestStepRankingRegressionTrees {
		if reducer == nil {
			reducer = LocalMeanReducer{}
		}
		means = reducer.GlobalMean(ds, tree, part, weights, cfg.FilterZeroLambdas)
	}

	for leaf := 0; leaf < tree.NumLeaves(); leaf++ {
		o := tree.LeafOutput(leaf)
		if !cfg.BestStepRankingRegressionTrees {
			mu := means[leaf]
			o = (o + lineSearchEpsilon) / (2*mu + lineSearchEpsilon)
		}
		if o > cfg.MaxTreeOutput {
			o = cfg.MaxTreeOutput
		} else if o < -cfg.MaxTreeOutput {
			o = -cfg.MaxTreeOutput
		}
		tree.SetLeafOutput(leaf, o)
	}
}

// SliceTree is a trivial in-memory Tree used by tests (spec.md §6.4).
type SliceTree struct {
	Leaves []float64
}

func (t *SliceTree) NumLeaves() int                    { return len(t.Leaves) }
func (t *SliceTree) LeafOutput(leaf int) float64       { return t.Leaves[leaf] }
func (t *SliceTree) SetLeafOutput(leaf int, v float64) { t.Leaves[leaf] = v }

// SlicePartitioning is a trivial in-memory Partitioning used by tests.
type SlicePartitioning struct {
	LeafByDoc []int
}

func (p *SlicePartitioning) LeafOf(doc int) int { return p.LeafByDoc[doc] }
