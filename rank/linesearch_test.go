package rank

import "testing"

func TestAdjustTreeOutputsClampsToMax(t *testing.T) {
	// Scenario: a single leaf with raw output 10.0, mean weight 0.25, and
	// max_tree_output 3.0. (10+eps)/(2*0.25+eps) = 20, which must clamp
	// down to 3.0.
	ds := &Dataset{Boundaries: []int{0, 1}, Labels: []int{1}}
	tree := &SliceTree{Leaves: []float64{10.0}}
	part := &SlicePartitioning{LeafByDoc: []int{0}}
	weights := []float64{0.25}

	cfg := &Config{MaxTreeOutput: 3.0}
	AdjustTreeOutputs(cfg, ds, tree, part, weights, LocalMeanReducer{})

	if tree.LeafOutput(0) != 3.0 {
		t.Errorf("LeafOutput(0) = %v, want 3.0 (clamped)", tree.LeafOutput(0))
	}
}

func TestAdjustTreeOutputsClampsNegative(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 1}, Labels: []int{1}}
	tree := &SliceTree{Leaves: []float64{-10.0}}
	part := &SlicePartitioning{LeafByDoc: []int{0}}
	weights := []float64{0.25}

	cfg := &Config{MaxTreeOutput: 3.0}
	AdjustTreeOutputs(cfg, ds, tree, part, weights, LocalMeanReducer{})

	if tree.LeafOutput(0) != -3.0 {
		t.Errorf("LeafOutput(0) = %v, want -3.0 (clamped)", tree.LeafOutput(0))
	}
}

func TestAdjustTreeOutputsSkipsMeanNormalizationForBestStep(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 1}, Labels: []int{1}}
	tree := &SliceTree{Leaves: []float64{1.5}}
	part := &SlicePartitioning{LeafByDoc: []int{0}}
	weights := []float64{0.25}

	cfg := &Config{MaxTreeOutput: 100.0, BestStepRankingRegressionTrees: true}
	AdjustTreeOutputs(cfg, ds, tree, part, weights, LocalMeanReducer{})

	if tree.LeafOutput(0) != 1.5 {
		t.Errorf("LeafOutput(0) = %v, want 1.5 unchanged (only clamping applies)", tree.LeafOutput(0))
	}
}

func TestAdjustTreeOutputsFilterZeroExcludesZeroWeightDocs(t *testing.T) {
	ds := &Dataset{Boundaries: []int{0, 2}, Labels: []int{1, 1}}
	tree := &SliceTree{Leaves: []float64{1.0}}
	part := &SlicePartitioning{LeafByDoc: []int{0, 0}}
	weights := []float64{0, 0.5}

	cfg := &Config{MaxTreeOutput: 100.0, FilterZeroLambdas: true}
	mean := LocalMeanReducer{}.GlobalMean(ds, tree, part, weights, true)
	if mean[0] != 0.5 {
		t.Errorf("GlobalMean with filterZero = %v, want [0.5] (zero-weight doc excluded)", mean)
	}

	AdjustTreeOutputs(cfg, ds, tree, part, weights, LocalMeanReducer{})
	want := (1.0 + lineSearchEpsilon) / (2*0.5 + lineSearchEpsilon)
	if tree.LeafOutput(0) != want {
		t.Errorf("LeafOutput(0) = %v, want %v", tree.LeafOutput(0), want)
	}
}

func TestSliceTreeAndPartitioning(t *testing.T) {
	tree := &SliceTree{Leaves: []float64{1, 2, 3}}
	if tree.NumLeaves() != 3 {
		t.Errorf("NumLeaves() = %d, want 3", tree.NumLeaves())
	}
	tree.SetLeafOutput(1, 99)
	if tree.LeafOutput(1) != 99 {
		t.Errorf("LeafOutput(1) = %v, want 99", tree.LeafOutput(1))
	}

	part := &SlicePartitioning{LeafByDoc: []int{0, 2, 1}}
	if part.LeafOf(1) != 2 {
		t.Errorf("LeafOf(1) = %d, want 2", part.LeafOf(1))
	}
}
