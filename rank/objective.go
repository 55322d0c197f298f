package rank

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/lambdarank/internal/parallel"
)

// Objective is the LambdaRank objective driver (spec.md §4.6, §6.1). It
// owns the gradient/weights output arrays and the per-thread scratch, and
// exposes GetGradient as the sole entry point the boosting driver calls
// once per iteration.
type Objective struct {
	ds  *Dataset
	cfg Config
	dcg *DCGTables
	sig *SigmoidTable

	iteration int
	// baselineAlpha is reset to 0 at the start of every GetGradient call
	// (spec.md §4.6). It is a reserved hook for a baseline-subtraction
	// scheme the current core never populates (spec.md §9 design note on
	// baseline_dcg_gap) — kept so a future kernel extension has somewhere
	// to read it from without changing this type's shape.
	baselineAlpha float64

	gradient  []float64
	weights   []float64
	topLabels [][]int // [Q][3]

	scratch []*queryScratch // one per worker slot
}

// NewObjective validates cfg and ds, builds the DCG and sigmoid tables, and
// returns a ready-to-use Objective. Configuration and data errors abort
// before training begins (spec.md §7).
func NewObjective(ds *Dataset, cfg Config) (*Objective, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var gain *GainTable
	var err error
	if cfg.CustomGains != nil {
		gain, err = NewGainTable(cfg.CustomGains)
	} else {
		maxLabel := 0
		for _, l := range ds.Labels {
			if l > maxLabel {
				maxLabel = l
			}
		}
		gain = DefaultGainTable(maxLabel + 1)
	}
	if err != nil {
		return nil, err
	}

	if err := ds.Validate(gain); err != nil {
		return nil, err
	}

	dcg, err := NewDCGTables(ds, gain, cfg.NDCGTruncation, cfg.PositionDiscount, cfg.UseDCG)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}
	scratch := make([]*queryScratch, workers)
	maxN := ds.MaxDocsPerQuery()
	for i := range scratch {
		scratch[i] = newQueryScratch(maxN)
	}

	o := &Objective{
		ds:        ds,
		cfg:       cfg,
		dcg:       dcg,
		sig:       NewSigmoidTable(cfg.Sigma),
		gradient:  make([]float64, ds.NumDocs()),
		weights:   make([]float64, ds.NumDocs()),
		topLabels: make([][]int, ds.NumQueries()),
		scratch:   scratch,
	}
	for q := range o.topLabels {
		o.topLabels[q] = make([]int, 3)
	}
	return o, nil
}

// GetGradient computes gradient and weights for the current scores,
// fanning the per-query kernel out across the objective's worker scratch
// (spec.md §4.5, §4.6, §5). The returned slices are owned by the Objective
// and are overwritten by the next call.
func (o *Objective) GetGradient(ctx context.Context, scores []float64) ([]float64, []float64, error) {
	if len(scores) != o.ds.NumDocs() {
		return nil, nil, fmt.Errorf("rank: len(scores) = %d, want %d", len(scores), o.ds.NumDocs())
	}

	o.iteration++
	o.baselineAlpha = 0
	start := time.Now()

	numWorkers := len(o.scratch)
	err := parallel.ProcessIndexed(ctx, o.ds.NumQueries(), numWorkers, func(ctx context.Context, workerID, q int) error {
		return runQuery(o.ds, &o.cfg, o.dcg, o.sig, q, scores, o.gradient, o.weights, o.topLabels[q], o.scratch[workerID])
	})
	if err != nil {
		slog.Warn("lambdarank gradient computation failed", "iteration", o.iteration, "error", err)
		return nil, nil, fmt.Errorf("rank: %w", err)
	}

	slog.Debug("lambdarank gradient computed",
		"iteration", o.iteration,
		"queries", o.ds.NumQueries(),
		"docs", o.ds.NumDocs(),
		"elapsed", time.Since(start))

	return o.gradient, o.weights, nil
}

// Iteration returns the number of GetGradient calls made so far.
func (o *Objective) Iteration() int {
	return o.iteration
}

// TopLabelsPerQuery returns, for every query, up to the top-3 labels seen
// after the score-sort of the most recent GetGradient call (spec.md §3
// "top_labels", §6.1).
func (o *Objective) TopLabelsPerQuery() [][]int {
	return o.topLabels
}

// FilterZeroLambdas reports whether the boosting driver should exclude
// zero-lambda documents from tree fitting (spec.md §4.5 step 10, §6.2).
func (o *Objective) FilterZeroLambdas() bool {
	return o.cfg.FilterZeroLambdas
}

// AdjustTreeOutputs rescales tree's leaf outputs once after it has been
// grown, using the Objective's weights from the most recent GetGradient
// call (spec.md §4.7).
func (o *Objective) AdjustTreeOutputs(tree Tree, part Partitioning, reducer GlobalMeanReducer) {
	AdjustTreeOutputs(&o.cfg, o.ds, tree, part, o.weights, reducer)
}

// DCGTables exposes the objective's discount/gain/inverse-max-DCG tables,
// e.g. so an NDCG evaluator can be built against the same tables used for
// training (spec.md §4.8).
func (o *Objective) DCGTables() *DCGTables {
	return o.dcg
}
