// Package lambdarank trains the LambdaRank pairwise learning-to-rank
// objective and evaluates NDCG over its output.
//
// The numerically hot per-query kernel lives in rank; this package is a
// thin facade exposing dataset loading, objective construction, and the
// objective's DCG tables, from which the NDCG evaluators in rank are built.
//
//	ds, _ := lambdarank.LoadDataset("train.json")
//	obj, _ := lambdarank.New(ds, lambdarank.DefaultConfig())
//	gradient, weights, _ := obj.GetGradient(ctx, scores)
package lambdarank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/happyhackingspace/lambdarank/rank"
)

// Dataset is re-exported from rank so callers only need to import this
// package for the common path.
type Dataset = rank.Dataset

// Config is re-exported from rank.
type Config = rank.Config

// DefaultConfig returns the objective's default configuration.
func DefaultConfig() Config {
	return rank.DefaultConfig()
}

// Objective wraps a rank.Objective behind package-prefixed error wrapping,
// matching the teacher facade's fmt.Errorf("dit: %w", err) convention.
type Objective struct {
	inner *rank.Objective
}

// New validates cfg against ds and builds an Objective ready to compute
// gradients.
func New(ds *Dataset, cfg Config) (*Objective, error) {
	inner, err := rank.NewObjective(ds, cfg)
	if err != nil {
		return nil, fmt.Errorf("lambdarank: %w", err)
	}
	return &Objective{inner: inner}, nil
}

// GetGradient computes per-document lambdas and weights for the current
// scores (spec.md §4.6, §6.1).
func (o *Objective) GetGradient(ctx context.Context, scores []float64) (gradient, weights []float64, err error) {
	gradient, weights, err = o.inner.GetGradient(ctx, scores)
	if err != nil {
		return nil, nil, fmt.Errorf("lambdarank: %w", err)
	}
	return gradient, weights, nil
}

// TopLabelsPerQuery returns the top-3 labels recorded per query during the
// most recent GetGradient call.
func (o *Objective) TopLabelsPerQuery() [][]int {
	return o.inner.TopLabelsPerQuery()
}

// FilterZeroLambdas reports whether the boosting driver should exclude
// zero-lambda documents from tree fitting.
func (o *Objective) FilterZeroLambdas() bool {
	return o.inner.FilterZeroLambdas()
}

// AdjustTreeOutputs rescales tree's leaf outputs in place (spec.md §4.7).
func (o *Objective) AdjustTreeOutputs(tree rank.Tree, part rank.Partitioning, reducer rank.GlobalMeanReducer) {
	o.inner.AdjustTreeOutputs(tree, part, reducer)
}

// DCGTables exposes the tables this objective's NDCG evaluators should
// share with it.
func (o *Objective) DCGTables() *rank.DCGTables {
	return o.inner.DCGTables()
}

// datasetFile is the on-disk JSON shape LoadDataset reads: a flat,
// human-editable encoding of rank.Dataset (the production wire format
// documented for dataset loading is explicitly out of scope — spec.md §1).
type datasetFile struct {
	Boundaries []int    `json:"boundaries"`
	Labels     []int    `json:"labels"`
	DupeIDs    []uint32 `json:"dupe_ids,omitempty"`
}

// LoadDataset reads a JSON-encoded dataset from path.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lambdarank: %w", err)
	}
	var f datasetFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lambdarank: %w", err)
	}
	return &Dataset{Boundaries: f.Boundaries, Labels: f.Labels, DupeIDs: f.DupeIDs}, nil
}

// LoadScores reads a JSON array of per-document scores from path.
func LoadScores(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lambdarank: %w", err)
	}
	var scores []float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("lambdarank: %w", err)
	}
	return scores, nil
}
