package rank

import "math"

// sigmoidBins is the number of precomputed table entries (spec.md §4.2).
const sigmoidBins = 1_000_000

// sigmoidExpFloor is the exponent below which exp(x) is treated as zero
// when deriving the sigmoid table's score range.
const sigmoidExpFloor = -50

// SigmoidTable is a precomputed lookup approximating the RankNet pairwise
// gradient magnitude |λ| = 2/(1+exp(2σx)) over a bounded score-difference
// range (spec.md §4.2).
type SigmoidTable struct {
	sigma              float64
	minScore, maxScore float64
	step               float64
	scoreToIndexFactor float64
	table              []float64
}

// NewSigmoidTable builds the table for sigmoid parameter sigma (the
// learning_rate option doubles as σ, spec.md §6.2).
func NewSigmoidTable(sigma float64) *SigmoidTable {
	minScore := sigmoidExpFloor / (2 * sigma)
	maxScore := -sigmoidExpFloor / (2 * sigma)
	step := (maxScore - minScore) / sigmoidBins

	table := make([]float64, sigmoidBins)
	for i := range table {
		x := minScore + float64(i)*step
		if x > 0 {
			table[i] = 2 - 2/(1+math.Exp(-2*sigma*x))
		} else {
			table[i] = 2 / (1 + math.Exp(2*sigma*x))
		}
	}

	return &SigmoidTable{
		sigma:              sigma,
		minScore:           minScore,
		maxScore:           maxScore,
		step:               step,
		scoreToIndexFactor: sigmoidBins / (maxScore - minScore),
		table:              table,
	}
}

// Lookup returns |λ| for a score difference x, saturating at the table
// ends (spec.md §4.2, §8 property 11).
func (t *SigmoidTable) Lookup(x float64) float64 {
	if x <= t.minScore {
		return t.table[0]
	}
	if x >= t.maxScore {
		return t.table[len(t.table)-1]
	}
	idx := int((x - t.minScore) * t.scoreToIndexFactor)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.table) {
		idx = len(t.table) - 1
	}
	return t.table[idx]
}

// MinScore and MaxScore bound the table's non-saturating domain.
func (t *SigmoidTable) MinScore() float64 { return t.minScore }
func (t *SigmoidTable) MaxScore() float64 { return t.maxScore }

// Sigma returns the σ parameter the table was built from.
func (t *SigmoidTable) Sigma() float64 { return t.sigma }
