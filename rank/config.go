package rank

// Config holds the LambdaRank objective's options (spec.md §6.2), mirroring
// the teacher's TrainerConfig/DefaultTrainerConfig pattern: a plain struct
// plus a constructor returning sane defaults, validated once before use.
type Config struct {
	// CustomGains overrides the default label-gain map. Nil uses
	// DefaultGainTable sized to the dataset's label range.
	CustomGains []float64

	// NDCGTruncation is k for DCG@k used in max-DCG and weighting.
	NDCGTruncation int

	// UseDCG treats inverse_max_dcg as 1 for every query (optimise raw
	// DCG instead of NDCG).
	UseDCG bool

	// Sigma is the sigmoid parameter; learning_rate doubles as σ
	// (spec.md §6.2).
	Sigma float64

	// EarlyStoppingMetric selects NDCG@1 or NDCG@3 for early stopping
	// when early stopping is enabled; must be 1 or 3.
	EarlyStoppingMetric  int
	EarlyStoppingEnabled bool

	// ContinuousCost enables the 'c' cost_function_param RankNet score
	// mutation (spec.md §4.5 step 6).
	ContinuousCost bool

	// DistanceWeight2 multiplies Δndcg by |i-j| (spec.md §4.5 step 8).
	DistanceWeight2 bool

	// NormalizeQueryLambdas applies per-query lambda normalisation
	// (spec.md §4.5 step 9).
	NormalizeQueryLambdas bool

	// UseShiftedNDCG enables duplicate suppression (spec.md §4.4).
	UseShiftedNDCG bool

	// FilterZeroLambdas excludes zero-lambda documents from tree fitting;
	// honoured by the (out-of-scope) outer loop, recorded here so the
	// objective can report it via FilterZeroLambdas().
	FilterZeroLambdas bool

	// BestStepRankingRegressionTrees disables the line-search global-mean
	// normalisation step (spec.md §4.7).
	BestStepRankingRegressionTrees bool

	// MaxTreeOutput clamps line-search output to [-MaxTreeOutput,
	// MaxTreeOutput].
	MaxTreeOutput float64

	// PositionDiscount overrides discount[d]; nil uses DefaultDiscount.
	PositionDiscount DiscountFunc

	// Workers bounds the per-query fan-out concurrency (spec.md §5). <= 0
	// lets the worker pool pick a default.
	Workers int
}

// DefaultConfig returns the objective's default configuration.
func DefaultConfig() Config {
	return Config{
		NDCGTruncation: DefaultTruncation,
		Sigma:          1.0,
		MaxTreeOutput:  100.0,
	}
}

// lineSearchEpsilon is ε in the line-search rescale (spec.md §4.7).
const lineSearchEpsilon = 1.4e-45

// Validate rejects any option outside its documented domain; every
// combination of the boolean options is accepted. Configuration errors
// abort training before it starts (spec.md §7).
func (c *Config) Validate() error {
	if c.CustomGains != nil && len(c.CustomGains) < minGainEntries {
		return newConfigError("custom_gains", "%d entries, want >= %d", len(c.CustomGains), minGainEntries)
	}
	if c.NDCGTruncation < 0 {
		return newConfigError("ndcg_truncation_level", "must be >= 0, got %d", c.NDCGTruncation)
	}
	if c.Sigma <= 0 {
		return newConfigError("learning_rate", "sigmoid parameter sigma must be > 0, got %v", c.Sigma)
	}
	if c.EarlyStoppingEnabled && c.EarlyStoppingMetric != 1 && c.EarlyStoppingMetric != 3 {
		return newConfigError("early_stopping_metrics", "must be 1 or 3, got %d", c.EarlyStoppingMetric)
	}
	if c.MaxTreeOutput <= 0 {
		return newConfigError("max_tree_output", "must be > 0, got %v", c.MaxTreeOutput)
	}
	return nil
}
