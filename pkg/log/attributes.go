// Package log defines standard attribute keys for the analysis pipeline.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log lines from different components can be filtered
// and aggregated consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator, e.g. "Ridge", "StandardScaler".
	ModelNameKey = "model.name"

	// RunIDKey is a unique identifier for one pipeline invocation.
	RunIDKey = "run.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "split", "fit", "aggregate", "evaluate", "correlate"
	OperationKey = "ml.operation"

	// PhaseKey indicates the data partition being scored: "validation", "testing".
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	SourceKey   = "data.source"

	// DroppedKey counts rows removed during cleaning.
	DroppedKey = "data.dropped"

	TrainSizeKey = "split.train"
	EvalSizeKey  = "split.eval"
	TestSizeKey  = "split.test"
)

// Metrics and training progress
const (
	DurationMsKey = "perf.duration_ms"
	RMSEKey       = "metrics.rmse"
	R2ScoreKey    = "metrics.r2_score"
	MAEKey        = "metrics.mae"
	BiasKey       = "model.bias"

	// RepetitionKey records the 1-based repetition number of the resampling loop.
	RepetitionKey = "training.repetition"

	// RepetitionsKey records the configured number of repetitions.
	RepetitionsKey = "training.repetitions"
)

// Hyperparameters and Configuration
const (
	RegularizationKey = "hyperparams.alpha"
	RandomSeedKey     = "config.random_seed"
	BiasStrategyKey   = "config.bias_strategy"
	HoldoutKey        = "config.holdout"
)

// Error Context
const (
	// ErrorTypeKey is set by ErrFmtHandler to the error category, e.g. "DataError".
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationSplit     = "split"
	OperationAggregate = "aggregate"
	OperationEvaluate  = "evaluate"
	OperationCorrelate = "correlate"
	OperationLoad      = "load"

	PhaseValidation = "validation"
	PhaseTesting    = "testing"
)
