package log

// Standard attribute keys. They follow a hierarchical naming convention
// ("model.name", "data.samples") so logs can be filtered by prefix.

// Model and operation context.
const (
	// LoggerNameKey carries the name passed to GetLoggerWithName.
	LoggerNameKey = "logger"

	// ModelNameKey identifies the type of model, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", ...
	OperationKey = "ml.operation"

	// ComponentKey is the package doing the work, e.g. "linear_model".
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training", "inference", ...
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey   = "data.samples"
	FeaturesKey  = "data.features"
	BatchSizeKey = "data.batch_size"

	// BatchesKey is the number of batches per epoch.
	BatchesKey = "data.batches"

	// DroppedRowsKey is the number of trailing rows not covered by any batch.
	DroppedRowsKey = "data.dropped_rows"
)

// Training progress and performance.
const (
	DurationMsKey = "perf.duration_ms"
	EpochKey      = "training.epoch"
	EpochsKey     = "training.epochs"

	// WeightNormKey is the L2 norm of the non-bias weights.
	WeightNormKey = "training.weight_norm"

	// BiasKey is the current bias weight.
	BiasKey = "training.bias"

	AccuracyKey = "metrics.accuracy"
	LossKey     = "metrics.loss"
	PredsKey    = "preds.count"
)

// Hyperparameters.
const (
	LearningRateKey   = "hyperparams.learning_rate"
	RegularizationKey = "hyperparams.regularization"
	PenaltyKey        = "hyperparams.penalty"
	L1RatioKey        = "hyperparams.l1_ratio"
	SigTypeKey        = "hyperparams.sig_type"
)

// Error context.
const (
	ErrorCodeKey = "error.code"
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit              = "fit"
	OperationPredict          = "predict"
	OperationPredictProba     = "predict_proba"
	OperationDecisionFunction = "decision_function"
	OperationTransform        = "transform"
	OperationScore            = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorInvalidParameter  = "INVALID_PARAMETER"
	ErrorNotImplemented    = "NOT_IMPLEMENTED"
)
