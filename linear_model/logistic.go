// Package linear_model implements binary logistic regression trained by
// mini-batch stochastic gradient descent, with the logistic function
// replaced by a polynomial or rational approximation from package approx.
//
// The approximations keep every operation of training and inference to
// additions, multiplications and at most one division or square root, so
// the same model can be reproduced under encrypted or fixed-point
// arithmetic.
package linear_model

import (
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/approx"
	"github.com/ezoic/sml/core/model"
	"github.com/ezoic/sml/pkg/errors"
	"github.com/ezoic/sml/pkg/log"
)

const modelName = "LogisticRegression"

// Default hyperparameters.
const (
	DefaultC            = 1.0
	DefaultL1Ratio      = 0.5
	DefaultEpochs       = 20
	DefaultLearningRate = 0.1
	DefaultBatchSize    = 512
)

// hyperParams is the immutable configuration of a LogisticRegression.
// Fields are exported for gob.
type hyperParams struct {
	Penalty      Penalty
	SigType      approx.SigType
	C            float64
	L1Ratio      float64
	Epochs       int
	LearningRate float64
	BatchSize    int
	MultiClass   MultiClass
	Solver       Solver
	ClassWeight  string
}

func defaultParams() hyperParams {
	return hyperParams{
		Penalty:      PenaltyL2,
		SigType:      approx.Default,
		C:            DefaultC,
		L1Ratio:      DefaultL1Ratio,
		Epochs:       DefaultEpochs,
		LearningRate: DefaultLearningRate,
		BatchSize:    DefaultBatchSize,
		MultiClass:   Binary,
		Solver:       SolverSGD,
	}
}

// validate checks every hyperparameter. The order matches the order in which
// a user usually reads the constructor arguments.
func (p hyperParams) validate() error {
	if p.Epochs <= 0 {
		return errors.NewValidationError("epochs", "must be greater than 0", p.Epochs)
	}
	if !(p.LearningRate > 0) {
		return errors.NewValidationError("learning_rate", "must be greater than 0", p.LearningRate)
	}
	if p.BatchSize <= 0 {
		return errors.NewValidationError("batch_size", "must be greater than 0", p.BatchSize)
	}
	if !p.Solver.Valid() {
		return errors.NewValidationError("solver", "only sgd is supported", p.Solver)
	}
	if !(p.C > 0) {
		return errors.NewValidationError("C", "must be greater than 0", p.C)
	}
	if !p.Penalty.Valid() {
		return errors.NewValidationError("penalty", "must be one of None, l1, l2, elasticnet", p.Penalty)
	}
	if p.Penalty == PenaltyElasticNet && !(p.L1Ratio >= 0 && p.L1Ratio <= 1) {
		return errors.NewValidationError("l1_ratio", "must be in [0, 1] for elasticnet", p.L1Ratio)
	}
	if !p.SigType.Valid() {
		return errors.NewValidationError("sig_type", "unknown sigmoid approximation", p.SigType)
	}
	if cw := strings.ToLower(p.ClassWeight); cw != "" && cw != "none" {
		return errors.NewUnsupportedParameterError("class_weight", p.ClassWeight)
	}
	switch p.MultiClass {
	case Binary:
	case Ovr, Multinomial:
		return errors.NewUnsupportedParameterError("multi_class", p.MultiClass)
	default:
		return errors.NewValidationError("multi_class", "must be one of binary, ovr, multinomial", p.MultiClass)
	}
	return nil
}

func (p hyperParams) toMap() map[string]interface{} {
	return map[string]interface{}{
		"penalty":       p.Penalty.String(),
		"sig_type":      p.SigType.String(),
		"C":             p.C,
		"l1_ratio":      p.L1Ratio,
		"epochs":        p.Epochs,
		"learning_rate": p.LearningRate,
		"batch_size":    p.BatchSize,
		"multi_class":   p.MultiClass.String(),
		"solver":        p.Solver.String(),
	}
}

// withMap returns p overridden by the entries of m. Numbers may arrive as
// any numeric type, JSON decoding yields float64.
func (p hyperParams) withMap(m map[string]interface{}) (hyperParams, error) {
	var err error
	for key, v := range m {
		switch key {
		case "penalty":
			p.Penalty, err = ParsePenalty(fmt.Sprint(v))
		case "sig_type":
			p.SigType, err = approx.ParseSigType(fmt.Sprint(v))
		case "multi_class":
			p.MultiClass, err = ParseMultiClass(fmt.Sprint(v))
		case "solver":
			p.Solver, err = ParseSolver(fmt.Sprint(v))
		case "C":
			p.C, err = toFloat(key, v)
		case "l1_ratio":
			p.L1Ratio, err = toFloat(key, v)
		case "learning_rate":
			p.LearningRate, err = toFloat(key, v)
		case "epochs":
			p.Epochs, err = toInt(key, v)
		case "batch_size":
			p.BatchSize, err = toInt(key, v)
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

func toFloat(key string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, errors.NewValidationError(key, "must be a number", v)
}

func toInt(key string, v interface{}) (int, error) {
	f, err := toFloat(key, v)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, errors.NewValidationError(key, "must be an integer", v)
	}
	return int(f), nil
}

// LogisticRegression is a binary classifier over labels {0, 1}.
//
// The weight vector has n_features+1 entries with the bias last. It is
// published only when Fit succeeds, so concurrent inference never observes a
// partially trained model.
type LogisticRegression struct {
	state  *model.StateManager
	params hyperParams
	logger log.Logger

	mu      sync.RWMutex
	weights *mat.VecDense
}

// LogisticRegressionOption configures a LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression builds an untrained model. Invalid configuration is
// rejected here, before any data is seen.
//
// Example:
//
//	lr, err := linear_model.NewLogisticRegression(
//		linear_model.WithPenalty(linear_model.PenaltyElasticNet),
//		linear_model.WithL1Ratio(0.3),
//		linear_model.WithSigType(approx.T3),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
func NewLogisticRegression(opts ...LogisticRegressionOption) (*LogisticRegression, error) {
	lr := &LogisticRegression{
		state:   model.NewStateManager(),
		params:  defaultParams(),
		weights: &mat.VecDense{},
	}
	for _, opt := range opts {
		opt(lr)
	}
	if err := lr.params.validate(); err != nil {
		return nil, err
	}
	if lr.logger == nil {
		lr.logger = defaultLogger()
	}
	return lr, nil
}

func defaultLogger() log.Logger {
	return log.GetLoggerWithName("linear_model").With(
		log.ModelNameKey, modelName,
		log.ComponentKey, "linear_model",
	)
}

// WithPenalty sets the regularization. Default PenaltyL2.
func WithPenalty(p Penalty) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.Penalty = p }
}

// WithSigType sets the sigmoid approximation. Default approx.SR.
func WithSigType(t approx.SigType) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.SigType = t }
}

// WithC sets the inverse regularization strength. Must be positive.
func WithC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.C = c }
}

// WithL1Ratio sets the L1 share of the elastic-net penalty. Only checked
// when the penalty is PenaltyElasticNet.
func WithL1Ratio(ratio float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.L1Ratio = ratio }
}

// WithEpochs sets the number of full passes over the data.
func WithEpochs(epochs int) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.Epochs = epochs }
}

// WithLearningRate sets the SGD step size.
func WithLearningRate(rate float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.LearningRate = rate }
}

// WithBatchSize sets the mini-batch size. It is capped at the number of
// samples during Fit.
func WithBatchSize(size int) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.BatchSize = size }
}

// WithMultiClass sets the multi-class mode. Only Binary is accepted.
func WithMultiClass(m MultiClass) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.MultiClass = m }
}

// WithSolver sets the solver. Only SolverSGD is accepted.
func WithSolver(s Solver) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.Solver = s }
}

// WithClassWeight sets the class weighting. Only "" and "none" are
// accepted; "balanced" is reserved.
func WithClassWeight(cw string) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.params.ClassWeight = cw }
}

// WithLogger replaces the model logger.
func WithLogger(logger log.Logger) LogisticRegressionOption {
	return func(lr *LogisticRegression) { lr.logger = logger }
}

// GetParams returns the hyperparameters keyed by their snake_case names.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return lr.config().toMap()
}

func (lr *LogisticRegression) config() hyperParams {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return lr.params
}

// Penalty returns the configured regularization.
func (lr *LogisticRegression) Penalty() Penalty { return lr.config().Penalty }

// SigType returns the configured sigmoid approximation.
func (lr *LogisticRegression) SigType() approx.SigType { return lr.config().SigType }

// IsFitted reports whether Fit has completed successfully.
func (lr *LogisticRegression) IsFitted() bool { return lr.state.IsFitted() }

// NFeatures returns the number of features seen by Fit, or 0.
func (lr *LogisticRegression) NFeatures() int {
	n, _ := lr.state.GetDimensions()
	return n
}

// Weights returns a copy of the trained weight vector, bias last, or nil if
// the model is not fitted.
func (lr *LogisticRegression) Weights() *mat.VecDense {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	if !lr.state.IsFitted() || lr.weights.IsEmpty() {
		return nil
	}
	return mat.VecDenseCopyOf(lr.weights)
}

// Coef returns a copy of the feature weights, or nil if not fitted.
func (lr *LogisticRegression) Coef() []float64 {
	w := lr.Weights()
	if w == nil {
		return nil
	}
	n := w.Len() - 1
	coef := make([]float64, n)
	for i := range coef {
		coef[i] = w.AtVec(i)
	}
	return coef
}

// Intercept returns the bias weight, or 0 if not fitted.
func (lr *LogisticRegression) Intercept() float64 {
	w := lr.Weights()
	if w == nil {
		return 0
	}
	return w.AtVec(w.Len() - 1)
}

func (lr *LogisticRegression) String() string {
	p := lr.config()
	return fmt.Sprintf("LogisticRegression(penalty=%s, sig_type=%s, C=%g, l1_ratio=%g, epochs=%d, learning_rate=%g, batch_size=%d)",
		p.Penalty, p.SigType, p.C, p.L1Ratio, p.Epochs, p.LearningRate, p.BatchSize)
}
