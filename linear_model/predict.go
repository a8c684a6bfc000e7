package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/approx"
	"github.com/ezoic/sml/metrics"
	"github.com/ezoic/sml/pkg/errors"
	"github.com/ezoic/sml/pkg/log"
)

// DecisionFunction returns the raw scores X*coef + bias as an
// n_samples x 1 matrix.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LogisticRegression.DecisionFunction")

	lr.mu.RLock()
	defer lr.mu.RUnlock()

	scores, err := lr.decisionFunction(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// PredictProba returns the approximate probability of class 1, the
// configured sigmoid approximation applied to the decision function. The
// result is n_samples x 1.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LogisticRegression.PredictProba")

	lr.mu.RLock()
	defer lr.mu.RUnlock()

	scores, err := lr.decisionFunction(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	proba, err := approx.Sigmoid(scores, lr.params.SigType)
	if err != nil {
		return nil, err
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredictProba,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, proba.RawMatrix().Rows,
	)
	return proba, nil
}

// Predict returns 1 where the decision function is strictly positive and 0
// otherwise, as an n_samples x 1 matrix. A score of exactly 0 maps to 0.
func (lr *LogisticRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LogisticRegression.Predict")

	lr.mu.RLock()
	defer lr.mu.RUnlock()

	scores, err := lr.decisionFunction(X, "Predict")
	if err != nil {
		return nil, err
	}

	rows, _ := scores.Dims()
	labels := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if scores.At(i, 0) > 0 {
			labels.Set(i, 0, 1)
		}
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, rows,
	)
	return labels, nil
}

// Score returns the accuracy of Predict(X) against y (n_samples x 1).
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return 0, errors.NewDimensionError("LogisticRegression.Score", 1, yCols, 1)
	}
	pRows, _ := pred.Dims()
	if yRows != pRows {
		return 0, errors.NewDimensionError("LogisticRegression.Score", pRows, yRows, 0)
	}

	acc, err := metrics.Accuracy(
		mat.NewVecDense(yRows, mat.Col(nil, 0, y)),
		mat.NewVecDense(pRows, mat.Col(nil, 0, pred)),
	)
	if err != nil {
		return 0, err
	}
	lr.logger.Debug("Score computed",
		log.OperationKey, log.OperationScore,
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// decisionFunction expects lr.mu to be held. The multi-class mode is checked
// first so reserved modes always report as unsupported.
func (lr *LogisticRegression) decisionFunction(X mat.Matrix, method string) (*mat.Dense, error) {
	op := "LogisticRegression." + method
	switch lr.params.MultiClass {
	case Binary:
	case Ovr, Multinomial:
		return nil, errors.NewNotImplementedError(op, "multi_class="+lr.params.MultiClass.String())
	default:
		return nil, errors.NewValidationError("multi_class", "must be one of binary, ovr, multinomial", lr.params.MultiClass)
	}

	if err := lr.state.RequireFitted(modelName, method); err != nil {
		return nil, err
	}
	if lr.weights.IsEmpty() {
		return nil, errors.NewNotFittedError(modelName, method)
	}
	if X == nil {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	rows, cols := X.Dims()
	nFeatures := lr.weights.Len() - 1
	if cols != nFeatures {
		return nil, errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	if rows == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	coef := lr.weights.SliceVec(0, nFeatures)
	bias := lr.weights.AtVec(nFeatures)

	var z mat.VecDense
	z.MulVec(X, coef)

	scores := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		scores.Set(i, 0, z.AtVec(i)+bias)
	}
	return scores, nil
}
