// Package model provides core abstractions shared by sml estimators.
//
// This package defines:
//
//   - StateManager: thread-safe fitted-state tracking, composed into models
//   - Estimator interfaces: Fitter, Predictor, Transformer, Classifier
//   - ModelWeights: a JSON snapshot of trained weights and hyperparameters
//   - Persistence: gob based SaveModel / LoadModel helpers
//   - scikit-learn exchange: a JSON envelope for logistic regression weights
//
// Models hold a *StateManager instead of embedding a base struct:
//
//	type MyModel struct {
//		state *model.StateManager
//	}
//
//	func (m *MyModel) Fit(X, y mat.Matrix) error {
//		// training logic
//		m.state.SetFitted()
//		return nil
//	}
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is implemented by models trained on features and labels.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is implemented by models producing one output per sample.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer is implemented by unsupervised preprocessing steps.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is a trainable predictor that reports its fitted state.
type Estimator interface {
	Fitter
	Predictor
	IsFitted() bool
}

// Classifier is an estimator for binary classification.
type Classifier interface {
	Estimator

	// PredictProba returns the probability of the positive class, shape (n, 1).
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// DecisionFunction returns the raw linear scores, shape (n, 1).
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)

	// Score returns the mean accuracy on X and y.
	Score(X, y mat.Matrix) (float64, error)
}

// WeightExporter is implemented by models whose weights can be exported
// and re-imported.
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(weights *ModelWeights) error
}
