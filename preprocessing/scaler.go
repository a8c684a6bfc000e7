// Package preprocessing rescales features before training.
//
// The SGD trainer in linear_model uses a fixed learning rate and a sigmoid
// approximation that is only accurate near zero, so features on very
// different scales train poorly. Both scalers follow the Fit, Transform,
// FitTransform pattern and can be placed in a pipeline.Pipeline.
//
//	scaler := preprocessing.NewStandardScalerDefault()
//	Xs, err := scaler.FitTransform(X)
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/sml/core/model"
	"github.com/ezoic/sml/pkg/errors"
	"github.com/ezoic/sml/pkg/log"
)

var logger = log.GetLoggerWithName("preprocessing")

// checkInput rejects nil, empty and (for fitted transformers) mis-shaped
// matrices.
func checkInput(op string, X mat.Matrix, nFeatures int) (rows, cols int, err error) {
	if X == nil {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if nFeatures > 0 && cols != nFeatures {
		return 0, 0, errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	return rows, cols, nil
}

// StandardScaler standardizes each feature to zero mean and unit variance.
// The population standard deviation is used; constant features keep a
// scale of 1.
type StandardScaler struct {
	state *model.StateManager

	// Mean holds the per-feature mean after Fit.
	Mean []float64
	// Scale holds the per-feature standard deviation after Fit.
	Scale []float64

	WithMean bool
	WithStd  bool
}

// NewStandardScaler creates a StandardScaler. withMean centers the data,
// withStd divides by the standard deviation.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault centers and scales.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// IsFitted reports whether Fit has been called.
func (s *StandardScaler) IsFitted() bool { return s.state.IsFitted() }

// Fit computes the per-feature mean and standard deviation of X.
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "StandardScaler.Fit")

	rows, cols, err := checkInput("StandardScaler.Fit", X, 0)
	if err != nil {
		return err
	}

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		m, sd := stat.PopMeanStdDev(col, nil)
		mean[j] = m
		if sd == 0 {
			sd = 1
		}
		scale[j] = sd
	}

	s.Mean, s.Scale = mean, scale
	s.state.SetDimensions(cols, rows)
	s.state.SetFitted()

	logger.Debug("Scaler fitted",
		log.OperationKey, log.OperationFit,
		log.ComponentKey, "StandardScaler",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)
	return nil
}

// Transform standardizes X with the statistics learned by Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "StandardScaler.Transform")

	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	nFeatures, _ := s.state.GetDimensions()
	if _, _, err := checkInput("StandardScaler.Transform", X, nFeatures); err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		if s.WithMean {
			v -= s.Mean[j]
		}
		if s.WithStd {
			v /= s.Scale[j]
		}
		return v
	}, X)
	return &out, nil
}

// FitTransform fits on X and returns X transformed.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "StandardScaler.InverseTransform")

	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	nFeatures, _ := s.state.GetDimensions()
	if _, _, err := checkInput("StandardScaler.InverseTransform", X, nFeatures); err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		if s.WithStd {
			v *= s.Scale[j]
		}
		if s.WithMean {
			v += s.Mean[j]
		}
		return v
	}, X)
	return &out, nil
}

// GetParams returns the constructor parameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
}

// MinMaxScaler maps each feature linearly onto FeatureRange. Constant
// features map to the lower bound.
type MinMaxScaler struct {
	state *model.StateManager

	FeatureRange [2]float64

	// DataMin and DataMax hold the per-feature extremes after Fit.
	DataMin []float64
	DataMax []float64
}

// NewMinMaxScaler creates a MinMaxScaler targeting featureRange.
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault targets [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0, 1})
}

// IsFitted reports whether Fit has been called.
func (m *MinMaxScaler) IsFitted() bool { return m.state.IsFitted() }

// Fit records the per-feature minimum and maximum of X.
func (m *MinMaxScaler) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "MinMaxScaler.Fit")

	if !(m.FeatureRange[0] < m.FeatureRange[1]) {
		return errors.NewValidationError("feature_range", "minimum must be smaller than maximum", m.FeatureRange)
	}
	rows, cols, err := checkInput("MinMaxScaler.Fit", X, 0)
	if err != nil {
		return err
	}

	lo := make([]float64, cols)
	hi := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		lo[j] = floats.Min(col)
		hi[j] = floats.Max(col)
	}

	m.DataMin, m.DataMax = lo, hi
	m.state.SetDimensions(cols, rows)
	m.state.SetFitted()

	logger.Debug("Scaler fitted",
		log.OperationKey, log.OperationFit,
		log.ComponentKey, "MinMaxScaler",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)
	return nil
}

func (m *MinMaxScaler) span(j int) float64 {
	if d := m.DataMax[j] - m.DataMin[j]; d != 0 {
		return d
	}
	return 1
}

// Transform scales X onto FeatureRange.
func (m *MinMaxScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MinMaxScaler.Transform")

	if err := m.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}
	nFeatures, _ := m.state.GetDimensions()
	if _, _, err := checkInput("MinMaxScaler.Transform", X, nFeatures); err != nil {
		return nil, err
	}

	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return (v-m.DataMin[j])/m.span(j)*(hi-lo) + lo
	}, X)
	return &out, nil
}

// FitTransform fits on X and returns X transformed.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps scaled data back to the original range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "MinMaxScaler.InverseTransform")

	if err := m.state.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	nFeatures, _ := m.state.GetDimensions()
	if _, _, err := checkInput("MinMaxScaler.InverseTransform", X, nFeatures); err != nil {
		return nil, err
	}

	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return (v-lo)/(hi-lo)*m.span(j) + m.DataMin[j]
	}, X)
	return &out, nil
}

// GetParams returns the constructor parameters.
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": m.FeatureRange,
	}
}

func (m *MinMaxScaler) String() string {
	return fmt.Sprintf("MinMaxScaler(feature_range=(%g, %g))", m.FeatureRange[0], m.FeatureRange[1])
}
