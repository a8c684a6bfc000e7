package linear_model

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/approx"
	"github.com/ezoic/sml/pkg/errors"
	"github.com/ezoic/sml/pkg/log"
)

// batch is one fixed slice of the training data with the bias column
// appended to x.
type batch struct {
	x *mat.Dense    // batchSize x (nFeatures+1)
	y *mat.VecDense // batchSize
}

// planBatches returns the effective batch size and the number of full
// batches for nSamples rows.
func planBatches(nSamples, configured int) (batchSize, totalBatches int) {
	if nSamples <= 0 {
		return 0, 0
	}
	batchSize = configured
	if nSamples < batchSize {
		batchSize = nSamples
	}
	return batchSize, nSamples / batchSize
}

// makeBatches slices X and y into totalBatches sequential batches of
// batchSize rows. Rows past totalBatches*batchSize are not used.
func makeBatches(X, y mat.Matrix, totalBatches, batchSize int) ([]batch, error) {
	rows, cols := X.Dims()
	if rows < totalBatches*batchSize {
		return nil, errors.NewValueError("LogisticRegression.Fit",
			fmt.Sprintf("total batch is too large: %d batches of %d rows need %d rows, got %d",
				totalBatches, batchSize, totalBatches*batchSize, rows))
	}

	batches := make([]batch, totalBatches)
	for b := range batches {
		begin := b * batchSize
		x := mat.NewDense(batchSize, cols+1, nil)
		yb := mat.NewVecDense(batchSize, nil)
		for i := 0; i < batchSize; i++ {
			for j := 0; j < cols; j++ {
				x.Set(i, j, X.At(begin+i, j))
			}
			x.Set(i, cols, 1)
			yb.SetVec(i, y.At(begin+i, 0))
		}
		batches[b] = batch{x: x, y: yb}
	}
	return batches, nil
}

// Fit trains the model on X (n_samples x n_features) and y (n_samples x 1,
// labels 0 or 1). See FitContext.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	return lr.FitContext(context.Background(), X, y)
}

// FitContext trains the model. Weights start at zero and are updated
// epochs*total_batches times; batches are taken in order and never
// shuffled, so two fits on the same data give the same weights.
//
// ctx is checked before every epoch. On any error the previously trained
// weights, if any, are kept.
func (lr *LogisticRegression) FitContext(ctx context.Context, X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LogisticRegression.Fit")

	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.params.MultiClass != Binary {
		return errors.NewNotImplementedError("LogisticRegression.Fit", "multi_class="+lr.params.MultiClass.String())
	}
	if err := validateTrainingData(X, y); err != nil {
		return err
	}

	start := time.Now()
	nSamples, nFeatures := X.Dims()
	batchSize, totalBatches := planBatches(nSamples, lr.params.BatchSize)
	dropped := nSamples - totalBatches*batchSize

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.BatchSizeKey, batchSize,
		log.BatchesKey, totalBatches,
		log.EpochsKey, lr.params.Epochs,
		log.PenaltyKey, lr.params.Penalty.String(),
		log.SigTypeKey, lr.params.SigType.String(),
	)
	if dropped > 0 {
		errors.Warn(errors.NewDataWarning("LogisticRegression.Fit",
			fmt.Sprintf("%d trailing rows do not fill a batch of %d and are not used for training", dropped, batchSize)))
		lr.logger.Debug("Trailing rows dropped",
			log.OperationKey, log.OperationFit,
			log.DroppedRowsKey, dropped,
		)
	}

	batches, err := makeBatches(X, y, totalBatches, batchSize)
	if err != nil {
		return err
	}

	w := mat.NewVecDense(nFeatures+1, nil)
	for epoch := 0; epoch < lr.params.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "LogisticRegression.Fit: stopped before epoch %d", epoch)
		}
		w, err = lr.runEpoch(batches, w)
		if err != nil {
			return err
		}
		lr.logger.Debug("Epoch completed",
			log.OperationKey, log.OperationFit,
			log.EpochKey, epoch,
			log.WeightNormKey, mat.Norm(w, 2),
			log.BiasKey, w.AtVec(nFeatures),
		)
	}

	if !finite(w.RawVector().Data) {
		errors.Warn(errors.NewConvergenceWarning(modelName, lr.params.Epochs,
			"weights diverged to non-finite values; lower learning_rate or scale X"))
	}

	lr.weights = w
	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.WeightNormKey, mat.Norm(w, 2),
		log.BiasKey, w.AtVec(nFeatures),
	)
	return nil
}

func validateTrainingData(X, y mat.Matrix) error {
	if X == nil || y == nil {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	yRows, yCols := y.Dims()
	if yRows != rows {
		return errors.NewDimensionError("LogisticRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LogisticRegression.Fit", 1, yCols, 1)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := X.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewValueError("LogisticRegression.Fit",
					fmt.Sprintf("X[%d, %d] is not finite", i, j))
			}
		}
		if label := y.At(i, 0); label != 0 && label != 1 {
			return errors.NewValueError("LogisticRegression.Fit",
				fmt.Sprintf("labels must be 0 or 1, got %v at row %d", label, i))
		}
	}
	return nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// runEpoch applies one update per batch, in order, and returns the final
// weights. w is not modified.
func (lr *LogisticRegression) runEpoch(batches []batch, w *mat.VecDense) (*mat.VecDense, error) {
	for _, b := range batches {
		next, err := lr.step(b, w)
		if err != nil {
			return nil, err
		}
		w = next
	}
	return w, nil
}

// step performs a single gradient update on batch b:
//
//	p = sigmoid(X'w), g = X'^T (p - y) + reg(w), w' = w - (lr*g)/batch_size
func (lr *LogisticRegression) step(b batch, w *mat.VecDense) (*mat.VecDense, error) {
	batchSize, cols := b.x.Dims()
	if w.Len() != cols {
		return nil, errors.NewDimensionError("LogisticRegression.step", cols, w.Len(), 0)
	}

	grad, err := lr.gradient(b, w)
	if err != nil {
		return nil, err
	}
	reg, err := lr.regularization(w)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		grad.AddVec(grad, reg)
	}

	next := mat.NewVecDense(cols, nil)
	for i := 0; i < cols; i++ {
		next.SetVec(i, w.AtVec(i)-(lr.params.LearningRate*grad.AtVec(i))/float64(batchSize))
	}
	return next, nil
}

// gradient returns X'^T (sigmoid(X'w) - y) without regularization.
func (lr *LogisticRegression) gradient(b batch, w *mat.VecDense) (*mat.VecDense, error) {
	var z mat.VecDense
	z.MulVec(b.x, w)

	var p mat.VecDense
	if err := approx.SigmoidVec(&p, &z, lr.params.SigType); err != nil {
		return nil, err
	}

	var e mat.VecDense
	e.SubVec(&p, b.y)

	var g mat.VecDense
	g.MulVec(b.x.T(), &e)
	return &g, nil
}

// regularization returns the penalty gradient for w, or nil for
// PenaltyNone. The bias (last entry) is never penalized.
func (lr *LogisticRegression) regularization(w *mat.VecDense) (*mat.VecDense, error) {
	n := w.Len()
	c := lr.params.C
	l1 := lr.params.L1Ratio

	var term func(w0 float64) float64
	switch lr.params.Penalty {
	case PenaltyNone:
		return nil, nil
	case PenaltyL2:
		term = func(w0 float64) float64 { return w0 / c }
	case PenaltyL1:
		term = func(w0 float64) float64 { return sign(w0) / c }
	case PenaltyElasticNet:
		term = func(w0 float64) float64 { return sign(w0)*l1/c + w0*(1-l1)/c }
	default:
		return nil, errors.NewValidationError("penalty", "must be one of None, l1, l2, elasticnet", lr.params.Penalty)
	}

	reg := mat.NewVecDense(n, nil)
	for i := 0; i < n-1; i++ {
		reg.SetVec(i, term(w.AtVec(i)))
	}
	// bias entry stays 0
	return reg, nil
}

// sign returns -1, 0 or 1.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
