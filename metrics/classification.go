// Package metrics provides evaluation metrics for binary classifiers.
//
// Labels are float64 vectors holding 0 or 1. Scores may be probabilities or
// raw decision values.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/pkg/errors"
)

// checkPair validates two equally long, non-empty vectors.
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "input vectors cannot be nil")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "input vectors cannot be empty")
	}
	if n != yPred.Len() {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// checkBinary ensures v holds only 0 and 1.
func checkBinary(name string, v *mat.VecDense) error {
	for i := 0; i < v.Len(); i++ {
		if x := v.AtVec(i); x != 0 && x != 1 {
			return errors.NewValidationError(name,
				fmt.Sprintf("must contain only binary values (0 or 1), found %g at index %d", x, i), x)
		}
	}
	return nil
}

// firstColumn copies column 0 of m into a vector.
func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "input matrices cannot be nil")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError(op, "input matrices cannot be empty")
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
}

// AUC computes the area under the ROC curve of scores yPred against binary
// labels yTrue. Tied scores share their average rank, so AUC is the
// probability that a random positive outranks a random negative, ties
// counting one half. If only one class is present the AUC is undefined and
// 0.5 is returned.
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yPred := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})
//	auc, _ := metrics.AUC(yTrue, yPred) // 0.75
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("yTrue", yTrue); err != nil {
		return 0, err
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return yPred.AtVec(idx[a]) < yPred.AtVec(idx[b]) })

	// Mann-Whitney U from average ranks.
	var rankSum, nPos float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(idx[j+1]) == yPred.AtVec(idx[i]) {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(idx[k]) == 1 {
				rankSum += rank
				nPos++
			}
		}
		i = j + 1
	}
	nNeg := float64(n) - nPos
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewDataWarning("AUC", "only one class present in yTrue, AUC set to 0.5"))
		return 0.5, nil
	}
	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg), nil
}

// AUCMatrix is AUC over the first column of two matrices, the shape
// returned by PredictProba and DecisionFunction.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(t, p)
}

// BinaryLogLoss returns the mean cross-entropy of probabilities yPred
// against binary labels yTrue. Probabilities are clipped to
// [1e-15, 1-1e-15].
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("yTrue", yTrue); err != nil {
		return 0, err
	}

	const eps = 1e-15
	loss := 0.0
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(yPred.AtVec(i), eps), 1-eps)
		if yTrue.AtVec(i) == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log1p(-p)
		}
	}
	return loss / float64(n), nil
}

// ClassificationError returns the fraction of positions where yPred
// differs from yTrue.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ClassificationError", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	wrong := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// Accuracy returns the fraction of correct predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	e, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - e, nil
}

// ConfusionMatrix returns the 2x2 matrix of counts for binary labels, rows
// indexed by the true label and columns by the predicted one:
//
//	[[TN, FP],
//	 [FN, TP]]
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (*mat.Dense, error) {
	n, err := checkPair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, err
	}
	if err := checkBinary("yTrue", yTrue); err != nil {
		return nil, err
	}
	if err := checkBinary("yPred", yPred); err != nil {
		return nil, err
	}

	cm := mat.NewDense(2, 2, nil)
	for i := 0; i < n; i++ {
		t, p := int(yTrue.AtVec(i)), int(yPred.AtVec(i))
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}

// Precision returns TP / (TP + FP). With no positive predictions it is 0
// and a warning is emitted.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	cm, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	tp, fp := cm.At(1, 1), cm.At(0, 1)
	if tp+fp == 0 {
		errors.Warn(errors.NewDataWarning("Precision", "no positive predictions, precision set to 0"))
		return 0, nil
	}
	return tp / (tp + fp), nil
}

// Recall returns TP / (TP + FN). With no positive labels it is 0 and a
// warning is emitted.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	cm, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	tp, fn := cm.At(1, 1), cm.At(1, 0)
	if tp+fn == 0 {
		errors.Warn(errors.NewDataWarning("Recall", "no positive labels, recall set to 0"))
		return 0, nil
	}
	return tp / (tp + fn), nil
}

// F1Score is the harmonic mean of precision and recall, 0 when both are 0.
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	p, err := Precision(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	r, err := Recall(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if p+r == 0 {
		return 0, nil
	}
	return 2 * p * r / (p + r), nil
}
