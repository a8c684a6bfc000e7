package linear_model_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/approx"
	"github.com/ezoic/sml/datasets"
	"github.com/ezoic/sml/linear_model"
)

func ExampleLogisticRegression() {
	X, y, err := datasets.TwoBlobs(100, 42)
	if err != nil {
		log.Fatal(err)
	}

	lr, err := linear_model.NewLogisticRegression(
		linear_model.WithPenalty(linear_model.PenaltyL2),
		linear_model.WithSigType(approx.SR),
		linear_model.WithEpochs(20),
		linear_model.WithLearningRate(0.1),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := lr.Fit(X, y); err != nil {
		log.Fatal(err)
	}

	acc, err := lr.Score(X, y)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("accuracy >= 0.95:", acc >= 0.95)

	pred, err := lr.Predict(mat.NewDense(2, 2, []float64{-3, -3, 3, 3}))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(mat.Col(nil, 0, pred))
	// Output:
	// accuracy >= 0.95: true
	// [0 1]
}

func ExampleLogisticRegression_PredictProba() {
	lr, err := linear_model.NewLogisticRegression(linear_model.WithSigType(approx.DF))
	if err != nil {
		log.Fatal(err)
	}

	X, y, err := datasets.TwoBlobs(50, 1)
	if err != nil {
		log.Fatal(err)
	}
	if err := lr.Fit(X, y); err != nil {
		log.Fatal(err)
	}
	proba, err := lr.PredictProba(mat.NewDense(2, 2, []float64{-3, -3, 3, 3}))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(proba.At(0, 0) < 0.5, proba.At(1, 0) > 0.5)
	// Output:
	// true true
}

func ExampleNewLogisticRegression_invalid() {
	_, err := linear_model.NewLogisticRegression(linear_model.WithMultiClass(linear_model.Ovr))
	fmt.Println(err != nil)
	// Output:
	// true
}
