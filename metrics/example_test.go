package metrics_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/metrics"
)

func ExampleAUC() {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yPred := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})

	auc, err := metrics.AUC(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("AUC: %.2f\n", auc)
	// Output:
	// AUC: 0.75
}

func ExampleConfusionMatrix() {
	yTrue := mat.NewVecDense(6, []float64{0, 0, 1, 1, 1, 0})
	yPred := mat.NewVecDense(6, []float64{0, 1, 1, 1, 0, 0})

	cm, err := metrics.ConfusionMatrix(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%v\n", mat.Formatted(cm))
	// Output:
	// ⎡2  1⎤
	// ⎣1  2⎦
}

func ExampleAccuracy() {
	yTrue := mat.NewVecDense(5, []float64{0, 1, 1, 0, 1})
	yPred := mat.NewVecDense(5, []float64{0, 1, 0, 0, 1})

	acc, _ := metrics.Accuracy(yTrue, yPred)
	fmt.Printf("Accuracy: %.1f\n", acc)
	// Output:
	// Accuracy: 0.8
}
