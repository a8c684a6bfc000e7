package preprocessing_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/preprocessing"
)

func ExampleStandardScaler() {
	X := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 200,
		3, 300,
		4, 400,
	})

	scaler := preprocessing.NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("mean: %.1f\n", scaler.Mean)
	fmt.Printf("first row: [%.3f %.3f]\n", Xs.At(0, 0), Xs.At(0, 1))
	// Output:
	// mean: [2.5 250.0]
	// first row: [-1.342 -1.342]
}

func ExampleMinMaxScaler() {
	X := mat.NewDense(3, 1, []float64{-10, 0, 30})

	scaler := preprocessing.NewMinMaxScaler([2]float64{-1, 1})
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f\n", mat.Col(nil, 0, Xs))
	// Output:
	// [-1.00 -0.50 1.00]
}
