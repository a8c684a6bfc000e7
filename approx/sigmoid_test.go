package approx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/pkg/errors"
)

func TestParseSigType(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			got, err := ParseSigType(kind.String())
			require.NoError(t, err)
			assert.Equal(t, kind, got)
			assert.True(t, got.Valid())
		})
	}

	got, err := ParseSigType(" SR ")
	require.NoError(t, err)
	assert.Equal(t, SR, got)

	_, err = ParseSigType("real")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))
}

func TestInvalidSigType(t *testing.T) {
	var zero SigType
	assert.False(t, zero.Valid())
	assert.False(t, SigType(42).Valid())
	assert.Equal(t, "SigType(42)", SigType(42).String())

	_, err := Eval(0, SigType(42))
	assert.True(t, errors.Is(err, errors.ErrInvalidParameter))

	_, err = Sigmoid(mat.NewDense(1, 1, nil), 0)
	assert.Error(t, err)
}

func TestEvalKnownValues(t *testing.T) {
	tests := []struct {
		kind SigType
		x    float64
		want float64
	}{
		{T1, 1, 0.75},
		{T1, 3, 1},
		{T1, -3, 0},
		{T3, 1, 0.5 + 0.25 - 1.0/48},
		{T3, 2.5, 1},
		{T3, -2.5, 0},
		{T5, 1, 0.5 + 0.25 - 1.0/48 + 1.0/480},
		{T5, 10, 1},
		{T5, -10, 0},
		{Seg3, 2, 0.75},
		{Seg3, 5, 1},
		{Seg3, -5, 0},
		{DF, 1, 0.75},
		{DF, -3, 0.125},
		{SR, 1, 0.5 + 0.5/math.Sqrt2},
		{SR, -1, 0.5 - 0.5/math.Sqrt2},
		{Mix, 1, 0.5 + 0.25 - 1.0/48},
		{Mix, 3, 0.5 + 0.5*3/math.Sqrt(10)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := Eval(tt.x, tt.kind)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestApproximationsShareLogisticShape(t *testing.T) {
	xs := make([]float64, 801)
	floats.Span(xs, -8, 8)

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			f, err := Func(kind)
			require.NoError(t, err)

			assert.Equal(t, 0.5, f(0), "sigmoid(0) must be 0.5")

			prev := f(xs[0])
			for _, x := range xs[1:] {
				v := f(x)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				assert.GreaterOrEqual(t, v, prev, "not monotone at x=%v", x)
				if x > 1e-9 {
					assert.Greater(t, v, 0.5, "positive score below 0.5 at x=%v", x)
				}
				if x < -1e-9 {
					assert.Less(t, v, 0.5, "negative score above 0.5 at x=%v", x)
				}
				prev = v
			}
		})
	}
}

func TestSigmoidMatrix(t *testing.T) {
	z := mat.NewDense(2, 2, []float64{-1, 0, 1, 2})

	got, err := Sigmoid(z, Seg3)
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{0.375, 0.5, 0.625, 0.75})
	assert.True(t, mat.EqualApprox(want, got, 1e-12))

	// the input is not modified
	assert.Equal(t, -1.0, z.At(0, 0))
}

func TestSigmoidVec(t *testing.T) {
	z := mat.NewVecDense(3, []float64{-2, 0, 2})

	var dst mat.VecDense
	require.NoError(t, SigmoidVec(&dst, z, T1))
	assert.Equal(t, []float64{0, 0.5, 1}, dst.RawVector().Data)

	short := mat.NewVecDense(2, nil)
	err := SigmoidVec(short, z, T1)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}
