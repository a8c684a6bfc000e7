package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/sml/pkg/errors"
)

func TestMakeBlobs(t *testing.T) {
	X, y, err := MakeBlobs(BlobsConfig{
		Centers:           [][]float64{{0, 0, 0}, {10, 10, 10}},
		NSamplesPerCenter: 200,
		Std:               0.5,
		Seed:              7,
	})
	require.NoError(t, err)

	r, c := X.Dims()
	assert.Equal(t, 400, r)
	assert.Equal(t, 3, c)
	yr, yc := y.Dims()
	assert.Equal(t, 400, yr)
	assert.Equal(t, 1, yc)

	// Unshuffled: the first half belongs to center 0.
	assert.Equal(t, 0.0, y.At(0, 0))
	assert.Equal(t, 1.0, y.At(399, 0))

	first := mat.Col(nil, 0, X.Slice(0, 200, 0, 3))
	second := mat.Col(nil, 0, X.Slice(200, 400, 0, 3))
	assert.InDelta(t, 0, stat.Mean(first, nil), 0.2)
	assert.InDelta(t, 10, stat.Mean(second, nil), 0.2)
	assert.InDelta(t, 0.5, stat.StdDev(first, nil), 0.1)
}

func TestMakeBlobsDeterministic(t *testing.T) {
	X1, y1, err := TwoBlobs(50, 42)
	require.NoError(t, err)
	X2, y2, err := TwoBlobs(50, 42)
	require.NoError(t, err)

	assert.True(t, mat.Equal(X1, X2))
	assert.True(t, mat.Equal(y1, y2))

	X3, _, err := TwoBlobs(50, 43)
	require.NoError(t, err)
	assert.False(t, mat.Equal(X1, X3))
}

func TestTwoBlobsShuffledLabels(t *testing.T) {
	X, y, err := TwoBlobs(100, 1)
	require.NoError(t, err)

	ones := 0
	for i := 0; i < 200; i++ {
		label := y.At(i, 0)
		require.Contains(t, []float64{0, 1}, label)
		if label == 1 {
			ones++
			// Rows stay attached to their label through the shuffle.
			assert.Greater(t, X.At(i, 0)+X.At(i, 1), -4.0)
		}
	}
	assert.Equal(t, 100, ones)
}

func TestMakeBlobsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  BlobsConfig
	}{
		{"no centers", BlobsConfig{NSamplesPerCenter: 1, Std: 1}},
		{"no samples", BlobsConfig{Centers: [][]float64{{0}}, Std: 1}},
		{"zero std", BlobsConfig{Centers: [][]float64{{0}}, NSamplesPerCenter: 1}},
		{"ragged centers", BlobsConfig{Centers: [][]float64{{0}, {0, 1}}, NSamplesPerCenter: 1, Std: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := MakeBlobs(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidParameter) || errors.Is(err, errors.ErrDimensionMismatch))
		})
	}
}
