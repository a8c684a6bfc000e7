// Package datasets generates small synthetic classification problems.
package datasets

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ezoic/sml/pkg/errors"
)

// BlobsConfig describes isotropic Gaussian clusters.
type BlobsConfig struct {
	// Centers holds one point per cluster; all must have the same length.
	Centers [][]float64
	// NSamplesPerCenter is the number of points drawn around each center.
	NSamplesPerCenter int
	// Std is the standard deviation of every coordinate.
	Std float64
	// Seed makes the draw reproducible.
	Seed uint64
	// Shuffle permutes the rows after generation.
	Shuffle bool
}

// MakeBlobs draws the clusters described by cfg. y holds the index of the
// center each row was drawn from, as an n x 1 matrix.
func MakeBlobs(cfg BlobsConfig) (X, y *mat.Dense, err error) {
	if len(cfg.Centers) == 0 {
		return nil, nil, errors.NewValidationError("centers", "at least one center is required", len(cfg.Centers))
	}
	if cfg.NSamplesPerCenter <= 0 {
		return nil, nil, errors.NewValidationError("n_samples_per_center", "must be greater than 0", cfg.NSamplesPerCenter)
	}
	if !(cfg.Std > 0) {
		return nil, nil, errors.NewValidationError("std", "must be greater than 0", cfg.Std)
	}
	nFeatures := len(cfg.Centers[0])
	if nFeatures == 0 {
		return nil, nil, errors.NewValidationError("centers", "centers must have at least one coordinate", nFeatures)
	}
	for _, c := range cfg.Centers {
		if len(c) != nFeatures {
			return nil, nil, errors.NewDimensionError("datasets.MakeBlobs", nFeatures, len(c), 1)
		}
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	noise := distuv.Normal{Mu: 0, Sigma: cfg.Std, Src: src}

	n := len(cfg.Centers) * cfg.NSamplesPerCenter
	X = mat.NewDense(n, nFeatures, nil)
	y = mat.NewDense(n, 1, nil)
	row := 0
	for label, center := range cfg.Centers {
		for i := 0; i < cfg.NSamplesPerCenter; i++ {
			for j, mu := range center {
				X.Set(row, j, mu+noise.Rand())
			}
			y.Set(row, 0, float64(label))
			row++
		}
	}

	if cfg.Shuffle {
		rng := rand.New(src)
		rng.Shuffle(n, func(i, j int) {
			ri, rj := X.RawRowView(i), X.RawRowView(j)
			for k := range ri {
				ri[k], rj[k] = rj[k], ri[k]
			}
			yi, yj := y.At(i, 0), y.At(j, 0)
			y.Set(i, 0, yj)
			y.Set(j, 0, yi)
		})
	}
	return X, y, nil
}

// TwoBlobs returns a shuffled, linearly separable binary problem: n points
// labeled 0 around (-2, -2) and n points labeled 1 around (2, 2), unit
// standard deviation.
func TwoBlobs(n int, seed uint64) (X, y *mat.Dense, err error) {
	return MakeBlobs(BlobsConfig{
		Centers:           [][]float64{{-2, -2}, {2, 2}},
		NSamplesPerCenter: n,
		Std:               1,
		Seed:              seed,
		Shuffle:           true,
	})
}
