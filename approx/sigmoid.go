// Package approx implements sigmoid surrogates for restricted arithmetic.
//
// Under secret sharing or homomorphic encryption, exp and division are
// expensive or unavailable, so the logistic function is replaced by a
// piecewise or polynomial approximation. Every approximation here uses only
// additions, multiplications, comparisons and (for DF and SR) a single
// division or square root, and each one satisfies sigmoid(0) = 0.5.
//
// The set of kinds is closed:
//
//	T1    0.5 + x/4, clamped to [0, 1]
//	T3    0.5 + x/4 - x^3/48, 0 below -2 and 1 above 2
//	T5    0.5 + x/4 - x^3/48 + x^5/480, clamped to [0, 1]
//	Seg3  0.5 + x/8 on [-4, 4], 0 below and 1 above
//	DF    0.5 * x / (1 + |x|) + 0.5
//	SR    0.5 * x / sqrt(1 + x^2) + 0.5
//	Mix   T3 on [-2, 2], SR outside
//
// The Taylor kinds follow the expansion around 0; Seg3 is the three piece
// linear approximation; DF is the "dataflow" rational approximation (max
// error about 0.08); SR is the square root approximation, a close fit outside
// [-3, 3].
package approx

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/pkg/errors"
)

// SigType selects a sigmoid approximation.
type SigType int

// Approximation kinds. The zero value is invalid.
const (
	T1 SigType = iota + 1
	T3
	T5
	Seg3
	DF
	SR
	Mix
)

// Default is the approximation used when none is configured.
const Default = SR

var sigTypeNames = map[SigType]string{
	T1:   "t1",
	T3:   "t3",
	T5:   "t5",
	Seg3: "seg3",
	DF:   "df",
	SR:   "sr",
	Mix:  "mix",
}

// Kinds returns every approximation kind in declaration order.
func Kinds() []SigType {
	return []SigType{T1, T3, T5, Seg3, DF, SR, Mix}
}

// String returns the short name of t, e.g. "sr".
func (t SigType) String() string {
	if name, ok := sigTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SigType(%d)", int(t))
}

// Valid reports whether t is one of the declared kinds.
func (t SigType) Valid() bool {
	_, ok := sigTypeNames[t]
	return ok
}

// ParseSigType parses a short name such as "t3" or "sr".
func ParseSigType(s string) (SigType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range sigTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.NewValidationError("sig_type",
		fmt.Sprintf("must be one of %v", Kinds()), s)
}

const (
	t1Coef = 1.0 / 4
	t3Coef = -1.0 / 48
	t5Coef = 1.0 / 480
)

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func taylor1(x float64) float64 { return 0.5 + x*t1Coef }

func taylor3(x float64) float64 { return taylor1(x) + x*x*x*t3Coef }

func taylor5(x float64) float64 { return taylor3(x) + x*x*x*x*x*t5Coef }

func sigmoidT1(x float64) float64 { return clamp01(taylor1(x)) }

func sigmoidT3(x float64) float64 {
	switch {
	case x < -2:
		return 0
	case x > 2:
		return 1
	default:
		return taylor3(x)
	}
}

func sigmoidT5(x float64) float64 { return clamp01(taylor5(x)) }

func sigmoidSeg3(x float64) float64 {
	switch {
	case x < -4:
		return 0
	case x > 4:
		return 1
	default:
		return 0.5 + x*0.125
	}
}

func sigmoidDF(x float64) float64 { return 0.5*(x/(1+math.Abs(x))) + 0.5 }

func sigmoidSR(x float64) float64 { return 0.5*(x/math.Sqrt(1+x*x)) + 0.5 }

func sigmoidMix(x float64) float64 {
	if x < -2 || x > 2 {
		return sigmoidSR(x)
	}
	return taylor3(x)
}

// Func returns the scalar approximation for t.
func Func(t SigType) (func(float64) float64, error) {
	switch t {
	case T1:
		return sigmoidT1, nil
	case T3:
		return sigmoidT3, nil
	case T5:
		return sigmoidT5, nil
	case Seg3:
		return sigmoidSeg3, nil
	case DF:
		return sigmoidDF, nil
	case SR:
		return sigmoidSR, nil
	case Mix:
		return sigmoidMix, nil
	}
	return nil, errors.NewValidationError("sig_type", "unknown approximation", int(t))
}

// Eval evaluates the approximation t at x.
func Eval(x float64, t SigType) (float64, error) {
	f, err := Func(t)
	if err != nil {
		return 0, err
	}
	return f(x), nil
}

// Sigmoid applies the approximation t element-wise to z.
func Sigmoid(z mat.Matrix, t SigType) (*mat.Dense, error) {
	f, err := Func(t)
	if err != nil {
		return nil, err
	}
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return f(v) }, z)
	return &out, nil
}

// SigmoidVec applies the approximation t element-wise to z, storing the
// result in dst. dst is resized if it is empty, otherwise its length must
// match z.
func SigmoidVec(dst *mat.VecDense, z mat.Vector, t SigType) error {
	f, err := Func(t)
	if err != nil {
		return err
	}
	n := z.Len()
	if dst.IsEmpty() {
		dst.ReuseAsVec(n)
	} else if dst.Len() != n {
		return errors.NewDimensionError("approx.SigmoidVec", n, dst.Len(), 0)
	}
	for i := 0; i < n; i++ {
		dst.SetVec(i, f(z.AtVec(i)))
	}
	return nil
}
