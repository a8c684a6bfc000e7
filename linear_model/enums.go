package linear_model

import (
	"fmt"
	"strings"

	"github.com/ezoic/sml/pkg/errors"
)

// Penalty selects the regularization term added to the gradient.
type Penalty int

// Penalties. The zero value is invalid.
const (
	PenaltyNone Penalty = iota + 1
	PenaltyL1
	PenaltyL2
	PenaltyElasticNet
)

var penaltyNames = map[Penalty]string{
	PenaltyNone:       "None",
	PenaltyL1:         "l1",
	PenaltyL2:         "l2",
	PenaltyElasticNet: "elasticnet",
}

func (p Penalty) String() string {
	if name, ok := penaltyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Penalty(%d)", int(p))
}

// Valid reports whether p is one of the declared penalties.
func (p Penalty) Valid() bool {
	_, ok := penaltyNames[p]
	return ok
}

// ParsePenalty parses "None", "l1", "l2" or "elasticnet" (case-insensitive;
// "none" is accepted too).
func ParsePenalty(s string) (Penalty, error) {
	name := strings.TrimSpace(s)
	for p, n := range penaltyNames {
		if strings.EqualFold(n, name) {
			return p, nil
		}
	}
	return 0, errors.NewValidationError("penalty", "must be one of None, l1, l2, elasticnet", s)
}

// MultiClass selects how the problem is decomposed. Only Binary is
// implemented; Ovr and Multinomial are reserved.
type MultiClass int

// Multi-class modes. The zero value is invalid.
const (
	Binary MultiClass = iota + 1
	Ovr
	Multinomial
)

var multiClassNames = map[MultiClass]string{
	Binary:      "binary",
	Ovr:         "ovr",
	Multinomial: "multinomial",
}

func (m MultiClass) String() string {
	if name, ok := multiClassNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MultiClass(%d)", int(m))
}

// Valid reports whether m is a declared mode, implemented or reserved.
func (m MultiClass) Valid() bool {
	_, ok := multiClassNames[m]
	return ok
}

// ParseMultiClass parses "binary", "ovr" or "multinomial".
func ParseMultiClass(s string) (MultiClass, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range multiClassNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errors.NewValidationError("multi_class", "must be one of binary, ovr, multinomial", s)
}

// Solver selects the optimization algorithm. Only SGD exists.
type Solver int

// Solvers. The zero value is invalid.
const (
	SolverSGD Solver = iota + 1
)

func (s Solver) String() string {
	if s == SolverSGD {
		return "sgd"
	}
	return fmt.Sprintf("Solver(%d)", int(s))
}

// Valid reports whether s is a declared solver.
func (s Solver) Valid() bool { return s == SolverSGD }

// ParseSolver parses "sgd".
func ParseSolver(s string) (Solver, error) {
	if strings.EqualFold(strings.TrimSpace(s), "sgd") {
		return SolverSGD, nil
	}
	return 0, errors.NewValidationError("solver", "only sgd is supported", s)
}
