// Package errors provides the error taxonomy used across sml.
//
// Every failure surfaced by the library falls into one of three families:
//
//   - configuration errors (*ValidationError): an invalid hyperparameter was
//     passed to a constructor. They match ErrInvalidParameter.
//   - contract errors (*DimensionError, *ValueError, *NotFittedError and
//     *ModelError): the caller passed arrays of the wrong shape or used a
//     model in the wrong state.
//   - unsupported features (*NotImplementedError): a declared but
//     unimplemented code path was requested. They match ErrNotImplemented.
//
// The package re-exports the constructors of github.com/cockroachdb/errors so
// that callers get stack traces and safe details without importing it
// directly:
//
//	if err := clf.Fit(X, y); err != nil {
//		return errors.Wrap(err, "training failed")
//	}
//
// All error types implement Unwrap, so errors.Is and errors.As from either
// this package or the standard library work through wrapping.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Match them with Is.
var (
	// ErrNotImplemented marks declared but unimplemented features.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotFitted is returned when a model is used before Fit.
	ErrNotFitted = errors.New("model not fitted")

	// ErrEmptyData is returned when an input matrix has no rows or columns.
	ErrEmptyData = errors.New("empty data")

	// ErrDimensionMismatch is returned when array shapes disagree.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidInput is returned for malformed input values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter is returned for invalid hyperparameters.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// New creates an error with a stack trace.
func New(msg string) error { return errors.New(msg) }

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error { return errors.Newf(format, args...) }

// Wrap annotates err with msg. Wrap returns nil if err is nil.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf annotates err with a formatted message. Wrapf returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error { return errors.WithStack(err) }

// Is reports whether any error in err's chain matches reference.
func Is(err, reference error) bool { return errors.Is(err, reference) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap returns the next error in err's chain.
func Unwrap(err error) error { return errors.UnwrapOnce(err) }

// DimensionError reports a shape mismatch between two arrays.
type DimensionError struct {
	Op       string // operation that detected the mismatch
	Expected int    // expected size
	Got      int    // actual size
	Axis     int    // 0 for rows, 1 for columns
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("sml: %s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// NotFittedError reports that a model method was called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("sml: %s is not fitted: call Fit before %s", e.ModelName, e.Method)
}

// Unwrap returns ErrNotFitted.
func (e *NotFittedError) Unwrap() error { return ErrNotFitted }

// ValueError reports an input value the operation cannot handle.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("sml: %s: %s", e.Op, e.Message)
}

// Unwrap returns ErrInvalidInput.
func (e *ValueError) Unwrap() error { return ErrInvalidInput }

// ValidationError reports an invalid hyperparameter or argument.
//
// A ValidationError always matches ErrInvalidParameter. When Err is set it
// also matches whatever Err matches, which is how unsupported options are
// reported as both configuration and not-implemented errors.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
	Err       error
}

// NewValidationError creates a ValidationError.
func NewValidationError(paramName, reason string, value interface{}) *ValidationError {
	return &ValidationError{ParamName: paramName, Reason: reason, Value: value}
}

// NewUnsupportedParameterError creates a ValidationError for a parameter
// value that is declared but not implemented.
func NewUnsupportedParameterError(paramName string, value interface{}) *ValidationError {
	return &ValidationError{
		ParamName: paramName,
		Reason:    "value is not supported",
		Value:     value,
		Err:       NewNotImplementedError("configuration", fmt.Sprintf("%s=%v", paramName, value)),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sml: invalid parameter %s=%v: %s", e.ParamName, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameter.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidParameter }

// Unwrap returns the underlying cause, or ErrInvalidParameter.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidParameter
}

// ModelError wraps a lower level error with the operation and failure kind.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

// NewModelError creates a ModelError.
func NewModelError(op, kind string, err error) *ModelError {
	return &ModelError{Op: op, Kind: kind, Err: err}
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("sml: %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the wrapped error.
func (e *ModelError) Unwrap() error { return e.Err }

// NotImplementedError reports a declared but unimplemented feature.
type NotImplementedError struct {
	Op      string
	Feature string
}

// NewNotImplementedError creates a NotImplementedError.
func NewNotImplementedError(op, feature string) *NotImplementedError {
	return &NotImplementedError{Op: op, Feature: feature}
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("sml: %s: %s is not implemented", e.Op, e.Feature)
}

// Unwrap returns ErrNotImplemented.
func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

// Recover converts a panic into an error stored in *errp. It must be deferred
// directly:
//
//	func (m *Model) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "Model.Fit")
//		...
//	}
//
// gonum/mat reports shape violations by panicking with mat.Error; those
// surface as ordinary errors instead of crashing the caller.
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}

	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = errors.Newf("%v", v)
	}
	*errp = errors.Wrapf(cause, "%s: recovered from panic", op)
}
