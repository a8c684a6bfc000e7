package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smlErrors "github.com/ezoic/sml/pkg/errors"
)

// TestErrorWrappingCompatibility tests Go 1.13+ error wrapping with our custom types
func TestErrorWrappingCompatibility(t *testing.T) {
	originalErr := smlErrors.NewNotFittedError("LogisticRegression", "Predict")

	wrappedErr := fmt.Errorf("pipeline step failed: %w", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Errorf("errors.Is failed to identify wrapped error")
	}
	if !errors.Is(wrappedErr, smlErrors.ErrNotFitted) {
		t.Errorf("errors.Is failed to identify ErrNotFitted")
	}

	var notFittedErr *smlErrors.NotFittedError
	if !errors.As(wrappedErr, &notFittedErr) {
		t.Fatalf("errors.As failed to extract NotFittedError")
	}

	if notFittedErr.ModelName != "LogisticRegression" {
		t.Errorf("expected ModelName 'LogisticRegression', got '%s'", notFittedErr.ModelName)
	}
}

// TestCombinedErrorTypes tests mixing custom and standard errors
func TestCombinedErrorTypes(t *testing.T) {
	stdErr := fmt.Errorf("standard error")

	customErr := smlErrors.NewModelError("TestOp", "test failure", stdErr)

	wrappedErr := fmt.Errorf("operation context: %w", customErr)

	if !errors.Is(wrappedErr, stdErr) {
		t.Errorf("failed to find standard error in chain")
	}

	var modelErr *smlErrors.ModelError
	if !errors.As(wrappedErr, &modelErr) {
		t.Fatalf("failed to extract ModelError")
	}

	if modelErr.Unwrap() != stdErr {
		t.Errorf("ModelError.Unwrap() didn't return expected error")
	}
}

// TestSentinelErrors tests sentinel error patterns
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"model error", smlErrors.NewModelError("Fit", "empty data", smlErrors.ErrEmptyData), smlErrors.ErrEmptyData},
		{"dimension error", smlErrors.NewDimensionError("Fit", 3, 2, 0), smlErrors.ErrDimensionMismatch},
		{"value error", smlErrors.NewValueError("Fit", "labels must be 0 or 1"), smlErrors.ErrInvalidInput},
		{"validation error", smlErrors.NewValidationError("C", "must be > 0", -1.0), smlErrors.ErrInvalidParameter},
		{"not implemented", smlErrors.NewNotImplementedError("Predict", "multinomial"), smlErrors.ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, smlErrors.Is(tt.err, tt.sentinel))

			wrapped := smlErrors.Wrap(tt.err, "preprocessing failed")
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.True(t, smlErrors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestValidationErrorDoesNotMatchOtherSentinels(t *testing.T) {
	err := smlErrors.NewValidationError("epochs", "must be > 0", 0)

	assert.False(t, errors.Is(err, smlErrors.ErrNotImplemented))
	assert.False(t, errors.Is(err, smlErrors.ErrDimensionMismatch))
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer smlErrors.Recover(&err, "TestRecover")
		panic("boom")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TestRecover")
	assert.Contains(t, err.Error(), "boom")
}

func TestRecoverKeepsPanicError(t *testing.T) {
	cause := smlErrors.NewDimensionError("mul", 2, 3, 1)
	run := func() (err error) {
		defer smlErrors.Recover(&err, "TestRecover")
		panic(cause)
	}

	err := run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, smlErrors.ErrDimensionMismatch))
}

func TestRecoverNoPanic(t *testing.T) {
	run := func() (err error) {
		defer smlErrors.Recover(&err, "TestRecover")
		return nil
	}

	assert.NoError(t, run())
}

func TestWarnHandler(t *testing.T) {
	var got []error
	prev := smlErrors.SetWarningHandler(func(w error) { got = append(got, w) })
	defer smlErrors.SetWarningHandler(prev)

	smlErrors.Warn(smlErrors.NewDataWarning("LogisticRegression.Fit", "2 trailing rows dropped"))
	smlErrors.Warn(nil)

	require.Len(t, got, 1)
	assert.Equal(t, "sml: LogisticRegression.Fit: 2 trailing rows dropped", got[0].Error())
}
