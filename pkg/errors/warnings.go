package errors

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ConvergenceWarning reports that an iterative algorithm stopped early or did
// not reach its tolerance.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

// NewConvergenceWarning creates a ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("sml: %s: %s after %d iterations", w.Algorithm, w.Message, w.Iterations)
}

// DataWarning reports input data that was accepted but only partly used.
type DataWarning struct {
	Op      string
	Message string
}

// NewDataWarning creates a DataWarning.
func NewDataWarning(op, message string) *DataWarning {
	return &DataWarning{Op: op, Message: message}
}

func (w *DataWarning) Error() string {
	return fmt.Sprintf("sml: %s: %s", w.Op, w.Message)
}

var (
	warnMu      sync.RWMutex
	warnHandler = defaultWarnHandler
)

func defaultWarnHandler(w error) {
	log.Warn().Err(w).Msg("sml warning")
}

// Warn reports a non-fatal condition. By default warnings go to the global
// zerolog logger.
func Warn(w error) {
	if w == nil {
		return
	}
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	h(w)
}

// SetWarningHandler replaces the warning handler and returns the previous
// one. Passing nil restores the default.
func SetWarningHandler(h func(error)) func(error) {
	warnMu.Lock()
	defer warnMu.Unlock()
	prev := warnHandler
	if h == nil {
		h = defaultWarnHandler
	}
	warnHandler = h
	return prev
}
