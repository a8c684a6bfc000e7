package model

import (
	"sync"

	"github.com/ezoic/sml/pkg/errors"
)

// EstimatorState is the learning state of a model.
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained.
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained.
	Fitted
)

// String returns "not_fitted" or "fitted".
func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// StateManager manages the fitted state of a model in a thread-safe manner.
type StateManager struct {
	mu sync.RWMutex

	// Public for gob encoding.
	State     EstimatorState
	NFeatures int
	NSamples  int
}

// NewStateManager creates a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{State: NotFitted}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State == Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = Fitted
}

// Reset returns to the NotFitted state and clears the dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = NotFitted
	s.NFeatures = 0
	s.NSamples = 0
}

// SetDimensions records the number of features and samples seen by Fit.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the number of features and samples seen by Fit.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model is not fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
