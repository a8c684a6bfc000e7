package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ezoic/sml/pkg/errors"
)

// ModelWeights is a serializable snapshot of a trained linear model.
type ModelWeights struct {
	// ModelType names the model, e.g. "LogisticRegression".
	ModelType string `json:"model_type"`

	// Version is the snapshot format version.
	Version string `json:"version"`

	// Coefficients holds one weight per feature, bias excluded.
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the bias weight.
	Intercept float64 `json:"intercept"`

	// Hyperparameters holds the model configuration.
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata holds training statistics.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted reports whether the model was trained.
	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the weights as indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal model weights")
	}
	return data, nil
}

// FromJSON replaces mw with the weights decoded from data.
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "failed to unmarshal model weights")
	}
	return nil
}

// Validate checks that the snapshot is internally consistent.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValueError("ModelWeights.Validate", "unfitted model should not have coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValueError("ModelWeights.Validate", "fitted model must have coefficients")
	}
	return nil
}

// Clone returns a deep copy of mw. Map values are copied shallowly.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

// Hash returns the hex sha256 of the JSON encoding of mw. encoding/json
// sorts map keys, so equal snapshots hash equally.
func (mw *ModelWeights) Hash() (string, error) {
	data, err := json.Marshal(mw)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal model weights")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
