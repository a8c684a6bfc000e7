package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ezoic/sml/pkg/errors"
)

// SKLearnFormatVersion is the only envelope version understood.
const SKLearnFormatVersion = "1.0"

// SKLearnModelSpec is the metadata of an exchanged model.
type SKLearnModelSpec struct {
	Name           string `json:"name"`                      // model name, e.g. "LogisticRegression"
	FormatVersion  string `json:"format_version"`            // envelope version
	SKLearnVersion string `json:"sklearn_version,omitempty"` // producing scikit-learn version
}

// SKLearnModel is the JSON envelope shared with Python tooling.
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// SKLearnLogisticRegressionParams mirrors the fitted attributes of a binary
// scikit-learn LogisticRegression (coef_ has a single row).
type SKLearnLogisticRegressionParams struct {
	Coef       []float64 `json:"coef"`
	Intercept  float64   `json:"intercept"`
	NFeatures  int       `json:"n_features"`
	Classes    []int     `json:"classes,omitempty"`
	Penalty    string    `json:"penalty,omitempty"`
	C          float64   `json:"C,omitempty"`
	L1Ratio    *float64  `json:"l1_ratio,omitempty"`
	MultiClass string    `json:"multi_class,omitempty"`
	SigType    string    `json:"sig_type,omitempty"`
}

// LoadSKLearnModelFromFile reads an envelope from filename.
func LoadSKLearnModelFromFile(filename string) (*SKLearnModel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer func() { _ = file.Close() }()

	return LoadSKLearnModelFromReader(file)
}

// LoadSKLearnModelFromReader reads and validates an envelope from r.
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var m SKLearnModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON")
	}

	if m.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "format_version is required")
	}
	if m.ModelSpec.FormatVersion != SKLearnFormatVersion {
		return nil, errors.NewValueError("LoadSKLearnModel",
			fmt.Sprintf("unsupported format version: %s", m.ModelSpec.FormatVersion))
	}
	if m.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "model name is required")
	}

	return &m, nil
}

// LoadLogisticRegressionParams decodes and checks the params of a
// LogisticRegression envelope.
func LoadLogisticRegressionParams(m *SKLearnModel) (*SKLearnLogisticRegressionParams, error) {
	if m.ModelSpec.Name != "LogisticRegression" {
		return nil, errors.NewValueError("LoadLogisticRegressionParams",
			fmt.Sprintf("expected LogisticRegression, got %s", m.ModelSpec.Name))
	}

	var params SKLearnLogisticRegressionParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal params")
	}

	if len(params.Coef) == 0 {
		return nil, errors.NewValueError("LoadLogisticRegressionParams", "coef cannot be empty")
	}
	if params.NFeatures != len(params.Coef) {
		return nil, errors.NewDimensionError("LoadLogisticRegressionParams",
			params.NFeatures, len(params.Coef), 1)
	}
	if len(params.Classes) > 0 && (len(params.Classes) != 2 || params.Classes[0] != 0 || params.Classes[1] != 1) {
		return nil, errors.NewValueError("LoadLogisticRegressionParams",
			fmt.Sprintf("only binary {0, 1} classes are supported, got %v", params.Classes))
	}

	return &params, nil
}

// ExportSKLearnModel writes params wrapped in an envelope named modelName.
func ExportSKLearnModel(modelName string, params interface{}, w io.Writer) error {
	m := SKLearnModel{
		ModelSpec: SKLearnModelSpec{
			Name:          modelName,
			FormatVersion: SKLearnFormatVersion,
		},
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}
	m.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}
