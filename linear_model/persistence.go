package linear_model

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/approx"
	"github.com/ezoic/sml/core/model"
	"github.com/ezoic/sml/pkg/errors"
)

const weightsVersion = "1.0"

// ExportWeights returns a snapshot of the hyperparameters and, if fitted,
// the trained weights.
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()

	nFeatures, nSamples := lr.state.GetDimensions()
	mw := &model.ModelWeights{
		ModelType:       modelName,
		Version:         weightsVersion,
		Hyperparameters: lr.params.toMap(),
		Metadata: map[string]interface{}{
			"n_features": nFeatures,
			"n_samples":  nSamples,
		},
		IsFitted: lr.state.IsFitted() && !lr.weights.IsEmpty(),
	}
	if mw.IsFitted {
		n := lr.weights.Len() - 1
		mw.Coefficients = make([]float64, n)
		for i := 0; i < n; i++ {
			mw.Coefficients[i] = lr.weights.AtVec(i)
		}
		mw.Intercept = lr.weights.AtVec(n)
	}
	return mw, nil
}

// ImportWeights replaces the configuration and weights with mw. Nothing is
// changed if mw is invalid.
func (lr *LogisticRegression) ImportWeights(mw *model.ModelWeights) error {
	if mw == nil {
		return errors.NewValueError("LogisticRegression.ImportWeights", "weights cannot be nil")
	}
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != modelName {
		return errors.NewValueError("LogisticRegression.ImportWeights",
			"expected model type "+modelName+", got "+mw.ModelType)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	params, err := lr.params.withMap(mw.Hyperparameters)
	if err != nil {
		return err
	}
	if err := params.validate(); err != nil {
		return err
	}

	lr.params = params
	if !mw.IsFitted {
		lr.weights = &mat.VecDense{}
		lr.state.Reset()
		return nil
	}

	n := len(mw.Coefficients)
	w := mat.NewVecDense(n+1, nil)
	for i, c := range mw.Coefficients {
		w.SetVec(i, c)
	}
	w.SetVec(n, mw.Intercept)
	lr.weights = w

	nSamples := 0
	if v, ok := mw.Metadata["n_samples"]; ok {
		nSamples, _ = toInt("n_samples", v)
	}
	lr.state.SetDimensions(n, nSamples)
	lr.state.SetFitted()
	return nil
}

// GetWeightHash returns a hash of the exported snapshot. Two models with the
// same configuration and weights hash equally; training metadata such as
// n_samples is not part of the hash.
func (lr *LogisticRegression) GetWeightHash() (string, error) {
	mw, err := lr.ExportWeights()
	if err != nil {
		return "", err
	}
	mw.Metadata = nil
	return mw.Hash()
}

// gobSnapshot is the gob wire form of a LogisticRegression.
type gobSnapshot struct {
	Params   hyperParams
	Weights  []float64
	NSamples int
	Fitted   bool
}

// GobEncode implements gob.GobEncoder.
func (lr *LogisticRegression) GobEncode() ([]byte, error) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()

	snap := gobSnapshot{Params: lr.params}
	if lr.state != nil && lr.state.IsFitted() && !lr.weights.IsEmpty() {
		snap.Fitted = true
		snap.Weights = mat.Col(nil, 0, lr.weights)
		_, snap.NSamples = lr.state.GetDimensions()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, errors.Wrap(err, "failed to encode LogisticRegression")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. It may be called on a zero value.
func (lr *LogisticRegression) GobDecode(data []byte) error {
	var snap gobSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return errors.Wrap(err, "failed to decode LogisticRegression")
	}
	if err := snap.Params.validate(); err != nil {
		return err
	}
	if snap.Fitted && len(snap.Weights) < 2 {
		return errors.NewValueError("LogisticRegression.GobDecode", "fitted model needs at least one feature weight and a bias")
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()

	if lr.state == nil {
		lr.state = model.NewStateManager()
	}
	if lr.logger == nil {
		lr.logger = defaultLogger()
	}
	lr.params = snap.Params
	if !snap.Fitted {
		lr.weights = &mat.VecDense{}
		lr.state.Reset()
		return nil
	}
	lr.weights = mat.NewVecDense(len(snap.Weights), snap.Weights)
	lr.state.SetDimensions(len(snap.Weights)-1, snap.NSamples)
	lr.state.SetFitted()
	return nil
}

// ExportToSKLearn writes the model as a scikit-learn compatible JSON
// envelope to filename.
func (lr *LogisticRegression) ExportToSKLearn(filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", filename)
		}
	}()
	return lr.ExportToSKLearnWriter(file)
}

// ExportToSKLearnWriter writes the JSON envelope to w. The model must be
// fitted.
func (lr *LogisticRegression) ExportToSKLearnWriter(w io.Writer) error {
	if !lr.IsFitted() {
		return errors.NewNotFittedError(modelName, "ExportToSKLearn")
	}
	mw, err := lr.ExportWeights()
	if err != nil {
		return err
	}
	cfg, err := defaultParams().withMap(mw.Hyperparameters)
	if err != nil {
		return err
	}
	params := model.SKLearnLogisticRegressionParams{
		Coef:       mw.Coefficients,
		Intercept:  mw.Intercept,
		NFeatures:  len(mw.Coefficients),
		Classes:    []int{0, 1},
		Penalty:    cfg.Penalty.String(),
		C:          cfg.C,
		L1Ratio:    &cfg.L1Ratio,
		MultiClass: cfg.MultiClass.String(),
		SigType:    cfg.SigType.String(),
	}
	return model.ExportSKLearnModel(modelName, params, w)
}

// LoadFromSKLearn loads weights from a JSON envelope file written by
// ExportToSKLearn or by Python tooling.
func (lr *LogisticRegression) LoadFromSKLearn(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer func() { _ = file.Close() }()
	return lr.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader loads weights from a JSON envelope. Fields missing
// from the envelope keep their current values; "auto" multi_class is read
// as binary since coef has a single row.
func (lr *LogisticRegression) LoadFromSKLearnReader(r io.Reader) error {
	m, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return err
	}
	p, err := model.LoadLogisticRegressionParams(m)
	if err != nil {
		return err
	}

	params := lr.config()
	if p.Penalty != "" {
		if params.Penalty, err = ParsePenalty(p.Penalty); err != nil {
			return err
		}
	}
	if p.SigType != "" {
		if params.SigType, err = approx.ParseSigType(p.SigType); err != nil {
			return err
		}
	}
	if mc := strings.ToLower(p.MultiClass); mc != "" && mc != "auto" {
		if params.MultiClass, err = ParseMultiClass(mc); err != nil {
			return err
		}
	}
	if p.C != 0 {
		params.C = p.C
	}
	if p.L1Ratio != nil {
		params.L1Ratio = *p.L1Ratio
	}

	return lr.ImportWeights(&model.ModelWeights{
		ModelType:       modelName,
		Version:         weightsVersion,
		Coefficients:    p.Coef,
		Intercept:       p.Intercept,
		Hyperparameters: params.toMap(),
		IsFitted:        true,
	})
}
