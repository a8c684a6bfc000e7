// Package pipeline chains preprocessing steps with a final classifier, so
// that the same scaling learned at training time is applied at inference.
package pipeline

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/sml/core/model"
	"github.com/ezoic/sml/pkg/errors"
	"github.com/ezoic/sml/pkg/log"
)

// Step is a named pipeline stage. Every step but the last must be a
// model.Transformer; the last must be a model.Classifier.
type Step struct {
	Name      string
	Estimator interface{}
}

// Pipeline fits its transformers in order, each on the output of the
// previous one, then fits the classifier on the transformed data.
type Pipeline struct {
	state  *model.StateManager
	logger log.Logger

	steps        []Step
	transformers []model.Transformer
	final        model.Classifier
}

// New validates the steps and builds an unfitted pipeline.
func New(steps ...Step) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, errors.NewValidationError("steps", "pipeline needs at least a final classifier", 0)
	}

	seen := make(map[string]bool, len(steps))
	transformers := make([]model.Transformer, 0, len(steps)-1)
	for i, step := range steps {
		if step.Name == "" {
			return nil, errors.NewValidationError("steps", fmt.Sprintf("step %d has no name", i), step.Name)
		}
		if seen[step.Name] {
			return nil, errors.NewValidationError("steps", "step names must be unique", step.Name)
		}
		seen[step.Name] = true

		if i == len(steps)-1 {
			break
		}
		t, ok := step.Estimator.(model.Transformer)
		if !ok {
			return nil, errors.NewValidationError("steps", "intermediate steps must be transformers", step.Name)
		}
		transformers = append(transformers, t)
	}

	last := steps[len(steps)-1]
	final, ok := last.Estimator.(model.Classifier)
	if !ok {
		return nil, errors.NewValidationError("steps", "final step must be a classifier", last.Name)
	}

	return &Pipeline{
		state:        model.NewStateManager(),
		logger:       log.GetLoggerWithName("pipeline").With(log.ComponentKey, "Pipeline"),
		steps:        append([]Step(nil), steps...),
		transformers: transformers,
		final:        final,
	}, nil
}

// Steps returns a copy of the steps.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// NamedStep returns the estimator registered under name.
func (p *Pipeline) NamedStep(name string) (interface{}, bool) {
	for _, s := range p.steps {
		if s.Name == name {
			return s.Estimator, true
		}
	}
	return nil, false
}

// IsFitted reports whether Fit has succeeded.
func (p *Pipeline) IsFitted() bool { return p.state.IsFitted() }

// Fit fits every step in order.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	start := time.Now()
	Xt := X
	for i, t := range p.transformers {
		name := p.steps[i].Name
		if err := t.Fit(Xt); err != nil {
			return errors.Wrapf(err, "failed to fit step %q", name)
		}
		var err error
		if Xt, err = t.Transform(Xt); err != nil {
			return errors.Wrapf(err, "failed to transform at step %q", name)
		}
	}

	finalName := p.steps[len(p.steps)-1].Name
	if err := p.final.Fit(Xt, y); err != nil {
		return errors.Wrapf(err, "failed to fit final step %q", finalName)
	}

	rows, cols := X.Dims()
	p.state.SetDimensions(cols, rows)
	p.state.SetFitted()

	p.logger.Info("Pipeline fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// transform runs X through every transformer.
func (p *Pipeline) transform(X mat.Matrix, method string) (mat.Matrix, error) {
	if err := p.state.RequireFitted("Pipeline", method); err != nil {
		return nil, err
	}
	Xt := X
	for i, t := range p.transformers {
		var err error
		if Xt, err = t.Transform(Xt); err != nil {
			return nil, errors.Wrapf(err, "failed to transform at step %q", p.steps[i].Name)
		}
	}
	return Xt, nil
}

// Predict returns the classifier's labels for X.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	Xt, err := p.transform(X, "Predict")
	if err != nil {
		return nil, err
	}
	return p.final.Predict(Xt)
}

// PredictProba returns the classifier's probabilities for X.
func (p *Pipeline) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	Xt, err := p.transform(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	return p.final.PredictProba(Xt)
}

// DecisionFunction returns the classifier's raw scores for X.
func (p *Pipeline) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	Xt, err := p.transform(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	return p.final.DecisionFunction(Xt)
}

// Score returns the classifier's accuracy on X and y.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	Xt, err := p.transform(X, "Score")
	if err != nil {
		return 0, err
	}
	return p.final.Score(Xt, y)
}

// GetParams returns the parameters of every step that exposes them, keyed
// "<step>__<param>".
func (p *Pipeline) GetParams() map[string]interface{} {
	params := make(map[string]interface{})
	for _, step := range p.steps {
		g, ok := step.Estimator.(interface {
			GetParams() map[string]interface{}
		})
		if !ok {
			continue
		}
		for k, v := range g.GetParams() {
			params[step.Name+"__"+k] = v
		}
	}
	return params
}
