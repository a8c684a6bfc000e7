package model_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/sml/core/model"
)

// snapshot is a minimal gob-encodable model.
type snapshot struct {
	Weights []float64
	Bias    float64
	State   *model.StateManager
}

func TestSaveLoadModel(t *testing.T) {
	state := model.NewStateManager()
	state.SetDimensions(2, 10)
	state.SetFitted()
	original := &snapshot{Weights: []float64{0.5, -1.5}, Bias: 0.25, State: state}

	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, model.SaveModel(original, path))

	var loaded snapshot
	require.NoError(t, model.LoadModel(&loaded, path))
	assert.Equal(t, original.Weights, loaded.Weights)
	assert.Equal(t, original.Bias, loaded.Bias)
	require.NotNil(t, loaded.State)
	assert.True(t, loaded.State.IsFitted())

	nFeatures, nSamples := loaded.State.GetDimensions()
	assert.Equal(t, 2, nFeatures)
	assert.Equal(t, 10, nSamples)
}

func TestSaveLoadModelToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, model.SaveModelToWriter(&snapshot{Weights: []float64{1}}, &buf))

	var loaded snapshot
	require.NoError(t, model.LoadModelFromReader(&loaded, &buf))
	assert.Equal(t, []float64{1}, loaded.Weights)
}

func TestPersistenceErrors(t *testing.T) {
	var s snapshot
	assert.Error(t, model.LoadModel(&s, filepath.Join(t.TempDir(), "missing.gob")))
	assert.Error(t, model.SaveModel(&s, filepath.Join(t.TempDir(), "no", "such", "dir", "m.gob")))
	assert.Error(t, model.SaveModelToWriter(nil, &bytes.Buffer{}))
	assert.Error(t, model.LoadModelFromReader(&s, bytes.NewReader([]byte("not gob"))))
}
