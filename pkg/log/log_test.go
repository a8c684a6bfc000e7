package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smlErrors "github.com/ezoic/sml/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelDisabled},
		{"chatty", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToLogLevel(tt.in))
		})
	}
}

func TestZerologProvider_NamedLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProviderWithWriter(&buf, LevelDebug)

	logger := p.GetLoggerWithName("linear_model").With(ModelNameKey, "LogisticRegression")
	logger.Info("Training started", SamplesKey, 10, FeaturesKey, 2)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "Training started", lines[0]["message"])
	assert.Equal(t, "linear_model", lines[0][LoggerNameKey])
	assert.Equal(t, "LogisticRegression", lines[0][ModelNameKey])
	assert.EqualValues(t, 10, lines[0][SamplesKey])
	assert.EqualValues(t, 2, lines[0][FeaturesKey])
}

func TestZerologProvider_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProviderWithWriter(&buf, LevelWarn)

	logger := p.GetLogger()
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown", "err", smlErrors.ErrEmptyData)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "empty data", lines[1]["err"])
}

func TestGetLoggerWithNameUsesSetup(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, "info")
	defer SetupLoggerWithWriter(&bytes.Buffer{}, "info")

	GetLoggerWithName("test").Info("hello", EpochKey, 3)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "test", lines[0][LoggerNameKey])
	assert.EqualValues(t, 3, lines[0][EpochKey])
}

func TestLogErrorAddsCode(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, "debug")
	defer SetupLoggerWithWriter(&bytes.Buffer{}, "info")

	LogError(smlErrors.NewNotFittedError("LogisticRegression", "Predict"), "predict failed")
	LogError(nil, "ignored")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, ErrorNotFitted, lines[0][ErrorCodeKey])
	assert.Equal(t, "predict failed", lines[0]["message"])
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrorNotImplemented, ErrorCode(smlErrors.NewUnsupportedParameterError("multi_class", "ovr")))
	assert.Equal(t, ErrorInvalidParameter, ErrorCode(smlErrors.NewValidationError("C", "must be > 0", 0.0)))
	assert.Equal(t, ErrorDimensionMismatch, ErrorCode(smlErrors.NewDimensionError("op", 1, 2, 1)))
	assert.Equal(t, "", ErrorCode(smlErrors.New("plain")))
}
