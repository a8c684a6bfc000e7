// Package log provides structured logging for sml on top of zerolog.
//
// Two styles are available. Library code obtains a named Logger and logs
// messages with key/value pairs drawn from the attribute keys in this
// package:
//
//	logger := log.GetLoggerWithName("linear_model")
//	logger.Info("Training started", log.SamplesKey, 1000, log.FeaturesKey, 4)
//
// Applications that want the full zerolog API use GetLogger:
//
//	log.SetupLogger("debug")
//	log.GetLogger().Warn().Err(err).Msg("prediction failed")
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	smlErrors "github.com/ezoic/sml/pkg/errors"
)

// LogLevel is the minimum severity a logger emits.
type LogLevel int

// Log levels in increasing severity.
const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelDisabled
)

// ToLogLevel parses a level name. Unknown names map to LevelInfo.
func ToLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return LevelDebug
	case "info", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error", "fatal":
		return LevelError
	case "disabled", "off", "none":
		return LevelDisabled
	default:
		return LevelInfo
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// Logger is the structured logger used by models. fields are alternating
// keys and values.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider hands out Logger instances sharing one output and level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level LogLevel)
}

// ZerologProvider is a LoggerProvider backed by zerolog.
type ZerologProvider struct {
	mu   sync.RWMutex
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing JSON lines to stderr.
func NewZerologProvider(level LogLevel) *ZerologProvider {
	return NewZerologProviderWithWriter(os.Stderr, level)
}

// NewZerologProviderWithWriter creates a provider writing JSON lines to w.
func NewZerologProviderWithWriter(w io.Writer, level LogLevel) *ZerologProvider {
	return &ZerologProvider{
		base: zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// GetLogger returns an unnamed Logger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{z: p.base}
}

// GetLoggerWithName returns a Logger tagged with name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &zerologLogger{z: p.base.With().Str(LoggerNameKey, name).Logger()}
}

// SetLevel changes the level of loggers created afterwards.
func (p *ZerologProvider) SetLevel(level LogLevel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(level.zerolog())
}

type zerologLogger struct {
	z zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	l.emit(l.z.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	l.emit(l.z.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	l.emit(l.z.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	l.emit(l.z.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zerologLogger{z: l.z.With().Fields(pairs(fields)).Logger()}
}

func (l *zerologLogger) emit(e *zerolog.Event, msg string, fields []interface{}) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(pairs(fields))
	}
	e.Msg(msg)
}

// pairs turns a key/value list into a map. A trailing key without a value
// is kept with a nil value; an error value is stored under its message.
func pairs(fields []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		var v interface{}
		if i+1 < len(fields) {
			v = fields[i+1]
		}
		if err, isErr := v.(error); isErr {
			v = err.Error()
		}
		m[key] = v
	}
	return m
}

var (
	globalMu       sync.RWMutex
	globalLogger   = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	globalProvider LoggerProvider
)

// SetupLogger configures the global logger with a human readable console
// writer on stderr and the given level, and resets the global provider to
// share it.
func SetupLogger(level string) {
	SetupLoggerWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// SetupLoggerWithWriter is SetupLogger with an explicit writer.
func SetupLoggerWithWriter(w io.Writer, level string) {
	lvl := ToLogLevel(level)

	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = zerolog.New(w).Level(lvl.zerolog()).With().Timestamp().Logger()
	globalProvider = &ZerologProvider{base: globalLogger}
}

// SetProvider replaces the global provider used by GetLoggerWithName.
func SetProvider(p LoggerProvider) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalProvider = p
}

// GetLogger returns the global zerolog logger.
func GetLogger() *zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	l := globalLogger
	return &l
}

// GetLoggerWithName returns a named Logger from the global provider.
func GetLoggerWithName(name string) Logger {
	globalMu.RLock()
	p := globalProvider
	globalMu.RUnlock()

	if p == nil {
		globalMu.Lock()
		if globalProvider == nil {
			globalProvider = &ZerologProvider{base: globalLogger}
		}
		p = globalProvider
		globalMu.Unlock()
	}
	return p.GetLoggerWithName(name)
}

// LogError logs err at error level on the global logger, tagged with its
// error code when err belongs to the sml taxonomy.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	e := GetLogger().Error().Err(err)
	if code := ErrorCode(err); code != "" {
		e = e.Str(ErrorCodeKey, code)
	}
	e.Msg(msg)
}

// ErrorCode maps an error to one of the standard error codes, or "".
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case smlErrors.Is(err, smlErrors.ErrNotFitted):
		return ErrorNotFitted
	case smlErrors.Is(err, smlErrors.ErrDimensionMismatch):
		return ErrorDimensionMismatch
	case smlErrors.Is(err, smlErrors.ErrEmptyData):
		return ErrorEmptyData
	case smlErrors.Is(err, smlErrors.ErrNotImplemented):
		return ErrorNotImplemented
	case smlErrors.Is(err, smlErrors.ErrInvalidParameter):
		return ErrorInvalidParameter
	case smlErrors.Is(err, smlErrors.ErrInvalidInput):
		return ErrorInvalidInput
	default:
		return ""
	}
}
