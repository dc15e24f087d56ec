package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances that write diagnostics to a single sink.
// Reports own standard output, so the sink defaults to standard error.
type LoggerFactory struct {
	diagnosticsOutput io.Writer
}

// NewLoggerFactory constructs a factory writing to standard error.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{diagnosticsOutput: os.Stderr}
}

// WithOutput returns a copy of the factory that writes diagnostics to the provided writer.
func (factory *LoggerFactory) WithOutput(diagnosticsOutput io.Writer) *LoggerFactory {
	if diagnosticsOutput == nil {
		diagnosticsOutput = os.Stderr
	}
	return &LoggerFactory{diagnosticsOutput: diagnosticsOutput}
}

// ParseLogLevel resolves a case-insensitive level name.
func ParseLogLevel(requestedLogLevel string) (LogLevel, zapcore.Level, error) {
	normalizedLevel := LogLevel(strings.ToLower(strings.TrimSpace(requestedLogLevel)))
	zapLevel, levelExists := logLevelMapping[normalizedLevel]
	if !levelExists {
		return "", zapcore.InfoLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
	return normalizedLevel, zapLevel, nil
}

// ParseLogFormat resolves a case-insensitive format name.
func ParseLogFormat(requestedLogFormat string) (LogFormat, error) {
	normalizedFormat := LogFormat(strings.ToLower(strings.TrimSpace(requestedLogFormat)))
	switch normalizedFormat {
	case LogFormatStructured, LogFormatConsole:
		return normalizedFormat, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	_, zapLevel, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}

	logFormat, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	diagnosticsOutput := factory.diagnosticsOutput
	if diagnosticsOutput == nil {
		diagnosticsOutput = os.Stderr
	}
	sink := zapcore.Lock(zapcore.AddSync(diagnosticsOutput))

	core := zapcore.NewCore(newDiagnosticsEncoder(logFormat), sink, zap.NewAtomicLevelAt(zapLevel))
	return zap.New(core, zap.ErrorOutput(sink)), nil
}

func newDiagnosticsEncoder(logFormat LogFormat) zapcore.Encoder {
	encoderConfiguration := zap.NewProductionEncoderConfig()
	if logFormat == LogFormatConsole {
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfiguration)
	}
	return zapcore.NewJSONEncoder(encoderConfiguration)
}
