// Package logging provides the structured logger of the haushalt CLI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger *zap.Logger

	closeOutput func()
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level
	Level string `toml:"level"`

	// Format is the output format (json, console)
	Format string `toml:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `toml:"output"`

	// Development enables development mode
	Development bool `toml:"development"`
}

// DefaultConfig logs info and above to stderr, keeping stdout free for the
// audit report.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// Validate reports an unknown level or format.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.Format)
	}
	return nil
}

// New builds a logger from cfg without touching the globals. The returned
// func closes the log file, if Output names one.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.ToLower(cfg.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	out := cfg.Output
	if out == "" {
		out = "stderr"
	}
	writeSyncer, closeOut, err := zap.Open(out)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output: %w", err)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), closeOut, nil
	}
	return zap.New(core), closeOut, nil
}

// Initialize sets up the global logger, releasing the output of a previous
// Initialize.
func Initialize(cfg Config) error {
	l, closeOut, err := New(cfg)
	if err != nil {
		return err
	}
	Close()
	Logger = l
	closeOutput = closeOut
	return nil
}

// Close flushes the global logger and closes its log file.
func Close() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if closeOutput != nil {
		closeOutput()
		closeOutput = nil
	}
}

// Named returns a child logger for one pipeline stage.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

// Info logs at info level
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Warn logs at warn level
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func init() {
	Logger = zap.NewNop()
}
