// Package logging configura o logger estruturado (zap) usado pelos componentes do pipeline.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level"`

	// Format is the output format (console, json)
	Format string `json:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `json:"output"`
}

// DefaultConfig returns the settings used until Initialize is called.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Initialize builds the global logger from cfg.
func Initialize(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writeSyncer zapcore.WriteSyncer
	switch cfg.Output {
	case "", "stderr":
		writeSyncer = zapcore.AddSync(os.Stderr)
	case "stdout":
		writeSyncer = zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writeSyncer = zapcore.AddSync(file)
	}

	SetLogger(zap.New(zapcore.NewCore(encoder, writeSyncer, level)))
	return nil
}

// SetLogger replaces the global logger. Nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the global logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Named returns a child logger for a pipeline component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes the logger
func Sync() {
	_ = L().Sync()
}
