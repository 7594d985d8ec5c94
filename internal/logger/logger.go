// Package logger configures the application logger. The TUI owns the
// terminal, so logs always go to a file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger writing to the file at path. Debug enables the
// development encoder and debug level.
func New(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and for
// commands that don't need a log file.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// DefaultLogPath places the log file next to the database.
func DefaultLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "retain.log")
}
