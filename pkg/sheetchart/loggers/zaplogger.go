// Package loggers builds the zap loggers used by the CLI and server.
package loggers

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// New returns a console logger, teed into a rotating JSON log file when
// logFile is set.
func New(debug bool, logFile string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create zap logger: %w", err)
	}
	if logFile == "" {
		return logger, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log path '%s': %w", filepath.Dir(logFile), err)
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     60, // days
	})
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		w,
		level,
	)

	return zap.New(zapcore.NewTee(logger.Core(), fileCore)), nil
}

// Sync flushes logger, ignoring the errors stderr/stdout return on sync.
func Sync(logger *zap.Logger) {
	if logger != nil {
		// https://github.com/uber-go/zap/issues/880
		_ = logger.Sync()
	}
}
