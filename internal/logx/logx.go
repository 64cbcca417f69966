// Package logx builds the zap loggers used by the command line tools.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	Level string // debug, info, warn, error
	JSON  bool
	// File is appended to when set; otherwise logs go to stderr.
	File string
}

var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// ParseLevel returns the level named by s, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	if lvl, ok := levels[strings.ToLower(s)]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}

// New builds a logger from cfg. The returned close function syncs the logger
// and closes the log file, if any.
func New(cfg Config) (*zap.Logger, func() error, error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := NewWithWriter(w, ParseLevel(cfg.Level), cfg.JSON)
	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}

// NewWithWriter builds a logger that writes to w.
func NewWithWriter(w io.Writer, level zapcore.Level, json bool) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.LevelKey = "level"
	encoderCfg.TimeKey = "time"
	encoderCfg.NameKey = "logger"
	encoderCfg.MessageKey = "msg"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}
