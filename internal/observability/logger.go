// Package observability builds the zap logger used by the CLI and the live view.
package observability

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/lorentz/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 7
)

// NewLogger builds a logger from cfg. When cfg.File is set, entries go to that
// file as JSON with rotation and console is ignored; otherwise they go to
// console in cfg.Format. A nil console discards output.
func NewLogger(cfg config.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	var core zapcore.Core
	if cfg.File != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		})
		core = zapcore.NewCore(encoder("json"), w, level)
	} else {
		if console == nil {
			console = zapcore.AddSync(io.Discard)
		}
		core = zapcore.NewCore(encoder(cfg.Format), console, level)
	}

	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("lorentz"), nil
}

// NewStderrLogger is NewLogger with console output on a locked stderr.
func NewStderrLogger(cfg config.LogConfig) (*zap.Logger, error) {
	return NewLogger(cfg, zapcore.Lock(os.Stderr))
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if format == "json" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}
