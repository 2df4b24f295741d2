package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/axdr/schema"
	"github.com/wippyai/axdr/sequence"
)

// newLogger builds a console logger writing to w at the named level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// installLogger routes library logging through l.
func installLogger(l *zap.Logger) {
	sequence.SetLogger(l.Named("sequence"))
	schema.SetLogger(l.Named("schema"))
}
