package sequence

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the package logger. It is a no-op logger until SetLogger
// is called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger replaces the package logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func logFieldFailure(op string, name string, index int, c interface{ Position() int }, err error) {
	Logger().Debug("field failed",
		zap.String("op", op),
		zap.String("field", name),
		zap.Int("index", index),
		zap.Int("position", c.Position()),
		zap.Error(err))
}
