package common

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.Mutex
)

// Logger returns the process wide logger. It defaults to a no-op logger so
// library users who don't care about logs pay nothing; the CLI swaps in a
// real one via SetVerboseLogging.
func Logger() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func SetVerboseLogging() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		return
	}
	logger = l
}
