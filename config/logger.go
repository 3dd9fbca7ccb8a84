package config

import "go.uber.org/zap"

// Log / SLog are the process-wide loggers. They default to no-ops so
// packages can log during tests without wiring; main calls InitLogger.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

func InitLogger() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = logger
	SLog = logger.Sugar()
}
