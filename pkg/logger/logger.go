package logger

import "go.uber.org/zap"

var Log *zap.Logger

// Init builds the global production logger. Call once at startup.
func Init() {
	var err error
	Log, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}

// Sync flushes buffered entries; meant for deferred use in main.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
