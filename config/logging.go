package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Debug = false

// Log is a no-op until InitDebugLog enables file logging. The terminal
// belongs to the UI, so nothing is ever logged to stdout or stderr.
var Log = zap.NewNop()

func CheckDebug() bool {
	debug := os.Getenv("GUADAVILLAS_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: prompts and replies end up in here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	Debug = true
	Log = NewFileLogger(f, zapcore.DebugLevel)
	Log.Info("debug logging started",
		zap.String("env", os.Getenv("GUADAVILLAS_DEBUG")),
		zap.String("path", logPath))
}

// NewFileLogger builds a JSON zap logger writing to w.
func NewFileLogger(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(w), level)
	return zap.New(core, zap.AddCaller())
}
