package logger

import (
	"log/slog"
	"os"
)

// Log is usable before Init so packages can log from tests without setup.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the JSON logger. Debug output is disabled in release mode.
func Init(ginMode string) {
	level := slog.LevelDebug
	if ginMode == "release" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
