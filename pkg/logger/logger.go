package logger

import (
	"log/slog"
	"os"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the process logger. Production gets JSON output,
// everything else a human-readable text handler with debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
}

func Info(msg string, args ...any) {
	log.Info(msg, kv(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, kv(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, kv(args)...)
}

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	log.Error(msg, kv(args)...)
	os.Exit(1)
}

// kv allows the shorthand logger.Error("message", err) next to
// regular key-value pairs.
func kv(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}

	return args
}
