package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON in production, text when
// ORGVET_LOG_FORMAT=text makes local output readable.
func New() *slog.Logger {
	var handler slog.Handler
	if os.Getenv("ORGVET_LOG_FORMAT") == "text" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
