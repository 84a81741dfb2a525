package logging

import (
	"io"
	"log/slog"

	"go.uber.org/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Set installs the process logger. The launcher passes gabagool's logger
// here so that every package writes to the same log file.
func Set(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func Get() *slog.Logger {
	return logger.Load()
}
