package lib

import (
	"log/slog"
	"sync/atomic"
)

// logger is stored atomically so tree copies can log from worker goroutines
// while the CLI swaps it during startup.
var logger atomic.Pointer[slog.Logger]

// Logger returns the logger set with SetLogger, or slog.Default() tagged
// with the fcopy component.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default().With("component", "fcopy")
}

// SetLogger replaces the package-level logger. A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}
