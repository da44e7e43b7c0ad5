package wgpu2d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for wgpu2d. By default, wgpu2d produces
// no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by wgpu2d:
//   - [slog.LevelDebug]: internal diagnostics (batch flushes, buffer sizes)
//   - [slog.LevelInfo]: important lifecycle events (GPU adapter selected)
//   - [slog.LevelWarn]: non-fatal issues (resource release errors)
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	wgpu2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by wgpu2d.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// slogger returns the current package logger. All logging in wgpu2d goes
// through this function.
func slogger() *slog.Logger { return loggerPtr.Load() }
