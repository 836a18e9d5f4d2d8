package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// WailsLogger routes Wails runtime log output into slog.
type WailsLogger struct {
	log *slog.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

// NewWailsLogger adapts l for options.App.Logger.
func NewWailsLogger(l *slog.Logger) *WailsLogger {
	return &WailsLogger{log: WithComponent(l, "wails")}
}

// WailsLevel maps a level name to the Wails log level, following the
// dev/production split: debug builds log at the configured level, release
// builds only at error.
func WailsLevel(debug bool, level string) logger.LogLevel {
	if !debug {
		return logger.ERROR
	}
	switch ParseLevel(level) {
	case slog.LevelDebug:
		return logger.DEBUG
	case slog.LevelWarn:
		return logger.WARNING
	case slog.LevelError:
		return logger.ERROR
	default:
		return logger.INFO
	}
}

func (w *WailsLogger) emit(level slog.Level, message string) {
	w.log.Log(context.Background(), level, strings.TrimRight(message, "\n"))
}

func (w *WailsLogger) Print(message string)   { w.emit(slog.LevelInfo, message) }
func (w *WailsLogger) Trace(message string)   { w.emit(slog.LevelDebug-4, message) }
func (w *WailsLogger) Debug(message string)   { w.emit(slog.LevelDebug, message) }
func (w *WailsLogger) Info(message string)    { w.emit(slog.LevelInfo, message) }
func (w *WailsLogger) Warning(message string) { w.emit(slog.LevelWarn, message) }
func (w *WailsLogger) Error(message string)   { w.emit(slog.LevelError, message) }

// Fatal logs and exits, as the Wails logger contract requires.
func (w *WailsLogger) Fatal(message string) {
	w.emit(slog.LevelError, message)
	os.Exit(1)
}
