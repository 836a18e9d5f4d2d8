package main

import (
	"context"
	"fmt"
	"log/slog"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/Roboticela/OSI-Model-Simulator/internal/command"
	"github.com/Roboticela/OSI-Model-Simulator/internal/config"
	"github.com/Roboticela/OSI-Model-Simulator/internal/dialog"
	"github.com/Roboticela/OSI-Model-Simulator/internal/filewriter"
	"github.com/Roboticela/OSI-Model-Simulator/internal/logging"
	"github.com/Roboticela/OSI-Model-Simulator/internal/opener"
	"github.com/Roboticela/OSI-Model-Simulator/internal/services"
	"github.com/Roboticela/OSI-Model-Simulator/internal/windowstate"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// Package-level hooks for testing. In production, these use the real implementations.
var (
	eventsEmit = wailsRuntime.EventsEmit
)

// App struct holds the application state.
// Its exported methods are bound to the front-end.
type App struct {
	ctx         context.Context
	cfg         *config.AppConfig
	log         *slog.Logger
	commands    *command.Dispatcher
	services    *services.Registry
	dialogs     dialog.Service
	opener      *opener.Service
	windowState *windowstate.Store // nil unless persisting window state
}

// NewApp creates a new App application struct and registers its services.
// The debug logging service is only registered for debug builds and the
// window-state store only on desktop targets.
func NewApp(cfg *config.AppConfig, logger *logging.Logger) *App {
	log := logger.Logger
	wailsDialogs := dialog.NewWails()

	a := &App{
		cfg:      cfg,
		log:      logging.WithComponent(log, "app"),
		commands: command.NewDispatcher(log),
		services: services.NewRegistry(log),
		dialogs:  wailsDialogs,
		opener:   opener.New(),
	}

	if cfg.Debug {
		a.mustRegister(logging.NewService(logger, cfg.LogFile()))
	}
	a.mustRegister(wailsDialogs)
	a.mustRegister(a.opener)
	if cfg.PersistWindowState() {
		a.windowState = windowstate.NewStore(cfg.WindowStatePath(), cfg.Window.MinWidth, cfg.Window.MinHeight, log)
		a.mustRegister(a.windowState)
	}

	return a
}

func (a *App) mustRegister(svc services.Service) {
	if err := a.services.Register(svc); err != nil {
		panic(err)
	}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if err := a.services.StartAll(ctx); err != nil {
		a.log.Error("startup failed", slog.Any("error", err))
	}
}

// beforeClose is called while the window still exists. Returning false lets it close.
func (a *App) beforeClose(ctx context.Context) bool {
	if a.windowState != nil {
		if err := a.windowState.Capture(); err != nil {
			a.log.Warn("failed to save window state", slog.Any("error", err))
		}
	}
	return false
}

// shutdown is called when the app is closing.
func (a *App) shutdown(ctx context.Context) {
	if err := a.services.StopAll(ctx); err != nil {
		a.log.Error("shutdown failed", slog.Any("error", err))
	}
}

func (a *App) runtimeContext() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// IsDebug reports whether this is a debug build.
func (a *App) IsDebug() bool {
	return a.cfg.Debug
}

// IsDesktop reports whether desktop-only features are enabled.
func (a *App) IsDesktop() bool {
	return a.cfg.Desktop
}

// WriteFile decodes base64 data and writes it to path, overwriting any
// existing file. The returned error's message is shown to the user as-is.
func (a *App) WriteFile(path, data string) error {
	return filewriter.WriteFile(path, data)
}

// Invoke runs a named command from a serialized request.
func (a *App) Invoke(req command.Request) command.Response {
	return a.commands.Dispatch(a.runtimeContext(), req)
}

// ListCommands returns the names Invoke accepts.
func (a *App) ListCommands() []string {
	return a.commands.Commands()
}

// SaveFileDialog opens a native save dialog.
// Returns the selected path, or empty string if cancelled.
func (a *App) SaveFileDialog(defaultName string, filters []dialog.FileFilter) (string, error) {
	return a.dialogs.SaveFile(dialog.SaveOptions{
		Title:           "Save File",
		DefaultFilename: defaultName,
		Filters:         filters,
	})
}

// OpenFileDialog opens a native dialog to pick a single existing file.
// Returns the selected path, or empty string if cancelled.
func (a *App) OpenFileDialog(filters []dialog.FileFilter) (string, error) {
	return a.dialogs.OpenFile(dialog.OpenOptions{
		Title:   "Open File",
		Filters: filters,
	})
}

// ExportFile asks the user where to save, then writes the base64 data there.
// Returns the chosen path, or empty string if the dialog was cancelled.
func (a *App) ExportFile(defaultName, data string, filters []dialog.FileFilter) (string, error) {
	path, err := a.dialogs.SaveFile(dialog.SaveOptions{
		Title:           "Export",
		DefaultFilename: defaultName,
		Filters:         filters,
	})
	if err != nil {
		return "", fmt.Errorf("save dialog failed: %w", err)
	}
	if path == "" {
		return "", nil
	}

	if err := filewriter.WriteFile(path, data); err != nil {
		a.emitToast(err.Error(), "error")
		return "", err
	}

	a.log.Info("exported file", slog.String("path", path))
	a.emitToast("Saved "+path, "success")
	return path, nil
}

// ShowMessage displays a native message dialog and returns the button pressed.
// kind is "info", "warning", "error" or "question".
func (a *App) ShowMessage(kind, title, message string) (string, error) {
	return a.dialogs.Message(dialog.MessageOptions{
		Type:    dialog.MessageType(kind),
		Title:   title,
		Message: message,
	})
}

// OpenURL opens an external link in the system browser.
func (a *App) OpenURL(url string) error {
	return a.opener.OpenURL(url)
}

// emitToast sends a toast notification to the frontend
func (a *App) emitToast(message, toastType string) {
	if a.ctx == nil {
		return
	}
	eventsEmit(a.ctx, "toast:show", map[string]string{
		"message": message,
		"type":    toastType, // "info", "success", "error", "warning"
	})
}
