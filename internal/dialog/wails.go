package dialog

import (
	"context"
	"errors"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrNotStarted is returned when a dialog is requested before the window exists.
var ErrNotStarted = errors.New("dialog service not started")

// Package-level hooks for testing. In production, these use the real implementations.
var (
	saveFileDialog = runtime.SaveFileDialog
	openFileDialog = runtime.OpenFileDialog
	messageDialog  = runtime.MessageDialog
)

// Wails shows dialogs attached to the application window.
type Wails struct {
	ctx context.Context
}

// NewWails creates a Wails dialog backend. It is usable after Start.
func NewWails() *Wails {
	return &Wails{}
}

func (w *Wails) Name() string { return "dialog" }

// Start stores the Wails runtime context.
func (w *Wails) Start(ctx context.Context) error {
	w.ctx = ctx
	return nil
}

func (w *Wails) Stop(context.Context) error {
	w.ctx = nil
	return nil
}

// SaveFile shows a save dialog.
func (w *Wails) SaveFile(opts SaveOptions) (string, error) {
	if w.ctx == nil {
		return "", ErrNotStarted
	}
	return saveFileDialog(w.ctx, runtime.SaveDialogOptions{
		Title:                opts.Title,
		DefaultDirectory:     opts.DefaultDirectory,
		DefaultFilename:      opts.DefaultFilename,
		Filters:              wailsFilters(opts.Filters),
		CanCreateDirectories: true,
	})
}

// OpenFile shows an open dialog for a single file.
func (w *Wails) OpenFile(opts OpenOptions) (string, error) {
	if w.ctx == nil {
		return "", ErrNotStarted
	}
	return openFileDialog(w.ctx, runtime.OpenDialogOptions{
		Title:            opts.Title,
		DefaultDirectory: opts.DefaultDirectory,
		Filters:          wailsFilters(opts.Filters),
	})
}

// Message shows a message dialog and returns the button pressed.
func (w *Wails) Message(opts MessageOptions) (string, error) {
	if w.ctx == nil {
		return "", ErrNotStarted
	}
	return messageDialog(w.ctx, runtime.MessageDialogOptions{
		Type:    wailsDialogType(opts.Type),
		Title:   opts.Title,
		Message: opts.Message,
	})
}

func wailsFilters(filters []FileFilter) []runtime.FileFilter {
	if len(filters) == 0 {
		return nil
	}
	out := make([]runtime.FileFilter, 0, len(filters))
	for _, f := range filters {
		out = append(out, runtime.FileFilter{DisplayName: f.DisplayName, Pattern: f.Pattern})
	}
	return out
}

func wailsDialogType(t MessageType) runtime.DialogType {
	switch t {
	case MessageWarning:
		return runtime.WarningDialog
	case MessageError:
		return runtime.ErrorDialog
	case MessageQuestion:
		return runtime.QuestionDialog
	default:
		return runtime.InfoDialog
	}
}
