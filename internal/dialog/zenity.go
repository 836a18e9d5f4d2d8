package dialog

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/ncruces/zenity"
)

// Package-level hooks for testing. In production, these use the real implementations.
var (
	zenitySelectFileSave = zenity.SelectFileSave
	zenitySelectFile     = zenity.SelectFile
	zenityQuestion       = zenity.Question
	zenityInfo           = zenity.Info
	zenityWarning        = zenity.Warning
	zenityError          = zenity.Error
)

// Zenity shows standalone dialogs for processes without a window.
type Zenity struct {
	AppName string
}

// NewZenity creates a zenity dialog backend. appName prefixes dialog titles.
func NewZenity(appName string) *Zenity {
	return &Zenity{AppName: appName}
}

func (z *Zenity) Name() string                { return "dialog" }
func (z *Zenity) Start(context.Context) error { return nil }
func (z *Zenity) Stop(context.Context) error  { return nil }

func (z *Zenity) title(t string) zenity.Option {
	if t == "" {
		return zenity.Title(z.AppName)
	}
	return zenity.Title(z.AppName + " - " + t)
}

// SaveFile shows a save dialog, asking before overwriting.
func (z *Zenity) SaveFile(opts SaveOptions) (string, error) {
	options := []zenity.Option{z.title(opts.Title), zenity.ConfirmOverwrite()}
	if name := filepath.Join(opts.DefaultDirectory, opts.DefaultFilename); name != "." {
		options = append(options, zenity.Filename(name))
	}
	if len(opts.Filters) > 0 {
		options = append(options, zenityFilters(opts.Filters))
	}

	path, err := zenitySelectFileSave(options...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

// OpenFile shows an open dialog for a single file.
func (z *Zenity) OpenFile(opts OpenOptions) (string, error) {
	options := []zenity.Option{z.title(opts.Title)}
	if opts.DefaultDirectory != "" {
		options = append(options, zenity.Filename(opts.DefaultDirectory+string(filepath.Separator)))
	}
	if len(opts.Filters) > 0 {
		options = append(options, zenityFilters(opts.Filters))
	}

	path, err := zenitySelectFile(options...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

// Message shows a message dialog. Question dialogs answer AnswerYes or AnswerNo.
func (z *Zenity) Message(opts MessageOptions) (string, error) {
	title := z.title(opts.Title)
	var err error
	switch opts.Type {
	case MessageQuestion:
		err = zenityQuestion(opts.Message, title, zenity.QuestionIcon)
		if errors.Is(err, zenity.ErrCanceled) {
			return AnswerNo, nil
		}
		if err != nil {
			return "", err
		}
		return AnswerYes, nil
	case MessageWarning:
		err = zenityWarning(opts.Message, title, zenity.WarningIcon)
	case MessageError:
		err = zenityError(opts.Message, title, zenity.ErrorIcon)
	default:
		err = zenityInfo(opts.Message, title, zenity.InfoIcon)
	}
	if err != nil && !errors.Is(err, zenity.ErrCanceled) {
		return "", err
	}
	return AnswerOK, nil
}

func zenityFilters(filters []FileFilter) zenity.FileFilters {
	out := make(zenity.FileFilters, 0, len(filters))
	for _, f := range filters {
		out = append(out, zenity.FileFilter{Name: f.DisplayName, Patterns: splitPatterns(f.Pattern), CaseFold: true})
	}
	return out
}
