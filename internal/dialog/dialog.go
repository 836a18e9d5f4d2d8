// Package dialog presents native file and message dialogs.
//
// Two backends exist: the Wails runtime for the desktop window, and zenity
// for the command-line tool, which has no window to attach to.
package dialog

import (
	"strings"
)

// FileFilter restricts the files shown in a dialog. Pattern holds one or
// more globs separated by ';', e.g. "*.png;*.jpg".
type FileFilter struct {
	DisplayName string `json:"displayName"`
	Pattern     string `json:"pattern"`
}

// SaveOptions configures a save dialog.
type SaveOptions struct {
	Title            string
	DefaultDirectory string
	DefaultFilename  string
	Filters          []FileFilter
}

// OpenOptions configures an open dialog.
type OpenOptions struct {
	Title            string
	DefaultDirectory string
	Filters          []FileFilter
}

// MessageType selects the icon and buttons of a message dialog.
type MessageType string

const (
	MessageInfo     MessageType = "info"
	MessageWarning  MessageType = "warning"
	MessageError    MessageType = "error"
	MessageQuestion MessageType = "question"
)

// Answers returned by Message for question dialogs.
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
	AnswerOK  = "Ok"
)

// MessageOptions configures a message dialog.
type MessageOptions struct {
	Type    MessageType
	Title   string
	Message string
}

// Service shows dialogs. A cancelled file dialog returns "" and a nil error.
type Service interface {
	SaveFile(opts SaveOptions) (string, error)
	OpenFile(opts OpenOptions) (string, error)
	Message(opts MessageOptions) (string, error)
}

// splitPatterns turns "*.png; *.jpg" into its globs.
func splitPatterns(pattern string) []string {
	var out []string
	for _, p := range strings.Split(pattern, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
