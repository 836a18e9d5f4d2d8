// Package command implements the request/response contract between the
// front-end and the Go backend. Each backend operation is registered under
// a name and invoked with JSON arguments.
package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Roboticela/OSI-Model-Simulator/internal/filewriter"
)

// WriteFileCommand is the name the front-end uses to invoke a file write.
const WriteFileCommand = "write_file"

// Response kinds beyond the filewriter kinds.
const (
	KindUnknownCommand = "unknown_command"
	KindBadRequest     = "bad_request"
)

// Request is a single invocation from the front-end.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is the result of a Request. Error carries the human-readable
// message; Kind lets callers branch without parsing it.
type Response struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// WriteFileRequest holds the arguments of the write_file command.
type WriteFileRequest struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

// Handler runs a command with its raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) error

// badRequestError marks argument decoding failures.
type badRequestError struct{ err error }

func (e *badRequestError) Error() string { return fmt.Sprintf("invalid arguments: %v", e.err) }
func (e *badRequestError) Unwrap() error { return e.err }

// Dispatcher routes requests to registered handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *slog.Logger
}

// NewDispatcher creates a dispatcher with the built-in commands registered.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		log:      log.With(slog.String("component", "command")),
	}
	d.Register(WriteFileCommand, handleWriteFile)
	return d
}

// Register adds a handler. Registering the same name twice is a
// programming error and panics.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[name]; exists {
		panic(fmt.Sprintf("command %q already registered", name))
	}
	d.handlers[name] = h
}

// Commands returns the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs req and reports the outcome. It never returns a Go error;
// every failure is folded into the Response.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	d.mu.RLock()
	h, ok := d.handlers[req.Command]
	d.mu.RUnlock()
	if !ok {
		return Response{
			ID:    id,
			Error: fmt.Sprintf("unknown command: %s", req.Command),
			Kind:  KindUnknownCommand,
		}
	}

	if err := h(ctx, req.Args); err != nil {
		kind := string(filewriter.KindOf(err))
		var badReq *badRequestError
		if errors.As(err, &badReq) {
			kind = KindBadRequest
		}
		d.log.Debug("command failed",
			slog.String("id", id),
			slog.String("command", req.Command),
			slog.String("kind", kind),
			slog.Any("error", err))
		return Response{ID: id, Error: err.Error(), Kind: kind}
	}

	d.log.Debug("command ok", slog.String("id", id), slog.String("command", req.Command))
	return Response{ID: id, OK: true}
}

// DecodeArgs unmarshals raw command arguments into v.
// The returned error is reported to the caller as a bad request.
func DecodeArgs(args json.RawMessage, v any) error {
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		return &badRequestError{err: errors.New("missing arguments")}
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &badRequestError{err: err}
	}
	return nil
}

func handleWriteFile(_ context.Context, args json.RawMessage) error {
	var req WriteFileRequest
	if err := DecodeArgs(args, &req); err != nil {
		return err
	}
	if req.Path == "" {
		return &badRequestError{err: errors.New("path is required")}
	}
	return filewriter.WriteFile(req.Path, req.Data)
}
