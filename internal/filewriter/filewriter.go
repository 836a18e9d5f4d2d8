// Package filewriter decodes base64 payloads sent by the front-end and
// writes the resulting bytes to a local file.
package filewriter

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Kind identifies which step of a write failed.
type Kind string

const (
	KindDecode Kind = "decode"
	KindCreate Kind = "create"
	KindWrite  Kind = "write"
)

// Sentinel errors for errors.Is checks against a *Error.
var (
	ErrDecode = errors.New("decode error")
	ErrCreate = errors.New("create error")
	ErrWrite  = errors.New("write error")
)

// Error is returned by WriteFile. Its message is what the front-end shows.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDecode:
		return fmt.Sprintf("failed to decode base64: %v", e.Err)
	case KindCreate:
		return fmt.Sprintf("failed to create file: %v", e.Err)
	default:
		return fmt.Sprintf("failed to write file: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel matching this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrCreate:
		return e.Kind == KindCreate
	case ErrWrite:
		return e.Kind == KindWrite
	}
	return false
}

// KindOf returns the kind of a filewriter error, or "" for anything else.
func KindOf(err error) Kind {
	var fwErr *Error
	if errors.As(err, &fwErr) {
		return fwErr.Kind
	}
	return ""
}

// Package-level hooks for testing. In production, these use the real implementations.
var (
	createFile = func(path string) (io.WriteCloser, error) {
		return os.Create(path)
	}
)

// encoding rejects non-zero trailing bits, matching the strict standard alphabet.
var encoding = base64.StdEncoding.Strict()

// Decode decodes a standard base64 payload.
// The stdlib decoder silently skips CR and LF; those are outside the
// alphabet and are rejected here.
func Decode(data string) ([]byte, error) {
	if i := strings.IndexAny(data, "\r\n"); i >= 0 {
		return nil, base64.CorruptInputError(i)
	}
	return encoding.DecodeString(data)
}

// WriteFile decodes data and writes it to path, creating or truncating the file.
//
// The write is direct: there is no temp file and no rename. If writing fails
// partway the partial file is left behind. The parent directory must exist.
func WriteFile(path, data string) error {
	raw, err := Decode(data)
	if err != nil {
		return &Error{Kind: KindDecode, Path: path, Err: err}
	}

	f, err := createFile(path)
	if err != nil {
		return &Error{Kind: KindCreate, Path: path, Err: err}
	}

	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		return &Error{Kind: KindWrite, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Kind: KindWrite, Path: path, Err: err}
	}
	return nil
}
