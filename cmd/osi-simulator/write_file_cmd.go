package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Roboticela/OSI-Model-Simulator/internal/dialog"
	"github.com/Roboticela/OSI-Model-Simulator/internal/filewriter"
)

// Exit codes for write-file command
const (
	exitSuccess      = 0
	exitGeneralError = 1
	exitDecodeError  = 2
	exitCreateError  = 3
	exitWriteError   = 4
)

// cliEnv carries the process streams and collaborators for a command.
type cliEnv struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	dialogs dialog.Service
	log     *slog.Logger
}

// handleWriteFile decodes a base64 payload and writes it to a file.
// The payload comes from --data, from --data-file, or from stdin with --data -.
// Without --path, --dialog asks for the target with a native save dialog.
func handleWriteFile(env *cliEnv, args []string) int {
	fs := flag.NewFlagSet("write-file", flag.ContinueOnError)
	fs.SetOutput(env.stderr)

	path := fs.String("path", "", "Target file path")
	pathShort := fs.String("p", "", "Target file path (short)")
	data := fs.String("data", "", "Base64 payload, or - to read stdin")
	dataShort := fs.String("d", "", "Base64 payload (short)")
	dataFile := fs.String("data-file", "", "Read the base64 payload from a file")
	useDialog := fs.Bool("dialog", false, "Ask for the target path with a save dialog")
	jsonOutput := fs.Bool("json", false, "Output JSON response")
	quiet := fs.Bool("quiet", false, "Suppress output")
	quietShort := fs.Bool("q", false, "Suppress output (short)")

	fs.Usage = func() {
		w := env.stderr
		fmt.Fprintln(w, "Usage: osi-simulator write-file [options]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Decode standard base64 data and write the bytes to a file,")
		fmt.Fprintln(w, "creating or overwriting it. The parent directory must exist.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		fmt.Fprintln(w, "  -p, --path <path>       Target file path")
		fmt.Fprintln(w, "  -d, --data <base64>     Base64 payload (- reads stdin, \"\" writes an empty file)")
		fmt.Fprintln(w, "  --data-file <file>      Read the base64 payload from a file")
		fmt.Fprintln(w, "  --dialog                Choose the target with a save dialog")
		fmt.Fprintln(w, "  --json                  Output JSON response")
		fmt.Fprintln(w, "  -q, --quiet             Suppress output")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Exit codes:")
		fmt.Fprintln(w, "  0  Success")
		fmt.Fprintln(w, "  1  General error")
		fmt.Fprintln(w, "  2  Invalid base64 data")
		fmt.Fprintln(w, "  3  File could not be created")
		fmt.Fprintln(w, "  4  File could not be written")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Examples:")
		fmt.Fprintln(w, "  osi-simulator write-file --path /tmp/out.bin --data SGVsbG8=")
		fmt.Fprintln(w, "  base64 -w0 image.png | osi-simulator write-file -p copy.png -d -")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitSuccess
		}
		return exitGeneralError
	}

	targetPath := mergeFlags(*path, *pathShort)
	payloadArg := mergeFlags(*data, *dataShort)
	isQuiet := *quiet || *quietShort
	out := &output{env: env, json: *jsonOutput, quiet: isQuiet}

	// An explicit --data "" is a valid empty payload.
	dataGiven := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "data" || f.Name == "d" {
			dataGiven = true
		}
	})

	if dataGiven && *dataFile != "" {
		out.failure("use either --data or --data-file, not both", "INVALID_ARGS")
		return exitGeneralError
	}
	if !dataGiven && *dataFile == "" {
		out.failure("payload is required (--data or --data-file)", "MISSING_REQUIRED")
		return exitGeneralError
	}

	payload, err := readPayload(env.stdin, payloadArg, *dataFile)
	if err != nil {
		out.failure(err.Error(), "READ_ERROR")
		return exitGeneralError
	}

	if targetPath == "" {
		if !*useDialog {
			out.failure("target path is required (--path or -p, or --dialog)", "MISSING_REQUIRED")
			return exitGeneralError
		}
		targetPath, err = env.dialogs.SaveFile(dialog.SaveOptions{Title: "Write File"})
		if err != nil {
			out.failure(fmt.Sprintf("save dialog failed: %v", err), "DIALOG_ERROR")
			return exitGeneralError
		}
		if targetPath == "" {
			out.failure("cancelled", "CANCELLED")
			return exitGeneralError
		}
	}

	if err := filewriter.WriteFile(targetPath, payload); err != nil {
		env.log.Debug("write-file failed", slog.String("path", targetPath), slog.Any("error", err))
		switch filewriter.KindOf(err) {
		case filewriter.KindDecode:
			out.failure(err.Error(), "DECODE_ERROR")
			return exitDecodeError
		case filewriter.KindCreate:
			out.failure(err.Error(), "CREATE_ERROR")
			return exitCreateError
		default:
			out.failure(err.Error(), "WRITE_ERROR")
			return exitWriteError
		}
	}

	out.success(fmt.Sprintf("wrote %s", targetPath), map[string]interface{}{
		"success": true,
		"path":    targetPath,
	})
	return exitSuccess
}

// readPayload resolves the base64 text from the flag value, stdin or a file.
// Trailing whitespace is dropped so `base64 -w0 f > p` output works as is.
func readPayload(stdin io.Reader, arg, file string) (string, error) {
	var raw []byte
	var err error
	switch {
	case file != "":
		raw, err = os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read data file: %w", err)
		}
	case arg == "-":
		raw, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
	default:
		return arg, nil
	}
	return strings.TrimRight(string(raw), " \t\r\n"), nil
}

// mergeFlags returns the long flag value, falling back to the short one.
func mergeFlags(long, short string) string {
	if long != "" {
		return long
	}
	return short
}

// output writes results in text or JSON form.
type output struct {
	env   *cliEnv
	json  bool
	quiet bool
}

// failure outputs an error message in the appropriate format
func (o *output) failure(message, code string) {
	if o.quiet {
		return
	}
	if o.json {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"success": false,
			"error":   message,
			"code":    code,
		}, "", "  ")
		fmt.Fprintln(o.env.stdout, string(data))
	} else {
		fmt.Fprintf(o.env.stderr, "Error: %s\n", message)
	}
}

// success outputs a success message in the appropriate format
func (o *output) success(message string, data map[string]interface{}) {
	if o.quiet {
		return
	}
	if o.json {
		encoded, _ := json.MarshalIndent(data, "", "  ")
		fmt.Fprintln(o.env.stdout, string(encoded))
	} else {
		fmt.Fprintf(o.env.stdout, "✓ %s\n", message)
	}
}
