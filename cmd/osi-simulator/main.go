package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Roboticela/OSI-Model-Simulator/internal/config"
	"github.com/Roboticela/OSI-Model-Simulator/internal/dialog"
	"github.com/Roboticela/OSI-Model-Simulator/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

const appName = "OSI Model Simulator"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitGeneralError
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitGeneralError
	}
	logger := logging.New(logging.Options{
		Debug:  cfg.Debug,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Stderr: stderr,
	})
	defer logger.Close()

	env := &cliEnv{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		dialogs: dialog.NewZenity(appName),
		log:     logging.WithComponent(logger.Logger, "cli"),
	}

	switch args[0] {
	case "write-file":
		return handleWriteFile(env, args[1:])
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "osi-simulator %s\n", Version)
		return exitSuccess
	case "help", "--help", "-h":
		printUsage(stdout)
		return exitSuccess
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		printUsage(stderr)
		return exitGeneralError
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: osi-simulator <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  write-file   Decode base64 data and write it to a file")
	fmt.Fprintln(w, "  version      Print the version")
	fmt.Fprintln(w, "  help         Show this help")
}
