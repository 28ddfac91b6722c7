package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Version is the released version of loki.
const Version = "0.1.0"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command is what the user asked for.
type Command int

const (
	// CommandNone means an informational flag was handled and nothing runs.
	CommandNone Command = iota
	// CommandBuild runs the full build graph.
	CommandBuild
)

const versionText = `The Loki Build System, version ` + Version + `

Loki is free software licensed under the GNU GPL version 3 or later.

If you did not receive a copy of the license with this program, you may obtain
one at <http://gnu.org/licenses/gpl.html>.
`

const helpText = `The Loki Build System

Subcommands:
    build           Build a Loki project

Usage:
    --help          Show this text and exit
    --version       Show version information

Environment:
    LOKI_CC          Compiler driver (default "cc", falls back to CC)
    LOKI_CFLAGS      Extra compile flags (falls back to CFLAGS)
    LOKI_LDFLAGS     Extra link flags (falls back to LDFLAGS)
    LOKI_LOG_LEVEL   debug, info, warn or error (default "info")
    LOKI_LOG_FORMAT  text or json (default "text")
`

func unknown(arg string) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf("Unknown command/flag '%s'. See '--help' for usage.", arg)}
}

// offendingArg finds the argument the flag package rejected. Its errors name
// the flag without the user's spelling, so that is recovered from args.
func offendingArg(err error, args []string) string {
	msg := err.Error()
	var name string
	switch {
	case strings.HasPrefix(msg, "flag provided but not defined: -"):
		name = strings.TrimPrefix(msg, "flag provided but not defined: -")
	case strings.HasPrefix(msg, "bad flag syntax: "):
		return strings.TrimPrefix(msg, "bad flag syntax: ")
	default:
		// invalid boolean value "x" for -version: ...
		if _, after, ok := strings.Cut(msg, " for -"); ok {
			name, _, _ = strings.Cut(after, ":")
		}
	}

	for _, arg := range args {
		if name == "" || !strings.HasPrefix(arg, "-") {
			continue
		}
		if bare, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "="); bare == name {
			return arg
		}
	}
	return args[0]
}

// Parse processes command-line arguments. It returns the command to run, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (Command, bool, error) {
	slog.Debug("CLI parser started.", "args", args)
	flagSet := flag.NewFlagSet("loki", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() { fmt.Fprint(output, helpText) }

	var showVersion bool
	flagSet.BoolVar(&showVersion, "version", false, "Show version information.")
	flagSet.BoolVar(&showVersion, "v", false, "Show version information (shorthand).")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flagSet.Usage()
			return CommandNone, true, nil
		}
		return CommandNone, false, unknown(offendingArg(err, args))
	}

	if showVersion {
		fmt.Fprint(output, versionText)
		return CommandNone, true, nil
	}

	switch flagSet.NArg() {
	case 0:
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return CommandNone, true, nil
	case 1:
	default:
		return CommandNone, false, unknown(flagSet.Arg(1))
	}

	if cmd := flagSet.Arg(0); cmd != "build" {
		return CommandNone, false, unknown(cmd)
	}

	slog.Debug("CLI parser finished successfully.", "command", "build")
	return CommandBuild, false, nil
}
