package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Exit codes returned by the sitenav CLI.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitStructural = 2
	ExitMissing    = 3
	ExitConfig     = 7
	ExitExternal   = 8
	ExitInternal   = 10
	ExitRuntime    = 12
)

// CLIErrorAdapter turns a command error into a message and an exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates an adapter. A nil logger means slog.Default().
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor maps err to the exit code of its category. Unclassified errors
// exit with ExitGeneral.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	classified, ok := AsClassified(err)
	if !ok {
		return ExitGeneral
	}
	return lookup(classified.Category()).exit
}

// FormatError renders the one-line message shown to the user. Verbose mode
// prints the full error chain.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return err.Error()
	case classified.Category() == CategoryInternal:
		return "Internal error occurred (use -v for details)"
	}
	return "Error: " + classified.Message()
}

// Report logs err and writes the user-facing message to w, returning the exit code.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	classified, ok := AsClassified(err)
	switch {
	case !ok:
		a.logger.Error("Unclassified error", "error", err)
	case a.verbose || classified.IsFatal():
		attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
		for k, v := range classified.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.LogAttrs(context.Background(), classified.Severity().level(), classified.Message(), attrs...)
	}
	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}
