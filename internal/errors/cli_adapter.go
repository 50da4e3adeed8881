package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIAdapter handles error presentation and exit code determination for the
// command-line tool.
type CLIAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIAdapter creates a new CLI error adapter.
func NewCLIAdapter(verbose bool, logger *slog.Logger) *CLIAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		switch e.Category {
		case CategoryValidation:
			return 2 // Invalid usage
		case CategoryParse:
			return 3 // Changelog failed to parse
		case CategoryConfig:
			return 7 // Configuration error
		case CategoryGit:
			return 8 // External system error
		case CategoryFileSystem:
			return 11 // File access error
		case CategoryInternal:
			return 10 // Internal error
		}
	}
	return 1 // General error
}

// FormatError formats an error for user-friendly display.
func (a *CLIAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return e.Error()
	}
	switch e.Category {
	case CategoryConfig, CategoryValidation, CategoryParse:
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	default:
		return fmt.Sprintf("%s: %s", e.Category, e.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	if a.verbose {
		if e, ok := err.(*Error); ok {
			a.logger.Error(e.Message, "category", string(e.Category), "error", err)
		} else {
			a.logger.Error("Unclassified error", "error", err)
		}
	}

	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}
