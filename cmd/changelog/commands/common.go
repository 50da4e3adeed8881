package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/changelog/internal/changelog"
	"git.home.luguber.info/inful/changelog/internal/errors"
	"github.com/alecthomas/kong"
)

// DefaultFile is the changelog filename used when no path argument is given.
const DefaultFile = "CHANGELOG.md"

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:""`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Lint     LintCmd     `cmd:"" help:"Report structural and stylistic problems in changelog files"`
	Validate ValidateCmd `cmd:"" help:"Strictly parse a changelog and report blocking errors"`
	Add      AddCmd      `cmd:"" help:"Add a change entry to the Unreleased section"`
	Promote  PromoteCmd  `cmd:"" help:"Promote the Unreleased section into a new release"`
	Render   RenderCmd   `cmd:"" help:"Print the canonical form of a changelog"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// resolveFile applies the CHANGELOG.md default.
func resolveFile(path string) string {
	if path == "" {
		return DefaultFile
	}
	return path
}

// loadChangelog strictly parses the file at path.
func loadChangelog(path string) (*changelog.Changelog, []byte, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- path is operator-provided
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
			"failed to read changelog").WithContext("path", path)
	}
	model, err := changelog.Parse(src)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryParse, errors.SeverityFatal,
			fmt.Sprintf("failed to parse %s", path))
	}
	return model, src, nil
}

// writeChangelog rewrites path with the model's canonical form.
func writeChangelog(path string, model *changelog.Changelog) error {
	if err := os.WriteFile(path, model.Render(), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
			"failed to write changelog").WithContext("path", path)
	}
	return nil
}
