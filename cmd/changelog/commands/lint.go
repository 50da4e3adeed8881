package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/changelog/internal/config"
	"git.home.luguber.info/inful/changelog/internal/errors"
	"git.home.luguber.info/inful/changelog/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format       string `short:"f" help:"Output format (text, json, or github)" enum:"text,json,github,"`
	RequireDates bool   `help:"Flag finalized releases that omit a release date"`
	Watch        bool   `short:"w" help:"Re-lint whenever the path changes"`

	Path string `arg:"" optional:"" help:"File or directory to lint (defaults to CHANGELOG.md)"`
}

// Run executes the lint command.
func (l *LintCmd) Run(root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid configuration")
	}
	if l.Format != "" {
		cfg.Format = l.Format
	}
	if l.RequireDates {
		cfg.RequireDates = true
	}

	formatter, err := lint.NewFormatter(cfg.Format)
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "invalid output format")
	}

	path := resolveFile(l.Path)
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
			"path does not exist").WithContext("path", path)
	}

	linter := lint.NewLinter(cfg)

	if l.Watch {
		return l.watch(linter, formatter, path)
	}

	result, err := linter.LintPath(path)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "lint pass failed")
	}
	if err := formatter.Format(os.Stdout, result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.New(errors.CategoryValidation, errors.SeverityError, "changelog has blocking problems")
	}
	return nil
}

func (l *LintCmd) watch(linter *lint.Linter, formatter lint.Formatter, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := lint.NewWatcher(linter, path, func(result *lint.Result) {
		_ = formatter.Format(os.Stdout, result)
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to start watcher")
	}

	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
