package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/changelog/internal/changelog"
	"git.home.luguber.info/inful/changelog/internal/errors"
)

// AddCmd implements the 'add' command.
type AddCmd struct {
	Group string `short:"g" required:"" help:"Change group" enum:"Added,Changed,Deprecated,Removed,Fixed,Security"`
	Text  string `short:"t" required:"" help:"Change entry text"`

	Path string `arg:"" optional:"" help:"Changelog file to edit (defaults to CHANGELOG.md)"`
}

// Run executes the add command.
func (a *AddCmd) Run(root *CLI) error {
	path := resolveFile(a.Path)
	model, _, err := loadChangelog(path)
	if err != nil {
		return err
	}

	group, ok := changelog.ResolveGroup(a.Group)
	if !ok {
		// kong's enum constraint makes this unreachable, but keep the
		// validation honest for programmatic callers.
		return errors.New(errors.CategoryValidation, errors.SeverityFatal,
			"unrecognized change group").WithContext("group", a.Group)
	}
	if err := model.Unreleased.Add(group, a.Text); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal,
			"cannot add change entry")
	}

	if err := writeChangelog(path, model); err != nil {
		return err
	}
	slog.Debug("Added change entry", "path", path, "group", a.Group)
	return nil
}
