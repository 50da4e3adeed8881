package commands

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/changelog/internal/changelog"
	"git.home.luguber.info/inful/changelog/internal/errors"
	"git.home.luguber.info/inful/changelog/internal/gitlink"
)

// PromoteCmd implements the 'promote' command.
type PromoteCmd struct {
	Version   string `required:"" help:"Version of the new release (semver)"`
	Date      string `help:"Release date (YYYY-MM-DD, defaults to today)"`
	Link      string `help:"Compare URL for the new release"`
	Tag       string `help:"Release marker" enum:"YANKED,NO CHANGES,"`
	InferLink bool   `help:"Derive release links from the repository's origin remote"`

	Path string `arg:"" optional:"" help:"Changelog file to edit (defaults to CHANGELOG.md)"`
}

// Run executes the promote command.
func (p *PromoteCmd) Run(root *CLI) error {
	path := resolveFile(p.Path)
	model, _, err := loadChangelog(path)
	if err != nil {
		return err
	}

	version, err := changelog.ParseVersion(p.Version)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid version")
	}

	opts := changelog.PromoteOptions{Version: version, Link: p.Link}
	if p.Date != "" {
		date, err := changelog.ParseDate(p.Date)
		if err != nil {
			return errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid date")
		}
		opts.Date = date
	}
	if p.Tag != "" {
		tag, err := changelog.ParseTag(p.Tag)
		if err != nil {
			return errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal, "invalid tag")
		}
		opts.Tag = tag
	}

	var resolver *gitlink.Resolver
	if p.InferLink && opts.Link == "" {
		resolver, err = gitlink.Open(filepath.Dir(path))
		if err != nil {
			return errors.Wrap(err, errors.CategoryGit, errors.SeverityFatal,
				"cannot infer release link")
		}
		if previous := latestVersion(model); previous != "" {
			opts.Link = resolver.CompareLink(previous, version.String())
		} else {
			opts.Link = resolver.TagLink(version.String())
		}
	}

	if err := model.PromoteUnreleased(opts); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, errors.SeverityFatal,
			"cannot promote unreleased changes")
	}
	if resolver != nil {
		model.Unreleased.Link = resolver.UnreleasedLink(version.String())
	}

	if err := writeChangelog(path, model); err != nil {
		return err
	}
	slog.Info("Promoted unreleased changes", "path", path, "version", p.Version)
	return nil
}

// latestVersion returns the most recent finalized version, or "".
func latestVersion(model *changelog.Changelog) string {
	releases := model.Releases.All()
	if len(releases) == 0 {
		return ""
	}
	return releases[0].Version.String()
}
