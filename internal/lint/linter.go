// Package lint reports structured diagnostics over changelog files. It wraps
// the error-tolerant build pass from internal/changelog and maps its findings
// onto file-level issues for human and CI consumption.
package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/changelog/internal/changelog"
	"git.home.luguber.info/inful/changelog/internal/config"
)

// Linter performs linting operations on changelog files.
type Linter struct {
	cfg *config.Config
}

// NewLinter creates a new linter with the given configuration.
func NewLinter(cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Linter{cfg: cfg}
}

// LintPath lints a file or, for directories, every changelog file beneath it.
func (l *Linter) LintPath(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}
	if info.IsDir() {
		err = l.lintDirectory(path, result)
	} else {
		err = l.lintFile(path, result)
		result.FilesTotal = 1
	}
	return result, err
}

func (l *Linter) lintDirectory(dirPath string, result *Result) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and files.
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsChangelogFile(path) || l.cfg.Ignored(path) {
			return nil
		}

		result.FilesTotal++
		return l.lintFile(path, result)
	})
}

// lintFile runs the full build pass over one file. All of a file's issues are
// reported together in one pass, never short-circuited on the first finding.
func (l *Linter) lintFile(path string, result *Result) error {
	src, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller's own tree walk
	if err != nil {
		return err
	}

	diags := changelog.Lint(src, changelog.BuildOptions{
		RequireDates: l.cfg.RequireDates,
	})
	for _, d := range diags {
		result.Issues = append(result.Issues, issueFromDiagnostic(path, d))
	}
	return nil
}

// IsChangelogFile reports whether path looks like a changelog document.
func IsChangelogFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return name == "changelog.md" || strings.HasSuffix(name, ".changelog.md")
}
