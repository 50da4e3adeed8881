package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter returns the formatter for the given name: "text", "json", or
// "github" (GitHub Actions workflow annotations).
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "github":
		return &GitHubFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped by file with a trailing summary.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	byFile := make(map[string][]Issue)
	var order []string
	for _, issue := range result.Issues {
		if _, seen := byFile[issue.Path]; !seen {
			order = append(order, issue.Path)
		}
		byFile[issue.Path] = append(byFile[issue.Path], issue)
	}

	for _, path := range order {
		if _, err := fmt.Fprintf(w, "%s\n", path); err != nil {
			return err
		}
		for _, issue := range byFile[path] {
			if _, err := fmt.Fprintf(w, "  %d:%d\t%s\t%s (%s)\n",
				issue.Start.Line, issue.Start.Column, issue.Severity, issue.Message, issue.Rule); err != nil {
				return err
			}
		}
	}

	if len(result.Issues) > 0 {
		if _, err := fmt.Fprintln(w, strings.Repeat("─", 60)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d file(s) checked: %d error(s), %d warning(s)\n",
		result.FilesTotal, result.ErrorCount(), result.WarningCount())
	return err
}

// JSONFormatter emits the issue list as a JSON array for tooling.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Issues)
}

// GitHubFormatter emits GitHub Actions workflow commands so issues surface
// as inline annotations on pull requests.
type GitHubFormatter struct{}

func (f *GitHubFormatter) Format(w io.Writer, result *Result) error {
	for _, issue := range result.Issues {
		level := "warning"
		if issue.Severity == SeverityError {
			level = "error"
		}
		if _, err := fmt.Fprintf(w, "::%s file=%s,line=%d,endLine=%d,title=%s::%s\n",
			level, issue.Path, issue.Start.Line, issue.End.Line, issue.Rule,
			escapeAnnotation(issue.Message)); err != nil {
			return err
		}
	}
	return nil
}

// escapeAnnotation applies the workflow-command data escaping rules.
func escapeAnnotation(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
