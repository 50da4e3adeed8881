package lint

import (
	"git.home.luguber.info/inful/changelog/internal/changelog"
	"git.home.luguber.info/inful/changelog/internal/markdown"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but do not
	// prevent the file from being parsed and edited programmatically.
	SeverityWarning Severity = iota
	// SeverityError indicates blocking issues: the strict parser rejects
	// the file outright.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a single problem found in a changelog file.
type Issue struct {
	Path     string            `json:"path"`
	Severity Severity          `json:"severity"`
	Rule     string            `json:"rule"`
	Message  string            `json:"message"`
	Start    markdown.Position `json:"start"`
	End      markdown.Position `json:"end"`
}

// MarshalText keeps the JSON output human-readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue
	FilesTotal int
}

// HasErrors reports whether any error-level issues exist.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// issueFromDiagnostic converts a builder diagnostic into a reportable issue.
func issueFromDiagnostic(path string, d changelog.Diagnostic) Issue {
	severity := SeverityWarning
	if d.Blocking() {
		severity = SeverityError
	}
	return Issue{
		Path:     path,
		Severity: severity,
		Rule:     string(d.Code),
		Message:  d.Message,
		Start:    d.Start,
		End:      d.End,
	}
}
