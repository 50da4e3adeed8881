package changelog

import (
	"fmt"
	"sort"

	"git.home.luguber.info/inful/changelog/internal/markdown"
)

// Code classifies a diagnostic.
type Code string

const (
	// Blocking codes: the strict parse entry point fails when these occur.
	CodeInvalidVersion Code = "invalid-version"
	CodeInvalidDate    Code = "invalid-date"

	// Non-blocking codes: collected alongside a still-usable model.
	CodeMissingUnreleased       Code = "missing-unreleased"
	CodeUnrecognizedChangeGroup Code = "unrecognized-change-group"
	CodeUncategorizedChange     Code = "uncategorized-change"
	CodeDuplicateVersion        Code = "duplicate-version"
	CodeEmptyRelease            Code = "empty-release"
	CodeOutOfOrderRelease       Code = "out-of-order-release"
	CodeMissingDate             Code = "missing-date"
)

// Diagnostic is a structured, non-fatal finding with a source span. These are
// plain data collected into a list, never unwound control flow: the builder
// continues past every problem it can.
type Diagnostic struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Start   markdown.Position `json:"start"`
	End     markdown.Position `json:"end"`
}

// Blocking reports whether the diagnostic fails the strict parse entry point.
func (d Diagnostic) Blocking() bool {
	return d.Code == CodeInvalidVersion || d.Code == CodeInvalidDate
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d %s: %s", d.Start.Line, d.Start.Column, d.Code, d.Message)
}

// collector accumulates diagnostics during a build pass.
type collector struct {
	diags []Diagnostic
}

func (c *collector) add(code Code, span markdown.Span, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Start:   span.Start,
		End:     span.End,
	})
}

// sorted returns the diagnostics ordered by document position.
func (c *collector) sorted() []Diagnostic {
	out := append([]Diagnostic(nil), c.diags...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Offset < out[j].Start.Offset
	})
	return out
}

// ParseError is the strict entry point's failure: one or more blocking
// diagnostics, no model.
type ParseError struct {
	Diagnostics []Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 1 {
		d := e.Diagnostics[0]
		return fmt.Sprintf("line %d: %s", d.Start.Line, d.Message)
	}
	return fmt.Sprintf("changelog has %d blocking problems (first: %s)",
		len(e.Diagnostics), e.Diagnostics[0].Message)
}
