package changelog

import (
	"errors"

	"git.home.luguber.info/inful/changelog/internal/markdown"
)

// BuildOptions tunes the build pass.
type BuildOptions struct {
	// RequireDates flags finalized releases that omit a date. Off by
	// default: real-world changelogs legitimately drop dates, so omission
	// is accepted silently unless a lint configuration asks otherwise.
	RequireDates bool
}

// Parse parses src into a Changelog.
//
// Parse is error-tolerant: structural and stylistic problems (missing
// Unreleased section, unrecognized change groups, uncategorized bullets,
// duplicate versions) do not fail the parse — they are surfaced by Lint.
// Only blocking conditions fail: a declared release heading whose version is
// not valid semver, or a date that is not a calendar date. On failure the
// returned error is a *ParseError carrying the blocking diagnostics.
func Parse(src []byte) (*Changelog, error) {
	model, diags := build(src, BuildOptions{})
	if blocking := blockingOnly(diags); len(blocking) > 0 {
		return nil, &ParseError{Diagnostics: blocking}
	}
	return model, nil
}

// Lint runs the build pass and returns every diagnostic, ordered by document
// position. The model is discarded: this entry point serves tooling that only
// needs the complete defect list for a file in a single pass.
func Lint(src []byte, opts BuildOptions) []Diagnostic {
	_, diags := build(src, opts)
	return diags
}

func blockingOnly(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Blocking() {
			out = append(out, d)
		}
	}
	return out
}

// sectionState tracks where bullet items land within the current release
// section.
type sectionState int

const (
	// stateNoGroup: no level-3 heading seen yet in this section. Bullets are
	// uncategorized and each raises a diagnostic.
	stateNoGroup sectionState = iota
	// stateGroup: bullets append to the current recognized group.
	stateGroup
	// stateSkippedGroup: the current level-3 heading was unrecognized. Its
	// bullets are retained uncategorized; the heading diagnostic already
	// covers them.
	stateSkippedGroup
)

// build walks the block sequence once, applying the section grammar.
func build(src []byte, opts BuildOptions) (*Changelog, []Diagnostic) {
	blocks := markdown.Scan(src)

	model := &Changelog{
		Unreleased: Release{Changes: NewChanges()},
	}
	table := newLinkTable()
	col := &collector{}

	var (
		sawTitle      bool
		sawRelease    bool
		sawUnreleased bool

		// current is the release section bullets and groups apply to. nil
		// before the first level-2 heading or inside an unparseable section.
		current      *Release
		state        sectionState
		currentGroup ChangeGroup

		prevVersion Version
		// headingSpans remembers each finalized release's heading for
		// end-of-pass diagnostics.
		headingSpans = map[*Release]markdown.Span{}
	)

	for _, b := range blocks {
		switch b.Kind {
		case markdown.KindHeading:
			switch {
			case b.Level == 1:
				if !sawTitle {
					model.Title = b.Text
					sawTitle = true
				}
			case b.Level == 2:
				sawRelease = true
				state = stateNoGroup
				info, err := parseReleaseHeading(b.Text)
				if err != nil {
					current = nil
					code := CodeInvalidVersion
					var dateErr *InvalidDateError
					if errors.As(err, &dateErr) {
						code = CodeInvalidDate
					}
					col.add(code, b.Span, "%v", err)
					continue
				}
				if info.unreleased {
					sawUnreleased = true
					current = &model.Unreleased
					continue
				}
				release := &Release{
					Version: info.version,
					Date:    info.date,
					Tag:     info.tag,
					Changes: NewChanges(),
				}
				if opts.RequireDates && info.date.IsZero() {
					col.add(CodeMissingDate, b.Span,
						"release %s has no date", info.version)
				}
				if !prevVersion.IsZero() && prevVersion.Compare(info.version) < 0 {
					col.add(CodeOutOfOrderRelease, b.Span,
						"release %s appears after older release %s; releases should be most recent first",
						info.version, prevVersion)
				}
				prevVersion = info.version
				if model.Releases.append(release) {
					// Later occurrence wins; the earlier one survives only
					// as the diagnostic target.
					col.add(CodeDuplicateVersion, b.Span,
						"release version %s appears more than once", info.version)
				}
				headingSpans[release] = b.Span
				current = release
			case b.Level == 3:
				if current == nil {
					continue
				}
				group, ok := ResolveGroup(b.Text)
				if !ok {
					state = stateSkippedGroup
					col.add(CodeUnrecognizedChangeGroup, b.Span,
						"unrecognized change group %q: expected one of Added, Changed, Deprecated, Removed, Fixed, Security",
						b.Text)
					continue
				}
				state = stateGroup
				currentGroup = group
			}

		case markdown.KindListItem:
			target := current
			if target == nil {
				if sawRelease {
					// Inside an unparseable release section; the heading
					// diagnostic already covers this content.
					continue
				}
				// Bullets in the preamble have no home in the model; keep
				// them on Unreleased rather than dropping content.
				target = &model.Unreleased
			}
			switch state {
			case stateGroup:
				target.Changes.Add(currentGroup, b.Text)
			case stateSkippedGroup:
				target.Uncategorized = append(target.Uncategorized, b.Text)
			default:
				target.Uncategorized = append(target.Uncategorized, b.Text)
				col.add(CodeUncategorizedChange, b.Span,
					"change entry is not under a change group heading")
			}

		case markdown.KindParagraph:
			if !sawRelease {
				model.Description = append(model.Description, b.Text)
			}

		case markdown.KindLinkDefinition:
			table.put(b.Label, b.URL)
		}
	}

	if !sawUnreleased {
		span := markdown.Span{}
		if len(blocks) > 0 {
			span = blocks[0].Span
		}
		col.add(CodeMissingUnreleased, span,
			"changelog has no [Unreleased] section")
	}

	for _, r := range model.Releases.All() {
		if r.Changes.IsEmpty() && len(r.Uncategorized) == 0 && r.Tag != TagNoChanges {
			col.add(CodeEmptyRelease, headingSpans[r],
				"release %s has no changes", r.Version)
		}
	}

	table.resolve(model)
	return model, col.sorted()
}
