package changelog

import (
	"fmt"
	"strings"
)

// Render serializes the model to its canonical textual form.
//
// Rendering is deterministic and total: every valid model has exactly one
// canonical form, change groups appear in canonical rank order regardless of
// insertion order, the Unreleased heading is always emitted (it is a standing
// placeholder), and the link-reference table is regenerated from the model
// (Unreleased first, then releases in document order).
func (c *Changelog) Render() []byte {
	var w blockWriter

	if c.Title != "" {
		w.block("# " + c.Title)
	}
	for _, para := range c.Description {
		w.block(para)
	}

	w.block("## [Unreleased]")
	writeChanges(&w, c.Unreleased.Changes)

	for _, r := range c.Releases.All() {
		heading := fmt.Sprintf("## [%s]", r.Version)
		if !r.Date.IsZero() {
			heading += " - " + r.Date.String()
		}
		if r.Tag != TagNone {
			heading += fmt.Sprintf(" [%s]", r.Tag)
		}
		w.block(heading)
		writeChanges(&w, r.Changes)
	}

	writeLinkTable(&w, c)

	w.finish()
	return []byte(w.String())
}

// String renders the canonical form as a string.
func (c *Changelog) String() string {
	return string(c.Render())
}

// writeChanges emits a release's non-empty groups in canonical rank order.
// Uncategorized entries are deliberately not emitted: they carry no group
// heading the format could express, and re-homing them is a human decision.
func writeChanges(w *blockWriter, changes *Changes) {
	if changes == nil {
		return
	}
	for _, group := range CanonicalGroups {
		items := changes.Get(group)
		if len(items) == 0 {
			continue
		}
		w.block("### " + group.String())
		var b strings.Builder
		for i, item := range items {
			if i > 0 {
				b.WriteString("\n")
			}
			// Continuation lines of multi-line entries are indented to stay
			// inside the bullet.
			b.WriteString("- " + strings.ReplaceAll(item, "\n", "\n  "))
		}
		w.block(b.String())
	}
}

// writeLinkTable regenerates the footnote-style reference definitions. A
// label is emitted only for releases that actually carry a link, so the
// table never names a release the document does not contain.
func writeLinkTable(w *blockWriter, c *Changelog) {
	var defs []string
	if c.Unreleased.Link != "" {
		defs = append(defs, fmt.Sprintf("[unreleased]: %s", c.Unreleased.Link))
	}
	for _, r := range c.Releases.All() {
		if r.Link != "" {
			defs = append(defs, fmt.Sprintf("[%s]: %s", r.Version, r.Link))
		}
	}
	if len(defs) > 0 {
		w.block(strings.Join(defs, "\n"))
	}
}

// blockWriter joins top-level blocks with blank lines and guarantees a
// trailing newline.
type blockWriter struct {
	b     strings.Builder
	wrote bool
}

func (w *blockWriter) block(s string) {
	if w.wrote {
		w.b.WriteString("\n\n")
	}
	w.b.WriteString(s)
	w.wrote = true
}

func (w *blockWriter) finish() {
	if w.wrote {
		w.b.WriteString("\n")
	}
}

func (w *blockWriter) String() string { return w.b.String() }
