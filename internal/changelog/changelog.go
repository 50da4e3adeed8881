// Package changelog models documents in the Keep a Changelog Markdown
// dialect: parsing raw text into a structured Changelog, editing it (adding
// entries, promoting the Unreleased section), and rendering it back to its
// canonical textual form.
package changelog

import (
	"fmt"
	"strings"
	"time"
)

// Changelog is the root of the document model. It is a single-owner tree:
// the changelog owns its releases, each release owns its change lists.
type Changelog struct {
	// Title is the text of the first level-1 heading.
	Title string
	// Description holds the free-text paragraphs between the title and the
	// first release section, raw Markdown preserved.
	Description []string
	// Unreleased is the standing release-in-progress bucket. Always present.
	Unreleased Release
	// Releases lists finalized releases, most recent first.
	Releases Releases
}

// Release is either the Unreleased bucket (zero Version and Date) or a
// finalized release.
type Release struct {
	Version Version
	Date    Date
	Tag     Tag
	// Link is the release's compare URL, resolved from the document's
	// link-reference definitions. Empty when the release has no link.
	Link string
	// Changes groups the release's entries by change category.
	Changes *Changes
	// Uncategorized keeps bullet entries that appeared before any category
	// heading. They are preserved so user content is never dropped, but the
	// serializer does not emit them under a canonical heading.
	Uncategorized []string
}

// Label returns the link-reference label for the release ("unreleased" or
// the version string).
func (r *Release) Label() string {
	if r.Version.IsZero() {
		return "unreleased"
	}
	return r.Version.String()
}

// Add appends text to the release's entries under group.
//
// Empty or blank text is rejected with EmptyChangeTextError.
func (r *Release) Add(group ChangeGroup, text string) error {
	if strings.TrimSpace(text) == "" {
		return &EmptyChangeTextError{}
	}
	if r.Changes == nil {
		r.Changes = NewChanges()
	}
	r.Changes.Add(group, text)
	return nil
}

// EmptyChangeTextError is returned when adding a change with no text.
type EmptyChangeTextError struct{}

func (e *EmptyChangeTextError) Error() string {
	return "change entry text must not be empty"
}

// Releases is the ordered list of finalized releases, keyed by version.
type Releases struct {
	list []*Release
}

// Len returns the number of finalized releases.
func (rs *Releases) Len() int { return len(rs.list) }

// All returns the releases in document order (most recent first).
func (rs *Releases) All() []*Release {
	return append([]*Release(nil), rs.list...)
}

// Find returns the release with the given version, if present.
func (rs *Releases) Find(version Version) (*Release, bool) {
	for _, r := range rs.list {
		if r.Version.Equal(version) {
			return r, true
		}
	}
	return nil, false
}

// Contains reports whether a release with the given version exists.
func (rs *Releases) Contains(version Version) bool {
	_, ok := rs.Find(version)
	return ok
}

// prepend inserts a release at the front (most recent position).
func (rs *Releases) prepend(r *Release) {
	rs.list = append([]*Release{r}, rs.list...)
}

// append adds a release at the back, replacing an existing release with the
// same version in place. It reports whether a replacement happened.
func (rs *Releases) append(r *Release) (replaced bool) {
	for i, existing := range rs.list {
		if existing.Version.Equal(r.Version) {
			rs.list[i] = r
			return true
		}
	}
	rs.list = append(rs.list, r)
	return false
}

// PromoteOptions configures PromoteUnreleased.
type PromoteOptions struct {
	// Version is the target release version. Required.
	Version Version
	// Date is the release date. When zero, Now is consulted; the clock is
	// explicit so promotion stays deterministic under test.
	Date Date
	// Now supplies the current time for the date default. When nil,
	// time.Now is used.
	Now func() time.Time
	// Tag optionally marks the new release (YANKED, NO CHANGES).
	Tag Tag
	// Link optionally attaches a compare URL to the new release.
	Link string
}

// DuplicateVersionError is returned when a promoted version already exists.
type DuplicateVersionError struct {
	Version Version
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("release version %s already exists in the changelog", e.Version)
}

// PromoteUnreleased moves the Unreleased changes into a new finalized release
// at the front of Releases and clears the Unreleased bucket in place.
//
// An empty Unreleased section is allowed: the result is a release heading
// with no change groups. On error the model is left unmodified.
func (c *Changelog) PromoteUnreleased(opts PromoteOptions) error {
	if opts.Version.IsZero() {
		return &InvalidVersionError{Value: "", Cause: fmt.Errorf("promote requires a target version")}
	}
	if c.Releases.Contains(opts.Version) {
		return &DuplicateVersionError{Version: opts.Version}
	}

	date := opts.Date
	if date.IsZero() {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		date = DateOf(now())
	}

	changes := NewChanges()
	if c.Unreleased.Changes != nil {
		changes = c.Unreleased.Changes.Clone()
	}

	c.Releases.prepend(&Release{
		Version: opts.Version,
		Date:    date,
		Tag:     opts.Tag,
		Link:    opts.Link,
		Changes: changes,
	})

	if c.Unreleased.Changes == nil {
		c.Unreleased.Changes = NewChanges()
	} else {
		c.Unreleased.Changes.Clear()
	}
	return nil
}
