package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Version is a release version in strict semver form. The original spelling
// is preserved for serialization; the parsed value drives ordering.
type Version struct {
	raw    string
	parsed *semver.Version
}

// ParseVersion validates value as a strict semantic version.
func ParseVersion(value string) (Version, error) {
	v, err := semver.StrictNewVersion(value)
	if err != nil {
		return Version{}, &InvalidVersionError{Value: value, Cause: err}
	}
	return Version{raw: value, parsed: v}, nil
}

// String returns the version exactly as written.
func (v Version) String() string { return v.raw }

// IsZero reports whether the version is unset (the Unreleased case).
func (v Version) IsZero() bool { return v.parsed == nil }

// Equal reports semver equality.
func (v Version) Equal(other Version) bool {
	if v.parsed == nil || other.parsed == nil {
		return v.parsed == other.parsed
	}
	return v.parsed.Equal(other.parsed)
}

// Compare returns -1, 0, or 1 by semver precedence.
func (v Version) Compare(other Version) int {
	return v.parsed.Compare(other.parsed)
}

// InvalidVersionError reports a release label that is neither "Unreleased"
// nor a parseable semantic version.
type InvalidVersionError struct {
	Value string
	Cause error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid release version %q: %v", e.Value, e.Cause)
}

func (e *InvalidVersionError) Unwrap() error { return e.Cause }

// Date is an ISO 8601 calendar date (YYYY-MM-DD).
type Date struct {
	raw string
}

// ParseDate validates value as a YYYY-MM-DD calendar date.
func ParseDate(value string) (Date, error) {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return Date{}, &InvalidDateError{Value: value, Cause: err}
	}
	return Date{raw: value}, nil
}

// DateOf truncates t to a calendar date.
func DateOf(t time.Time) Date {
	return Date{raw: t.Format("2006-01-02")}
}

// String returns the date in YYYY-MM-DD form, or "" when unset.
func (d Date) String() string { return d.raw }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.raw == "" }

// InvalidDateError reports a date token that is not a valid calendar date.
type InvalidDateError struct {
	Value string
	Cause error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid release date %q: expected YYYY-MM-DD: %v", e.Value, e.Cause)
}

func (e *InvalidDateError) Unwrap() error { return e.Cause }

// Tag marks a finalized release as withdrawn or as an intentional no-change
// version bump.
type Tag int

const (
	TagNone Tag = iota
	TagYanked
	TagNoChanges
)

// String returns the bracketed marker content used in release headings.
func (t Tag) String() string {
	switch t {
	case TagYanked:
		return "YANKED"
	case TagNoChanges:
		return "NO CHANGES"
	}
	return ""
}

// ParseTag resolves a bracketed release marker.
func ParseTag(value string) (Tag, error) {
	switch value {
	case "YANKED":
		return TagYanked, nil
	case "NO CHANGES":
		return TagNoChanges, nil
	}
	return TagNone, fmt.Errorf("invalid release tag %q: expected YANKED or NO CHANGES", value)
}

var (
	unreleasedHeading = regexp.MustCompile(`(?i)^\[?unreleased]?$`)
	releaseHeading    = regexp.MustCompile(`^\[?([^\]\s]+)]?(?:\s+-\s+(\S+))?(?:\s+\[([^\]]+)])?$`)
)

// headingInfo is the parsed form of a level-2 release heading.
type headingInfo struct {
	unreleased bool
	version    Version
	date       Date
	tag        Tag
}

// parseReleaseHeading parses the text of a level-2 heading.
//
// Grammar: "[Unreleased]" (brackets optional, case-insensitive), or
// "[<semver>]" optionally followed by " - <yyyy-mm-dd>" and a trailing
// "[YANKED]" or "[NO CHANGES]" marker. The brackets around the version are
// optional because a matching link-reference definition may or may not exist.
func parseReleaseHeading(text string) (headingInfo, error) {
	text = strings.TrimSpace(text)
	if unreleasedHeading.MatchString(text) {
		return headingInfo{unreleased: true}, nil
	}

	m := releaseHeading.FindStringSubmatch(text)
	if m == nil {
		return headingInfo{}, &InvalidVersionError{
			Value: text,
			Cause: fmt.Errorf("heading does not match [<version>] - <date> [<tag>]"),
		}
	}

	version, err := ParseVersion(m[1])
	if err != nil {
		return headingInfo{}, err
	}

	info := headingInfo{version: version}
	if m[2] != "" {
		date, err := ParseDate(m[2])
		if err != nil {
			return headingInfo{}, err
		}
		info.date = date
	}
	if m[3] != "" {
		tag, err := ParseTag(m[3])
		if err != nil {
			return headingInfo{}, err
		}
		info.tag = tag
	}
	return info, nil
}
