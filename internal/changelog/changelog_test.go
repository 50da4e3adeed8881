package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVersion(t *testing.T, value string) Version {
	t.Helper()
	v, err := ParseVersion(value)
	require.NoError(t, err)
	return v
}

func mustDate(t *testing.T, value string) Date {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestReleaseAdd(t *testing.T) {
	var release Release
	require.NoError(t, release.Add(GroupFixed, "Fixed a bug"))
	require.NoError(t, release.Add(GroupFixed, "Fixed another bug"))
	assert.Equal(t, []string{"Fixed a bug", "Fixed another bug"}, release.Changes.Get(GroupFixed))
}

func TestReleaseAdd_EmptyText(t *testing.T) {
	var release Release
	err := release.Add(GroupAdded, "")
	var emptyErr *EmptyChangeTextError
	require.ErrorAs(t, err, &emptyErr)

	err = release.Add(GroupAdded, "   \n ")
	require.ErrorAs(t, err, &emptyErr)
}

func TestPromoteUnreleased(t *testing.T) {
	model, err := Parse([]byte("# Changelog\n\n## [Unreleased]\n"))
	require.NoError(t, err)
	require.NoError(t, model.Unreleased.Add(GroupFixed, "bug X"))
	require.NoError(t, model.Unreleased.Add(GroupDeprecated, "feature Y"))

	err = model.PromoteUnreleased(PromoteOptions{
		Version: mustVersion(t, "0.0.1"),
		Date:    mustDate(t, "2023-01-01"),
		Link:    "https://example/v0.0.1",
	})
	require.NoError(t, err)

	require.Equal(t, 1, model.Releases.Len())
	release := model.Releases.All()[0]
	assert.Equal(t, "0.0.1", release.Version.String())
	assert.Equal(t, []string{"bug X"}, release.Changes.Get(GroupFixed))
	assert.Equal(t, []string{"feature Y"}, release.Changes.Get(GroupDeprecated))
	assert.True(t, model.Unreleased.Changes.IsEmpty())

	assert.Contains(t, model.String(), "[0.0.1]: https://example/v0.0.1")
}

func TestPromoteUnreleased_DuplicateVersionLeavesModelUnmodified(t *testing.T) {
	model, err := Parse([]byte("# Changelog\n\n## [Unreleased]\n\n### Added\n\n- Added feature X\n\n" +
		"## [0.0.1] - 2023-01-01\n\n### Fixed\n\n- Fixed feature Y\n"))
	require.NoError(t, err)

	before := model.String()
	err = model.PromoteUnreleased(PromoteOptions{Version: mustVersion(t, "0.0.1")})

	var dup *DuplicateVersionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "0.0.1", dup.Version.String())
	assert.Equal(t, before, model.String())
}

func TestPromoteUnreleased_DateDefaultsToInjectedClock(t *testing.T) {
	model, err := Parse([]byte("## [Unreleased]\n\n### Added\n\n- something\n"))
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, 1, 10, 15, 4, 5, 0, time.UTC) }
	require.NoError(t, model.PromoteUnreleased(PromoteOptions{
		Version: mustVersion(t, "1.0.0"),
		Now:     now,
	}))
	assert.Equal(t, "2025-01-10", model.Releases.All()[0].Date.String())
}

func TestPromoteUnreleased_EmptyUnreleasedAndRepeatedPromotes(t *testing.T) {
	model, err := Parse([]byte("## [Unreleased]\n\n### Fixed\n\n- a fix\n"))
	require.NoError(t, err)

	require.NoError(t, model.PromoteUnreleased(PromoteOptions{
		Version: mustVersion(t, "0.1.0"),
		Date:    mustDate(t, "2024-01-01"),
	}))

	// Promoting again without new changes is legal: the second release
	// simply carries no changes.
	require.NoError(t, model.PromoteUnreleased(PromoteOptions{
		Version: mustVersion(t, "0.2.0"),
		Date:    mustDate(t, "2024-02-01"),
	}))

	releases := model.Releases.All()
	require.Len(t, releases, 2)
	assert.Equal(t, "0.2.0", releases[0].Version.String())
	assert.True(t, releases[0].Changes.IsEmpty())
	assert.Equal(t, "0.1.0", releases[1].Version.String())
	assert.Equal(t, []string{"a fix"}, releases[1].Changes.Get(GroupFixed))
}

func TestPromoteUnreleased_RequiresVersion(t *testing.T) {
	model := &Changelog{}
	err := model.PromoteUnreleased(PromoteOptions{})
	var invalid *InvalidVersionError
	require.ErrorAs(t, err, &invalid)
}

func TestPromoteUnreleased_WithTag(t *testing.T) {
	model, err := Parse([]byte("## [Unreleased]\n"))
	require.NoError(t, err)

	require.NoError(t, model.PromoteUnreleased(PromoteOptions{
		Version: mustVersion(t, "1.0.1"),
		Date:    mustDate(t, "2024-05-01"),
		Tag:     TagYanked,
	}))
	assert.Contains(t, model.String(), "## [1.0.1] - 2024-05-01 [YANKED]")
}

func TestReleasesFind(t *testing.T) {
	model, err := Parse([]byte("## [Unreleased]\n\n## [1.0.0] - 2023-01-01\n\n### Added\n\n- a\n"))
	require.NoError(t, err)

	release, ok := model.Releases.Find(mustVersion(t, "1.0.0"))
	require.True(t, ok)
	assert.Equal(t, "1.0.0", release.Version.String())
	assert.True(t, model.Releases.Contains(mustVersion(t, "1.0.0")))
	assert.False(t, model.Releases.Contains(mustVersion(t, "2.0.0")))
}

func TestReleaseLabel(t *testing.T) {
	var unreleased Release
	assert.Equal(t, "unreleased", unreleased.Label())

	release := Release{Version: mustVersion(t, "1.2.3")}
	assert.Equal(t, "1.2.3", release.Label())
}
