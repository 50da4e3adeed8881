// Package gitlink derives release compare URLs from a local git repository's
// origin remote, so promote can attach links without the caller spelling out
// forge URLs by hand.
package gitlink

import (
	"fmt"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Resolver builds compare links against a repository's web URL.
type Resolver struct {
	baseURL string
}

// Open inspects the repository at dir and returns a Resolver for its origin
// remote.
func Open(dir string) (*Resolver, error) {
	repository, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	remote, err := repository.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("repository has no origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, fmt.Errorf("origin remote has no URL")
	}

	base, err := normalizeRemoteURL(urls[0])
	if err != nil {
		return nil, err
	}
	return &Resolver{baseURL: base}, nil
}

// BaseURL returns the normalized https web URL of the repository.
func (r *Resolver) BaseURL() string { return r.baseURL }

// CompareLink returns the web URL comparing two release tags.
func (r *Resolver) CompareLink(fromVersion, toVersion string) string {
	return fmt.Sprintf("%s/compare/v%s...v%s", r.baseURL, fromVersion, toVersion)
}

// UnreleasedLink returns the web URL comparing the latest release to HEAD.
func (r *Resolver) UnreleasedLink(latestVersion string) string {
	return fmt.Sprintf("%s/compare/v%s...HEAD", r.baseURL, latestVersion)
}

// TagLink returns the web URL of a single release tag, used for the oldest
// release which has nothing to compare against.
func (r *Resolver) TagLink(version string) string {
	return fmt.Sprintf("%s/releases/tag/v%s", r.baseURL, version)
}

var scpLikeURL = regexp.MustCompile(`^(?:[\w.-]+@)?([\w.-]+):(.+)$`)

// normalizeRemoteURL converts the common remote URL shapes (https, ssh://,
// scp-like git@host:org/repo.git) into a plain https web URL.
func normalizeRemoteURL(raw string) (string, error) {
	url := strings.TrimSuffix(raw, ".git")

	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return strings.TrimSuffix(url, "/"), nil
	case strings.HasPrefix(url, "ssh://"):
		rest := strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		host, path, ok := strings.Cut(rest, "/")
		if !ok {
			return "", fmt.Errorf("cannot derive web URL from remote %q", raw)
		}
		host, _, _ = strings.Cut(host, ":") // drop ssh port
		return "https://" + host + "/" + strings.TrimSuffix(path, "/"), nil
	case strings.Contains(url, "://"):
		// Some other scheme (file://, git://); nothing to link to.
	default:
		if m := scpLikeURL.FindStringSubmatch(url); m != nil {
			return "https://" + m[1] + "/" + strings.TrimSuffix(m[2], "/"), nil
		}
	}
	return "", fmt.Errorf("cannot derive web URL from remote %q", raw)
}
