package gitlink

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRemoteURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"https", "https://github.com/acme/widget.git", "https://github.com/acme/widget"},
		{"https no suffix", "https://github.com/acme/widget", "https://github.com/acme/widget"},
		{"http", "http://git.example.com/acme/widget.git", "http://git.example.com/acme/widget"},
		{"ssh", "ssh://git@github.com/acme/widget.git", "https://github.com/acme/widget"},
		{"ssh with port", "ssh://git@git.example.com:2222/acme/widget.git", "https://git.example.com/acme/widget"},
		{"scp-like", "git@github.com:acme/widget.git", "https://github.com/acme/widget"},
		{"scp-like no user", "github.com:acme/widget.git", "https://github.com/acme/widget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeRemoteURL(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRemoteURL_Unsupported(t *testing.T) {
	_, err := normalizeRemoteURL("file:///srv/git/widget.git")
	require.Error(t, err)

	_, err = normalizeRemoteURL("ssh://git@hostonly")
	require.Error(t, err)
}

func TestResolverLinks(t *testing.T) {
	r := &Resolver{baseURL: "https://github.com/acme/widget"}

	assert.Equal(t, "https://github.com/acme/widget", r.BaseURL())
	assert.Equal(t, "https://github.com/acme/widget/compare/v1.0.0...v1.1.0", r.CompareLink("1.0.0", "1.1.0"))
	assert.Equal(t, "https://github.com/acme/widget/compare/v1.1.0...HEAD", r.UnreleasedLink("1.1.0"))
	assert.Equal(t, "https://github.com/acme/widget/releases/tag/v1.0.0", r.TagLink("1.0.0"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	repository, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repository.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widget.git"},
	})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widget", r.BaseURL())
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestOpen_NoOrigin(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no origin remote")
}
