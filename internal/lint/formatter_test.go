package lint

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/changelog/internal/markdown"
)

func sampleResult() *Result {
	return &Result{
		FilesTotal: 1,
		Issues: []Issue{
			{
				Path:     "CHANGELOG.md",
				Severity: SeverityError,
				Rule:     "invalid-version",
				Message:  `invalid release version "1.0"`,
				Start:    markdown.Position{Line: 3, Column: 1, Offset: 12},
				End:      markdown.Position{Line: 3, Column: 20, Offset: 31},
			},
			{
				Path:     "CHANGELOG.md",
				Severity: SeverityWarning,
				Rule:     "missing-unreleased",
				Message:  "changelog has no [Unreleased] section",
				Start:    markdown.Position{Line: 1, Column: 1},
				End:      markdown.Position{Line: 1, Column: 12},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "text", "json", "github"} {
		f, err := NewFormatter(name)
		require.NoError(t, err, name)
		require.NotNil(t, f, name)
	}

	_, err := NewFormatter("xml")
	require.Error(t, err)
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "CHANGELOG.md\n")
	assert.Contains(t, out, "3:1\tERROR\tinvalid release version \"1.0\" (invalid-version)")
	assert.Contains(t, out, "1:1\tWARNING\tchangelog has no [Unreleased] section (missing-unreleased)")
	assert.Contains(t, out, "1 file(s) checked: 1 error(s), 1 warning(s)\n")
}

func TestTextFormatter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(&buf, &Result{FilesTotal: 3}))
	assert.Equal(t, "3 file(s) checked: 0 error(s), 0 warning(s)\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleResult()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "ERROR", decoded[0]["severity"])
	assert.Equal(t, "invalid-version", decoded[0]["rule"])

	start, ok := decoded[0]["start"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), start["line"])
}

func TestGitHubFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&GitHubFormatter{}).Format(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out,
		"::error file=CHANGELOG.md,line=3,endLine=3,title=invalid-version::invalid release version \"1.0\"\n")
	assert.Contains(t, out,
		"::warning file=CHANGELOG.md,line=1,endLine=1,title=missing-unreleased::changelog has no [Unreleased] section\n")
}

func TestEscapeAnnotation(t *testing.T) {
	assert.Equal(t, "a%25b%0Ac%0Dd", escapeAnnotation("a%b\nc\rd"))
}
