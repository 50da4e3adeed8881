package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScan_HeadingLevelsAndRawText(t *testing.T) {
	src := []byte("# Changelog\n\n## [1.0.0] - 2023-01-01\n\n### Added\n")
	blocks := Scan(src)
	require.Len(t, blocks, 3)

	require.Equal(t, KindHeading, blocks[0].Kind)
	require.Equal(t, 1, blocks[0].Level)
	require.Equal(t, "Changelog", blocks[0].Text)

	// Brackets must survive verbatim; the release grammar depends on them.
	require.Equal(t, 2, blocks[1].Level)
	require.Equal(t, "[1.0.0] - 2023-01-01", blocks[1].Text)

	require.Equal(t, 3, blocks[2].Level)
	require.Equal(t, "Added", blocks[2].Text)
}

func TestScan_HeadingSpanCoversWholeLine(t *testing.T) {
	src := []byte("# Title\n\n## [Unreleased]\n")
	blocks := Scan(src)
	require.Len(t, blocks, 2)

	h := blocks[1]
	require.Equal(t, 3, h.Span.Start.Line)
	require.Equal(t, 1, h.Span.Start.Column)
	require.Equal(t, 9, h.Span.Start.Offset)
	require.Equal(t, 3, h.Span.End.Line)
	require.Equal(t, len(src)-1, h.Span.End.Offset)
}

func TestScan_ListItems(t *testing.T) {
	src := []byte("### Fixed\n\n- First fix\n- Second fix\n")
	blocks := Scan(src)
	require.Len(t, blocks, 3)

	require.Equal(t, KindListItem, blocks[1].Kind)
	require.Equal(t, "First fix", blocks[1].Text)
	require.Equal(t, 3, blocks[1].Span.Start.Line)
	require.Equal(t, 1, blocks[1].Span.Start.Column)

	require.Equal(t, KindListItem, blocks[2].Kind)
	require.Equal(t, "Second fix", blocks[2].Text)
	require.Equal(t, 4, blocks[2].Span.Start.Line)
}

func TestScan_MultiLineListItem(t *testing.T) {
	src := []byte("- Start versioning based on the current English version at 0.3.0 to help\n  translation authors keep things up-to-date.\n")
	blocks := Scan(src)
	require.Len(t, blocks, 1)
	require.Equal(t, KindListItem, blocks[0].Kind)
	require.Equal(t,
		"Start versioning based on the current English version at 0.3.0 to help\ntranslation authors keep things up-to-date.",
		blocks[0].Text)
}

func TestScan_ParagraphKeepsInlineMarkup(t *testing.T) {
	src := []byte("The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),\nand this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n")
	blocks := Scan(src)
	require.Len(t, blocks, 1)
	require.Equal(t, KindParagraph, blocks[0].Kind)
	require.Equal(t, string(src[:len(src)-1]), blocks[0].Text)
}

func TestScan_LinkDefinitions(t *testing.T) {
	src := []byte("## [Unreleased]\n\n[unreleased]: https://example.com/compare/v1.0.0...HEAD\n[1.0.0]: https://example.com/releases/tag/v1.0.0\n")
	blocks := Scan(src)
	require.Len(t, blocks, 3)

	require.Equal(t, KindLinkDefinition, blocks[1].Kind)
	require.Equal(t, "unreleased", blocks[1].Label)
	require.Equal(t, "https://example.com/compare/v1.0.0...HEAD", blocks[1].URL)
	require.Equal(t, 3, blocks[1].Span.Start.Line)

	require.Equal(t, KindLinkDefinition, blocks[2].Kind)
	require.Equal(t, "1.0.0", blocks[2].Label)
	require.Equal(t, 4, blocks[2].Span.Start.Line)
}

func TestScan_SkipsCodeBlocksAndThematicBreaks(t *testing.T) {
	src := []byte("# Title\n\n```\n## not a heading\n```\n\n---\n")
	blocks := Scan(src)
	require.Len(t, blocks, 1)
	require.Equal(t, KindHeading, blocks[0].Kind)
}

func TestScan_EmptyAndDegenerateInput(t *testing.T) {
	require.Empty(t, Scan(nil))
	require.Empty(t, Scan([]byte("")))
	require.NotPanics(t, func() { Scan([]byte("##\n\n-\n")) })
}

func TestLineIndex_Positions(t *testing.T) {
	ix := newLineIndex([]byte("abc\ndef\n"))

	p := ix.position(0)
	require.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, p)

	p = ix.position(5)
	require.Equal(t, Position{Line: 2, Column: 2, Offset: 5}, p)

	require.Equal(t, 4, ix.lineStart(6))
}
