// Package markdown adapts a generic CommonMark parser (Goldmark) into the flat
// block sequence the changelog builder consumes: headings, bullet list items,
// paragraphs, and link-reference definitions, each carrying a byte-accurate
// source span.
package markdown

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Kind discriminates the block types the changelog grammar cares about.
type Kind int

const (
	KindHeading Kind = iota
	KindListItem
	KindParagraph
	KindLinkDefinition
)

// Block is a single top-level Markdown construct.
//
// For headings, Text is the raw heading content (after the ATX marker) so that
// reference-style brackets survive verbatim. For list items, Text is the item
// content with the bullet marker stripped and continuation lines joined with
// newlines (their indentation removed). For paragraphs, Text is the raw source
// of the paragraph, inline markup intact.
type Block struct {
	Kind  Kind
	Level int    // heading level, 0 otherwise
	Text  string // raw content, see above
	Label string // link definition label
	URL   string // link definition destination
	Span  Span
}

// Scan parses src and returns the flat block sequence in document order.
//
// Scan never fails: constructs outside the subset (code blocks, thematic
// breaks, HTML) are skipped, and degenerate input yields an empty sequence.
func Scan(src []byte) []Block {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	ix := newLineIndex(src)
	var blocks []Block

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			txt, span, ok := rawLines(node, src, ix)
			if !ok {
				// Empty heading ("##" alone); degenerate but kept.
				span = ix.span(0, 0)
			}
			blocks = append(blocks, Block{
				Kind:  KindHeading,
				Level: node.Level,
				Text:  txt,
				Span:  span,
			})
		case *gmast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if li, ok := item.(*gmast.ListItem); ok {
					if b, ok := listItemBlock(li, src, ix); ok {
						blocks = append(blocks, b)
					}
				}
			}
		case *gmast.Paragraph:
			if txt, span, ok := rawLines(node, src, ix); ok {
				blocks = append(blocks, Block{
					Kind: KindParagraph,
					Text: txt,
					Span: span,
				})
			}
		}
	}

	// Goldmark keeps link-reference definitions in the parse context rather
	// than the AST, so they carry no position. Recover spans with a line scan.
	blocks = append(blocks, linkDefinitions(ctx, src, ix)...)

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Span.Start.Offset < blocks[j].Span.Start.Offset
	})
	return blocks
}

// rawLines joins the raw source lines of a block node, preserving inline
// markup exactly as written.
func rawLines(n gmast.Node, src []byte, ix *lineIndex) (string, Span, bool) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return "", Span{}, false
	}

	var parts []string
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(src)), "\n"))
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	end := last.Stop
	for end > first.Start && (src[end-1] == '\n' || src[end-1] == '\r') {
		end--
	}
	return strings.Join(parts, "\n"), ix.span(first.Start, end), true
}

// listItemBlock flattens a list item (including continuation lines of its
// child blocks) into a single Block. Continuation lines lose their
// indentation; the serializer re-indents them canonically.
func listItemBlock(item *gmast.ListItem, src []byte, ix *lineIndex) (Block, bool) {
	var parts []string
	start, end := -1, -1

	var collect func(n gmast.Node)
	collect = func(n gmast.Node) {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(src)), "\n")
			if len(parts) > 0 {
				line = strings.TrimLeft(line, " \t")
			}
			parts = append(parts, line)
			if start < 0 {
				start = seg.Start
			}
			stop := seg.Stop
			for stop > seg.Start && (src[stop-1] == '\n' || src[stop-1] == '\r') {
				stop--
			}
			if stop > end {
				end = stop
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Type() == gmast.TypeBlock {
				collect(c)
			}
		}
	}
	collect(item)

	if start < 0 {
		return Block{}, false
	}
	return Block{
		Kind: KindListItem,
		Text: strings.Join(parts, "\n"),
		Span: ix.span(start, end),
	}, true
}

var linkDefLine = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:\s*(\S+)`)

// linkDefinitions pairs the reference definitions recorded in the parse
// context with the source lines that declared them.
func linkDefinitions(ctx parser.Context, src []byte, ix *lineIndex) []Block {
	refs := ctx.References()
	if len(refs) == 0 {
		return nil
	}

	// Index candidate definition lines by lower-cased label.
	type defLine struct {
		start, end int
	}
	byLabel := make(map[string][]defLine)
	offset := 0
	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		if m := linkDefLine.FindSubmatch(line); m != nil {
			label := strings.ToLower(strings.TrimSpace(string(m[1])))
			end := offset + len(bytes.TrimRight(line, "\r\n"))
			byLabel[label] = append(byLabel[label], defLine{start: offset, end: end})
		}
		offset += len(line)
	}

	var blocks []Block
	for _, ref := range refs {
		label := strings.ToLower(strings.TrimSpace(string(ref.Label())))
		b := Block{
			Kind:  KindLinkDefinition,
			Label: string(ref.Label()),
			URL:   string(ref.Destination()),
		}
		if lines := byLabel[label]; len(lines) > 0 {
			b.Span = ix.span(lines[0].start, lines[0].end)
			byLabel[label] = lines[1:]
		}
		blocks = append(blocks, b)
	}
	return blocks
}
