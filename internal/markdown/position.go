package markdown

import "sort"

// Position is a location in the source text. Line and Column are 1-based,
// Offset is a 0-based byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// Span covers a contiguous region of the source text.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// lineIndex translates byte offsets into line/column positions.
type lineIndex struct {
	// starts[i] is the byte offset of the first byte of line i+1.
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position converts a byte offset into a Position.
func (ix *lineIndex) position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	// line is now the 1-based line number containing offset.
	return Position{
		Line:   line,
		Column: offset - ix.starts[line-1] + 1,
		Offset: offset,
	}
}

// lineStart returns the byte offset of the start of the line containing offset.
func (ix *lineIndex) lineStart(offset int) int {
	p := ix.position(offset)
	return ix.starts[p.Line-1]
}

// span builds a Span from a byte range, widening the start to the beginning of
// its line so that diagnostics cover the whole construct (marker included).
func (ix *lineIndex) span(start, end int) Span {
	return Span{
		Start: ix.position(ix.lineStart(start)),
		End:   ix.position(end),
	}
}
