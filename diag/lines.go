package diag

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/gorgo/lr"
)

// Lines is a line index over a source text. It maps byte offsets to
// line/column positions and returns the text of single lines.
type Lines struct {
	src    string
	starts []int // byte offset of the first byte of each line
}

// NewLines creates a line index for src.
func NewLines(src string) *Lines {
	li := &Lines{src: src, starts: make([]int, 1, strings.Count(src, "\n")+1)}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
	return li
}

// Source returns the indexed text.
func (li *Lines) Source() string {
	return li.src
}

// Count returns the number of lines.
func (li *Lines) Count() int {
	return len(li.starts)
}

// Locate returns the 1-based line and column of a byte offset.
// Offsets outside of the text are clamped.
func (li *Lines) Locate(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	} else if offset > len(li.src) {
		offset = len(li.src)
	}
	lo, hi := 0, len(li.starts)-1
	for lo < hi { // find last line start <= offset
		mid := (lo + hi + 1) / 2
		if li.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	start := li.starts[lo]
	return lo + 1, utf8.RuneCountInString(li.src[start:offset]) + 1
}

// Span creates a span for the byte range [start, end).
func (li *Lines) Span(start, end int) Span {
	line, col := li.Locate(start)
	return Span{
		Bytes:  lr.Span{uint64(start), uint64(end)},
		Line:   line,
		Column: col,
	}
}

// LineSpan returns a span covering line n (1-based) without its newline.
func (li *Lines) LineSpan(n int) Span {
	if n < 1 || n > len(li.starts) {
		return Span{}
	}
	start := li.starts[n-1]
	return Span{
		Bytes:  lr.Span{uint64(start), uint64(start + len(li.Line(n)))},
		Line:   n,
		Column: 1,
	}
}

// Line returns the text of line n (1-based) without the trailing newline.
func (li *Lines) Line(n int) string {
	if n < 1 || n > len(li.starts) {
		return ""
	}
	start := li.starts[n-1]
	end := len(li.src)
	if n < len(li.starts) {
		end = li.starts[n] - 1
	}
	return strings.TrimSuffix(li.src[start:end], "\r")
}
