package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Render writes a diagnostic in a compiler-like format:
//
//	model.essence:2:16:
//	  |
//	2 | such that x -> %9
//	  |                ^
//	Unexpected % inside an Implication
//
// If d has no position, only the kind and message are written.
func Render(w io.Writer, name string, lines *Lines, d Diagnostic) error {
	if d.Span.IsNull() || lines == nil {
		_, err := fmt.Fprintf(w, "%s: %s: %s\n", name, d.Kind, d.Message)
		return err
	}
	text := lines.Line(d.Span.Line)
	num := strconv.Itoa(d.Span.Line)
	gutter := strings.Repeat(" ", len(num))
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d:\n", name, d.Span.Line, d.Span.Column)
	fmt.Fprintf(&b, "%s |\n", gutter)
	fmt.Fprintf(&b, "%s | %s\n", num, text)
	fmt.Fprintf(&b, "%s | %s\n", gutter, pointer(text, d.Span))
	b.WriteString(d.Message)
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderAll renders every diagnostic of l, separated by empty lines.
func RenderAll(w io.Writer, name string, src string, l List) error {
	lines := NewLines(src)
	for i, d := range l {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := Render(w, name, lines, d); err != nil {
			return err
		}
	}
	return nil
}

// pointer creates the caret line for span s within a line of text.
// Tabs are kept so that the carets line up in a terminal, wide runes
// count twice.
func pointer(text string, s Span) string {
	var b strings.Builder
	col, carets, from := 1, 0, -1
	for i, r := range text {
		if col == s.Column {
			from = i
		}
		switch {
		case from < 0 && r == '\t':
			b.WriteRune('\t')
		case from < 0:
			b.WriteString(strings.Repeat(" ", runeWidth(r)))
		case i-from < s.Len():
			carets += runeWidth(r)
		}
		col++
	}
	if carets == 0 {
		carets = 1
	}
	b.WriteString(strings.Repeat("^", carets))
	return b.String()
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
