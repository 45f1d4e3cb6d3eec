package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/gorgo/lr"
)

// Kind classifies a diagnostic.
type Kind int

// Kinds of diagnostics
const (
	LexicalError    Kind = iota // unrecognized character sequence
	SyntaxError                 // unexpected token, missing delimiter, malformed list
	StructuralError             // well-formed, but violates a structural rule
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case StructuralError:
		return "structural error"
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// --- Spans -----------------------------------------------------------------

// Span locates a run of source text. Bytes holds the byte offsets [start, end),
// Line and Column locate the first byte. Both are 1-based, columns count runes.
// The zero value denotes "no position".
type Span struct {
	Bytes  lr.Span
	Line   int
	Column int
}

// Start returns the byte offset of the first byte covered by s.
func (s Span) Start() int {
	return int(s.Bytes[0])
}

// End returns the byte offset just behind s.
func (s Span) End() int {
	return int(s.Bytes[1])
}

// Len is the number of bytes covered by s.
func (s Span) Len() int {
	return s.End() - s.Start()
}

// IsNull is a predicate: does s carry no position at all?
func (s Span) IsNull() bool {
	return s.Line == 0
}

// To returns a span from the start of s to the end of other.
func (s Span) To(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() || other.End() < s.End() {
		return s
	}
	s.Bytes[1] = other.Bytes[1]
	return s
}

func (s Span) String() string {
	if s.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// --- Diagnostics -----------------------------------------------------------

// Diagnostic is a single problem report.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    Span
}

func (d Diagnostic) Error() string {
	if d.Span.IsNull() {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
}

// List is an ordered collection of diagnostics. A non-empty List is an error.
type List []Diagnostic

// Add appends a new diagnostic, formatting the message with args.
func (l *List) Add(kind Kind, span Span, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	*l = append(*l, Diagnostic{Kind: kind, Message: msg, Span: span})
}

// Append adds all diagnostics of other to l.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

// Count returns the number of diagnostics of a given kind.
func (l List) Count(kind Kind) int {
	n := 0
	for _, d := range l {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by source position. Diagnostics without a position
// go last; the relative order of equal positions is kept.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i].Span, l[j].Span
		switch {
		case a.IsNull():
			return false
		case b.IsNull():
			return true
		}
		return a.Start() < b.Start()
	})
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
	}
	return b.String()
}
