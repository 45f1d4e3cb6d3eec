package grammar

import "github.com/npillmayer/essence/diag"

// tokenStream is a cursor over the tokens of one document. The token slice
// always ends with an EOF token, which is never consumed.
type tokenStream struct {
	toks []Token
	pos  int
}

func (ts *tokenStream) peek() Token {
	return ts.toks[ts.pos]
}

// peekAt looks n tokens ahead, stopping at EOF.
func (ts *tokenStream) peekAt(n int) Token {
	if ts.pos+n >= len(ts.toks) {
		return ts.toks[len(ts.toks)-1]
	}
	return ts.toks[ts.pos+n]
}

func (ts *tokenStream) next() Token {
	t := ts.toks[ts.pos]
	if t.Kind != EOF {
		ts.pos++
		tracer().Debugf("accept %s", t)
	}
	return t
}

// prev returns the most recently consumed token, or a zero token at the
// start of input.
func (ts *tokenStream) prev() Token {
	if ts.pos == 0 {
		return Token{Kind: EOF, Span: diag.Span{Line: 1, Column: 1}}
	}
	return ts.toks[ts.pos-1]
}

func (ts *tokenStream) at(kind TokType) bool {
	return ts.peek().Kind == kind
}

// accept consumes the next token if it is of the given kind.
func (ts *tokenStream) accept(kind TokType) (Token, bool) {
	if ts.at(kind) {
		return ts.next(), true
	}
	return Token{}, false
}

// atBoundary is a predicate: does a new top-level statement start here, or
// is the input exhausted?
func (ts *tokenStream) atBoundary() bool {
	k := ts.peek().Kind
	return k == EOF || k.isTopLevel()
}

// skipToBoundary drops tokens up to the next top-level keyword or EOF.
func (ts *tokenStream) skipToBoundary() {
	n := 0
	for !ts.atBoundary() {
		ts.next()
		n++
	}
	tracer().Debugf("resynchronized after %d tokens at %s", n, ts.peek())
}
