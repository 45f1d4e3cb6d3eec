package grammar

import (
	"fmt"
	"strings"

	"github.com/npillmayer/essence/diag"
)

// enter pushes the name of a construct being parsed. The innermost name is
// used in "Unexpected ... inside ..." messages.
func (p *parser) enter(construct string) {
	p.contexts.Push(construct)
}

func (p *parser) leave() {
	p.contexts.Pop()
}

func (p *parser) context() string {
	if c, ok := p.contexts.Peek(); ok {
		return c.(string)
	}
	return "Expression"
}

// fail creates a syntax error for the next token, which does not fit in
// the current context. If the input has ended or a new statement begins,
// the error reports the missing element instead, located just behind the
// previous token.
func (p *parser) fail(missing string) error {
	t := p.peek()
	if p.atBoundary() {
		return p.missing(missing)
	}
	ctx := p.context()
	return diag.Diagnostic{
		Kind:    diag.SyntaxError,
		Message: fmt.Sprintf("Unexpected %s inside %s %s", t.Lexeme, article(ctx), ctx),
		Span:    t.Span,
	}
}

// missing creates a syntax error for an element absent between the
// previous token and the next one. The span is empty.
func (p *parser) missing(what string) diag.Diagnostic {
	end := p.prev().Span.End()
	return diag.Diagnostic{
		Kind:    diag.SyntaxError,
		Message: "Missing " + what,
		Span:    p.lines.Span(end, end),
	}
}

// expect consumes a token of the given kind or fails.
func (p *parser) expect(kind TokType) (Token, error) {
	if t, ok := p.accept(kind); ok {
		return t, nil
	}
	return Token{}, p.fail("'" + kind.String() + "'")
}

// record adds a parse error to the diagnostics.
func (p *parser) record(err error) {
	d, ok := err.(diag.Diagnostic)
	if !ok {
		d = diag.Diagnostic{Kind: diag.SyntaxError, Message: err.Error(), Span: p.peek().Span}
	}
	tracer().Errorf("%s: %s", d.Span, d.Message)
	p.errs = append(p.errs, d)
}

// unexpected reports a token following a complete statement on the same line.
func (p *parser) unexpected(t Token) {
	p.errs.Add(diag.SyntaxError, t.Span, "Unexpected %s", t.Lexeme)
	tracer().Errorf("%s: unexpected %s", t.Span, t.Kind)
}

// malformed reports a line at top level which does not start a statement.
func (p *parser) malformed(t Token) {
	n := t.Span.Line
	text := strings.TrimSpace(p.lines.Line(n))
	p.errs.Add(diag.SyntaxError, p.lines.LineSpan(n), "Malformed line %d: '%s'", n, text)
	tracer().Errorf("malformed line %d", n)
}

func article(noun string) string {
	if noun != "" && strings.ContainsRune("AEIOUaeiou", rune(noun[0])) {
		return "an"
	}
	return "a"
}
