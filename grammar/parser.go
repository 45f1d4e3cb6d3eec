package grammar

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
)

// parser holds the state for parsing one document. Parsers are not shared
// between goroutines; documents may be parsed in parallel by separate
// parsers.
type parser struct {
	tokenStream
	lines    *diag.Lines
	errs     diag.List
	contexts *linkedliststack.Stack // names of constructs being parsed
}

func newParser(src string) *parser {
	lines := diag.NewLines(src)
	toks, errs := tokenize(lines, 0)
	return &parser{
		tokenStream: tokenStream{toks: toks},
		lines:       lines,
		errs:        errs,
		contexts:    linkedliststack.New(),
	}
}

// span covers the tokens from first to the most recently consumed one.
func (p *parser) span(first Token) ast.Locus {
	return ast.At(first.Span.To(p.prev().Span))
}

// ParseProgram parses an Essence model. It always returns a program, which
// contains all statements that could be recovered, together with all
// lexical and syntax errors, sorted by position.
func ParseProgram(src string) (*ast.Program, diag.List) {
	p := newParser(src)
	prog := p.program()
	p.errs.Sort()
	tracer().Infof("parsed %d statements with %d diagnostics", len(prog.Statements), len(p.errs))
	return prog, p.errs
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Expression, diag.List) {
	p := newParser(src)
	e, err := p.expression()
	if err == nil && !p.at(EOF) {
		err = p.fail("end of input")
	}
	if err != nil {
		p.record(err)
	}
	p.errs.Sort()
	return e, p.errs
}

// ParseDomain parses src as a single domain.
func ParseDomain(src string) (ast.Domain, diag.List) {
	p := newParser(src)
	d, err := p.domain()
	if err == nil && !p.at(EOF) {
		err = p.fail("end of input")
	}
	if err != nil {
		p.record(err)
	}
	p.errs.Sort()
	return d, p.errs
}

func (p *parser) program() *ast.Program {
	prog := &ast.Program{Locus: ast.At(p.lines.Span(0, len(p.lines.Source())))}
	for !p.at(EOF) {
		t := p.peek()
		tracer().Debugf("statement %s at %s", t.Kind, t.Span)
		var err error
		switch t.Kind {
		case KwFind:
			var fb *ast.FindBlock
			if fb, err = p.findBlock(); len(fb.Decls) > 0 {
				prog.Statements = append(prog.Statements, fb)
			}
		case KwLetting:
			var lb *ast.LettingBlock
			if lb, err = p.lettingBlock(); len(lb.Entries) > 0 {
				prog.Statements = append(prog.Statements, lb)
			}
		case KwSuchThat:
			var cb *ast.ConstraintBlock
			if cb, err = p.constraintBlock(); len(cb.Constraints) > 0 {
				prog.Statements = append(prog.Statements, cb)
			}
		case KwDominanceRelation:
			var dr *ast.DominanceRelation
			if dr, err = p.dominanceRelation(); err == nil {
				prog.Statements = append(prog.Statements, dr)
			}
		default:
			if p.pos > 0 && p.prev().Span.Line == t.Span.Line {
				p.unexpected(t)
			} else {
				p.malformed(t)
			}
			p.next()
			p.skipToBoundary()
			continue
		}
		if err != nil {
			p.record(err)
			p.contexts.Clear()
			p.skipToBoundary()
		}
	}
	return prog
}

// find x, y : D1, z : D2 ...
func (p *parser) findBlock() (*ast.FindBlock, error) {
	kw := p.next()
	fb := &ast.FindBlock{}
	defer func() { fb.Locus = p.span(kw) }()
	if !p.identAt(0) {
		p.enter("Find Statement")
		defer p.leave()
		if p.at(Colon) {
			return fb, p.missing("Variable List")
		}
		return fb, p.fail("Variable List")
	}
	for p.identAt(0) {
		first := p.peek()
		names, err := p.variableList()
		if err != nil {
			return fb, err
		}
		if startsDomain(p.peek().Kind) {
			p.record(p.missing("':'"))
		} else {
			p.enter("Variable List")
			_, err = p.expect(Colon)
			p.leave()
			if err != nil {
				return fb, err
			}
		}
		dom, err := p.domain()
		if err != nil {
			return fb, err
		}
		fb.Decls = append(fb.Decls, &ast.FindDecl{Locus: p.span(first), Names: names, Domain: dom})
		p.accept(Comma)
	}
	return fb, nil
}

// letting a, b be 3, D be domain int(1..3) ...
func (p *parser) lettingBlock() (*ast.LettingBlock, error) {
	kw := p.next()
	lb := &ast.LettingBlock{}
	defer func() { lb.Locus = p.span(kw) }()
	if !p.identAt(0) {
		p.enter("Letting Statement")
		defer p.leave()
		if p.at(KwBe) {
			return lb, p.missing("Variable List")
		}
		return lb, p.fail("Variable List")
	}
	for p.identAt(0) {
		first := p.peek()
		names, err := p.variableList()
		if err != nil {
			return lb, err
		}
		p.enter("Variable List")
		_, err = p.expect(KwBe)
		p.leave()
		if err != nil {
			return lb, err
		}
		l := &ast.Letting{Names: names}
		if p.atBoundary() {
			return lb, p.fail("Expression or Domain")
		}
		if _, ok := p.accept(KwDomain); ok {
			l.Domain, err = p.domain()
		} else {
			l.Value, err = p.expression()
		}
		if err != nil {
			return lb, err
		}
		l.Locus = p.span(first)
		lb.Entries = append(lb.Entries, l)
		p.accept(Comma)
	}
	return lb, nil
}

// such that c1, c2, ...
func (p *parser) constraintBlock() (*ast.ConstraintBlock, error) {
	kw := p.next()
	cb := &ast.ConstraintBlock{}
	defer func() { cb.Locus = p.span(kw) }()
	p.enter("Constraint List")
	defer p.leave()
	if p.atBoundary() {
		return cb, p.fail("Expression")
	}
	for !p.atBoundary() {
		c, err := p.expression()
		if err != nil {
			return cb, err
		}
		cb.Constraints = append(cb.Constraints, c)
		p.accept(Comma)
	}
	return cb, nil
}

func (p *parser) dominanceRelation() (*ast.DominanceRelation, error) {
	kw := p.next()
	p.enter("Dominance Relation")
	defer p.leave()
	if p.atBoundary() {
		return nil, p.fail("Expression")
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.DominanceRelation{Locus: p.span(kw), Expr: e}, nil
}

// variableList parses `a, b, c`. A comma not followed by an identifier ends
// the list. A keyword in place of a name is reported and taken as a name.
func (p *parser) variableList() ([]*ast.Ident, error) {
	p.enter("Variable List")
	defer p.leave()
	var names []*ast.Ident
	for {
		t := p.peek()
		if t.Kind.IsKeyword() && p.identAt(0) {
			p.errs.Add(diag.SyntaxError, t.Span, "Keyword '%s' used as identifier", t.Lexeme)
			p.next()
		} else if _, err := p.expect(Ident); err != nil {
			return nil, err
		}
		names = append(names, &ast.Ident{Locus: ast.At(t.Span), Name: t.Lexeme})
		if !p.at(Comma) || !p.identAt(1) {
			return names, nil
		}
		p.next()
	}
}

// identAt is true if the token n positions ahead is an identifier, or a
// keyword standing where a name is expected, i.e. followed by ',', ':' or
// 'be'.
func (p *parser) identAt(n int) bool {
	t := p.peekAt(n)
	if t.Kind == Ident {
		return true
	}
	if !t.Kind.IsKeyword() {
		return false
	}
	switch p.peekAt(n + 1).Kind {
	case Comma, Colon, KwBe:
		return true
	}
	return false
}

func startsDomain(k TokType) bool {
	switch k {
	case KwBool, KwInt, KwTuple, KwMatrix:
		return true
	}
	return false
}
