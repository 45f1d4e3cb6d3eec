package grammar

import "github.com/npillmayer/essence/ast"

// domain parses
//
//	bool | int [ '(' ranges ')' ] | [tuple] '(' domains ')'
//	| matrix indexed by '[' domains ']' of domain | identifier
//
// Whether matrix index domains are of kind bool or int is checked after
// parsing, as aliases may name domains declared further down.
func (p *parser) domain() (ast.Domain, error) {
	t := p.peek()
	switch t.Kind {
	case KwBool:
		p.next()
		return &ast.BoolDomain{Locus: ast.At(t.Span)}, nil
	case KwInt:
		return p.intDomain()
	case KwTuple, LParen:
		return p.tupleDomain()
	case KwMatrix:
		return p.matrixDomain()
	case Ident:
		p.next()
		return &ast.DomainRef{Locus: ast.At(t.Span), Name: t.Lexeme}, nil
	}
	return nil, p.fail("Domain")
}

func (p *parser) intDomain() (ast.Domain, error) {
	kw := p.next()
	d := &ast.IntDomain{}
	if _, ok := p.accept(LParen); !ok {
		d.Locus = ast.At(kw.Span)
		return d, nil
	}
	p.enter("Integer Domain")
	defer p.leave()
	for {
		r, err := p.rangeElement()
		if err != nil {
			return nil, err
		}
		d.Ranges = append(d.Ranges, r)
		if _, ok := p.accept(Comma); !ok || p.at(RParen) {
			break
		}
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, err
	}
	d.Locus = p.span(kw)
	return d, nil
}

// rangeElement parses `[lower] .. [upper]` or a single value.
func (p *parser) rangeElement() (*ast.Range, error) {
	first := p.peek()
	r := &ast.Range{}
	if _, ok := p.accept(DotDot); !ok {
		lower, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(DotDot); !ok {
			return ast.NewSingle(lower), nil
		}
		r.Lower = lower
	}
	if !p.at(Comma) && !p.at(RParen) {
		upper, err := p.expression()
		if err != nil {
			return nil, err
		}
		r.Upper = upper
	}
	r.Locus = p.span(first)
	return r, nil
}

// A parenthesized domain list is a tuple domain, even with a single member.
func (p *parser) tupleDomain() (ast.Domain, error) {
	first := p.peek()
	p.accept(KwTuple)
	p.enter("Tuple Domain")
	defer p.leave()
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	members, err := p.domainList(RParen)
	if err != nil {
		return nil, err
	}
	return &ast.TupleDomain{Locus: p.span(first), Members: members}, nil
}

func (p *parser) matrixDomain() (ast.Domain, error) {
	kw := p.next()
	p.enter("Matrix Domain")
	defer p.leave()
	for _, k := range []TokType{KwIndexed, KwBy, LBracket} {
		if _, err := p.expect(k); err != nil {
			return nil, err
		}
	}
	index, err := p.domainList(RBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KwOf); err != nil {
		return nil, err
	}
	value, err := p.domain()
	if err != nil {
		return nil, err
	}
	return &ast.MatrixDomain{Locus: p.span(kw), Index: index, Value: value}, nil
}

// domainList parses one or more comma separated domains and the closing
// delimiter. A trailing comma is allowed.
func (p *parser) domainList(closing TokType) ([]ast.Domain, error) {
	var list []ast.Domain
	for {
		d, err := p.domain()
		if err != nil {
			return nil, err
		}
		list = append(list, d)
		if _, ok := p.accept(Comma); !ok || p.at(closing) {
			break
		}
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return list, nil
}
