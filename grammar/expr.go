package grammar

import (
	"strconv"

	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
)

var binaryOps = map[TokType]ast.BinaryOperator{
	Plus:  ast.Add,
	Minus: ast.Sub,
	Star:  ast.Mul,
	Slash: ast.Div,
	Pct:   ast.Mod,
	Power: ast.Pow,
	Eq:    ast.Eq,
	Neq:   ast.Neq,
	Leq:   ast.Leq,
	Geq:   ast.Geq,
	Lt:    ast.Lt,
	Gt:    ast.Gt,
	Conj:  ast.And,
	Disj:  ast.Or,
	Imply: ast.Imply,
	Iff:   ast.Iff,
}

var quantifiers = map[TokType]ast.QuantifierKind{
	KwAnd:     ast.QuantAnd,
	KwOr:      ast.QuantOr,
	KwMin:     ast.QuantMin,
	KwMax:     ast.QuantMax,
	KwSum:     ast.QuantSum,
	KwAllDiff: ast.QuantAllDiff,
}

func (p *parser) expression() (ast.Expression, error) {
	return p.parseExpr(ast.PrecLowest)
}

// parseExpr is a precedence climbing loop. It folds binary operators with a
// precedence of at least minPrec into the operand to their left. The right
// operand of a left-associative operator is parsed one level higher, so that
// operators of equal precedence group to the left.
func (p *parser) parseExpr(minPrec int) (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOps[p.peek().Kind]
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.next()
		next := op.Precedence() + 1
		if op.RightAssoc() {
			next = op.Precedence()
		}
		p.enter(op.Name())
		right, err := p.parseExpr(next)
		p.leave()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Locus: ast.At(left.Pos().To(right.Pos())),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// unary handles the prefix operators - and !. Their operands are parsed at
// the operator's own precedence, thus `-x ** 2` is -(x ** 2) while `-x * 2`
// is (-x) * 2.
func (p *parser) unary() (ast.Expression, error) {
	t := p.peek()
	var op ast.UnaryOperator
	switch t.Kind {
	case Minus:
		op = ast.Negate
	case Bang:
		op = ast.Not
	default:
		return p.atom()
	}
	p.next()
	p.enter("Expression")
	operand, err := p.parseExpr(op.Precedence())
	p.leave()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Locus: ast.At(t.Span.To(operand.Pos())), Op: op, Operand: operand}, nil
}

// atom parses the leaf productions: groups and tuples, absolute values,
// constants, meta-variables, matrix literals, identifiers, quantifiers and
// fromSolution. Identifiers, groups, tuples, matrices and meta-variables may
// be followed by index suffixes.
func (p *parser) atom() (ast.Expression, error) {
	t := p.peek()
	switch t.Kind {
	case LParen:
		return p.postfix(p.parenthesized())
	case Bar:
		return p.absolute()
	case Integer:
		p.next()
		n, err := strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return nil, diag.Diagnostic{
				Kind:    diag.SyntaxError,
				Message: "Integer literal out of range: " + t.Lexeme,
				Span:    t.Span,
			}
		}
		return &ast.Constant{Locus: ast.At(t.Span), Kind: ast.IntConst, Int: n}, nil
	case KwTrue, KwFalse:
		p.next()
		return &ast.Constant{Locus: ast.At(t.Span), Kind: ast.BoolConst, Bool: t.Kind == KwTrue}, nil
	case Amp:
		return p.postfix(p.metaVariable())
	case LBracket:
		return p.postfix(p.matrix())
	case Ident:
		p.next()
		return p.postfix(&ast.Variable{Locus: ast.At(t.Span), Name: t.Lexeme}, nil)
	case KwFromSolution:
		return p.fromSolution()
	}
	if _, ok := quantifiers[t.Kind]; ok {
		return p.quantifier()
	}
	return nil, p.fail("Expression")
}

// parenthesized parses `( e )` as a group and `( e1, e2, ... )` as a tuple.
// A single element followed by a comma is not a tuple.
func (p *parser) parenthesized() (ast.Expression, error) {
	open := p.next()
	p.enter("Parenthesized Expression")
	first, err := p.expression()
	p.leave()
	if err != nil {
		return nil, err
	}
	if !p.at(Comma) {
		p.enter("Parenthesized Expression")
		defer p.leave()
		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}
		return &ast.Grouped{Locus: p.span(open), Inner: first}, nil
	}
	p.enter("Tuple")
	defer p.leave()
	elems := []ast.Expression{first}
	for {
		if _, ok := p.accept(Comma); !ok {
			break
		}
		if p.at(RParen) && len(elems) > 1 { // trailing comma
			break
		}
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, err
	}
	return &ast.Tuple{Locus: p.span(open), Elements: elems}, nil
}

func (p *parser) absolute() (ast.Expression, error) {
	open := p.next()
	p.enter("Absolute Value")
	defer p.leave()
	inner, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Bar); err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Locus: p.span(open), Op: ast.Abs, Operand: inner}, nil
}

func (p *parser) metaVariable() (ast.Expression, error) {
	amp := p.next()
	p.enter("Meta Variable")
	defer p.leave()
	id, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	return &ast.MetaVariable{Locus: p.span(amp), Name: id.Lexeme}, nil
}

// matrix parses `[ e1, ..., en ]` or `[ e1, ..., en ; D ]`. The element list
// may be empty and may end with a comma.
func (p *parser) matrix() (ast.Expression, error) {
	open := p.next()
	p.enter("Matrix")
	defer p.leave()
	m := &ast.Matrix{}
	for !p.at(RBracket) && !p.at(Semicolon) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		m.Elements = append(m.Elements, e)
		if _, ok := p.accept(Comma); !ok {
			break
		}
	}
	if _, ok := p.accept(Semicolon); ok {
		d, err := p.domain()
		if err != nil {
			return nil, err
		}
		m.Domain = d
	}
	if _, err := p.expect(RBracket); err != nil {
		return nil, err
	}
	m.Locus = p.span(open)
	return m, nil
}

// postfix applies any number of index suffixes `[i1, ..., ik]` to target.
// An index is an expression or the wildcard `..`. It passes on an error
// of the target's parse.
func (p *parser) postfix(target ast.Expression, err error) (ast.Expression, error) {
	if err != nil {
		return nil, err
	}
	for p.at(LBracket) {
		p.next()
		p.enter("Index")
		ix := &ast.IndexOrSlice{Target: target}
		for {
			if w, ok := p.accept(DotDot); ok {
				ix.Indices = append(ix.Indices, &ast.Wildcard{Locus: ast.At(w.Span)})
			} else {
				e, err := p.expression()
				if err != nil {
					p.leave()
					return nil, err
				}
				ix.Indices = append(ix.Indices, e)
			}
			if _, ok := p.accept(Comma); !ok {
				break
			}
		}
		_, err := p.expect(RBracket)
		p.leave()
		if err != nil {
			return nil, err
		}
		ix.Locus = ast.At(target.Pos().To(p.prev().Span))
		target = ix
	}
	return target, nil
}

// quantifier parses `kind(arg)`, where arg is a matrix literal, an
// identifier or a meta-variable, optionally indexed or sliced.
func (p *parser) quantifier() (ast.Expression, error) {
	kw := p.next()
	p.enter("Quantifier")
	defer p.leave()
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	var arg ast.Expression
	var err error
	switch t := p.peek(); t.Kind {
	case LBracket:
		arg, err = p.postfix(p.matrix())
	case Ident:
		p.next()
		arg, err = p.postfix(&ast.Variable{Locus: ast.At(t.Span), Name: t.Lexeme}, nil)
	case Amp:
		arg, err = p.postfix(p.metaVariable())
	default:
		err = p.fail("Matrix or Identifier")
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, err
	}
	return &ast.Quantifier{Locus: p.span(kw), Kind: quantifiers[kw.Kind], Arg: arg}, nil
}

func (p *parser) fromSolution() (ast.Expression, error) {
	kw := p.next()
	p.enter("From Solution")
	defer p.leave()
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	id, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, err
	}
	v := &ast.Variable{Locus: ast.At(id.Span), Name: id.Lexeme}
	return &ast.FromSolution{Locus: p.span(kw), Variable: v}, nil
}
