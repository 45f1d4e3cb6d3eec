package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format returns the surface syntax for a node. Statements are printed on a
// single line. Parentheses are written where precedence or associativity
// require them, regardless of Grouped nodes in the tree.
//
// Integer constants below zero are printed with a leading minus sign and will
// therefore read back as a negation of a positive constant.
func Format(n Node) string {
	p := &printer{}
	p.node(n)
	return p.String()
}

// Fprint writes a program to w, one statement per line.
func Fprint(w io.Writer, prog *Program) error {
	tracer().Debugf("printing program with %d statements", len(prog.Statements))
	for _, s := range prog.Statements {
		if _, err := fmt.Fprintln(w, Format(s)); err != nil {
			return err
		}
	}
	return nil
}

type printer struct {
	strings.Builder
}

func (p *printer) node(n Node) {
	if isNil(n) {
		p.WriteString("<nil>")
		return
	}
	switch x := n.(type) {
	case *Program:
		for i, s := range x.Statements {
			if i > 0 {
				p.WriteByte('\n')
			}
			p.node(s)
		}
	case *FindBlock:
		p.WriteString("find ")
		for i, d := range x.Decls {
			p.sep(i)
			p.node(d)
		}
	case *FindDecl:
		p.idents(x.Names)
		p.WriteString(" : ")
		p.node(x.Domain)
	case *LettingBlock:
		p.WriteString("letting ")
		for i, l := range x.Entries {
			p.sep(i)
			p.node(l)
		}
	case *Letting:
		p.idents(x.Names)
		p.WriteString(" be ")
		if x.IsDomain() {
			p.WriteString("domain ")
			p.node(x.Domain)
		} else {
			p.node(x.Value)
		}
	case *ConstraintBlock:
		p.WriteString("such that ")
		p.exprList(x.Constraints)
	case *DominanceRelation:
		p.WriteString("dominanceRelation ")
		p.node(x.Expr)
	case *Ident:
		p.WriteString(x.Name)
	case Domain:
		p.domain(x)
	case *Range:
		p.rng(x)
	case Expression:
		p.expr(x)
	default:
		fmt.Fprintf(p, "<%T>", n)
	}
}

func (p *printer) sep(i int) {
	if i > 0 {
		p.WriteString(", ")
	}
}

func (p *printer) idents(ids []*Ident) {
	for i, id := range ids {
		p.sep(i)
		p.WriteString(id.Name)
	}
}

func (p *printer) domain(d Domain) {
	switch x := d.(type) {
	case *BoolDomain:
		p.WriteString("bool")
	case *IntDomain:
		p.WriteString("int")
		if len(x.Ranges) == 0 {
			return
		}
		p.WriteByte('(')
		for i, r := range x.Ranges {
			p.sep(i)
			p.rng(r)
		}
		p.WriteByte(')')
	case *DomainRef:
		p.WriteString(x.Name)
	case *TupleDomain:
		p.WriteString("tuple(")
		for i, m := range x.Members {
			p.sep(i)
			p.node(m)
		}
		p.WriteByte(')')
	case *MatrixDomain:
		p.WriteString("matrix indexed by [")
		for i, ix := range x.Index {
			p.sep(i)
			p.node(ix)
		}
		p.WriteString("] of ")
		p.node(x.Value)
	}
}

func (p *printer) rng(r *Range) {
	if r.Single {
		p.node(r.Lower)
		return
	}
	if r.Lower != nil {
		p.expr(r.Lower)
	}
	p.WriteString("..")
	if r.Upper != nil {
		p.expr(r.Upper)
	}
}

func (p *printer) exprList(l []Expression) {
	for i, e := range l {
		p.sep(i)
		p.node(e)
	}
}

// precedence returns the binding power of the outermost construct of e.
func precedence(e Expression) int {
	switch x := Unparen(e).(type) {
	case *BinaryOp:
		return x.Op.Precedence()
	case *UnaryOp:
		return x.Op.Precedence()
	case *Constant:
		if x.Kind == IntConst && x.Int < 0 {
			return PrecNegate
		}
	}
	return PrecAtom
}

func (p *printer) operand(e Expression, parens bool) {
	if parens {
		p.WriteByte('(')
		p.node(e)
		p.WriteByte(')')
		return
	}
	p.node(e)
}

func (p *printer) expr(e Expression) {
	switch x := e.(type) {
	case *Constant:
		if x.Kind == BoolConst {
			p.WriteString(strconv.FormatBool(x.Bool))
		} else {
			p.WriteString(strconv.FormatInt(x.Int, 10))
		}
	case *Variable:
		p.WriteString(x.Name)
	case *MetaVariable:
		p.WriteByte('&')
		p.WriteString(x.Name)
	case *UnaryOp:
		if x.Op == Abs {
			p.WriteByte('|')
			p.node(x.Operand)
			p.WriteByte('|')
			return
		}
		p.WriteString(x.Op.String())
		p.operand(x.Operand, precedence(x.Operand) < x.Op.Precedence())
	case *BinaryOp:
		prec := x.Op.Precedence()
		lp, rp := precedence(x.Left), precedence(x.Right)
		p.operand(x.Left, lp < prec || (lp == prec && x.Op.RightAssoc()))
		p.WriteByte(' ')
		p.WriteString(x.Op.String())
		p.WriteByte(' ')
		p.operand(x.Right, rp < prec || (rp == prec && !x.Op.RightAssoc()))
	case *Quantifier:
		p.WriteString(x.Kind.String())
		p.WriteByte('(')
		p.node(x.Arg)
		p.WriteByte(')')
	case *Tuple:
		p.WriteByte('(')
		p.exprList(x.Elements)
		p.WriteByte(')')
	case *Matrix:
		p.WriteByte('[')
		p.exprList(x.Elements)
		if x.Domain != nil {
			p.WriteString("; ")
			p.node(x.Domain)
		}
		p.WriteByte(']')
	case *Wildcard:
		p.WriteString("..")
	case *IndexOrSlice:
		p.operand(x.Target, precedence(x.Target) < PrecAtom)
		p.WriteByte('[')
		p.exprList(x.Indices)
		p.WriteByte(']')
	case *FromSolution:
		p.WriteString("fromSolution(")
		if x.Variable != nil {
			p.WriteString(x.Variable.Name)
		}
		p.WriteByte(')')
	case *Grouped:
		p.node(x.Inner)
	}
}
