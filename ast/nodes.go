package ast

import "github.com/npillmayer/essence/diag"

// Node is implemented by every element of the syntax tree.
type Node interface {
	Pos() diag.Span
}

// Locus is embedded into every node and records its source span.
type Locus struct {
	At diag.Span
}

// Pos returns the source span of a node.
func (l Locus) Pos() diag.Span {
	return l.At
}

// At creates a Locus for span s.
func At(s diag.Span) Locus {
	return Locus{At: s}
}

// Ident is a declared name, as found in a variable list.
type Ident struct {
	Locus
	Name string
}

// --- Program and statements ------------------------------------------------

// Program is the root of a parsed model.
type Program struct {
	Locus
	Statements []Statement
}

// Statement is one of *FindBlock, *LettingBlock, *ConstraintBlock or
// *DominanceRelation.
type Statement interface {
	Node
	statementNode()
}

// FindBlock declares decision variables.
type FindBlock struct {
	Locus
	Decls []*FindDecl
}

// FindDecl is a single `names : domain` entry of a find block.
type FindDecl struct {
	Locus
	Names  []*Ident
	Domain Domain
}

// LettingBlock binds names to constant expressions or to domains.
type LettingBlock struct {
	Locus
	Entries []*Letting
}

// Letting is a single `names be ...` entry of a letting block. Exactly one
// of Value and Domain is set.
type Letting struct {
	Locus
	Names  []*Ident
	Value  Expression
	Domain Domain
}

// IsDomain is a predicate: does l bind a domain (`be domain D`)?
func (l *Letting) IsDomain() bool {
	return l.Domain != nil
}

// ConstraintBlock holds the constraints of a `such that` clause.
type ConstraintBlock struct {
	Locus
	Constraints []Expression
}

// DominanceRelation holds the single expression of a dominanceRelation
// statement.
type DominanceRelation struct {
	Locus
	Expr Expression
}

func (*FindBlock) statementNode()         {}
func (*LettingBlock) statementNode()      {}
func (*ConstraintBlock) statementNode()   {}
func (*DominanceRelation) statementNode() {}

// Decision pairs a decision variable with its domain.
type Decision struct {
	Name   *Ident
	Domain Domain
}

// Pairs flattens the block into (name, domain) pairs, in declaration order.
// Names declared together share the domain node.
func (fb *FindBlock) Pairs() []Decision {
	var pairs []Decision
	for _, d := range fb.Decls {
		for _, n := range d.Names {
			pairs = append(pairs, Decision{Name: n, Domain: d.Domain})
		}
	}
	return pairs
}

// Decisions collects the decision variables of all find blocks of p.
func (p *Program) Decisions() []Decision {
	var all []Decision
	for _, s := range p.Statements {
		if fb, ok := s.(*FindBlock); ok {
			all = append(all, fb.Pairs()...)
		}
	}
	return all
}

// Constraints collects the constraints of all such-that blocks of p.
func (p *Program) Constraints() []Expression {
	var all []Expression
	for _, s := range p.Statements {
		if cb, ok := s.(*ConstraintBlock); ok {
			all = append(all, cb.Constraints...)
		}
	}
	return all
}

// Dominance returns the first dominance relation of p, if any.
func (p *Program) Dominance() *DominanceRelation {
	for _, s := range p.Statements {
		if dr, ok := s.(*DominanceRelation); ok {
			return dr
		}
	}
	return nil
}

// --- Domains ---------------------------------------------------------------

// Domain is one of *BoolDomain, *IntDomain, *DomainRef, *TupleDomain or
// *MatrixDomain.
type Domain interface {
	Node
	domainNode()
}

// BoolDomain is the domain `bool`.
type BoolDomain struct {
	Locus
}

// IntDomain is `int` or `int(r1, r2, ...)`. An empty range list means the
// domain is unbounded.
type IntDomain struct {
	Locus
	Ranges []*Range
}

// Range is one element of an integer domain. Lower or Upper may be nil for
// an open bound. A Single range was written as a bare value v and stands
// for v..v; Lower and Upper then refer to the same expression.
type Range struct {
	Locus
	Lower  Expression
	Upper  Expression
	Single bool
}

// DomainRef names a domain declared by a letting.
type DomainRef struct {
	Locus
	Name string
}

// TupleDomain is `tuple(D1, ..., Dn)`, n >= 1.
type TupleDomain struct {
	Locus
	Members []Domain
}

// MatrixDomain is `matrix indexed by [I1, ..., Ik] of V`, k >= 1.
type MatrixDomain struct {
	Locus
	Index []Domain
	Value Domain
}

func (*BoolDomain) domainNode()   {}
func (*IntDomain) domainNode()    {}
func (*DomainRef) domainNode()    {}
func (*TupleDomain) domainNode()  {}
func (*MatrixDomain) domainNode() {}

// NewSingle creates the range v..v.
func NewSingle(v Expression) *Range {
	return &Range{Locus: At(v.Pos()), Lower: v, Upper: v, Single: true}
}

// IntRange creates the domain int(lo..hi) without source positions.
func IntRange(lo, hi int64) *IntDomain {
	return &IntDomain{Ranges: []*Range{{Lower: NewInt(lo), Upper: NewInt(hi)}}}
}

// --- Expressions -----------------------------------------------------------

// Expression is implemented by all expression nodes.
type Expression interface {
	Node
	exprNode()
}

// ConstKind tells integer from boolean constants.
type ConstKind int

// Kinds of constants
const (
	IntConst ConstKind = iota
	BoolConst
)

// Constant is an integer or boolean literal.
type Constant struct {
	Locus
	Kind ConstKind
	Int  int64
	Bool bool
}

// NewInt creates an integer constant without source position.
func NewInt(n int64) *Constant {
	return &Constant{Kind: IntConst, Int: n}
}

// NewBool creates a boolean constant without source position.
func NewBool(b bool) *Constant {
	return &Constant{Kind: BoolConst, Bool: b}
}

// Variable references a decision variable or a letting-bound name.
type Variable struct {
	Locus
	Name string
}

// MetaVariable is a `&name` placeholder.
type MetaVariable struct {
	Locus
	Name string
}

// UnaryOp applies a prefix operator, or the absolute value |e|.
type UnaryOp struct {
	Locus
	Op      UnaryOperator
	Operand Expression
}

// BinaryOp applies an infix operator.
type BinaryOp struct {
	Locus
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

// Quantifier applies an aggregate (and, or, min, max, sum, allDiff) to a
// matrix-valued argument.
type Quantifier struct {
	Locus
	Kind QuantifierKind
	Arg  Expression
}

// Tuple is a literal `(e1, ..., en)` with n >= 2.
type Tuple struct {
	Locus
	Elements []Expression
}

// Matrix is a literal `[e1, ..., en]` with an optional index domain
// annotation `[...; D]`.
type Matrix struct {
	Locus
	Elements []Expression
	Domain   Domain
}

// IndexDomain returns the index domain of m. Without an annotation this is
// int(1..n) for n elements.
func (m *Matrix) IndexDomain() Domain {
	if m.Domain != nil {
		return m.Domain
	}
	return IntRange(1, int64(len(m.Elements)))
}

// Wildcard is the `..` placeholder of a slice.
type Wildcard struct {
	Locus
}

// IndexOrSlice is `target[i1, ..., ik]`. If any index is a Wildcard, the
// expression denotes a slice.
type IndexOrSlice struct {
	Locus
	Target  Expression
	Indices []Expression
}

// IsSlice is a predicate: is any of the indices a wildcard?
func (ix *IndexOrSlice) IsSlice() bool {
	for _, i := range ix.Indices {
		if _, ok := i.(*Wildcard); ok {
			return true
		}
	}
	return false
}

// FromSolution is `fromSolution(v)`, the value of v in a previous solution.
type FromSolution struct {
	Locus
	Variable *Variable
}

// Grouped is a parenthesized expression. It carries no meaning of its own.
type Grouped struct {
	Locus
	Inner Expression
}

func (*Constant) exprNode()     {}
func (*Variable) exprNode()     {}
func (*MetaVariable) exprNode() {}
func (*UnaryOp) exprNode()      {}
func (*BinaryOp) exprNode()     {}
func (*Quantifier) exprNode()   {}
func (*Tuple) exprNode()        {}
func (*Matrix) exprNode()       {}
func (*Wildcard) exprNode()     {}
func (*IndexOrSlice) exprNode() {}
func (*FromSolution) exprNode() {}
func (*Grouped) exprNode()      {}

// Unparen strips any number of enclosing Grouped nodes.
func Unparen(e Expression) Expression {
	for {
		g, ok := e.(*Grouped)
		if !ok || g.Inner == nil {
			return e
		}
		e = g.Inner
	}
}
