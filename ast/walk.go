package ast

// Inspect traverses a tree in depth-first order. It starts by calling
// f(node); if f returns true, Inspect is invoked recursively for each of the
// non-nil children of node, followed by a call of f(nil).
//
// Named references (Variable, DomainRef) are leaves: Inspect never follows
// them to the declaration they name.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}
	walkChildren(node, f)
	f(nil)
}

func walkChildren(node Node, f func(Node) bool) {
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *FindBlock:
		for _, d := range n.Decls {
			Inspect(d, f)
		}
	case *FindDecl:
		for _, id := range n.Names {
			Inspect(id, f)
		}
		Inspect(n.Domain, f)
	case *LettingBlock:
		for _, l := range n.Entries {
			Inspect(l, f)
		}
	case *Letting:
		for _, id := range n.Names {
			Inspect(id, f)
		}
		if n.IsDomain() {
			Inspect(n.Domain, f)
		} else {
			Inspect(n.Value, f)
		}
	case *ConstraintBlock:
		for _, c := range n.Constraints {
			Inspect(c, f)
		}
	case *DominanceRelation:
		Inspect(n.Expr, f)
	case *IntDomain:
		for _, r := range n.Ranges {
			Inspect(r, f)
		}
	case *Range:
		Inspect(n.Lower, f)
		if !n.Single {
			Inspect(n.Upper, f)
		}
	case *TupleDomain:
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *MatrixDomain:
		for _, i := range n.Index {
			Inspect(i, f)
		}
		Inspect(n.Value, f)
	case *UnaryOp:
		Inspect(n.Operand, f)
	case *BinaryOp:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Quantifier:
		Inspect(n.Arg, f)
	case *Tuple:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *Matrix:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
		Inspect(n.Domain, f)
	case *IndexOrSlice:
		Inspect(n.Target, f)
		for _, e := range n.Indices {
			Inspect(e, f)
		}
	case *FromSolution:
		if n.Variable != nil {
			Inspect(n.Variable, f)
		}
	case *Grouped:
		Inspect(n.Inner, f)
	}
}
