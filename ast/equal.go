package ast

// Equal compares two trees structurally. Source spans are not compared and
// Grouped nodes are looked through, so that `(a + b) * c` parsed from text
// equals the same tree built without parentheses.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Program:
		y, ok := b.(*Program)
		if !ok || len(x.Statements) != len(y.Statements) {
			return false
		}
		for i := range x.Statements {
			if !Equal(x.Statements[i], y.Statements[i]) {
				return false
			}
		}
		return true
	case Statement:
		return equalStatement(x, b)
	case Domain:
		y, ok := b.(Domain)
		return ok && equalDomain(x, y)
	case Expression:
		y, ok := b.(Expression)
		return ok && equalExpr(x, y)
	case *Range:
		y, ok := b.(*Range)
		return ok && equalRange(x, y)
	case *Ident:
		y, ok := b.(*Ident)
		return ok && x.Name == y.Name
	}
	return false
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch x := n.(type) {
	case Expression:
		return x == nil || isNilExpr(x)
	case Domain:
		return x == nil || isNilDomain(x)
	}
	return false
}

// Typed nil pointers may end up in interfaces when nodes are built by hand.
func isNilExpr(e Expression) bool {
	switch x := e.(type) {
	case *Constant:
		return x == nil
	case *Variable:
		return x == nil
	case *BinaryOp:
		return x == nil
	case *UnaryOp:
		return x == nil
	case *Grouped:
		return x == nil
	}
	return false
}

func isNilDomain(d Domain) bool {
	switch x := d.(type) {
	case *IntDomain:
		return x == nil
	case *BoolDomain:
		return x == nil
	case *DomainRef:
		return x == nil
	}
	return false
}

func equalStatement(a Statement, b Node) bool {
	switch x := a.(type) {
	case *FindBlock:
		y, ok := b.(*FindBlock)
		if !ok || len(x.Decls) != len(y.Decls) {
			return false
		}
		for i, d := range x.Decls {
			e := y.Decls[i]
			if !equalIdents(d.Names, e.Names) || !Equal(d.Domain, e.Domain) {
				return false
			}
		}
		return true
	case *LettingBlock:
		y, ok := b.(*LettingBlock)
		if !ok || len(x.Entries) != len(y.Entries) {
			return false
		}
		for i, l := range x.Entries {
			m := y.Entries[i]
			if !equalIdents(l.Names, m.Names) || l.IsDomain() != m.IsDomain() {
				return false
			}
			if l.IsDomain() && !Equal(l.Domain, m.Domain) {
				return false
			}
			if !l.IsDomain() && !Equal(l.Value, m.Value) {
				return false
			}
		}
		return true
	case *ConstraintBlock:
		y, ok := b.(*ConstraintBlock)
		return ok && equalExprs(x.Constraints, y.Constraints)
	case *DominanceRelation:
		y, ok := b.(*DominanceRelation)
		return ok && Equal(x.Expr, y.Expr)
	}
	return false
}

func equalIdents(a, b []*Ident) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

func equalDomain(a, b Domain) bool {
	switch x := a.(type) {
	case *BoolDomain:
		_, ok := b.(*BoolDomain)
		return ok
	case *IntDomain:
		y, ok := b.(*IntDomain)
		if !ok || len(x.Ranges) != len(y.Ranges) {
			return false
		}
		for i := range x.Ranges {
			if !equalRange(x.Ranges[i], y.Ranges[i]) {
				return false
			}
		}
		return true
	case *DomainRef:
		y, ok := b.(*DomainRef)
		return ok && x.Name == y.Name
	case *TupleDomain:
		y, ok := b.(*TupleDomain)
		return ok && equalDomains(x.Members, y.Members)
	case *MatrixDomain:
		y, ok := b.(*MatrixDomain)
		return ok && equalDomains(x.Index, y.Index) && Equal(x.Value, y.Value)
	}
	return false
}

func equalDomains(a, b []Domain) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// A single-value range v equals the explicit range v..v.
func equalRange(a, b *Range) bool {
	return Equal(a.Lower, b.Lower) && Equal(a.Upper, b.Upper)
}

func equalExpr(a, b Expression) bool {
	a, b = Unparen(a), Unparen(b)
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		if !ok || x.Kind != y.Kind {
			return false
		}
		if x.Kind == BoolConst {
			return x.Bool == y.Bool
		}
		return x.Int == y.Int
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *MetaVariable:
		y, ok := b.(*MetaVariable)
		return ok && x.Name == y.Name
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Quantifier:
		y, ok := b.(*Quantifier)
		return ok && x.Kind == y.Kind && Equal(x.Arg, y.Arg)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && equalExprs(x.Elements, y.Elements)
	case *Matrix:
		y, ok := b.(*Matrix)
		return ok && equalExprs(x.Elements, y.Elements) && Equal(x.Domain, y.Domain)
	case *Wildcard:
		_, ok := b.(*Wildcard)
		return ok
	case *IndexOrSlice:
		y, ok := b.(*IndexOrSlice)
		return ok && Equal(x.Target, y.Target) && equalExprs(x.Indices, y.Indices)
	case *FromSolution:
		y, ok := b.(*FromSolution)
		return ok && Equal(x.Variable, y.Variable)
	case *Grouped: // only reached for an empty group
		y, ok := b.(*Grouped)
		return ok && y.Inner == nil && x.Inner == nil
	}
	return false
}

func equalExprs(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
