package ast

import (
	"bytes"
	"testing"

	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func v(name string) *Variable { return &Variable{Name: name} }

func bin(op BinaryOperator, l, r Expression) *BinaryOp {
	return &BinaryOp{Op: op, Left: l, Right: r}
}

func TestFormatParens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.ast")
	defer teardown()
	//
	for i, x := range []struct {
		e    Expression
		text string
	}{
		{bin(Add, v("a"), bin(Mul, v("b"), v("c"))), "a + b * c"},
		{bin(Mul, bin(Add, v("a"), v("b")), v("c")), "(a + b) * c"},
		{bin(Sub, bin(Sub, v("a"), v("b")), v("c")), "a - b - c"},
		{bin(Sub, v("a"), bin(Sub, v("b"), v("c"))), "a - (b - c)"},
		{bin(Pow, v("a"), bin(Pow, v("b"), v("c"))), "a ** b ** c"},
		{bin(Pow, bin(Pow, v("a"), v("b")), v("c")), "(a ** b) ** c"},
		{&UnaryOp{Op: Negate, Operand: bin(Pow, v("x"), NewInt(2))}, "-x ** 2"},
		{bin(Pow, &UnaryOp{Op: Negate, Operand: v("x")}, NewInt(2)), "(-x) ** 2"},
		{&UnaryOp{Op: Not, Operand: bin(And, v("p"), v("q"))}, `!(p /\ q)`},
		{&UnaryOp{Op: Abs, Operand: bin(Sub, v("x"), v("y"))}, "|x - y|"},
		{bin(Imply, bin(Or, v("p"), v("q")), bin(Leq, v("x"), NewInt(3))), `p \/ q -> x <= 3`},
		{&Quantifier{Kind: QuantAllDiff, Arg: &Matrix{Elements: []Expression{v("x"), v("y")}}},
			"allDiff([x, y])"},
		{&IndexOrSlice{Target: v("m"), Indices: []Expression{NewInt(1), &Wildcard{}}}, "m[1, ..]"},
		{&Matrix{Elements: []Expression{NewInt(1)}, Domain: &BoolDomain{}}, "[1; bool]"},
		{&Tuple{Elements: []Expression{NewBool(true), &MetaVariable{Name: "a"}}}, "(true, &a)"},
		{&FromSolution{Variable: v("x")}, "fromSolution(x)"},
	} {
		if s := Format(x.e); s != x.text {
			t.Errorf("test %d: expected %q, have %q", i, x.text, s)
		}
	}
}

func TestFormatDomains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.ast")
	defer teardown()
	//
	d := &MatrixDomain{
		Index: []Domain{IntRange(1, 3), &BoolDomain{}},
		Value: &IntDomain{Ranges: []*Range{
			{Lower: NewInt(0)},
			NewSingle(NewInt(7)),
			{Upper: &Variable{Name: "n"}},
		}},
	}
	if s := Format(d); s != "matrix indexed by [int(1..3), bool] of int(0.., 7, ..n)" {
		t.Errorf("unexpected matrix domain format: %q", s)
	}
	if s := Format(&TupleDomain{Members: []Domain{&IntDomain{}, &DomainRef{Name: "D"}}}); s != "tuple(int, D)" {
		t.Errorf("unexpected tuple domain format: %q", s)
	}
}

func TestEqualIgnoresSpansAndGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.ast")
	defer teardown()
	//
	somewhere := At(diag.Span{Line: 3, Column: 7})
	a := bin(Mul, &Grouped{Inner: bin(Add, v("a"), v("b"))}, v("c"))
	b := bin(Mul, bin(Add, &Variable{Locus: somewhere, Name: "a"}, v("b")), v("c"))
	if !Equal(a, b) {
		t.Errorf("expected %s to equal %s", Format(a), Format(b))
	}
	if Equal(a, bin(Mul, bin(Add, v("a"), v("c")), v("c"))) {
		t.Errorf("expected different trees to compare unequal")
	}
	if Equal(NewInt(1), NewBool(true)) {
		t.Errorf("integer and boolean constant compare equal")
	}
	r1 := NewSingle(NewInt(4))
	r2 := &Range{Lower: NewInt(4), Upper: NewInt(4)}
	if !Equal(&IntDomain{Ranges: []*Range{r1}}, &IntDomain{Ranges: []*Range{r2}}) {
		t.Errorf("expected single value range to equal 4..4")
	}
}

func TestMatrixIndexDomain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.ast")
	defer teardown()
	//
	m := &Matrix{Elements: []Expression{NewInt(1), NewInt(2), NewInt(3)}}
	if !Equal(m.IndexDomain(), IntRange(1, 3)) {
		t.Errorf("expected implied index domain int(1..3), have %s", Format(m.IndexDomain()))
	}
	m.Domain = &BoolDomain{}
	if _, ok := m.IndexDomain().(*BoolDomain); !ok {
		t.Errorf("expected explicit index domain to be returned")
	}
	ix := &IndexOrSlice{Target: v("m"), Indices: []Expression{NewInt(1)}}
	if ix.IsSlice() {
		t.Errorf("m[1] is not a slice")
	}
}

func TestInspectAndProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.ast")
	defer teardown()
	//
	fb := &FindBlock{Decls: []*FindDecl{
		{Names: []*Ident{{Name: "x"}, {Name: "y"}}, Domain: IntRange(1, 10)},
		{Names: []*Ident{{Name: "b"}}, Domain: &BoolDomain{}},
	}}
	cb := &ConstraintBlock{Constraints: []Expression{
		bin(Leq, bin(Add, v("x"), v("y")), NewInt(10)),
	}}
	prog := &Program{Statements: []Statement{fb, cb}}
	pairs := prog.Decisions()
	if len(pairs) != 3 || pairs[2].Name.Name != "b" || pairs[0].Domain != pairs[1].Domain {
		t.Errorf("unexpected decisions: %v", pairs)
	}
	vars := 0
	Inspect(prog, func(n Node) bool {
		if _, ok := n.(*Variable); ok {
			vars++
		}
		return true
	})
	if vars != 2 {
		t.Errorf("expected 2 variable references, counted %d", vars)
	}
	var buf bytes.Buffer
	if err := Fprint(&buf, prog); err != nil {
		t.Fatal(err)
	}
	expected := "find x, y : int(1..10), b : bool\nsuch that x + y <= 10\n"
	if buf.String() != expected {
		t.Errorf("expected\n%s\nhave\n%s", expected, buf.String())
	}
}
