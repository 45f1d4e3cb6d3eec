package evaluator_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/evaluator"
	"github.com/npillmayer/essence/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parse(t *testing.T, src string) ast.Expression {
	e, errs := grammar.ParseExpression(src)
	if len(errs) > 0 {
		t.Fatalf("cannot parse %q: %v", src, errs)
	}
	return e
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.eval")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		value int64
	}{
		{"1 + 2 * 3", 7},
		{"10 - 3 - 2", 5},
		{"2 ** 3 ** 2", 512},
		{"-2 ** 2", -4},
		{"(-2) ** 2", 4},
		{"7 / 2", 3},
		{"-7 / 2", -4},
		{"-7 % 2", 1},
		{"7 % -2", -1},
		{"|3 - 10|", 7},
		{"sum([1, 2, 3])", 6},
		{"min([4, -1, 3])", -1},
		{"max([4, -1, 3])", 4},
		{"[10, 20, 30][2]", 20},
		{"[10, 20; int(0..1)][0]", 10},
		{"(5, 6)[2]", 6},
		{"sum([[1, 2], [3, 4]][.., 2])", 6},
		{"[[1, 2], [3, 4]][2, 1]", 3},
		{"sum([])", 0},
		{"9223372036854775806 + 1", 9223372036854775807},
		{"-9223372036854775807 - 1", -9223372036854775808},
		{"(-2) ** 63", -9223372036854775808},
		{"3037000499 * 3037000499", 9223372030926249001},
	} {
		v, err := evaluator.Eval(parse(t, x.input), nil)
		if err != nil {
			t.Errorf("test %d: %q: %v", i, x.input, err)
			continue
		}
		if !v.IsInt() || v.Int != x.value {
			t.Errorf("test %d: expected %q = %d, have %s", i, x.input, x.value, v)
		}
	}
}

func TestLogic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.eval")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		value bool
	}{
		{`true /\ !false`, true},
		{`false \/ false`, false},
		{"false -> false", true},
		{"true <-> false", false},
		{"1 + 1 = 2", true},
		{"3 != 3", false},
		{"2 <= 1", false},
		{"(1, true) = (1, true)", true},
		{"allDiff([1, 2, 3])", true},
		{"allDiff([1, 2, 1])", false},
		{"and([true, 1 < 2])", true},
		{"or([])", false},
		{"[false, true; bool][true]", true},
	} {
		v, err := evaluator.Eval(parse(t, x.input), nil)
		if err != nil {
			t.Errorf("test %d: %q: %v", i, x.input, err)
			continue
		}
		if !v.IsBool() || v.Bool != x.value {
			t.Errorf("test %d: expected %q = %v, have %s", i, x.input, x.value, v)
		}
	}
}

func TestBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.eval")
	defer teardown()
	//
	env := evaluator.Bindings{
		"n":    parse(t, "10"),
		"m":    parse(t, "n * 2"),
		"v":    parse(t, "[n, m, 3]"),
		"loop": parse(t, "loop + 1"),
	}
	v, err := evaluator.Eval(parse(t, "sum(v) + m"), env)
	if err != nil || v.Int != 53 {
		t.Errorf("expected 53, have %s (%v)", v, err)
	}
	if _, err = evaluator.Eval(parse(t, "loop"), env); !errors.Is(err, evaluator.ErrNotConstant) {
		t.Errorf("expected cyclic definition to fail as non-constant, have %v", err)
	}
	if _, err = evaluator.Eval(parse(t, "x + 1"), env); !errors.Is(err, evaluator.ErrNotConstant) {
		t.Errorf("expected unbound x to be non-constant, have %v", err)
	}
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.eval")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		err   error
	}{
		{"1 / 0", evaluator.ErrDivisionByZero},
		{"1 % 0", evaluator.ErrDivisionByZero},
		{"2 ** -1", evaluator.ErrNegativeExponent},
		{"1 + true", evaluator.ErrType},
		{"!3", evaluator.ErrType},
		{"1 = false", evaluator.ErrType},
		{"&m + 1", evaluator.ErrNotConstant},
		{"fromSolution(x)", evaluator.ErrNotConstant},
		{"[1, 2][3]", evaluator.ErrIndex},
		{"min([])", evaluator.ErrIndex},
		{"sum(5)", evaluator.ErrType},
		{"2 ** 64", evaluator.ErrOverflow},
		{"2 ** 63", evaluator.ErrOverflow},
		{"9223372036854775807 + 1", evaluator.ErrOverflow},
		{"-9223372036854775807 - 2", evaluator.ErrOverflow},
		{"3037000500 * 3037000500", evaluator.ErrOverflow},
		{"sum([9223372036854775807, 1])", evaluator.ErrOverflow},
		{"-(-9223372036854775807 - 1)", evaluator.ErrOverflow},
		{"(-9223372036854775807 - 1) / -1", evaluator.ErrOverflow},
	} {
		var e ast.Expression
		if x.input == "sum(5)" {
			e = &ast.Quantifier{Kind: ast.QuantSum, Arg: ast.NewInt(5)}
		} else {
			e = parse(t, x.input)
		}
		if _, err := evaluator.Eval(e, nil); !errors.Is(err, x.err) {
			t.Errorf("test %d: %q: expected error %v, have %v", i, x.input, x.err, err)
		}
	}
}

func TestExprStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.eval")
	defer teardown()
	//
	es := evaluator.NewExprStack()
	es.Push(evaluator.Int(1)).Push(evaluator.Bool(true))
	if es.Size() != 2 || !es.Top().IsBool() {
		t.Fatalf("unexpected stack state, size %d", es.Size())
	}
	if _, err := es.PopAsInt("test"); !errors.Is(err, evaluator.ErrType) {
		t.Errorf("expected type error popping a boolean as int, have %v", err)
	}
	if n, err := es.PopAsInt("test"); err != nil || n != 1 {
		t.Errorf("expected 1, have %d (%v)", n, err)
	}
	if !es.IsEmpty() {
		t.Errorf("expected empty stack")
	}
	if s := evaluator.Matrix(evaluator.Int(1), evaluator.Bool(false)).String(); s != "[1, false]" {
		t.Errorf("unexpected matrix format %q", s)
	}
}
