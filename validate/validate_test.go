package validate

import (
	"testing"

	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func check(t *testing.T, src string) diag.List {
	prog, errs := grammar.ParseProgram(src)
	if len(errs) > 0 {
		t.Fatalf("cannot parse %q: %v", src, errs)
	}
	_, errs = Program(prog)
	return errs
}

func TestValidProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.validate")
	defer teardown()
	//
	src := `letting n be 3, I be domain int(1..n), B be domain bool
find m : matrix indexed by [I, B] of int(0..n * 2)
find x : J
letting J be domain int(-n..n)
such that sum(m[.., true]) = x, allDiff([x, n])
dominanceRelation x <= fromSolution(x)
`
	if errs := check(t, src); len(errs) > 0 {
		t.Errorf("expected no errors, have %v", errs)
	}
}

func TestStructuralErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.validate")
	defer teardown()
	//
	for i, x := range []struct {
		input   string
		message string
		line    int
	}{
		{"find x : int(1..10)\nfind x : int(2..3)",
			"Redeclaration of variable 'x' which was previously defined", 2},
		{"find x : int(10..1)", "Start value greater than end value", 1},
		{"letting n be 5\nfind x : int(n..n - 1)", "Start value greater than end value", 2},
		{"find m : matrix indexed by [tuple(int)] of bool",
			"Index domain of a matrix must be bool or int, not tuple(int)", 1},
		{"letting T be domain tuple(int, bool)\nfind m : matrix indexed by [T] of bool",
			"Index domain of a matrix must be bool or int, not tuple(int, bool)", 2},
		{"find m : matrix indexed by [D] of bool", "Undefined domain 'D'", 1},
		{"letting n be 1\nfind x : n", "'n' is a value, not a domain", 2},
		{"letting D be domain E, E be domain D\nfind x : bool",
			"Domain 'E' is defined in terms of itself", 1}, // reported at each reference
		{"find x : bool\nsuch that x /\\ y", "Undefined variable: 'y'", 2},
		{"find x : int(1..3)\nsuch that x = fromSolution(x)",
			"`fromSolution()` is only allowed inside dominance relation definitions", 2},
		{"letting n be 1\nfind x : bool\ndominanceRelation x -> fromSolution(n)",
			"Expression inside a `fromSolution()` must be a variable name", 3},
		{"find x : bool\ndominanceRelation x\ndominanceRelation !x",
			"Duplicate dominance relation", 3},
		{"find x : int(1..3 / 0)", "Unsafe division attempted", 1},
		{"find x: int(5..10)\nsuch that x/0 = 3", "Unsafe division attempted", 2},
		{"find x: int(5..10)\nsuch that x % (2 - 2) = 1", "Unsafe division attempted", 2},
		{"find x : int(1..2**64)", "Cannot evaluate range bound: integer overflow: 2 ** 64", 1},
		{"find x : int(1..9223372036854775807 + 1)",
			"Cannot evaluate range bound: integer overflow: 9223372036854775807 + 1", 1},
		{"find x : int(0..3037000500 * 3037000500)",
			"Cannot evaluate range bound: integer overflow: 3037000500 * 3037000500", 1},
		{"find x : int(1..true)", "Range bound must be an integer, is bool", 1},
	} {
		errs := check(t, x.input)
		if len(errs) == 0 {
			t.Errorf("test %d: expected error %q", i, x.message)
			continue
		}
		if errs[0].Message != x.message || errs[0].Span.Line != x.line ||
			errs[0].Kind != diag.StructuralError {
			t.Errorf("test %d: expected %q in line %d, have %v", i, x.message, x.line, errs)
		}
	}
}

func TestDivisionSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.validate")
	defer teardown()
	//
	errs := check(t, "find x: int(5..10)\nsuch that x/0 = 3 /\\ x / 2 = 1")
	if len(errs) != 1 {
		t.Fatalf("expected a single error, have %v", errs)
	}
	if s := errs[0].Span; s.Line != 2 || s.Column != 11 || s.Len() != 3 {
		t.Errorf("expected error to cover 'x/0' at 2:11, have %s (%d bytes)", s, s.Len())
	}
}
