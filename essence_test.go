package essence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence")
	defer teardown()
	//
	src := `language Essence 1.3
letting n be 4
find queens : matrix indexed by [int(1..n)] of int(1..n)
such that allDiff(queens)
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("expected model to parse, got %v", err)
	}
	if len(prog.Statements) != 3 {
		t.Errorf("expected 3 statements, got %d", len(prog.Statements))
	}
	m := Analyze(src)
	if m.Frame == nil || m.Frame.Size() != 2 {
		t.Errorf("expected frame with 2 declarations")
	}
}

func TestParseReturnsDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence")
	defer teardown()
	//
	for i, x := range []struct {
		src  string
		kind diag.Kind
	}{
		{"find x : int(1..3)\nsuch that x = %", diag.LexicalError},
		{"find x : int(1..3)\nsuch that x +", diag.SyntaxError},
		{"find x : bool\nfind x : bool", diag.StructuralError},
	} {
		prog, err := Parse(x.src)
		if err == nil {
			t.Errorf("%d: expected error for %q", i, x.src)
			continue
		}
		var diags diag.List
		if !errors.As(err, &diags) {
			t.Fatalf("%d: expected diag.List, got %T", i, err)
		}
		if diags.Count(x.kind) == 0 {
			t.Errorf("%d: expected a %s, got %v", i, x.kind, diags)
		}
		if prog == nil {
			t.Errorf("%d: expected partial program", i)
		}
	}
}

func TestSyntaxErrorsSkipValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence")
	defer teardown()
	//
	m := Analyze("find x : int(1..\nsuch that y = 1")
	if m.Frame != nil {
		t.Errorf("expected no frame for model with syntax errors")
	}
	if n := m.Diagnostics.Count(diag.StructuralError); n != 0 {
		t.Errorf("expected no structural errors, got %d", n)
	}
}

func TestParseFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence")
	defer teardown()
	//
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.essence"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.essence")
	if err := os.WriteFile(path, []byte("find b : bool\nsuch that b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path); err != nil {
		t.Errorf("expected %s to parse, got %v", path, err)
	}
}
