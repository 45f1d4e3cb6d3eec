package sframe

import (
	"errors"
	"testing"

	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func ident(name string, line int) *ast.Ident {
	return &ast.Ident{Locus: ast.At(diag.Span{Line: line, Column: 1}), Name: name}
}

func TestDeclareAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.sframe")
	defer teardown()
	//
	f := NewFrame()
	f.Declare(Decl{Name: "y", Kind: Decision, Domain: &ast.BoolDomain{}})
	f.Declare(Decl{Name: "n", Kind: Value, Value: ast.NewInt(3)})
	if _, ok := f.Declare(Decl{Name: "y", Kind: Value}); ok {
		t.Errorf("expected second declaration of y to fail")
	}
	if d, ok := f.Lookup("y"); !ok || d.Kind != Decision {
		t.Errorf("expected y to stay a decision variable, is %v", d.Kind)
	}
	if names := f.Names(); len(names) != 2 || names[0] != "n" || names[1] != "y" {
		t.Errorf("expected sorted names [n y], have %v", names)
	}
	if v, ok := f.Value("n"); !ok || !ast.Equal(v, ast.NewInt(3)) {
		t.Errorf("expected n to be bound to 3")
	}
	if _, ok := f.Value("y"); ok {
		t.Errorf("decision variable y must not have a value")
	}
}

func TestFromProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.sframe")
	defer teardown()
	//
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.FindBlock{Decls: []*ast.FindDecl{
			{Names: []*ast.Ident{ident("x", 1)}, Domain: &ast.DomainRef{Name: "D"}},
		}},
		&ast.LettingBlock{Entries: []*ast.Letting{
			{Names: []*ast.Ident{ident("D", 2)}, Domain: &ast.DomainRef{Name: "E"}},
			{Names: []*ast.Ident{ident("E", 2)}, Domain: ast.IntRange(1, 3)},
		}},
		&ast.FindBlock{Decls: []*ast.FindDecl{
			{Names: []*ast.Ident{ident("x", 3)}, Domain: &ast.BoolDomain{}},
		}},
	}}
	f, errs := FromProgram(prog)
	if len(errs) != 1 || errs[0].Span.Line != 3 ||
		errs[0].Message != "Redeclaration of variable 'x' which was previously defined" {
		t.Errorf("expected redeclaration error in line 3, have %v", errs)
	}
	x, _ := f.Lookup("x")
	d, err := f.ResolveDomain(x.Domain)
	if err != nil {
		t.Fatal(err)
	}
	if !ast.Equal(d, ast.IntRange(1, 3)) {
		t.Errorf("expected x to have domain int(1..3), has %s", ast.Format(d))
	}
	if _, err := f.ResolveDomain(&ast.DomainRef{Name: "x"}); err == nil {
		t.Errorf("expected error resolving a decision variable as a domain")
	}
	f.Declare(Decl{Name: "C", Kind: DomainAlias, Domain: &ast.DomainRef{Name: "C"}})
	if _, err := f.ResolveDomain(&ast.DomainRef{Name: "C"}); !errors.Is(err, ErrCyclicDomain) {
		t.Errorf("expected ErrCyclicDomain, have %v", err)
	}
}
