package sframe

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
)

// DeclKind tells what a name has been declared as.
type DeclKind uint8

// Kinds of declarations
const (
	Undefined DeclKind = iota
	Decision           // find x : D
	Value              // letting x be e
	DomainAlias        // letting D be domain ...
)

func (k DeclKind) String() string {
	switch k {
	case Decision:
		return "decision variable"
	case Value:
		return "value"
	case DomainAlias:
		return "domain"
	}
	return "undefined"
}

// Decl is the declaration of a single name.
type Decl struct {
	Name   string
	Kind   DeclKind
	At     diag.Span
	Domain ast.Domain     // for Decision and DomainAlias
	Value  ast.Expression // for Value
}

// ErrCyclicDomain flags domain aliases which are defined in terms of
// themselves.
var ErrCyclicDomain = errors.New("cyclic domain definition")

// Frame is a table of declarations, ordered by name.
type Frame struct {
	decls *treemap.Map
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{decls: treemap.NewWithStringComparator()}
}

// Declare enters d into the frame. If the name is already declared, the
// frame is left unchanged and the previous declaration is returned with
// ok = false.
func (f *Frame) Declare(d Decl) (prev Decl, ok bool) {
	if p, found := f.decls.Get(d.Name); found {
		return p.(Decl), false
	}
	tracer().P("name", d.Name).Debugf("declare %s", d.Kind)
	f.decls.Put(d.Name, d)
	return d, true
}

// Lookup finds the declaration of a name.
func (f *Frame) Lookup(name string) (Decl, bool) {
	if d, found := f.decls.Get(name); found {
		return d.(Decl), true
	}
	return Decl{}, false
}

// Size returns the number of declared names.
func (f *Frame) Size() int {
	return f.decls.Size()
}

// Names returns all declared names in ascending order.
func (f *Frame) Names() []string {
	names := make([]string, 0, f.decls.Size())
	for _, k := range f.decls.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Each calls fn for every declaration, in order of names.
func (f *Frame) Each(fn func(Decl)) {
	f.decls.Each(func(_ interface{}, v interface{}) {
		fn(v.(Decl))
	})
}

// Value returns the expression a name is bound to by a value letting.
func (f *Frame) Value(name string) (ast.Expression, bool) {
	d, ok := f.Lookup(name)
	if !ok || d.Kind != Value {
		return nil, false
	}
	return d.Value, true
}

// ResolveDomain follows domain aliases until it finds a domain which is not
// a reference. It fails for undeclared names, names which are not domains,
// and cyclic aliases.
func (f *Frame) ResolveDomain(d ast.Domain) (ast.Domain, error) {
	seen := make(map[string]bool)
	for {
		ref, ok := d.(*ast.DomainRef)
		if !ok {
			return d, nil
		}
		if seen[ref.Name] {
			return nil, fmt.Errorf("%w '%s'", ErrCyclicDomain, ref.Name)
		}
		seen[ref.Name] = true
		decl, found := f.Lookup(ref.Name)
		if !found {
			return nil, fmt.Errorf("undefined domain '%s'", ref.Name)
		}
		if decl.Kind != DomainAlias {
			return nil, fmt.Errorf("'%s' is a %s, not a domain", ref.Name, decl.Kind)
		}
		d = decl.Domain
	}
}

// FromProgram builds the frame for all declarations of prog. A name
// declared a second time is reported as a structural error and the first
// declaration stays in effect.
func FromProgram(prog *ast.Program) (*Frame, diag.List) {
	f := NewFrame()
	var errs diag.List
	declare := func(id *ast.Ident, d Decl) {
		d.Name, d.At = id.Name, id.Pos()
		if _, ok := f.Declare(d); !ok {
			errs.Add(diag.StructuralError, id.Pos(),
				"Redeclaration of variable '%s' which was previously defined", id.Name)
		}
	}
	for _, s := range prog.Statements {
		switch st := s.(type) {
		case *ast.FindBlock:
			for _, decl := range st.Decls {
				for _, id := range decl.Names {
					declare(id, Decl{Kind: Decision, Domain: decl.Domain})
				}
			}
		case *ast.LettingBlock:
			for _, l := range st.Entries {
				for _, id := range l.Names {
					if l.IsDomain() {
						declare(id, Decl{Kind: DomainAlias, Domain: l.Domain})
					} else {
						declare(id, Decl{Kind: Value, Value: l.Value})
					}
				}
			}
		}
	}
	tracer().Debugf("frame has %d declarations", f.Size())
	return f, errs
}
