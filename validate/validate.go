package validate

import (
	"errors"

	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/evaluator"
	"github.com/npillmayer/essence/sframe"
)

type checker struct {
	frame *sframe.Frame
	eval  *evaluator.Evaluator
	errs  diag.List
}

// Program checks prog for structural errors. It returns the declaration
// frame of prog together with the errors found, sorted by position.
func Program(prog *ast.Program) (*sframe.Frame, diag.List) {
	frame, errs := sframe.FromProgram(prog)
	c := &checker{
		frame: frame,
		eval:  evaluator.NewEvaluator(frame),
		errs:  errs,
	}
	var dominance *ast.DominanceRelation
	for _, s := range prog.Statements {
		if dr, ok := s.(*ast.DominanceRelation); ok {
			if dominance != nil {
				c.errs.Add(diag.StructuralError, dr.Pos(), "Duplicate dominance relation")
			}
			dominance = dr
		}
		c.statement(s, dominance == s)
	}
	c.errs.Sort()
	tracer().Infof("validated %d statements, %d errors", len(prog.Statements), len(c.errs))
	return frame, c.errs
}

// statement checks all nodes of a statement.
func (c *checker) statement(s ast.Statement, isDominance bool) {
	ast.Inspect(s, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.Variable:
			if _, ok := c.frame.Lookup(x.Name); !ok {
				c.errs.Add(diag.StructuralError, x.Pos(), "Undefined variable: '%s'", x.Name)
			}
		case *ast.FromSolution:
			c.fromSolution(x, isDominance)
		case *ast.DomainRef:
			c.domainRef(x)
		case *ast.MatrixDomain:
			for _, ix := range x.Index {
				c.matrixIndex(ix)
			}
		case *ast.Range:
			c.rangeOrder(x)
		case *ast.BinaryOp:
			if x.Op == ast.Div || x.Op == ast.Mod {
				c.division(x)
			}
		}
		return true
	})
}

func (c *checker) fromSolution(fs *ast.FromSolution, isDominance bool) {
	if !isDominance {
		c.errs.Add(diag.StructuralError, fs.Pos(),
			"`fromSolution()` is only allowed inside dominance relation definitions")
		return
	}
	if d, ok := c.frame.Lookup(fs.Variable.Name); ok && d.Kind != sframe.Decision {
		c.errs.Add(diag.StructuralError, fs.Variable.Pos(),
			"Expression inside a `fromSolution()` must be a variable name")
	}
}

func (c *checker) domainRef(ref *ast.DomainRef) {
	d, ok := c.frame.Lookup(ref.Name)
	if !ok {
		c.errs.Add(diag.StructuralError, ref.Pos(), "Undefined domain '%s'", ref.Name)
		return
	}
	if d.Kind != sframe.DomainAlias {
		c.errs.Add(diag.StructuralError, ref.Pos(), "'%s' is a %s, not a domain", ref.Name, d.Kind)
		return
	}
	if _, err := c.frame.ResolveDomain(ref); errors.Is(err, sframe.ErrCyclicDomain) {
		c.errs.Add(diag.StructuralError, ref.Pos(), "Domain '%s' is defined in terms of itself", ref.Name)
	}
}

// matrixIndex checks that an index domain is bool or int. Aliases are
// resolved first; problems with the alias itself are reported at the
// reference.
func (c *checker) matrixIndex(ix ast.Domain) {
	d, err := c.frame.ResolveDomain(ix)
	if err != nil {
		return
	}
	switch d.(type) {
	case *ast.BoolDomain, *ast.IntDomain:
		return
	}
	c.errs.Add(diag.StructuralError, ix.Pos(),
		"Index domain of a matrix must be bool or int, not %s", ast.Format(d))
}

// rangeOrder checks lower <= upper for ranges with constant bounds.
func (c *checker) rangeOrder(r *ast.Range) {
	if r.Single || r.Lower == nil || r.Upper == nil {
		return
	}
	lo, ok := c.bound(r.Lower)
	if !ok {
		return
	}
	hi, ok := c.bound(r.Upper)
	if ok && lo > hi {
		c.errs.Add(diag.StructuralError, r.Pos(), "Start value greater than end value")
	}
}

// division reports a divisor which is constantly zero.
func (c *checker) division(op *ast.BinaryOp) {
	v, err := c.eval.Eval(op.Right)
	if err == nil && v.IsInt() && v.Int == 0 {
		c.errs.Add(diag.StructuralError, op.Pos(), "Unsafe division attempted")
	}
}

// bound evaluates a range bound. Bounds which are not constant are left to
// model construction, division by zero is reported at the operator; other
// evaluation errors are reported at the bound.
func (c *checker) bound(e ast.Expression) (int64, bool) {
	v, err := c.eval.Eval(e)
	if errors.Is(err, evaluator.ErrNotConstant) || errors.Is(err, evaluator.ErrDivisionByZero) {
		return 0, false
	}
	if err != nil {
		c.errs.Add(diag.StructuralError, e.Pos(), "Cannot evaluate range bound: %v", err)
		return 0, false
	}
	if !v.IsInt() {
		c.errs.Add(diag.StructuralError, e.Pos(), "Range bound must be an integer, is %s", v.Type)
		return 0, false
	}
	return v.Int, true
}
