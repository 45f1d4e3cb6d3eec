package evaluator

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/essence/ast"
)

// Errors of evaluation. They are wrapped with details of the failing
// expression; test with errors.Is.
var (
	ErrNotConstant      = errors.New("not a constant")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrType             = errors.New("type mismatch")
	ErrNegativeExponent = errors.New("negative exponent")
	ErrIndex            = errors.New("index out of range")
	ErrOverflow         = errors.New("integer overflow")
)

// Env resolves names bound by value lettings.
type Env interface {
	Value(name string) (ast.Expression, bool)
}

// DomainResolver may additionally be implemented by an Env. It is used to
// find the index domain of matrix literals annotated with a domain alias.
type DomainResolver interface {
	ResolveDomain(ast.Domain) (ast.Domain, error)
}

// Bindings is a simple Env.
type Bindings map[string]ast.Expression

// Value looks up a binding.
func (b Bindings) Value(name string) (ast.Expression, bool) {
	e, ok := b[name]
	return e, ok
}

// Evaluator is an evaluation context. It is not safe for concurrent use.
type Evaluator struct {
	env    Env
	stack  *ExprStack
	active map[string]bool // names currently being evaluated
}

// NewEvaluator creates an evaluator resolving names through env, which
// may be nil.
func NewEvaluator(env Env) *Evaluator {
	return &Evaluator{
		env:    env,
		stack:  NewExprStack(),
		active: make(map[string]bool),
	}
}

// Eval is a shortcut for NewEvaluator(env).Eval(e).
func Eval(e ast.Expression, env Env) (Value, error) {
	return NewEvaluator(env).Eval(e)
}

// Eval computes the value of e.
func (ev *Evaluator) Eval(e ast.Expression) (Value, error) {
	ev.stack.Clear()
	if err := ev.eval(e); err != nil {
		tracer().Debugf("evaluation of %s failed: %v", ast.Format(e), err)
		return Value{}, err
	}
	v, ok := ev.stack.Pop()
	if !ok || !ev.stack.IsEmpty() {
		return Value{}, fmt.Errorf("internal error: unbalanced expression stack")
	}
	return v, nil
}

func (ev *Evaluator) eval(e ast.Expression) error {
	switch x := e.(type) {
	case *ast.Constant:
		if x.Kind == ast.BoolConst {
			ev.stack.Push(Bool(x.Bool))
		} else {
			ev.stack.Push(Int(x.Int))
		}
	case *ast.Grouped:
		return ev.eval(x.Inner)
	case *ast.Variable:
		return ev.reference(x.Name)
	case *ast.UnaryOp:
		if err := ev.eval(x.Operand); err != nil {
			return err
		}
		return ev.unary(x.Op)
	case *ast.BinaryOp:
		if err := ev.eval(x.Left); err != nil {
			return err
		}
		if err := ev.eval(x.Right); err != nil {
			return err
		}
		return ev.binary(x.Op)
	case *ast.Quantifier:
		if err := ev.eval(x.Arg); err != nil {
			return err
		}
		return ev.quantifier(x.Kind)
	case *ast.Tuple:
		elems, err := ev.evalAll(x.Elements)
		if err != nil {
			return err
		}
		ev.stack.Push(Value{Type: TupleType, Elems: elems, Offset: 1})
	case *ast.Matrix:
		offset, err := ev.firstIndex(x.IndexDomain())
		if err != nil {
			return err
		}
		elems, err := ev.evalAll(x.Elements)
		if err != nil {
			return err
		}
		ev.stack.Push(Value{Type: MatrixType, Elems: elems, Offset: offset})
	case *ast.IndexOrSlice:
		return ev.index(x)
	case *ast.MetaVariable:
		return fmt.Errorf("%w: meta-variable &%s", ErrNotConstant, x.Name)
	case *ast.FromSolution:
		return fmt.Errorf("%w: %s", ErrNotConstant, ast.Format(x))
	case *ast.Wildcard:
		return fmt.Errorf("%w: wildcard outside of an index", ErrNotConstant)
	default:
		return fmt.Errorf("%w: %T", ErrNotConstant, e)
	}
	return nil
}

// reference evaluates the expression a name is bound to.
func (ev *Evaluator) reference(name string) error {
	var e ast.Expression
	found := false
	if ev.env != nil {
		e, found = ev.env.Value(name)
	}
	if !found {
		return fmt.Errorf("%w: '%s'", ErrNotConstant, name)
	}
	if ev.active[name] {
		return fmt.Errorf("%w: '%s' is defined in terms of itself", ErrNotConstant, name)
	}
	ev.active[name] = true
	defer delete(ev.active, name)
	tracer().Debugf("evaluating '%s'", name)
	return ev.eval(e)
}

// evalAll evaluates expressions from left to right and collects their
// values from the stack.
func (ev *Evaluator) evalAll(exprs []ast.Expression) ([]Value, error) {
	for _, e := range exprs {
		if err := ev.eval(e); err != nil {
			return nil, err
		}
	}
	values := make([]Value, len(exprs))
	for i := len(values) - 1; i >= 0; i-- {
		values[i], _ = ev.stack.Pop()
	}
	return values, nil
}

// firstIndex returns the smallest index of an index domain. Booleans index
// as false = 0, true = 1.
func (ev *Evaluator) firstIndex(d ast.Domain) (int64, error) {
	if ref, ok := d.(*ast.DomainRef); ok {
		r, isResolver := ev.env.(DomainResolver)
		if !isResolver {
			return 0, fmt.Errorf("%w: domain '%s'", ErrNotConstant, ref.Name)
		}
		resolved, err := r.ResolveDomain(d)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNotConstant, err)
		}
		d = resolved
	}
	switch x := d.(type) {
	case *ast.BoolDomain:
		return 0, nil
	case *ast.IntDomain:
		if len(x.Ranges) == 0 || x.Ranges[0].Lower == nil {
			return 0, fmt.Errorf("%w: index domain %s has no lower bound", ErrNotConstant, ast.Format(d))
		}
		if err := ev.eval(x.Ranges[0].Lower); err != nil {
			return 0, err
		}
		return ev.stack.PopAsInt("index domain")
	}
	return 0, fmt.Errorf("%w: index domain %s", ErrType, ast.Format(d))
}

func (ev *Evaluator) unary(op ast.UnaryOperator) error {
	if op == ast.Not {
		b, err := ev.stack.PopAsBool(op.String())
		if err != nil {
			return err
		}
		ev.stack.Push(Bool(!b))
		return nil
	}
	n, err := ev.stack.PopAsInt(op.String())
	if err != nil {
		return err
	}
	if op == ast.Negate || n < 0 {
		if n == math.MinInt64 {
			return fmt.Errorf("%w: %s%d", ErrOverflow, op, n)
		}
		n = -n
	}
	ev.stack.Push(Int(n))
	return nil
}

func (ev *Evaluator) binary(op ast.BinaryOperator) error {
	switch {
	case op.IsArithmetic():
		r, err := ev.stack.PopAsInt(op.String())
		if err != nil {
			return err
		}
		l, err := ev.stack.PopAsInt(op.String())
		if err != nil {
			return err
		}
		n, err := arithmetic(op, l, r)
		if err != nil {
			return err
		}
		ev.stack.Push(Int(n))
	case op == ast.Eq || op == ast.Neq:
		r, _ := ev.stack.Pop()
		l, _ := ev.stack.Pop()
		if l.Type != r.Type {
			return fmt.Errorf("%w: cannot compare %s with %s", ErrType, l.Type, r.Type)
		}
		ev.stack.Push(Bool(l.Equals(r) == (op == ast.Eq)))
	case op.IsComparison():
		r, err := ev.stack.PopAsInt(op.String())
		if err != nil {
			return err
		}
		l, err := ev.stack.PopAsInt(op.String())
		if err != nil {
			return err
		}
		ev.stack.Push(Bool(compare(op, l, r)))
	case op.IsLogical():
		r, err := ev.stack.PopAsBool(op.String())
		if err != nil {
			return err
		}
		l, err := ev.stack.PopAsBool(op.String())
		if err != nil {
			return err
		}
		ev.stack.Push(Bool(logical(op, l, r)))
	default:
		return fmt.Errorf("unknown operator %s", op)
	}
	return nil
}

func arithmetic(op ast.BinaryOperator, l, r int64) (int64, error) {
	overflow := func() (int64, error) {
		return 0, fmt.Errorf("%w: %d %s %d", ErrOverflow, l, op, r)
	}
	switch op {
	case ast.Add:
		if n, ok := add(l, r); ok {
			return n, nil
		}
		return overflow()
	case ast.Sub:
		if n, ok := sub(l, r); ok {
			return n, nil
		}
		return overflow()
	case ast.Mul:
		if n, ok := mul(l, r); ok {
			return n, nil
		}
		return overflow()
	case ast.Div:
		if r == 0 {
			return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, l)
		}
		if l == math.MinInt64 && r == -1 {
			return overflow()
		}
		return floorDiv(l, r), nil
	case ast.Mod:
		if r == 0 {
			return 0, fmt.Errorf("%w: %d %% 0", ErrDivisionByZero, l)
		}
		return floorMod(l, r), nil
	case ast.Pow:
		if r < 0 {
			return 0, fmt.Errorf("%w: %d ** %d", ErrNegativeExponent, l, r)
		}
		if n, ok := power(l, r); ok {
			return n, nil
		}
		return overflow()
	}
	return 0, fmt.Errorf("not an arithmetic operator: %s", op)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// add, sub, mul and power report false if the result does not fit into
// an int64.

func add(a, b int64) (int64, bool) {
	s := a + b
	return s, (b >= 0) == (s >= a)
}

func sub(a, b int64) (int64, bool) {
	d := a - b
	return d, (b >= 0) == (d <= a)
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

func power(base, exp int64) (int64, bool) {
	result, ok := int64(1), true
	for exp > 0 {
		if exp&1 == 1 {
			if result, ok = mul(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mul(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func compare(op ast.BinaryOperator, l, r int64) bool {
	switch op {
	case ast.Leq:
		return l <= r
	case ast.Geq:
		return l >= r
	case ast.Lt:
		return l < r
	case ast.Gt:
		return l > r
	}
	return false
}

func logical(op ast.BinaryOperator, l, r bool) bool {
	switch op {
	case ast.And:
		return l && r
	case ast.Or:
		return l || r
	case ast.Imply:
		return !l || r
	case ast.Iff:
		return l == r
	}
	return false
}
