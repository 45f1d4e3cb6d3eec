package evaluator

import (
	"fmt"

	"github.com/npillmayer/essence/ast"
)

// quantifier folds the elements of the matrix on top of the stack.
// Nested matrices are flattened.
func (ev *Evaluator) quantifier(kind ast.QuantifierKind) error {
	coll, err := ev.stack.PopCollection(kind.String())
	if err != nil {
		return err
	}
	elems := flatten(coll, nil)
	switch kind {
	case ast.QuantAnd, ast.QuantOr:
		result := kind == ast.QuantAnd
		for _, e := range elems {
			if !e.IsBool() {
				return fmt.Errorf("%w: %s expects booleans, have %s", ErrType, kind, e.Type)
			}
			if kind == ast.QuantAnd {
				result = result && e.Bool
			} else {
				result = result || e.Bool
			}
		}
		ev.stack.Push(Bool(result))
	case ast.QuantSum, ast.QuantMin, ast.QuantMax:
		if len(elems) == 0 {
			if kind == ast.QuantSum {
				ev.stack.Push(Int(0))
				return nil
			}
			return fmt.Errorf("%w: %s of an empty matrix", ErrIndex, kind)
		}
		var acc int64
		for i, e := range elems {
			if !e.IsInt() {
				return fmt.Errorf("%w: %s expects integers, have %s", ErrType, kind, e.Type)
			}
			switch {
			case i == 0:
				acc = e.Int
			case kind == ast.QuantSum:
				var ok bool
				if acc, ok = add(acc, e.Int); !ok {
					return fmt.Errorf("%w: sum exceeds int64", ErrOverflow)
				}
			case kind == ast.QuantMin && e.Int < acc, kind == ast.QuantMax && e.Int > acc:
				acc = e.Int
			}
		}
		ev.stack.Push(Int(acc))
	case ast.QuantAllDiff:
		for i := range elems {
			for j := i + 1; j < len(elems); j++ {
				if elems[i].Equals(elems[j]) {
					ev.stack.Push(Bool(false))
					return nil
				}
			}
		}
		ev.stack.Push(Bool(true))
	}
	return nil
}

func flatten(v Value, into []Value) []Value {
	if v.Type != MatrixType {
		return append(into, v)
	}
	for _, e := range v.Elems {
		into = flatten(e, into)
	}
	return into
}

// index evaluates target[i1, ..., ik]. A wildcard keeps the full extent
// of its dimension, so the result of a slice is a matrix.
func (ev *Evaluator) index(x *ast.IndexOrSlice) error {
	if err := ev.eval(x.Target); err != nil {
		return err
	}
	indices := make([]*int64, len(x.Indices))
	for i, ix := range x.Indices {
		if _, ok := ix.(*ast.Wildcard); ok {
			continue
		}
		if err := ev.eval(ix); err != nil {
			return err
		}
		v, _ := ev.stack.Pop()
		var n int64
		switch v.Type {
		case IntType:
			n = v.Int
		case BoolType:
			if v.Bool {
				n = 1
			}
		default:
			return fmt.Errorf("%w: cannot index with a %s", ErrType, v.Type)
		}
		indices[i] = &n
	}
	target, _ := ev.stack.Pop()
	v, err := selectElems(target, indices)
	if err != nil {
		return err
	}
	ev.stack.Push(v)
	return nil
}

func selectElems(v Value, indices []*int64) (Value, error) {
	if len(indices) == 0 {
		return v, nil
	}
	if !v.IsCollection() {
		return Value{}, fmt.Errorf("%w: cannot index a %s", ErrType, v.Type)
	}
	if indices[0] == nil {
		if v.Type == TupleType {
			return Value{}, fmt.Errorf("%w: cannot slice a tuple", ErrType)
		}
		slice := Value{Type: MatrixType, Offset: v.Offset, Elems: make([]Value, len(v.Elems))}
		for i, e := range v.Elems {
			s, err := selectElems(e, indices[1:])
			if err != nil {
				return Value{}, err
			}
			slice.Elems[i] = s
		}
		return slice, nil
	}
	pos := *indices[0] - v.Offset
	if pos < 0 || pos >= int64(len(v.Elems)) {
		return Value{}, fmt.Errorf("%w: %d", ErrIndex, *indices[0])
	}
	return selectElems(v.Elems[pos], indices[1:])
}
