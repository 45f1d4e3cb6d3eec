package evaluator

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType represents the type of a value.
type ValueType int8

// Types of constant values
const (
	Undefined ValueType = iota
	IntType
	BoolType
	TupleType
	MatrixType
)

func (t ValueType) String() string {
	switch t {
	case IntType:
		return "int"
	case BoolType:
		return "bool"
	case TupleType:
		return "tuple"
	case MatrixType:
		return "matrix"
	}
	return "undefined"
}

// Value is a constant value. Matrices remember the first index of their
// index domain in Offset.
type Value struct {
	Type   ValueType
	Int    int64
	Bool   bool
	Elems  []Value
	Offset int64
}

// Int creates an integer value.
func Int(n int64) Value {
	return Value{Type: IntType, Int: n}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{Type: BoolType, Bool: b}
}

// Matrix creates a one-dimensional matrix value indexed from 1.
func Matrix(elems ...Value) Value {
	return Value{Type: MatrixType, Elems: elems, Offset: 1}
}

// IsInt is a predicate: is v an integer?
func (v Value) IsInt() bool {
	return v.Type == IntType
}

// IsBool is a predicate: is v a boolean?
func (v Value) IsBool() bool {
	return v.Type == BoolType
}

// IsCollection is a predicate: is v a tuple or a matrix?
func (v Value) IsCollection() bool {
	return v.Type == TupleType || v.Type == MatrixType
}

// Equals compares values of any type. Matrices are equal if their elements
// are, regardless of index offsets.
func (v Value) Equals(w Value) bool {
	if v.Type != w.Type {
		return false
	}
	switch v.Type {
	case IntType:
		return v.Int == w.Int
	case BoolType:
		return v.Bool == w.Bool
	case TupleType, MatrixType:
		if len(v.Elems) != len(w.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equals(w.Elems[i]) {
				return false
			}
		}
		return true
	}
	return true
}

func (v Value) String() string {
	switch v.Type {
	case IntType:
		return strconv.FormatInt(v.Int, 10)
	case BoolType:
		return strconv.FormatBool(v.Bool)
	case TupleType, MatrixType:
		elems := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = e.String()
		}
		if v.Type == TupleType {
			return "(" + strings.Join(elems, ", ") + ")"
		}
		return "[" + strings.Join(elems, ", ") + "]"
	}
	return fmt.Sprintf("<%s>", v.Type)
}
