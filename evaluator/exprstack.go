package evaluator

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// ExprStack implements a stack of constant values. Operators of the
// evaluator take their operands from the stack and push the result.
type ExprStack struct {
	stack *linkedliststack.Stack // a stack of Value
}

// NewExprStack creates a new, empty expression stack.
func NewExprStack() *ExprStack {
	return &ExprStack{stack: linkedliststack.New()}
}

// Push is part of stack functionality.
func (es *ExprStack) Push(v Value) *ExprStack {
	tracer().Debugf("pushing %s", v)
	es.stack.Push(v)
	return es
}

// Pop is part of stack functionality.
func (es *ExprStack) Pop() (Value, bool) {
	tos, ok := es.stack.Pop()
	if !ok {
		return Value{}, false
	}
	return tos.(Value), true
}

// Top returns the value on top of the stack without removing it. It
// returns an undefined value if the stack is empty.
func (es *ExprStack) Top() Value {
	tos, ok := es.stack.Peek()
	if !ok {
		return Value{}
	}
	return tos.(Value)
}

// Size returns the number of values on the stack.
func (es *ExprStack) Size() int {
	return es.stack.Size()
}

// IsEmpty is a predicate: is the stack empty?
func (es *ExprStack) IsEmpty() bool {
	return es.stack.Empty()
}

// Clear drops all values.
func (es *ExprStack) Clear() {
	es.stack.Clear()
}

// PopAsInt is a convenience method: return TOS as an integer.
func (es *ExprStack) PopAsInt(op string) (int64, error) {
	v, ok := es.Pop()
	if !ok {
		return 0, fmt.Errorf("%s: expression stack underflow", op)
	}
	if !v.IsInt() {
		return 0, fmt.Errorf("%w: %s expects an integer, have %s", ErrType, op, v.Type)
	}
	return v.Int, nil
}

// PopAsBool is a convenience method: return TOS as a boolean.
func (es *ExprStack) PopAsBool(op string) (bool, error) {
	v, ok := es.Pop()
	if !ok {
		return false, fmt.Errorf("%s: expression stack underflow", op)
	}
	if !v.IsBool() {
		return false, fmt.Errorf("%w: %s expects a boolean, have %s", ErrType, op, v.Type)
	}
	return v.Bool, nil
}

// PopCollection is a convenience method: return TOS as a tuple or matrix.
func (es *ExprStack) PopCollection(op string) (Value, error) {
	v, ok := es.Pop()
	if !ok {
		return Value{}, fmt.Errorf("%s: expression stack underflow", op)
	}
	if !v.IsCollection() {
		return Value{}, fmt.Errorf("%w: %s expects a matrix, have %s", ErrType, op, v.Type)
	}
	return v, nil
}
