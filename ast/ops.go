package ast

import "fmt"

// Precedence levels of operators. Higher levels bind tighter.
// PrecLowest is a sentinel to start expression parsing with, PrecAtom is
// assigned to all leaf-like forms (constants, references, literals, calls).
const (
	PrecLowest         = -100
	PrecQuantifier     = -10
	PrecImply          = -4 // -> and <->
	PrecOr             = -2
	PrecAnd            = -1
	PrecCompare        = 0
	PrecAdditive       = 1
	PrecMultiplicative = 10
	PrecNegate         = 15
	PrecPower          = 18
	PrecPrefix         = 20 // logical not and absolute value
	PrecAtom           = 100
)

// --- Unary operators -------------------------------------------------------

// UnaryOperator enumerates prefix (and matched-pair) operators.
type UnaryOperator int

// Unary operators
const (
	Negate UnaryOperator = iota // -e
	Not                         // !e
	Abs                         // |e|
)

func (op UnaryOperator) String() string {
	switch op {
	case Negate:
		return "-"
	case Not:
		return "!"
	case Abs:
		return "|"
	}
	return fmt.Sprintf("unary(%d)", int(op))
}

// Precedence returns the binding power of op.
func (op UnaryOperator) Precedence() int {
	switch op {
	case Negate:
		return PrecNegate
	case Not:
		return PrecPrefix
	}
	return PrecAtom // |e| is self-delimiting
}

// --- Binary operators ------------------------------------------------------

// BinaryOperator enumerates infix operators.
type BinaryOperator int

// Binary operators
const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Neq
	Leq
	Geq
	Lt
	Gt
	And
	Or
	Imply
	Iff
)

var binaryOps = [...]struct {
	symbol string
	name   string // used in diagnostics
	prec   int
}{
	Add:   {"+", "Sum", PrecAdditive},
	Sub:   {"-", "Difference", PrecAdditive},
	Mul:   {"*", "Product", PrecMultiplicative},
	Div:   {"/", "Division", PrecMultiplicative},
	Mod:   {"%", "Modulo", PrecMultiplicative},
	Pow:   {"**", "Exponent", PrecPower},
	Eq:    {"=", "Comparison", PrecCompare},
	Neq:   {"!=", "Comparison", PrecCompare},
	Leq:   {"<=", "Comparison", PrecCompare},
	Geq:   {">=", "Comparison", PrecCompare},
	Lt:    {"<", "Comparison", PrecCompare},
	Gt:    {">", "Comparison", PrecCompare},
	And:   {`/\`, "Conjunction", PrecAnd},
	Or:    {`\/`, "Disjunction", PrecOr},
	Imply: {"->", "Implication", PrecImply},
	Iff:   {"<->", "Equivalence", PrecImply},
}

func (op BinaryOperator) valid() bool {
	return op >= Add && op <= Iff
}

func (op BinaryOperator) String() string {
	if !op.valid() {
		return fmt.Sprintf("binary(%d)", int(op))
	}
	return binaryOps[op].symbol
}

// Name returns a human readable name for the construct op builds,
// e.g. "Implication" for ->.
func (op BinaryOperator) Name() string {
	if !op.valid() {
		return "Expression"
	}
	return binaryOps[op].name
}

// Precedence returns the binding power of op.
func (op BinaryOperator) Precedence() int {
	if !op.valid() {
		return PrecLowest
	}
	return binaryOps[op].prec
}

// RightAssoc is a predicate: does op group to the right? Only ** does.
func (op BinaryOperator) RightAssoc() bool {
	return op == Pow
}

// IsArithmetic is a predicate: does op compute an integer from integers?
func (op BinaryOperator) IsArithmetic() bool {
	return op >= Add && op <= Pow
}

// IsComparison is a predicate: does op compare two values?
func (op BinaryOperator) IsComparison() bool {
	return op >= Eq && op <= Gt
}

// IsLogical is a predicate: does op connect booleans?
func (op BinaryOperator) IsLogical() bool {
	return op >= And && op <= Iff
}

// --- Quantifiers -----------------------------------------------------------

// QuantifierKind enumerates the quantifier/aggregate forms.
type QuantifierKind int

// Quantifier kinds
const (
	QuantAnd QuantifierKind = iota
	QuantOr
	QuantMin
	QuantMax
	QuantSum
	QuantAllDiff
)

var quantifierNames = [...]string{"and", "or", "min", "max", "sum", "allDiff"}

func (k QuantifierKind) String() string {
	if k < QuantAnd || k > QuantAllDiff {
		return fmt.Sprintf("quantifier(%d)", int(k))
	}
	return quantifierNames[k]
}

// QuantifierByName returns the quantifier kind for a keyword.
func QuantifierByName(name string) (QuantifierKind, bool) {
	for i, n := range quantifierNames {
		if n == name {
			return QuantifierKind(i), true
		}
	}
	return 0, false
}
