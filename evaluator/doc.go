/*
Package evaluator computes the values of constant Essence expressions.

Constants are integers, booleans, and tuples and matrices of constants.
References to names bound by a value letting are followed through an
environment; decision variables, meta-variables and fromSolution have no
constant value.

Expressions are evaluated by a walk over the tree, which leaves operands
on an explicit expression stack. Operators pop their operands and push
their result.

Integer division and modulo round towards negative infinity, i.e.
-7 / 2 = -4 and -7 % 2 = 1.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluator

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'essence.eval'.
func tracer() tracing.Trace {
	return tracing.Select("essence.eval")
}
