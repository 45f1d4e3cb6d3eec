/*
Package validate checks parsed Essence programs for structural errors.

The parser accepts some programs which are well-formed but cannot be
handed to model construction: names declared twice, references to
undeclared names, matrices indexed by domains other than bool or int,
integer ranges with a lower bound above the upper bound, fromSolution
outside of a dominance relation, and more than one dominance relation.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package validate

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'essence.validate'.
func tracer() tracing.Trace {
	return tracing.Select("essence.validate")
}
