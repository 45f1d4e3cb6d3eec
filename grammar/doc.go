/*
Package grammar implements the Essence lexer and parser.

The lexer is a DFA built with lexmachine. It drops white space, `$` comments
and a leading `language ...` label line, and reports unrecognized input as a
lexical error before resuming at the next white space.

The parser is hand-written: statements and domains are parsed by recursive
descent, expressions by precedence climbing over the operator table of
package ast. Tuples and grouping are told apart by looking for a comma after
the first element inside parentheses.

Errors do not stop a parse. A statement containing a syntax error is
abandoned, the error is recorded, and parsing resumes at the next
top-level keyword (find, letting, such that, dominanceRelation). Elements of
a block parsed before the error are kept.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'essence.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("essence.grammar")
}
