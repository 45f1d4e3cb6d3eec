/*
Package ast defines the abstract syntax tree for Essence models.

A Program is an ordered sequence of statements: find blocks, letting blocks,
constraint blocks and dominance relations. Statements refer to Domains and
Expressions. All nodes are created once by the parser and form an immutable
tree; every node exclusively owns its children. Variable, MetaVariable and
DomainRef nodes are named references, not ownership edges: resolving them is
left to clients.

Nodes remember their source span (see package diag). Structural comparison
with Equal ignores spans, and it treats Grouped as transparent.

Format and Fprint write nodes back as Essence surface syntax. Parentheses are
inserted only where precedence or associativity requires them, so that
re-parsing printed output yields a structurally equal tree.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'essence.ast'.
func tracer() tracing.Trace {
	return tracing.Select("essence.ast")
}
