/*
Package diag collects and reports problems found in Essence source text.

Problems are never fatal to a parse. The lexer, the parser and the structural
validator append Diagnostics to a List and carry on; clients receive the full
list together with whatever program could be recovered.

Every diagnostic carries a Span, which is sufficient to underline the offending
text in an editor or on a terminal (see Render).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package diag
