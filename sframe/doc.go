/*
Package sframe holds the declaration frame of an Essence model.

A frame maps every name introduced by `find` or `letting` to its
declaration. Essence models have a single, flat scope: a name may be
declared only once, and references may appear before the declaration.
Frames are filled from a parsed program and then serve name resolution
for structural checks and constant evaluation.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sframe

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'essence.sframe'
func tracer() tracing.Trace {
	return tracing.Select("essence.sframe")
}
