/*
Package essence parses models written in the Essence constraint modelling
language.

A model is a sequence of statements (find, letting, such that and
dominanceRelation). Parsing happens in two stages: package grammar turns
source text into an abstract syntax tree (package ast), collecting lexical
and syntax errors along the way, and package validate checks the tree for
structural problems such as duplicate declarations.

	prog, err := essence.Parse(src)
	if err != nil {
	    var diags diag.List
	    if errors.As(err, &diags) { ... }
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package essence

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/grammar"
	"github.com/npillmayer/essence/sframe"
	"github.com/npillmayer/essence/validate"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'essence'.
func tracer() tracing.Trace {
	return tracing.Select("essence")
}

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}

// Model is the outcome of analyzing a source text.
type Model struct {
	Source      string
	Program     *ast.Program // possibly partial if Diagnostics contains errors
	Frame       *sframe.Frame
	Diagnostics diag.List
}

// Analyze parses src and, if parsing did not produce errors, validates the
// resulting program. Diagnostics are sorted by position.
//
// Structural checks are skipped for programs with syntax errors, as
// a partial tree would produce follow-up errors for names whose declaration
// could not be parsed.
func Analyze(src string) *Model {
	m := &Model{Source: src}
	m.Program, m.Diagnostics = grammar.ParseProgram(src)
	if len(m.Diagnostics) > 0 {
		tracer().Infof("%d lexical/syntax errors, skipping validation", len(m.Diagnostics))
		m.Diagnostics.Sort()
		return m
	}
	var errs diag.List
	m.Frame, errs = validate.Program(m.Program)
	m.Diagnostics.Append(errs)
	m.Diagnostics.Sort()
	tracer().Debugf("model has %d declarations, %d diagnostics",
		m.Frame.Size(), len(m.Diagnostics))
	return m
}

// Err returns the model's diagnostics as an error, or nil if there are none.
func (m *Model) Err() error {
	return m.Diagnostics.Err()
}

// Parse parses and validates an Essence model. If the model contains errors,
// the returned error is a diag.List. The program returned may then be partial.
func Parse(src string) (*ast.Program, error) {
	m := Analyze(src)
	return m.Program, m.Err()
}

// ReadModel reads the source text of a model from a file.
func ReadModel(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read model: %w", err)
	}
	return string(b), nil
}

// ParseFile reads and parses the model in file path.
func ParseFile(path string) (*ast.Program, error) {
	src, err := ReadModel(path)
	if err != nil {
		return nil, err
	}
	tracer().Infof("parsing %s", path)
	return Parse(src)
}
