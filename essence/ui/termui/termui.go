// Package termui provides objects and methods for interactive UI in terminal windows.
//
// # License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'essence.cli'.
func trace() tracing.Trace {
	return tracing.Select("essence.cli")
}

// Formatter writes a result of an interpreted command. It returns false if
// it does not know how to display item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter displays strings, AST nodes, diagnostics and tables.
type DefaultFormatter struct{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case string:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	case ast.Node:
		_, err = fmt.Fprintf(w, "▶ %s\n", ast.Format(t))
	case diag.Diagnostic:
		_, err = fmt.Fprintf(w, "▶ %s: %s\n", t.Kind, t.Message)
	case table.Writer:
		if t == nil {
			_, err = io.WriteString(w, "▶ (empty table)\n")
		} else {
			_, err = fmt.Fprintf(w, "%s\n", t.Render())
		}
	case fmt.Stringer:
		_, err = fmt.Fprintf(w, "▶ %s\n", t.String())
	default:
		_, err = fmt.Fprintf(w, "▶ object of type %T\n", t)
	}
	return err == nil, err
}
