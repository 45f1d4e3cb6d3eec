package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/essence"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/grammar"
)

// result is the outcome of checking a single file.
type result struct {
	name  string
	model *essence.Model
	err   error // I/O or cancellation
}

func (r result) failed() bool {
	return r.err != nil || len(r.model.Diagnostics) > 0
}

// checkFiles analyzes the given files concurrently. Results are in the order
// of names.
func checkFiles(ctx context.Context, names []string) []result {
	results := make([]result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = checkFile(ctx, name)
		}(i, name)
	}
	wg.Wait()
	return results
}

func checkFile(ctx context.Context, name string) result {
	r := result{name: name}
	if err := ctx.Err(); err != nil {
		r.err = err
		return r
	}
	src, err := essence.ReadModel(name)
	if err != nil {
		r.err = err
		return r
	}
	r.model = analyze(src, configBool("validate"))
	tracer().Debugf("%s: %d diagnostics", name, len(r.model.Diagnostics))
	return r
}

// analyze parses src, with or without structural checks.
func analyze(src string, validate bool) *essence.Model {
	if validate {
		return essence.Analyze(src)
	}
	m := &essence.Model{Source: src}
	m.Program, m.Diagnostics = grammar.ParseProgram(src)
	m.Diagnostics.Sort()
	return m
}

// report writes the diagnostics of all results and returns the number of
// files with errors.
func report(w io.Writer, results []result, format string) int {
	failed := 0
	for _, r := range results {
		if r.failed() {
			failed++
		}
		if r.err != nil {
			fmt.Fprintf(w, "%s: %v\n", r.name, r.err)
			continue
		}
		switch format {
		case "yaml":
			if err := writeYAML(w, r.name, r.model); err != nil {
				tracer().Errorf("cannot write YAML for %s: %v", r.name, err)
			}
		case "pretty":
			if len(r.model.Diagnostics) > 0 {
				io.WriteString(w, diagnosticsTable(r.name, r.model.Diagnostics).Render())
				io.WriteString(w, "\n")
			} else {
				fmt.Fprintf(w, "%s: %s\n", r.name, okMark())
			}
		default:
			if len(r.model.Diagnostics) > 0 {
				diag.RenderAll(w, r.name, r.model.Source, r.model.Diagnostics)
			} else {
				fmt.Fprintf(w, "%s: %s\n", r.name, okMark())
			}
		}
	}
	return failed
}

// formatModels prints every error-free model in canonical form to w and
// diagnostics to errw. With more than one file each model is headed by a
// comment naming its file.
func formatModels(w, errw io.Writer, results []result) int {
	failed := 0
	for _, r := range results {
		if r.failed() {
			failed++
			if r.err != nil {
				fmt.Fprintf(errw, "%s: %v\n", r.name, r.err)
			} else {
				diag.RenderAll(errw, r.name, r.model.Source, r.model.Diagnostics)
			}
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "$ %s\n", r.name)
		}
		if err := ast.Fprint(w, r.model.Program); err != nil {
			tracer().Errorf("cannot print %s: %v", r.name, err)
			failed++
		}
	}
	return failed
}
