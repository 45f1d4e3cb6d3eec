package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/essence"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/grammar"
	"gopkg.in/yaml.v3"
)

func setupColors() {
	if !configBool("color") {
		text.DisableColors()
	}
}

func okMark() string {
	return text.FgGreen.Sprint("ok")
}

// --- Tables ----------------------------------------------------------------

var kindColors = map[diag.Kind]text.Colors{
	diag.LexicalError:    {text.FgMagenta},
	diag.SyntaxError:     {text.FgRed},
	diag.StructuralError: {text.FgYellow},
}

func diagnosticsTable(name string, l diag.List) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%s: %d error(s)", name, len(l))
	tw.AppendHeader(table.Row{"line", "col", "kind", "message"})
	for _, d := range l {
		tw.AppendRow(table.Row{
			d.Span.Line,
			d.Span.Column,
			kindColors[d.Kind].Sprint(d.Kind.String()),
			d.Message,
		})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func tokensTable(name string, toks []grammar.Token) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Tokens of %s", name)
	tw.AppendHeader(table.Row{"#", "at", "kind", "lexeme"})
	for i, t := range toks {
		if t.Kind == grammar.EOF {
			break
		}
		tw.AppendRow(table.Row{i, t.Span.String(), t.Kind.String(), strconv.Quote(t.Lexeme)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// printTokens lists the tokens of src, including comments.
func printTokens(w io.Writer, name, src string) {
	toks, errs := grammar.Tokenize(src, grammar.KeepTrivia)
	io.WriteString(w, tokensTable(name, toks).Render())
	io.WriteString(w, "\n")
	if len(errs) > 0 {
		diag.RenderAll(w, name, src, errs)
	}
}

// --- YAML ------------------------------------------------------------------

func writeYAML(w io.Writer, name string, m *essence.Model) error {
	doc := ymap("")
	yadd(doc, "file", ystr(name))
	if m.Program != nil {
		stmts := yseq()
		for _, s := range m.Program.Statements {
			stmts.Content = append(stmts.Content, nodeYAML(s))
		}
		yadd(doc, "statements", stmts)
	}
	if len(m.Diagnostics) > 0 {
		diags := yseq()
		for _, d := range m.Diagnostics {
			dm := ymap("")
			yadd(dm, "kind", ystr(d.Kind.String()))
			yadd(dm, "at", ystr(d.Span.String()))
			yadd(dm, "message", ystr(d.Message))
			diags.Content = append(diags.Content, dm)
		}
		yadd(doc, "diagnostics", diags)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return enc.Close()
}

func ymap(node string) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	if node != "" {
		yadd(m, "node", ystr(node))
	}
	return m
}

func yseq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func ystr(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yadd(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, ystr(key), value)
}

func yidents(ids []*ast.Ident) *yaml.Node {
	s := yseq()
	for _, id := range ids {
		s.Content = append(s.Content, ystr(id.Name))
	}
	return s
}

func yexprs(l []ast.Expression) *yaml.Node {
	s := yseq()
	for _, e := range l {
		s.Content = append(s.Content, nodeYAML(e))
	}
	return s
}

func ydomains(l []ast.Domain) *yaml.Node {
	s := yseq()
	for _, d := range l {
		s.Content = append(s.Content, nodeYAML(d))
	}
	return s
}

// nodeYAML converts an AST node to a YAML tree. Constants, variables and
// integer ranges are leaves in Essence notation.
func nodeYAML(n ast.Node) *yaml.Node {
	switch x := n.(type) {
	case *ast.FindBlock:
		m := ymap("find")
		decls := yseq()
		for _, d := range x.Decls {
			dm := ymap("")
			yadd(dm, "names", yidents(d.Names))
			yadd(dm, "domain", nodeYAML(d.Domain))
			decls.Content = append(decls.Content, dm)
		}
		yadd(m, "decls", decls)
		return m
	case *ast.LettingBlock:
		m := ymap("letting")
		entries := yseq()
		for _, l := range x.Entries {
			lm := ymap("")
			yadd(lm, "names", yidents(l.Names))
			if l.IsDomain() {
				yadd(lm, "domain", nodeYAML(l.Domain))
			} else {
				yadd(lm, "value", nodeYAML(l.Value))
			}
			entries.Content = append(entries.Content, lm)
		}
		yadd(m, "entries", entries)
		return m
	case *ast.ConstraintBlock:
		m := ymap("such that")
		yadd(m, "constraints", yexprs(x.Constraints))
		return m
	case *ast.DominanceRelation:
		m := ymap("dominanceRelation")
		yadd(m, "expr", nodeYAML(x.Expr))
		return m
	case *ast.TupleDomain:
		m := ymap("tuple")
		yadd(m, "members", ydomains(x.Members))
		return m
	case *ast.MatrixDomain:
		m := ymap("matrix")
		yadd(m, "indexed by", ydomains(x.Index))
		yadd(m, "of", nodeYAML(x.Value))
		return m
	case *ast.Constant:
		if x.Kind == ast.BoolConst {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x.Bool)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(x.Int, 10)}
	case *ast.UnaryOp:
		m := ymap(x.Op.String())
		yadd(m, "operand", nodeYAML(x.Operand))
		return m
	case *ast.BinaryOp:
		m := ymap(x.Op.Name())
		yadd(m, "op", ystr(x.Op.String()))
		yadd(m, "left", nodeYAML(x.Left))
		yadd(m, "right", nodeYAML(x.Right))
		return m
	case *ast.Quantifier:
		m := ymap(x.Kind.String())
		yadd(m, "arg", nodeYAML(x.Arg))
		return m
	case *ast.Tuple:
		m := ymap("tuple")
		yadd(m, "elements", yexprs(x.Elements))
		return m
	case *ast.Matrix:
		m := ymap("matrix")
		yadd(m, "elements", yexprs(x.Elements))
		yadd(m, "indexed by", nodeYAML(x.IndexDomain()))
		return m
	case *ast.IndexOrSlice:
		node := "index"
		if x.IsSlice() {
			node = "slice"
		}
		m := ymap(node)
		yadd(m, "target", nodeYAML(x.Target))
		yadd(m, "indices", yexprs(x.Indices))
		return m
	case *ast.Grouped:
		return nodeYAML(x.Inner)
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}
	return ystr(ast.Format(n))
}
