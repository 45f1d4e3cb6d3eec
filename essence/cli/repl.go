package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/essence"
	"github.com/npillmayer/essence/ast"
	"github.com/npillmayer/essence/diag"
	"github.com/npillmayer/essence/essence/ui/termui"
	"github.com/npillmayer/essence/evaluator"
	"github.com/npillmayer/essence/grammar"
	"github.com/npillmayer/essence/sframe"
)

const replHelp = `
essence will interpret the following input:

  find | letting | such that | dominanceRelation ...  : add statements to the session model
  <expression>                                       : parse and print an expression
  eval <expression>                                  : evaluate a constant expression
  tokens <text>                                      : list the tokens of a text
  show                                               : print the session model
  yaml                                               : dump the session model as YAML

`

func runREPL() {
	base, err := termui.NewBaseREPL("essence", "0.1 experimental")
	if err != nil {
		tracer().Errorf(err.Error())
		essence.Exit(1)
		return
	}
	intp := &essenceIntpr{BaseREPL: base, session: newSession()}
	intp.Interpreter = intp
	intp.Continues = incomplete
	intp.Helper = func(w io.Writer) {
		io.WriteString(w, replHelp)
	}
	intp.Prompt(true)
}

type essenceIntpr struct {
	*termui.BaseREPL
	session *session
}

func (intp *essenceIntpr) InterpretCommand(command string) {
	command = strings.Trim(command, "\x00")
	stdout, stderr := intp.Outputs()
	intp.session.interpret(command, stdout, stderr)
}

// session accumulates the statements entered in the REPL into a model.
type session struct {
	source string
	model  *essence.Model
	format termui.Formatter
}

func newSession() *session {
	return &session{
		model:  essence.Analyze(""),
		format: Formatter{},
	}
}

func (s *session) interpret(line string, out, errw io.Writer) {
	cmd, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	switch cmd {
	case "tokens":
		toks, errs := grammar.Tokenize(rest, grammar.KeepTrivia)
		s.format.Format(tokensTable("input", toks), out)
		s.report(errw, rest, errs)
	case "eval":
		s.eval(rest, out, errw)
	case "show":
		if err := ast.Fprint(out, s.model.Program); err != nil {
			fmt.Fprintf(errw, "> %v\n", err)
		}
	case "yaml":
		if err := writeYAML(out, "session", s.model); err != nil {
			fmt.Fprintf(errw, "> %v\n", err)
		}
	default:
		if startsStatement(line) {
			s.addStatements(line, out, errw)
		} else {
			s.expression(line, out, errw)
		}
	}
}

// startsStatement is true if text begins with a statement keyword.
func startsStatement(text string) bool {
	toks, _ := grammar.Tokenize(text, 0)
	if len(toks) == 0 {
		return false
	}
	switch toks[0].Kind {
	case grammar.KwFind, grammar.KwLetting, grammar.KwSuchThat, grammar.KwDominanceRelation:
		return true
	}
	return false
}

// incomplete is true if text ends inside brackets or with a token which
// needs a right-hand side, so that a statement may span several lines.
func incomplete(text string) bool {
	toks, _ := grammar.Tokenize(text, 0)
	depth := 0
	last := grammar.EOF
	for _, t := range toks {
		switch t.Kind {
		case grammar.LParen, grammar.LBracket, grammar.LBrace:
			depth++
		case grammar.RParen, grammar.RBracket, grammar.RBrace:
			depth--
		}
		if t.Kind != grammar.EOF {
			last = t.Kind
		}
	}
	if depth > 0 {
		return true
	}
	switch last {
	case grammar.Comma, grammar.Colon, grammar.KwBe, grammar.KwDomain, grammar.KwSuchThat,
		grammar.KwFind, grammar.KwLetting, grammar.KwIndexed, grammar.KwBy, grammar.KwOf,
		grammar.KwDominanceRelation,
		grammar.Conj, grammar.Disj, grammar.Imply, grammar.Iff, grammar.Eq, grammar.Neq,
		grammar.Leq, grammar.Geq, grammar.Lt, grammar.Gt,
		grammar.Plus, grammar.Minus, grammar.Star, grammar.Slash, grammar.Pct, grammar.Power:
		return true
	}
	return false
}

// addStatements extends the session model by the statements in line. If the
// extended model has errors, the session is left unchanged.
func (s *session) addStatements(line string, out, errw io.Writer) {
	src := s.source + line + "\n"
	m := essence.Analyze(src)
	if len(m.Diagnostics) > 0 {
		s.report(errw, src, m.Diagnostics)
		return
	}
	s.source, s.model = src, m
	n := len(m.Program.Statements)
	s.format.Format(m.Program.Statements[n-1], out)
}

func (s *session) expression(line string, out, errw io.Writer) {
	expr, errs := grammar.ParseExpression(line)
	if len(errs) > 0 {
		s.report(errw, line, errs)
		return
	}
	s.format.Format(expr, out)
}

func (s *session) eval(line string, out, errw io.Writer) {
	expr, errs := grammar.ParseExpression(line)
	if len(errs) > 0 {
		s.report(errw, line, errs)
		return
	}
	v, err := evaluator.Eval(expr, s.env())
	if err != nil {
		fmt.Fprintf(errw, "> %v\n", err)
		return
	}
	s.format.Format(v, out)
}

// env is the frame of the session model, or an empty one.
func (s *session) env() evaluator.Env {
	if s.model == nil || s.model.Frame == nil {
		return sframe.NewFrame()
	}
	return s.model.Frame
}

func (s *session) report(w io.Writer, src string, errs diag.List) {
	if len(errs) > 0 {
		diag.RenderAll(w, "input", src, errs)
	}
}

// Formatter displays evaluation results in addition to what the
// terminal UI's default formatter knows.
type Formatter struct {
	termui.DefaultFormatter
}

func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	tracer().Debugf("format item %T", item)
	switch t := item.(type) {
	case evaluator.Value:
		_, err := fmt.Fprintf(w, "▶ %s : %s\n", t.String(), t.Type)
		return err == nil, err
	}
	return f.DefaultFormatter.Format(item, w)
}
