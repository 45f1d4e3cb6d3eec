package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/essence/diag"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Mode controls optional behaviour of the tokenizer.
type Mode uint

// KeepTrivia tells the tokenizer to emit comments and the language label.
const KeepTrivia Mode = 1 << iota

// punctuation in the order it is added to the DFA
var punctuation = []TokType{
	Power, DotDot, Iff, Imply, Conj, Disj, Neq, Leq, Geq,
	Colon, Comma, Semicolon, LParen, RParen, LBracket, RBracket, LBrace, RBrace,
	Bar, Amp, Bang, Eq, Lt, Gt, Plus, Minus, Star, Slash, Pct,
}

var (
	initOnce sync.Once // monitors one-time compilation of the DFA
	lexer    *lexmachine.Lexer
	lexerErr error
)

// Lexer returns the lexmachine lexer for Essence. The DFA is compiled once;
// scanners created from it are independent of each other.
func Lexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lx := lexmachine.NewLexer()
		// keywords go first: on equal match length, the earlier pattern wins
		for t := keywordsStart + 1; t < keywordsEnd; t++ {
			pattern := spelling[t]
			if t == KwSuchThat {
				pattern = `such( |\t|\r|\n)+that`
			}
			lx.Add([]byte(pattern), makeToken(t))
		}
		lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken(Ident))
		lx.Add([]byte(`[0-9]+`), makeToken(Integer))
		for _, t := range punctuation {
			lx.Add([]byte(quote(spelling[t])), makeToken(t))
		}
		lx.Add([]byte(`\$[^\n]*`), makeToken(Comment))
		lx.Add([]byte(`( |\t|\n|\r)+`), skip)
		if lexerErr = lx.Compile(); lexerErr != nil {
			tracer().Errorf("cannot compile lexer: %v", lexerErr)
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

// quote escapes regular expression meta characters of a literal.
func quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func makeToken(t TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Tokenize splits src into tokens. The result always ends with an EOF token.
// Unrecognized input is reported as a lexical error and skipped up to the
// next white space.
func Tokenize(src string, mode Mode) ([]Token, diag.List) {
	return tokenize(diag.NewLines(src), mode)
}

func tokenize(lines *diag.Lines, mode Mode) ([]Token, diag.List) {
	src := lines.Source()
	var toks []Token
	var errs diag.List
	eof := func() ([]Token, diag.List) {
		toks = append(toks, Token{Kind: EOF, Span: lines.Span(len(src), len(src))})
		return toks, errs
	}
	lx, err := Lexer()
	if err != nil {
		errs.Add(diag.LexicalError, diag.Span{}, "lexer not available: %v", err)
		return eof()
	}
	start := 0
	if label, end := languageLabel(src); end > 0 {
		if mode&KeepTrivia != 0 {
			toks = append(toks, Token{Kind: LanguageLabel, Lexeme: label, Span: lines.Span(end-len(label), end)})
		}
		start = end
	}
	scan, err := lx.Scanner([]byte(src))
	if err != nil {
		errs.Add(diag.LexicalError, diag.Span{}, "cannot scan input: %v", err)
		return eof()
	}
	scan.TC = start
	for tok, err, eos := scan.Next(); !eos; tok, err, eos = scan.Next() {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			end := nextBoundary(src, ui.StartTC)
			span := lines.Span(ui.StartTC, end)
			errs.Add(diag.LexicalError, span, "Unrecognized input '%s'", src[ui.StartTC:end])
			tracer().Errorf("%s: unrecognized input %q", span, src[ui.StartTC:end])
			scan.TC = end
			continue
		} else if err != nil {
			errs.Add(diag.LexicalError, lines.Span(scan.TC, scan.TC), "%v", err)
			return eof()
		}
		lt := tok.(*lexmachine.Token)
		t := Token{
			Kind:   TokType(lt.Type),
			Lexeme: string(lt.Lexeme),
			Span:   lines.Span(lt.TC, lt.TC+len(lt.Lexeme)),
		}
		if t.Kind.IsTrivia() && mode&KeepTrivia == 0 {
			continue
		}
		toks = append(toks, t)
	}
	return eof()
}

// languageLabel detects a leading `language ...` line. It returns the label
// text and the offset just behind it, or 0 if there is no label.
func languageLabel(src string) (string, int) {
	i := 0
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r' || src[i] == '\n') {
		i++
	}
	rest := src[i:]
	if !strings.HasPrefix(rest, "language") || len(rest) == len("language") {
		return "", 0
	}
	if c := rest[len("language")]; c != ' ' && c != '\t' {
		return "", 0
	}
	n := strings.IndexByte(rest, '\n')
	if n < 0 {
		n = len(rest)
	}
	label := strings.TrimRight(rest[:n], "\r")
	return label, i + len(label)
}

// nextBoundary finds the first white space at or after offset start,
// skipping at least one rune.
func nextBoundary(src string, start int) int {
	i := start
	for i < len(src) {
		r, sz := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) && i > start {
			break
		}
		i += sz
	}
	return i
}
