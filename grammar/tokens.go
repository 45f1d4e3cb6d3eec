package grammar

import (
	"fmt"

	"github.com/npillmayer/essence/diag"
)

// TokType is the kind of a token.
type TokType int

// Token kinds. Keywords and punctuation each have a kind of their own.
const (
	EOF TokType = iota
	Ident
	Integer
	Comment       // trivia, only with KeepTrivia
	LanguageLabel // trivia, only with KeepTrivia

	keywordsStart
	KwFind
	KwLetting
	KwBe
	KwDomain
	KwSuchThat
	KwBool
	KwInt
	KwTuple
	KwMatrix
	KwIndexed
	KwBy
	KwOf
	KwDominanceRelation
	KwFromSolution
	KwAnd
	KwOr
	KwMin
	KwMax
	KwSum
	KwAllDiff
	KwTrue
	KwFalse
	keywordsEnd

	Colon
	Comma
	Semicolon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Bar
	Amp
	DotDot
	Bang
	Conj   // /\
	Disj   // \/
	Imply  // ->
	Iff    // <->
	Eq     // =
	Neq    // !=
	Leq    // <=
	Geq    // >=
	Lt     // <
	Gt     // >
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Pct    // %
	Power  // **
)

// spelling holds the canonical lexeme of keywords and punctuation.
var spelling = map[TokType]string{
	KwFind:              "find",
	KwLetting:           "letting",
	KwBe:                "be",
	KwDomain:            "domain",
	KwSuchThat:          "such that",
	KwBool:              "bool",
	KwInt:               "int",
	KwTuple:             "tuple",
	KwMatrix:            "matrix",
	KwIndexed:           "indexed",
	KwBy:                "by",
	KwOf:                "of",
	KwDominanceRelation: "dominanceRelation",
	KwFromSolution:      "fromSolution",
	KwAnd:               "and",
	KwOr:                "or",
	KwMin:               "min",
	KwMax:               "max",
	KwSum:               "sum",
	KwAllDiff:           "allDiff",
	KwTrue:              "true",
	KwFalse:             "false",
	Colon:               ":",
	Comma:               ",",
	Semicolon:           ";",
	LParen:              "(",
	RParen:              ")",
	LBracket:            "[",
	RBracket:            "]",
	LBrace:              "{",
	RBrace:              "}",
	Bar:                 "|",
	Amp:                 "&",
	DotDot:              "..",
	Bang:                "!",
	Conj:                `/\`,
	Disj:                `\/`,
	Imply:               "->",
	Iff:                 "<->",
	Eq:                  "=",
	Neq:                 "!=",
	Leq:                 "<=",
	Geq:                 ">=",
	Lt:                  "<",
	Gt:                  ">",
	Plus:                "+",
	Minus:               "-",
	Star:                "*",
	Slash:               "/",
	Pct:                 "%",
	Power:               "**",
}

func (t TokType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Integer:
		return "integer"
	case Comment:
		return "comment"
	case LanguageLabel:
		return "language label"
	}
	if s, ok := spelling[t]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword is a predicate: is t a reserved word?
func (t TokType) IsKeyword() bool {
	return t > keywordsStart && t < keywordsEnd
}

// IsTrivia is a predicate: is t a comment or the language label?
func (t TokType) IsTrivia() bool {
	return t == Comment || t == LanguageLabel
}

// isTopLevel is a predicate: does t start a top-level statement?
func (t TokType) isTopLevel() bool {
	switch t {
	case KwFind, KwLetting, KwSuchThat, KwDominanceRelation:
		return true
	}
	return false
}

// Token is a lexeme of a given kind, located in the source.
type Token struct {
	Kind   TokType
	Lexeme string
	Span   diag.Span
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Lexeme, t.Span)
}
