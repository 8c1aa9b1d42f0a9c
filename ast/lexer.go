package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes IR source into the atoms described in spec §4.1. Keywords
// are contextual: they are lexed as plain Ident tokens and recognized by
// exact-value literal matches in the grammar (the same trick cst.go and
// ast.go in the pack use for "import"/"as"/"with" — @"keyword" matches a
// token's value regardless of its token type). The only keyword token
// class is VerifierKeyword, which exists so that its four keywords can push
// the Bracket state described below.
//
// The trailing space baked into the spec's literal "&mut " token is handled
// by lexing "&" as ordinary punctuation and "mut" as an ordinary
// identifier, with whitespace elided between them — "&mut x" and "& mut x"
// lex identically, which spec §9's design notes call out as an
// observationally equivalent choice.
//
// "<" and ">" do double duty: as ordinary punctuation around a parametric
// builtin's type argument ("exists<T>"), and as the delimiters of a
// verify/assume/requires/ensures VerifierCondition's opaque text. Those two
// can't be told apart by pattern alone — "<T>" is valid in both roles — so
// the lexer is stateful: matching one of those four keywords pushes the
// Bracket state, where the very next non-whitespace token is forced to be
// the whole "<...>" run, and matching it pops back to Root. Everywhere
// else, including inside an ordinary expression, "<" and ">" are lexed one
// character at a time as Root-state Punct.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"VerifierKeyword", `\b(verify|assume|requires|ensures)\b`, lexer.Push("Bracket")},
		{"ByteArray", `b"[0-9a-fA-F]*"`, nil},
		{"Address", `0[xX][0-9a-fA-F]+`, nil},
		{"Int", `[0-9]+`, nil},
		{"Ident", `[A-Za-z$_][A-Za-z0-9$_]*`, nil},
		{"CmpOp", `==|!=|<=|>=`, nil},
		{"AndAnd", `&&`, nil},
		{"OrOr", `\|\|`, nil},
		{"Punct", `[.,;:=(){}<>*&#!%/+\-^|]`, nil},
	},
	"Bracket": {
		{"BracketWhitespace", `[ \t\r\n]+`, nil},
		{"BracketText", `<[^>]*>`, lexer.Pop()},
	},
})
