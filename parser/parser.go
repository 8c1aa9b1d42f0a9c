// Package parser exposes the three public entry points over the grammar
// defined in package ast: parse_program, parse_module, and parse_command.
// Every failure, from whichever layer it originates in — the lexer, the
// participle grammar, or a post-parse Fold validation such as duplicate
// field rejection — is normalized into the single ParseError kind spec §7
// describes.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/mvir-lang/mvir/ast"
)

// ParseError is the parser's one kind of failure: a byte span plus a
// message (spec §7). Sub-kinds ("unexpected token", "integer out of
// range", "malformed hex", "address too long", "reserved alias",
// "duplicate field key") are distinguished by Message alone, never by a
// distinct Go type.
type ParseError struct {
	Start, End ast.ByteIndex
	Message    string
}

func (e *ParseError) Error() string {
	return e.Message
}

func newParseError(span ast.Span, message string) *ParseError {
	start, end := span.ByteSpan()
	return &ParseError{Start: start, End: end, Message: message}
}

// fromErr normalizes any error participle or a Fold step can produce into
// a *ParseError. fallback supplies a span for errors that don't carry
// their own position (DuplicateFieldError and participle's own errors do).
func fromErr(err error, fallback ast.Span) error {
	if err == nil {
		return nil
	}
	var dup *ast.DuplicateFieldError
	if errors.As(err, &dup) {
		return newParseError(dup.Span, "duplicate field key: "+string(dup.Field))
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		span := ast.Span{Pos: pos, EndPos: pos}
		return newParseError(span, perr.Message())
	}
	return newParseError(fallback, err.Error())
}

var (
	programParser *participle.Parser[ast.ProgramNode]
	moduleParser  *participle.Parser[ast.ModuleDefinitionNode]
	cmdParser     *participle.Parser[ast.CmdNode]
)

func options() []participle.Option {
	return []participle.Option{
		participle.Lexer(ast.Lexer),
		participle.Elide("Whitespace", "BracketWhitespace"),
		participle.UseLookahead(participle.MaxLookahead),
	}
}

func init() {
	var err error
	programParser, err = participle.Build[ast.ProgramNode](options()...)
	if err != nil {
		panic(errors.Wrap(err, "parser: building program grammar"))
	}
	moduleParser, err = participle.Build[ast.ModuleDefinitionNode](options()...)
	if err != nil {
		panic(errors.Wrap(err, "parser: building module grammar"))
	}
	cmdParser, err = participle.Build[ast.CmdNode](options()...)
	if err != nil {
		panic(errors.Wrap(err, "parser: building command grammar"))
	}
}

// ParseProgram parses a full "modules?: ... script: ..." program.
func ParseProgram(input string) (*ast.Program, error) {
	node, err := programParser.ParseString("", input)
	if err != nil {
		return nil, fromErr(err, ast.Span{})
	}
	prog, err := node.Fold()
	if err != nil {
		return nil, fromErr(err, node.Span)
	}
	return prog, nil
}

// ParseModule parses a single module declaration.
func ParseModule(input string) (*ast.ModuleDefinition, error) {
	node, err := moduleParser.ParseString("", input)
	if err != nil {
		return nil, fromErr(err, ast.Span{})
	}
	mod, err := node.Fold()
	if err != nil {
		return nil, fromErr(err, node.Span)
	}
	return mod, nil
}

// ParseCommand parses a single command with no trailing ";", for REPL use
// and test fixtures.
func ParseCommand(input string) (*ast.Cmd, error) {
	node, err := cmdParser.ParseString("", input)
	if err != nil {
		return nil, fromErr(err, ast.Span{})
	}
	cmd, err := node.Fold()
	if err != nil {
		return nil, fromErr(err, node.Span)
	}
	return cmd, nil
}
