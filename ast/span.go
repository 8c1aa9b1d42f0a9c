// Package ast defines the grammar and typed tree for the IR: a
// resource-oriented, stack-machine-targeted smart-contract language. The
// grammar is expressed directly as participle struct tags, in the same
// style as the Guix and Stencil front ends this package is descended from.
// The tagged grammar structs (the *Node types and the expression tiers)
// mirror the source text's shape; their Fold/Resolve methods convert them
// into the canonical tree (Program, Exp, Cmd, Statement, ...) consumed by
// later passes.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ByteIndex is a 32-bit byte offset into a source buffer. Any input whose
// length overflows ByteIndex must be rejected by the caller before parsing.
type ByteIndex uint32

// Span is a half-open byte range [Start, End) attached to a tree node for
// diagnostics. It is the generic "span decorator" every non-leaf node
// embeds: participle populates the two magic position fields (Pos, EndPos)
// automatically from the tokens it consumes, and ByteSpan projects those
// down to the byte range the spec's error model is built on.
type Span struct {
	Pos    lexer.Position
	EndPos lexer.Position
}

// ByteSpan returns the [start, end) byte range of the node.
func (s Span) ByteSpan() (start, end ByteIndex) {
	return ByteIndex(s.Pos.Offset), ByteIndex(s.EndPos.Offset)
}

// Valid reports whether the span is well-formed: start <= end.
func (s Span) Valid() bool {
	start, end := s.ByteSpan()
	return start <= end
}

func (s Span) String() string {
	return s.Pos.String()
}
