// Package diagnostic renders a ParseError against its source text as a
// colorized, single-span caret diagnostic, in the style of openllb-hlb's
// diagnostic package scoped down to this parser's one error shape.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	isatty "github.com/mattn/go-isatty"

	"github.com/mvir-lang/mvir/ast"
)

// Colorizer reports whether output should be colorized and performs the
// colorizing. NewColorizer picks a sensible default for a given writer fd.
type Colorizer struct {
	au aurora.Aurora
}

// NewColorizer returns a Colorizer that enables color only when fd is a
// terminal.
func NewColorizer(fd uintptr) Colorizer {
	return Colorizer{au: aurora.NewAurora(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))}
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	col = offset - lastNewline
	return line, col
}

// lineText returns the full source line containing offset, without its
// trailing newline.
func lineText(src string, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end == -1 {
		return src[start:]
	}
	return src[start : offset+end]
}

// Render formats a byte-span error against src as a multi-line caret
// diagnostic: a "line N, col M: message" header, followed by the offending
// source line, followed by a line of spaces and "^" markers under the span.
func (c Colorizer) Render(src string, start, end ast.ByteIndex, message string) string {
	line, col := lineCol(src, int(start))
	text := lineText(src, int(start))

	width := int(end) - int(start)
	if width < 1 {
		width = 1
	}
	if col-1+width > len(text) {
		width = len(text) - (col - 1)
		if width < 1 {
			width = 1
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.au.Bold(fmt.Sprintf("line %d, col %d: %s", line, col, message)))
	fmt.Fprintf(&b, "    %s\n", text)
	fmt.Fprintf(&b, "    %s%s\n", strings.Repeat(" ", col-1), c.au.Red(strings.Repeat("^", width)))
	return b.String()
}
