package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvir-lang/mvir/ast"
	"github.com/mvir-lang/mvir/parser"
)

// roundTrip exercises the invariant from spec §8: parsing the printed form
// of a parsed command yields the same tree (by value) as the original.
func roundTrip(t *testing.T, src string) *ast.Cmd {
	t.Helper()
	cmd, err := parser.ParseCommand(src)
	require.NoError(t, err)
	again, err := parser.ParseCommand(Cmd(cmd))
	require.NoError(t, err)
	assert.Equal(t, stripSpans(cmd), stripSpans(again))
	return cmd
}

// stripSpans zeroes the Span on every node reachable from a Cmd so
// assert.Equal compares structure and values only, not source positions
// (which legitimately differ between the original and the round-tripped
// source text).
func stripSpans(c *ast.Cmd) ast.Cmd {
	out := *c
	out.Span = ast.Span{}
	if out.Assign != nil {
		a := *out.Assign
		a.Exp = stripExpSpans(a.Exp)
		out.Assign = &a
	}
	if out.Mutate != nil {
		m := *out.Mutate
		m.Lhs = stripExpSpans(m.Lhs)
		m.Rhs = stripExpSpans(m.Rhs)
		out.Mutate = &m
	}
	if out.Call != nil {
		c := *out.Call
		actuals := make([]*ast.Exp, len(c.Actuals))
		for i, e := range c.Actuals {
			actuals[i] = stripExpSpans(e)
		}
		c.Actuals = actuals
		out.Call = &c
	}
	if out.Unpack != nil {
		u := *out.Unpack
		bindings := make([]ast.UnpackBinding, len(u.Bindings))
		for i, b := range u.Bindings {
			b.Span = ast.Span{}
			bindings[i] = b
		}
		u.Bindings = bindings
		u.Exp = stripExpSpans(u.Exp)
		out.Unpack = &u
	}
	if out.Assert != nil {
		a := *out.Assert
		a.Cond = stripExpSpans(a.Cond)
		a.Err = stripExpSpans(a.Err)
		out.Assert = &a
	}
	if out.Return != nil {
		r := *out.Return
		values := make([]*ast.Exp, len(r.Values))
		for i, e := range r.Values {
			values[i] = stripExpSpans(e)
		}
		r.Values = values
		out.Return = &r
	}
	return out
}

func stripExpSpans(e *ast.Exp) *ast.Exp {
	if e == nil {
		return nil
	}
	out := *e
	out.Span = ast.Span{}
	if out.Value != nil {
		v := *out.Value
		v.Span = ast.Span{}
		out.Value = &v
	}
	if out.Dereference != nil {
		out.Dereference = stripExpSpans(out.Dereference)
	}
	if out.Unary != nil {
		u := *out.Unary
		u.Exp = stripExpSpans(u.Exp)
		out.Unary = &u
	}
	if out.Binop != nil {
		b := *out.Binop
		b.Lhs = stripExpSpans(b.Lhs)
		b.Rhs = stripExpSpans(b.Rhs)
		out.Binop = &b
	}
	if out.Pack != nil {
		p := *out.Pack
		fields := make([]ast.PackField, len(p.Fields))
		for i, f := range p.Fields {
			f.Span = ast.Span{}
			f.Value = stripExpSpans(f.Value)
			fields[i] = f
		}
		p.Fields = fields
		out.Pack = &p
	}
	return &out
}

func TestRoundTrip_Arithmetic(t *testing.T) {
	roundTrip(t, `x = 1 + 2 * 3 == 7`)
}

func TestRoundTrip_LeftAssociative(t *testing.T) {
	roundTrip(t, `x = move(a) - move(b) - move(c)`)
}

func TestRoundTrip_Grouping(t *testing.T) {
	// Without parentheses this would fold as a + (b * c); printer must
	// re-add them since the parsed tree groups looser than its parent.
	roundTrip(t, `x = (move(a) + move(b)) * move(c)`)
}

func TestRoundTrip_BorrowAndMutate(t *testing.T) {
	roundTrip(t, `p = &mut x`)
	roundTrip(t, `*move(p) = 0`)
}

func TestRoundTrip_PackUnpack(t *testing.T) {
	roundTrip(t, `x = T{x: 1, y: true}`)
	roundTrip(t, `T{x, y: z} = move(t)`)
}

func TestRoundTrip_Call(t *testing.T) {
	roundTrip(t, `a, b = Mod.f(copy(c))`)
	roundTrip(t, `Mod.f()`)
}

// S1 — a bare script with no "modules:"/"script:" preamble at all must
// round-trip without the printer inventing a marker that wouldn't reparse.
func TestRoundTrip_ProgramEmptyScript(t *testing.T) {
	prog, err := parser.ParseProgram(`main() {}`)
	require.NoError(t, err)

	printed := Program(prog)
	assert.NotContains(t, printed, "script:")
	assert.NotContains(t, printed, "modules:")

	again, err := parser.ParseProgram(printed)
	require.NoError(t, err)
	assert.Empty(t, again.Modules)
	assert.Equal(t, ast.Public, again.Script.Main.Visibility)
	assert.Empty(t, again.Script.Main.Params)
	assert.Empty(t, again.Script.Main.Body.Code)
}

// A program with a module preamble must also round-trip, with both markers
// reappearing together.
func TestRoundTrip_ProgramWithModules(t *testing.T) {
	prog, err := parser.ParseProgram(`modules:
module M {
	resource Coin { value: u64 }
}
script:
import Transaction.M;
main() {
	let c: R#M.Coin;
}`)
	require.NoError(t, err)

	printed := Program(prog)
	assert.Contains(t, printed, "modules:")
	assert.Contains(t, printed, "script:")

	again, err := parser.ParseProgram(printed)
	require.NoError(t, err)
	require.Len(t, again.Modules, 1)
	assert.Equal(t, ast.StructName("Coin"), again.Modules[0].Structs[0].Name)
	require.Len(t, again.Script.Imports, 1)
}
