package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvir-lang/mvir/ast"
)

// S1 — empty script, no "modules:"/"script:" preamble at all.
func TestParseProgram_EmptyScript(t *testing.T) {
	prog, err := ParseProgram(`main() {}`)
	require.NoError(t, err)
	assert.Empty(t, prog.Modules)
	assert.Equal(t, ast.Public, prog.Script.Main.Visibility)
	assert.Empty(t, prog.Script.Main.Params)
	assert.Empty(t, prog.Script.Main.Body.Locals)
	assert.Empty(t, prog.Script.Main.Body.Code)
}

// S2 — arithmetic precedence: "1 + 2 * 3 == 7" folds as "(1 + (2 * 3)) == 7".
func TestParseCommand_ArithmeticPrecedence(t *testing.T) {
	cmd, err := ParseCommand(`x = 1 + 2 * 3 == 7`)
	require.NoError(t, err)
	require.NotNil(t, cmd.Assign)
	assert.Equal(t, ast.Var("x"), cmd.Assign.Var)

	top := cmd.Assign.Exp
	require.NotNil(t, top.Binop)
	assert.Equal(t, ast.OpEq, top.Binop.Op)

	add := top.Binop.Lhs
	require.NotNil(t, add.Binop)
	assert.Equal(t, ast.OpAdd, add.Binop.Op)
	assert.Equal(t, uint64(1), add.Binop.Lhs.Value.U64Val.Value)

	mul := add.Binop.Rhs
	require.NotNil(t, mul.Binop)
	assert.Equal(t, ast.OpMul, mul.Binop.Op)
	assert.Equal(t, uint64(2), mul.Binop.Lhs.Value.U64Val.Value)
	assert.Equal(t, uint64(3), mul.Binop.Rhs.Value.U64Val.Value)

	assert.Equal(t, uint64(7), top.Binop.Rhs.Value.U64Val.Value)
}

// Invariant 3 — same-tier chains left-associate:
// "move(a) - move(b) - move(c)" = "(move(a) - move(b)) - move(c)".
func TestParseCommand_LeftAssociative(t *testing.T) {
	cmd, err := ParseCommand(`x = move(a) - move(b) - move(c)`)
	require.NoError(t, err)
	top := cmd.Assign.Exp
	require.NotNil(t, top.Binop)
	assert.Equal(t, ast.OpSub, top.Binop.Op)
	assert.Equal(t, ast.Var("c"), *top.Binop.Rhs.Move)

	inner := top.Binop.Lhs
	require.NotNil(t, inner.Binop)
	assert.Equal(t, ast.OpSub, inner.Binop.Op)
	assert.Equal(t, ast.Var("a"), *inner.Binop.Lhs.Move)
	assert.Equal(t, ast.Var("b"), *inner.Binop.Rhs.Move)
}

// S3 — borrow and mutate.
func TestParseCommand_BorrowAndMutate(t *testing.T) {
	assign, err := ParseCommand(`p = &mut x`)
	require.NoError(t, err)
	require.NotNil(t, assign.Assign)
	require.NotNil(t, assign.Assign.Exp.BorrowLocal)
	assert.True(t, assign.Assign.Exp.BorrowLocal.IsMut)
	assert.Equal(t, ast.Var("x"), assign.Assign.Exp.BorrowLocal.Var)

	mutate, err := ParseCommand(`*move(p) = 0`)
	require.NoError(t, err)
	require.NotNil(t, mutate.Mutate)
	require.NotNil(t, mutate.Mutate.Lhs.Dereference)
	require.NotNil(t, mutate.Mutate.Lhs.Dereference.Move)
	assert.Equal(t, ast.Var("p"), *mutate.Mutate.Lhs.Dereference.Move)
	assert.Equal(t, uint64(0), mutate.Mutate.Rhs.Value.U64Val.Value)
}

// S4 — multi-return call, collapsing to a single production (spec §9 Open
// Questions); single-binding form collapses to the same shape.
func TestParseCommand_MultiReturnCall(t *testing.T) {
	multi, err := ParseCommand(`a, b = Mod.f(copy(c))`)
	require.NoError(t, err)
	require.NotNil(t, multi.Call)
	assert.Equal(t, []ast.Var{"a", "b"}, multi.Call.ReturnBindings)
	require.NotNil(t, multi.Call.Call.Module)
	assert.Equal(t, ast.ModuleName("Mod"), multi.Call.Call.Module.Module)
	assert.Equal(t, ast.FunctionName("f"), multi.Call.Call.Module.Name)
	require.Len(t, multi.Call.Actuals, 1)
	assert.Equal(t, ast.Var("c"), *multi.Call.Actuals[0].Copy)

	single, err := ParseCommand(`a = Mod.f()`)
	require.NoError(t, err)
	require.NotNil(t, single.Call)
	assert.Equal(t, []ast.Var{"a"}, single.Call.ReturnBindings)
	assert.Empty(t, single.Call.Actuals)

	stmt, err := ParseCommand(`Mod.f()`)
	require.NoError(t, err)
	require.NotNil(t, stmt.Call)
	assert.Empty(t, stmt.Call.ReturnBindings)
}

// S5 — pack/unpack symmetry.
func TestParseCommand_PackUnpackSymmetry(t *testing.T) {
	assign, err := ParseCommand(`x = T{x: 1, y: true}`)
	require.NoError(t, err)
	pack := assign.Assign.Exp.Pack
	require.NotNil(t, pack)
	assert.Equal(t, ast.StructName("T"), pack.Name)
	require.Len(t, pack.Fields, 2)
	assert.Equal(t, ast.Field("x"), pack.Fields[0].Name)
	assert.Equal(t, uint64(1), pack.Fields[0].Value.Value.U64Val.Value)
	assert.Equal(t, ast.Field("y"), pack.Fields[1].Name)
	assert.True(t, pack.Fields[1].Value.Value.BoolVal.Value)

	unpack, err := ParseCommand(`T{x, y} = move(t)`)
	require.NoError(t, err)
	require.NotNil(t, unpack.Unpack)
	assert.Equal(t, ast.StructName("T"), unpack.Unpack.Name)
	require.Len(t, unpack.Unpack.Bindings, 2)
	assert.Equal(t, ast.Var("x"), unpack.Unpack.Bindings[0].Var)
	assert.Equal(t, ast.Var("y"), unpack.Unpack.Bindings[1].Var)
	assert.Equal(t, ast.Var("t"), *unpack.Unpack.Exp.Move)
}

// Invariant 4 — duplicate field keys in a Pack are rejected at parse time.
func TestParseCommand_DuplicateFieldRejected(t *testing.T) {
	_, err := ParseCommand(`x = T{x: 1, x: 2}`)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "duplicate field key")
}

// S6 — address padding.
func TestParseCommand_AddressPadding(t *testing.T) {
	cmd, err := ParseCommand(`x = 0x1`)
	require.NoError(t, err)
	addr := cmd.Assign.Exp.Value.AddressVal.Value
	for i := 0; i < ast.AddressLength-1; i++ {
		assert.Equal(t, byte(0), addr[i])
	}
	assert.Equal(t, byte(1), addr[ast.AddressLength-1])

	tooLong := "0x" + stringsRepeat("ab", 33)
	_, err = ParseCommand(`x = ` + tooLong)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// Invariant 6 — "import X as Self" fails; "import X as Y" succeeds.
func TestParseModule_ReservedAlias(t *testing.T) {
	_, err := ParseModule(`module M { import 0x1.Other as Self; }`)
	require.Error(t, err)

	mod, err := ParseModule(`module M { import 0x1.Other as Y; }`)
	require.NoError(t, err)
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, ast.ModuleName("Y"), mod.Imports[0].Alias)
}

// Invariant 7 — struct field annotations contain no reference form; the
// grammar simply never admits one, so this exercises a representative
// resource and value declaration.
func TestParseModule_StructKinds(t *testing.T) {
	mod, err := ParseModule(`module M {
		resource Coin { value: u64 }
		struct Pair { a: u64, b: bool }
	}`)
	require.NoError(t, err)
	require.Len(t, mod.Structs, 2)
	assert.True(t, mod.Structs[0].IsResource)
	assert.Equal(t, ast.StructName("Coin"), mod.Structs[0].Name)
	assert.False(t, mod.Structs[1].IsResource)
}

// Invariant 8 — return type list length matches the "*"-separated count.
func TestParseModule_ReturnTypeCount(t *testing.T) {
	mod, err := ParseModule(`module M {
		public f(): u64 * bool { return 0, true; }
		public g() { return; }
	}`)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 2)
	assert.Len(t, mod.Functions[0].ReturnTypes, 2)
	assert.Len(t, mod.Functions[1].ReturnTypes, 0)
}

func TestParseModule_NativeFunction(t *testing.T) {
	mod, err := ParseModule(`module M {
		native public create(addr: address): bool;
	}`)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	assert.True(t, fn.Body.Native)
	assert.Equal(t, ast.Public, fn.Visibility)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, ast.Var("addr"), fn.Params[0].Name)
}

func TestParseModule_ControlFlowAndVerification(t *testing.T) {
	mod, err := ParseModule(`module M {
		public f() requires <x != 0> {
			let i: u64;
			i = 0;
			while (i) {
				if (i) {
					continue;
				} else {
					break;
				}
			}
			loop {
				verify <always true>;
				assume <x == y>;
			}
		}
	}`)
	require.NoError(t, err)
	fn := mod.Functions[0]
	require.Len(t, fn.Annotations, 1)
	require.NotNil(t, fn.Annotations[0].Requires)
	assert.Equal(t, "x != 0", *fn.Annotations[0].Requires)
	require.Len(t, fn.Body.Code, 3)
	require.NotNil(t, fn.Body.Code[1].While)
}

func TestParseModule_ParametricBuiltins(t *testing.T) {
	mod, err := ParseModule(`module M {
		public f() {
			exists<R#M.Coin>();
			x = move_from<R#M.Coin>();
		}
	}`)
	require.NoError(t, err)
	fn := mod.Functions[0]
	require.Len(t, fn.Body.Code, 2)

	first := fn.Body.Code[0].Command.Call
	require.NotNil(t, first.Call.Builtin)
	assert.Equal(t, ast.BuiltinExists, first.Call.Builtin.Op)
	require.NotNil(t, first.Call.Builtin.TypeArg.Normal)
	assert.Equal(t, ast.KindResource, first.Call.Builtin.TypeArg.Normal.Kind)

	second := fn.Body.Code[1].Command.Call
	assert.Equal(t, ast.BuiltinMoveFrom, second.Call.Builtin.Op)
}

func TestParseProgram_WithModules(t *testing.T) {
	prog, err := ParseProgram(`modules:
module M {
	resource Coin { value: u64 }
}
script:
import Transaction.M;
main() {
	let c: R#M.Coin;
}`)
	require.NoError(t, err)
	require.Len(t, prog.Modules, 1)
	require.Len(t, prog.Script.Imports, 1)
	assert.True(t, prog.Script.Imports[0].Module.IsScriptLocal())
}
