// Package printer renders the canonical AST (package ast) back into IR
// source text, in the style of openllb-hlb's unparse.go: one function per
// node shape, composed with fmt.Sprintf rather than a generic tree walker.
// It exists to support the round-trip property from spec §8:
// parse(print(parse(s))) == parse(s).
package printer

import (
	"fmt"
	"strings"

	"github.com/mvir-lang/mvir/ast"
)

// Program renders a whole program. The "modules:"/"script:" markers are
// paired: they appear together when there's a module preamble, and both are
// omitted when there isn't (ast.ProgramNode's grammar ties them together
// the same way, so a bare script prints with no marker at all).
func Program(p *ast.Program) string {
	var b strings.Builder
	if len(p.Modules) > 0 {
		b.WriteString("modules:\n")
		for _, m := range p.Modules {
			mod := m
			b.WriteString(Module(&mod))
			b.WriteString("\n")
		}
		b.WriteString("script:\n")
	}
	b.WriteString(Script(&p.Script))
	return b.String()
}

// Module renders a single module declaration.
func Module(m *ast.ModuleDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s {\n", m.Name)
	for _, i := range m.Imports {
		imp := i
		b.WriteString(indent(Import(&imp)))
		b.WriteString("\n")
	}
	for _, s := range m.Structs {
		st := s
		b.WriteString(indent(Struct(&st)))
		b.WriteString("\n")
	}
	for _, f := range m.Functions {
		fn := f
		b.WriteString(indent(Function(&fn)))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// Script renders a script's imports and main function.
func Script(s *ast.Script) string {
	var b strings.Builder
	for _, i := range s.Imports {
		imp := i
		b.WriteString(Import(&imp))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "main(%s)", paramList(s.Main.Params))
	b.WriteString(" ")
	b.WriteString(body(s.Main.Body))
	return b.String()
}

// Import renders an import declaration.
func Import(i *ast.ImportDecl) string {
	name := moduleIdentString(i.Module)
	if i.Module.IsScriptLocal() && i.Alias == ast.ModuleName(i.Module.Transaction.Name.Name) {
		return fmt.Sprintf("import %s;", name)
	}
	if !i.Module.IsScriptLocal() && i.Alias == i.Module.Qualify().Name {
		return fmt.Sprintf("import %s;", name)
	}
	return fmt.Sprintf("import %s as %s;", name, i.Alias)
}

func moduleIdentString(m ast.ModuleIdent) string {
	if m.IsScriptLocal() {
		return fmt.Sprintf("Transaction.%s", m.Transaction.Name.Name)
	}
	q := m.Qualify()
	return fmt.Sprintf("0x%x.%s", q.Address[:], q.Name)
}

// Struct renders a struct or resource declaration.
func Struct(s *ast.StructDefinition) string {
	keyword := "struct"
	if s.IsResource {
		keyword = "resource"
	}
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, fmt.Sprintf("%s: %s", f.Name, Type(f.Type)))
	}
	return fmt.Sprintf("%s %s { %s }", keyword, s.Name, strings.Join(fields, ", "))
}

// Function renders a function declaration, native or move-bodied.
func Function(f *ast.Function) string {
	sig := functionSignature(string(f.Name), f.Visibility, f.Params, f.ReturnTypes, f.Annotations)
	if f.Body.Native {
		return fmt.Sprintf("native %s;", sig)
	}
	return fmt.Sprintf("%s %s", sig, body(f.Body))
}

func functionSignature(name string, vis ast.Visibility, params []ast.Param, ret []*ast.Type, annotations []ast.FunctionAnnotation) string {
	var b strings.Builder
	if vis == ast.Public {
		b.WriteString("public ")
	}
	fmt.Fprintf(&b, "%s(%s)", name, paramList(params))
	if len(ret) > 0 {
		types := make([]string, 0, len(ret))
		for _, t := range ret {
			types = append(types, Type(t))
		}
		fmt.Fprintf(&b, ": %s", strings.Join(types, " * "))
	}
	for _, a := range annotations {
		if a.Requires != nil {
			fmt.Fprintf(&b, " requires <%s>", *a.Requires)
		} else {
			fmt.Fprintf(&b, " ensures <%s>", *a.Ensures)
		}
	}
	return b.String()
}

func paramList(params []ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, Type(p.Type)))
	}
	return strings.Join(parts, ", ")
}

func body(b ast.FunctionBody) string {
	var out strings.Builder
	out.WriteString("{\n")
	for _, l := range b.Locals {
		fmt.Fprintf(&out, "  let %s: %s;\n", l.Name, Type(l.Type))
	}
	out.WriteString(indent(Block(b.Code)))
	out.WriteString("\n}")
	return out.String()
}

// Block renders an ordered statement sequence, one statement per line.
func Block(b ast.Block) string {
	lines := make([]string, 0, len(b))
	for _, s := range b {
		stmt := s
		lines = append(lines, Statement(&stmt))
	}
	return strings.Join(lines, "\n")
}

// Statement renders a single statement.
func Statement(s *ast.Statement) string {
	switch {
	case s.Command != nil:
		return Cmd(s.Command) + ";"
	case s.IfElse != nil:
		ie := s.IfElse
		out := fmt.Sprintf("if (%s) {\n%s\n}", Exp(&ie.Cond), indent(Block(ie.Then)))
		if ie.Else != nil {
			out += fmt.Sprintf(" else {\n%s\n}", indent(Block(*ie.Else)))
		}
		return out
	case s.While != nil:
		w := s.While
		return fmt.Sprintf("while (%s) {\n%s\n}", Exp(&w.Cond), indent(Block(w.Body)))
	case s.Loop != nil:
		return fmt.Sprintf("loop {\n%s\n}", indent(Block(s.Loop.Body)))
	case s.Verify != nil:
		return fmt.Sprintf("verify <%s>", *s.Verify)
	case s.Assume != nil:
		return fmt.Sprintf("assume <%s>", *s.Assume)
	default:
		return ";"
	}
}

// Cmd renders a command without its trailing ";" (the caller, Statement,
// appends it — parse_command's input has no trailing ";" either).
func Cmd(c *ast.Cmd) string {
	switch {
	case c.Assign != nil:
		return fmt.Sprintf("%s = %s", c.Assign.Var, Exp(c.Assign.Exp))
	case c.Mutate != nil:
		return fmt.Sprintf("*%s = %s", Exp(c.Mutate.Lhs.Dereference), Exp(c.Mutate.Rhs))
	case c.Call != nil:
		return callString(c.Call)
	case c.Unpack != nil:
		return unpackString(c.Unpack)
	case c.Assert != nil:
		return fmt.Sprintf("assert(%s, %s)", Exp(c.Assert.Cond), Exp(c.Assert.Err))
	case c.Return != nil:
		parts := make([]string, 0, len(c.Return.Values))
		for _, v := range c.Return.Values {
			parts = append(parts, Exp(v))
		}
		return fmt.Sprintf("return %s", strings.Join(parts, ", "))
	case c.Continue:
		return "continue"
	default:
		return "break"
	}
}

func callString(c *ast.CallExp) string {
	var prefix string
	if len(c.ReturnBindings) > 0 {
		vars := make([]string, 0, len(c.ReturnBindings))
		for _, v := range c.ReturnBindings {
			vars = append(vars, string(v))
		}
		prefix = strings.Join(vars, ", ") + " = "
	}
	actuals := make([]string, 0, len(c.Actuals))
	for _, a := range c.Actuals {
		actuals = append(actuals, Exp(a))
	}
	return fmt.Sprintf("%s%s(%s)", prefix, functionCallString(c.Call), strings.Join(actuals, ", "))
}

func functionCallString(c ast.FunctionCall) string {
	if c.Module != nil {
		return fmt.Sprintf("%s.%s", c.Module.Module, c.Module.Name)
	}
	b := c.Builtin
	switch b.Op {
	case ast.BuiltinExists, ast.BuiltinBorrowGlobal, ast.BuiltinMoveFrom, ast.BuiltinMoveToSender:
		return fmt.Sprintf("%s<%s>", b.Op, Type(b.TypeArg))
	default:
		return string(b.Op)
	}
}

func unpackString(u *ast.UnpackExp) string {
	bindings := make([]string, 0, len(u.Bindings))
	for _, b := range u.Bindings {
		if string(b.Var) == string(b.Field) {
			bindings = append(bindings, string(b.Field))
		} else {
			bindings = append(bindings, fmt.Sprintf("%s: %s", b.Field, b.Var))
		}
	}
	return fmt.Sprintf("%s{%s} = %s", u.Name, strings.Join(bindings, ", "), Exp(u.Exp))
}

// Exp renders an expression tree, reinserting parentheses around any
// operand that binds looser than its parent so the round-trip preserves
// the original precedence rather than just its value.
func Exp(e *ast.Exp) string {
	return expString(e, 0)
}

// tierOf assigns each BinaryOp the precedence level of its spec §4.2 tier,
// higher binding tighter; Term-level forms are given the maximum so they
// never gain spurious parentheses.
func tierOf(op ast.BinaryOp) int {
	switch op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return 1
	case ast.OpOr:
		return 2
	case ast.OpAnd:
		return 3
	case ast.OpXor:
		return 4
	case ast.OpBOr:
		return 5
	case ast.OpBAnd:
		return 6
	case ast.OpAdd, ast.OpSub:
		return 7
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return 8
	default:
		return 9
	}
}

const maxTier = 9

func expString(e *ast.Exp, parentTier int) string {
	switch {
	case e.Value != nil:
		return e.Value.String()
	case e.Move != nil:
		return fmt.Sprintf("move(%s)", *e.Move)
	case e.Copy != nil:
		return fmt.Sprintf("copy(%s)", *e.Copy)
	case e.BorrowLocal != nil:
		return borrowPrefix(e.BorrowLocal.IsMut) + string(e.BorrowLocal.Var)
	case e.Borrow != nil:
		return fmt.Sprintf("%s%s.%s", borrowPrefix(e.Borrow.IsMut), e.Borrow.Var, e.Borrow.Field)
	case e.Dereference != nil:
		return "*" + expString(e.Dereference, maxTier)
	case e.Unary != nil:
		return string(e.Unary.Op) + expString(e.Unary.Exp, maxTier)
	case e.Binop != nil:
		tier := tierOf(e.Binop.Op)
		out := fmt.Sprintf("%s %s %s", expString(e.Binop.Lhs, tier), e.Binop.Op, expString(e.Binop.Rhs, tier+1))
		if tier < parentTier {
			return "(" + out + ")"
		}
		return out
	case e.Pack != nil:
		fields := make([]string, 0, len(e.Pack.Fields))
		for _, f := range e.Pack.Fields {
			fields = append(fields, fmt.Sprintf("%s: %s", f.Name, Exp(f.Value)))
		}
		return fmt.Sprintf("%s { %s }", e.Pack.Name, strings.Join(fields, ", "))
	default:
		return ""
	}
}

func borrowPrefix(isMut bool) string {
	if isMut {
		return "&mut "
	}
	return "&"
}

// Type renders a resolved Type, including the reference marker.
func Type(t *ast.Type) string {
	switch {
	case t.Reference != nil:
		return refPrefix(t.Reference.IsMut) + Type(t.Reference.Inner)
	case t.Normal != nil:
		return fmt.Sprintf("%s#%s.%s", t.Normal.Kind, t.Normal.Tag.Module, t.Normal.Tag.Name)
	case t.Primitive != nil:
		return string(*t.Primitive)
	default:
		return ""
	}
}

func refPrefix(isMut bool) string {
	if isMut {
		return "&mut "
	}
	return "&"
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
