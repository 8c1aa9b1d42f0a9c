package ast

import "github.com/pkg/errors"

// ErrReservedAlias is returned when an import declaration aliases a module
// to the reserved name "Self" (spec §7 "Reserved alias").
var ErrReservedAlias = errors.New(`import alias "Self" is reserved for the enclosing module`)

// Visibility is a function's declared visibility.
type Visibility string

const (
	Public   Visibility = "public"
	Internal Visibility = "internal"
)

// Param is one "var : RefAnnotation" formal parameter or local declaration.
type Param struct {
	Span
	Name Var
	Type *Type
}

// ParamNode is the grammar production for a single parameter or local
// entry; trailing commas between parameters are permitted (spec §4.7).
type ParamNode struct {
	Span
	Name Ident          `@@ ":"`
	Type *RefAnnotation `@@`
}

func (p *ParamNode) resolve() Param {
	return Param{Span: p.Span, Name: p.Name.Var(), Type: p.Type.Resolve()}
}

// ParamListNode is the grammar production for a parenthesized,
// comma-separated (optionally trailing-comma'd) parameter list.
type ParamListNode struct {
	Span
	Params []*ParamNode `"(" ( @@ ( "," @@ )* ","? )? ")"`
}

func (l *ParamListNode) resolve() []Param {
	params := make([]Param, 0, len(l.Params))
	for _, p := range l.Params {
		params = append(params, p.resolve())
	}
	return params
}

// FunctionAnnotation is either a Requires or an Ensures verifier pragma attached to
// a function signature (spec §4.5).
type FunctionAnnotation struct {
	Requires *string
	Ensures  *string
}

// FunctionAnnotationNode is the grammar production for one "requires <...>"
// or "ensures <...>" entry.
type FunctionAnnotationNode struct {
	Span
	Requires *VerifierCondition `( "requires" @BracketText`
	Ensures  *VerifierCondition `| "ensures" @BracketText )`
}

func (a *FunctionAnnotationNode) resolve() FunctionAnnotation {
	if a.Requires != nil {
		return FunctionAnnotation{Requires: &a.Requires.Text}
	}
	return FunctionAnnotation{Ensures: &a.Ensures.Text}
}

// FunctionBody is either Native (no body) or Move (locals plus code).
type FunctionBody struct {
	Native bool
	Locals []Param
	Code   Block
}

// Function is a function declaration (spec §4.7).
type Function struct {
	Span
	Visibility  Visibility
	Name        FunctionName
	Params      []Param
	ReturnTypes []*Type
	Annotations []FunctionAnnotation
	Body        FunctionBody
}

// FunctionNode is the grammar production for a function declaration, move-
// bodied or native.
type FunctionNode struct {
	Span
	Native      *string                    `( @"native"`
	Public      *string                    `  @"public"?`
	NativeName  Ident                      `  @@`
	NativeArgs  *ParamListNode             `  @@`
	NativeRet   *ReturnTypes               `  @@? ";"`
	MovePublic  *string                    `| @"public"?`
	MoveName    Ident                      `  @@`
	MoveArgs    *ParamListNode             `  @@`
	MoveRet     *ReturnTypes               `  @@?`
	Annotations []*FunctionAnnotationNode  `  @@*`
	Locals      []*LocalDeclNode           `  "{" @@*`
	Statements  []*StatementNode           `  @@* "}" )`
}

// LocalDeclNode is "let var : RefAnnotation ;" (spec §4.7). All locals
// appear at the head of a function body, ahead of any statement.
type LocalDeclNode struct {
	Span
	Name Ident          `"let" @@ ":"`
	Type *RefAnnotation `@@ ";"`
}

func (l *LocalDeclNode) resolve() Param {
	return Param{Span: l.Span, Name: l.Name.Var(), Type: l.Type.Resolve()}
}

// Fold converts the parsed function into the canonical Function.
func (f *FunctionNode) Fold() (*Function, error) {
	fn := &Function{Span: f.Span, Visibility: Internal}
	annotations := make([]FunctionAnnotation, 0, len(f.Annotations))
	for _, a := range f.Annotations {
		annotations = append(annotations, a.resolve())
	}
	fn.Annotations = annotations

	if f.Native != nil {
		fn.Name = f.NativeName.FunctionName()
		fn.Params = f.NativeArgs.resolve()
		fn.ReturnTypes = f.NativeRet.Resolve()
		if f.Public != nil {
			fn.Visibility = Public
		}
		fn.Body = FunctionBody{Native: true}
		return fn, nil
	}

	fn.Name = f.MoveName.FunctionName()
	fn.Params = f.MoveArgs.resolve()
	fn.ReturnTypes = f.MoveRet.Resolve()
	if f.MovePublic != nil {
		fn.Visibility = Public
	}
	locals := make([]Param, 0, len(f.Locals))
	for _, l := range f.Locals {
		locals = append(locals, l.resolve())
	}
	code := make(Block, 0, len(f.Statements))
	for _, s := range f.Statements {
		stmt, err := s.Fold()
		if err != nil {
			return nil, err
		}
		code = append(code, *stmt)
	}
	fn.Body = FunctionBody{Locals: locals, Code: code}
	return fn, nil
}

// StructField is one "field: Annotation" entry. Struct fields are always
// typed with a non-reference Annotation (spec invariant: "Struct field
// annotations are strictly non-reference").
type StructField struct {
	Span
	Name Field
	Type *Type
}

// StructFieldNode is the grammar production for one struct field entry.
type StructFieldNode struct {
	Span
	Name Ident       `@@ ":"`
	Type *Annotation `@@`
}

func (f *StructFieldNode) resolve() StructField {
	return StructField{Span: f.Span, Name: f.Name.Field(), Type: f.Type.Resolve()}
}

// StructDefinition is a struct or resource declaration (spec §4.7).
type StructDefinition struct {
	Span
	IsResource bool
	Name       StructName
	Fields     []StructField
}

// StructDefinitionNode is the grammar production "struct Name { fields }"
// or "resource Name { fields }".
type StructDefinitionNode struct {
	Span
	Resource *string             `( @"resource"`
	Value    *string             `| @"struct" )`
	Name     Ident                `@@`
	Fields   []*StructFieldNode  `"{" ( @@ ( "," @@ | ";" @@ )* ";"? ","? )? "}"`
}

// Fold converts the parsed struct declaration into the canonical
// StructDefinition.
func (s *StructDefinitionNode) Fold() *StructDefinition {
	fields := make([]StructField, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.resolve())
	}
	return &StructDefinition{
		Span:       s.Span,
		IsResource: s.Resource != nil,
		Name:       s.Name.StructName(),
		Fields:     fields,
	}
}

// ImportDecl is "import <ModuleIdent> (as <ModuleName>)? ;" (spec §4.7).
// The alias Self is reserved; using it is a parse-time failure.
type ImportDecl struct {
	Span
	Module ModuleIdent
	Alias  ModuleName
}

// ImportDeclNode is the grammar production for one import declaration.
type ImportDeclNode struct {
	Span
	Module ModuleIdent `"import" @@`
	Alias  *Ident      `( "as" @@ )? ";"`
}

// Fold converts the parsed import into the canonical ImportDecl, rejecting
// an explicit "Self" alias.
func (i *ImportDeclNode) Fold() (*ImportDecl, error) {
	decl := &ImportDecl{Span: i.Span, Module: i.Module}
	if i.Alias != nil {
		alias := i.Alias.ModuleName()
		if alias == SelfModuleAlias {
			return nil, errors.Wrapf(ErrReservedAlias, "at %s", i.Alias.Span.String())
		}
		decl.Alias = alias
		return decl, nil
	}
	if i.Module.IsScriptLocal() {
		decl.Alias = i.Module.Transaction.Name.ModuleName()
	} else {
		decl.Alias = i.Module.Qualified.Name.ModuleName()
	}
	return decl, nil
}

// ModuleDefinition is a module declaration (spec §4.7); order within the
// source is fixed — imports, then all structs, then all functions.
type ModuleDefinition struct {
	Span
	Name      ModuleName
	Imports   []ImportDecl
	Structs   []StructDefinition
	Functions []Function
}

// ModuleDefinitionNode is the grammar production "module Name { imports*
// structs* functions* }".
type ModuleDefinitionNode struct {
	Span
	Name      Ident                   `"module" @@`
	Imports   []*ImportDeclNode       `"{" @@*`
	Structs   []*StructDefinitionNode `@@*`
	Functions []*FunctionNode         `@@* "}"`
}

// Fold converts the parsed module into the canonical ModuleDefinition.
func (m *ModuleDefinitionNode) Fold() (*ModuleDefinition, error) {
	mod := &ModuleDefinition{Span: m.Span, Name: m.Name.ModuleName()}
	for _, i := range m.Imports {
		decl, err := i.Fold()
		if err != nil {
			return nil, err
		}
		mod.Imports = append(mod.Imports, *decl)
	}
	for _, s := range m.Structs {
		mod.Structs = append(mod.Structs, *s.Fold())
	}
	for _, f := range m.Functions {
		fn, err := f.Fold()
		if err != nil {
			return nil, err
		}
		mod.Functions = append(mod.Functions, *fn)
	}
	return mod, nil
}

// Script is "imports* main ( args ) { locals* statements* }"; main is
// always public, with no return types, and a Move (never native) body.
type Script struct {
	Span
	Imports []ImportDecl
	Main    Function
}

// ScriptNode is the grammar production for a script.
type ScriptNode struct {
	Span
	Imports    []*ImportDeclNode `@@*`
	MainArgs   *ParamListNode    `"main" @@`
	Locals     []*LocalDeclNode  `"{" @@*`
	Statements []*StatementNode  `@@* "}"`
}

// Fold converts the parsed script into the canonical Script.
func (s *ScriptNode) Fold() (*Script, error) {
	script := &Script{Span: s.Span}
	for _, i := range s.Imports {
		decl, err := i.Fold()
		if err != nil {
			return nil, err
		}
		script.Imports = append(script.Imports, *decl)
	}
	locals := make([]Param, 0, len(s.Locals))
	for _, l := range s.Locals {
		locals = append(locals, l.resolve())
	}
	code := make(Block, 0, len(s.Statements))
	for _, st := range s.Statements {
		stmt, err := st.Fold()
		if err != nil {
			return nil, err
		}
		code = append(code, *stmt)
	}
	script.Main = Function{
		Span:       s.Span,
		Visibility: Public,
		Name:       "main",
		Params:     s.MainArgs.resolve(),
		Body:       FunctionBody{Locals: locals, Code: code},
	}
	return script, nil
}

// Program is optional modules followed by exactly one script (spec §4.7).
type Program struct {
	Span
	Modules []ModuleDefinition
	Script  Script
}

// ProgramNode is the grammar production for a whole program: an optional
// "modules: <module>* script:" preamble — the "script:" marker only appears
// alongside a module preamble — followed unconditionally by the script
// body itself. Absence of the preamble denotes an empty module list, and
// lets a bare script ("main() { ... }") parse with no leading marker at
// all (spec §4.7 scenario S1).
type ProgramNode struct {
	Span
	Modules []*ModuleDefinitionNode `( "modules" ":" @@* "script" ":" )?`
	Script  *ScriptNode             `@@`
}

// Fold converts the parsed program into the canonical Program.
func (p *ProgramNode) Fold() (*Program, error) {
	prog := &Program{Span: p.Span}
	for _, m := range p.Modules {
		mod, err := m.Fold()
		if err != nil {
			return nil, err
		}
		prog.Modules = append(prog.Modules, *mod)
	}
	script, err := p.Script.Fold()
	if err != nil {
		return nil, err
	}
	prog.Script = *script
	return prog, nil
}
