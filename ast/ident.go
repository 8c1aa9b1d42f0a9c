package ast

// Var, Field, StructName, ModuleName, and FunctionName are distinct
// newtyped strings (spec §3 "Identifiers"), each parsed from a single Ident
// token. Keeping them as distinct types (rather than all plain strings)
// means a checker pass can't accidentally compare a Field against a Var.

// Var names a local variable or function parameter.
type Var string

// Field names a struct field.
type Field string

// StructName names a struct or resource declaration.
type StructName string

// ModuleName names a module. The literal "Self" is reserved as an alias
// for the enclosing module.
type ModuleName string

// FunctionName names a function declaration.
type FunctionName string

// SelfModuleAlias is the reserved ModuleName alias for the enclosing
// module, used inside import declarations.
const SelfModuleAlias ModuleName = "Self"

// Ident is the shared grammar production for a bare identifier, carrying
// its own span so callers that need a Var/Field/etc.'s precise location
// can ask for it independent of the parent node's span.
type Ident struct {
	Span
	Name string `@Ident`
}

func (i Ident) Var() Var                 { return Var(i.Name) }
func (i Ident) Field() Field             { return Field(i.Name) }
func (i Ident) StructName() StructName   { return StructName(i.Name) }
func (i Ident) ModuleName() ModuleName   { return ModuleName(i.Name) }
func (i Ident) FunctionName() FunctionName { return FunctionName(i.Name) }

// QualifiedModuleIdent pairs an account address with a module name,
// identifying a module globally.
type QualifiedModuleIdent struct {
	Address Address
	Name    ModuleName
}

// ModuleIdent is either script-local ("Transaction.<name>") or a fully
// qualified address/name pair.
type ModuleIdent struct {
	Span
	Transaction *TransactionModuleIdent `( @@`
	Qualified   *QualifiedModuleIdentExp `| @@ )`
}

// TransactionModuleIdent represents "Transaction.<name>", a module defined
// earlier in the same script/transaction.
type TransactionModuleIdent struct {
	Span
	Keyword string `@"Transaction" "."`
	Name    Ident  `@@`
}

// QualifiedModuleIdentExp is the grammar production for an address-qualified
// module identifier: 0x<hex>.<name>.
type QualifiedModuleIdentExp struct {
	Span
	Address *AddressLit `@Address "."`
	Name    Ident       `@@`
}

// IsScriptLocal reports whether the identifier refers to a module declared
// earlier in the same script ("Transaction.<name>"), rather than one
// resolved by address.
func (m *ModuleIdent) IsScriptLocal() bool {
	return m.Transaction != nil
}

// Qualify resolves a fully-qualified ModuleIdent into a QualifiedModuleIdent.
// It panics if called on a script-local identifier; callers must check
// IsScriptLocal first, mirroring how later passes resolve Transaction.<name>
// against the enclosing script instead.
func (m *ModuleIdent) Qualify() QualifiedModuleIdent {
	if m.Qualified == nil {
		panic("ast: Qualify called on a script-local ModuleIdent")
	}
	return QualifiedModuleIdent{
		Address: m.Qualified.Address.Value,
		Name:    m.Qualified.Name.ModuleName(),
	}
}
