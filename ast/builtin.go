package ast

// BuiltinOp is the closed enumeration of builtin operators (spec §3): the
// eleven plain keywords plus the four parametric operators that also carry
// a struct type argument.
type BuiltinOp string

const (
	BuiltinCreateAccount        BuiltinOp = "create_account"
	BuiltinRelease              BuiltinOp = "release"
	BuiltinExists               BuiltinOp = "exists"
	BuiltinBorrowGlobal         BuiltinOp = "borrow_global"
	BuiltinGetHeight            BuiltinOp = "get_height"
	BuiltinGetTxnGasUnitPrice   BuiltinOp = "get_txn_gas_unit_price"
	BuiltinGetTxnMaxGasUnits    BuiltinOp = "get_txn_max_gas_units"
	BuiltinGetTxnPublicKey      BuiltinOp = "get_txn_public_key"
	BuiltinGetTxnSender         BuiltinOp = "get_txn_sender"
	BuiltinGetTxnSequenceNumber BuiltinOp = "get_txn_sequence_number"
	BuiltinEmitEvent            BuiltinOp = "emit_event"
	BuiltinMoveFrom             BuiltinOp = "move_from"
	BuiltinMoveToSender         BuiltinOp = "move_to_sender"
	BuiltinGetGasRemaining      BuiltinOp = "get_gas_remaining"
	BuiltinFreeze               BuiltinOp = "freeze"
)

// plainBuiltins lists the non-parametric builtin keywords in the order
// they're tried as literal alternatives.
const plainBuiltins = `"create_account" | "release" | "get_height" | ` +
	`"get_txn_gas_unit_price" | "get_txn_max_gas_units" | "get_txn_public_key" | ` +
	`"get_txn_sender" | "get_txn_sequence_number" | "emit_event" | ` +
	`"get_gas_remaining" | "freeze"`

// Builtin is the resolved form of a builtin call: an operator plus, for the
// four parametric operators, the struct type argument between its "<" ">".
type Builtin struct {
	Op      BuiltinOp
	TypeArg *Type
}

// BuiltinCall is the grammar production for a builtin call head, i.e.
// everything up to (not including) the actuals' parenthesized list.
type BuiltinCall struct {
	Span
	Plain        *string           `( @( "create_account" | "release" | "get_height" | "get_txn_gas_unit_price" | "get_txn_max_gas_units" | "get_txn_public_key" | "get_txn_sender" | "get_txn_sequence_number" | "emit_event" | "get_gas_remaining" | "freeze" )`
	Exists       *StructAnnotation `| "exists" "<" @@ ">"`
	BorrowGlobal *StructAnnotation `| "borrow_global" "<" @@ ">"`
	MoveFrom     *StructAnnotation `| "move_from" "<" @@ ">"`
	MoveToSender *StructAnnotation `| "move_to_sender" "<" @@ ">" )`
}

// Resolve converts the parsed builtin head into a Builtin value.
func (b *BuiltinCall) Resolve() *Builtin {
	switch {
	case b.Exists != nil:
		return &Builtin{Op: BuiltinExists, TypeArg: b.Exists.resolve()}
	case b.BorrowGlobal != nil:
		return &Builtin{Op: BuiltinBorrowGlobal, TypeArg: b.BorrowGlobal.resolve()}
	case b.MoveFrom != nil:
		return &Builtin{Op: BuiltinMoveFrom, TypeArg: b.MoveFrom.resolve()}
	case b.MoveToSender != nil:
		return &Builtin{Op: BuiltinMoveToSender, TypeArg: b.MoveToSender.resolve()}
	default:
		return &Builtin{Op: BuiltinOp(*b.Plain)}
	}
}

// ModuleFunctionCall is a call to a function in another module, referenced
// by the short name it was imported under (spec §4.7's import declaration
// binds that name to a full QualifiedModuleIdent; resolving it is a later
// pass's job, not the parser's — see DESIGN.md).
type ModuleFunctionCall struct {
	Module ModuleName
	Name   FunctionName
}

// ModuleFunctionCallNode is the grammar production "Module.function".
type ModuleFunctionCallNode struct {
	Span
	Module Ident `@@ "."`
	Name   Ident `@@`
}

// Resolve converts the parsed node into a ModuleFunctionCall.
func (m *ModuleFunctionCallNode) Resolve() ModuleFunctionCall {
	return ModuleFunctionCall{Module: m.Module.ModuleName(), Name: m.Name.FunctionName()}
}

// FunctionCall is the callee half of a Cmd::Call: either a builtin operator
// or a module function, never both.
type FunctionCall struct {
	Builtin *Builtin
	Module  *ModuleFunctionCall
}

// FunctionCallNode is the grammar production for a call's callee, tried as
// a builtin keyword first since those are reserved and never collide with
// an arbitrary "Module.function" shape.
type FunctionCallNode struct {
	Span
	Builtin *BuiltinCall            `( @@`
	Module  *ModuleFunctionCallNode `| @@ )`
}

// Resolve converts the parsed node into a FunctionCall.
func (f *FunctionCallNode) Resolve() FunctionCall {
	if f.Builtin != nil {
		return FunctionCall{Builtin: f.Builtin.Resolve()}
	}
	mod := f.Module.Resolve()
	return FunctionCall{Module: &mod}
}
