package ast

// Exp is the canonical expression tree (spec §3): a closed sum type with
// exactly one branch populated. The precedence-tiered grammar in
// expr_cst.go parses directly into the source text's shape; each tier's
// Fold method then flattens that shape into this tree, left-associating
// same-tier chains as it goes.
type Exp struct {
	Span
	Value       *CopyableVal
	Move        *Var
	Copy        *Var
	BorrowLocal *BorrowLocalExp
	Borrow      *BorrowExp
	Dereference *Exp
	Unary       *UnaryExp
	Binop       *BinopExp
	Pack        *PackExp
}

// BorrowLocalExp is "&x" / "&mut x": a borrow of a local variable with no
// field projection.
type BorrowLocalExp struct {
	IsMut bool
	Var   Var
}

// BorrowExp is "&e.f" / "&mut e.f": a borrow of a field reached through a
// local variable.
type BorrowExp struct {
	IsMut bool
	Var   Var
	Field Field
}

// UnaryOp is the closed set of prefix unary operators.
type UnaryOp string

const UnaryNot UnaryOp = "!"

// UnaryExp is a unary operator applied to its operand.
type UnaryExp struct {
	Op  UnaryOp
	Exp *Exp
}

// BinaryOp is the closed set of binary operators across every precedence
// tier (spec §4.2).
type BinaryOp string

const (
	OpEq  BinaryOp = "=="
	OpNeq BinaryOp = "!="
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
	OpLe  BinaryOp = "<="
	OpGe  BinaryOp = ">="
	OpOr  BinaryOp = "||"
	OpAnd BinaryOp = "&&"
	OpXor BinaryOp = "^"
	OpBOr BinaryOp = "|"
	OpBAnd BinaryOp = "&"
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
)

// BinopExp is a binary operator application; Lhs and Rhs are themselves
// span-wrapped Exp nodes, nested by construction so that containment tests
// on spans hold.
type BinopExp struct {
	Lhs *Exp
	Op  BinaryOp
	Rhs *Exp
}

// PackField is one "name: value" entry of a struct literal.
type PackField struct {
	Span
	Name  Field
	Value *Exp
}

// PackExp is a struct literal "Name { f1: e1, f2: e2, ... }". Construction
// rejects duplicate field keys (spec invariant 4 / §9 Open Questions).
type PackExp struct {
	Name   StructName
	Fields []PackField
}

// NewExp helpers build leaf Exp nodes without going through the grammar,
// used by tests and by any downstream pass that synthesizes expressions.

func NewValueExp(v *CopyableVal) *Exp { return &Exp{Value: v} }
func NewMoveExp(v Var) *Exp           { return &Exp{Move: &v} }
func NewCopyExp(v Var) *Exp           { return &Exp{Copy: &v} }

func NewBorrowLocalExp(isMut bool, v Var) *Exp {
	return &Exp{BorrowLocal: &BorrowLocalExp{IsMut: isMut, Var: v}}
}

func NewBorrowExp(isMut bool, v Var, field Field) *Exp {
	return &Exp{Borrow: &BorrowExp{IsMut: isMut, Var: v, Field: field}}
}

func NewDereferenceExp(e *Exp) *Exp {
	return &Exp{Dereference: e}
}

func NewUnaryExp(op UnaryOp, e *Exp) *Exp {
	return &Exp{Unary: &UnaryExp{Op: op, Exp: e}}
}

func NewBinopExp(lhs *Exp, op BinaryOp, rhs *Exp) *Exp {
	return &Exp{Binop: &BinopExp{Lhs: lhs, Op: op, Rhs: rhs}}
}

// NewPackExp builds a Pack expression, returning a *DuplicateFieldError if
// any field name repeats.
func NewPackExp(name StructName, fields []PackField) (*Exp, error) {
	if err := checkUniqueFields(fields); err != nil {
		return nil, err
	}
	return &Exp{Pack: &PackExp{Name: name, Fields: fields}}, nil
}

func checkUniqueFields(fields []PackField) error {
	seen := make(map[Field]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return &DuplicateFieldError{Field: f.Name, Span: f.Span}
		}
		seen[f.Name] = true
	}
	return nil
}

// DuplicateFieldError is returned when a Pack or Unpack mapping repeats a
// field key (spec §7 "Duplicate field key").
type DuplicateFieldError struct {
	Field Field
	Span  Span
}

func (e *DuplicateFieldError) Error() string {
	return "duplicate field key: " + string(e.Field)
}
