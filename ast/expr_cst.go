package ast

// This file is the precedence cascade from spec §4.2, outermost (loosest)
// tier first. Each tier is a left-associative chain of the tier below it;
// Fold walks that chain left-to-right, building the canonical Exp tree in
// expr.go one BinopExp at a time so that "a - b - c" folds to "(a - b) - c"
// and a tier never reaches into a looser one.
//
// Expr is the grammar entry point used wherever spec.md says "exp": command
// right-hand sides, assert conditions, call actuals, pack field values, and
// so on.
type Expr = CmpExpr

// CmpExpr is the comparison tier: all six comparison operators share one
// left-associative tier, so "a < b == c" parses as "(a < b) == c".
type CmpExpr struct {
	Span
	Head *OrExpr    `@@`
	Rest []*CmpRest `@@*`
}

type CmpRest struct {
	Span
	Op  string  `@( "==" | "!=" | "<=" | ">=" | "<" | ">" )`
	Exp *OrExpr `@@`
}

func (e *CmpExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// OrExpr is the logical-or tier.
type OrExpr struct {
	Span
	Head *AndExpr   `@@`
	Rest []*OrRest `@@*`
}

type OrRest struct {
	Span
	Op  string   `@"||"`
	Exp *AndExpr `@@`
}

func (e *OrExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// AndExpr is the logical-and tier.
type AndExpr struct {
	Span
	Head *XorExpr   `@@`
	Rest []*AndRest `@@*`
}

type AndRest struct {
	Span
	Op  string   `@"&&"`
	Exp *XorExpr `@@`
}

func (e *AndExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// XorExpr is the bitwise-xor tier.
type XorExpr struct {
	Span
	Head *BOrExpr   `@@`
	Rest []*XorRest `@@*`
}

type XorRest struct {
	Span
	Op  string   `@"^"`
	Exp *BOrExpr `@@`
}

func (e *XorExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// BOrExpr is the bitwise-or tier.
type BOrExpr struct {
	Span
	Head *BAndExpr  `@@`
	Rest []*BOrRest `@@*`
}

type BOrRest struct {
	Span
	Op  string    `@"|"`
	Exp *BAndExpr `@@`
}

func (e *BOrExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// BAndExpr is the bitwise-and tier. The "&" token reaching this rule is
// always binary-and: a prefix "&" is consumed one tier down, inside Unary,
// before this tier ever runs, so the two uses of "&" never compete.
type BAndExpr struct {
	Span
	Head *AddExpr   `@@`
	Rest []*BAndRest `@@*`
}

type BAndRest struct {
	Span
	Op  string   `@"&"`
	Exp *AddExpr `@@`
}

func (e *BAndExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// AddExpr is the additive tier.
type AddExpr struct {
	Span
	Head *MulExpr   `@@`
	Rest []*AddRest `@@*`
}

type AddRest struct {
	Span
	Op  string   `@( "+" | "-" )`
	Exp *MulExpr `@@`
}

func (e *AddExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// MulExpr is the multiplicative tier, the tightest binary tier.
type MulExpr struct {
	Span
	Head *UnaryExpr `@@`
	Rest []*MulRest `@@*`
}

type MulRest struct {
	Span
	Op  string     `@( "*" | "/" | "%" )`
	Exp *UnaryExpr `@@`
}

func (e *MulExpr) Fold() (*Exp, error) { return foldChain(e.Head, e.Rest) }

// rest is the shape every binary tier's repetition element shares: an
// operator plus the next-tier operand it combines with the running total.
type rest interface {
	fold() (*Exp, error)
	op() BinaryOp
}

func (r *CmpRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *CmpRest) op() BinaryOp         { return BinaryOp(r.Op) }
func (r *OrRest) fold() (*Exp, error)   { return r.Exp.Fold() }
func (r *OrRest) op() BinaryOp          { return BinaryOp(r.Op) }
func (r *AndRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *AndRest) op() BinaryOp         { return BinaryOp(r.Op) }
func (r *XorRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *XorRest) op() BinaryOp         { return BinaryOp(r.Op) }
func (r *BOrRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *BOrRest) op() BinaryOp         { return BinaryOp(r.Op) }
func (r *BAndRest) fold() (*Exp, error) { return r.Exp.Fold() }
func (r *BAndRest) op() BinaryOp        { return BinaryOp(r.Op) }
func (r *AddRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *AddRest) op() BinaryOp         { return BinaryOp(r.Op) }
func (r *MulRest) fold() (*Exp, error)  { return r.Exp.Fold() }
func (r *MulRest) op() BinaryOp         { return BinaryOp(r.Op) }

// head is anything a tier's Head field can be: a lower-tier chain that
// folds down to a single Exp.
type head interface {
	Fold() (*Exp, error)
}

// foldChain left-folds a tier's Head against its Rest, one rest element at
// a time, so repeated operators at the same tier associate left.
func foldChain[H head, R rest](h H, rests []R) (*Exp, error) {
	result, err := h.Fold()
	if err != nil {
		return nil, err
	}
	for _, r := range rests {
		rhs, err := r.fold()
		if err != nil {
			return nil, err
		}
		node := NewBinopExp(result, r.op(), rhs)
		node.Span = Span{Pos: result.Pos, EndPos: rhs.EndPos}
		result = node
	}
	return result, nil
}

// UnaryExpr is the unary tier: "!e", "*e", "&e.f" / "&mut e.f" / "&x" /
// "&mut x", and the Term fallthrough.
type UnaryExpr struct {
	Span
	Not    *NotExpr    `( @@`
	Deref  *DerefExpr  `| @@`
	Borrow *BorrowNode `| @@`
	Term   *Term       `| @@ )`
}

func (e *UnaryExpr) Fold() (*Exp, error) {
	switch {
	case e.Not != nil:
		return e.Not.Fold()
	case e.Deref != nil:
		return e.Deref.Fold()
	case e.Borrow != nil:
		return e.Borrow.Fold(), nil
	default:
		return e.Term.Fold()
	}
}

// NotExpr is logical negation, "!e".
type NotExpr struct {
	Span
	Bang string     `@"!"`
	Exp  *UnaryExpr `@@`
}

func (n *NotExpr) Fold() (*Exp, error) {
	inner, err := n.Exp.Fold()
	if err != nil {
		return nil, err
	}
	e := NewUnaryExp(UnaryNot, inner)
	e.Span = Span{Pos: n.Pos, EndPos: n.EndPos}
	return e, nil
}

// DerefExpr is pointer dereference, "*e". In statement position "*lhs =
// rhs" is parsed as the distinct Mutate command (see cmd.go), never as a
// DerefExpr feeding an assignment — the command grammar commits to Mutate
// before an expression-level Dereference would ever be considered there.
type DerefExpr struct {
	Span
	Star string     `@"*"`
	Exp  *UnaryExpr `@@`
}

func (d *DerefExpr) Fold() (*Exp, error) {
	inner, err := d.Exp.Fold()
	if err != nil {
		return nil, err
	}
	e := NewDereferenceExp(inner)
	e.Span = Span{Pos: d.Pos, EndPos: d.EndPos}
	return e, nil
}

// BorrowNode is "&x", "&mut x", "&x.f", or "&mut x.f". The operand is
// always a bare local, optionally followed by one field projection — this
// spec's borrow forms never reach into an arbitrary sub-expression.
type BorrowNode struct {
	Span
	Mut   bool   `"&" ( @"mut" )?`
	Var   Ident  `@@`
	Field *Ident `( "." @@ )?`
}

func (b *BorrowNode) Fold() *Exp {
	var e *Exp
	if b.Field != nil {
		e = NewBorrowExp(b.Mut, b.Var.Var(), b.Field.Field())
	} else {
		e = NewBorrowLocalExp(b.Mut, b.Var.Var())
	}
	e.Span = Span{Pos: b.Pos, EndPos: b.EndPos}
	return e
}

// Term is the innermost production: a literal, move/copy of a local, a
// struct literal, or a fully parenthesized expression.
type Term struct {
	Span
	Value *CopyableVal  `( @@`
	Move  *MoveTerm     `| @@`
	Copy  *CopyTerm     `| @@`
	Pack  *PackTerm     `| @@`
	Paren *Expr         `| "(" @@ ")" )`
}

func (t *Term) Fold() (*Exp, error) {
	switch {
	case t.Value != nil:
		e := NewValueExp(t.Value)
		e.Span = t.Value.Span
		return e, nil
	case t.Move != nil:
		e := NewMoveExp(t.Move.Var.Var())
		e.Span = Span{Pos: t.Move.Pos, EndPos: t.Move.EndPos}
		return e, nil
	case t.Copy != nil:
		e := NewCopyExp(t.Copy.Var.Var())
		e.Span = Span{Pos: t.Copy.Pos, EndPos: t.Copy.EndPos}
		return e, nil
	case t.Pack != nil:
		return t.Pack.Fold()
	default:
		// Parenthesization groups without producing a node of its own;
		// the inner expression's original span is preserved untouched.
		return t.Paren.Fold()
	}
}

// MoveTerm is "move(x)": a capturing move of a local.
type MoveTerm struct {
	Span
	Var Ident `"move" "(" @@ ")"`
}

// CopyTerm is "copy(x)": a capturing copy of a local.
type CopyTerm struct {
	Span
	Var Ident `"copy" "(" @@ ")"`
}

// PackTerm is a struct literal: "Name { f1: e1, f2: e2, ... }", trailing
// comma permitted.
type PackTerm struct {
	Span
	Name   Ident            `@@`
	Fields []*PackFieldNode `"{" ( @@ ( "," @@ )* ","? )? "}"`
}

// PackFieldNode is one "name: value" entry of a struct literal.
type PackFieldNode struct {
	Span
	Name  Ident `@@ ":"`
	Value *Expr `@@`
}

func (p *PackTerm) Fold() (*Exp, error) {
	fields := make([]PackField, 0, len(p.Fields))
	for _, f := range p.Fields {
		val, err := f.Value.Fold()
		if err != nil {
			return nil, err
		}
		fields = append(fields, PackField{
			Span:  f.Span,
			Name:  f.Name.Field(),
			Value: val,
		})
	}
	e, err := NewPackExp(p.Name.StructName(), fields)
	if err != nil {
		return nil, err
	}
	e.Span = Span{Pos: p.Pos, EndPos: p.EndPos}
	return e, nil
}
