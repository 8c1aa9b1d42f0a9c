package ast

// Cmd is the canonical command tree (spec §3): exactly one branch
// populated. CmdNode (below) is the grammar entry point; its Fold method
// produces this tree.
type Cmd struct {
	Span
	Assign   *AssignExp
	Mutate   *MutateExp
	Call     *CallExp
	Unpack   *UnpackExp
	Assert   *AssertExp
	Return   *ReturnExp
	Continue bool
	Break    bool
}

// AssignExp is "var = exp".
type AssignExp struct {
	Var Var
	Exp *Exp
}

// MutateExp is "*lhs = rhs"; Lhs is always itself a Dereference node, per
// S3: "*move(p) = 0" yields Mutate(Dereference(Move(p)), Value(U64(0))).
type MutateExp struct {
	Lhs *Exp
	Rhs *Exp
}

// CallExp is a function call, in either binding or bare-statement form. An
// empty ReturnBindings denotes a statement-position call (spec §9 Open
// Questions: the grammar prefers one production for one-or-more bindings,
// leaving the zero-binding statement-call shape to this same type rather
// than a separate production).
type CallExp struct {
	ReturnBindings []Var
	Call           FunctionCall
	Actuals        []*Exp
}

// UnpackExp is "StructName { bindings } = exp".
type UnpackExp struct {
	Name     StructName
	Bindings []UnpackBinding
	Exp      *Exp
}

// UnpackBinding is one "field: var" entry, or the bare "field" shorthand
// which binds a local of the same name (spec §4.3 item 6; S5).
type UnpackBinding struct {
	Span
	Field Field
	Var   Var
}

// AssertExp is "assert(cond, err)".
type AssertExp struct {
	Cond *Exp
	Err  *Exp
}

// ReturnExp is "return e1, e2, ...". An empty Values list is permitted.
type ReturnExp struct {
	Values []*Exp
}

// CmdNode is the grammar entry point for a single command (no trailing
// ";"), also the production used by the parse_command entry point.
//
// Alternatives are ordered so each can be told apart from the others by
// its first distinguishing token without needing unbounded lookahead:
// Mutate starts with "*"; Unpack's second token is "{" where Assign and a
// binding Call have "," or "=" and a bare Call has ".", "(" or "<"; Call's
// callee position can never parse as a bare
// expression, so trying it before Assign and letting it fail through is
// sufficient to fall back correctly.
type CmdNode struct {
	Span
	Mutate   *MutateCmd  `( @@`
	Unpack   *UnpackCmd  `| @@`
	Call     *CallCmd    `| @@`
	Assign   *AssignCmd  `| @@`
	Assert   *AssertCmd  `| @@`
	Return   *ReturnCmd  `| @@`
	Continue *string     `| @"continue"`
	Break    *string     `| @"break" )`
}

// Fold converts the parsed command into the canonical Cmd tree.
func (c *CmdNode) Fold() (*Cmd, error) {
	cmd := &Cmd{Span: c.Span}
	switch {
	case c.Mutate != nil:
		m, err := c.Mutate.fold()
		if err != nil {
			return nil, err
		}
		cmd.Mutate = m
	case c.Unpack != nil:
		u, err := c.Unpack.fold()
		if err != nil {
			return nil, err
		}
		cmd.Unpack = u
	case c.Call != nil:
		call, err := c.Call.fold()
		if err != nil {
			return nil, err
		}
		cmd.Call = call
	case c.Assign != nil:
		a, err := c.Assign.fold()
		if err != nil {
			return nil, err
		}
		cmd.Assign = a
	case c.Assert != nil:
		a, err := c.Assert.fold()
		if err != nil {
			return nil, err
		}
		cmd.Assert = a
	case c.Return != nil:
		r, err := c.Return.fold()
		if err != nil {
			return nil, err
		}
		cmd.Return = r
	case c.Continue != nil:
		cmd.Continue = true
	default:
		cmd.Break = true
	}
	return cmd, nil
}

// MutateCmd is "*operand = rhs".
type MutateCmd struct {
	Span
	Operand *UnaryExpr `"*" @@ "="`
	Rhs     *Expr      `@@`
}

func (m *MutateCmd) fold() (*MutateExp, error) {
	operand, err := m.Operand.Fold()
	if err != nil {
		return nil, err
	}
	lhs := NewDereferenceExp(operand)
	lhs.Span = Span{Pos: m.Pos, EndPos: operand.EndPos}
	rhs, err := m.Rhs.Fold()
	if err != nil {
		return nil, err
	}
	return &MutateExp{Lhs: lhs, Rhs: rhs}, nil
}

// UnpackCmd is "StructName { bindings } = exp".
type UnpackCmd struct {
	Span
	Name     Ident                `@@`
	Bindings []*UnpackBindingNode `"{" ( @@ ( "," @@ )* ","? )? "}" "="`
	Exp      *Expr                `@@`
}

// UnpackBindingNode is the grammar production for one "field: var" entry,
// or the bare "field" shorthand.
type UnpackBindingNode struct {
	Span
	Field Ident  `@@`
	Var   *Ident `( ":" @@ )?`
}

func (u *UnpackCmd) fold() (*UnpackExp, error) {
	bindings := make([]UnpackBinding, 0, len(u.Bindings))
	seen := make(map[Field]bool, len(u.Bindings))
	for _, b := range u.Bindings {
		field := b.Field.Field()
		if seen[field] {
			return nil, &DuplicateFieldError{Field: field, Span: b.Span}
		}
		seen[field] = true
		var v Var
		if b.Var != nil {
			v = b.Var.Var()
		} else {
			v = Var(field)
		}
		bindings = append(bindings, UnpackBinding{Span: b.Span, Field: field, Var: v})
	}
	exp, err := u.Exp.Fold()
	if err != nil {
		return nil, err
	}
	return &UnpackExp{Name: u.Name.StructName(), Bindings: bindings, Exp: exp}, nil
}

// CallCmd covers both binding forms ("var = call(...)" / "var1, var2 =
// call(...)") and the bare statement-call form, collapsing what the
// source grammar splits into two productions into the single one-or-more
// production the spec's Open Questions section recommends; a nil Bindings
// slice denotes the statement-call (zero-binding) form.
type CallCmd struct {
	Span
	Bindings []*Ident         `( @@ ( "," @@ )* "=" )?`
	Callee   *FunctionCallNode `@@`
	Actuals  []*Expr          `"(" ( @@ ( "," @@ )* ","? )? ")"`
}

func (c *CallCmd) fold() (*CallExp, error) {
	bindings := make([]Var, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		bindings = append(bindings, b.Var())
	}
	actuals := make([]*Exp, 0, len(c.Actuals))
	for _, a := range c.Actuals {
		v, err := a.Fold()
		if err != nil {
			return nil, err
		}
		actuals = append(actuals, v)
	}
	return &CallExp{
		ReturnBindings: bindings,
		Call:           c.Callee.Resolve(),
		Actuals:        actuals,
	}, nil
}

// AssignCmd is "var = exp".
type AssignCmd struct {
	Span
	Var Ident `@@ "="`
	Exp *Expr `@@`
}

func (a *AssignCmd) fold() (*AssignExp, error) {
	exp, err := a.Exp.Fold()
	if err != nil {
		return nil, err
	}
	return &AssignExp{Var: a.Var.Var(), Exp: exp}, nil
}

// AssertCmd is "assert(cond, err)".
type AssertCmd struct {
	Span
	Cond *Expr `"assert" "(" @@ ","`
	Err  *Expr `@@ ")"`
}

func (a *AssertCmd) fold() (*AssertExp, error) {
	cond, err := a.Cond.Fold()
	if err != nil {
		return nil, err
	}
	errExp, err := a.Err.Fold()
	if err != nil {
		return nil, err
	}
	return &AssertExp{Cond: cond, Err: errExp}, nil
}

// ReturnCmd is "return e1, e2, ...". An absent list is permitted.
type ReturnCmd struct {
	Span
	Values []*Expr `"return" ( @@ ( "," @@ )* )?`
}

func (r *ReturnCmd) fold() (*ReturnExp, error) {
	values := make([]*Exp, 0, len(r.Values))
	for _, v := range r.Values {
		folded, err := v.Fold()
		if err != nil {
			return nil, err
		}
		values = append(values, folded)
	}
	return &ReturnExp{Values: values}, nil
}
