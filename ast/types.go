package ast

// Kind distinguishes the two struct kinds the language's later passes
// police: resources (tagged "R#") may not be duplicated or dropped
// arbitrarily, values (tagged "V#") are freely copyable.
type Kind string

const (
	KindResource Kind = "R"
	KindValue    Kind = "V"
)

// PrimitiveType enumerates the four primitive types (spec §4.6).
type PrimitiveType string

const (
	PrimitiveAddress   PrimitiveType = "address"
	PrimitiveU64       PrimitiveType = "u64"
	PrimitiveBool      PrimitiveType = "bool"
	PrimitiveByteArray PrimitiveType = "bytearray"
)

// StructTypeTag identifies a struct by the module that declares it and its
// name within that module.
type StructTypeTag struct {
	Module ModuleName
	Name   StructName
}

// NormalType is a tagged normal type: a struct kind paired with the
// module-qualified struct it names.
type NormalType struct {
	Kind Kind
	Tag  StructTypeTag
}

// ReferenceType wraps a non-reference Type; references-to-references are
// inexpressible because Inner is never itself a ReferenceType.
type ReferenceType struct {
	IsMut bool
	Inner *Type
}

// Type is the resolved, grammar-free semantic type of an annotation or
// expression: exactly one of Primitive, Normal, or Reference is set.
type Type struct {
	Primitive *PrimitiveType
	Normal    *NormalType
	Reference *ReferenceType
}

func PrimitiveTypeOf(p PrimitiveType) *Type { return &Type{Primitive: &p} }

func NormalTypeOf(kind Kind, module ModuleName, name StructName) *Type {
	return &Type{Normal: &NormalType{Kind: kind, Tag: StructTypeTag{Module: module, Name: name}}}
}

func ReferenceTypeOf(isMut bool, inner *Type) *Type {
	return &Type{Reference: &ReferenceType{IsMut: isMut, Inner: inner}}
}

// IsReference reports whether t is a reference type.
func (t *Type) IsReference() bool { return t != nil && t.Reference != nil }

// StructAnnotation is the grammar production for a kind-tagged struct type:
// "R#Mod.Struct" or "V#Mod.Struct".
type StructAnnotation struct {
	Span
	KindTag string `@( "R" | "V" ) "#"`
	Module  Ident  `@@ "."`
	Name    Ident  `@@`
}

func (s *StructAnnotation) resolve() *Type {
	kind := Kind(s.KindTag)
	return NormalTypeOf(kind, s.Module.ModuleName(), s.Name.StructName())
}

// Annotation is the non-reference type grammar (spec §4.6): one of the
// four primitive keywords, or a kind-tagged struct type. Struct fields and
// the keys of a Pack/Unpack are always typed with a plain Annotation,
// never a RefAnnotation.
type Annotation struct {
	Span
	Primitive *string           `( @( "address" | "u64" | "bool" | "bytearray" )`
	Struct    *StructAnnotation `| @@ )`
}

// Resolve converts the parsed annotation into a semantic Type.
func (a *Annotation) Resolve() *Type {
	if a.Struct != nil {
		return a.Struct.resolve()
	}
	p := PrimitiveType(*a.Primitive)
	return PrimitiveTypeOf(p)
}

// RefAnnotation is the grammar production for a possibly-referenced type:
// "T", "&T", or "&mut T". Only parameter and local-variable declarations
// may carry a RefAnnotation; everywhere else a plain Annotation is used,
// which syntactically forbids reference-to-reference types from ever being
// expressible.
type RefAnnotation struct {
	Span
	Ref        bool        `( @"&"`
	Mut        bool        `  ( @"mut" )? )?`
	Annotation *Annotation `@@`
}

// Resolve converts the parsed RefAnnotation into a semantic Type.
func (r *RefAnnotation) Resolve() *Type {
	base := r.Annotation.Resolve()
	if !r.Ref {
		return base
	}
	return ReferenceTypeOf(r.Mut, base)
}

// ReturnTypes is the grammar production for a function's "*"-separated
// return type list, e.g. ": &u64 * bool". An absent clause (nil slice)
// denotes an empty return list.
type ReturnTypes struct {
	Span
	List []*RefAnnotation `( ":" @@ ( "*" @@ )* )?`
}

// Resolve returns the resolved return types in declared order.
func (r *ReturnTypes) Resolve() []*Type {
	if r == nil {
		return nil
	}
	types := make([]*Type, 0, len(r.List))
	for _, ann := range r.List {
		types = append(types, ann.Resolve())
	}
	return types
}
