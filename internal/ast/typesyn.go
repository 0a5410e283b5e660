package ast

import (
	"ember/internal/source"
)

// TypeExprKind is the syntactic shape of a type as written in source, before
// the analyzer resolves it to an interned types.Type.
type TypeExprKind uint8

const (
	// TypeExprPath is a bare name: a primitive, or a struct/enum identifier.
	TypeExprPath TypeExprKind = iota
	// TypeExprPointer is "&T" or "&const T".
	TypeExprPointer
	// TypeExprArray is "[N]T".
	TypeExprArray
	// TypeExprSlice is "[]T" or "[]const T".
	TypeExprSlice
	// TypeExprOptional is "?T".
	TypeExprOptional
	// TypeExprErrorUnion is "!T".
	TypeExprErrorUnion
	// TypeExprFn is "fn(Params) Ret".
	TypeExprFn
)

type TypeExpr struct {
	Kind    TypeExprKind
	Span    source.Span
	Payload PayloadID
}

// TypeExprPathData names a primitive or a user-defined struct/enum.
type TypeExprPathData struct {
	Name source.StringID
}

// TypeExprPointerData is the child and const-ness of a pointer type.
type TypeExprPointerData struct {
	Child TypeID
	Const bool
}

// TypeExprArrayData is the child and compile-time length expression of an
// array type; Length is resolved to a constant by the analyzer.
type TypeExprArrayData struct {
	Child  TypeID
	Length ExprID
}

type TypeExprSliceData struct {
	Child TypeID
	Const bool
}

type TypeExprOptionalData struct {
	Child TypeID
}

type TypeExprErrorUnionData struct {
	Child TypeID
}

type TypeExprFnData struct {
	Params []TypeID
	Ret    TypeID
}

type TypeExprs struct {
	Arena       *Arena[TypeExpr]
	Paths       *Arena[TypeExprPathData]
	Pointers    *Arena[TypeExprPointerData]
	Arrays      *Arena[TypeExprArrayData]
	Slices      *Arena[TypeExprSliceData]
	Optionals   *Arena[TypeExprOptionalData]
	ErrorUnions *Arena[TypeExprErrorUnionData]
	Fns         *Arena[TypeExprFnData]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &TypeExprs{
		Arena:       NewArena[TypeExpr](capHint),
		Paths:       NewArena[TypeExprPathData](capHint),
		Pointers:    NewArena[TypeExprPointerData](capHint),
		Arrays:      NewArena[TypeExprArrayData](capHint),
		Slices:      NewArena[TypeExprSliceData](capHint),
		Optionals:   NewArena[TypeExprOptionalData](capHint),
		ErrorUnions: NewArena[TypeExprErrorUnionData](capHint),
		Fns:         NewArena[TypeExprFnData](capHint),
	}
}

func (t *TypeExprs) new(kind TypeExprKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: payload}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) NewPath(span source.Span, name source.StringID) TypeID {
	p := t.Paths.Allocate(TypeExprPathData{Name: name})
	return t.new(TypeExprPath, span, PayloadID(p))
}

func (t *TypeExprs) Path(id TypeID) (*TypeExprPathData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprPath {
		return nil, false
	}
	return t.Paths.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewPointer(span source.Span, child TypeID, isConst bool) TypeID {
	p := t.Pointers.Allocate(TypeExprPointerData{Child: child, Const: isConst})
	return t.new(TypeExprPointer, span, PayloadID(p))
}

func (t *TypeExprs) Pointer(id TypeID) (*TypeExprPointerData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprPointer {
		return nil, false
	}
	return t.Pointers.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewArray(span source.Span, child TypeID, length ExprID) TypeID {
	p := t.Arrays.Allocate(TypeExprArrayData{Child: child, Length: length})
	return t.new(TypeExprArray, span, PayloadID(p))
}

func (t *TypeExprs) Array(id TypeID) (*TypeExprArrayData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewSlice(span source.Span, child TypeID, isConst bool) TypeID {
	p := t.Slices.Allocate(TypeExprSliceData{Child: child, Const: isConst})
	return t.new(TypeExprSlice, span, PayloadID(p))
}

func (t *TypeExprs) Slice(id TypeID) (*TypeExprSliceData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprSlice {
		return nil, false
	}
	return t.Slices.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewOptional(span source.Span, child TypeID) TypeID {
	p := t.Optionals.Allocate(TypeExprOptionalData{Child: child})
	return t.new(TypeExprOptional, span, PayloadID(p))
}

func (t *TypeExprs) Optional(id TypeID) (*TypeExprOptionalData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprOptional {
		return nil, false
	}
	return t.Optionals.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewErrorUnion(span source.Span, child TypeID) TypeID {
	p := t.ErrorUnions.Allocate(TypeExprErrorUnionData{Child: child})
	return t.new(TypeExprErrorUnion, span, PayloadID(p))
}

func (t *TypeExprs) ErrorUnion(id TypeID) (*TypeExprErrorUnionData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprErrorUnion {
		return nil, false
	}
	return t.ErrorUnions.Get(uint32(n.Payload)), true
}

func (t *TypeExprs) NewFn(span source.Span, params []TypeID, ret TypeID) TypeID {
	p := t.Fns.Allocate(TypeExprFnData{Params: append([]TypeID(nil), params...), Ret: ret})
	return t.new(TypeExprFn, span, PayloadID(p))
}

func (t *TypeExprs) Fn(id TypeID) (*TypeExprFnData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeExprFn {
		return nil, false
	}
	return t.Fns.Get(uint32(n.Payload)), true
}
