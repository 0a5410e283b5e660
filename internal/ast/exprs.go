package ast

import (
	"ember/internal/source"
)

// Exprs manages allocation of expressions, one arena per node kind.
type Exprs struct {
	Arena           *Arena[Expr]
	Idents          *Arena[ExprIdentData]
	Literals        *Arena[ExprLiteralData]
	Binaries        *Arena[ExprBinaryData]
	Unaries         *Arena[ExprUnaryData]
	Casts           *Arena[ExprCastData]
	Calls           *Arena[ExprCallData]
	methodCallArena *Arena[ExprMethodCallData]
	Builtins        *Arena[ExprBuiltinCallData]
	Indices         *Arena[ExprIndexData]
	Slices          *Arena[ExprSliceData]
	Members         *Arena[ExprMemberData]
	Structs         *Arena[ExprStructLitData]
	Arrays          *Arena[ExprArrayLitData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using
// capHint as the initial capacity (or a default of 1<<8 if zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Idents:          NewArena[ExprIdentData](capHint),
		Literals:        NewArena[ExprLiteralData](capHint),
		Binaries:        NewArena[ExprBinaryData](capHint),
		Unaries:         NewArena[ExprUnaryData](capHint),
		Casts:           NewArena[ExprCastData](capHint),
		Calls:           NewArena[ExprCallData](capHint),
		methodCallArena: NewArena[ExprMethodCallData](capHint),
		Builtins:        NewArena[ExprBuiltinCallData](capHint),
		Indices:         NewArena[ExprIndexData](capHint),
		Slices:          NewArena[ExprSliceData](capHint),
		Members:         NewArena[ExprMemberData](capHint),
		Structs:         NewArena[ExprStructLitData](capHint),
		Arrays:          NewArena[ExprArrayLitData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, target ExprID, typ TypeID) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Target: target, Type: typ})
	return e.new(ExprCast, span, PayloadID(payload))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []CallArg) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target: target,
		Args:   append([]CallArg(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMethodCall(span source.Span, receiver ExprID, method source.StringID, args []CallArg) ExprID {
	payload := e.methodCallArena.Allocate(ExprMethodCallData{
		Receiver: receiver,
		Method:   method,
		Args:     append([]CallArg(nil), args...),
	})
	return e.new(ExprMethodCall, span, PayloadID(payload))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMethodCall {
		return nil, false
	}
	return e.methodCallArena.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBuiltinCall(span source.Span, builtin BuiltinKind, typeArgs []TypeID, args []ExprID) ExprID {
	payload := e.Builtins.Allocate(ExprBuiltinCallData{
		Builtin:  builtin,
		TypeArgs: append([]TypeID(nil), typeArgs...),
		Args:     append([]ExprID(nil), args...),
	})
	return e.new(ExprBuiltinCall, span, PayloadID(payload))
}

func (e *Exprs) BuiltinCall(id ExprID) (*ExprBuiltinCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBuiltinCall {
		return nil, false
	}
	return e.Builtins.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSlice(span source.Span, target, start, end ExprID, isConst bool) ExprID {
	payload := e.Slices.Allocate(ExprSliceData{Target: target, Start: start, End: end, Const: isConst})
	return e.new(ExprSlice, span, PayloadID(payload))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, field source.StringID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Field: field})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStructLit(span source.Span, typ TypeID, fields []StructLitField) ExprID {
	payload := e.Structs.Allocate(ExprStructLitData{
		Type:   typ,
		Fields: append([]StructLitField(nil), fields...),
	})
	return e.new(ExprStructLit, span, PayloadID(payload))
}

func (e *Exprs) StructLit(id ExprID) (*ExprStructLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStructLit {
		return nil, false
	}
	return e.Structs.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewArrayLit(span source.Span, elements []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayLitData{Elements: append([]ExprID(nil), elements...)})
	return e.new(ExprArrayLit, span, PayloadID(payload))
}

func (e *Exprs) ArrayLit(id ExprID) (*ExprArrayLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrayLit {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}
