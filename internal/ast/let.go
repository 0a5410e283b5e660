package ast

import (
	"ember/internal/source"
)

// VarDecl is a top-level "let"/"const" variable declaration. Mutable
// distinguishes "let mut" from plain "let"; IsConst marks "const" (which
// additionally requires the initializer to be a compile-time constant).
type VarDecl struct {
	Name       source.StringID
	Type       TypeID // NoTypeID if the type is to be inferred from Value
	Value      ExprID // NoExprID if there is no initializer
	Mutable    bool
	IsConst    bool
	Visibility Visibility
	Span       source.Span
}

func (i *Items) Var(id ItemID) (*VarDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemVar {
		return nil, false
	}
	return i.Vars.Get(uint32(item.Payload)), true
}

func (i *Items) NewVar(name source.StringID, typeID TypeID, value ExprID, mutable, isConst bool, visibility Visibility, span source.Span) ItemID {
	payload := i.Vars.Allocate(VarDecl{
		Name:       name,
		Type:       typeID,
		Value:      value,
		Mutable:    mutable,
		IsConst:    isConst,
		Visibility: visibility,
		Span:       span,
	})
	return i.new(ItemVar, span, PayloadID(payload))
}
