package ast

import (
	"ember/internal/source"
)

// ItemKind enumerates the kinds of top-level declaration the language
// supports.
type ItemKind uint8

const (
	ItemFnProto ItemKind = iota
	ItemFnDef
	ItemStruct
	ItemEnum
	ItemVar
	ItemErrorDecl
	ItemImport
	ItemCImport
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena        *Arena[Item]
	FnProtos     *Arena[FnProto]
	FnDefs       *Arena[FnDef]
	FnParams     *Arena[FnParam]
	Structs      *Arena[StructDecl]
	fieldArena   *Arena[StructField]
	Enums        *Arena[EnumDecl]
	variantArena *Arena[EnumVariant]
	Vars         *Arena[VarDecl]
	ErrorDecls   *Arena[ErrorDecl]
	Imports      *Arena[ImportDecl]
	CImports     *Arena[CImportDecl]
}

// NewItems creates an Items with per-kind arenas sized by capHint (or a
// default if zero).
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:        NewArena[Item](capHint),
		FnProtos:     NewArena[FnProto](capHint),
		FnDefs:       NewArena[FnDef](capHint),
		FnParams:     NewArena[FnParam](capHint),
		Structs:      NewArena[StructDecl](capHint),
		fieldArena:   NewArena[StructField](capHint),
		Enums:        NewArena[EnumDecl](capHint),
		variantArena: NewArena[EnumVariant](capHint),
		Vars:         NewArena[VarDecl](capHint),
		ErrorDecls:   NewArena[ErrorDecl](capHint),
		Imports:      NewArena[ImportDecl](capHint),
		CImports:     NewArena[CImportDecl](capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}
