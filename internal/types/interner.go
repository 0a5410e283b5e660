package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins holds the TypeIDs of the primitive types every registry seeds
// itself with, so callers never have to re-intern them.
type Builtins struct {
	Void        TypeID
	Bool        TypeID
	Unreachable TypeID
	I8, I16, I32, I64, Isize TypeID
	U8, U16, U32, U64, Usize TypeID
	F32, F64    TypeID
	Meta        TypeID
}

// Interner is the type registry: it hands out stable TypeIDs
// for structural descriptors, constructs derived types on demand, and
// owns the nominal struct/enum/function side tables.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	structs []StructInfo
	enums   []EnumInfo
	funcs   []FnInfo
}

type typeKey struct {
	Kind  Kind
	Elem  TypeID
	Count uint32
	Width Width
	Const bool
}

// NewInterner constructs a registry seeded with every primitive type.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.structs = append(in.structs, StructInfo{}) // index 0 unused, mirrors NoTypeID
	in.enums = append(in.enums, EnumInfo{})
	in.funcs = append(in.funcs, FnInfo{})

	in.builtins.Void = in.intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.intern(Type{Kind: KindBool})
	in.builtins.Unreachable = in.intern(Type{Kind: KindUnreachable})
	in.builtins.Meta = in.intern(Type{Kind: KindMeta})
	in.builtins.I8 = in.IntType(true, Width8)
	in.builtins.I16 = in.IntType(true, Width16)
	in.builtins.I32 = in.IntType(true, Width32)
	in.builtins.I64 = in.IntType(true, Width64)
	in.builtins.Isize = in.IntType(true, WidthPtr)
	in.builtins.U8 = in.IntType(false, Width8)
	in.builtins.U16 = in.IntType(false, Width16)
	in.builtins.U32 = in.IntType(false, Width32)
	in.builtins.U64 = in.IntType(false, Width64)
	in.builtins.Usize = in.IntType(false, WidthPtr)
	in.builtins.F32 = in.intern(Type{Kind: KindFloat, Width: Width32})
	in.builtins.F64 = in.intern(Type{Kind: KindFloat, Width: Width64})
	return in
}

// Builtins returns the TypeIDs of the seeded primitive types.
func (in *Interner) Builtins() Builtins { return in.builtins }

// IntType returns the interned signed-or-unsigned integer type of the
// given width. Width must be one of {8,16,32,64,WidthPtr}.
func (in *Interner) IntType(signed bool, width Width) TypeID {
	kind := KindUint
	if signed {
		kind = KindInt
	}
	return in.intern(Type{Kind: kind, Width: width})
}

func (in *Interner) intern(t Type) TypeID {
	key := typeKey{Kind: t.Kind, Elem: t.Elem, Count: t.Count, Width: t.Width, Const: t.Const}
	if id, ok := in.index[key]; ok {
		return id
	}
	id := in.appendRaw(t)
	in.index[key] = id
	return id
}

// internNominal always creates a fresh TypeID and never consults or
// updates the structural index: struct/enum/function types are nominal
// (one declaration, one identity) even when two declarations happen to
// share every Type field, so they must never collide in typeKey.
func (in *Interner) internNominal(t Type) TypeID {
	return in.appendRaw(t)
}

func (in *Interner) appendRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: registry overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid id; reserved for call sites that have
// already established id came from this registry.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// KindOf reports id's Kind, or KindInvalid for NoTypeID / an unknown id.
func (in *Interner) KindOf(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}
