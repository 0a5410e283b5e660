package types

// Type is the compact descriptor every TypeID resolves to. Pointer,
// array, slice, optional and error-union descriptors carry their shape
// inline (Elem/Count/Width/Const); struct, enum and function descriptors
// are nominal and carry a Payload index into a side table instead,
// because two structurally-identical struct declarations are distinct
// types.
type Type struct {
	Kind    Kind
	Elem    TypeID // pointer/array/slice/optional/error-union child
	Count   uint32 // array length
	Width   Width  // int/float width
	Const   bool   // pointer/slice "const" qualifier
	Payload uint32 // index into structs/enums/funcs, by Kind
}

// Field is one member of a struct, in declaration order.
type Field struct {
	Name string
	Type TypeID
}

// StructInfo is the side-table payload for a KindStruct type. Structs
// are created once per declaration and never structurally interned.
type StructInfo struct {
	Name               string
	Fields             []Field
	Invalid            bool
	embeddedInCurrent  bool
	reportedInfiniteErr bool
}

// Variant is one member of an enum. Payload is NoTypeID for a tag with
// no associated value.
type Variant struct {
	Name    string
	Payload TypeID
}

// EnumInfo is the side-table payload for a KindEnum type.
type EnumInfo struct {
	Name                string
	Variants            []Variant
	TagType             TypeID // smallest uint that can number the variants
	Invalid             bool
	embeddedInCurrent   bool
	reportedInfiniteErr bool
}

// FnInfo is the side-table payload for a KindFunction type.
type FnInfo struct {
	Name     string
	Params   []TypeID
	Variadic bool
	Return   TypeID
}
