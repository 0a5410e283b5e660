package types

import "fortio.org/safecast"

// NewStruct reserves a fresh struct type with no fields yet; callers fill
// Fields in with SetStructFields once field types have been resolved,
// because field resolution may re-enter this very struct (the cycle
// guard below) before it knows its own TypeID.
func (in *Interner) NewStruct(name string) TypeID {
	idx, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic("types: struct table overflow")
	}
	in.structs = append(in.structs, StructInfo{Name: name})
	return in.internNominal(Type{Kind: KindStruct, Payload: idx})
}

// StructInfo returns the side-table entry for a KindStruct type.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindStruct {
		return nil, false
	}
	return &in.structs[t.Payload], true
}

// SetStructFields records a struct's fields once resolved.
func (in *Interner) SetStructFields(id TypeID, fields []Field) {
	if info, ok := in.StructInfo(id); ok {
		info.Fields = fields
	}
}

// BeginEmbed sets the embedded_in_current flag, the infinite-size cycle
// guard, before the struct's field types are resolved. ok is false, and no flag
// is set, if id's flag was already set — the caller has re-entered a
// struct that is still being resolved.
func (in *Interner) BeginEmbed(id TypeID) (ok bool) {
	info, found := in.StructInfo(id)
	if !found {
		if einfo, ok2 := in.EnumInfo(id); ok2 {
			if einfo.embeddedInCurrent {
				return false
			}
			einfo.embeddedInCurrent = true
			return true
		}
		return true
	}
	if info.embeddedInCurrent {
		return false
	}
	info.embeddedInCurrent = true
	return true
}

// EndEmbed clears the embedded_in_current flag after field resolution
// returns, whether it succeeded or not.
func (in *Interner) EndEmbed(id TypeID) {
	if info, ok := in.StructInfo(id); ok {
		info.embeddedInCurrent = false
		return
	}
	if info, ok := in.EnumInfo(id); ok {
		info.embeddedInCurrent = false
	}
}

// ReportInfiniteOnce reports true the first time it is called for id, and
// false on every subsequent call, implementing the single-diagnostic
// guard (reported_infinite_err) against repeated infinite-size diagnostics.
func (in *Interner) ReportInfiniteOnce(id TypeID) bool {
	if info, ok := in.StructInfo(id); ok {
		if info.reportedInfiniteErr {
			return false
		}
		info.reportedInfiniteErr = true
		info.Invalid = true
		return true
	}
	if info, ok := in.EnumInfo(id); ok {
		if info.reportedInfiniteErr {
			return false
		}
		info.reportedInfiniteErr = true
		info.Invalid = true
		return true
	}
	return false
}

// IsInvalid reports whether a struct/enum type was marked invalid by the
// infinite-size cycle guard.
func (in *Interner) IsInvalid(id TypeID) bool {
	if info, ok := in.StructInfo(id); ok {
		return info.Invalid
	}
	if info, ok := in.EnumInfo(id); ok {
		return info.Invalid
	}
	return id == NoTypeID
}

// NewEnum reserves a fresh enum type; see NewStruct for the two-phase
// reserve/fill pattern and why it exists.
func (in *Interner) NewEnum(name string) TypeID {
	idx, err := safecast.Conv[uint32](len(in.enums))
	if err != nil {
		panic("types: enum table overflow")
	}
	in.enums = append(in.enums, EnumInfo{Name: name})
	return in.internNominal(Type{Kind: KindEnum, Payload: idx})
}

// EnumInfo returns the side-table entry for a KindEnum type.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum {
		return nil, false
	}
	return &in.enums[t.Payload], true
}

// SetEnumVariants records an enum's variants and its tag type
// (smallest_uint_for(len(variants))) once resolved.
func (in *Interner) SetEnumVariants(id TypeID, variants []Variant) {
	info, ok := in.EnumInfo(id)
	if !ok {
		return
	}
	info.Variants = variants
	info.TagType = in.SmallestUintFor(uint64(len(variants)))
}

// NewFunction interns a function-type descriptor (used for function
// pointers and the declared type of a function prototype/definition).
func (in *Interner) NewFunction(name string, params []TypeID, variadic bool, ret TypeID) TypeID {
	idx, err := safecast.Conv[uint32](len(in.funcs))
	if err != nil {
		panic("types: function table overflow")
	}
	in.funcs = append(in.funcs, FnInfo{
		Name:     name,
		Params:   append([]TypeID(nil), params...),
		Variadic: variadic,
		Return:   ret,
	})
	return in.internNominal(Type{Kind: KindFunction, Payload: idx})
}

// FnInfo returns the side-table entry for a KindFunction type.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction {
		return nil, false
	}
	return &in.funcs[t.Payload], true
}
