package ast

import "ember/internal/source"

// StructDecl names a struct type and the range of its fields in the shared
// field arena.
type StructDecl struct {
	Name        source.StringID
	Visibility  Visibility
	FieldsStart TypeFieldID
	FieldsCount uint32
	Span        source.Span
}

type StructField struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

func (i *Items) allocateFields(fields []StructField) (start TypeFieldID, count uint32) {
	if len(fields) == 0 {
		return NoTypeFieldID, 0
	}
	for idx, f := range fields {
		id := TypeFieldID(i.fieldArena.Allocate(f))
		if idx == 0 {
			start = id
		}
	}
	return start, uint32(len(fields))
}

func (i *Items) Fields(start TypeFieldID, count uint32) []StructField {
	if count == 0 || !start.IsValid() {
		return nil
	}
	out := make([]StructField, 0, count)
	base := uint32(start)
	for off := range count {
		f := i.fieldArena.Get(base + off)
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func (i *Items) Struct(id ItemID) (*StructDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) NewStruct(name source.StringID, visibility Visibility, fields []StructField, span source.Span) ItemID {
	start, count := i.allocateFields(fields)
	payload := i.Structs.Allocate(StructDecl{
		Name:        name,
		Visibility:  visibility,
		FieldsStart: start,
		FieldsCount: count,
		Span:        span,
	})
	return i.new(ItemStruct, span, PayloadID(payload))
}

// EnumDecl names an enum type and the range of its variants.
type EnumDecl struct {
	Name          source.StringID
	Visibility    Visibility
	VariantsStart EnumVariantID
	VariantsCount uint32
	Span          source.Span
}

// EnumVariant is one variant; Payload is NoTypeID for a payload-less tag.
type EnumVariant struct {
	Name    source.StringID
	Payload TypeID
	Span    source.Span
}

func (i *Items) allocateVariants(variants []EnumVariant) (start EnumVariantID, count uint32) {
	if len(variants) == 0 {
		return NoEnumVariantID, 0
	}
	for idx, v := range variants {
		id := EnumVariantID(i.variantArena.Allocate(v))
		if idx == 0 {
			start = id
		}
	}
	return start, uint32(len(variants))
}

func (i *Items) Variants(start EnumVariantID, count uint32) []EnumVariant {
	if count == 0 || !start.IsValid() {
		return nil
	}
	out := make([]EnumVariant, 0, count)
	base := uint32(start)
	for off := range count {
		v := i.variantArena.Get(base + off)
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func (i *Items) Enum(id ItemID) (*EnumDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

func (i *Items) NewEnum(name source.StringID, visibility Visibility, variants []EnumVariant, span source.Span) ItemID {
	start, count := i.allocateVariants(variants)
	payload := i.Enums.Allocate(EnumDecl{
		Name:          name,
		Visibility:    visibility,
		VariantsStart: start,
		VariantsCount: count,
		Span:          span,
	})
	return i.new(ItemEnum, span, PayloadID(payload))
}
