package sema

import (
	"math/big"
	"testing"

	"ember/internal/types"
)

func TestClassifyExplicitCastNoop(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)

	kind, ok := ClassifyExplicitCast(reg, 64, i32, i32, Unknown)
	if !ok || kind != CastNoop {
		t.Fatalf("cast from a type to itself must classify as noop, got %v, %v", kind, ok)
	}
}

func TestClassifyExplicitCastIntWidenOrShorten(t *testing.T) {
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)
	i32 := reg.IntType(true, types.Width32)

	kind, ok := ClassifyExplicitCast(reg, 64, i32, i8, Unknown)
	if !ok || kind != CastIntWidenOrShorten {
		t.Fatalf("i32 -> i8 should classify as CastIntWidenOrShorten, got %v, %v", kind, ok)
	}
	kind, ok = ClassifyExplicitCast(reg, 64, i8, i32, Unknown)
	if !ok || kind != CastIntWidenOrShorten {
		t.Fatalf("i8 -> i32 should classify as CastIntWidenOrShorten, got %v, %v", kind, ok)
	}
}

func TestClassifyExplicitCastPtrToIntAndBack(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	usize := reg.IntType(false, types.WidthPtr)
	ptr := reg.PointerTo(i32, false)

	kind, ok := ClassifyExplicitCast(reg, 64, ptr, usize, Unknown)
	if !ok || kind != CastPtrToInt {
		t.Fatalf("&i32 -> usize should classify as CastPtrToInt, got %v, %v", kind, ok)
	}
	kind, ok = ClassifyExplicitCast(reg, 64, usize, ptr, Unknown)
	if !ok || kind != CastIntToPtr {
		t.Fatalf("usize -> &i32 should classify as CastIntToPtr, got %v, %v", kind, ok)
	}
}

func TestClassifyExplicitCastArrayToSlice(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	arr := reg.ArrayOf(i32, 4)
	slice := reg.SliceOf(i32, false)

	kind, ok := ClassifyExplicitCast(reg, 64, arr, slice, Unknown)
	if !ok || kind != CastArrayToSlice {
		t.Fatalf("[4]i32 -> []i32 should classify as CastArrayToSlice, got %v, %v", kind, ok)
	}
}

func TestClassifyExplicitCastLiteralFitsOther(t *testing.T) {
	reg := types.NewInterner()
	lit := reg.NumericLiteralInt()
	i8 := reg.IntType(true, types.Width8)

	kind, ok := ClassifyExplicitCast(reg, 64, lit, i8, IntValue(big.NewInt(10)))
	if !ok || kind != CastLiteralFitsOther {
		t.Fatalf("a literal that fits should classify as CastLiteralFitsOther, got %v, %v", kind, ok)
	}

	if _, ok := ClassifyExplicitCast(reg, 64, lit, i8, IntValue(big.NewInt(1000))); ok {
		t.Fatalf("a literal that does not fit i8 must not classify as any legal cast")
	}
}

func TestClassifyExplicitCastStructsAreInvalid(t *testing.T) {
	reg := types.NewInterner()
	s1 := reg.NewStruct("A")
	s2 := reg.NewStruct("B")

	if _, ok := ClassifyExplicitCast(reg, 64, s1, s2, Unknown); ok {
		t.Fatalf("casting between two unrelated structs must be invalid")
	}
}

func TestClassifyExplicitCastInvalidTypeAbsorbs(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool

	kind, ok := ClassifyExplicitCast(reg, 64, types.NoTypeID, boolT, Unknown)
	if !ok {
		t.Fatalf("a cast involving an already-invalid type must silently absorb, not report its own error")
	}
	if kind != CastInvalid {
		t.Fatalf("the absorbed cast kind should be CastInvalid, got %v", kind)
	}
}

func TestLegalImplicitCoercionIntWidening(t *testing.T) {
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)
	i32 := reg.IntType(true, types.Width32)

	kind, ok := LegalImplicitCoercion(reg, 64, i8, i32, Unknown)
	if !ok || kind != CastIntWidenOrShorten {
		t.Fatalf("implicit i8 -> i32 should be legal widening, got %v, %v", kind, ok)
	}
}

func TestLegalImplicitCoercionIntNarrowingIllegal(t *testing.T) {
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)
	i32 := reg.IntType(true, types.Width32)

	if _, ok := LegalImplicitCoercion(reg, 64, i32, i8, Unknown); ok {
		t.Fatalf("implicit narrowing from i32 to i8 must require an explicit cast")
	}
}

func TestLegalImplicitCoercionNonConstToConstPointer(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	mut := reg.PointerTo(i32, false)
	cst := reg.PointerTo(i32, true)

	kind, ok := LegalImplicitCoercion(reg, 64, mut, cst, Unknown)
	if !ok || kind != CastPtrToPtr {
		t.Fatalf("&i32 -> &const i32 should be a legal implicit coercion, got %v, %v", kind, ok)
	}

	if _, ok := LegalImplicitCoercion(reg, 64, cst, mut, Unknown); ok {
		t.Fatalf("&const i32 -> &i32 must not be a legal implicit coercion")
	}
}

func TestLegalImplicitCoercionNonConstToConstNestedPointer(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	mutInner := reg.PointerTo(i32, false)
	cstInner := reg.PointerTo(i32, true)
	mutOuter := reg.PointerTo(mutInner, false)
	cstOuter := reg.PointerTo(cstInner, false)

	kind, ok := LegalImplicitCoercion(reg, 64, mutOuter, cstOuter, Unknown)
	if !ok || kind != CastPtrToPtr {
		t.Fatalf("&&i32 -> &&const i32 should be a legal implicit coercion, got %v, %v", kind, ok)
	}

	if _, ok := LegalImplicitCoercion(reg, 64, cstOuter, mutOuter, Unknown); ok {
		t.Fatalf("&&const i32 -> &&i32 must not be a legal implicit coercion")
	}
}

func TestLegalImplicitCoercionNonConstToConstSlice(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	mut := reg.SliceOf(i32, false)
	cst := reg.SliceOf(i32, true)
	mutOfSlice := reg.PointerTo(mut, false)
	cstOfSlice := reg.PointerTo(cst, false)

	kind, ok := LegalImplicitCoercion(reg, 64, mutOfSlice, cstOfSlice, Unknown)
	if !ok || kind != CastPtrToPtr {
		t.Fatalf("&[]i32 -> &[]const i32 should be a legal implicit coercion, got %v, %v", kind, ok)
	}
}

func TestLegalImplicitCoercionOptionalWrap(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	opt := reg.OptionalOf(i32)

	kind, ok := LegalImplicitCoercion(reg, 64, i32, opt, Unknown)
	if !ok || kind != CastOptionalWrap {
		t.Fatalf("i32 -> ?i32 should be a legal implicit coercion, got %v, %v", kind, ok)
	}
}

func TestLegalImplicitCoercionLiteralOutOfRangeIllegal(t *testing.T) {
	reg := types.NewInterner()
	lit := reg.NumericLiteralInt()
	i8 := reg.IntType(true, types.Width8)

	if _, ok := LegalImplicitCoercion(reg, 64, lit, i8, IntValue(big.NewInt(1000))); ok {
		t.Fatalf("a literal that overflows the target type must not coerce implicitly")
	}
}

func TestLegalImplicitCoercionSameTypeNoop(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool
	kind, ok := LegalImplicitCoercion(reg, 64, boolT, boolT, Unknown)
	if !ok || kind != CastNoop {
		t.Fatalf("coercing a type to itself must be a noop, got %v, %v", kind, ok)
	}
}
