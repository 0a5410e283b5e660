package sema

import "ember/internal/types"

// CastKind enumerates the concrete conversions the coercion and cast
// classifier recognizes. Explicit casts pick exactly one, in
// the priority order CastNoop..CastErrorToInt; implicit coercions only
// ever produce a subset of these (see LegalImplicitCoercion).
type CastKind uint8

const (
	CastInvalid CastKind = iota
	CastNoop
	CastPtrToInt
	CastIntToPtr
	CastIntWidenOrShorten
	CastArrayToSlice
	CastPtrToPtr
	CastOptionalWrap
	CastErrorWrap
	CastPureErrorWrap
	CastLiteralFitsOther
	CastErrorToInt
)

func (k CastKind) String() string {
	switch k {
	case CastNoop:
		return "noop"
	case CastPtrToInt:
		return "ptr-to-int"
	case CastIntToPtr:
		return "int-to-ptr"
	case CastIntWidenOrShorten:
		return "int-widen-or-shorten"
	case CastArrayToSlice:
		return "array-to-slice"
	case CastPtrToPtr:
		return "ptr-to-ptr"
	case CastOptionalWrap:
		return "optional-wrap"
	case CastErrorWrap:
		return "error-wrap"
	case CastPureErrorWrap:
		return "pure-error-wrap"
	case CastLiteralFitsOther:
		return "literal-fits-other"
	case CastErrorToInt:
		return "error-to-int"
	default:
		return "invalid"
	}
}

// ClassifyExplicitCast walks the explicit-cast priority
// list: `T(expr)` selects exactly one CastKind for converting a value of
// type `from` (with constant val, Unknown if non-constant) to `to`. ok is
// false when no rule applies ("invalid cast from A to B").
func ClassifyExplicitCast(reg *types.Interner, ptrBits uint8, from, to types.TypeID, val Value) (CastKind, bool) {
	if types.IsInvalidID(from) || types.IsInvalidID(to) {
		return CastInvalid, true
	}

	if from == to {
		return CastNoop, true
	}

	kf, kt := reg.KindOf(from), reg.KindOf(to)

	if kf == types.KindPointer && isPtrSizedInt(reg, to) {
		return CastPtrToInt, true
	}
	if isPtrSizedInt(reg, from) && kt == types.KindPointer {
		return CastIntToPtr, true
	}
	if reg.IsInteger(from) && reg.IsInteger(to) {
		return CastIntWidenOrShorten, true
	}
	if kf == types.KindArray && kt == types.KindSlice {
		fromT, toT := reg.MustLookup(from), reg.MustLookup(to)
		if fromT.Elem == toT.Elem {
			return CastArrayToSlice, true
		}
	}
	if kf == types.KindPointer && kt == types.KindPointer {
		return CastPtrToPtr, true
	}
	if kt == types.KindOptional {
		child := reg.MustLookup(to).Elem
		if from == child || (isNumericLiteral(kf) && reg.IsNumeric(child) && val.Ok && fitsNumeric(reg, ptrBits, child, val)) {
			return CastOptionalWrap, true
		}
	}
	if kt == types.KindErrorUnion {
		child := reg.MustLookup(to).Elem
		if from == child || kf == types.KindPureError ||
			(isNumericLiteral(kf) && reg.IsNumeric(child) && val.Ok && fitsNumeric(reg, ptrBits, child, val)) {
			return CastErrorWrap, true
		}
	}
	if kt == types.KindPureError && kf == types.KindPureError {
		return CastPureErrorWrap, true
	}
	if isNumericLiteral(kf) && reg.IsNumeric(to) && val.Ok && fitsNumeric(reg, ptrBits, to, val) {
		return CastLiteralFitsOther, true
	}
	if kf == types.KindPureError && reg.IsInteger(to) {
		return CastErrorToInt, true
	}

	return CastInvalid, false
}

// constPromotable reports whether from coerces to to by adding a const
// qualifier at one or more levels of pointer/slice nesting, e.g. &&T to
// &&const T or &[]T to &[]const T, without ever dropping a const that
// is already there. The innermost non-pointer/slice layer must match
// exactly.
func constPromotable(reg *types.Interner, from, to types.TypeID) bool {
	kf, kt := reg.KindOf(from), reg.KindOf(to)
	if kf != kt {
		return false
	}
	if kf != types.KindPointer && kf != types.KindSlice {
		return from == to
	}
	fromT, toT := reg.MustLookup(from), reg.MustLookup(to)
	if fromT.Const && !toT.Const {
		return false
	}
	return constPromotable(reg, fromT.Elem, toT.Elem)
}

// LegalImplicitCoercion checks the implicit-coercion list
// (no cast syntax). It returns the CastKind that would classify the
// coercion were it explicit, purely so callers can record it via
// Annotations.SetCoercion; CastInvalid with ok=false means the coercion
// is not legal and the caller must report a type-mismatch diagnostic.
func LegalImplicitCoercion(reg *types.Interner, ptrBits uint8, from, to types.TypeID, val Value) (CastKind, bool) {
	if types.IsInvalidID(from) || types.IsInvalidID(to) {
		return CastInvalid, true
	}
	if from == to {
		return CastNoop, true
	}

	kf, kt := reg.KindOf(from), reg.KindOf(to)

	// non-const -> const through any level of pointer/slice, nested
	if (kf == types.KindPointer && kt == types.KindPointer) || (kf == types.KindSlice && kt == types.KindSlice) {
		if constPromotable(reg, from, to) {
			if kf == types.KindPointer {
				return CastPtrToPtr, true
			}
			return CastNoop, true
		}
	}

	if kt == types.KindOptional && reg.MustLookup(to).Elem == from {
		return CastOptionalWrap, true
	}
	if kt == types.KindErrorUnion {
		child := reg.MustLookup(to).Elem
		if from == child {
			return CastErrorWrap, true
		}
		if kf == types.KindPureError {
			return CastErrorWrap, true
		}
	}

	if kf == types.KindInt && kt == types.KindInt || kf == types.KindUint && kt == types.KindUint {
		if reg.BitWidth(to, ptrBits) >= reg.BitWidth(from, ptrBits) {
			return CastIntWidenOrShorten, true
		}
	}

	if kf == types.KindArray && kt == types.KindSlice {
		fromT, toT := reg.MustLookup(from), reg.MustLookup(to)
		if fromT.Elem == toT.Elem {
			return CastArrayToSlice, true
		}
	}

	if isNumericLiteral(kf) && reg.IsNumeric(to) {
		if !val.Ok {
			return CastLiteralFitsOther, true
		}
		if fitsNumeric(reg, ptrBits, to, val) {
			return CastLiteralFitsOther, true
		}
		return CastInvalid, false
	}

	return CastInvalid, false
}

func isPtrSizedInt(reg *types.Interner, id types.TypeID) bool {
	t, ok := reg.Lookup(id)
	if !ok {
		return false
	}
	return (t.Kind == types.KindInt || t.Kind == types.KindUint) && t.Width == types.WidthPtr
}

// fitsNumeric reports whether val (an arbitrary-precision constant) fits
// target, a concrete integer or float type.
func fitsNumeric(reg *types.Interner, ptrBits uint8, target types.TypeID, val Value) bool {
	switch {
	case reg.IsFloat(target):
		return val.Kind == ValFloat || val.Kind == ValInt
	case reg.IsInteger(target):
		if val.Kind != ValInt || val.Int == nil {
			return false
		}
		return FitsInt(val.Int, reg.IsSigned(target), reg.BitWidth(target, ptrBits))
	default:
		return false
	}
}
