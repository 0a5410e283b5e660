package sema

import (
	"math/big"

	"ember/internal/ast"
	"ember/internal/types"
)

// FoldBinary performs constant folding for binary
// arithmetic, comparison and logical operators. result is the operation's
// resolved type (already peer-unified by the caller); lhs/rhs are the
// operand constants. Non-constant operands yield Unknown with no
// diagnostic of their own — the caller is responsible for reporting
// division/modulo-by-zero and out-of-width shifts, since only it has the
// span to attach the diagnostic to.
func FoldBinary(reg *types.Interner, ptrBits uint8, op ast.ExprBinaryOp, result types.TypeID, lhs, rhs Value) Value {
	if op == ast.BinConcat {
		return FoldConcat(lhs, rhs)
	}
	if !lhs.Ok || !rhs.Ok {
		return Unknown
	}

	switch op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod,
		ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		return foldArith(reg, ptrBits, op, result, lhs, rhs)
	case ast.BinEq, ast.BinNotEq, ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq:
		return foldCompare(op, lhs, rhs)
	case ast.BinLogicalAnd:
		if lhs.Kind == ValBool && !lhs.Bool {
			return BoolValue(false)
		}
		if lhs.Kind == ValBool && rhs.Kind == ValBool {
			return BoolValue(lhs.Bool && rhs.Bool)
		}
		return Unknown
	case ast.BinLogicalOr:
		if lhs.Kind == ValBool && lhs.Bool {
			return BoolValue(true)
		}
		if lhs.Kind == ValBool && rhs.Kind == ValBool {
			return BoolValue(lhs.Bool || rhs.Bool)
		}
		return Unknown
	default:
		return Unknown
	}
}

func foldArith(reg *types.Interner, ptrBits uint8, op ast.ExprBinaryOp, result types.TypeID, lhs, rhs Value) Value {
	if lhs.Kind == ValFloat || rhs.Kind == ValFloat {
		a := asFloat(lhs)
		b := asFloat(rhs)
		if a == nil || b == nil {
			return Unknown
		}
		out := new(big.Float).SetPrec(256)
		switch op {
		case ast.BinAdd:
			out.Add(a, b)
		case ast.BinSub:
			out.Sub(a, b)
		case ast.BinMul:
			out.Mul(a, b)
		case ast.BinDiv:
			if b.Sign() == 0 {
				return Unknown
			}
			out.Quo(a, b)
		default:
			return Unknown
		}
		return FloatValue(out)
	}

	if lhs.Kind != ValInt || rhs.Kind != ValInt || lhs.Int == nil || rhs.Int == nil {
		return Unknown
	}
	a, b := lhs.Int, rhs.Int
	out := new(big.Int)

	switch op {
	case ast.BinAdd:
		out.Add(a, b)
	case ast.BinSub:
		out.Sub(a, b)
	case ast.BinMul:
		out.Mul(a, b)
	case ast.BinDiv:
		if b.Sign() == 0 {
			return Unknown
		}
		out.Quo(a, b)
	case ast.BinMod:
		if b.Sign() == 0 {
			return Unknown
		}
		out.Rem(a, b)
	case ast.BinBitAnd:
		out.And(a, b)
	case ast.BinBitOr:
		out.Or(a, b)
	case ast.BinBitXor:
		out.Xor(a, b)
	case ast.BinShl:
		width := shiftWidth(reg, ptrBits, result)
		if b.Sign() < 0 || (width > 0 && b.Cmp(big.NewInt(int64(width))) >= 0) {
			return Unknown
		}
		out.Lsh(a, uint(b.Int64()))
	case ast.BinShr:
		width := shiftWidth(reg, ptrBits, result)
		if b.Sign() < 0 || (width > 0 && b.Cmp(big.NewInt(int64(width))) >= 0) {
			return Unknown
		}
		out.Rsh(a, uint(b.Int64()))
	default:
		return Unknown
	}
	return IntValue(out)
}

func shiftWidth(reg *types.Interner, ptrBits uint8, result types.TypeID) uint8 {
	if !result.IsValid() {
		return 0
	}
	return reg.BitWidth(result, ptrBits)
}

func asFloat(v Value) *big.Float {
	switch v.Kind {
	case ValFloat:
		return v.Float
	case ValInt:
		if v.Int == nil {
			return nil
		}
		return new(big.Float).SetPrec(256).SetInt(v.Int)
	default:
		return nil
	}
}

func foldCompare(op ast.ExprBinaryOp, lhs, rhs Value) Value {
	var cmp int
	switch {
	case lhs.Kind == ValInt && rhs.Kind == ValInt && lhs.Int != nil && rhs.Int != nil:
		cmp = lhs.Int.Cmp(rhs.Int)
	case (lhs.Kind == ValFloat || lhs.Kind == ValInt) && (rhs.Kind == ValFloat || rhs.Kind == ValInt):
		a, b := asFloat(lhs), asFloat(rhs)
		if a == nil || b == nil {
			return Unknown
		}
		cmp = a.Cmp(b)
	case lhs.Kind == ValBool && rhs.Kind == ValBool:
		switch op {
		case ast.BinEq:
			return BoolValue(lhs.Bool == rhs.Bool)
		case ast.BinNotEq:
			return BoolValue(lhs.Bool != rhs.Bool)
		default:
			return Unknown
		}
	default:
		return Unknown
	}

	switch op {
	case ast.BinEq:
		return BoolValue(cmp == 0)
	case ast.BinNotEq:
		return BoolValue(cmp != 0)
	case ast.BinLess:
		return BoolValue(cmp < 0)
	case ast.BinLessEq:
		return BoolValue(cmp <= 0)
	case ast.BinGreater:
		return BoolValue(cmp > 0)
	case ast.BinGreaterEq:
		return BoolValue(cmp >= 0)
	default:
		return Unknown
	}
}

// FoldConcat folds constant string-slice concatenation:
// two constant string slices fold to a new constant slice whose backing
// bytes are the concatenation. Non-constant operands yield Unknown.
func FoldConcat(lhs, rhs Value) Value {
	if lhs.Kind != ValBytes || rhs.Kind != ValBytes {
		return Unknown
	}
	out := make([]byte, 0, len(lhs.Bytes)+len(rhs.Bytes))
	out = append(out, lhs.Bytes...)
	out = append(out, rhs.Bytes...)
	return Value{Kind: ValBytes, Ok: true, Bytes: out}
}

// FoldAggregate folds a struct or array literal's field/element values
// into a single ValAggregate constant, or Unknown if any member isn't
// constant.
func FoldAggregate(elems []Value) Value {
	for _, e := range elems {
		if !e.Ok {
			return Unknown
		}
	}
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{Kind: ValAggregate, Ok: true, Elems: cp}
}

// FoldCast folds a constant through an already-classified cast kind,
// producing the value the backend would bake in at the cast site.
// Non-constant input, or a cast kind this function has no fold rule for,
// yields Unknown — the cast is still legal, it simply isn't a compile
// time constant.
func FoldCast(reg *types.Interner, ptrBits uint8, kind CastKind, to types.TypeID, v Value) Value {
	if !v.Ok {
		return Unknown
	}
	switch kind {
	case CastNoop, CastPtrToPtr, CastArrayToSlice:
		return v
	case CastIntWidenOrShorten, CastLiteralFitsOther:
		if reg.IsFloat(to) {
			f := asFloat(v)
			if f == nil {
				return Unknown
			}
			return FloatValue(f)
		}
		if v.Kind != ValInt || v.Int == nil {
			return Unknown
		}
		bits := reg.BitWidth(to, ptrBits)
		if bits == 0 {
			return Unknown
		}
		return IntValue(wrapInt(v.Int, reg.IsSigned(to), bits))
	case CastOptionalWrap:
		inner := v
		return Value{Kind: ValOptionalSome, Ok: true, Inner: &inner}
	case CastErrorWrap:
		inner := v
		return Value{Kind: ValErrorOK, Ok: true, Inner: &inner}
	default:
		return Unknown
	}
}

func wrapInt(v *big.Int, signed bool, bits uint8) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	out := new(big.Int).Mod(v, mod)
	if out.Sign() < 0 {
		out.Add(out, mod)
	}
	if signed {
		half := new(big.Int).Rsh(mod, 1)
		if out.Cmp(half) >= 0 {
			out.Sub(out, mod)
		}
	}
	return out
}
