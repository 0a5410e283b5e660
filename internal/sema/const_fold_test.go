package sema

import (
	"math/big"
	"testing"

	"ember/internal/ast"
	"ember/internal/types"
)

func TestFoldBinaryIntArith(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)

	got := FoldBinary(reg, 64, ast.BinAdd, i32, IntValue(big.NewInt(2)), IntValue(big.NewInt(3)))
	if !got.Ok || got.Int.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("2 + 3 = %v, want 5", got)
	}
}

func TestFoldBinaryDivByZeroIsUnknown(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)

	got := FoldBinary(reg, 64, ast.BinDiv, i32, IntValue(big.NewInt(5)), IntValue(big.NewInt(0)))
	if got.Ok {
		t.Fatalf("division by zero must fold to Unknown, not a value")
	}
}

func TestFoldBinaryShiftOutOfWidthIsUnknown(t *testing.T) {
	reg := types.NewInterner()
	i8 := reg.IntType(true, types.Width8)

	got := FoldBinary(reg, 64, ast.BinShl, i8, IntValue(big.NewInt(1)), IntValue(big.NewInt(8)))
	if got.Ok {
		t.Fatalf("shifting by >= the result's bit width must fold to Unknown")
	}
	got = FoldBinary(reg, 64, ast.BinShl, i8, IntValue(big.NewInt(1)), IntValue(big.NewInt(7)))
	if !got.Ok || got.Int.Cmp(big.NewInt(128)) != 0 {
		t.Fatalf("1 << 7 = %v, want 128", got)
	}
}

func TestFoldBinaryNonConstantOperandIsUnknownNotError(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)

	got := FoldBinary(reg, 64, ast.BinAdd, i32, Unknown, IntValue(big.NewInt(1)))
	if got.Ok {
		t.Fatalf("a non-constant operand must fold to Unknown")
	}
}

func TestFoldBinaryFloatArith(t *testing.T) {
	reg := types.NewInterner()
	f64 := reg.Builtins().F64

	a := new(big.Float).SetPrec(256).SetFloat64(1.5)
	b := new(big.Float).SetPrec(256).SetFloat64(2.5)
	got := FoldBinary(reg, 64, ast.BinMul, f64, FloatValue(a), FloatValue(b))
	if !got.Ok {
		t.Fatalf("1.5 * 2.5 should fold to a constant")
	}
	want := new(big.Float).SetPrec(256).SetFloat64(3.75)
	if got.Float.Cmp(want) != 0 {
		t.Fatalf("1.5 * 2.5 = %v, want 3.75", got.Float)
	}
}

func TestFoldBinaryComparisons(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool

	got := FoldBinary(reg, 64, ast.BinLess, boolT, IntValue(big.NewInt(1)), IntValue(big.NewInt(2)))
	if !got.Ok || got.Kind != ValBool || !got.Bool {
		t.Fatalf("1 < 2 should fold to true, got %v", got)
	}

	got = FoldBinary(reg, 64, ast.BinEq, boolT, IntValue(big.NewInt(2)), IntValue(big.NewInt(2)))
	if !got.Ok || !got.Bool {
		t.Fatalf("2 == 2 should fold to true, got %v", got)
	}
}

func TestFoldBinaryLogicalShortCircuitsOnConstantFalse(t *testing.T) {
	reg := types.NewInterner()
	boolT := reg.Builtins().Bool

	got := FoldBinary(reg, 64, ast.BinLogicalAnd, boolT, BoolValue(false), Unknown)
	if !got.Ok || got.Bool {
		t.Fatalf("false && <non-constant> should still fold to false")
	}

	got = FoldBinary(reg, 64, ast.BinLogicalOr, boolT, BoolValue(true), Unknown)
	if !got.Ok || !got.Bool {
		t.Fatalf("true || <non-constant> should still fold to true")
	}
}

func TestFoldConcat(t *testing.T) {
	lhs := Value{Kind: ValBytes, Ok: true, Bytes: []byte("foo")}
	rhs := Value{Kind: ValBytes, Ok: true, Bytes: []byte("bar")}
	got := FoldConcat(lhs, rhs)
	if !got.Ok || string(got.Bytes) != "foobar" {
		t.Fatalf("FoldConcat(foo, bar) = %v, want foobar", got)
	}
}

func TestFoldConcatNonConstant(t *testing.T) {
	lhs := Value{Kind: ValBytes, Ok: true, Bytes: []byte("foo")}
	if got := FoldConcat(lhs, Unknown); got.Ok {
		t.Fatalf("concatenation with a non-constant operand must fold to Unknown")
	}
}

func TestFoldAggregate(t *testing.T) {
	elems := []Value{IntValue(big.NewInt(1)), IntValue(big.NewInt(2))}
	got := FoldAggregate(elems)
	if !got.Ok || got.Kind != ValAggregate || len(got.Elems) != 2 {
		t.Fatalf("FoldAggregate of all-constant elements should fold, got %v", got)
	}

	got = FoldAggregate([]Value{IntValue(big.NewInt(1)), Unknown})
	if got.Ok {
		t.Fatalf("FoldAggregate with any non-constant member must fold to Unknown")
	}
}

func TestFoldCastIntWidenOrShortenWraps(t *testing.T) {
	reg := types.NewInterner()
	u8 := reg.IntType(false, types.Width8)

	got := FoldCast(reg, 64, CastIntWidenOrShorten, u8, IntValue(big.NewInt(300)))
	if !got.Ok || got.Int.Cmp(big.NewInt(44)) != 0 {
		t.Fatalf("casting 300 to u8 should wrap to 44, got %v", got)
	}
}

func TestFoldCastOptionalWrap(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)
	opt := reg.OptionalOf(i32)

	got := FoldCast(reg, 64, CastOptionalWrap, opt, IntValue(big.NewInt(5)))
	if !got.Ok || got.Kind != ValOptionalSome || got.Inner == nil || got.Inner.Int.Cmp(big.NewInt(5)) != 0 {
		t.Fatalf("wrapping 5 as ?i32 should produce ValOptionalSome(5), got %v", got)
	}
}

func TestFoldCastNonConstantStaysUnknown(t *testing.T) {
	reg := types.NewInterner()
	i32 := reg.IntType(true, types.Width32)

	got := FoldCast(reg, 64, CastIntWidenOrShorten, i32, Unknown)
	if got.Ok {
		t.Fatalf("folding a cast of a non-constant value must stay Unknown")
	}
}
